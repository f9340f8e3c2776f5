package tools

import (
	"encoding/json"
	"fmt"
	"strings"
)

type WeatherInput struct {
	Location string `json:"location" jsonschema_description:"The city and state, e.g. San Francisco, CA"`
}

// defaultWeatherLocation is used when the model omits the location.
const defaultWeatherLocation = "New York"

var WeatherDefinition = ToolDefinition{
	Name:        "get_weather",
	Description: "Get the current weather for a location",
	InputSchema: WeatherInputSchema,
	Function:    Weather,
}

var WeatherInputSchema = GenerateSchema[WeatherInput]()

// Weather is a mock: every location is sunny and 72°F.
func Weather(input json.RawMessage) (string, error) {
	args, err := parseArgs(input)
	if err != nil {
		return "", err
	}
	location := strings.TrimSpace(args.Get("location").String())
	if location == "" {
		location = defaultWeatherLocation
	}
	return fmt.Sprintf("The weather in %s is currently sunny and 72°F.", location), nil
}
