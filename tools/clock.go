package tools

import (
	"encoding/json"
	"strings"
	"time"
)

type CurrentTimeInput struct {
	Timezone string `json:"timezone,omitempty" jsonschema_description:"Optional IANA time zone, e.g. Asia/Tokyo. Defaults to the local time zone."`
}

const currentTimeLayout = "2006-01-02 15:04:05"

var CurrentTimeDefinition = NewCurrentTimeDefinition(time.Now)

var CurrentTimeInputSchema = GenerateSchema[CurrentTimeInput]()

// NewCurrentTimeDefinition returns the get_current_time tool reading the clock from now.
func NewCurrentTimeDefinition(now func() time.Time) ToolDefinition {
	return ToolDefinition{
		Name:        "get_current_time",
		Description: "Get the current date and time",
		InputSchema: CurrentTimeInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			args, err := parseArgs(input)
			if err != nil {
				return "", err
			}
			t := now()
			if tz := strings.TrimSpace(args.Get("timezone").String()); tz != "" {
				loc, err := time.LoadLocation(tz)
				if err != nil {
					return "", invalidInput("unknown timezone %q", tz)
				}
				t = t.In(loc)
			}
			return t.Format(currentTimeLayout), nil
		},
	}
}
