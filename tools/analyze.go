package tools

import (
	"encoding/json"

	"github.com/petasbytes/go-agent-quickstart/internal/metrics"
)

type AnalyzeTextInput struct {
	Text string `json:"text" jsonschema_description:"Text to analyze"`
}

// TextAnalysis is the JSON body returned by analyze_text.
type TextAnalysis struct {
	metrics.Features
	TopTerms []metrics.TermCount `json:"top_terms"`
}

// analyzeTopTerms is how many frequent terms analyze_text reports.
const analyzeTopTerms = 5

var AnalyzeTextDefinition = ToolDefinition{
	Name:        "analyze_text",
	Description: "Analyze a piece of text: byte, rune, word, line and sentence counts plus the most frequent terms.",
	InputSchema: AnalyzeTextInputSchema,
	Function:    AnalyzeText,
}

var AnalyzeTextInputSchema = GenerateSchema[AnalyzeTextInput]()

func AnalyzeText(input json.RawMessage) (string, error) {
	args, err := parseArgs(input)
	if err != nil {
		return "", err
	}
	field := args.Get("text")
	if !field.Exists() {
		return "", invalidInput("text is required")
	}
	text := field.String()
	b, err := json.Marshal(TextAnalysis{
		Features: metrics.CountFeatures(text),
		TopTerms: metrics.TopTerms(text, analyzeTopTerms),
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
