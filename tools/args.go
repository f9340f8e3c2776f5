package tools

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// parseArgs validates the raw arguments object and returns it for lenient
// field access. Missing or empty input is treated as {}.
func parseArgs(input json.RawMessage) (gjson.Result, error) {
	if len(bytes.TrimSpace(input)) == 0 {
		return gjson.Parse("{}"), nil
	}
	if !gjson.ValidBytes(input) {
		return gjson.Result{}, invalidInput("arguments are not valid JSON")
	}
	args := gjson.ParseBytes(input)
	if !args.IsObject() {
		return gjson.Result{}, invalidInput("arguments must be a JSON object")
	}
	return args, nil
}
