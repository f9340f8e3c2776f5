package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/go-agent-quickstart/internal/runner"
	"github.com/petasbytes/go-agent-quickstart/memory"
)

// toOutcome turns a Messages API response into a final message or a tool request.
func toOutcome(msg *anthropic.Message) (runner.Outcome, error) {
	if msg == nil {
		return runner.Outcome{}, &runner.MalformedResponseError{Reason: "empty response"}
	}
	var (
		texts []string
		calls []memory.ToolCall
	)
	for i, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			if v.Text != "" {
				texts = append(texts, v.Text)
			}
		case anthropic.ToolUseBlock:
			if v.ID == "" || v.Name == "" {
				return runner.Outcome{}, &runner.MalformedResponseError{Reason: fmt.Sprintf("content block %d: tool_use without id or name", i)}
			}
			input := json.RawMessage(v.JSON.Input.Raw())
			if len(input) > 0 && !json.Valid(input) {
				return runner.Outcome{}, &runner.MalformedResponseError{Reason: fmt.Sprintf("tool_use %s: input is not JSON", v.ID)}
			}
			calls = append(calls, memory.ToolCall{ID: v.ID, Name: v.Name, Arguments: input})
		}
	}

	text := strings.Join(texts, "\n")
	if len(calls) > 0 {
		return runner.ToolRequest(text, calls...), nil
	}
	if msg.StopReason == anthropic.StopReasonToolUse {
		return runner.Outcome{}, &runner.MalformedResponseError{Reason: "stop_reason tool_use without tool_use blocks"}
	}
	return runner.FinalMessage(text), nil
}

// classify maps SDK failures onto the runner's boundary errors.
func classify(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &runner.TransportError{StatusCode: apiErr.StatusCode, Err: err}
	}
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &runner.MalformedResponseError{Reason: "decode response", Err: err}
	}
	return &runner.TransportError{Err: err}
}
