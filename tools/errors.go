package tools

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidTool is returned when registering a definition without a name or handler.
var ErrInvalidTool = errors.New("invalid tool definition")

// Error codes carried in ToolError bodies.
const (
	CodeInvalidInput = "ERR_INVALID_INPUT"
	CodeUnknownTool  = "ERR_UNKNOWN_TOOL"
	CodeToolFailed   = "ERR_TOOL_FAILED"
	CodeToolPanic    = "ERR_TOOL_PANIC"
)

// DuplicateToolError reports a second registration under the same name.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool %q already registered", e.Name)
}

// UnknownToolError reports a lookup of a name that was never registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("tool %q not found", e.Name)
}

// ToolError is a machine-readable error body for surfacing back to the model as JSON.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string to keep tool results small.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

func invalidInput(format string, args ...any) error {
	return ToolError{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}
