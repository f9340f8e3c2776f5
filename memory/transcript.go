package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ErrMalformedTranscript is wrapped by every Validate failure.
var ErrMalformedTranscript = errors.New("malformed transcript")

// ToolCall is a model-requested invocation of a named tool.
// Arguments carry a JSON object; empty means {}.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Message is one transcript entry.
type Message struct {
	Role       Role       `json:"role"`
	Text       string     `json:"text,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolName   string     `json:"tool_name,omitempty"`
	IsError    bool       `json:"is_error,omitempty"`
}

func System(text string) Message { return Message{Role: RoleSystem, Text: text} }

func User(text string) Message { return Message{Role: RoleUser, Text: text} }

// Assistant returns an assistant message, optionally requesting tool calls.
func Assistant(text string, calls ...ToolCall) Message {
	m := Message{Role: RoleAssistant, Text: text}
	if len(calls) > 0 {
		m.ToolCalls = slices.Clone(calls)
	}
	return m
}

// ToolResult returns the tool message answering call id.
func ToolResult(id, name, text string, isError bool) Message {
	return Message{Role: RoleTool, Text: text, ToolCallID: id, ToolName: name, IsError: isError}
}

// Transcript is the ordered message history exchanged with the model.
type Transcript []Message

// Clone returns a deep copy so callers can hand the transcript across a boundary
// without sharing tool call slices or argument buffers.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	for i, m := range t {
		out[i] = m
		if len(m.ToolCalls) > 0 {
			out[i].ToolCalls = make([]ToolCall, len(m.ToolCalls))
			for j, c := range m.ToolCalls {
				c.Arguments = slices.Clone(c.Arguments)
				out[i].ToolCalls[j] = c
			}
		}
	}
	return out
}

// Last returns the final message, if any.
func (t Transcript) Last() (Message, bool) {
	if len(t) == 0 {
		return Message{}, false
	}
	return t[len(t)-1], true
}

// Validate checks role tagging and tool call / tool result linkage.
//
// Invariants:
//   - tool calls only on assistant messages; ToolCallID/ToolName only on tool messages
//   - tool call IDs are non-empty and unique within the transcript
//   - a tool message answers a call of the immediately preceding assistant message
//     (only tool messages may sit in between), and each call is answered at most once
func (t Transcript) Validate() error {
	seen := make(map[string]struct{})
	// open holds the unanswered call IDs of the assistant message currently in scope;
	// nil means no assistant message is in scope.
	var open map[string]bool
	for i, m := range t {
		switch m.Role {
		case RoleSystem, RoleUser:
			if err := noToolFields(i, m); err != nil {
				return err
			}
			open = nil
		case RoleAssistant:
			if m.ToolCallID != "" || m.ToolName != "" || m.IsError {
				return malformed(i, "assistant message carries tool result fields")
			}
			open = make(map[string]bool, len(m.ToolCalls))
			for _, c := range m.ToolCalls {
				if c.ID == "" {
					return malformed(i, "tool call without id")
				}
				if c.Name == "" {
					return malformed(i, fmt.Sprintf("tool call %q without name", c.ID))
				}
				if _, dup := seen[c.ID]; dup {
					return malformed(i, fmt.Sprintf("duplicate tool call id %q", c.ID))
				}
				seen[c.ID] = struct{}{}
				open[c.ID] = true
			}
		case RoleTool:
			if len(m.ToolCalls) > 0 {
				return malformed(i, "tool message carries tool calls")
			}
			if m.ToolCallID == "" {
				return malformed(i, "tool message without tool_call_id")
			}
			pending, ok := open[m.ToolCallID]
			if !ok {
				return malformed(i, fmt.Sprintf("tool result %q has no matching request in the preceding assistant message", m.ToolCallID))
			}
			if !pending {
				return malformed(i, fmt.Sprintf("tool call %q answered twice", m.ToolCallID))
			}
			open[m.ToolCallID] = false
		default:
			return malformed(i, fmt.Sprintf("unknown role %q", m.Role))
		}
	}
	return nil
}

func noToolFields(i int, m Message) error {
	if len(m.ToolCalls) > 0 || m.ToolCallID != "" || m.ToolName != "" || m.IsError {
		return malformed(i, fmt.Sprintf("%s message carries tool fields", m.Role))
	}
	return nil
}

func malformed(i int, reason string) error {
	return fmt.Errorf("%w: message %d: %s", ErrMalformedTranscript, i, reason)
}
