package runner

import (
	"context"
	"slices"

	"github.com/petasbytes/go-agent-quickstart/memory"
	"github.com/petasbytes/go-agent-quickstart/tools"
)

// Model is the boundary to a hosted chat-completion API.
//
// Complete receives a copy of the transcript and the tools the model may
// request. An empty available list means no tool calls are allowed. Failures
// should be *TransportError or *MalformedResponseError.
type Model interface {
	Complete(ctx context.Context, transcript memory.Transcript, available []tools.Schema) (Outcome, error)
}

// ModelFunc adapts a function to the Model interface.
type ModelFunc func(ctx context.Context, transcript memory.Transcript, available []tools.Schema) (Outcome, error)

func (f ModelFunc) Complete(ctx context.Context, transcript memory.Transcript, available []tools.Schema) (Outcome, error) {
	return f(ctx, transcript, available)
}

// OutcomeKind distinguishes final answers from tool requests.
type OutcomeKind int

const (
	KindFinal OutcomeKind = iota
	KindToolRequest
)

func (k OutcomeKind) String() string {
	switch k {
	case KindFinal:
		return "final"
	case KindToolRequest:
		return "tool_request"
	default:
		return "unknown"
	}
}

// Outcome is the result of one model call.
type Outcome struct {
	Kind OutcomeKind
	// Text is the answer for a final message, or any text the model produced
	// alongside its tool calls.
	Text  string
	Calls []memory.ToolCall
}

// FinalMessage returns an outcome that ends the run with text.
func FinalMessage(text string) Outcome {
	return Outcome{Kind: KindFinal, Text: text}
}

// ToolRequest returns an outcome asking for calls to be dispatched.
func ToolRequest(text string, calls ...memory.ToolCall) Outcome {
	return Outcome{Kind: KindToolRequest, Text: text, Calls: slices.Clone(calls)}
}

// IsFinal reports whether the outcome ends the run. A tool request without
// calls counts as final.
func (o Outcome) IsFinal() bool {
	return o.Kind != KindToolRequest || len(o.Calls) == 0
}

// Message is the assistant message recording the outcome in the transcript.
func (o Outcome) Message() memory.Message {
	if o.IsFinal() {
		return memory.Assistant(o.Text)
	}
	return memory.Assistant(o.Text, o.Calls...)
}
