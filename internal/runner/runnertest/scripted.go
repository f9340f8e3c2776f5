// Package runnertest provides a deterministic Model for exercising the turn loop.
package runnertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/petasbytes/go-agent-quickstart/internal/runner"
	"github.com/petasbytes/go-agent-quickstart/memory"
	"github.com/petasbytes/go-agent-quickstart/tools"
)

// Step is one scripted reply: an outcome or an error.
type Step struct {
	Outcome runner.Outcome
	Err     error
}

func Final(text string) Step { return Step{Outcome: runner.FinalMessage(text)} }

func Tools(calls ...memory.ToolCall) Step { return Step{Outcome: runner.ToolRequest("", calls...)} }

func Fail(err error) Step { return Step{Err: err} }

// Call records what one Complete invocation received.
type Call struct {
	Transcript memory.Transcript
	Available  []tools.Schema
}

// ScriptedModel replays Steps in order and records every call.
// Running past the end of the script is an error.
type ScriptedModel struct {
	mu    sync.Mutex
	steps []Step
	calls []Call
}

func NewScriptedModel(steps ...Step) *ScriptedModel {
	return &ScriptedModel{steps: steps}
}

func (m *ScriptedModel) Complete(_ context.Context, transcript memory.Transcript, available []tools.Schema) (runner.Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := len(m.calls)
	m.calls = append(m.calls, Call{Transcript: transcript, Available: available})
	if i >= len(m.steps) {
		return runner.Outcome{}, fmt.Errorf("runnertest: unexpected call %d, script has %d steps", i+1, len(m.steps))
	}
	s := m.steps[i]
	return s.Outcome, s.Err
}

// Calls returns the recorded calls.
func (m *ScriptedModel) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

func (m *ScriptedModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// ToolCall builds a tool call whose arguments are the JSON literal args.
func ToolCall(id, name, args string) memory.ToolCall {
	return memory.ToolCall{ID: id, Name: name, Arguments: []byte(args)}
}
