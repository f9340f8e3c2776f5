// Package persona binds a system prompt and a tool subset to the generic turn loop.
//
// A persona is configuration, not behavior: every persona runs the same
// runner.Runner with a different initial transcript and registry.
package persona

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/petasbytes/go-agent-quickstart/internal/runner"
	"github.com/petasbytes/go-agent-quickstart/memory"
	"github.com/petasbytes/go-agent-quickstart/tools"
)

// Persona is a named system prompt plus the tools it may use.
type Persona struct {
	Name         string
	Instructions string
	// Tools names the registry entries offered to the model. Empty offers none.
	Tools []string
}

// Runtime is what a persona needs to run: a model, the full tool registry and a turn budget.
type Runtime struct {
	Model    runner.Model
	Tools    *tools.Registry
	MaxTurns int
	Logger   *slog.Logger
	// Observer sees every appended message. Team.Answer calls it from several goroutines.
	Observer func(persona string, m memory.Message)
}

// Transcript returns the initial [system, user] transcript for prompt.
func (p Persona) Transcript(prompt string) memory.Transcript {
	return memory.Transcript{memory.System(p.Instructions), memory.User(prompt)}
}

// Runner returns a runner restricted to the persona's tools.
func (p Persona) Runner(rt Runtime) (*runner.Runner, error) {
	reg, err := rt.Tools.Subset(p.Tools...)
	if err != nil {
		return nil, fmt.Errorf("persona %s: %w", p.Name, err)
	}
	r := runner.New(rt.Model, reg, rt.MaxTurns)
	if rt.Logger != nil {
		r.Logger = rt.Logger.With("persona", p.Name)
	}
	if rt.Observer != nil {
		r.Observer = func(m memory.Message) { rt.Observer(p.Name, m) }
	}
	return r, nil
}

// Ask runs one turn loop for prompt and returns the final text.
func (p Persona) Ask(ctx context.Context, rt Runtime, prompt string) (string, error) {
	r, err := p.Runner(rt)
	if err != nil {
		return "", err
	}
	text, _, err := r.Run(ctx, p.Transcript(prompt))
	if err != nil {
		return "", fmt.Errorf("persona %s: %w", p.Name, err)
	}
	return text, nil
}

var (
	Assistant = Persona{
		Name:         "assistant",
		Instructions: "You are a helpful assistant.",
	}

	ToolAssistant = Persona{
		Name:         "tool_assistant",
		Instructions: "You are a helpful assistant with access to tools.",
		Tools:        []string{"get_current_time", "get_weather"},
	}

	WeatherAnalyst = Persona{
		Name: "weather_analyst",
		Instructions: "You are a weather analyst. Use the weather and clock tools to report " +
			"current conditions and local time for every location mentioned. Be factual and brief.",
		Tools: []string{"get_weather", "get_current_time"},
	}

	Researcher = Persona{
		Name: "researcher",
		Instructions: "You are a research assistant. Search for background information relevant " +
			"to the question and summarize the most useful findings with their sources.",
		Tools: []string{"web_search"},
	}

	TextAnalyst = Persona{
		Name: "text_analyst",
		Instructions: "You are a text analyst. Analyze any text in the question and report its " +
			"length, structure and key terms.",
		Tools: []string{"analyze_text"},
	}

	Synthesizer = Persona{
		Name: "synthesizer",
		Instructions: "You combine findings from several specialists into one clear, well " +
			"organized answer. Resolve contradictions and do not invent facts.",
	}
)
