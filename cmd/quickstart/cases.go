package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/petasbytes/go-agent-quickstart/internal/persona"
	"github.com/petasbytes/go-agent-quickstart/internal/runner"
	"github.com/petasbytes/go-agent-quickstart/memory"
	"github.com/petasbytes/go-agent-quickstart/tools"
)

const (
	simplePrompt = "Write a haiku about the ocean."
	toolsPrompt  = "What time is it now? And what's the weather in Tokyo?"
	teamPrompt   = "I'm visiting Tokyo tomorrow. What will the weather be like, what time is it there now, " +
		"and what should I know about the city?"
)

type app struct {
	model    runner.Model
	tools    *tools.Registry
	maxTurns int
	logger   *slog.Logger

	mu  sync.Mutex // guards out; team specialists report tool use concurrently
	out io.Writer
}

func (a *app) printf(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) runtime() persona.Runtime {
	return persona.Runtime{
		Model:    a.model,
		Tools:    a.tools,
		MaxTurns: a.maxTurns,
		Logger:   a.logger,
		Observer: func(_ string, m memory.Message) {
			if m.Role == memory.RoleTool {
				a.printf("Tool used: %s\n", m.ToolName)
			}
		},
	}
}

func (a *app) runCase(ctx context.Context, name, prompt string) error {
	switch name {
	case "simple":
		return a.simple(ctx, orDefault(prompt, simplePrompt))
	case "tools":
		return a.withTools(ctx, orDefault(prompt, toolsPrompt))
	case "team":
		return a.team(ctx, orDefault(prompt, teamPrompt))
	default:
		return fmt.Errorf("unknown case %q (want simple, tools or team)", name)
	}
}

func (a *app) simple(ctx context.Context, prompt string) error {
	a.printf("Starting Use Case 1: Simple Agent Example\n")
	text, err := persona.Assistant.Ask(ctx, a.runtime(), prompt)
	if err != nil {
		return err
	}
	a.printf("\nAgent Response:\n%s\n", text)
	a.printf("\nUse Case 1 completed successfully.\n")
	return nil
}

func (a *app) withTools(ctx context.Context, prompt string) error {
	a.printf("Starting Use Case 2: Agent with Tool Example\n")
	a.printf("\nAssistant is thinking...\n")
	text, err := persona.ToolAssistant.Ask(ctx, a.runtime(), prompt)
	if err != nil {
		return err
	}
	a.printf("\nFinal Agent Response:\n%s\n", text)
	a.printf("\nUse Case 2 completed successfully.\n")
	return nil
}

func (a *app) team(ctx context.Context, question string) error {
	a.printf("Starting Team Example: specialists and synthesis\n")
	ans, err := persona.DefaultTeam().Answer(ctx, a.runtime(), question)
	if err != nil {
		return err
	}
	for _, c := range ans.Contributions {
		a.printf("\n[%s]\n%s\n", c.Persona, c.Text)
	}
	a.printf("\nFinal Team Response:\n%s\n", ans.Text)
	a.printf("\nTeam Example completed successfully.\n")
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
