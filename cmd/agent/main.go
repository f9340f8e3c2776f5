// Command agent is an interactive chat loop with tool use. Each input line is
// one run over the conversation so far.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/petasbytes/go-agent-quickstart/internal/config"
	"github.com/petasbytes/go-agent-quickstart/internal/logging"
	"github.com/petasbytes/go-agent-quickstart/internal/provider"
	"github.com/petasbytes/go-agent-quickstart/internal/runner"
	"github.com/petasbytes/go-agent-quickstart/tools"
)

const systemPrompt = "You are a helpful assistant with access to tools."

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Ctrl-C / SIGTERM cancels the in-flight run and ends the session.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := provider.NewAnthropicClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	)
	model := provider.NewAdapter(client, anthropic.Model(cfg.Model),
		provider.WithMaxTokens(cfg.MaxTokens),
		provider.WithTokenBudget(cfg.TokenBudget),
	)

	r := runner.New(model, tools.DefaultRegistry(), cfg.MaxTurns)
	r.Logger = logging.New(os.Stderr, cfg.LogLevel, cfg.NoColor)

	s := newSession(r, systemPrompt, os.Stdin, os.Stdout, os.Stderr)
	if err := s.loop(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}
