// Command quickstart runs the example use cases against the Anthropic Messages API.
//
//	quickstart -case simple   # one completion, no tools
//	quickstart -case tools    # clock and weather tools
//	quickstart -case team     # specialists plus a synthesizer
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/petasbytes/go-agent-quickstart/internal/config"
	"github.com/petasbytes/go-agent-quickstart/internal/logging"
	"github.com/petasbytes/go-agent-quickstart/internal/provider"
	"github.com/petasbytes/go-agent-quickstart/tools"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("quickstart", flag.ContinueOnError)
	fs.SetOutput(stderr)
	useCase := fs.String("case", "simple", "use case to run: simple, tools or team")
	prompt := fs.String("prompt", "", "override the use case's default prompt")
	envFile := fs.String("env", ".env", "dotenv file to load")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if err := cfg.RequireAPIKey(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := provider.NewAnthropicClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	)
	a := &app{
		model: provider.NewAdapter(client, anthropic.Model(cfg.Model),
			provider.WithMaxTokens(cfg.MaxTokens),
			provider.WithTokenBudget(cfg.TokenBudget),
		),
		tools:    tools.DefaultRegistry(),
		maxTurns: cfg.MaxTurns,
		logger:   logging.New(stderr, cfg.LogLevel, cfg.NoColor),
		out:      stdout,
	}
	if err := a.runCase(ctx, *useCase, *prompt); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
