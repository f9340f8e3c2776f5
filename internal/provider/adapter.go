package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/go-agent-quickstart/internal/runner"
	"github.com/petasbytes/go-agent-quickstart/internal/telemetry"
	"github.com/petasbytes/go-agent-quickstart/internal/windowing"
	"github.com/petasbytes/go-agent-quickstart/memory"
	"github.com/petasbytes/go-agent-quickstart/tools"
)

// ErrWindowOverBudget is returned when the newest message group alone does not
// fit the configured token budget. No request is sent.
var ErrWindowOverBudget = errors.New("windowing: newest group exceeds token budget")

// Adapter implements runner.Model over the Anthropic Messages API.
type Adapter struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
	budget    int
	counter   windowing.TokenCounter
}

var _ runner.Model = (*Adapter)(nil)

type Option func(*Adapter)

// WithMaxTokens sets the completion cap per call.
func WithMaxTokens(n int64) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

// WithTokenBudget enables the pair-safe send window. A budget <= 0 sends the
// whole transcript.
func WithTokenBudget(budget int) Option {
	return func(a *Adapter) { a.budget = budget }
}

func NewAdapter(client *anthropic.Client, model anthropic.Model, opts ...Option) *Adapter {
	if model == "" {
		model = DefaultModel
	}
	a := &Adapter{
		client:    client,
		model:     model,
		maxTokens: DefaultMaxTokens,
		counter:   windowing.HeuristicCounter{},
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Complete sends transcript to the Messages API, offering the available tools.
// With no tools available, prior tool traffic is sent as plain text.
func (a *Adapter) Complete(ctx context.Context, transcript memory.Transcript, available []tools.Schema) (runner.Outcome, error) {
	system, conv := splitSystem(transcript)
	conv, err := a.window(ctx, conv)
	if err != nil {
		return runner.Outcome{}, err
	}

	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages:  toMessageParams(conv, len(available) > 0),
	}
	if len(system) > 0 {
		params.System = system
	}
	if len(available) > 0 {
		params.Tools = toToolParams(available)
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return runner.Outcome{}, classify(err)
	}
	return toOutcome(msg)
}

func (a *Adapter) window(ctx context.Context, conv []memory.Message) ([]memory.Message, error) {
	if a.budget <= 0 {
		return conv, nil
	}
	window, stats := windowing.PrepareSendWindow(conv, a.budget, a.counter)

	runID, _ := telemetry.RunIDFromContext(ctx)
	telemetry.Emit("window_prepared", map[string]any{
		"run_id":             runID,
		"model":              string(a.model),
		"budget":             stats.Budget,
		"total_estimated":    stats.Total,
		"included_groups":    stats.IncludedGroups,
		"skipped_groups":     stats.SkippedGroups,
		"over_budget_newest": stats.OverBudgetNewest,
	})

	if stats.OverBudgetNewest {
		return nil, fmt.Errorf("%w (budget %d)", ErrWindowOverBudget, a.budget)
	}
	window = windowing.StartAtUser(window)
	if len(window) == 0 {
		return nil, fmt.Errorf("%w: no user message fits budget %d", ErrWindowOverBudget, a.budget)
	}
	return window, nil
}
