package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/petasbytes/go-agent-quickstart/internal/telemetry"
	"github.com/petasbytes/go-agent-quickstart/memory"
	"github.com/petasbytes/go-agent-quickstart/tools"
)

// Runner executes runs against one model and one tool registry.
// A Runner holds no per-run state and may be shared by concurrent runs.
type Runner struct {
	Model    Model
	Tools    *tools.Registry
	MaxTurns int
	// Logger receives debug records for model calls and tool dispatch. Nil discards.
	Logger *slog.Logger
	// Observer, when set, is called with every message appended during a run.
	Observer func(memory.Message)
}

func New(model Model, reg *tools.Registry, maxTurns int) *Runner {
	return &Runner{Model: model, Tools: reg, MaxTurns: maxTurns}
}

// Run drives the conversation in initial until the model produces a final
// message. It returns the final text and the full transcript including the
// initial messages. initial is not modified.
//
// On failure no partial result is returned. Adapter errors are returned
// unchanged; cancellation is reported as ErrCancelled.
func (r *Runner) Run(ctx context.Context, initial memory.Transcript) (string, memory.Transcript, error) {
	if err := r.validate(initial); err != nil {
		return "", nil, err
	}

	runID, ok := telemetry.RunIDFromContext(ctx)
	if !ok {
		runID = telemetry.NewRunID()
		ctx = telemetry.WithRunID(ctx, runID)
	}
	log := r.logger().With("run_id", runID)

	st := &runState{started: time.Now()}
	text, transcript, err := r.loop(ctx, log, st, initial.Clone())
	r.finish(runID, st, err)
	if err != nil {
		log.Debug("run failed", "model_calls", st.calls, "rounds", st.rounds, "err", err)
		return "", nil, err
	}
	log.Debug("run done", "model_calls", st.calls, "rounds", st.rounds)
	return text, transcript, nil
}

type runState struct {
	started time.Time
	calls   int
	rounds  int
}

func (r *Runner) loop(ctx context.Context, log *slog.Logger, st *runState, tr memory.Transcript) (string, memory.Transcript, error) {
	schemas := r.Tools.Schemas()
	for {
		forced := st.rounds >= r.MaxTurns
		available := schemas
		if forced {
			available = nil
		}

		if err := ctx.Err(); err != nil {
			return "", nil, cancelled(err)
		}
		out, err := r.complete(ctx, log, st, tr, available)
		if err != nil {
			if cerr := ctx.Err(); cerr != nil {
				return "", nil, cancelled(cerr)
			}
			return "", nil, err
		}

		if out.IsFinal() {
			tr = r.appendMessage(tr, out.Message())
			return out.Text, tr, nil
		}
		if forced {
			return "", nil, fmt.Errorf("%w: model requested %d tool call(s) with no tools offered", ErrBudgetExhausted, len(out.Calls))
		}

		next := append(tr, out.Message())
		if err := next.Validate(); err != nil {
			return "", nil, &MalformedResponseError{Reason: "tool request breaks transcript", Err: err}
		}
		tr = next
		r.observe(tr[len(tr)-1])

		for _, call := range out.Calls {
			if err := ctx.Err(); err != nil {
				return "", nil, cancelled(err)
			}
			tr = r.appendMessage(tr, r.execTool(ctx, log, call))
		}
		st.rounds++
	}
}

func (r *Runner) complete(ctx context.Context, log *slog.Logger, st *runState, tr memory.Transcript, available []tools.Schema) (Outcome, error) {
	st.calls++
	runID, _ := telemetry.RunIDFromContext(ctx)
	start := time.Now()
	out, err := r.Model.Complete(ctx, tr.Clone(), available)
	elapsed := time.Since(start)

	fields := map[string]any{
		"run_id":        runID,
		"call":          st.calls,
		"round":         st.rounds,
		"messages":      len(tr),
		"tools_offered": len(available),
		"duration_ms":   elapsed.Milliseconds(),
		"error":         nil,
	}
	if err != nil {
		fields["error"] = errorKind(err)
	} else {
		fields["outcome"] = out.Kind.String()
		fields["tool_calls"] = len(out.Calls)
	}
	telemetry.Emit("model_call", fields)

	log.Debug("model call", "call", st.calls, "round", st.rounds, "tools_offered", len(available), "duration", elapsed, "err", err)
	return out, err
}

// execTool resolves and runs one call. Every failure becomes an error payload
// in the tool message so the model can react.
func (r *Runner) execTool(ctx context.Context, log *slog.Logger, call memory.ToolCall) memory.Message {
	runID, _ := telemetry.RunIDFromContext(ctx)
	start := time.Now()

	text, errCode := r.invoke(call)

	// Sizes only; raw payloads stay out of telemetry.
	fields := map[string]any{
		"run_id":      runID,
		"tool_name":   call.Name,
		"duration_ms": time.Since(start).Milliseconds(),
		"input_size":  len(call.Arguments),
		"output_size": len(text),
		"error":       nil,
	}
	if errCode != "" {
		fields["error"] = errCode
	}
	telemetry.Emit("tool_exec", fields)

	log.Debug("tool exec", "tool", call.Name, "id", call.ID, "error_code", errCode)
	return memory.ToolResult(call.ID, call.Name, text, errCode != "")
}

// invoke returns the result text and, on failure, the error code of the payload.
func (r *Runner) invoke(call memory.ToolCall) (text, code string) {
	handler, err := r.Tools.Resolve(call.Name)
	if err != nil {
		return toolError(tools.CodeUnknownTool, err.Error())
	}

	args := call.Arguments
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	defer func() {
		if p := recover(); p != nil {
			text, code = toolError(tools.CodeToolPanic, fmt.Sprintf("tool %q panicked: %v", call.Name, p))
		}
	}()
	out, err := handler(args)
	if err != nil {
		var te tools.ToolError
		if errors.As(err, &te) {
			return te.Error(), te.Code
		}
		return toolError(tools.CodeToolFailed, err.Error())
	}
	return out, ""
}

func toolError(code, msg string) (string, string) {
	return tools.ToolError{Code: code, Message: msg}.Error(), code
}

func (r *Runner) validate(initial memory.Transcript) error {
	switch {
	case r.Model == nil:
		return fmt.Errorf("%w: nil model", ErrInvalidConfiguration)
	case r.MaxTurns < 1:
		return fmt.Errorf("%w: max turns must be >= 1, got %d", ErrInvalidConfiguration, r.MaxTurns)
	case len(initial) == 0:
		return fmt.Errorf("%w: empty initial transcript", ErrInvalidConfiguration)
	}
	if err := initial.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}

func (r *Runner) appendMessage(tr memory.Transcript, m memory.Message) memory.Transcript {
	tr = append(tr, m)
	r.observe(m)
	return tr
}

func (r *Runner) observe(m memory.Message) {
	if r.Observer != nil {
		r.Observer(m)
	}
}

func (r *Runner) finish(runID string, st *runState, err error) {
	fields := map[string]any{
		"run_id":      runID,
		"model_calls": st.calls,
		"rounds":      st.rounds,
		"duration_ms": time.Since(st.started).Milliseconds(),
		"error":       nil,
	}
	if err != nil {
		fields["error"] = errorKind(err)
	}
	telemetry.Emit("run_end", fields)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return discard
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// errorKind maps an error to a short class name for telemetry.
func errorKind(err error) string {
	var (
		te *TransportError
		me *MalformedResponseError
	)
	switch {
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.Is(err, ErrBudgetExhausted):
		return "budget_exhausted"
	case errors.Is(err, ErrInvalidConfiguration):
		return "invalid_configuration"
	case errors.As(err, &te):
		return "transport"
	case errors.As(err, &me):
		return "malformed_response"
	default:
		return "error"
	}
}
