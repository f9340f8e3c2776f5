package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/petasbytes/go-agent-quickstart/internal/runner"
	"github.com/petasbytes/go-agent-quickstart/memory"
)

// session carries one conversation across runs.
type session struct {
	runner     *runner.Runner
	system     string
	transcript memory.Transcript

	in          io.Reader
	out, errOut io.Writer
}

func newSession(r *runner.Runner, system string, in io.Reader, out, errw io.Writer) *session {
	s := &session{runner: r, system: system, in: in, out: out, errOut: errw}
	s.reset()
	return s
}

func (s *session) reset() {
	s.transcript = memory.Transcript{memory.System(s.system)}
}

// loop reads lines until input ends or ctx is cancelled. A failed run is
// reported and dropped from the conversation; cancellation ends the loop.
func (s *session) loop(ctx context.Context) error {
	// Tool progress goes to the same terminal as the answers.
	s.runner.Observer = func(m memory.Message) {
		if m.Role == memory.RoleTool {
			fmt.Fprintf(s.out, "\u001b[92mtool\u001b[0m: %s\n", m.ToolName)
		}
	}

	// stdin reader goroutine -> lines into channel
	scanner := bufio.NewScanner(s.in)
	inputCh := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(inputCh)
		for scanner.Scan() {
			select {
			case inputCh <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	fmt.Fprintln(s.out, "Chat with Claude (Ctrl-C to quit, /reset to start over)")
	for {
		fmt.Fprint(s.out, "\u001b[94mYou\u001b[0m: ")
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out, "\nExiting...")
			return nil
		case line, ok = <-inputCh:
			if !ok {
				return scanner.Err()
			}
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "/reset":
			s.reset()
			fmt.Fprintln(s.out, "conversation cleared")
			continue
		}

		text, err := s.ask(ctx, line)
		if errors.Is(err, runner.ErrCancelled) {
			fmt.Fprintln(s.out, "\nExiting...")
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(s.out, "\u001b[93mClaude\u001b[0m: %s\n", text)
	}
}

// ask runs one user turn. The conversation only advances when the run succeeds.
func (s *session) ask(ctx context.Context, line string) (string, error) {
	next := append(s.transcript.Clone(), memory.User(line))
	text, tr, err := s.runner.Run(ctx, next)
	if err != nil {
		return "", err
	}
	s.transcript = tr
	return text, nil
}
