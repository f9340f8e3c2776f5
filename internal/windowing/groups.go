package windowing

import (
	"fmt"
	"os"

	"github.com/petasbytes/go-agent-quickstart/memory"
)

// GroupKind denotes the atomic unit type when preparing a send window.
type GroupKind int

const (
	GroupSingleton GroupKind = iota
	GroupPair
)

// Group describes a contiguous span of messages [Start, End) in the original slice.
// Kind indicates whether it is a singleton or a validated pair.
type Group struct {
	Kind  GroupKind
	Start int // inclusive index into msgs
	End   int // exclusive index into msgs
}

// GroupMessages groups messages into atomic units that keep tool calls next to their results.
// Invariants:
//   - A pair is an assistant message with tool calls followed directly by one tool
//     message per call, in any order.
//   - Parallel completeness: every call id must be answered; a missing, extra or
//     repeated result leaves every message a singleton.
//   - Error results are treated the same as successful ones.
func GroupMessages(msgs []memory.Message) []Group {
	groups := make([]Group, 0, len(msgs))
	for i := 0; i < len(msgs); {
		if end, reason := pairEnd(msgs, i); end > i {
			groups = append(groups, Group{Kind: GroupPair, Start: i, End: end})
			i = end
			continue
		} else if reason != "" {
			vlogf("exclude pair: reason=%s idx=%d", reason, i)
		}
		groups = append(groups, Group{Kind: GroupSingleton, Start: i, End: i + 1})
		i++
	}
	return groups
}

// pairEnd returns the exclusive end of the pair starting at i, or i with a
// reason code when msgs[i] opens no complete pair.
func pairEnd(msgs []memory.Message, i int) (int, string) {
	m := msgs[i]
	if m.Role != memory.RoleAssistant || len(m.ToolCalls) == 0 {
		return i, ""
	}
	want := make(map[string]bool, len(m.ToolCalls))
	for _, c := range m.ToolCalls {
		want[c.ID] = true
	}
	j := i + 1
	for ; j < len(msgs) && msgs[j].Role == memory.RoleTool; j++ {
		open, ok := want[msgs[j].ToolCallID]
		switch {
		case !ok:
			return i, "extra_results"
		case !open:
			return i, "repeated_result"
		}
		want[msgs[j].ToolCallID] = false
	}
	if j == i+1 {
		return i, "not_followed_by_results"
	}
	for _, open := range want {
		if open {
			return i, "missing_results"
		}
	}
	return j, ""
}

// StartAtUser drops leading groups until the window opens with a user message.
// Hosted chat APIs reject conversations that start with an assistant turn.
func StartAtUser(msgs []memory.Message) []memory.Message {
	for _, g := range GroupMessages(msgs) {
		if msgs[g.Start].Role == memory.RoleUser {
			return msgs[g.Start:]
		}
	}
	return nil
}

// minimal verbose logging when AGT_VERBOSE_WINDOW_LOGS=1
var verbose = os.Getenv("AGT_VERBOSE_WINDOW_LOGS") == "1"

func vlogf(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[windowing] "+format+"\n", args...)
	}
}
