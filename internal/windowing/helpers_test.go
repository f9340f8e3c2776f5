package windowing_test

import (
	"github.com/petasbytes/go-agent-quickstart/internal/windowing"
	"github.com/petasbytes/go-agent-quickstart/memory"
)

// U is a user text message.
func U(text string) memory.Message { return memory.User(text) }

// A is an assistant message, optionally with tool calls.
func A(text string, calls ...memory.ToolCall) memory.Message {
	return memory.Assistant(text, calls...)
}

// C is a tool call named "f" with no arguments, so its cost is name runes plus overhead.
func C(id string) memory.ToolCall { return memory.ToolCall{ID: id, Name: "f"} }

// R is a tool result answering id.
func R(id, text string, isErr bool) memory.Message {
	return memory.ToolResult(id, "f", text, isErr)
}

// groupsEqual is a small utility used by grouping tests.
func groupsEqual(got, want []windowing.Group) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func single(start int) windowing.Group {
	return windowing.Group{Kind: windowing.GroupSingleton, Start: start, End: start + 1}
}

func pair(start, end int) windowing.Group {
	return windowing.Group{Kind: windowing.GroupPair, Start: start, End: end}
}
