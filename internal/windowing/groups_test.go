package windowing_test

import (
	"testing"

	"github.com/petasbytes/go-agent-quickstart/internal/windowing"
	"github.com/petasbytes/go-agent-quickstart/memory"
)

func TestGroupMessages_Invariants(t *testing.T) {
	tests := []struct {
		name string
		msgs []memory.Message
		want []windowing.Group
	}{
		{
			name: "valid pair: one tool",
			msgs: []memory.Message{A("", C("t1")), R("t1", "ok", false)},
			want: []windowing.Group{pair(0, 2)},
		},
		{
			name: "parallel completeness missing (2 tools)",
			msgs: []memory.Message{A("", C("t1"), C("t2")), R("t1", "ok", false)},
			want: []windowing.Group{single(0), single(1)},
		},
		{
			name: "parallel completeness OK (2 tools) answered out of order",
			msgs: []memory.Message{A("", C("t1"), C("t2")), R("t2", "b", false), R("t1", "a", false), U("next")},
			want: []windowing.Group{pair(0, 3), single(3)},
		},
		{
			name: "intervening message invalidates adjacency",
			msgs: []memory.Message{A("", C("t1")), A("note"), R("t1", "ok", false)},
			want: []windowing.Group{single(0), single(1), single(2)},
		},
		{
			name: "error result treated same as success",
			msgs: []memory.Message{A("", C("t1")), R("t1", `{"code":"ERR_TOOL_FAILED"}`, true)},
			want: []windowing.Group{pair(0, 2)},
		},
		{
			name: "extra results: strict exclusion",
			msgs: []memory.Message{A("", C("t1")), R("t1", "ok", false), R("t_extra", "?", false)},
			want: []windowing.Group{single(0), single(1), single(2)},
		},
		{
			name: "repeated result: strict exclusion",
			msgs: []memory.Message{A("", C("t1")), R("t1", "ok", false), R("t1", "again", false)},
			want: []windowing.Group{single(0), single(1), single(2)},
		},
		{
			name: "tool call not followed by results",
			msgs: []memory.Message{A("", C("t1"))},
			want: []windowing.Group{single(0)},
		},
		{
			name: "no tools in assistant: both singletons",
			msgs: []memory.Message{A("hello"), U("world")},
			want: []windowing.Group{single(0), single(1)},
		},
		{
			name: "consecutive pairs",
			msgs: []memory.Message{U("q"), A("", C("a")), R("a", "1", false), A("", C("b")), R("b", "2", false), A("done")},
			want: []windowing.Group{single(0), pair(1, 3), pair(3, 5), single(5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := windowing.GroupMessages(tt.msgs)
			if !groupsEqual(got, tt.want) {
				t.Fatalf("unexpected groups. got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestStartAtUser(t *testing.T) {
	tests := []struct {
		name    string
		msgs    []memory.Message
		wantLen int
	}{
		{"already at user", []memory.Message{U("a"), A("b")}, 2},
		{"drops leading pair whole", []memory.Message{A("", C("t1")), R("t1", "ok", false), U("next"), A("x")}, 2},
		{"drops leading assistant text", []memory.Message{A("hi"), U("q")}, 1},
		{"no user at all", []memory.Message{A("", C("t1")), R("t1", "ok", false)}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := windowing.StartAtUser(tt.msgs)
			if len(got) != tt.wantLen {
				t.Fatalf("len: got=%d want=%d", len(got), tt.wantLen)
			}
			if len(got) > 0 && got[0].Role != memory.RoleUser {
				t.Fatalf("window opens with %s", got[0].Role)
			}
		})
	}
}
