package telemetry_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/petasbytes/go-agent-quickstart/internal/telemetry"
)

func TestRunID_RoundTrip(t *testing.T) {
	ctx := telemetry.WithRunID(context.Background(), "run-123")
	got, ok := telemetry.RunIDFromContext(ctx)
	if !ok || got != "run-123" {
		t.Fatalf("want run-123,true; got %q,%v", got, ok)
	}
}

func TestRunID_NilParent(t *testing.T) {
	var parent context.Context
	ctx := telemetry.WithRunID(parent, "r1")
	got, ok := telemetry.RunIDFromContext(ctx)
	if !ok || got != "r1" {
		t.Fatalf("want r1,true; got %q,%v", got, ok)
	}
}

func TestRunID_EmptyIDRejectedOnRead(t *testing.T) {
	ctx := telemetry.WithRunID(context.Background(), "")
	got, ok := telemetry.RunIDFromContext(ctx)
	if ok || got != "" {
		t.Fatalf("want empty,false; got %q,%v", got, ok)
	}
}

func TestRunID_ParentCancellationPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	defer cancel()

	child := telemetry.WithRunID(parent, "r1")
	cancel()

	select {
	case <-child.Done():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("child context did not observe parent cancellation")
	}
}

func TestRunID_LastWriteWins(t *testing.T) {
	ctx1 := telemetry.WithRunID(context.Background(), "r1")
	ctx2 := telemetry.WithRunID(ctx1, "r2")

	got, ok := telemetry.RunIDFromContext(ctx2)
	if !ok || got != "r2" {
		t.Fatalf("want r2,true; got %q,%v", got, ok)
	}
}

func TestRunID_MissingValue(t *testing.T) {
	got, ok := telemetry.RunIDFromContext(context.Background())
	if ok || got != "" {
		t.Fatalf("want empty,false; got %q,%v", got, ok)
	}
}

func TestNewRunID_Unique(t *testing.T) {
	seen := map[string]struct{}{}
	for range 100 {
		id := telemetry.NewRunID()
		if !strings.HasPrefix(id, "run-") {
			t.Fatalf("unexpected run id format %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate run id %q", id)
		}
		seen[id] = struct{}{}
	}
}
