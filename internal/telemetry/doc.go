// Package telemetry emits opt-in JSONL events for runs and tool executions.
//
// Events are appended to <AGT_ARTIFACTS_DIR or .agent>/events.jsonl only when
// AGT_OBSERVE_JSON=1. Events carry sizes and durations, never raw payloads.
package telemetry
