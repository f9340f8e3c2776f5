// Package runner drives the bounded multi-turn tool-dispatch loop between a
// hosted model and locally executed tools.
//
// Invariants:
//   - the assistant message carrying tool calls is appended before any call is dispatched
//   - tool results are appended in request order, directly after their assistant message
//   - at most maxTurns dispatch rounds; then one final call with no tools offered
//
// Flow:
//
//	user(text) -> assistant(tool calls) -> tool(result)... -> assistant(text)
package runner
