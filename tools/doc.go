// Package tools defines tool contracts, the tool registry and the mock tools.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Registry: closed name -> handler table, read-only once handed to a runner.
//   - Mock tools: get_weather, get_current_time, web_search, analyze_text.
//   - ToolError: machine-readable error body surfaced back to the model.
package tools
