package tools

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Handler executes one tool call. Input is the raw JSON arguments object.
type Handler func(input json.RawMessage) (string, error)

type ToolDefinition struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Function    Handler
}

// Schema is the advertised shape of a tool, without its handler.
type Schema struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

// GenerateSchema reflects the JSON Schema of T. Properties are inlined and
// additional properties are disallowed so the schema can be sent as-is.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}
