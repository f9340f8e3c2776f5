package tools

import (
	"fmt"
	"slices"
)

// Registry maps tool names to definitions and keeps registration order.
//
// A Registry is built once, then only read. Register must not be called while
// the registry is in use by a runner; Resolve and Schemas are safe for
// concurrent use once construction is done.
type Registry struct {
	defs  map[string]ToolDefinition
	order []string
}

// NewRegistry registers defs in order and fails on the first invalid or duplicate entry.
func NewRegistry(defs ...ToolDefinition) (*Registry, error) {
	r := &Registry{defs: make(map[string]ToolDefinition, len(defs))}
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry returns all mock tools wired for the agent.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(WeatherDefinition, CurrentTimeDefinition, WebSearchDefinition, AnalyzeTextDefinition)
	if err != nil {
		// Static table; a failure here is a programming error.
		panic(err)
	}
	return r
}

func (r *Registry) Register(def ToolDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTool)
	}
	if def.Function == nil {
		return fmt.Errorf("%w: tool %q has no handler", ErrInvalidTool, def.Name)
	}
	if r.defs == nil {
		r.defs = make(map[string]ToolDefinition)
	}
	if _, ok := r.defs[def.Name]; ok {
		return &DuplicateToolError{Name: def.Name}
	}
	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// Resolve returns the handler registered under name.
func (r *Registry) Resolve(name string) (Handler, error) {
	if r == nil {
		return nil, &UnknownToolError{Name: name}
	}
	d, ok := r.defs[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return d.Function, nil
}

// Schemas lists the advertised tool shapes in registration order.
func (r *Registry) Schemas() []Schema {
	if r == nil {
		return nil
	}
	out := make([]Schema, 0, len(r.order))
	for _, name := range r.order {
		d := r.defs[name]
		out = append(out, Schema{Name: d.Name, Description: d.Description, InputSchema: d.InputSchema})
	}
	return out
}

// Names lists registered tool names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.order)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Subset returns a new registry holding only the named tools, in the order given.
func (r *Registry) Subset(names ...string) (*Registry, error) {
	out := &Registry{defs: make(map[string]ToolDefinition, len(names))}
	for _, name := range names {
		if r == nil {
			return nil, &UnknownToolError{Name: name}
		}
		d, ok := r.defs[name]
		if !ok {
			return nil, &UnknownToolError{Name: name}
		}
		if err := out.Register(d); err != nil {
			return nil, err
		}
	}
	return out, nil
}
