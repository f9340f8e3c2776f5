package provider

import (
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/go-agent-quickstart/memory"
	"github.com/petasbytes/go-agent-quickstart/tools"
)

// splitSystem moves system messages into System blocks; the API carries them
// outside the message list.
func splitSystem(t memory.Transcript) ([]anthropic.TextBlockParam, []memory.Message) {
	var system []anthropic.TextBlockParam
	conv := make([]memory.Message, 0, len(t))
	for _, m := range t {
		if m.Role == memory.RoleSystem {
			if m.Text != "" {
				system = append(system, anthropic.TextBlockParam{Text: m.Text})
			}
			continue
		}
		conv = append(conv, m)
	}
	return system, conv
}

// toMessageParams converts messages to API params. Tool results become
// tool_result blocks in a user message directly after their tool_use blocks.
// Consecutive messages with the same API role are merged.
//
// When withTools is false every tool block is rendered as text; the API
// rejects tool_use and tool_result blocks in requests that define no tools.
func toMessageParams(msgs []memory.Message, withTools bool) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(msgs))
	push := func(role anthropic.MessageParamRole, blocks ...anthropic.ContentBlockParamUnion) {
		if len(blocks) == 0 {
			return
		}
		if n := len(out); n > 0 && out[n-1].Role == role {
			out[n-1].Content = append(out[n-1].Content, blocks...)
			return
		}
		out = append(out, anthropic.MessageParam{Role: role, Content: blocks})
	}

	for _, m := range msgs {
		switch m.Role {
		case memory.RoleUser:
			if m.Text != "" {
				push(anthropic.MessageParamRoleUser, anthropic.NewTextBlock(m.Text))
			}
		case memory.RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if m.Text != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Text))
			}
			for _, c := range m.ToolCalls {
				if withTools {
					blocks = append(blocks, anthropic.NewToolUseBlock(c.ID, arguments(c.Arguments), c.Name))
				} else {
					blocks = append(blocks, anthropic.NewTextBlock(fmt.Sprintf("[called tool %s with %s]", c.Name, arguments(c.Arguments))))
				}
			}
			push(anthropic.MessageParamRoleAssistant, blocks...)
		case memory.RoleTool:
			if withTools {
				push(anthropic.MessageParamRoleUser, anthropic.NewToolResultBlock(m.ToolCallID, m.Text, m.IsError))
				continue
			}
			label := "result"
			if m.IsError {
				label = "error"
			}
			push(anthropic.MessageParamRoleUser, anthropic.NewTextBlock(fmt.Sprintf("[tool %s %s: %s]", m.ToolName, label, m.Text)))
		}
	}
	return out
}

func arguments(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("{}")
	}
	return raw
}

func toToolParams(schemas []tools.Schema) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(schemas))
	for _, s := range schemas {
		input := anthropic.ToolInputSchemaParam{Properties: map[string]any{}}
		if s.InputSchema != nil {
			if s.InputSchema.Properties != nil {
				input.Properties = s.InputSchema.Properties
			}
			input.Required = s.InputSchema.Required
		}
		tp := &anthropic.ToolParam{Name: s.Name, InputSchema: input}
		if s.Description != "" {
			tp.Description = anthropic.String(s.Description)
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: tp})
	}
	return out
}
