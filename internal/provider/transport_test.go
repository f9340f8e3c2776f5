package provider_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/petasbytes/go-agent-quickstart/internal/provider"
)

type fakeResponse struct {
	status int
	body   string
}

// fakeTransport replays responses in order and captures request bodies.
// The last response repeats once the queue is drained.
type fakeTransport struct {
	mu        sync.Mutex
	responses []fakeResponse
	bodies    [][]byte
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	b, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies = append(f.bodies, b)
	r := f.responses[len(f.responses)-1]
	if n := len(f.bodies) - 1; n < len(f.responses) {
		r = f.responses[n]
	}
	resp := &http.Response{
		StatusCode: r.status,
		Body:       io.NopCloser(bytes.NewReader([]byte(r.body))),
		Header:     make(http.Header),
		Request:    req,
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}

func (f *fakeTransport) requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bodies)
}

type contentItem struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
}

type sentRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	System    []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string        `json:"role"`
		Content []contentItem `json:"content"`
	} `json:"messages"`
	Tools []struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		InputSchema map[string]any `json:"input_schema"`
	} `json:"tools"`
}

func (f *fakeTransport) request(t *testing.T, i int) sentRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if i >= len(f.bodies) {
		t.Fatalf("request %d not captured (have %d)", i, len(f.bodies))
	}
	var rb sentRequest
	if err := json.Unmarshal(f.bodies[i], &rb); err != nil {
		t.Fatalf("unmarshal body: %v\nbody=%s", err, f.bodies[i])
	}
	return rb
}

func newClientWithTransport(rt http.RoundTripper) *anthropic.Client {
	return provider.NewAnthropicClient(
		option.WithHTTPClient(&http.Client{Transport: rt}),
		option.WithAPIKey("test-key"),
		option.WithMaxRetries(0),
	)
}

func textResponse(text string) fakeResponse {
	return fakeResponse{status: 200, body: `{
		"id": "msg_1", "type": "message", "role": "assistant", "model": "test",
		"content": [{"type": "text", "text": ` + quote(text) + `}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 1, "output_tokens": 1}
	}`}
}

func toolUseResponse(id, name, input string) fakeResponse {
	return fakeResponse{status: 200, body: `{
		"id": "msg_2", "type": "message", "role": "assistant", "model": "test",
		"content": [
			{"type": "text", "text": "Let me check."},
			{"type": "tool_use", "id": ` + quote(id) + `, "name": ` + quote(name) + `, "input": ` + input + `}
		],
		"stop_reason": "tool_use",
		"usage": {"input_tokens": 1, "output_tokens": 1}
	}`}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
