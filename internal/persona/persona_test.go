package persona_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/petasbytes/go-agent-quickstart/internal/persona"
	"github.com/petasbytes/go-agent-quickstart/internal/runner"
	"github.com/petasbytes/go-agent-quickstart/internal/runner/runnertest"
	"github.com/petasbytes/go-agent-quickstart/memory"
	"github.com/petasbytes/go-agent-quickstart/tools"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// echoModel answers "<persona instructions>|<prompt>" and records offered tools per system prompt.
type echoModel struct {
	mu      sync.Mutex
	offered map[string][]string
	prompts map[string]string
}

func newEchoModel() *echoModel {
	return &echoModel{offered: map[string][]string{}, prompts: map[string]string{}}
}

func (m *echoModel) Complete(_ context.Context, tr memory.Transcript, available []tools.Schema) (runner.Outcome, error) {
	sys, user := tr[0].Text, tr[1].Text
	names := make([]string, 0, len(available))
	for _, s := range available {
		names = append(names, s.Name)
	}
	m.mu.Lock()
	m.offered[sys] = names
	m.prompts[sys] = user
	m.mu.Unlock()
	return runner.FinalMessage("answer from " + sys), nil
}

func runtime(model runner.Model) persona.Runtime {
	return persona.Runtime{Model: model, Tools: tools.DefaultRegistry(), MaxTurns: 3}
}

func TestPersona_Transcript(t *testing.T) {
	tr := persona.Assistant.Transcript("Write a haiku about the ocean.")
	require.Len(t, tr, 2)
	assert.Equal(t, memory.System("You are a helpful assistant."), tr[0])
	assert.Equal(t, memory.User("Write a haiku about the ocean."), tr[1])
	require.NoError(t, tr.Validate())
}

func TestPersona_AskOffersOnlyItsTools(t *testing.T) {
	model := newEchoModel()
	text, err := persona.WeatherAnalyst.Ask(context.Background(), runtime(model), "Tokyo?")
	require.NoError(t, err)
	assert.Equal(t, "answer from "+persona.WeatherAnalyst.Instructions, text)
	assert.Equal(t, []string{"get_weather", "get_current_time"}, model.offered[persona.WeatherAnalyst.Instructions])
}

func TestPersona_NoToolsOffersNone(t *testing.T) {
	model := newEchoModel()
	_, err := persona.Assistant.Ask(context.Background(), runtime(model), "hi")
	require.NoError(t, err)
	assert.Empty(t, model.offered[persona.Assistant.Instructions])
}

func TestPersona_ToolLoop(t *testing.T) {
	model := runnertest.NewScriptedModel(
		runnertest.Tools(
			runnertest.ToolCall("1", "get_current_time", `{}`),
			runnertest.ToolCall("2", "get_weather", `{"location":"Tokyo"}`),
		),
		runnertest.Final("It is sunny in Tokyo."),
	)
	var seen []string
	rt := runtime(model)
	rt.Observer = func(name string, m memory.Message) {
		if m.Role == memory.RoleTool {
			seen = append(seen, name+":"+m.ToolName)
		}
	}

	text, err := persona.ToolAssistant.Ask(context.Background(), rt, "What time is it now? And what's the weather in Tokyo?")
	require.NoError(t, err)
	assert.Equal(t, "It is sunny in Tokyo.", text)
	assert.Equal(t, []string{"tool_assistant:get_current_time", "tool_assistant:get_weather"}, seen)
}

func TestPersona_UnknownToolInSubset(t *testing.T) {
	p := persona.Persona{Name: "broken", Instructions: "x", Tools: []string{"teleport"}}
	_, err := p.Ask(context.Background(), runtime(newEchoModel()), "hi")
	var unknown *tools.UnknownToolError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "teleport", unknown.Name)
}

func TestPersona_ErrorsNamePersona(t *testing.T) {
	model := runnertest.NewScriptedModel(runnertest.Fail(&runner.TransportError{StatusCode: 500, Err: errors.New("boom")}))
	_, err := persona.Researcher.Ask(context.Background(), runtime(model), "q")
	var te *runner.TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "persona researcher")
}

func TestTeam_Answer(t *testing.T) {
	model := newEchoModel()
	team := persona.DefaultTeam()

	ans, err := team.Answer(context.Background(), runtime(model), "Plan a trip to Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "answer from "+persona.Synthesizer.Instructions, ans.Text)

	require.Len(t, ans.Contributions, 3)
	for i, p := range team.Specialists {
		assert.Equal(t, p.Name, ans.Contributions[i].Persona)
		assert.Equal(t, "answer from "+p.Instructions, ans.Contributions[i].Text)
		assert.Equal(t, "Plan a trip to Tokyo", model.prompts[p.Instructions])
	}

	synth := model.prompts[persona.Synthesizer.Instructions]
	assert.True(t, strings.HasPrefix(synth, "Question: Plan a trip to Tokyo"))
	for _, c := range ans.Contributions {
		assert.Contains(t, synth, "## "+c.Persona)
		assert.Contains(t, synth, c.Text)
	}
	assert.Empty(t, model.offered[persona.Synthesizer.Instructions])
	assert.True(t, slices.Contains(model.offered[persona.Researcher.Instructions], "web_search"))
}

func TestTeam_SpecialistFailureSkipsSynthesis(t *testing.T) {
	var synthCalled bool
	var mu sync.Mutex
	model := runner.ModelFunc(func(_ context.Context, tr memory.Transcript, _ []tools.Schema) (runner.Outcome, error) {
		switch tr[0].Text {
		case persona.Researcher.Instructions:
			return runner.Outcome{}, &runner.TransportError{StatusCode: 503, Err: errors.New("unavailable")}
		case persona.Synthesizer.Instructions:
			mu.Lock()
			synthCalled = true
			mu.Unlock()
		}
		return runner.FinalMessage("ok"), nil
	})

	_, err := persona.DefaultTeam().Answer(context.Background(), runtime(model), "q")
	var te *runner.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 503, te.StatusCode)
	assert.False(t, synthCalled)
}

func TestTeam_NoSpecialists(t *testing.T) {
	_, err := persona.Team{Synthesizer: persona.Synthesizer}.Answer(context.Background(), runtime(newEchoModel()), "q")
	assert.Error(t, err)
}

func TestSynthesisPrompt(t *testing.T) {
	got := persona.SynthesisPrompt("Why?", []persona.Contribution{{Persona: "a", Text: " one \n"}, {Persona: "b", Text: "two"}})
	want := "Question: Why?\n\nSpecialist findings:\n\n## a\none\n\n## b\ntwo\n\nCombine these findings into a single answer to the question."
	assert.Equal(t, want, got)
}
