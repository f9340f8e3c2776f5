package persona

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Team answers a question by asking each specialist independently and
// handing their answers to a synthesizer.
type Team struct {
	Specialists []Persona
	Synthesizer Persona
}

// DefaultTeam is the weather, research and text analysis crew.
func DefaultTeam() Team {
	return Team{
		Specialists: []Persona{WeatherAnalyst, Researcher, TextAnalyst},
		Synthesizer: Synthesizer,
	}
}

// Contribution is one specialist's answer.
type Contribution struct {
	Persona string
	Text    string
}

// Answer is the team result: the synthesized text and the contributions it was built from.
type Answer struct {
	Text          string
	Contributions []Contribution
}

// Answer runs the specialists concurrently, each in its own turn loop, then
// runs the synthesizer over their combined answers. Any specialist failure
// fails the whole answer and the synthesizer is not called.
func (t Team) Answer(ctx context.Context, rt Runtime, question string) (Answer, error) {
	if len(t.Specialists) == 0 {
		return Answer{}, errors.New("team has no specialists")
	}

	contribs := make([]Contribution, len(t.Specialists))
	errs := make([]error, len(t.Specialists))
	var wg sync.WaitGroup
	for i, p := range t.Specialists {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := p.Ask(ctx, rt, question)
			contribs[i] = Contribution{Persona: p.Name, Text: text}
			errs[i] = err
		}()
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return Answer{}, err
	}

	final, err := t.Synthesizer.Ask(ctx, rt, SynthesisPrompt(question, contribs))
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: final, Contributions: contribs}, nil
}

// SynthesisPrompt concatenates the specialist answers under the original question.
func SynthesisPrompt(question string, contribs []Contribution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\nSpecialist findings:\n", question)
	for _, c := range contribs {
		fmt.Fprintf(&b, "\n## %s\n%s\n", c.Persona, strings.TrimSpace(c.Text))
	}
	b.WriteString("\nCombine these findings into a single answer to the question.")
	return b.String()
}
