package prompt

import (
	"context"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
)

var _ Prompter = (*HuhPrompter)(nil)

// HuhPrompter asks questions in the terminal using a single huh form
type HuhPrompter struct {
	accessible bool
}

type HuhOption func(*HuhPrompter)

// WithAccessible switches huh to line based prompts (screen readers, dumb terminals)
func WithAccessible(accessible bool) HuhOption {
	return func(p *HuhPrompter) {
		p.accessible = accessible
	}
}

func NewHuhPrompter(opts ...HuhOption) *HuhPrompter {
	p := &HuhPrompter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *HuhPrompter) Ask(ctx context.Context, questions []Question) (Answers, error) {
	if len(questions) == 0 {
		return Answers{}, nil
	}

	values := make([]string, len(questions))
	fields := make([]huh.Field, 0, len(questions))
	for i, q := range questions {
		switch q.Kind {
		case KindChoice:
			options := make([]huh.Option[string], 0, len(q.Choices))
			for _, c := range q.Choices {
				options = append(options, huh.NewOption(c.Label, c.Value))
			}
			fields = append(fields, huh.NewSelect[string]().
				Title(q.Message).
				Options(options...).
				Value(&values[i]))
		case KindPassword:
			fields = append(fields, huh.NewInput().
				Title(q.Message).
				EchoMode(huh.EchoModePassword).
				Value(&values[i]))
		default:
			fields = append(fields, huh.NewInput().
				Title(q.Message).
				Value(&values[i]))
		}
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithAccessible(p.accessible)
	if err := form.RunWithContext(ctx); err != nil {
		return nil, errors.Wrap(err, "HuhPrompter.Ask")
	}

	answers := make(Answers, len(questions))
	for i, q := range questions {
		answers[q.Name] = strings.TrimSpace(values[i])
	}
	return answers, nil
}
