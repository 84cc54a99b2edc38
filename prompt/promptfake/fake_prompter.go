package promptfake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-auth-client/prompt"
)

var _ prompt.Prompter = (*FakePrompter)(nil)

// FakePrompter answers from a fixed script and records every question asked.
// Questions without a scripted answer get an empty string.
type FakePrompter struct {
	answers prompt.Answers
	err     error
	asked   []prompt.Question
	lock    sync.Mutex
}

func NewFakePrompter(answers prompt.Answers) *FakePrompter {
	return &FakePrompter{answers: answers}
}

// Fail makes Ask return err
func (p *FakePrompter) Fail(err error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.err = err
}

func (p *FakePrompter) Ask(_ context.Context, questions []prompt.Question) (prompt.Answers, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.asked = append(p.asked, questions...)
	if p.err != nil {
		return nil, p.err
	}
	answers := make(prompt.Answers, len(questions))
	for _, q := range questions {
		answers[q.Name] = p.answers[q.Name]
	}
	return answers, nil
}

// Asked returns the questions asked so far
func (p *FakePrompter) Asked() []prompt.Question {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]prompt.Question(nil), p.asked...)
}

// AskedNames returns the names of the questions asked so far
func (p *FakePrompter) AskedNames() []string {
	p.lock.Lock()
	defer p.lock.Unlock()
	names := make([]string, 0, len(p.asked))
	for _, q := range p.asked {
		names = append(names, q.Name)
	}
	return names
}
