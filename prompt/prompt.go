package prompt

import "context"

// Kind is the type of input a question collects
type Kind string

const (
	KindText     Kind = "text"
	KindPassword Kind = "password" // never echoed
	KindChoice   Kind = "choice"
)

// Choice is one selectable option of a KindChoice question
type Choice struct {
	Label string
	Value string
}

type Question struct {
	Name    string
	Message string
	Kind    Kind
	Choices []Choice
}

// Answers maps question names to the values entered
type Answers map[string]string

// Prompter asks the user a batch of questions
type Prompter interface {
	Ask(ctx context.Context, questions []Question) (Answers, error)
}
