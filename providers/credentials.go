package providers

import (
	"context"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/prompt"
)

const (
	usernameQuestion = "username"
	passwordQuestion = "password"
)

// resolveCredentials prompts only for what the caller did not supply (or asked to be
// prompted for). The password is collected with a non echoing prompt.
func resolveCredentials(ctx context.Context, p prompt.Prompter, req Request) (string, string, error) {
	username, password := req.Username, req.Password

	var questions []prompt.Question
	if req.PromptUsername || username == "" {
		questions = append(questions, prompt.Question{
			Name:    usernameQuestion,
			Message: "Username: ",
			Kind:    prompt.KindText,
		})
	}
	if password == "" {
		questions = append(questions, prompt.Question{
			Name:    passwordQuestion,
			Message: "Password: ",
			Kind:    prompt.KindPassword,
		})
	}

	if len(questions) > 0 {
		answers, err := p.Ask(ctx, questions)
		if err != nil {
			return "", "", err
		}
		if req.PromptUsername || username == "" {
			username = answers[usernameQuestion]
		}
		if password == "" {
			password = answers[passwordQuestion]
		}
	}

	if username == "" {
		return "", "", autherrors.New(autherrors.ErrMissingCredential, "Please specify a username.")
	}
	if password == "" {
		return "", "", autherrors.New(autherrors.ErrMissingCredential, "Please specify a password.")
	}
	return username, password, nil
}
