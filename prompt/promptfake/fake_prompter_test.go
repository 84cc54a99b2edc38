package promptfake_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/go-auth-client/prompt"
	"github.com/jrsteele09/go-auth-client/prompt/promptfake"
	"github.com/stretchr/testify/require"
)

func TestFakePrompter(t *testing.T) {
	ctx := context.Background()
	p := promptfake.NewFakePrompter(prompt.Answers{"username": "jane"})

	answers, err := p.Ask(ctx, []prompt.Question{
		{Name: "username", Kind: prompt.KindText},
		{Name: "password", Kind: prompt.KindPassword},
	})
	require.NoError(t, err)
	require.Equal(t, prompt.Answers{"username": "jane", "password": ""}, answers)
	require.Equal(t, []string{"username", "password"}, p.AskedNames())
	require.Equal(t, prompt.KindPassword, p.Asked()[1].Kind)

	boom := errors.New("interrupted")
	p.Fail(boom)
	_, err = p.Ask(ctx, []prompt.Question{{Name: "code"}})
	require.ErrorIs(t, err, boom)
}
