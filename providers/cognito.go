package providers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/token"
)

var _ Provider = (*CognitoProvider)(nil)

// CognitoProvider authenticates directly against a Cognito user pool with USER_PASSWORD_AUTH
type CognitoProvider struct {
	deps    Deps
	cognito token.CognitoFactory
}

func NewCognitoProvider(deps Deps, factory token.CognitoFactory) *CognitoProvider {
	if factory == nil {
		factory = token.NewCognitoClient
	}
	return &CognitoProvider{deps: deps, cognito: factory}
}

func (p *CognitoProvider) Login(ctx context.Context, req Request) (*oauth2.TokenResponse, error) {
	username, password, err := resolveCredentials(ctx, p.deps.Prompter, req)
	if err != nil {
		return nil, err
	}

	p.deps.logger().Debug().Str("tenant", p.deps.Tenant.Name).Str("region", p.deps.Tenant.Region).Msg("cognito login")
	tokens, err := token.InitiateAuth(ctx, p.cognito(p.deps.Tenant.Region), &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.deps.ClientID),
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, err
	}
	return finish(ctx, p.deps, req, tokens)
}
