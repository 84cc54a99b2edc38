package token

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/oauth2"
)

// CognitoClient is the subset of the Cognito user pool API used for password logins and
// refreshes. *cognitoidentityprovider.Client satisfies it.
type CognitoClient interface {
	InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
}

// CognitoFactory builds a client for a region
type CognitoFactory func(region string) CognitoClient

// NewCognitoClient creates an anonymous user pool client. InitiateAuth for public app
// clients needs no AWS credentials.
func NewCognitoClient(region string) CognitoClient {
	return cip.New(cip.Options{
		Region:      region,
		Credentials: aws.AnonymousCredentials{},
	})
}

type apiError interface {
	ErrorCode() string
	ErrorMessage() string
}

// InitiateAuth calls Cognito and maps the authentication result into a token set.
// Challenges (MFA, new password) are not supported and are reported as ErrUpstream.
func InitiateAuth(ctx context.Context, client CognitoClient, input *cip.InitiateAuthInput) (*oauth2.TokenResponse, error) {
	out, err := client.InitiateAuth(ctx, input)
	if err != nil {
		var ae apiError
		if autherrors.As(err, &ae) {
			return nil, autherrors.WithCause(autherrors.ErrUpstream, err, ae.ErrorMessage())
		}
		return nil, autherrors.Transport(err)
	}
	if out.ChallengeName != "" {
		return nil, autherrors.Newf(autherrors.ErrUpstream, "unsupported authentication challenge %s", out.ChallengeName)
	}
	result := out.AuthenticationResult
	if result == nil || aws.ToString(result.IdToken) == "" {
		return nil, autherrors.Upstream("cognito did not return an id token")
	}
	return &oauth2.TokenResponse{
		IDToken:      aws.ToString(result.IdToken),
		AccessToken:  aws.ToString(result.AccessToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		TokenType:    aws.ToString(result.TokenType),
		ExpiresIn:    int(result.ExpiresIn),
	}, nil
}
