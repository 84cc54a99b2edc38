package token

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/jrsteele09/go-auth-client/tenants"
	"github.com/jrsteele09/go-auth-client/transport"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Strategy names the exchange used to renew a token
type Strategy string

const (
	StrategyNone         Strategy = "none"
	StrategyRefreshToken Strategy = "refresh-token"
	StrategyCognito      Strategy = "cognito"
	StrategyDelegation   Strategy = "delegation"
)

// Refresher returns a usable session token, renewing it through the identity provider when
// the policy says so. A renewed token is persisted before it is returned; on any failure
// the store is left untouched.
type Refresher struct {
	store     sessions.Store
	decoder   Decoder
	transport transport.Transport
	cognito   CognitoFactory
	policy    Policy
	nowFunc   func() time.Time
	logger    zerolog.Logger
}

type RefresherOption func(*Refresher)

func WithPolicy(p Policy) RefresherOption {
	return func(r *Refresher) {
		r.policy = p
	}
}

func WithNowFunc(now func() time.Time) RefresherOption {
	return func(r *Refresher) {
		r.nowFunc = now
	}
}

func WithCognito(factory CognitoFactory) RefresherOption {
	return func(r *Refresher) {
		r.cognito = factory
	}
}

func WithLogger(logger zerolog.Logger) RefresherOption {
	return func(r *Refresher) {
		r.logger = logger
	}
}

func NewRefresher(store sessions.Store, decoder Decoder, t transport.Transport, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		store:     store,
		decoder:   decoder,
		transport: t,
		cognito:   NewCognitoClient,
		nowFunc:   time.Now,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ClientIDFunc resolves the client id presented to the identity provider
type ClientIDFunc func(ctx context.Context) (string, error)

// Refresh loads the stored token and renews it if it is due or expired
func (r *Refresher) Refresh(ctx context.Context, tenant *tenants.Tenant, clientID string) (string, error) {
	return r.RefreshWith(ctx, tenant, func(context.Context) (string, error) { return clientID, nil })
}

// RefreshWith is Refresh with the client id resolved only when an exchange is needed, so a
// fresh token never depends on client configuration being reachable.
func (r *Refresher) RefreshWith(ctx context.Context, tenant *tenants.Tenant, resolveClientID ClientIDFunc) (string, error) {
	record, err := r.store.Load(ctx)
	if err != nil {
		return "", err
	}
	raw := record.Token()
	if raw == "" {
		return "", autherrors.New(autherrors.ErrUnauthenticated, "Unauthenticated, please login before using this service.")
	}

	claims, err := r.decoder.Decode(raw)
	if err != nil {
		return "", err
	}

	state := r.policy.Classify(claims, r.nowFunc())
	strategy := SelectStrategy(state, record, tenant)
	r.logger.Debug().Str("state", state.String()).Str("strategy", string(strategy)).Str("tenant", tenant.Name).Msg("token classified")

	if strategy == StrategyNone {
		if state == Expired {
			return "", autherrors.New(autherrors.ErrExpired, "Unauthorised, your access token has expired. Please login again.")
		}
		return raw, nil
	}

	clientID, err := resolveClientID(ctx)
	if err != nil {
		return "", err
	}

	var tokens *oauth2.TokenResponse
	switch strategy {
	case StrategyCognito:
		tokens, err = r.refreshCognito(ctx, tenant, clientID, record.RefreshToken)
	case StrategyRefreshToken:
		tokens, err = r.refreshToken(ctx, tenant, clientID, record.RefreshToken)
	case StrategyDelegation:
		tokens, err = r.delegate(ctx, tenant, clientID, raw)
	}
	if err != nil {
		return "", err
	}

	if _, err := r.store.Update(ctx, func(rec *sessions.Record) error {
		rec.SetTokens(tokens.IDToken, tokens.AccessToken, tokens.RefreshToken)
		return nil
	}); err != nil {
		return "", err
	}
	r.logger.Debug().Str("strategy", string(strategy)).Msg("token refreshed")
	return tokens.IDToken, nil
}

// SelectStrategy picks the exchange for a classified token. A refresh token always wins;
// without one only a token that is due (not yet expired) can be delegated.
func SelectStrategy(state State, record *sessions.Record, tenant *tenants.Tenant) Strategy {
	switch {
	case state == Fresh:
		return StrategyNone
	case record.RefreshToken != "" && tenant.IsCognito():
		return StrategyCognito
	case record.RefreshToken != "":
		return StrategyRefreshToken
	case state == Expired:
		return StrategyNone
	default:
		return StrategyDelegation
	}
}

func (r *Refresher) refreshToken(ctx context.Context, tenant *tenants.Tenant, clientID, refreshToken string) (*oauth2.TokenResponse, error) {
	req := oauthmodel.TokenRequest{
		GrantType:    oauth2.RefreshTokenGrant,
		ClientID:     clientID,
		RefreshToken: refreshToken,
	}
	return Exchange(ctx, r.transport, &transport.Request{
		Method: http.MethodPost,
		URL:    tenant.Endpoints.Token,
		Form:   req.Form(),
	})
}

func (r *Refresher) refreshCognito(ctx context.Context, tenant *tenants.Tenant, clientID, refreshToken string) (*oauth2.TokenResponse, error) {
	return InitiateAuth(ctx, r.cognito(tenant.Region), &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
		ClientId: aws.String(clientID),
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": refreshToken,
		},
	})
}

func (r *Refresher) delegate(ctx context.Context, tenant *tenants.Tenant, clientID, idToken string) (*oauth2.TokenResponse, error) {
	req := oauthmodel.DelegationRequest{
		ClientID: clientID,
		IDToken:  idToken,
		Scope:    oauth2.ScopePassthrough,
		APIType:  oauth2.APITypeIdentity,
	}
	return Exchange(ctx, r.transport, &transport.Request{
		Method: http.MethodPost,
		URL:    tenant.Endpoints.Delegation,
		JSON:   req.Body(),
	})
}
