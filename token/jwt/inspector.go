package jwt

import (
	"math"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/jrsteele09/go-auth-client/token"
)

// Claim names read from session tokens
const (
	RefreshBeforeClaim      = "refreshIdTokenBeforeSeconds"
	ServiceSettingsURLClaim = "serviceSettingsUrl"
	GroupsClaim             = "cognito:groups"
)

var _ token.Decoder = (*Inspector)(nil)

// Inspector decodes token claims without verifying the signature. The result is
// metadata (expiry, refresh window, service settings location), not authentication.
type Inspector struct {
	parser *jwtlib.Parser
}

func NewInspector() *Inspector {
	return &Inspector{parser: jwtlib.NewParser()}
}

// Decode returns ErrMalformedToken when the token is empty, cannot be parsed or has no exp claim
func (i *Inspector) Decode(raw string) (*token.Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, malformed(nil)
	}

	parsed, _, err := i.parser.ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return nil, malformed(err)
	}
	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, malformed(nil)
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, malformed(err)
	}

	claims := &token.Claims{
		ExpiresAt: exp.Time,
		Raw:       map[string]any(mapClaims),
	}
	claims.Subject, _ = mapClaims.GetSubject()
	claims.Email, _ = mapClaims["email"].(string)
	claims.Name, _ = mapClaims["name"].(string)
	claims.ServiceSettingsURL, _ = mapClaims[ServiceSettingsURLClaim].(string)
	if groups, ok := mapClaims[GroupsClaim].([]any); ok {
		claims.Groups = utils.ToStringSlice(groups)
	}
	if seconds, ok := mapClaims[RefreshBeforeClaim].(float64); ok && !math.IsNaN(seconds) && seconds >= 0 {
		window := time.Duration(seconds * float64(time.Second))
		claims.RefreshBefore = &window
	}
	return claims, nil
}

func malformed(cause error) error {
	return autherrors.WithCause(autherrors.ErrMalformedToken, cause, "Malformed access token. Please login again.")
}
