package oauth2

// GrantType represents the OAuth 2.0 grant type sent to the token or delegation endpoints.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code (plus PKCE verifier) for tokens.
	AuthorizationCodeGrant GrantType = "authorization_code"

	// RefreshTokenGrant exchanges a refresh token for new tokens.
	// Returns: new id_token and access_token, optionally a rotated refresh_token
	RefreshTokenGrant GrantType = "refresh_token"

	// PasswordGrant exchanges a username and password directly for tokens.
	PasswordGrant GrantType = "password"

	// JWTBearerGrant is used by the delegation endpoint. The current id token is the
	// proof of identity and is exchanged for a new token or for downstream credentials.
	JWTBearerGrant GrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// PasswordlessOTPGrant exchanges a one time code sent by SMS or email for tokens.
	PasswordlessOTPGrant GrantType = "http://auth0.com/oauth/grant-type/passwordless/otp"
)

// APIType selects what the delegation endpoint issues.
type APIType string

const (
	// APITypeIdentity issues a new id token with the same scope (token renewal).
	APITypeIdentity APIType = "auth0"
	// APITypeAWS issues temporary AWS credentials.
	APITypeAWS APIType = "aws"
)

// Connection names a passwordless connection configured on the identity provider.
type Connection string

const (
	SMSConnection   Connection = "sms"
	EmailConnection Connection = "email"
)

// Scopes
const (
	ScopeOpenID      = "openid"
	ScopePassthrough = "passthrough"
)
