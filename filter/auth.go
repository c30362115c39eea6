package filter

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/kbukum/restwire/wire"
)

// Authentication header names.
const (
	HeaderAuthorization = "Authorization"
	HeaderAuthToken     = "X-Auth-Token"
	HeaderAPIKey        = "X-API-Key"
)

// AuthType identifies the authentication method.
type AuthType string

const (
	// AuthNone disables authentication.
	AuthNone AuthType = "none"
	// AuthBearer sends "Authorization: Bearer <token>".
	AuthBearer AuthType = "bearer"
	// AuthBasic sends HTTP Basic credentials.
	AuthBasic AuthType = "basic"
	// AuthAPIKey sends an API key in a header or query parameter.
	AuthAPIKey AuthType = "apikey"
	// AuthToken sends a session token in the X-Auth-Token header.
	AuthToken AuthType = "token"
	// AuthJWT signs a fresh JWT for every request.
	AuthJWT AuthType = "jwt"
)

// AuthConfig configures the authentication filter of a client.
type AuthConfig struct {
	// Type is the authentication method. Empty means none.
	Type AuthType `yaml:"type" mapstructure:"type" validate:"omitempty,oneof=none bearer basic apikey token jwt"`
	// Token is the bearer or session token (bearer, token).
	Token string `yaml:"token" mapstructure:"token"`
	// Username is the basic auth user.
	Username string `yaml:"username" mapstructure:"username"`
	// Password is the basic auth password.
	Password string `yaml:"password" mapstructure:"password"`
	// Key is the API key value.
	Key string `yaml:"key" mapstructure:"key"`
	// In places the API key: "header" (default) or "query".
	In string `yaml:"in" mapstructure:"in" validate:"omitempty,oneof=header query"`
	// Name is the API key header or query name. Defaults to X-API-Key.
	Name string `yaml:"name" mapstructure:"name"`
	// JWT configures per-request token signing (jwt).
	JWT JWTConfig `yaml:"jwt" mapstructure:"jwt"`
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// APIKeyAuth creates an API key auth config sent via the X-API-Key header.
func APIKeyAuth(key string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: HeaderAPIKey}
}

// APIKeyAuthQuery creates an API key auth config sent via query parameter.
func APIKeyAuthQuery(key, paramName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "query", Name: paramName}
}

// TokenAuth creates a static session token config.
func TokenAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthToken, Token: token}
}

// Validate checks that the fields required by Type are present.
func (a *AuthConfig) Validate() error {
	if a == nil {
		return nil
	}
	switch a.Type {
	case "", AuthNone:
	case AuthBearer, AuthToken:
		if a.Token == "" {
			return fmt.Errorf("auth: %s requires a token", a.Type)
		}
	case AuthBasic:
		if a.Username == "" {
			return fmt.Errorf("auth: basic requires a username")
		}
	case AuthAPIKey:
		if a.Key == "" {
			return fmt.Errorf("auth: apikey requires a key")
		}
	case AuthJWT:
		return a.JWT.Validate()
	default:
		return fmt.Errorf("auth: unknown type %q", a.Type)
	}
	return nil
}

// Filter returns the filter implementing the config, or nil for none.
func (a *AuthConfig) Filter() (Filter, error) {
	if a == nil {
		return nil, nil
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	switch a.Type {
	case AuthBearer:
		return Bearer(StaticToken(a.Token)), nil
	case AuthBasic:
		return Basic(a.Username, a.Password), nil
	case AuthAPIKey:
		name := a.Name
		if name == "" {
			name = HeaderAPIKey
		}
		if a.In == "query" {
			return APIKeyQuery(name, a.Key), nil
		}
		return Header(name, a.Key), nil
	case AuthToken:
		return AuthTokenHeader(StaticToken(a.Token)), nil
	case AuthJWT:
		return NewJWTSigner(a.JWT)
	default:
		return nil, nil
	}
}

// TokenSource supplies the token of the current session.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that never changes.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token(context.Context) (string, error) { return string(s), nil }

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// AuthTokenHeader sets X-Auth-Token from src on every request.
func AuthTokenHeader(src TokenSource) Filter {
	return tokenHeader(src, HeaderAuthToken, "")
}

// Bearer sets "Authorization: Bearer <token>" from src on every request.
func Bearer(src TokenSource) Filter {
	return tokenHeader(src, HeaderAuthorization, "Bearer ")
}

func tokenHeader(src TokenSource, name, prefix string) Filter {
	return Func(func(ctx context.Context, req *wire.Request) (*wire.Request, error) {
		token, err := src.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquiring token: %w", err)
		}
		return req.WithHeader(name, prefix+token), nil
	})
}

// Basic sets HTTP Basic credentials.
func Basic(username, password string) Filter {
	value := "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
	return Header(HeaderAuthorization, value)
}

// APIKeyQuery sets the query parameter name to key.
func APIKeyQuery(name, key string) Filter {
	return Func(func(_ context.Context, req *wire.Request) (*wire.Request, error) {
		return req.WithQueryParam(name, key)
	})
}

// LoginFunc opens a session and returns its token and expiry. A zero
// expiry means the token does not expire.
type LoginFunc func(ctx context.Context) (token string, expires time.Time, err error)
