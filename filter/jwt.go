package filter

import (
	"context"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kbukum/restwire/wire"
)

// JWTConfig configures JWTSigner.
type JWTConfig struct {
	// Secret is the HMAC signing key.
	Secret string `yaml:"secret" mapstructure:"secret"`
	// Method is the HMAC algorithm: HS256 (default), HS384 or HS512.
	Method string `yaml:"method" mapstructure:"method" validate:"omitempty,oneof=HS256 HS384 HS512"`
	// Issuer is the iss claim.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`
	// Subject is the sub claim.
	Subject string `yaml:"subject" mapstructure:"subject"`
	// Audience is the aud claim.
	Audience []string `yaml:"audience" mapstructure:"audience"`
	// TTL bounds each token's lifetime. Default 1m.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ApplyDefaults fills the signing method and TTL.
func (c *JWTConfig) ApplyDefaults() {
	if c.Method == "" {
		c.Method = "HS256"
	}
	if c.TTL <= 0 {
		c.TTL = time.Minute
	}
}

// Validate checks the signing configuration.
func (c *JWTConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("auth: jwt requires a secret")
	}
	switch c.Method {
	case "", "HS256", "HS384", "HS512":
		return nil
	default:
		return fmt.Errorf("auth: unsupported jwt method %q", c.Method)
	}
}

// JWTSigner signs a short-lived token per request and sets it as the
// bearer credential, replacing any stale Authorization header.
type JWTSigner struct {
	cfg    JWTConfig
	method gojwt.SigningMethod
	now    func() time.Time
}

// NewJWTSigner creates a JWTSigner.
func NewJWTSigner(cfg JWTConfig) (*JWTSigner, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &JWTSigner{cfg: cfg, method: gojwt.GetSigningMethod(cfg.Method), now: time.Now}, nil
}

// Sign returns a token for one request to operation.
func (s *JWTSigner) Sign(operation string) (string, error) {
	now := s.now()
	claims := requestClaims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.cfg.Issuer,
			Subject:   s.cfg.Subject,
			Audience:  s.cfg.Audience,
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		Operation: operation,
	}
	signed, err := gojwt.NewWithClaims(s.method, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Apply implements Filter.
func (s *JWTSigner) Apply(_ context.Context, req *wire.Request) (*wire.Request, error) {
	token, err := s.Sign(req.Operation)
	if err != nil {
		return nil, err
	}
	return req.WithHeader(HeaderAuthorization, "Bearer "+token), nil
}

type requestClaims struct {
	gojwt.RegisteredClaims
	Operation string `json:"op,omitempty"`
}
