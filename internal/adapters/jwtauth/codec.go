package jwtauth

// Package jwtauth issues and validates the stateless session tokens that
// back authenticated requests. Validation is pure: no I/O, no clock skew
// allowance, and every failure collapses to "no claims".

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	domainauth "github.com/medtrack/medtrack-api/internal/domain/auth"
	"github.com/medtrack/medtrack-api/internal/ports"
)

// Codec signs and verifies HS256 session tokens.
type Codec struct {
	secret      []byte
	issuer      string
	audience    string
	ttl         time.Duration
	extendedTTL time.Duration
	now         func() time.Time
}

// Config holds configuration for the codec.
type Config struct {
	Secret      string
	Issuer      string
	Audience    string
	TTL         time.Duration // default 24h when zero
	ExtendedTTL time.Duration // default 720h when zero
	Now         func() time.Time
}

// NewCodec builds a codec. An empty secret is a configuration error and is
// rejected here so the process fails at startup, never per-request.
func NewCodec(cfg Config) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	extended := cfg.ExtendedTTL
	if extended <= 0 {
		extended = 30 * 24 * time.Hour
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Codec{
		secret:      []byte(cfg.Secret),
		issuer:      cfg.Issuer,
		audience:    cfg.Audience,
		ttl:         ttl,
		extendedTTL: extended,
		now:         now,
	}, nil
}

// tokenClaims describes the JWT payload.
type tokenClaims struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	RememberMe bool   `json:"remember_me"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the subject. Extended selects the
// long "remember me" lifetime; Name falls back to Email when empty so the
// token always carries a display name.
func (c *Codec) Issue(subject ports.TokenSubject, extended bool) (string, time.Time, error) {
	ttl := c.ttl
	if extended {
		ttl = c.extendedTTL
	}

	name := subject.Name
	if name == "" {
		name = subject.Email
	}

	now := c.now().UTC()
	expiresAt := now.Add(ttl)
	claims := &tokenClaims{
		Email:      subject.Email,
		Name:       name,
		RememberMe: extended,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(subject.UserID),
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate verifies a token and returns its claims. Malformed input,
// a bad signature, a wrong issuer or audience, and expiry (with zero
// leeway) all yield ok=false; Validate never surfaces an error.
func (c *Codec) Validate(tokenStr string) (*domainauth.Claims, bool) {
	if tokenStr == "" {
		return nil, false
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	},
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, false
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, false
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, false
	}

	out := &domainauth.Claims{
		UserID:     userID,
		Email:      claims.Email,
		Name:       claims.Name,
		RememberMe: claims.RememberMe,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, true
}

// Compile-time conformance to the port.
var _ ports.TokenCodec = (*Codec)(nil)
