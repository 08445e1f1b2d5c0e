package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/medtrack/medtrack-api/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	State string
	Nonce string
}

// IdentityProvider initiates and completes an authentication flow against an IdP.
type IdentityProvider interface {
	// AuthURL builds the provider authorization URL for the given state and nonce.
	AuthURL(ctx context.Context, in BeginInput) (string, error)

	// Exchange completes the login flow, verifying the nonce, and returns the
	// asserted identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Assertion, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	Nonce string
}

// AttemptStore persists pending login attempts keyed by their correlation ID.
type AttemptStore interface {
	Save(ctx context.Context, attempt domainauth.PendingAttempt) error
	Get(ctx context.Context, id string) (domainauth.PendingAttempt, error)
	Delete(ctx context.Context, id string) error
}

// TokenSubject carries the user fields embedded in an issued token.
type TokenSubject struct {
	UserID int
	Email  string
	Name   string
}

// TokenCodec issues and validates session tokens.
type TokenCodec interface {
	// Issue signs a token for the subject. Extended selects the long
	// "remember me" lifetime.
	Issue(subject TokenSubject, extended bool) (token string, expiresAt time.Time, err error)

	// Validate verifies a token and returns its claims. Any failure,
	// whatever the cause, yields ok=false; Validate never returns an error
	// to the caller.
	Validate(token string) (claims *domainauth.Claims, ok bool)
}
