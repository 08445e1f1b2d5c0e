package auth

// Package auth contains domain-level types for authentication.
// It is pure and free of framework/adapter concerns.

import "time"

// Assertion represents the identity attested by the provider after a
// successful code exchange. Adapters map provider-specific claims into
// this shape. Email is the only field the rest of the system requires;
// a missing email fails the login rather than creating a partial user.
type Assertion struct {
	Subject string // stable provider identifier (Google sub)
	Email   string
	Name    string
}

// Claims is the validated content of a session token.
type Claims struct {
	UserID     int
	Email      string
	Name       string
	RememberMe bool
	ExpiresAt  time.Time
}

// PendingAttempt is the server-side record of a login flow between the
// redirect to the provider and the callback. ID doubles as the OAuth
// state parameter; an attempt that cannot be found by ID is treated as
// a correlation mismatch.
type PendingAttempt struct {
	ID         string    `json:"id"`
	Nonce      string    `json:"nonce"`
	ReturnURL  string    `json:"return_url"`
	RememberMe bool      `json:"remember_me"`
	CreatedAt  time.Time `json:"created_at"`
}

// FailureReason identifies why a login flow ended without a session.
// Values are stable: the HTTP layer forwards them verbatim as the
// error query parameter on the login redirect.
type FailureReason string

const (
	ReasonOAuthFailed       FailureReason = "oauth_failed"
	ReasonMissingEmail      FailureReason = "missing_email"
	ReasonDuplicateCallback FailureReason = "duplicate_callback"
)

// Outcome is the explicit result of a callback: either authenticated or
// failed with a reason. Transport layers translate outcomes to redirects.
type Outcome struct {
	Authenticated bool
	Reason        FailureReason
}

// AuthenticatedOutcome returns a successful outcome.
func AuthenticatedOutcome() Outcome { return Outcome{Authenticated: true} }

// Failed returns a failed outcome with the given reason.
func Failed(reason FailureReason) Outcome { return Outcome{Reason: reason} }
