package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	adapterredis "github.com/medtrack/medtrack-api/internal/adapters/redis"
	domainauth "github.com/medtrack/medtrack-api/internal/domain/auth"
	"github.com/medtrack/medtrack-api/internal/domain/model"
	"github.com/medtrack/medtrack-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.IdentityProvider
	Attempts ports.AttemptStore
	Identity *IdentityService
	Tokens   ports.TokenCodec
	Logger   *slog.Logger
}

// AuthService orchestrates the login flow: it creates pending attempts,
// completes provider callbacks, and issues session tokens. Callbacks
// always produce an explicit Outcome; provider and store failures are
// folded into failure outcomes rather than surfaced as errors, so the
// HTTP layer only ever translates outcomes to redirects.
type AuthService struct {
	provider ports.IdentityProvider
	attempts ports.AttemptStore
	identity *IdentityService
	tokens   ports.TokenCodec
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		provider: opts.Provider,
		attempts: opts.Attempts,
		identity: opts.Identity,
		tokens:   opts.Tokens,
		logger:   logger.With("component", "auth_service"),
		now:      time.Now,
	}
}

// BeginLoginInput carries the caller's login preferences.
type BeginLoginInput struct {
	ReturnURL  string
	RememberMe bool
}

// BeginLogin records a pending attempt and returns the provider URL to
// redirect the browser to. The attempt ID doubles as the OAuth state.
func (s *AuthService) BeginLogin(ctx context.Context, input BeginLoginInput) (string, error) {
	attempt := domainauth.PendingAttempt{
		ID:         uuid.New().String(),
		Nonce:      uuid.New().String(),
		ReturnURL:  input.ReturnURL,
		RememberMe: input.RememberMe,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.attempts.Save(ctx, attempt); err != nil {
		return "", fmt.Errorf("save pending attempt: %w", err)
	}

	authURL, err := s.provider.AuthURL(ctx, ports.BeginInput{State: attempt.ID, Nonce: attempt.Nonce})
	if err != nil {
		return "", fmt.Errorf("build auth URL: %w", err)
	}
	return authURL, nil
}

// CallbackInput carries the provider callback parameters.
type CallbackInput struct {
	State string
	Code  string

	// AlreadyAuthenticated reports whether the request carried a valid
	// session. It only influences where a duplicate callback redirects.
	AlreadyAuthenticated bool
}

// CallbackResult is the full result of handling a provider callback.
type CallbackResult struct {
	Outcome      domainauth.Outcome
	Token        string
	ExpiresAt    time.Time
	RememberMe   bool
	RedirectPath string
	User         *model.User
}

// HandleCallback completes a login flow. A callback whose state has no
// pending attempt never reaches the provider: a bare callback with
// neither state nor code is a duplicate, anything else (unknown,
// expired, or replayed state) is an OAuth failure. Every other failure
// maps to oauth_failed or missing_email.
func (s *AuthService) HandleCallback(ctx context.Context, input CallbackInput) CallbackResult {
	attempt, ok := s.consumeAttempt(ctx, input.State)
	if !ok {
		return s.failUnmatched(input)
	}

	if input.Code == "" {
		s.logger.WarnContext(ctx, "callback without authorization code", "state", input.State)
		return s.fail(domainauth.ReasonOAuthFailed)
	}

	assertion, err := s.provider.Exchange(ctx, ports.ExchangeInput{Code: input.Code, Nonce: attempt.Nonce})
	if err != nil {
		s.logger.WarnContext(ctx, "code exchange failed", "err", err)
		return s.fail(domainauth.ReasonOAuthFailed)
	}

	if assertion.Email == "" {
		s.logger.WarnContext(ctx, "provider assertion has no email", "subject", assertion.Subject)
		return s.fail(domainauth.ReasonMissingEmail)
	}

	user, err := s.identity.Resolve(ctx, assertion)
	if err != nil {
		if errors.Is(err, ErrMissingEmail) {
			return s.fail(domainauth.ReasonMissingEmail)
		}
		s.logger.ErrorContext(ctx, "failed to resolve user", "err", err)
		return s.fail(domainauth.ReasonOAuthFailed)
	}

	token, expiresAt, err := s.tokens.Issue(ports.TokenSubject{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}, attempt.RememberMe)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue session token", "err", err)
		return s.fail(domainauth.ReasonOAuthFailed)
	}

	return CallbackResult{
		Outcome:      domainauth.AuthenticatedOutcome(),
		Token:        token,
		ExpiresAt:    expiresAt,
		RememberMe:   attempt.RememberMe,
		RedirectPath: attempt.ReturnURL,
		User:         user,
	}
}

// Validate verifies a session token. It is a pure passthrough to the
// codec; there is no server-side session state to consult.
func (s *AuthService) Validate(token string) (*domainauth.Claims, bool) {
	return s.tokens.Validate(token)
}

// consumeAttempt looks up and deletes the pending attempt for a state.
// Deletion happens before the provider exchange so a replayed callback
// with the same state cannot complete twice.
func (s *AuthService) consumeAttempt(ctx context.Context, state string) (domainauth.PendingAttempt, bool) {
	if state == "" {
		return domainauth.PendingAttempt{}, false
	}

	attempt, err := s.attempts.Get(ctx, state)
	if err != nil {
		if !errors.Is(err, adapterredis.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to load pending attempt", "err", err)
		}
		return domainauth.PendingAttempt{}, false
	}

	if delErr := s.attempts.Delete(ctx, state); delErr != nil {
		s.logger.WarnContext(ctx, "failed to delete pending attempt", "err", delErr)
	}
	return attempt, true
}

func (s *AuthService) fail(reason domainauth.FailureReason) CallbackResult {
	return CallbackResult{Outcome: domainauth.Failed(reason)}
}

// failUnmatched handles a callback whose state has no pending attempt.
// An already authenticated browser goes back to the dashboard. Otherwise
// a callback with neither state nor code is a duplicate submission,
// while one that carries either parameter failed correlation and is an
// OAuth failure.
func (s *AuthService) failUnmatched(input CallbackInput) CallbackResult {
	if input.AlreadyAuthenticated {
		res := CallbackResult{Outcome: domainauth.AuthenticatedOutcome()}
		res.RedirectPath = "/dashboard"
		return res
	}
	if input.State == "" && input.Code == "" {
		return s.fail(domainauth.ReasonDuplicateCallback)
	}
	return s.fail(domainauth.ReasonOAuthFailed)
}
