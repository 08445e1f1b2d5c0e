package devauth

// Package devauth provides a simple, config-driven IdentityProvider for local development.

import (
	"context"
	"errors"
	"net/url"

	domainauth "github.com/medtrack/medtrack-api/internal/domain/auth"
	"github.com/medtrack/medtrack-api/internal/ports"
)

// Config controls the dev auth provider behavior.
type Config struct {
	Subject string
	Email   string
	Name    string
}

// Provider implements ports.IdentityProvider for local development.
// It short-circuits the OAuth flow by redirecting back to our own callback
// with the issued state. Exchange ignores the code and returns the
// configured identity.
type Provider struct {
	assertion domainauth.Assertion
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	return &Provider{
		assertion: domainauth.Assertion{
			Subject: cfg.Subject,
			Email:   cfg.Email,
			Name:    cfg.Name,
		},
	}, nil
}

// AuthURL returns a local callback URL carrying the given state.
func (p *Provider) AuthURL(_ context.Context, in ports.BeginInput) (string, error) {
	if in.State == "" {
		return "", errors.New("state is required")
	}
	// Our standard handler expects GET /api/auth/callback?code=...&state=...
	q := url.Values{}
	q.Set("code", "dev")
	q.Set("state", in.State)
	return "/api/auth/callback?" + q.Encode(), nil
}

// Exchange ignores the provided code (correlation is handled by the service)
// and returns the configured dev identity.
func (p *Provider) Exchange(_ context.Context, _ ports.ExchangeInput) (domainauth.Assertion, error) {
	return p.assertion, nil
}
