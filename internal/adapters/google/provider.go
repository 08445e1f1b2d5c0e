package google

// Package google provides the Google OIDC identity provider adapter.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	domainauth "github.com/medtrack/medtrack-api/internal/domain/auth"
	"github.com/medtrack/medtrack-api/internal/ports"
	"golang.org/x/oauth2"
)

// Provider implements ports.IdentityProvider using Google OIDC.
type Provider struct {
	config     *oauth2.Config
	httpClient *http.Client

	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier
}

// ProviderConfig holds configuration for the Google provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	Issuer       string
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new Google OIDC provider. Discovery runs once at
// construction, so a misconfigured issuer fails at startup.
func NewProvider(config ProviderConfig) (*Provider, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if config.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	issuer := strings.TrimSpace(config.Issuer)
	if issuer == "" {
		issuer = "https://accounts.google.com"
	}
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	p := &Provider{
		httpClient:   httpClient,
		oidcProvider: op,
		verifier:     op.Verifier(&gooidc.Config{ClientID: config.ClientID}),
	}

	scope := config.Scope
	if scope == "" {
		scope = "openid profile email"
	}
	p.config = &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes:       strings.Fields(scope),
		Endpoint:     op.Endpoint(),
	}

	return p, nil
}

// AuthURL builds the Google authorization URL for the given state and nonce.
func (p *Provider) AuthURL(_ context.Context, in ports.BeginInput) (string, error) {
	if in.State == "" {
		return "", errors.New("state is required")
	}
	if in.Nonce == "" {
		return "", errors.New("nonce is required")
	}

	return p.config.AuthCodeURL(in.State,
		oauth2.SetAuthURLParam("nonce", in.Nonce),
		oauth2.SetAuthURLParam("response_type", "code"),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	), nil
}

// Exchange completes the code exchange, verifies the ID token and nonce,
// and maps Google's claims into a domain assertion.
func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Assertion, error) {
	if in.Code == "" {
		return domainauth.Assertion{}, errors.New("authorization code is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.config.Exchange(ctx, in.Code)
	if err != nil {
		return domainauth.Assertion{}, fmt.Errorf("exchange code for token: %w", err)
	}

	rawID, err := idTokenFromToken(token)
	if err != nil {
		return domainauth.Assertion{}, err
	}
	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return domainauth.Assertion{}, fmt.Errorf("verify id_token: %w", err)
	}

	var claims idTokenClaims
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return domainauth.Assertion{}, fmt.Errorf("parse id_token claims: %w", claimsErr)
	}
	if in.Nonce != "" && claims.Nonce != in.Nonce {
		return domainauth.Assertion{}, errors.New("invalid nonce")
	}

	assertion := mapIDTokenClaims(claims)

	// Fill missing fields from UserInfo; some Google responses omit the
	// profile claims from the ID token depending on scopes.
	if assertion.Email == "" || assertion.Name == "" {
		if fillErr := p.fillFromUserInfo(ctx, token.AccessToken, &assertion); fillErr != nil {
			return domainauth.Assertion{}, fmt.Errorf("get user info: %w", fillErr)
		}
	}

	return assertion, nil
}

// idTokenClaims represents the subset of Google ID token claims we consume.
type idTokenClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Nonce string `json:"nonce"`
}

// userInfoClaims represents the userinfo endpoint payload.
type userInfoClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func mapIDTokenClaims(c idTokenClaims) domainauth.Assertion {
	return domainauth.Assertion{
		Subject: c.Sub,
		Email:   c.Email,
		Name:    c.Name,
	}
}

func (p *Provider) fillFromUserInfo(ctx context.Context, accessToken string, a *domainauth.Assertion) error {
	ui, err := p.oidcProvider.UserInfo(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	if err != nil {
		return fmt.Errorf("fetch user info: %w", err)
	}
	var claims userInfoClaims
	if claimsErr := ui.Claims(&claims); claimsErr != nil {
		return fmt.Errorf("decode user info: %w", claimsErr)
	}
	if a.Subject == "" {
		a.Subject = claims.Sub
	}
	if a.Email == "" {
		a.Email = claims.Email
	}
	if a.Name == "" {
		a.Name = claims.Name
	}
	return nil
}

// idTokenFromToken extracts the id_token from oauth2.Token.
func idTokenFromToken(tok *oauth2.Token) (string, error) {
	if tok == nil {
		return "", errors.New("nil token")
	}
	raw := tok.Extra("id_token")
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", errors.New("missing id_token in token response")
	}
	return s, nil
}
