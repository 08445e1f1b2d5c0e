package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses Google OAuth/OIDC for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// GoogleConfig contains Google OAuth/OIDC configuration.
type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:8080/api/auth/callback"`
	Scope        string `env:"SCOPE"        envDefault:"openid profile email"`
	// Issuer is the OIDC issuer used for discovery. Google's issuer is the
	// sensible default; override only for testing against a local IdP.
	Issuer string `env:"ISSUER" envDefault:"https://accounts.google.com"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	Subject string `env:"SUBJECT" envDefault:"dev-google-id"`
	Email   string `env:"EMAIL"   envDefault:"dev@example.com"`
	Name    string `env:"NAME"    envDefault:"Dev User"`
}

// TokenConfig controls JWT issuance and validation.
type TokenConfig struct {
	// Secret signs and verifies session tokens. Required: startup fails
	// without it rather than degrading silently.
	Secret   string `env:"SECRET"`
	Issuer   string `env:"ISSUER"   envDefault:"medtrack-api"`
	Audience string `env:"AUDIENCE" envDefault:"medtrack-app"`

	// TTL is the token lifetime for a standard login.
	TTL time.Duration `env:"TTL" envDefault:"24h"`
	// ExtendedTTL is the token lifetime when the user checks "remember me".
	ExtendedTTL time.Duration `env:"EXTENDED_TTL" envDefault:"720h"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which identity provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// Google OAuth configuration (used when Mode=oauth).
	Google GoogleConfig `envPrefix:"GOOGLE_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// Token configuration for the session JWT.
	Token TokenConfig `envPrefix:"TOKEN_"`

	// AttemptTTL bounds how long a pending login attempt stays valid
	// between the redirect to the provider and the callback.
	AttemptTTL time.Duration `env:"AUTH_ATTEMPT_TTL" envDefault:"30m"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Token.TTL <= 0 {
		a.Token.TTL = 24 * time.Hour
	}
	if a.Token.ExtendedTTL <= 0 {
		a.Token.ExtendedTTL = 30 * 24 * time.Hour
	}
	if a.AttemptTTL <= 0 {
		a.AttemptTTL = 30 * time.Minute
	}
}
