package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/medtrack/medtrack-api/config"
	"github.com/medtrack/medtrack-api/internal/adapters/devauth"
	"github.com/medtrack/medtrack-api/internal/adapters/google"
	"github.com/medtrack/medtrack-api/internal/adapters/jwtauth"
	redisadapter "github.com/medtrack/medtrack-api/internal/adapters/redis"
	"github.com/medtrack/medtrack-api/internal/ports"
	"github.com/medtrack/medtrack-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Identity    *service.IdentityService
	Logger      *slog.Logger
}

// BuildAuthService wires the identity provider, pending attempt store,
// and token codec for the configured auth mode. Misconfiguration is an
// error: a server without working auth serves nothing useful.
func BuildAuthService(cfg AuthConfig) (*service.AuthService, error) {
	if cfg.RedisClient == nil {
		return nil, fmt.Errorf("auth service requires a redis client")
	}

	codec, err := jwtauth.NewCodec(jwtauth.Config{
		Secret:      cfg.Auth.Token.Secret,
		Issuer:      cfg.Auth.Token.Issuer,
		Audience:    cfg.Auth.Token.Audience,
		TTL:         cfg.Auth.Token.TTL,
		ExtendedTTL: cfg.Auth.Token.ExtendedTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("create token codec: %w", err)
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	attempts := redisadapter.NewAttemptStoreWithTTL(cfg.RedisClient, cfg.Auth.AttemptTTL)

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Attempts: attempts,
		Identity: cfg.Identity,
		Tokens:   codec,
		Logger:   cfg.Logger,
	}), nil
}

//nolint:ireturn // the provider interface is the point: oauth and mock modes are interchangeable.
func buildProvider(cfg AuthConfig) (ports.IdentityProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		provider, err := devauth.NewProvider(devauth.Config{
			Subject: cfg.Auth.DevAuth.Subject,
			Email:   cfg.Auth.DevAuth.Email,
			Name:    cfg.Auth.DevAuth.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("create dev auth provider: %w", err)
		}
		if cfg.Logger != nil {
			cfg.Logger.Warn("mock auth mode enabled; do not use in production", "email", cfg.Auth.DevAuth.Email)
		}
		return provider, nil

	case config.AuthModeOAuth:
		provider, err := google.NewProvider(google.ProviderConfig{
			ClientID:     cfg.Auth.Google.ClientID,
			ClientSecret: cfg.Auth.Google.ClientSecret,
			RedirectURL:  cfg.Auth.Google.RedirectURL,
			Scope:        cfg.Auth.Google.Scope,
			Issuer:       cfg.Auth.Google.Issuer,
		})
		if err != nil {
			return nil, fmt.Errorf("create google provider: %w", err)
		}
		return provider, nil

	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}
}
