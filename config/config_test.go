package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    AuthMode
		wantErr bool
	}{
		{input: "oauth", want: AuthModeOAuth},
		{input: "OAuth", want: AuthModeOAuth},
		{input: "mock", want: AuthModeMock},
		{input: "MOCK", want: AuthModeMock},
		{input: "saml", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	cfg := AuthConfig{}
	cfg.Sanitize()

	assert.Equal(t, 24*time.Hour, cfg.Token.TTL)
	assert.Equal(t, 30*24*time.Hour, cfg.Token.ExtendedTTL)
	assert.Equal(t, 30*time.Minute, cfg.AttemptTTL)
}

func TestAuthConfig_Sanitize_KeepsExplicitValues(t *testing.T) {
	cfg := AuthConfig{
		Token: TokenConfig{
			TTL:         time.Hour,
			ExtendedTTL: 48 * time.Hour,
		},
		AttemptTTL: 5 * time.Minute,
	}
	cfg.Sanitize()

	assert.Equal(t, time.Hour, cfg.Token.TTL)
	assert.Equal(t, 48*time.Hour, cfg.Token.ExtendedTTL)
	assert.Equal(t, 5*time.Minute, cfg.AttemptTTL)
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Run("DEV flag wins", func(t *testing.T) {
		cfg := AppConfig{IsDev: true}
		cfg.Sanitize()
		assert.True(t, cfg.IsDev)
	})

	t.Run("APP_ENV development", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		cfg := AppConfig{}
		cfg.Sanitize()
		assert.True(t, cfg.IsDev)
	})

	t.Run("APP_ENV dev", func(t *testing.T) {
		t.Setenv("APP_ENV", "dev")
		cfg := AppConfig{}
		cfg.Sanitize()
		assert.True(t, cfg.IsDev)
	})

	t.Run("production stays off", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		cfg := AppConfig{}
		cfg.Sanitize()
		assert.False(t, cfg.IsDev)
	})
}
