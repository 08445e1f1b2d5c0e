package devauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/medtrack-api/internal/ports"
)

func TestNewProvider_RequiresEmail(t *testing.T) {
	_, err := NewProvider(Config{Subject: "sub", Name: "Dev"})
	require.Error(t, err)
}

func TestProvider_AuthURL(t *testing.T) {
	p, err := NewProvider(Config{Email: "dev@example.com"})
	require.NoError(t, err)

	u, err := p.AuthURL(context.Background(), ports.BeginInput{State: "state-1", Nonce: "n"})
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/callback?code=dev&state=state-1", u)

	_, err = p.AuthURL(context.Background(), ports.BeginInput{})
	require.Error(t, err)
}

func TestProvider_Exchange(t *testing.T) {
	p, err := NewProvider(Config{Subject: "dev-sub", Email: "dev@example.com", Name: "Dev User"})
	require.NoError(t, err)

	assertion, err := p.Exchange(context.Background(), ports.ExchangeInput{Code: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "dev-sub", assertion.Subject)
	assert.Equal(t, "dev@example.com", assertion.Email)
	assert.Equal(t, "Dev User", assertion.Name)
}
