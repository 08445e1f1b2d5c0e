package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/medtrack-api/internal/ports"
)

func testCodec(t *testing.T, now func() time.Time) *Codec {
	t.Helper()
	codec, err := NewCodec(Config{
		Secret:   "test-secret",
		Issuer:   "medtrack",
		Audience: "medtrack-web",
		Now:      now,
	})
	require.NoError(t, err)
	return codec
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	_, err := NewCodec(Config{Issuer: "medtrack"})
	require.Error(t, err)
}

func TestCodec_IssueAndValidate(t *testing.T) {
	codec := testCodec(t, fixedNow)

	token, expiresAt, err := codec.Issue(ports.TokenSubject{
		UserID: 42,
		Email:  "alice@example.com",
		Name:   "Alice",
	}, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, fixedNow().Add(24*time.Hour), expiresAt)

	claims, ok := codec.Validate(token)
	require.True(t, ok)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.False(t, claims.RememberMe)
	assert.Equal(t, expiresAt, claims.ExpiresAt)
}

func TestCodec_Issue_NameFallsBackToEmail(t *testing.T) {
	codec := testCodec(t, fixedNow)

	token, _, err := codec.Issue(ports.TokenSubject{UserID: 7, Email: "bob@example.com"}, false)
	require.NoError(t, err)

	claims, ok := codec.Validate(token)
	require.True(t, ok)
	assert.Equal(t, "bob@example.com", claims.Name)
}

func TestCodec_Issue_ExtendedLifetime(t *testing.T) {
	codec := testCodec(t, fixedNow)

	token, expiresAt, err := codec.Issue(ports.TokenSubject{UserID: 1, Email: "a@b.c"}, true)
	require.NoError(t, err)
	assert.Equal(t, fixedNow().Add(30*24*time.Hour), expiresAt)

	claims, ok := codec.Validate(token)
	require.True(t, ok)
	assert.True(t, claims.RememberMe)
}

func TestCodec_Validate_Expired(t *testing.T) {
	issueAt := fixedNow()
	current := issueAt
	codec := testCodec(t, func() time.Time { return current })

	token, expiresAt, err := codec.Issue(ports.TokenSubject{UserID: 1, Email: "a@b.c"}, false)
	require.NoError(t, err)

	// One second before expiry: still valid.
	current = expiresAt.Add(-time.Second)
	_, ok := codec.Validate(token)
	assert.True(t, ok)

	// At or after expiry: rejected with zero leeway.
	current = expiresAt.Add(time.Second)
	_, ok = codec.Validate(token)
	assert.False(t, ok)
}

func TestCodec_Validate_Rejections(t *testing.T) {
	codec := testCodec(t, fixedNow)
	token, _, err := codec.Issue(ports.TokenSubject{UserID: 1, Email: "a@b.c"}, false)
	require.NoError(t, err)

	t.Run("empty token", func(t *testing.T) {
		_, ok := codec.Validate("")
		assert.False(t, ok)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, ok := codec.Validate("not.a.jwt")
		assert.False(t, ok)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, ok := codec.Validate(token + "x")
		assert.False(t, ok)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewCodec(Config{Secret: "other-secret", Issuer: "medtrack", Audience: "medtrack-web", Now: fixedNow})
		require.NoError(t, err)
		_, ok := other.Validate(token)
		assert.False(t, ok)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := NewCodec(Config{Secret: "test-secret", Issuer: "someone-else", Audience: "medtrack-web", Now: fixedNow})
		require.NoError(t, err)
		_, ok := other.Validate(token)
		assert.False(t, ok)
	})

	t.Run("wrong audience", func(t *testing.T) {
		other, err := NewCodec(Config{Secret: "test-secret", Issuer: "medtrack", Audience: "other-app", Now: fixedNow})
		require.NoError(t, err)
		_, ok := other.Validate(token)
		assert.False(t, ok)
	})
}
