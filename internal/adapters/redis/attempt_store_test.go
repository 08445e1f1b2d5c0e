package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/medtrack/medtrack-api/internal/domain/auth"
	"github.com/medtrack/medtrack-api/internal/testutil"
)

func testAttempt(id string) domainauth.PendingAttempt {
	return domainauth.PendingAttempt{
		ID:         id,
		Nonce:      "nonce-" + id,
		ReturnURL:  "/records",
		RememberMe: true,
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestAttemptStore_SaveGetDelete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewAttemptStore(client)
	ctx := context.Background()

	attempt := testAttempt("att-1")
	require.NoError(t, store.Save(ctx, attempt))

	got, err := store.Get(ctx, "att-1")
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, got.ID)
	assert.Equal(t, attempt.Nonce, got.Nonce)
	assert.Equal(t, attempt.ReturnURL, got.ReturnURL)
	assert.True(t, got.RememberMe)
	assert.True(t, attempt.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, store.Delete(ctx, "att-1"))
	_, err = store.Get(ctx, "att-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAttemptStore_Save_RequiresID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewAttemptStore(client)

	err := store.Save(context.Background(), domainauth.PendingAttempt{})
	require.Error(t, err)
}

func TestAttemptStore_Get_MissingAndEmptyID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewAttemptStore(client)
	ctx := context.Background()

	_, err := store.Get(ctx, "never-saved")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAttemptStore_Delete_EmptyIDIsNoop(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewAttemptStore(client)

	require.NoError(t, store.Delete(context.Background(), ""))
}

func TestAttemptStore_StaleAttemptIsExpired(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewAttemptStoreWithTTL(client, time.Minute)
	ctx := context.Background()

	attempt := testAttempt("stale")
	attempt.CreatedAt = time.Now().UTC().Add(-2 * time.Minute)
	require.NoError(t, store.Save(ctx, attempt))

	_, err := store.Get(ctx, "stale")
	require.ErrorIs(t, err, ErrNotFound)
}
