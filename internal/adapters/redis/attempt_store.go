package redis

// Package redis provides Redis-backed adapters.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/medtrack/medtrack-api/internal/domain/auth"
	"github.com/redis/go-redis/v9"
)

const defaultAttemptTTL = 30 * time.Minute

// AttemptStore is a Redis-based store for pending login attempts.
// Keys expire after the configured TTL so abandoned flows clean
// themselves up.
type AttemptStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewAttemptStore creates a new Redis-based attempt store with the default TTL.
func NewAttemptStore(client redis.UniversalClient) *AttemptStore {
	return NewAttemptStoreWithTTL(client, defaultAttemptTTL)
}

// NewAttemptStoreWithTTL creates a Redis attempt store with a custom TTL.
func NewAttemptStoreWithTTL(client redis.UniversalClient, ttl time.Duration) *AttemptStore {
	if ttl <= 0 {
		ttl = defaultAttemptTTL
	}
	return &AttemptStore{
		client: client,
		prefix: "auth_attempt:",
		ttl:    ttl,
	}
}

func (s *AttemptStore) Save(ctx context.Context, attempt domainauth.PendingAttempt) error {
	if attempt.ID == "" {
		return errors.New("attempt ID cannot be empty")
	}

	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}

	return s.client.Set(ctx, s.prefix+attempt.ID, data, s.ttl).Err()
}

func (s *AttemptStore) Get(ctx context.Context, id string) (domainauth.PendingAttempt, error) {
	if id == "" {
		return domainauth.PendingAttempt{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.PendingAttempt{}, ErrNotFound
		}
		return domainauth.PendingAttempt{}, fmt.Errorf("redis get: %w", err)
	}

	var attempt domainauth.PendingAttempt
	if unmarshalErr := json.Unmarshal([]byte(data), &attempt); unmarshalErr != nil {
		return domainauth.PendingAttempt{}, fmt.Errorf("unmarshal attempt: %w", unmarshalErr)
	}

	// Redis key expiry normally enforces the TTL; re-check the age in case
	// the attempt was written with a longer TTL by an older deploy.
	if !attempt.CreatedAt.IsZero() && time.Since(attempt.CreatedAt) > s.ttl {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.PendingAttempt{}, fmt.Errorf("cleanup expired attempt: %w", deleteErr)
		}
		return domainauth.PendingAttempt{}, ErrNotFound
	}

	return attempt, nil
}

func (s *AttemptStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

// ErrNotFound is returned when a pending attempt is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "attempt not found" }

var ErrNotFound error = notFoundError{}
