// Package auth provides hand-written test doubles for the auth ports.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	adapterredis "github.com/medtrack/medtrack-api/internal/adapters/redis"
	domainauth "github.com/medtrack/medtrack-api/internal/domain/auth"
	"github.com/medtrack/medtrack-api/internal/ports"
)

// MockIdentityProvider is a configurable double for ports.IdentityProvider.
// Unset func fields fall back to deterministic defaults.
type MockIdentityProvider struct {
	AuthURLFunc  func(ctx context.Context, in ports.BeginInput) (string, error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Assertion, error)

	mu            sync.Mutex
	exchangeCalls []ports.ExchangeInput
}

var _ ports.IdentityProvider = (*MockIdentityProvider)(nil)

func (m *MockIdentityProvider) AuthURL(ctx context.Context, in ports.BeginInput) (string, error) {
	if m.AuthURLFunc != nil {
		return m.AuthURLFunc(ctx, in)
	}
	return fmt.Sprintf("https://idp.example.com/authorize?state=%s&nonce=%s", in.State, in.Nonce), nil
}

func (m *MockIdentityProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Assertion, error) {
	m.mu.Lock()
	m.exchangeCalls = append(m.exchangeCalls, in)
	m.mu.Unlock()

	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	return domainauth.Assertion{
		Subject: "mock-subject",
		Email:   "user@example.com",
		Name:    "Mock User",
	}, nil
}

// ExchangeCalls returns a copy of the recorded exchange inputs.
func (m *MockIdentityProvider) ExchangeCalls() []ports.ExchangeInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.ExchangeInput, len(m.exchangeCalls))
	copy(out, m.exchangeCalls)
	return out
}

// MemoryAttemptStore is an in-memory ports.AttemptStore for tests.
// A missing attempt reports the same not-found error as the Redis
// adapter so callers can test their error handling against either.
type MemoryAttemptStore struct {
	mu       sync.RWMutex
	attempts map[string]domainauth.PendingAttempt

	SaveErr   error
	GetErr    error
	DeleteErr error
}

var _ ports.AttemptStore = (*MemoryAttemptStore)(nil)

// NewMemoryAttemptStore creates an empty in-memory attempt store.
func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{attempts: make(map[string]domainauth.PendingAttempt)}
}

func (s *MemoryAttemptStore) Save(_ context.Context, attempt domainauth.PendingAttempt) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[attempt.ID] = attempt
	return nil
}

func (s *MemoryAttemptStore) Get(_ context.Context, id string) (domainauth.PendingAttempt, error) {
	if s.GetErr != nil {
		return domainauth.PendingAttempt{}, s.GetErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[id]
	if !ok {
		return domainauth.PendingAttempt{}, adapterredis.ErrNotFound
	}
	return attempt, nil
}

func (s *MemoryAttemptStore) Delete(_ context.Context, id string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, id)
	return nil
}

// Len reports how many attempts are currently stored.
func (s *MemoryAttemptStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.attempts)
}

// StaticTokenCodec is a ports.TokenCodec double that issues predictable
// tokens and validates from a fixed table.
type StaticTokenCodec struct {
	IssueFunc    func(subject ports.TokenSubject, extended bool) (string, time.Time, error)
	ValidateFunc func(token string) (*domainauth.Claims, bool)

	// Valid maps token strings to claims for the default Validate.
	Valid map[string]*domainauth.Claims

	// Now anchors default expiry computation. Zero means time.Now.
	Now func() time.Time
}

var _ ports.TokenCodec = (*StaticTokenCodec)(nil)

func (c *StaticTokenCodec) Issue(subject ports.TokenSubject, extended bool) (string, time.Time, error) {
	if c.IssueFunc != nil {
		return c.IssueFunc(subject, extended)
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	ttl := 24 * time.Hour
	if extended {
		ttl = 720 * time.Hour
	}
	return fmt.Sprintf("token-%d", subject.UserID), now().Add(ttl), nil
}

func (c *StaticTokenCodec) Validate(token string) (*domainauth.Claims, bool) {
	if c.ValidateFunc != nil {
		return c.ValidateFunc(token)
	}
	claims, ok := c.Valid[token]
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}
