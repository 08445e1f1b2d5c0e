package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/medtrack/medtrack-api/internal/core"
	"github.com/medtrack/medtrack-api/internal/data"
	domainauth "github.com/medtrack/medtrack-api/internal/domain/auth"
	"github.com/medtrack/medtrack-api/internal/domain/model"
)

// IdentityServiceOptions groups dependencies for IdentityService.
type IdentityServiceOptions struct {
	Users core.UserRepository
}

// IdentityService bridges provider assertions to local user accounts.
// Accounts are keyed by email: the same email always resolves to the same
// user no matter which provider asserted it.
type IdentityService struct {
	users core.UserRepository
}

// NewIdentityService constructs a new IdentityService.
func NewIdentityService(opts IdentityServiceOptions) *IdentityService {
	return &IdentityService{users: opts.Users}
}

// ErrMissingEmail is returned when an assertion has no email to key on.
var ErrMissingEmail = errors.New("assertion has no email")

// Resolve finds or creates the user for an assertion. Concurrent first
// logins race on the unique email constraint; the loser re-fetches the
// winner's row so both callers resolve to the same account. Name and
// provider subject are refreshed when they changed since the last login.
func (s *IdentityService) Resolve(ctx context.Context, assertion domainauth.Assertion) (*model.User, error) {
	if assertion.Email == "" {
		return nil, ErrMissingEmail
	}

	var googleID *string
	if assertion.Subject != "" {
		sub := assertion.Subject
		googleID = &sub
	}

	user, err := s.users.GetByEmail(ctx, assertion.Email)
	if errors.Is(err, data.ErrUserNotFound) {
		user, err = s.users.Create(ctx, data.CreateUserParams{
			Email:    assertion.Email,
			Name:     assertion.Name,
			GoogleID: googleID,
		})
		if errors.Is(err, data.ErrUserEmailExists) {
			// Lost the insert race; the winner's row is authoritative.
			user, err = s.users.GetByEmail(ctx, assertion.Email)
		}
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return s.refreshProfile(ctx, user, assertion, googleID)
}

// refreshProfile writes back provider-sourced fields when they drifted.
// The unchanged path performs no write.
func (s *IdentityService) refreshProfile(
	ctx context.Context,
	user *model.User,
	assertion domainauth.Assertion,
	googleID *string,
) (*model.User, error) {
	name := user.Name
	if assertion.Name != "" && assertion.Name != user.Name {
		name = assertion.Name
	}
	gid := user.GoogleID
	if googleID != nil && (user.GoogleID == nil || *user.GoogleID != *googleID) {
		gid = googleID
	}

	if name == user.Name && equalStringPtr(gid, user.GoogleID) {
		return user, nil
	}

	updated, err := s.users.UpdateProfile(ctx, data.UpdateProfileParams{
		ID:       user.ID,
		Name:     name,
		GoogleID: gid,
	})
	if err != nil {
		return nil, fmt.Errorf("update user profile: %w", err)
	}
	return updated, nil
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
