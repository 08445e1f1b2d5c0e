package service

import (
	"context"
	"errors"

	apperrors "github.com/medtrack/medtrack-api/internal/errors"

	"github.com/medtrack/medtrack-api/internal/core"
	"github.com/medtrack/medtrack-api/internal/data"
	"github.com/medtrack/medtrack-api/internal/domain/model"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users      core.UserRepository
	ValueTypes core.ValueTypeRepository
}

// UserService serves the authenticated user's own profile.
type UserService struct {
	users      core.UserRepository
	valueTypes core.ValueTypeRepository
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{users: opts.Users, valueTypes: opts.ValueTypes}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return user, nil
}

// SetPreferredValueType stores the user's preferred metric. A nil id
// clears the preference; a non-nil id must name an active value type.
func (s *UserService) SetPreferredValueType(ctx context.Context, userID int, valueTypeID *int) (*model.User, error) {
	if valueTypeID != nil {
		if _, err := s.valueTypes.GetActive(ctx, *valueTypeID); err != nil {
			if errors.Is(err, data.ErrValueTypeNotFound) {
				return nil, apperrors.ValidationField("value_type_id", "unknown value type")
			}
			return nil, apperrors.MapDBError(err)
		}
	}

	user, err := s.users.UpdatePreferredValueType(ctx, userID, valueTypeID)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return user, nil
}
