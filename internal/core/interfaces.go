// Package core defines the repository interfaces the service layer depends
// on. The data layer provides the implementations; services never touch
// SQL directly.
package core

import (
	"context"

	"github.com/medtrack/medtrack-api/internal/data"
	"github.com/medtrack/medtrack-api/internal/domain/model"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, p data.CreateUserParams) (*model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, p data.UpdateProfileParams) (*model.User, error)
	UpdatePreferredValueType(ctx context.Context, userID int, valueTypeID *int) (*model.User, error)
}

// RecordRepository defines persistence operations for health records.
// Every operation is scoped to one user.
type RecordRepository interface {
	Create(ctx context.Context, userID int, req *model.CreateRecordRequest) (*model.Record, error)
	GetByID(ctx context.Context, userID, id int) (*model.Record, error)
	List(ctx context.Context, userID int, opts model.RecordsListOptions) ([]*model.Record, error)
	Update(ctx context.Context, userID, id int, req model.UpdateRecordRequest) (*model.Record, error)
	Delete(ctx context.Context, userID, id int) (bool, error)
	Stats(ctx context.Context, userID, valueTypeID int) (*model.RecordStats, error)
}

// ValueTypeRepository defines read operations for the metric catalog.
type ValueTypeRepository interface {
	ListActive(ctx context.Context) ([]*model.ValueType, error)
	GetActive(ctx context.Context, id int) (*model.ValueType, error)
}

// Compile-time checks that the data layer satisfies the interfaces.
var (
	_ UserRepository      = (*data.UserRepo)(nil)
	_ RecordRepository    = (*data.RecordRepo)(nil)
	_ ValueTypeRepository = (*data.ValueTypeRepo)(nil)
)
