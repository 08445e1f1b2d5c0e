package service

import (
	"context"
	"errors"

	apperrors "github.com/medtrack/medtrack-api/internal/errors"

	"github.com/medtrack/medtrack-api/internal/core"
	"github.com/medtrack/medtrack-api/internal/data"
	"github.com/medtrack/medtrack-api/internal/domain/model"
)

// ValueTypeServiceOptions groups dependencies for ValueTypeService.
type ValueTypeServiceOptions struct {
	ValueTypes core.ValueTypeRepository
}

// ValueTypeService exposes the read-only metric catalog.
type ValueTypeService struct {
	valueTypes core.ValueTypeRepository
}

// NewValueTypeService constructs a new ValueTypeService.
func NewValueTypeService(opts ValueTypeServiceOptions) *ValueTypeService {
	return &ValueTypeService{valueTypes: opts.ValueTypes}
}

// List returns all active value types.
func (s *ValueTypeService) List(ctx context.Context) ([]*model.ValueType, error) {
	vts, err := s.valueTypes.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return vts, nil
}

// GetByID returns a single active value type.
func (s *ValueTypeService) GetByID(ctx context.Context, id int) (*model.ValueType, error) {
	vt, err := s.valueTypes.GetActive(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrValueTypeNotFound) {
			return nil, apperrors.NotFound("value type not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return vt, nil
}
