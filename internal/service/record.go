package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/medtrack/medtrack-api/internal/errors"

	"github.com/medtrack/medtrack-api/internal/core"
	"github.com/medtrack/medtrack-api/internal/data"
	"github.com/medtrack/medtrack-api/internal/domain/model"
)

// RecordServiceOptions groups dependencies for RecordService.
type RecordServiceOptions struct {
	Records    core.RecordRepository
	ValueTypes core.ValueTypeRepository
}

// RecordService orchestrates user-scoped health record CRUD. It enforces
// the per-metric rules the repository cannot: a two-value metric (blood
// pressure) must carry value2, a single-value metric must not.
type RecordService struct {
	records    core.RecordRepository
	valueTypes core.ValueTypeRepository
}

// NewRecordService constructs a new RecordService.
func NewRecordService(opts RecordServiceOptions) *RecordService {
	return &RecordService{records: opts.Records, valueTypes: opts.ValueTypes}
}

// Create validates the request against its value type and inserts the record.
func (s *RecordService) Create(ctx context.Context, userID int, req *model.CreateRecordRequest) (*model.Record, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	valueTypeID := model.ValueTypeBloodSugar
	if req.ValueTypeID != nil {
		valueTypeID = *req.ValueTypeID
	}
	if err := s.checkValueShape(ctx, valueTypeID, req.Value2); err != nil {
		return nil, err
	}

	rec, err := s.records.Create(ctx, userID, req)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("create record: %w", err))
	}
	return rec, nil
}

// GetByID retrieves one of the user's records.
func (s *RecordService) GetByID(ctx context.Context, userID, id int) (*model.Record, error) {
	rec, err := s.records.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return nil, apperrors.NotFound("record not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return rec, nil
}

// List returns the user's records, newest measurement first.
func (s *RecordService) List(ctx context.Context, userID int, opts model.RecordsListOptions) ([]*model.Record, error) {
	recs, err := s.records.List(ctx, userID, opts)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return recs, nil
}

// Update applies a partial update to one of the user's records.
func (s *RecordService) Update(ctx context.Context, userID, id int, req model.UpdateRecordRequest) (*model.Record, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if req.ValueTypeID != nil || req.Value2 != nil {
		if err := s.checkUpdateShape(ctx, userID, id, req); err != nil {
			return nil, err
		}
	}

	rec, err := s.records.Update(ctx, userID, id, req)
	if err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return nil, apperrors.NotFound("record not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return rec, nil
}

// Delete removes one of the user's records.
func (s *RecordService) Delete(ctx context.Context, userID, id int) error {
	ok, err := s.records.Delete(ctx, userID, id)
	if err != nil {
		return apperrors.MapDBError(err)
	}
	if !ok {
		return apperrors.NotFound("record not found")
	}
	return nil
}

// Stats summarizes the user's records for one value type.
func (s *RecordService) Stats(ctx context.Context, userID, valueTypeID int) (*model.RecordStats, error) {
	if _, err := s.lookupValueType(ctx, valueTypeID); err != nil {
		return nil, err
	}
	stats, err := s.records.Stats(ctx, userID, valueTypeID)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return stats, nil
}

// checkValueShape rejects a value2 that contradicts the metric's shape.
func (s *RecordService) checkValueShape(ctx context.Context, valueTypeID int, value2 *float64) error {
	vt, err := s.lookupValueType(ctx, valueTypeID)
	if err != nil {
		return err
	}
	if vt.RequiresTwoValues && value2 == nil {
		return apperrors.ValidationField("value2", vt.Name+" requires a second value")
	}
	if !vt.RequiresTwoValues && value2 != nil {
		return apperrors.ValidationField("value2", vt.Name+" does not take a second value")
	}
	return nil
}

// checkUpdateShape resolves the effective value type and value2 after the
// update and validates the combination against the metric.
func (s *RecordService) checkUpdateShape(ctx context.Context, userID, id int, req model.UpdateRecordRequest) error {
	existing, err := s.records.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return apperrors.NotFound("record not found")
		}
		return apperrors.MapDBError(err)
	}

	valueTypeID := existing.ValueTypeID
	if req.ValueTypeID != nil {
		valueTypeID = *req.ValueTypeID
	}
	value2 := existing.Value2
	if req.Value2 != nil {
		value2 = req.Value2
	}
	return s.checkValueShape(ctx, valueTypeID, value2)
}

func (s *RecordService) lookupValueType(ctx context.Context, id int) (*model.ValueType, error) {
	vt, err := s.valueTypes.GetActive(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrValueTypeNotFound) {
			return nil, apperrors.ValidationField("value_type_id", "unknown value type")
		}
		return nil, apperrors.MapDBError(err)
	}
	return vt, nil
}
