//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxRecordNotesLen = 1000

// Record is a single health measurement belonging to a user.
// Value2 is only set for metrics that carry two readings (blood pressure).
type Record struct {
	ID              int       `json:"id"               db:"id"`
	UserID          int       `json:"user_id"          db:"user_id"`
	ValueTypeID     int       `json:"value_type_id"    db:"value_type_id"`
	Value           float64   `json:"value"            db:"value"`
	Value2          *float64  `json:"value2,omitempty" db:"value2"`
	MeasurementTime time.Time `json:"measurement_time" db:"measurement_time"`
	Notes           *string   `json:"notes,omitempty"  db:"notes"`
	CreatedAt       time.Time `json:"created_at"       db:"created_at"`
}

// RecordsListOptions controls filtering for listing records.
// Records are always scoped to one user and ordered newest measurement first.
type RecordsListOptions struct {
	ValueTypeID *int // exact match
	Limit       int
	Offset      int
}

// CreateRecordRequest represents parameters to create a Record.
// ValueTypeID defaults to blood sugar when omitted, matching the DB default.
type CreateRecordRequest struct {
	Value           float64   `json:"value"`
	Value2          *float64  `json:"value2,omitempty"`
	MeasurementTime time.Time `json:"measurement_time"`
	Notes           *string   `json:"notes,omitempty"`
	ValueTypeID     *int      `json:"value_type_id,omitempty"`
}

// UpdateRecordRequest represents parameters to update a Record.
type UpdateRecordRequest struct {
	Value           *float64   `json:"value,omitempty"`
	Value2          *float64   `json:"value2,omitempty"`
	MeasurementTime *time.Time `json:"measurement_time,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	ValueTypeID     *int       `json:"value_type_id,omitempty"`
}

// Validate validates CreateRecordRequest.
func (r *CreateRecordRequest) Validate() error {
	if r.Value <= 0 {
		return errors.New("value must be > 0")
	}
	if r.Value2 != nil && *r.Value2 <= 0 {
		return errors.New("value2 must be > 0 when set")
	}
	if r.MeasurementTime.IsZero() {
		return errors.New("measurement_time is required")
	}
	if r.ValueTypeID != nil && *r.ValueTypeID <= 0 {
		return errors.New("value_type_id must be > 0")
	}
	if err := validateNotes(r.Notes); err != nil {
		return err
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateRecordRequest.
func (r *UpdateRecordRequest) HasUpdates() bool {
	return r.Value != nil || r.Value2 != nil || r.MeasurementTime != nil ||
		r.Notes != nil ||
		r.ValueTypeID != nil
}

// Validate validates UpdateRecordRequest, ensuring at least one field is set and values are sane.
func (r *UpdateRecordRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Value != nil && *r.Value <= 0 {
		return errors.New("value must be > 0")
	}
	if r.Value2 != nil && *r.Value2 <= 0 {
		return errors.New("value2 must be > 0 when set")
	}
	if r.MeasurementTime != nil && r.MeasurementTime.IsZero() {
		return errors.New("measurement_time cannot be zero")
	}
	if r.ValueTypeID != nil && *r.ValueTypeID <= 0 {
		return errors.New("value_type_id must be > 0")
	}
	if err := validateNotes(r.Notes); err != nil {
		return err
	}
	return nil
}

func validateNotes(notes *string) error {
	if notes == nil {
		return nil
	}
	if utf8.RuneCountInString(strings.TrimSpace(*notes)) > maxRecordNotesLen {
		return errors.New("notes cannot exceed 1000 characters")
	}
	return nil
}

// RecordStats summarizes a user's records for one value type.
// Latest follows measurement time, not insertion order.
type RecordStats struct {
	Count   int      `json:"count"             db:"count"`
	Latest  *float64 `json:"latest,omitempty"  db:"latest"`
	Highest *float64 `json:"highest,omitempty" db:"highest"`
	Lowest  *float64 `json:"lowest,omitempty"  db:"lowest"`
	Average *float64 `json:"average,omitempty" db:"average"`
}
