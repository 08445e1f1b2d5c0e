package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/medtrack/medtrack-api/internal/data/pgxutil"
	"github.com/medtrack/medtrack-api/internal/domain/model"
)

// ValueTypeRepo provides database operations for the metric catalog.
type ValueTypeRepo struct {
	DB *sql.DB
}

// NewValueTypeRepo creates a new ValueTypeRepo.
func NewValueTypeRepo(db *sql.DB) *ValueTypeRepo {
	return &ValueTypeRepo{DB: db}
}

const valueTypeColumnsSQL = `id, name, unit, name_zh, unit2, requires_two_values, is_active`

// ListActive retrieves all active value types ordered by ID.
func (r *ValueTypeRepo) ListActive(ctx context.Context) ([]*model.ValueType, error) {
	var rowsOut []model.ValueType
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+valueTypeColumnsSQL+` FROM value_types WHERE is_active ORDER BY id`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ValueType])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list value types: %w", err)
	}

	res := make([]*model.ValueType, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// GetActive retrieves a single active value type by ID. Inactive rows are
// treated the same as missing ones.
func (r *ValueTypeRepo) GetActive(ctx context.Context, id int) (*model.ValueType, error) {
	var vt model.ValueType
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+valueTypeColumnsSQL+` FROM value_types WHERE id = $1 AND is_active`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		vt, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ValueType])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrValueTypeNotFound
		}
		return nil, fmt.Errorf("failed to get value type: %w", err)
	}
	return &vt, nil
}
