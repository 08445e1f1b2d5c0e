package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/medtrack/medtrack-api/internal/data/pgxutil"
	"github.com/medtrack/medtrack-api/internal/domain/model"
)

// RecordRepo provides database operations for health records.
// Every query is scoped by user_id; a record belonging to another user is
// indistinguishable from a missing one.
type RecordRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewRecordRepo creates a new RecordRepo with real time provider.
func NewRecordRepo(db *sql.DB) *RecordRepo {
	return &RecordRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewRecordRepoWithTimeProvider creates a new RecordRepo with a custom time provider (useful for tests).
func NewRecordRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *RecordRepo {
	return &RecordRepo{DB: db, timeProvider: tp}
}

const recordColumnsSQL = `id, user_id, value_type_id, value, value2, measurement_time, notes, created_at`

// Create inserts a new record for the user. A nil ValueTypeID falls back
// to the column default (blood sugar).
func (r *RecordRepo) Create(ctx context.Context, userID int, req *model.CreateRecordRequest) (*model.Record, error) {
	if req == nil {
		return nil, errors.New("create record request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	valueTypeID := model.ValueTypeBloodSugar
	if req.ValueTypeID != nil {
		valueTypeID = *req.ValueTypeID
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Record
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO records (user_id, value_type_id, value, value2, measurement_time, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+recordColumnsSQL,
			userID,
			valueTypeID,
			req.Value,
			req.Value2,
			req.MeasurementTime.UTC(),
			req.Notes,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Record])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}
	return &out, nil
}

// GetByID retrieves one of the user's records by ID.
func (r *RecordRepo) GetByID(ctx context.Context, userID, id int) (*model.Record, error) {
	var rec model.Record
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+recordColumnsSQL+` FROM records WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rec, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Record])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record by ID: %w", err)
	}
	return &rec, nil
}

// List retrieves the user's records, newest measurement first.
func (r *RecordRepo) List(ctx context.Context, userID int, opts model.RecordsListOptions) ([]*model.Record, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := max(opts.Offset, 0)

	query := `SELECT ` + recordColumnsSQL + ` FROM records WHERE user_id = $1`
	args := []any{userID}
	if opts.ValueTypeID != nil {
		args = append(args, *opts.ValueTypeID)
		query += ` AND value_type_id = $` + strconv.Itoa(len(args))
	}
	args = append(args, limit, offset)
	query += ` ORDER BY measurement_time DESC, id DESC LIMIT $` + strconv.Itoa(len(args)-1) +
		` OFFSET $` + strconv.Itoa(len(args))

	var rowsOut []model.Record
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Record])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	res := make([]*model.Record, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of one of the user's records.
func (r *RecordRepo) Update(ctx context.Context, userID, id int, req model.UpdateRecordRequest) (*model.Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id, userID)
	query := "UPDATE records SET " + setClause +
		" WHERE id = $" + strconv.Itoa(len(args)-1) +
		" AND user_id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + recordColumnsSQL

	var out model.Record
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Record])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a record based on the request.
func (r *RecordRepo) buildUpdateClause(req model.UpdateRecordRequest) (string, []any) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.Value != nil {
		setParts = append(setParts, fmt.Sprintf("value = $%d", nextIdx()))
		args = append(args, *req.Value)
	}
	if req.Value2 != nil {
		setParts = append(setParts, fmt.Sprintf("value2 = $%d", nextIdx()))
		args = append(args, *req.Value2)
	}
	if req.MeasurementTime != nil {
		setParts = append(setParts, fmt.Sprintf("measurement_time = $%d", nextIdx()))
		args = append(args, req.MeasurementTime.UTC())
	}
	if req.Notes != nil {
		if strings.TrimSpace(*req.Notes) == "" {
			setParts = append(setParts, "notes = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("notes = $%d", nextIdx()))
			args = append(args, *req.Notes)
		}
	}
	if req.ValueTypeID != nil {
		setParts = append(setParts, fmt.Sprintf("value_type_id = $%d", nextIdx()))
		args = append(args, *req.ValueTypeID)
	}

	return strings.Join(setParts, ", "), args
}

// Delete deletes one of the user's records by ID.
func (r *RecordRepo) Delete(ctx context.Context, userID, id int) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM records WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete record: %w", err)
	}
	return rows > 0, nil
}

// Stats aggregates the user's records for one value type in a single
// query. Latest is selected by measurement time so backfilled entries do
// not masquerade as current.
func (r *RecordRepo) Stats(ctx context.Context, userID, valueTypeID int) (*model.RecordStats, error) {
	var stats model.RecordStats
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT count(*)::int AS count,
			       (SELECT value FROM records
			        WHERE user_id = $1 AND value_type_id = $2
			        ORDER BY measurement_time DESC, id DESC LIMIT 1)::float8 AS latest,
			       max(value)::float8 AS highest,
			       min(value)::float8 AS lowest,
			       avg(value)::float8 AS average
			FROM records
			WHERE user_id = $1 AND value_type_id = $2`,
			userID, valueTypeID)
		if err != nil {
			return err
		}
		defer rows.Close()
		stats, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RecordStats])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute record stats: %w", err)
	}
	return &stats, nil
}
