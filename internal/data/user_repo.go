package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/medtrack/medtrack-api/internal/data/pgxutil"
	"github.com/medtrack/medtrack-api/internal/domain/model"
)

// UserRepo provides database operations for users.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

const userColumnsSQL = `id, email, name, google_id, preferred_value_type_id, invitation_code, created_at`

// CreateUserParams holds the fields for inserting a user.
type CreateUserParams struct {
	Email    string
	Name     string
	GoogleID *string
}

// Create inserts a new user. The unique email constraint is the arbiter
// for concurrent first logins; the loser gets ErrUserEmailExists and is
// expected to re-fetch by email.
func (r *UserRepo) Create(ctx context.Context, p CreateUserParams) (*model.User, error) {
	email := strings.TrimSpace(p.Email)
	if email == "" {
		return nil, errors.New("email is required")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = email
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (email, name, google_id, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING `+userColumnsSQL,
			email,
			name,
			p.GoogleID,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumnsSQL+` FROM users WHERE id = $1`, "failed to get user by ID", id)
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(
		ctx,
		`SELECT `+userColumnsSQL+` FROM users WHERE email = $1`,
		"failed to get user by email",
		strings.TrimSpace(email),
	)
}

// UpdateProfileParams holds the identity fields refreshed on login.
type UpdateProfileParams struct {
	ID       int
	Name     string
	GoogleID *string
}

// UpdateProfile refreshes the provider-sourced fields of a user.
func (r *UserRepo) UpdateProfile(ctx context.Context, p UpdateProfileParams) (*model.User, error) {
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE users SET name = $2, google_id = $3
			WHERE id = $1
			RETURNING `+userColumnsSQL,
			p.ID,
			p.Name,
			p.GoogleID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// UpdatePreferredValueType sets the user's preferred metric. A nil id clears it.
func (r *UserRepo) UpdatePreferredValueType(ctx context.Context, userID int, valueTypeID *int) (*model.User, error) {
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE users SET preferred_value_type_id = $2
			WHERE id = $1
			RETURNING `+userColumnsSQL,
			userID,
			valueTypeID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// --- helpers ---

// getByQuery executes a query and returns a single user.
func (r *UserRepo) getByQuery(ctx context.Context, q string, errMsg string, args ...any) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &user, nil
}

func (r *UserRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrUserEmailExists
	}
	return err
}
