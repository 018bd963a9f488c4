package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/pkg/httperr"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/model"
)

const uniqueViolation = "23505"

const userColumns = "id, email, password, is_verified, is_oauth, created_at"

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.IsVerified, &u.IsOAuth, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	query := `
        INSERT INTO users (email, password)
        VALUES ($1, $2)
        RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, query, email, passwordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, httperr.ErrDuplicateEmail
		}
		r.logger.Error("Failed to insert user", zap.Error(err))
		return nil, fmt.Errorf("insert user: %w", err)
	}
	r.logger.Info("User created", zap.Int("user_id", u.ID))
	return u, nil
}

// Update changes email and/or password. Nil fields keep their current value.
func (r *UserRepository) Update(ctx context.Context, id int, email, passwordHash *string) (*model.User, error) {
	query := `
        UPDATE users
        SET email = COALESCE($2, email),
            password = COALESCE($3, password)
        WHERE id = $1
        RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, query, id, email, passwordHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, httperr.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id int, verified bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET is_verified = $2 WHERE id = $1`, id, verified)
	if err != nil {
		return fmt.Errorf("set verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}
