package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/pkg/httperr"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/model"
)

type VerificationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewVerificationRepository(db *pgxpool.Pool, logger *zap.Logger) *VerificationRepository {
	return &VerificationRepository{db: db, logger: logger}
}

// Upsert replaces any outstanding token for the user, so at most one is live.
func (r *VerificationRepository) Upsert(ctx context.Context, userID, token int, expiresAt time.Time) error {
	query := `
        INSERT INTO verifications (user_id, token, expires_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO UPDATE
        SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at`
	if _, err := r.db.Exec(ctx, query, userID, token, expiresAt); err != nil {
		r.logger.Error("Failed to upsert verification token", zap.Int("user_id", userID), zap.Error(err))
		return fmt.Errorf("upsert verification: %w", err)
	}
	return nil
}

func (r *VerificationRepository) GetByToken(ctx context.Context, token int) (*model.Verification, error) {
	query := `SELECT user_id, token, expires_at FROM verifications WHERE token = $1`
	var v model.Verification
	err := r.db.QueryRow(ctx, query, token).Scan(&v.UserID, &v.Token, &v.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.ErrFalseToken
		}
		return nil, fmt.Errorf("get verification: %w", err)
	}
	return &v, nil
}

func (r *VerificationRepository) Delete(ctx context.Context, userID int) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM verifications WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete verification: %w", err)
	}
	return nil
}
