package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/pkg/httperr"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/model"
)

// Attachments cascade-delete with their task (see schema.sql).
type AttachmentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAttachmentRepository(db *pgxpool.Pool, logger *zap.Logger) *AttachmentRepository {
	return &AttachmentRepository{db: db, logger: logger}
}

func (r *AttachmentRepository) Create(ctx context.Context, taskID int, fileName string, data []byte) (*model.Attachment, error) {
	query := `
        INSERT INTO attachments (task_id, file_name, file_attachment)
        VALUES ($1, $2, $3)
        RETURNING id`
	a := &model.Attachment{TaskID: taskID, FileName: fileName, Data: data}
	if err := r.db.QueryRow(ctx, query, taskID, fileName, data).Scan(&a.ID); err != nil {
		r.logger.Error("Failed to insert attachment", zap.Error(err), zap.Int("task_id", taskID))
		return nil, fmt.Errorf("insert attachment: %w", err)
	}
	r.logger.Info("Attachment stored",
		zap.Int("attachment_id", a.ID),
		zap.Int("task_id", taskID),
		zap.String("file_name", fileName),
	)
	return a, nil
}

func (r *AttachmentRepository) Get(ctx context.Context, fileID, taskID int) (*model.Attachment, error) {
	query := `
        SELECT id, file_name, file_attachment, task_id
        FROM attachments
        WHERE id = $1 AND task_id = $2`
	var a model.Attachment
	err := r.db.QueryRow(ctx, query, fileID, taskID).Scan(&a.ID, &a.FileName, &a.Data, &a.TaskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.ErrNotFound
		}
		return nil, fmt.Errorf("get attachment: %w", err)
	}
	return &a, nil
}
