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
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/model"
)

// Sortable columns for task listing. Anything else falls back to due_date.
var sortColumns = map[string]string{
	"due_date":   "due_date",
	"created_at": "created_at",
	"title":      "title",
}

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

const taskColumns = "id, title, description, due_date, completed_at, is_completed, user_id, created_at, updated_at"

func scanTask(row pgx.Row) (*model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.CompletedAt,
		&t.IsCompleted,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	query := `
        INSERT INTO tasks (title, description, due_date, completed_at, is_completed, user_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + taskColumns
	created, err := scanTask(r.db.QueryRow(ctx, query,
		t.Title,
		t.Description,
		t.DueDate,
		t.CompletedAt,
		t.IsCompleted,
		t.UserID,
	))
	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.Error(err),
			zap.Int("user_id", t.UserID),
		)
		return nil, fmt.Errorf("insert task: %w", err)
	}
	r.logger.Info("Task inserted successfully",
		zap.Int("task_id", created.ID),
		zap.Int("user_id", created.UserID),
	)
	return created, nil
}

// UpdateTaskParams carries a partial update; nil fields keep their stored
// values. CompletedAt is written verbatim so completion can be cleared.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	IsCompleted *bool
	CompletedAt *time.Time
}

func (r *TaskRepository) Update(ctx context.Context, id, userID int, p UpdateTaskParams) (*model.Task, error) {
	query := `
        UPDATE tasks
        SET title        = COALESCE($3, title),
            description  = COALESCE($4, description),
            due_date     = COALESCE($5, due_date),
            is_completed = COALESCE($6, is_completed),
            completed_at = $7,
            updated_at   = NOW()
        WHERE id = $1 AND user_id = $2
        RETURNING ` + taskColumns

	updated, err := scanTask(r.db.QueryRow(ctx, query, id, userID, p.Title, p.Description, p.DueDate, p.IsCompleted, p.CompletedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.ErrUnauthorized
		}
		r.logger.Error("Failed to update task", zap.Error(err), zap.Int("task_id", id))
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error("Failed to delete task", zap.Error(err), zap.Int("task_id", id))
		return fmt.Errorf("delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return httperr.ErrUnauthorized
	}
	r.logger.Info("Task deleted", zap.Int("task_id", id), zap.Int("user_id", userID))
	return nil
}

func (r *TaskRepository) Get(ctx context.Context, id, userID int) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`
	t, err := scanTask(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.ErrUnauthorized
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) List(ctx context.Context, userID int, search, sort string) ([]model.Task, error) {
	column, ok := sortColumns[sort]
	if !ok {
		column = "due_date"
	}
	query := `SELECT ` + taskColumns + `
        FROM tasks
        WHERE user_id = $1 AND title LIKE '%' || $2 || '%'
        ORDER BY ` + column

	rows, err := r.db.Query(ctx, query, userID, search)
	if err != nil {
		r.logger.Error("Failed to query tasks", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Similar returns title/description pairs a user has entered more than once.
func (r *TaskRepository) Similar(ctx context.Context, userID int) ([]model.SimilarTask, error) {
	query := `
        SELECT title, description, COUNT(*) AS count
        FROM tasks
        WHERE user_id = $1
        GROUP BY title, description
        HAVING COUNT(*) > 1`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to query similar tasks", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("similar tasks: %w", err)
	}
	defer rows.Close()

	similar := []model.SimilarTask{}
	for rows.Next() {
		var s model.SimilarTask
		if err := rows.Scan(&s.Title, &s.Description, &s.Count); err != nil {
			return nil, fmt.Errorf("scan similar task: %w", err)
		}
		similar = append(similar, s)
	}
	return similar, rows.Err()
}

func (r *TaskRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}

// AllDueToday returns every task, across all users, whose due date falls on
// the current day. Used by the reminder scheduler.
func (r *TaskRepository) AllDueToday(ctx context.Context) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE due_date::date = CURRENT_DATE`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("tasks due today: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}
