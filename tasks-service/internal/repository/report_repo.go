package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/contracts/reports"
	"github.com/Yahya-git/To-Do-List-MS/pkg/httperr"
)

// ReportRepository runs the per-user aggregate queries. All queries are
// read-only and scoped to a single user; reports are always computed against
// the current task table, never from rollups.
type ReportRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReportRepository(db *pgxpool.Pool, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{db: db, logger: logger}
}

func (r *ReportRepository) Count(ctx context.Context, userID int) (reports.CountReport, error) {
	query := `
        SELECT COUNT(id) AS total_tasks,
               COALESCE(SUM(CASE WHEN is_completed = TRUE THEN 1 ELSE 0 END), 0) AS completed_tasks,
               COALESCE(SUM(CASE WHEN is_completed = FALSE THEN 1 ELSE 0 END), 0) AS incomplete_tasks
        FROM tasks
        WHERE user_id = $1`
	var report reports.CountReport
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&report.TotalTasks,
		&report.CompletedTasks,
		&report.IncompleteTasks,
	)
	if err != nil {
		r.logger.Error("Failed to compute count report", zap.Error(err), zap.Int("user_id", userID))
		return report, fmt.Errorf("count report: %w", err)
	}
	return report, nil
}

// CompletedCount feeds the average report; the denominator comes from the
// user's creation time held by users-service.
func (r *ReportRepository) CompletedCount(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(id) FROM tasks WHERE user_id = $1 AND is_completed = TRUE`,
		userID,
	).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count completed tasks", zap.Error(err), zap.Int("user_id", userID))
		return 0, fmt.Errorf("completed count: %w", err)
	}
	return count, nil
}

func (r *ReportRepository) Overdue(ctx context.Context, userID int) (reports.OverdueReport, error) {
	query := `
        SELECT COUNT(id) AS overdue_tasks
        FROM tasks
        WHERE user_id = $1 AND COALESCE(completed_at, NOW()) > due_date`
	var report reports.OverdueReport
	if err := r.db.QueryRow(ctx, query, userID).Scan(&report.OverdueTasks); err != nil {
		r.logger.Error("Failed to compute overdue report", zap.Error(err), zap.Int("user_id", userID))
		return report, fmt.Errorf("overdue report: %w", err)
	}
	return report, nil
}

// DateMax returns the calendar day with the most completions. Ties break
// toward the earliest date. No completed tasks is a distinct no-data
// condition, not a failure.
func (r *ReportRepository) DateMax(ctx context.Context, userID int) (reports.DateMaxReport, error) {
	query := `
        SELECT DATE_TRUNC('day', completed_at)::date AS date,
               COUNT(*) AS completed_tasks
        FROM tasks
        WHERE user_id = $1 AND is_completed = TRUE
        GROUP BY date
        ORDER BY completed_tasks DESC, date ASC
        LIMIT 1`
	var report reports.DateMaxReport
	var date time.Time
	err := r.db.QueryRow(ctx, query, userID).Scan(&date, &report.CompletedTasks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report, httperr.ErrNoReportData
		}
		r.logger.Error("Failed to compute date-max report", zap.Error(err), zap.Int("user_id", userID))
		return report, fmt.Errorf("date-max report: %w", err)
	}
	report.Date = date.Format("2006-01-02")
	return report, nil
}

// DayOfWeek counts created tasks per weekday, Sunday first.
func (r *ReportRepository) DayOfWeek(ctx context.Context, userID int) ([]reports.DayOfWeekReport, error) {
	query := `
        SELECT TRIM(TO_CHAR(created_at, 'Day')) AS day_of_week,
               COUNT(*) AS created_tasks
        FROM tasks
        WHERE user_id = $1
        GROUP BY day_of_week
        ORDER BY DATE_PART('dow', MIN(created_at))`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to compute day-of-week report", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("day-of-week report: %w", err)
	}
	defer rows.Close()

	result := []reports.DayOfWeekReport{}
	for rows.Next() {
		var day reports.DayOfWeekReport
		if err := rows.Scan(&day.DayOfWeek, &day.CreatedTasks); err != nil {
			return nil, fmt.Errorf("scan day-of-week row: %w", err)
		}
		result = append(result, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("day-of-week rows: %w", err)
	}
	if len(result) == 0 {
		return nil, httperr.ErrNoReportData
	}
	return result, nil
}
