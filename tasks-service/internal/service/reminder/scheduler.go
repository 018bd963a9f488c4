package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"

	contracts "github.com/Yahya-git/To-Do-List-MS/contracts/mq"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/model"
)

type TaskLister interface {
	AllDueToday(ctx context.Context) ([]model.Task, error)
}

type Publisher interface {
	Publish(routingKey string, payload any) error
}

// Scheduler periodically scans for tasks due today and publishes one
// task.reminder_due event per affected user. users-service resolves the
// email address and sends the mail.
type Scheduler struct {
	tasks     TaskLister
	publisher Publisher
	interval  time.Duration
	logger    *zap.Logger
}

func NewScheduler(tasks TaskLister, publisher Publisher, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval == 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		tasks:     tasks,
		publisher: publisher,
		interval:  interval,
		logger:    logger,
	}
}

// Start blocks until ctx is cancelled. Call it in a goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			if err := s.Run(ctx); err != nil {
				s.logger.Error("Reminder run failed", zap.Error(err))
			}
		}
	}
}

// Run performs a single scan-and-publish pass.
func (s *Scheduler) Run(ctx context.Context) error {
	due, err := s.tasks.AllDueToday(ctx)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		s.logger.Debug("No tasks due today")
		return nil
	}

	byUser := map[int][]contracts.ReminderTask{}
	for _, t := range due {
		description := ""
		if t.Description != nil {
			description = *t.Description
		}
		var dueDate time.Time
		if t.DueDate != nil {
			dueDate = *t.DueDate
		}
		byUser[t.UserID] = append(byUser[t.UserID], contracts.ReminderTask{
			Title:       t.Title,
			Description: description,
			DueDate:     dueDate,
		})
	}

	for userID, tasks := range byUser {
		payload := contracts.TaskReminderDuePayload{UserID: userID, Tasks: tasks}
		if err := s.publisher.Publish(contracts.RoutingKeyTaskReminderDue, payload); err != nil {
			s.logger.Error("Failed to publish reminder event",
				zap.Int("user_id", userID),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("Reminder event published",
			zap.Int("user_id", userID),
			zap.Int("task_count", len(tasks)),
		)
	}
	return nil
}
