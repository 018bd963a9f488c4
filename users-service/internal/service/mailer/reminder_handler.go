package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	contracts "github.com/Yahya-git/To-Do-List-MS/contracts/mq"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/model"
)

type UserLookup interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
}

// ReminderHandler consumes task.reminder_due events published by
// tasks-service, resolves the user's email and mails the due-task digest.
type ReminderHandler struct {
	users  UserLookup
	mailer *Mailer
	logger *zap.Logger
}

func NewReminderHandler(users UserLookup, mailer *Mailer, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{users: users, mailer: mailer, logger: logger}
}

func (h *ReminderHandler) Handle(ctx context.Context, body json.RawMessage) error {
	var payload contracts.TaskReminderDuePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("decode reminder payload: %w", err)
	}
	if len(payload.Tasks) == 0 {
		h.logger.Warn("Reminder event with no tasks", zap.Int("user_id", payload.UserID))
		return nil
	}

	user, err := h.users.GetByID(ctx, payload.UserID)
	if err != nil {
		return fmt.Errorf("resolve user %d: %w", payload.UserID, err)
	}

	if err := h.mailer.SendReminder(user.Email, payload.Tasks); err != nil {
		return err
	}
	h.logger.Info("Reminder mail dispatched",
		zap.Int("user_id", user.ID),
		zap.Int("task_count", len(payload.Tasks)),
	)
	return nil
}
