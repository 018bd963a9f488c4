package mq

import "time"

// Routing keys on the events exchange.
const (
	RoutingKeyTaskReminderDue = "task.reminder_due"
)

// Mail kinds, used for metrics and logging.
const (
	MailKindVerification  = "verification"
	MailKindResetPassword = "reset_password"
	MailKindReminder      = "reminder"
)

// ReminderTask is one due task inside a reminder event.
type ReminderTask struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
}

// TaskReminderDuePayload tells users-service that a user has tasks due today.
// tasks-service does not know email addresses, so the consumer resolves the
// user id before sending.
type TaskReminderDuePayload struct {
	UserID int            `json:"user_id"`
	Tasks  []ReminderTask `json:"tasks"`
}
