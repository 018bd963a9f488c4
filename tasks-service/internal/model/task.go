package model

import "time"

type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	IsCompleted bool       `json:"is_completed"`
	UserID      int        `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SimilarTask is a duplicate title/description group with its multiplicity.
type SimilarTask struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Count       int     `json:"count"`
}

type Attachment struct {
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
	Data     []byte `json:"-"`
	TaskID   int    `json:"task_id"`
}
