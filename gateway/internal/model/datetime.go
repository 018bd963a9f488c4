package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// layouts accepted from clients, tried in order.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateTime accepts several client-side datetime formats and always
// re-encodes as RFC 3339, so the services behind the gateway only ever
// see one format.
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized datetime %q", s)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// TaskPayload is the task write body. Absent fields stay absent when the
// normalized payload is forwarded.
type TaskPayload struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	DueDate     *DateTime `json:"due_date,omitempty"`
	IsCompleted *bool     `json:"is_completed,omitempty"`
	CompletedAt *DateTime `json:"completed_at,omitempty"`
}
