// Package reports defines the report kinds, their wire shapes and the cache
// key scheme shared by tasks-service and the gateway.
package reports

import "fmt"

// Kind names a per-user aggregate.
type Kind string

const (
	KindCount     Kind = "count"
	KindAverage   Kind = "average"
	KindOverdue   Kind = "overdue"
	KindDateMax   Kind = "date_max"
	KindDayOfWeek Kind = "day_of_week"
)

// CacheKey is deterministic per user and kind. Cached values are JSON blobs
// that live until their TTL expires; task mutations never invalidate them.
func CacheKey(kind Kind, userID int) string {
	return fmt.Sprintf("task_%s_report_user_%d", kind, userID)
}

type CountReport struct {
	TotalTasks      int `json:"total_tasks"`
	CompletedTasks  int `json:"completed_tasks"`
	IncompleteTasks int `json:"incomplete_tasks"`
}

type AverageReport struct {
	AverageTasksCompletedPerDay float64 `json:"average_tasks_completed_per_day"`
}

type OverdueReport struct {
	OverdueTasks int `json:"overdue_tasks"`
}

type DateMaxReport struct {
	Date           string `json:"date"` // YYYY-MM-DD
	CompletedTasks int    `json:"completed_tasks"`
}

type DayOfWeekReport struct {
	DayOfWeek    string `json:"day_of_week"`
	CreatedTasks int    `json:"created_tasks"`
}
