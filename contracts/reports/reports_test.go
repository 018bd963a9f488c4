package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "task_count_report_user_7", CacheKey(KindCount, 7))
	assert.Equal(t, "task_average_report_user_12", CacheKey(KindAverage, 12))
	assert.Equal(t, "task_overdue_report_user_1", CacheKey(KindOverdue, 1))
	assert.Equal(t, "task_date_max_report_user_3", CacheKey(KindDateMax, 3))
	assert.Equal(t, "task_day_of_week_report_user_9", CacheKey(KindDayOfWeek, 9))
}
