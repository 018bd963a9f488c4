package report

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/contracts/reports"
	"github.com/Yahya-git/To-Do-List-MS/pkg/cache"
	"github.com/Yahya-git/To-Do-List-MS/pkg/httperr"
	"github.com/Yahya-git/To-Do-List-MS/pkg/identity"
)

type fakeQueries struct {
	countCalls   int
	dateMaxErr   error
	completed    int
	creationDays int
}

func (f *fakeQueries) Count(ctx context.Context, userID int) (reports.CountReport, error) {
	f.countCalls++
	return reports.CountReport{TotalTasks: 10, CompletedTasks: 4, IncompleteTasks: 6}, nil
}

func (f *fakeQueries) CompletedCount(ctx context.Context, userID int) (int, error) {
	return f.completed, nil
}

func (f *fakeQueries) Overdue(ctx context.Context, userID int) (reports.OverdueReport, error) {
	return reports.OverdueReport{OverdueTasks: 2}, nil
}

func (f *fakeQueries) DateMax(ctx context.Context, userID int) (reports.DateMaxReport, error) {
	if f.dateMaxErr != nil {
		return reports.DateMaxReport{}, f.dateMaxErr
	}
	return reports.DateMaxReport{Date: "2026-08-01", CompletedTasks: 3}, nil
}

func (f *fakeQueries) DayOfWeek(ctx context.Context, userID int) ([]reports.DayOfWeekReport, error) {
	return []reports.DayOfWeekReport{{DayOfWeek: "Monday", CreatedTasks: 5}}, nil
}

type fakeUsers struct {
	createdAt time.Time
}

func (f *fakeUsers) GetUser(ctx context.Context, current identity.CurrentUser) (UserProfile, error) {
	return UserProfile{ID: current.ID, Email: current.Email, CreatedAt: f.createdAt}, nil
}

func setupService(t *testing.T, queries *fakeQueries, users UserDirectory) (*Service, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	blobs := cache.New(client, zap.NewNop())
	if users == nil {
		users = &fakeUsers{createdAt: time.Now()}
	}
	return NewService(queries, blobs, users, time.Minute, zap.NewNop()), mr
}

func TestCount_MissComputesAndCaches(t *testing.T) {
	queries := &fakeQueries{}
	svc, _ := setupService(t, queries, nil)
	user := identity.CurrentUser{ID: 1, Email: "a@b.com"}

	first, err := svc.Count(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 10, first.TotalTasks)
	assert.Equal(t, 1, queries.countCalls)

	second, err := svc.Count(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, queries.countCalls, "cache hit must not recompute")
}

func TestCount_RecomputesAfterExpiry(t *testing.T) {
	queries := &fakeQueries{}
	svc, mr := setupService(t, queries, nil)
	user := identity.CurrentUser{ID: 1, Email: "a@b.com"}

	_, err := svc.Count(context.Background(), user)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = svc.Count(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 2, queries.countCalls)
}

func TestCount_IsolatedPerUser(t *testing.T) {
	queries := &fakeQueries{}
	svc, _ := setupService(t, queries, nil)

	_, err := svc.Count(context.Background(), identity.CurrentUser{ID: 1})
	require.NoError(t, err)
	_, err = svc.Count(context.Background(), identity.CurrentUser{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, queries.countCalls)
}

func TestAverage_FloorsDenominatorToOneDay(t *testing.T) {
	queries := &fakeQueries{completed: 5}
	users := &fakeUsers{createdAt: time.Now().Add(-2 * time.Hour)}
	svc, _ := setupService(t, queries, users)

	report, err := svc.Average(context.Background(), identity.CurrentUser{ID: 1})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, report.AverageTasksCompletedPerDay, 0.001)
}

func TestAverage_DividesByAccountAge(t *testing.T) {
	queries := &fakeQueries{completed: 10}
	users := &fakeUsers{createdAt: time.Now().Add(-5 * 24 * time.Hour)}
	svc, _ := setupService(t, queries, users)

	report, err := svc.Average(context.Background(), identity.CurrentUser{ID: 1})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, report.AverageTasksCompletedPerDay, 0.001)
}

func TestDateMax_NoDataPassesThrough(t *testing.T) {
	queries := &fakeQueries{dateMaxErr: httperr.ErrNoReportData}
	svc, mr := setupService(t, queries, nil)

	_, err := svc.DateMax(context.Background(), identity.CurrentUser{ID: 1})
	assert.ErrorIs(t, err, httperr.ErrNoReportData)
	assert.False(t, mr.Exists(reports.CacheKey(reports.KindDateMax, 1)), "failed computation must not be cached")
}

func TestLookup_UndecodableEntryRecomputed(t *testing.T) {
	queries := &fakeQueries{}
	svc, mr := setupService(t, queries, nil)
	user := identity.CurrentUser{ID: 1}

	require.NoError(t, mr.Set(reports.CacheKey(reports.KindCount, 1), "not-json"))

	report, err := svc.Count(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 10, report.TotalTasks)
	assert.Equal(t, 1, queries.countCalls)
}
