// Package report orchestrates report computation behind a read-through cache.
//
// Per request: look up the cache; on a hit decode and return without touching
// the database, on a miss compute via the query layer and store the result
// with the configured TTL. Two concurrent misses for the same key may both
// compute and both write; the last writer wins. Entries are only ever removed
// by expiry, so a report can lag task mutations by up to one TTL.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/contracts/reports"
	"github.com/Yahya-git/To-Do-List-MS/pkg/cache"
	"github.com/Yahya-git/To-Do-List-MS/pkg/httperr"
	"github.com/Yahya-git/To-Do-List-MS/pkg/identity"
	"github.com/Yahya-git/To-Do-List-MS/pkg/metrics"
)

// QueryLayer computes aggregates against the task store.
type QueryLayer interface {
	Count(ctx context.Context, userID int) (reports.CountReport, error)
	CompletedCount(ctx context.Context, userID int) (int, error)
	Overdue(ctx context.Context, userID int) (reports.OverdueReport, error)
	DateMax(ctx context.Context, userID int) (reports.DateMaxReport, error)
	DayOfWeek(ctx context.Context, userID int) ([]reports.DayOfWeekReport, error)
}

// Blobs is the cache contract: opaque bytes with a TTL.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// UserDirectory resolves the calling user's profile from users-service.
type UserDirectory interface {
	GetUser(ctx context.Context, current identity.CurrentUser) (UserProfile, error)
}

// UserProfile is the slice of the users-service response the reports need.
type UserProfile struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	queries QueryLayer
	cache   Blobs
	users   UserDirectory
	ttl     time.Duration
	logger  *zap.Logger
}

func NewService(queries QueryLayer, blobs Blobs, users UserDirectory, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		queries: queries,
		cache:   blobs,
		users:   users,
		ttl:     ttl,
		logger:  logger,
	}
}

// lookup fills out from the cache and reports whether it hit. Cache transport
// errors degrade to a miss; a stale or undecodable entry is recomputed.
func (s *Service) lookup(ctx context.Context, kind reports.Kind, userID int, out any) bool {
	key := reports.CacheKey(kind, userID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		metrics.IncrementReportCacheMiss(string(kind))
		s.logger.Debug("Cache miss", zap.String("key", key))
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		metrics.IncrementReportCacheMiss(string(kind))
		return false
	}
	metrics.IncrementReportCacheHit(string(kind))
	s.logger.Debug("Cache hit", zap.String("key", key))
	return true
}

// store writes a computed report. Failures are logged, not returned: the
// caller already has the result.
func (s *Service) store(ctx context.Context, kind reports.Kind, userID int, value any) {
	key := reports.CacheKey(kind, userID)
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("Failed to encode report for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("Failed to store report in cache", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) computeStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, httperr.ErrNoReportData):
		return "no_data"
	default:
		return "failed"
	}
}

func (s *Service) Count(ctx context.Context, user identity.CurrentUser) (reports.CountReport, error) {
	var report reports.CountReport
	if s.lookup(ctx, reports.KindCount, user.ID, &report) {
		return report, nil
	}
	report, err := s.queries.Count(ctx, user.ID)
	metrics.IncrementReportComputation(string(reports.KindCount), s.computeStatus(err))
	if err != nil {
		return report, err
	}
	s.store(ctx, reports.KindCount, user.ID, report)
	return report, nil
}

// Average fans out to users-service for the account creation time; the
// denominator never drops below one day.
func (s *Service) Average(ctx context.Context, user identity.CurrentUser) (reports.AverageReport, error) {
	var report reports.AverageReport
	if s.lookup(ctx, reports.KindAverage, user.ID, &report) {
		return report, nil
	}

	profile, err := s.users.GetUser(ctx, user)
	if err != nil {
		metrics.IncrementReportComputation(string(reports.KindAverage), "failed")
		return report, err
	}

	completed, err := s.queries.CompletedCount(ctx, user.ID)
	metrics.IncrementReportComputation(string(reports.KindAverage), s.computeStatus(err))
	if err != nil {
		return report, err
	}

	days := int(time.Since(profile.CreatedAt).Hours() / 24)
	if days < 1 {
		days = 1
	}
	report.AverageTasksCompletedPerDay = float64(completed) / float64(days)

	s.store(ctx, reports.KindAverage, user.ID, report)
	return report, nil
}

func (s *Service) Overdue(ctx context.Context, user identity.CurrentUser) (reports.OverdueReport, error) {
	var report reports.OverdueReport
	if s.lookup(ctx, reports.KindOverdue, user.ID, &report) {
		return report, nil
	}
	report, err := s.queries.Overdue(ctx, user.ID)
	metrics.IncrementReportComputation(string(reports.KindOverdue), s.computeStatus(err))
	if err != nil {
		return report, err
	}
	s.store(ctx, reports.KindOverdue, user.ID, report)
	return report, nil
}

func (s *Service) DateMax(ctx context.Context, user identity.CurrentUser) (reports.DateMaxReport, error) {
	var report reports.DateMaxReport
	if s.lookup(ctx, reports.KindDateMax, user.ID, &report) {
		return report, nil
	}
	report, err := s.queries.DateMax(ctx, user.ID)
	metrics.IncrementReportComputation(string(reports.KindDateMax), s.computeStatus(err))
	if err != nil {
		return report, err
	}
	s.store(ctx, reports.KindDateMax, user.ID, report)
	return report, nil
}

func (s *Service) DayOfWeek(ctx context.Context, user identity.CurrentUser) ([]reports.DayOfWeekReport, error) {
	var result []reports.DayOfWeekReport
	if s.lookup(ctx, reports.KindDayOfWeek, user.ID, &result) {
		return result, nil
	}
	result, err := s.queries.DayOfWeek(ctx, user.ID)
	metrics.IncrementReportComputation(string(reports.KindDayOfWeek), s.computeStatus(err))
	if err != nil {
		return nil, err
	}
	s.store(ctx, reports.KindDayOfWeek, user.ID, result)
	return result, nil
}
