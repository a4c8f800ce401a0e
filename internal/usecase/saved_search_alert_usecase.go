package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"jobboard/internal/domain/savedsearch"
	"jobboard/internal/pkg/metrics"
	"jobboard/internal/pkg/workerpool"
	"jobboard/internal/repository"
	"jobboard/pkg/jobsearch"

	"go.uber.org/zap"
)

// alertPreviewSize is how many new postings an alert event carries.
const alertPreviewSize = 5

type AlertRunStats struct {
	Checked int
	Due     int
	Sent    int
	Empty   int
	Failed  int
}

// SavedSearchAlerts finds saved searches whose alert is due and reports
// the postings published since the previous alert.
type SavedSearchAlerts struct {
	repo     repository.SavedSearchRepository
	lister   JobListUsecase
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger

	workers int
	rps     float64
	now     func() time.Time
}

func NewSavedSearchAlerts(repo repository.SavedSearchRepository, lister JobListUsecase, notifier Notifier, workers int, rps float64, m *metrics.Metrics, logger *zap.Logger) *SavedSearchAlerts {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = 4
	}
	return &SavedSearchAlerts{
		repo:     repo,
		lister:   lister,
		notifier: notifierOrNop(notifier),
		metrics:  m,
		logger:   logger,
		workers:  workers,
		rps:      rps,
		now:      time.Now,
	}
}

func (u *SavedSearchAlerts) Run(ctx context.Context) (AlertRunStats, error) {
	var stats AlertRunStats

	items, err := u.repo.ListWithAlerts(ctx)
	if err != nil {
		u.logger.Error("alerts: list saved searches failed", zap.Error(err))
		return stats, ErrInternal
	}
	stats.Checked = len(items)

	now := u.now().UTC()
	due := make([]savedsearch.SavedSearch, 0, len(items))
	for _, s := range items {
		if s.DueAt(now) {
			due = append(due, s)
		}
	}
	stats.Due = len(due)
	if len(due) == 0 {
		return stats, nil
	}

	pool := workerpool.New(u.workers, len(due))
	pool.SetRateLimit(u.rps)
	results := pool.Run(ctx)

	var mu sync.Mutex
	for _, s := range due {
		s := s
		task := func(ctx context.Context) error {
			sent, err := u.alertOne(ctx, s, now)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				stats.Failed++
				u.metrics.Alert("failed")
			case sent:
				stats.Sent++
				u.metrics.Alert("sent")
			default:
				stats.Empty++
				u.metrics.Alert("empty")
			}
			return err
		}
		if err := pool.Submit(ctx, task); err != nil {
			break
		}
	}
	pool.Close()

	for r := range results {
		if r.Err != nil {
			u.logger.Warn("alerts: saved search run failed", zap.Error(r.Err))
		}
	}

	mu.Lock()
	defer mu.Unlock()
	u.logger.Info("alerts: run finished",
		zap.Int("checked", stats.Checked),
		zap.Int("due", stats.Due),
		zap.Int("sent", stats.Sent),
		zap.Int("empty", stats.Empty),
		zap.Int("failed", stats.Failed),
	)
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

// alertOne reports whether an event was sent. The run is recorded even
// when nothing new was posted so the next window starts from now.
func (u *SavedSearchAlerts) alertOne(ctx context.Context, s savedsearch.SavedSearch, now time.Time) (bool, error) {
	f, err := jobsearch.ParseFiltersString(s.Query)
	if err != nil {
		return false, err
	}
	f.SortBy = jobsearch.SortNewest
	f.SortOrder = jobsearch.OrderDesc

	since := s.CreatedAt
	if s.LastAlertedAt != nil {
		since = *s.LastAlertedAt
	}

	res, err := u.lister.ListJobs(ctx, JobListParams{
		Filters:     f,
		Page:        jobsearch.Page{Number: 1, Size: alertPreviewSize},
		PostedAfter: &since,
	})
	if err != nil {
		return false, err
	}

	if err := u.repo.RecordAlert(ctx, s.ID, res.Total, now); err != nil {
		if errors.Is(err, repository.ErrSavedSearchNotFound) {
			return false, nil
		}
		return false, err
	}
	if res.Total == 0 {
		return false, nil
	}

	u.notifier.SavedSearchAlert(s.UserID, SavedSearchAlertEvent{
		SavedSearchID: s.ID,
		Name:          s.Name,
		Query:         s.Query,
		NewJobs:       res.Total,
		Preview:       res.Jobs,
		At:            now,
	})
	return true, nil
}
