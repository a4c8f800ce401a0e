package usecase

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"jobboard/internal/pkg/metrics"
	"jobboard/internal/repository"
	"jobboard/internal/search"
	"jobboard/pkg/jobsearch"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// minResultsBeforeFallback is the match count under which a multi-word
// query is retried with its first word only.
const minResultsBeforeFallback = 5

type JobListParams struct {
	Filters jobsearch.Filters
	Page    jobsearch.Page
	// PostedAfter restricts the listing to newer postings. Such requests
	// bypass the cache.
	PostedAfter *time.Time
}

type JobSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	RemoteType  string    `json:"remoteType"`
	JobType     string    `json:"jobType"`
	SalaryMin   int       `json:"salaryMin"`
	SalaryMax   int       `json:"salaryMax"`
	Experience  string    `json:"experience,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	CompanySize string    `json:"companySize,omitempty"`
	Skills      []string  `json:"skills"`
	Featured    bool      `json:"featured"`
	Urgent      bool      `json:"urgent"`
	Views       int       `json:"views"`
	PostedAt    time.Time `json:"postedAt"`
	Relevance   int       `json:"relevance"`
}

type JobListResult struct {
	Jobs       []JobSummary
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

type JobListUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) (JobListResult, error)
}

type JobList struct {
	jobs    repository.JobRepository
	cache   SearchCache
	metrics *metrics.Metrics
	logger  *zap.Logger

	lockTTL  time.Duration
	lockWait time.Duration
	now      func() time.Time
}

func NewJobListUsecase(jobs repository.JobRepository, cache SearchCache, m *metrics.Metrics, logger *zap.Logger) *JobList {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobList{
		jobs:     jobs,
		cache:    cache,
		metrics:  m,
		logger:   logger,
		lockTTL:  30 * time.Second,
		lockWait: 300 * time.Millisecond,
		now:      time.Now,
	}
}

func (u *JobList) ListJobs(ctx context.Context, params JobListParams) (JobListResult, error) {
	page := params.Page
	if page.Number == 0 && page.Size == 0 {
		page = jobsearch.FirstPage()
	}
	if page.Number < 1 {
		return JobListResult{}, invalidField(jobsearch.ParamPage, "must be at least 1")
	}
	if page.Size < 1 || page.Size > jobsearch.MaxPageSize {
		return JobListResult{}, invalidField(jobsearch.ParamLimit, "must be between 1 and 100")
	}

	filters := params.Filters
	if err := filters.Validate(); err != nil {
		var verr *jobsearch.ValidationError
		if errors.As(err, &verr) {
			fields := make(map[string]string, len(verr.Problems))
			for k, v := range verr.Problems {
				fields[string(k)] = v
			}
			return JobListResult{}, &ValidationError{Message: "invalid filters", Fields: fields}
		}
		return JobListResult{}, ErrInvalidInput
	}
	if filters.SortBy == "" {
		filters.SortBy = jobsearch.SortRelevance
	}
	if filters.SortOrder == "" {
		filters.SortOrder = jobsearch.OrderDesc
	}

	cacheable := params.PostedAfter == nil && u.cache != nil
	cacheKey := ""
	lockKey := ""
	lockAcquired := false

	if cacheable {
		cacheKey = JobsSearchCacheKey(filters, page)
		lockKey = JobsSearchLockKey(cacheKey)

		if res, ok := u.cached(ctx, cacheKey); ok {
			return res, nil
		}
		u.metrics.CacheMiss()

		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", u.lockTTL)
		switch {
		case err == nil && ok:
			lockAcquired = true
		case err == nil && !ok:
			// Another request is filling this key; give it a moment.
			wait := u.lockWait + rand.N(200*time.Millisecond)
			select {
			case <-ctx.Done():
				return JobListResult{}, ctx.Err()
			case <-time.After(wait):
			}
			if res, ok := u.cached(ctx, cacheKey); ok {
				return res, nil
			}
			u.logger.Debug("listing lock wait fell through", zap.String("key", lockKey))
		}
	}
	if lockAcquired {
		defer func() {
			_ = u.cache.Delete(context.WithoutCancel(ctx), lockKey)
		}()
	}

	start := time.Now()
	res, err := u.query(ctx, filters, page, params.PostedAfter)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return JobListResult{}, err
		}
		u.logger.Error("listing query failed", zap.Error(err))
		return JobListResult{}, ErrInternal
	}
	u.metrics.ObserveListing(time.Since(start).Seconds())

	if cacheable {
		if err := u.cache.SetJSON(ctx, cacheKey, res, 0); err != nil {
			u.logger.Warn("listing cache set failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return res, nil
}

func (u *JobList) cached(ctx context.Context, key string) (JobListResult, bool) {
	var res JobListResult
	hit, err := u.cache.GetJSON(ctx, key, &res)
	if err != nil || !hit {
		return JobListResult{}, false
	}
	u.metrics.CacheHit()
	u.logger.Debug("listing cache hit", zap.String("key", key))
	return res, true
}

func (u *JobList) query(ctx context.Context, filters jobsearch.Filters, page jobsearch.Page, postedAfter *time.Time) (JobListResult, error) {
	now := u.now()
	qctx := search.ProcessQuery(filters.Query)

	f := repository.JobListFilter{
		Filters:      filters,
		TextVariants: qctx.Variants,
		PostedAfter:  postedAfter,
		Now:          now,
		Limit:        page.Size,
		Offset:       page.Offset(),
	}
	rows, total, err := u.jobs.ListForListing(ctx, f)
	if err != nil {
		return JobListResult{}, err
	}

	variants := qctx.Variants
	if total < minResultsBeforeFallback {
		if fb := search.FallbackFirstWord(qctx.Normalized); fb != "" {
			fbCtx := search.ProcessQuery(fb)
			f.TextVariants = fbCtx.Variants
			rows2, total2, err := u.jobs.ListForListing(ctx, f)
			if err != nil {
				return JobListResult{}, err
			}
			if total2 > total {
				rows, total, variants = rows2, total2, fbCtx.Variants
			}
		}
	}

	rankInput := make([]search.Job, 0, len(rows))
	for i, r := range rows {
		rankInput = append(rankInput, search.Job{
			OriginalIndex: i,
			ID:            r.ID,
			Title:         r.Title,
			Company:       r.Company,
			Location:      r.Location,
			Description:   r.Description,
			Skills:        r.Skills,
			Source:        r.Source,
			Featured:      r.Featured,
			Urgent:        r.Urgent,
			PostedAt:      r.PostedAt,
		})
	}

	var ranked []search.Ranked
	if filters.SortBy == jobsearch.SortRelevance && len(variants) > 0 {
		ranked = search.RankJobs(rankInput, variants, now)
	} else {
		ranked = search.ScoreJobs(rankInput, variants, now)
	}

	out := make([]JobSummary, 0, len(ranked))
	for _, rk := range ranked {
		r := rows[rk.Job.OriginalIndex]
		out = append(out, JobSummary{
			ID:          r.ID,
			Title:       r.Title,
			Company:     r.Company,
			Location:    r.Location,
			RemoteType:  r.RemoteType,
			JobType:     r.JobType,
			SalaryMin:   r.SalaryMin,
			SalaryMax:   r.SalaryMax,
			Experience:  r.ExperienceLevel,
			Industry:    r.Industry,
			CompanySize: r.CompanySize,
			Skills:      r.Skills,
			Featured:    r.Featured,
			Urgent:      r.Urgent,
			Views:       r.Views,
			PostedAt:    r.PostedAt,
			Relevance:   rk.Percent,
		})
	}

	return JobListResult{
		Jobs:       out,
		Total:      total,
		Page:       page.Number,
		Limit:      page.Size,
		TotalPages: jobsearch.TotalPages(total, page.Size),
	}, nil
}
