package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/metrics"
	"jobboard/internal/repository"
	"jobboard/pkg/jobsearch"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listedJobs(titles ...string) []repository.ListedJob {
	out := make([]repository.ListedJob, 0, len(titles))
	for i, t := range titles {
		out = append(out, repository.ListedJob{Job: job.Job{
			ID:       uuid.New(),
			Title:    t,
			Company:  "Acme",
			Location: "Nicosia",
			PostedAt: time.Now().Add(-time.Duration(i) * time.Hour),
		}})
	}
	return out
}

func TestJobListUsecase_InvalidInput(t *testing.T) {
	uc := NewJobListUsecase(newFakeJobRepo(), nil, nil, nil)

	tests := []struct {
		name  string
		param JobListParams
		field string
	}{
		{name: "page zero", param: JobListParams{Filters: jobsearch.DefaultFilters(), Page: jobsearch.Page{Number: 0, Size: 12}}, field: "page"},
		{name: "limit too large", param: JobListParams{Filters: jobsearch.DefaultFilters(), Page: jobsearch.Page{Number: 1, Size: 101}}, field: "limit"},
		{name: "unknown remote type", param: func() JobListParams {
			f := jobsearch.DefaultFilters()
			f.RemoteType = []string{"MOON"}
			return JobListParams{Filters: f, Page: jobsearch.FirstPage()}
		}(), field: "remoteType"},
		{name: "inverted salary", param: func() JobListParams {
			f := jobsearch.DefaultFilters()
			f.SalaryRange = jobsearch.SalaryRange{90000, 10000}
			return JobListParams{Filters: f, Page: jobsearch.FirstPage()}
		}(), field: "salaryRange"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.ListJobs(context.Background(), tt.param)
			require.ErrorIs(t, err, ErrInvalidInput)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestJobListUsecase_PageAndTotal(t *testing.T) {
	repo := newFakeJobRepo()
	repo.listing = func(f repository.JobListFilter) ([]repository.ListedJob, int, error) {
		return listedJobs("Go Developer", "Designer"), 42, nil
	}
	uc := NewJobListUsecase(repo, nil, nil, nil)

	f := jobsearch.DefaultFilters()
	f.SortBy = jobsearch.SortNewest
	res, err := uc.ListJobs(context.Background(), JobListParams{Filters: f, Page: jobsearch.Page{Number: 2, Size: 12}})
	require.NoError(t, err)

	assert.Equal(t, 42, res.Total)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 12, res.Limit)
	assert.Equal(t, 4, res.TotalPages)
	require.Len(t, res.Jobs, 2)
	assert.Equal(t, "Go Developer", res.Jobs[0].Title)

	calls := repo.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 12, calls[0].Offset)
	assert.Equal(t, 12, calls[0].Limit)
}

func TestJobListUsecase_EmptyIsNotAnError(t *testing.T) {
	uc := NewJobListUsecase(newFakeJobRepo(), nil, nil, nil)

	res, err := uc.ListJobs(context.Background(), JobListParams{Filters: jobsearch.DefaultFilters(), Page: jobsearch.FirstPage()})
	require.NoError(t, err)
	assert.Empty(t, res.Jobs)
	assert.NotNil(t, res.Jobs)
	assert.Zero(t, res.Total)
	assert.Zero(t, res.TotalPages)
}

func TestJobListUsecase_StorageErrorIsInternal(t *testing.T) {
	repo := newFakeJobRepo()
	repo.err = errors.New("connection reset")
	uc := NewJobListUsecase(repo, nil, nil, nil)

	_, err := uc.ListJobs(context.Background(), JobListParams{Filters: jobsearch.DefaultFilters(), Page: jobsearch.FirstPage()})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestJobListUsecase_RelevanceRanksWithinPage(t *testing.T) {
	repo := newFakeJobRepo()
	repo.listing = func(f repository.JobListFilter) ([]repository.ListedJob, int, error) {
		return listedJobs("Office Manager", "Senior Go Developer"), 7, nil
	}
	uc := NewJobListUsecase(repo, nil, nil, nil)

	f := jobsearch.DefaultFilters()
	f.Query = "go developer"
	res, err := uc.ListJobs(context.Background(), JobListParams{Filters: f, Page: jobsearch.FirstPage()})
	require.NoError(t, err)
	require.Len(t, res.Jobs, 2)
	assert.Equal(t, "Senior Go Developer", res.Jobs[0].Title)
	assert.Greater(t, res.Jobs[0].Relevance, res.Jobs[1].Relevance)

	calls := repo.calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].TextVariants, "go developer")
}

func TestJobListUsecase_FirstWordFallback(t *testing.T) {
	repo := newFakeJobRepo()
	repo.listing = func(f repository.JobListFilter) ([]repository.ListedJob, int, error) {
		if len(f.TextVariants) > 0 && f.TextVariants[0] == "react" {
			return listedJobs("React Engineer", "React Native Dev"), 9, nil
		}
		return listedJobs("React Wizard"), 1, nil
	}
	uc := NewJobListUsecase(repo, nil, nil, nil)

	f := jobsearch.DefaultFilters()
	f.Query = "react wizard ninja"
	res, err := uc.ListJobs(context.Background(), JobListParams{Filters: f, Page: jobsearch.FirstPage()})
	require.NoError(t, err)
	assert.Equal(t, 9, res.Total)
	assert.Len(t, res.Jobs, 2)
	assert.Len(t, repo.calls(), 2)
}

func TestJobListUsecase_CachesAndReleasesLock(t *testing.T) {
	repo := newFakeJobRepo()
	repo.listing = func(f repository.JobListFilter) ([]repository.ListedJob, int, error) {
		return listedJobs("Go Developer"), 1, nil
	}
	c := newMemCache()
	m := metrics.New()
	uc := NewJobListUsecase(repo, c, m, nil)

	params := JobListParams{Filters: jobsearch.DefaultFilters(), Page: jobsearch.FirstPage()}
	first, err := uc.ListJobs(context.Background(), params)
	require.NoError(t, err)
	second, err := uc.ListJobs(context.Background(), params)
	require.NoError(t, err)

	assert.Len(t, repo.calls(), 1)
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Jobs[0].ID, second.Jobs[0].ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ListingCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ListingCache.WithLabelValues("miss")))

	key := JobsSearchCacheKey(params.Filters, params.Page)
	assert.Contains(t, c.deletes, JobsSearchLockKey(key))
}

func TestJobListUsecase_WaitsForConcurrentFiller(t *testing.T) {
	repo := newFakeJobRepo()
	c := newMemCache()
	uc := NewJobListUsecase(repo, c, nil, nil)
	uc.lockWait = 10 * time.Millisecond

	params := JobListParams{Filters: jobsearch.DefaultFilters(), Page: jobsearch.FirstPage()}
	key := JobsSearchCacheKey(params.Filters, params.Page)
	_, _ = c.SetIfNotExists(context.Background(), JobsSearchLockKey(key), "1", time.Second)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		time.Sleep(2 * time.Millisecond)
		_ = c.SetJSON(context.Background(), key, JobListResult{Jobs: []JobSummary{}, Total: 99, Page: 1, Limit: 12, TotalPages: 9}, 0)
	}()

	res, err := uc.ListJobs(context.Background(), params)
	wg.Wait()
	require.NoError(t, err)
	assert.Equal(t, 99, res.Total)
	assert.Empty(t, repo.calls())
}

func TestJobListUsecase_CanceledWhileWaitingForFiller(t *testing.T) {
	repo := newFakeJobRepo()
	c := newMemCache()
	uc := NewJobListUsecase(repo, c, nil, nil)
	uc.lockWait = time.Minute

	params := JobListParams{Filters: jobsearch.DefaultFilters(), Page: jobsearch.FirstPage()}
	key := JobsSearchCacheKey(params.Filters, params.Page)
	_, _ = c.SetIfNotExists(context.Background(), JobsSearchLockKey(key), "1", time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := uc.ListJobs(ctx, params)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Empty(t, repo.calls())
}

func TestJobListUsecase_PostedAfterBypassesCache(t *testing.T) {
	repo := newFakeJobRepo()
	c := newMemCache()
	uc := NewJobListUsecase(repo, c, nil, nil)

	since := time.Now().Add(-time.Hour)
	_, err := uc.ListJobs(context.Background(), JobListParams{Filters: jobsearch.DefaultFilters(), Page: jobsearch.FirstPage(), PostedAfter: &since})
	require.NoError(t, err)

	assert.Zero(t, c.size())
	calls := repo.calls()
	require.Len(t, calls, 1)
	require.NotNil(t, calls[0].PostedAfter)
	assert.Equal(t, since, *calls[0].PostedAfter)
}
