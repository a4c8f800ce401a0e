package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"jobboard/pkg/jobsearch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listCall struct {
	filters jobsearch.Filters
	page    jobsearch.Page
}

type fakeBackend struct {
	mu      sync.Mutex
	calls   []listCall
	list    func(ctx context.Context, f jobsearch.Filters, p jobsearch.Page) (ListResponse, error)
	saveErr error
	saves   []string
}

func (b *fakeBackend) ListJobs(ctx context.Context, f jobsearch.Filters, p jobsearch.Page) (ListResponse, error) {
	b.mu.Lock()
	b.calls = append(b.calls, listCall{filters: f, page: p})
	list := b.list
	b.mu.Unlock()
	if list == nil {
		return ListResponse{Jobs: []JobSummary{}}, nil
	}
	return list(ctx, f, p)
}

func (b *fakeBackend) SaveJob(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saves = append(b.saves, "save "+id)
	return b.saveErr
}

func (b *fakeBackend) UnsaveJob(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saves = append(b.saves, "unsave "+id)
	return b.saveErr
}

func (b *fakeBackend) lastCall() listCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[len(b.calls)-1]
}

func summaries(titles ...string) []JobSummary {
	out := make([]JobSummary, 0, len(titles))
	for i, t := range titles {
		out = append(out, JobSummary{ID: fmt.Sprintf("job-%d", i), Title: t})
	}
	return out
}

func TestSession_FilterChangesResetPage(t *testing.T) {
	b := &fakeBackend{list: func(context.Context, jobsearch.Filters, jobsearch.Page) (ListResponse, error) {
		return ListResponse{Jobs: summaries("a"), Total: 100}, nil
	}}
	s := NewSession(b, 10)

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.NextPage())
	assert.Equal(t, 3, s.NextPage())

	require.NoError(t, s.UpdateFilter(jobsearch.FieldQuery, "go"))
	assert.Equal(t, 1, s.State().Page)

	require.NoError(t, s.GoToPage(7))
	require.NoError(t, s.ToggleFilter(jobsearch.FieldRemoteType, "REMOTE"))
	assert.Equal(t, 1, s.State().Page)

	require.NoError(t, s.GoToPage(4))
	s.ClearFilters()
	st := s.State()
	assert.Equal(t, 1, st.Page)
	assert.True(t, st.Filters.IsDefault())

	assert.ErrorIs(t, s.GoToPage(11), jobsearch.ErrPageOutOfRange)
	assert.Error(t, s.UpdateFilter(jobsearch.Field("nope"), "x"))
}

func TestSession_RefreshSendsCurrentPage(t *testing.T) {
	b := &fakeBackend{list: func(context.Context, jobsearch.Filters, jobsearch.Page) (ListResponse, error) {
		return ListResponse{Jobs: summaries("a"), Total: 50}, nil
	}}
	s := NewSession(b, 10)

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.GoToPage(5))
	st, err := s.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, jobsearch.Page{Number: 5, Size: 10}, b.lastCall().page)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, st.Window)
	assert.Equal(t, 5, st.TotalPages)
}

func TestSession_LastRequestWins(t *testing.T) {
	started := make(chan struct{})
	b := &fakeBackend{list: func(ctx context.Context, f jobsearch.Filters, _ jobsearch.Page) (ListResponse, error) {
		if f.Query == "slow" {
			close(started)
			<-ctx.Done()
			return ListResponse{Jobs: summaries("stale"), Total: 1}, nil
		}
		return ListResponse{Jobs: summaries("fresh"), Total: 1}, nil
	}}
	s := NewSession(b, 10)

	require.NoError(t, s.UpdateFilter(jobsearch.FieldQuery, "slow"))
	errCh := make(chan error, 1)
	go func() {
		_, err := s.Refresh(context.Background())
		errCh <- err
	}()
	<-started

	require.NoError(t, s.UpdateFilter(jobsearch.FieldQuery, "fast"))
	st, err := s.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, st.Jobs, 1)
	assert.Equal(t, "fresh", st.Jobs[0].Title)

	assert.ErrorIs(t, <-errCh, ErrStale)
	final := s.State()
	require.Len(t, final.Jobs, 1)
	assert.Equal(t, "fresh", final.Jobs[0].Title)
	assert.False(t, final.Loading)
}

func TestSession_FailureKeepsResultsAndRetry(t *testing.T) {
	fail := true
	b := &fakeBackend{}
	b.list = func(_ context.Context, f jobsearch.Filters, _ jobsearch.Page) (ListResponse, error) {
		if f.Query == "go" && fail {
			return ListResponse{}, &StatusError{StatusCode: 503, Message: "down"}
		}
		return ListResponse{Jobs: summaries("first"), Total: 1}, nil
	}
	s := NewSession(b, 10)

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.UpdateFilter(jobsearch.FieldQuery, "go"))
	st, err := s.Refresh(context.Background())
	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.True(t, serr.Temporary())

	assert.Equal(t, err, st.Err)
	assert.False(t, st.Loading)
	assert.False(t, st.Empty())
	require.Len(t, st.Jobs, 1)
	assert.Equal(t, "first", st.Jobs[0].Title)

	fail = false
	require.NoError(t, s.UpdateFilter(jobsearch.FieldLocation, "Berlin"))
	st, err = s.Retry(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st.Err)
	assert.Equal(t, "", b.lastCall().filters.Location)
	assert.Equal(t, "go", b.lastCall().filters.Query)
}

func TestSession_EmptyIsNotAnError(t *testing.T) {
	s := NewSession(&fakeBackend{}, 10)
	assert.False(t, s.State().Empty())

	st, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Empty())
	assert.Nil(t, st.Err)
	assert.Zero(t, st.TotalPages)
	assert.Empty(t, st.Window)
}

func TestSession_SavedMarkers(t *testing.T) {
	b := &fakeBackend{}
	s := NewSession(b, 10)

	assert.True(t, s.ToggleSaved("j1"))
	assert.True(t, s.IsSaved("j1"))
	assert.False(t, s.ToggleSaved("j1"))
	assert.Empty(t, b.saves)

	require.NoError(t, s.SaveJob(context.Background(), "j2"))
	assert.True(t, s.IsSaved("j2"))

	b.saveErr = errors.New("offline")
	assert.Error(t, s.UnsaveJob(context.Background(), "j2"))
	assert.True(t, s.IsSaved("j2"))
	assert.Error(t, s.SaveJob(context.Background(), "j3"))
	assert.False(t, s.IsSaved("j3"))

	assert.Equal(t, []string{"save j2", "unsave j2", "save j3"}, b.saves)

	s.SetSaved([]string{"j9"})
	assert.False(t, s.IsSaved("j2"))
	assert.True(t, s.IsSaved("j9"))
}

func TestSession_Cards(t *testing.T) {
	b := &fakeBackend{list: func(context.Context, jobsearch.Filters, jobsearch.Page) (ListResponse, error) {
		return ListResponse{Jobs: []JobSummary{
			{ID: "a", Title: "Go Developer", RemoteType: "REMOTE", JobType: "FULL_TIME", SalaryMin: 50000, SalaryMax: 90000, Featured: true, Relevance: 87},
			{ID: "b", Title: "Designer", RemoteType: "ONSITE", JobType: "CONTRACT"},
		}, Total: 2}, nil
	}}
	s := NewSession(b, 10)
	s.SetSaved([]string{"b"})
	s.SetViewMode(ViewList)
	s.SetViewMode(ViewMode("carousel"))

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ViewList, s.State().ViewMode)

	cards := s.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, Card{
		ID: "a", Title: "Go Developer", SalaryLabel: "$50,000 - $90,000",
		RemoteLabel: "Remote", TypeLabel: "Full-time", Featured: true, Relevance: "87%",
	}, cards[0])
	assert.True(t, cards[1].Saved)
	assert.Equal(t, "Salary not disclosed", cards[1].SalaryLabel)
	assert.Equal(t, "", cards[1].Relevance)
}

func TestSalaryLabel(t *testing.T) {
	tests := []struct {
		lo, hi int
		want   string
	}{
		{0, 0, "Salary not disclosed"},
		{40000, 0, "From $40,000"},
		{0, 120000, "Up to $120,000"},
		{75000, 75000, "$75,000"},
		{1500, 2500, "$1,500 - $2,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SalaryLabel(tt.lo, tt.hi))
	}
}
