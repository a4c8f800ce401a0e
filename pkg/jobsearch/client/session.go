package client

import (
	"context"
	"sync"

	"jobboard/pkg/jobsearch"
)

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Backend is the part of Client a Session uses.
type Backend interface {
	ListJobs(ctx context.Context, f jobsearch.Filters, page jobsearch.Page) (ListResponse, error)
	SaveJob(ctx context.Context, jobID string) error
	UnsaveJob(ctx context.Context, jobID string) error
}

// State is a snapshot of a Session.
type State struct {
	Filters    jobsearch.Filters
	Jobs       []JobSummary
	Total      int
	Page       int
	TotalPages int
	Window     []int
	Loading    bool
	// Err is the last failure. Previous results are kept alongside it.
	Err      error
	ViewMode ViewMode

	loaded bool
}

// Empty reports whether the last successful search matched nothing.
func (s State) Empty() bool {
	return s.loaded && s.Err == nil && len(s.Jobs) == 0
}

type request struct {
	filters jobsearch.Filters
	page    jobsearch.Page
}

// Session coordinates filters, pagination, results and saved markers for
// one user. It is safe for concurrent use; when requests overlap only the
// most recently issued one is applied.
type Session struct {
	backend Backend

	mu      sync.Mutex
	filters jobsearch.Filters
	pager   *jobsearch.Paginator
	jobs    []JobSummary
	loaded  bool
	loading bool
	err     error
	view    ViewMode
	saved   map[string]bool

	seq    uint64
	cancel context.CancelFunc
	last   *request
}

func NewSession(backend Backend, pageSize int) *Session {
	return &Session{
		backend: backend,
		filters: jobsearch.DefaultFilters(),
		pager:   jobsearch.NewPaginator(pageSize),
		jobs:    []JobSummary{},
		view:    ViewGrid,
		saved:   make(map[string]bool),
	}
}

// UpdateFilter replaces one filter and returns to the first page.
func (s *Session) UpdateFilter(field jobsearch.Field, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.filters.Update(field, value); err != nil {
		return err
	}
	s.pager.Reset()
	return nil
}

// ToggleFilter flips one value of a sequence filter and returns to the
// first page.
func (s *Session) ToggleFilter(field jobsearch.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.filters.Toggle(field, value); err != nil {
		return err
	}
	s.pager.Reset()
	return nil
}

func (s *Session) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Clear()
	s.pager.Reset()
}

func (s *Session) Filters() jobsearch.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone()
}

func (s *Session) NextPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.Next()
}

func (s *Session) PrevPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.Prev()
}

func (s *Session) GoToPage(page int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.GoTo(page)
}

// SetPageSize changes the page size and returns to the first page.
func (s *Session) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pager.SetSize(size)
}

func (s *Session) SetViewMode(m ViewMode) {
	if m != ViewGrid && m != ViewList {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = m
}

// Refresh requests the current filters and page. Any request still in
// flight is cancelled. A response that is no longer the latest is
// dropped and ErrStale returned.
func (s *Session) Refresh(ctx context.Context) (State, error) {
	s.mu.Lock()
	req := request{filters: s.filters.Clone(), page: s.pager.Page()}
	return s.issueLocked(ctx, req)
}

// Retry re-issues the last request, whatever the filters are now. With
// no previous request it behaves like Refresh.
func (s *Session) Retry(ctx context.Context) (State, error) {
	s.mu.Lock()
	if s.last == nil {
		s.mu.Unlock()
		return s.Refresh(ctx)
	}
	return s.issueLocked(ctx, *s.last)
}

// issueLocked is entered with s.mu held and returns with it released.
func (s *Session) issueLocked(ctx context.Context, req request) (State, error) {
	s.seq++
	seq := s.seq
	if s.cancel != nil {
		s.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loading = true
	s.last = &req
	s.mu.Unlock()

	res, err := s.backend.ListJobs(reqCtx, req.filters, req.page)

	s.mu.Lock()
	defer s.mu.Unlock()
	cancel()
	if seq != s.seq {
		return s.stateLocked(), ErrStale
	}
	s.cancel = nil
	s.loading = false
	if err != nil {
		s.err = err
		return s.stateLocked(), err
	}

	s.err = nil
	s.loaded = true
	s.jobs = res.Jobs
	if s.jobs == nil {
		s.jobs = []JobSummary{}
	}
	s.pager.SetTotal(res.Total)
	return s.stateLocked(), nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	return State{
		Filters:    s.filters.Clone(),
		Jobs:       append([]JobSummary(nil), s.jobs...),
		Total:      s.pager.Total(),
		Page:       s.pager.Current(),
		TotalPages: s.pager.TotalPages(),
		Window:     s.pager.Window(),
		Loading:    s.loading,
		Err:        s.err,
		ViewMode:   s.view,
		loaded:     s.loaded,
	}
}

// SetSaved replaces the saved markers, typically with the ids the server
// reports.
func (s *Session) SetSaved(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = make(map[string]bool, len(ids))
	for _, id := range ids {
		s.saved[id] = true
	}
}

func (s *Session) IsSaved(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved[jobID]
}

// ToggleSaved flips the local marker only and returns the new value.
func (s *Session) ToggleSaved(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := !s.saved[jobID]
	s.setSavedLocked(jobID, now)
	return now
}

// SaveJob marks the job saved at once and rolls the marker back if the
// server call fails.
func (s *Session) SaveJob(ctx context.Context, jobID string) error {
	return s.persistSaved(ctx, jobID, true)
}

func (s *Session) UnsaveJob(ctx context.Context, jobID string) error {
	return s.persistSaved(ctx, jobID, false)
}

func (s *Session) persistSaved(ctx context.Context, jobID string, saved bool) error {
	s.mu.Lock()
	prev := s.saved[jobID]
	s.setSavedLocked(jobID, saved)
	s.mu.Unlock()

	var err error
	if saved {
		err = s.backend.SaveJob(ctx, jobID)
	} else {
		err = s.backend.UnsaveJob(ctx, jobID)
	}
	if err != nil {
		s.mu.Lock()
		s.setSavedLocked(jobID, prev)
		s.mu.Unlock()
	}
	return err
}

func (s *Session) setSavedLocked(jobID string, saved bool) {
	if saved {
		s.saved[jobID] = true
		return
	}
	delete(s.saved, jobID)
}
