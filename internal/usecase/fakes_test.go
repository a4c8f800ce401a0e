package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/savedsearch"
	"jobboard/internal/domain/skill"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type fakeJobRepo struct {
	mu sync.Mutex

	jobs      map[uuid.UUID]job.Job
	listing   func(f repository.JobListFilter) ([]repository.ListedJob, int, error)
	listCalls []repository.JobListFilter
	views     map[uuid.UUID]int
	err       error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[uuid.UUID]job.Job{}, views: map[uuid.UUID]int{}}
}

func (r *fakeJobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return job.Job{}, r.err
	}
	if j.SourceURL != nil {
		for _, existing := range r.jobs {
			if existing.SourceURL != nil && *existing.SourceURL == *j.SourceURL {
				return job.Job{}, repository.ErrJobExists
			}
		}
	}
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	j.IsActive = true
	if j.PostedAt.IsZero() {
		j.PostedAt = time.Now()
	}
	r.jobs[j.ID] = j
	return j, nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return job.Job{}, r.err
	}
	j, ok := r.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) FindBySourceURL(_ context.Context, u string) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.SourceURL != nil && *j.SourceURL == u {
			return j, nil
		}
	}
	return job.Job{}, repository.ErrJobNotFound
}

func (r *fakeJobRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	j, ok := r.jobs[id]
	return ok && j.IsActive, nil
}

func (r *fakeJobRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || !j.IsActive {
		return repository.ErrJobNotFound
	}
	j.IsActive = false
	r.jobs[id] = j
	return nil
}

func (r *fakeJobRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[id]++
	return nil
}

func (r *fakeJobRepo) viewCount(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views[id]
}

func (r *fakeJobRepo) ListRecent(_ context.Context, limit int) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]job.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if j.IsActive {
			out = append(out, j)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeJobRepo) ListForListing(_ context.Context, f repository.JobListFilter) ([]repository.ListedJob, int, error) {
	r.mu.Lock()
	r.listCalls = append(r.listCalls, f)
	listing := r.listing
	err := r.err
	r.mu.Unlock()
	if err != nil {
		return nil, 0, err
	}
	if listing == nil {
		return []repository.ListedJob{}, 0, nil
	}
	return listing(f)
}

func (r *fakeJobRepo) calls() []repository.JobListFilter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]repository.JobListFilter(nil), r.listCalls...)
}

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	locks   map[string]bool
	deletes []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, locks: map[string]bool{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	delete(c.locks, key)
	c.deletes = append(c.deletes, key)
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] {
		return false, nil
	}
	c.locks[key] = true
	return true, nil
}

func (c *memCache) DeleteByPrefix(_ context.Context, prefix string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
			n++
		}
	}
	return n, nil
}

func (c *memCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

type fakeSavedSearchRepo struct {
	mu      sync.Mutex
	items   map[uuid.UUID]savedsearch.SavedSearch
	alerts  []savedsearch.Alert
	listErr error
}

func newFakeSavedSearchRepo() *fakeSavedSearchRepo {
	return &fakeSavedSearchRepo{items: map[uuid.UUID]savedsearch.SavedSearch{}}
}

func (r *fakeSavedSearchRepo) Create(_ context.Context, s savedsearch.SavedSearch, maxPerUser int) (savedsearch.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, it := range r.items {
		if it.UserID == s.UserID {
			n++
		}
	}
	if maxPerUser > 0 && n >= maxPerUser {
		return savedsearch.SavedSearch{}, repository.ErrSavedSearchLimit
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	r.items[s.ID] = s
	return s, nil
}

func (r *fakeSavedSearchRepo) FindByID(_ context.Context, userID, id uuid.UUID) (savedsearch.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok || s.UserID != userID {
		return savedsearch.SavedSearch{}, repository.ErrSavedSearchNotFound
	}
	return s, nil
}

func (r *fakeSavedSearchRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]savedsearch.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]savedsearch.SavedSearch, 0)
	for _, s := range r.items {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSavedSearchRepo) Update(_ context.Context, s savedsearch.SavedSearch) (savedsearch.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[s.ID]
	if !ok || cur.UserID != s.UserID {
		return savedsearch.SavedSearch{}, repository.ErrSavedSearchNotFound
	}
	cur.Name, cur.Query, cur.AlertFrequency = s.Name, s.Query, s.AlertFrequency
	cur.UpdatedAt = time.Now()
	r.items[s.ID] = cur
	return cur, nil
}

func (r *fakeSavedSearchRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok || s.UserID != userID {
		return repository.ErrSavedSearchNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeSavedSearchRepo) ListWithAlerts(context.Context) ([]savedsearch.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]savedsearch.SavedSearch, 0)
	for _, s := range r.items {
		if s.AlertFrequency != savedsearch.FrequencyNone {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSavedSearchRepo) RecordAlert(_ context.Context, id uuid.UUID, newJobs int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return repository.ErrSavedSearchNotFound
	}
	s.LastAlertedAt = &at
	r.items[id] = s
	r.alerts = append(r.alerts, savedsearch.Alert{ID: uuid.New(), SavedSearchID: id, NewJobs: newJobs, CreatedAt: at})
	return nil
}

func (r *fakeSavedSearchRepo) recorded() []savedsearch.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]savedsearch.Alert(nil), r.alerts...)
}

type fakeSavedJobRepo struct {
	mu    sync.Mutex
	saved map[uuid.UUID][]uuid.UUID
	jobs  *fakeJobRepo
}

func (r *fakeSavedJobRepo) Save(_ context.Context, userID, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.saved[userID] {
		if id == jobID {
			return nil
		}
	}
	r.saved[userID] = append(r.saved[userID], jobID)
	return nil
}

func (r *fakeSavedJobRepo) Unsave(_ context.Context, userID, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.saved[userID]
	for i, id := range ids {
		if id == jobID {
			r.saved[userID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeSavedJobRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	r.mu.Lock()
	ids := append([]uuid.UUID(nil), r.saved[userID]...)
	r.mu.Unlock()
	out := make([]job.Job, 0, len(ids))
	for _, id := range ids {
		j, err := r.jobs.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}

type fakeUserSkillRepo struct {
	mu     sync.Mutex
	skills map[uuid.UUID][]skill.UserSkill
}

func (r *fakeUserSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]skill.UserSkill{}, r.skills[userID]...), nil
}

func (r *fakeUserSkillRepo) ReplaceForUser(_ context.Context, userID uuid.UUID, skills []skill.UserSkill) ([]skill.UserSkill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]skill.UserSkill, 0, len(skills))
	for _, s := range skills {
		s.UserID = userID
		out = append(out, s)
	}
	r.skills[userID] = out
	return out, nil
}

type recordingNotifier struct {
	mu          sync.Mutex
	jobsUpdated []JobsUpdatedEvent
	alerts      map[uuid.UUID][]SavedSearchAlertEvent
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{alerts: map[uuid.UUID][]SavedSearchAlertEvent{}}
}

func (n *recordingNotifier) JobsUpdated(ev JobsUpdatedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.jobsUpdated = append(n.jobsUpdated, ev)
}

func (n *recordingNotifier) SavedSearchAlert(userID uuid.UUID, ev SavedSearchAlertEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts[userID] = append(n.alerts[userID], ev)
}

func (n *recordingNotifier) updates() []JobsUpdatedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]JobsUpdatedEvent(nil), n.jobsUpdated...)
}

func (n *recordingNotifier) alertsFor(userID uuid.UUID) []SavedSearchAlertEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]SavedSearchAlertEvent(nil), n.alerts[userID]...)
}
