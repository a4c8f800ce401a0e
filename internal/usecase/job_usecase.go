package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/skill"
	"jobboard/internal/domain/user"
	"jobboard/internal/importer"
	"jobboard/internal/pkg/metrics"
	"jobboard/internal/repository"
	"jobboard/pkg/jobsearch"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateJobInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Company     string `json:"company" validate:"required,max=200"`
	Location    string `json:"location" validate:"required,max=200"`
	Description string `json:"description" validate:"max=20000"`

	RemoteType string `json:"remoteType" validate:"required,oneof=ONSITE HYBRID REMOTE"`
	JobType    string `json:"jobType" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP FREELANCE"`
	SalaryMin  int    `json:"salaryMin" validate:"gte=0"`
	SalaryMax  int    `json:"salaryMax" validate:"gte=0,gtefield=SalaryMin"`

	Experience  string `json:"experience" validate:"max=50"`
	Industry    string `json:"industry" validate:"max=50"`
	Education   string `json:"education" validate:"max=50"`
	CompanySize string `json:"companySize" validate:"max=20"`

	Skills         []string `json:"skills" validate:"max=30,dive,required,max=50"`
	RequiredSkills []string `json:"requiredSkills" validate:"max=30,dive,required,max=50"`
	Languages      []string `json:"languages" validate:"max=10,dive,required,max=50"`
	Benefits       []string `json:"benefits" validate:"max=20,dive,required,max=50"`

	Featured bool `json:"featured"`
	Urgent   bool `json:"urgent"`
}

type ImportJobInput struct {
	URL string `json:"url" validate:"required,http_url,max=2048"`
}

// JobFetcher reads a posting from a public page.
type JobFetcher interface {
	Fetch(ctx context.Context, pageURL string) (importer.Posting, error)
}

type JobUsecase interface {
	Create(ctx context.Context, actor user.Actor, in CreateJobInput) (job.Job, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	Deactivate(ctx context.Context, actor user.Actor, id uuid.UUID) error
	Import(ctx context.Context, actor user.Actor, in ImportJobInput) (job.Job, error)
}

type Jobs struct {
	jobs     repository.JobRepository
	cache    SearchCache
	notifier Notifier
	fetcher  JobFetcher
	metrics  *metrics.Metrics
	logger   *zap.Logger

	viewTimeout time.Duration
	now         func() time.Time
}

func NewJobUsecase(jobs repository.JobRepository, cache SearchCache, notifier Notifier, fetcher JobFetcher, m *metrics.Metrics, logger *zap.Logger) *Jobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Jobs{
		jobs:        jobs,
		cache:       cache,
		notifier:    notifierOrNop(notifier),
		fetcher:     fetcher,
		metrics:     m,
		logger:      logger,
		viewTimeout: 5 * time.Second,
		now:         time.Now,
	}
}

func (u *Jobs) Create(ctx context.Context, actor user.Actor, in CreateJobInput) (job.Job, error) {
	if !actor.CanPostJobs() {
		return job.Job{}, ErrForbidden
	}
	in = trimJobInput(in)
	if err := validateStruct(in); err != nil {
		return job.Job{}, err
	}

	employer := actor.UserID
	created, err := u.jobs.Create(ctx, job.Job{
		EmployerID:      &employer,
		Title:           in.Title,
		Company:         in.Company,
		Location:        in.Location,
		Description:     in.Description,
		RemoteType:      in.RemoteType,
		JobType:         in.JobType,
		SalaryMin:       in.SalaryMin,
		SalaryMax:       in.SalaryMax,
		ExperienceLevel: in.Experience,
		Industry:        in.Industry,
		Education:       in.Education,
		CompanySize:     in.CompanySize,
		Skills:          cleanTags(in.Skills),
		RequiredSkills:  cleanTags(in.RequiredSkills),
		Languages:       cleanTags(in.Languages),
		Benefits:        cleanTags(in.Benefits),
		Featured:        in.Featured,
		Urgent:          in.Urgent,
		Source:          job.SourceDirect,
		PostedAt:        u.now().UTC(),
	})
	if err != nil {
		u.logger.Error("create job failed", zap.Error(err))
		return job.Job{}, ErrInternal
	}

	u.jobsChanged(ctx, JobActionCreated, created.ID)
	return created, nil
}

// Get returns an active posting and counts the view in the background.
func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	if id == uuid.Nil {
		return job.Job{}, ErrInvalidInput
	}
	j, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrNotFound
		}
		u.logger.Error("find job failed", zap.String("job_id", id.String()), zap.Error(err))
		return job.Job{}, ErrInternal
	}
	if !j.IsActive {
		return job.Job{}, ErrNotFound
	}

	go func() {
		vctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.viewTimeout)
		defer cancel()
		if err := u.jobs.IncrementViews(vctx, id); err != nil {
			u.logger.Warn("increment views failed", zap.String("job_id", id.String()), zap.Error(err))
		}
	}()

	return j, nil
}

func (u *Jobs) Deactivate(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	j, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if !j.IsActive {
		return ErrNotFound
	}
	if !j.OwnedBy(actor.UserID) && !actor.IsAdmin() {
		return ErrForbidden
	}

	if err := u.jobs.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrNotFound
		}
		u.logger.Error("deactivate job failed", zap.String("job_id", id.String()), zap.Error(err))
		return ErrInternal
	}

	u.jobsChanged(ctx, JobActionDeactivated, id)
	return nil
}

// Import fetches a public job page and stores it as a posting owned by
// the caller. A page already imported is a conflict.
func (u *Jobs) Import(ctx context.Context, actor user.Actor, in ImportJobInput) (job.Job, error) {
	if !actor.CanPostJobs() {
		return job.Job{}, ErrForbidden
	}
	in.URL = strings.TrimSpace(in.URL)
	if err := validateStruct(in); err != nil {
		return job.Job{}, err
	}
	if u.fetcher == nil {
		return job.Job{}, ErrImportFailed
	}

	if err := u.ensureNotImported(ctx, in.URL); err != nil {
		return job.Job{}, err
	}

	p, err := u.fetcher.Fetch(ctx, in.URL)
	if err != nil {
		u.metrics.Import("failed")
		switch {
		case errors.Is(err, importer.ErrInvalidURL):
			return job.Job{}, invalidField("url", "must be an http(s) URL")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return job.Job{}, err
		}
		u.logger.Warn("job import fetch failed", zap.String("url", in.URL), zap.Error(err))
		return job.Job{}, errors.Join(ErrImportFailed, err)
	}

	if p.URL != "" && p.URL != in.URL {
		if err := u.ensureNotImported(ctx, p.URL); err != nil {
			return job.Job{}, err
		}
	}

	j := u.postingToJob(p, actor.UserID, in.URL)
	created, err := u.jobs.Create(ctx, j)
	if err != nil {
		if errors.Is(err, repository.ErrJobExists) {
			u.metrics.Import("duplicate")
			return job.Job{}, ErrConflict
		}
		u.metrics.Import("failed")
		u.logger.Error("store imported job failed", zap.Error(err))
		return job.Job{}, ErrInternal
	}

	u.metrics.Import("created")
	u.jobsChanged(ctx, JobActionImported, created.ID)
	return created, nil
}

func (u *Jobs) ensureNotImported(ctx context.Context, sourceURL string) error {
	_, err := u.jobs.FindBySourceURL(ctx, sourceURL)
	switch {
	case err == nil:
		u.metrics.Import("duplicate")
		return ErrConflict
	case errors.Is(err, repository.ErrJobNotFound):
		return nil
	default:
		u.logger.Error("find job by source url failed", zap.Error(err))
		return ErrInternal
	}
}

func (u *Jobs) postingToJob(p importer.Posting, employer uuid.UUID, requestedURL string) job.Job {
	sourceURL := p.URL
	if sourceURL == "" {
		sourceURL = requestedURL
	}

	remote := p.RemoteType
	if remote == "" {
		remote = string(jobsearch.RemoteOnsite)
	}
	jobType := p.JobType
	if jobType == "" {
		jobType = string(jobsearch.JobFullTime)
	}

	company := p.Company
	if company == "" {
		if pu, err := url.Parse(sourceURL); err == nil {
			company = strings.TrimPrefix(pu.Hostname(), "www.")
		}
	}
	location := p.Location
	if location == "" && remote == string(jobsearch.RemoteRemote) {
		location = "Remote"
	}

	lo, hi := p.SalaryMin, p.SalaryMax
	if lo < 0 || hi < lo {
		lo, hi = 0, 0
	}

	now := u.now().UTC()
	posted := now
	if p.PostedAt != nil && p.PostedAt.Before(now) {
		posted = p.PostedAt.UTC()
	}

	var owner *uuid.UUID
	if employer != uuid.Nil {
		owner = &employer
	}

	return job.Job{
		EmployerID:     owner,
		Title:          truncate(p.Title, 200),
		Company:        truncate(company, 200),
		Location:       truncate(location, 200),
		Description:    p.Description,
		RemoteType:     remote,
		JobType:        jobType,
		SalaryMin:      lo,
		SalaryMax:      hi,
		Skills:         cleanTags(p.Skills),
		RequiredSkills: cleanTags(p.RequiredSkills),
		Languages:      []string{},
		Benefits:       []string{},
		Source:         job.SourceImported,
		SourceURL:      &sourceURL,
		PostedAt:       posted,
	}
}

func (u *Jobs) jobsChanged(ctx context.Context, action string, id uuid.UUID) {
	InvalidateSearchCache(context.WithoutCancel(ctx), u.cache, u.logger)
	u.notifier.JobsUpdated(JobsUpdatedEvent{Action: action, JobID: id, At: u.now().UTC()})
}

func trimJobInput(in CreateJobInput) CreateJobInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)
	in.RemoteType = strings.ToUpper(strings.TrimSpace(in.RemoteType))
	in.JobType = strings.ToUpper(strings.TrimSpace(in.JobType))
	in.Experience = strings.TrimSpace(in.Experience)
	in.Industry = strings.TrimSpace(in.Industry)
	in.Education = strings.TrimSpace(in.Education)
	in.CompanySize = strings.TrimSpace(in.CompanySize)
	return in
}

// cleanTags trims tags and drops empty and duplicate entries, keeping the
// first spelling seen.
func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.Join(strings.Fields(t), " ")
		k := skill.Key(t)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
