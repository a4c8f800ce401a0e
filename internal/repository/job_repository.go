package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/database/postgres"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobExists   = errors.New("job already exists")
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	FindByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	FindBySourceURL(ctx context.Context, sourceURL string) (job.Job, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	ListRecent(ctx context.Context, limit int) ([]job.Job, error)
	ListForListing(ctx context.Context, f JobListFilter) ([]ListedJob, int, error)
}

// ListedJob is one listing row with its SQL text-match score.
type ListedJob struct {
	job.Job
	Score int
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `j.id, j.employer_id, j.title, j.company, j.location, j.description,
	j.remote_type, j.job_type, j.salary_min, j.salary_max,
	j.experience_level, j.industry, j.education, j.company_size,
	j.skills, j.required_skills, j.languages, j.benefits,
	j.featured, j.urgent, j.views, j.source, j.source_url, j.is_active,
	j.posted_at, j.created_at, j.updated_at`

func jobDest(j *job.Job) []any {
	return []any{
		&j.ID, &j.EmployerID, &j.Title, &j.Company, &j.Location, &j.Description,
		&j.RemoteType, &j.JobType, &j.SalaryMin, &j.SalaryMax,
		&j.ExperienceLevel, &j.Industry, &j.Education, &j.CompanySize,
		&j.Skills, &j.RequiredSkills, &j.Languages, &j.Benefits,
		&j.Featured, &j.Urgent, &j.Views, &j.Source, &j.SourceURL, &j.IsActive,
		&j.PostedAt, &j.CreatedAt, &j.UpdatedAt,
	}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	now := time.Now().UTC()
	if j.PostedAt.IsZero() {
		j.PostedAt = now
	}
	if j.Source == "" {
		j.Source = job.SourceDirect
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs AS j (
			id, employer_id, title, company, location, description,
			remote_type, job_type, salary_min, salary_max,
			experience_level, industry, education, company_size,
			skills, required_skills, languages, benefits,
			featured, urgent, source, source_url, is_active, posted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, true, $23)
		ON CONFLICT DO NOTHING
		RETURNING `+jobColumns,
		j.ID, j.EmployerID, j.Title, j.Company, j.Location, j.Description,
		j.RemoteType, j.JobType, j.SalaryMin, j.SalaryMax,
		j.ExperienceLevel, j.Industry, j.Education, j.CompanySize,
		nonNil(j.Skills), nonNil(j.RequiredSkills), nonNil(j.Languages), nonNil(j.Benefits),
		j.Featured, j.Urgent, j.Source, j.SourceURL, j.PostedAt,
	)

	var created job.Job
	if err := row.Scan(jobDest(&created)...); err != nil {
		if postgres.IsNoRows(err) {
			return job.Job{}, ErrJobExists
		}
		return job.Job{}, err
	}
	return created, nil
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id)

	var j job.Job
	if err := row.Scan(jobDest(&j)...); err != nil {
		if postgres.IsNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) FindBySourceURL(ctx context.Context, sourceURL string) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.source_url = $1`, sourceURL)

	var j job.Job
	if err := row.Scan(jobDest(&j)...); err != nil {
		if postgres.IsNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1 AND is_active = true)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET is_active = false, updated_at = now() WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *PostgresJobRepository) ListRecent(ctx context.Context, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 200
	}
	if limit > 1000 {
		limit = 1000
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 WHERE j.is_active = true
		 ORDER BY j.posted_at DESC, j.id ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(jobDest(&j)...); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListForListing returns one page of matching jobs and the total match
// count. The two queries run concurrently.
func (r *PostgresJobRepository) ListForListing(ctx context.Context, f JobListFilter) ([]ListedJob, int, error) {
	q := buildListingQuery(f)
	where := q.whereSQL()

	pageArgs := append(append([]any{}, q.args...), f.Limit, f.Offset)
	pageSQL := `SELECT ` + jobColumns + `, ` + q.scoreSQL() + ` AS score
		FROM jobs j
		` + where + `
		` + q.orderBySQL(f.Filters.SortBy, f.Filters.SortOrder) + `
		LIMIT $` + strconv.Itoa(len(q.args)+1) + ` OFFSET $` + strconv.Itoa(len(q.args)+2)
	countSQL := `SELECT COUNT(1) FROM jobs j ` + where

	var (
		out   []ListedJob
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := r.db.Query(gctx, pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		page := make([]ListedJob, 0, f.Limit)
		for rows.Next() {
			var lj ListedJob
			if err := rows.Scan(append(jobDest(&lj.Job), &lj.Score)...); err != nil {
				return err
			}
			page = append(page, lj)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		out = page
		return nil
	})
	g.Go(func() error {
		return r.db.QueryRow(gctx, countSQL, q.args...).Scan(&total)
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
