package seeder

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"
	"jobboard/internal/repository"
	"jobboard/internal/search"
	"jobboard/pkg/jobsearch"

	"github.com/google/uuid"
)

// JobsSeeder inserts generated postings drawn from the facet catalog. It
// does nothing once seed postings exist.
type JobsSeeder struct {
	Catalog  search.Catalog
	Count    int
	Employer uuid.UUID
	// Seed makes the generated set reproducible.
	Seed uint64
}

func (JobsSeeder) Name() string { return "jobs" }

var demoTitles = []string{
	"Backend Engineer", "Frontend Developer", "Fullstack Engineer", "DevOps Engineer",
	"Data Engineer", "Data Analyst", "Product Designer", "Product Manager",
	"QA Engineer", "Mobile Developer", "Site Reliability Engineer", "Security Engineer",
	"Machine Learning Engineer", "Technical Writer", "Customer Success Manager", "Sales Executive",
}

var demoCompanies = []string{
	"Acme Corp", "CloudKita", "InsightWorks", "Northwind Labs", "Bluefin Health",
	"Orbit Logistics", "Papercraft", "Solaris Energy", "Tidewater Bank", "Vertex Games",
}

var (
	demoRemoteTypes = []string{string(jobsearch.RemoteOnsite), string(jobsearch.RemoteHybrid), string(jobsearch.RemoteRemote)}
	demoJobTypes    = []string{
		string(jobsearch.JobFullTime), string(jobsearch.JobPartTime), string(jobsearch.JobContract),
		string(jobsearch.JobInternship), string(jobsearch.JobFreelance),
	}
)

func (s JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "jobs",
		"id", "title", "company", "location", "remote_type", "job_type",
		"salary_min", "salary_max", "skills", "required_skills", "source", "posted_at",
	); err != nil {
		return err
	}

	var existing int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE source = $1`, job.SourceSeed).Scan(&existing); err != nil {
		return fmt.Errorf("count seed jobs: %w", err)
	}
	if existing > 0 {
		return nil
	}

	repo := repository.NewPostgresJobRepository(db)
	now := time.Now().UTC()
	for _, j := range s.generate(now) {
		if _, err := repo.Create(ctx, j); err != nil {
			return fmt.Errorf("insert %q: %w", j.Title, err)
		}
	}
	return nil
}

func (s JobsSeeder) generate(now time.Time) []job.Job {
	count := s.Count
	if count <= 0 {
		count = 120
	}
	seed := s.Seed
	if seed == 0 {
		seed = 42
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	pick := func(values []string) string {
		if len(values) == 0 {
			return ""
		}
		return values[rng.IntN(len(values))]
	}
	pickN := func(values []string, limit int) []string {
		if len(values) == 0 || limit <= 0 {
			return []string{}
		}
		n := 1 + rng.IntN(limit)
		idx := rng.Perm(len(values))
		out := make([]string, 0, n)
		for _, i := range idx[:min(n, len(values))] {
			out = append(out, values[i])
		}
		slices.Sort(out)
		return out
	}

	step := max(s.Catalog.Salary.Step, 1000)
	hiBound := max(s.Catalog.Salary.Max, 200000)

	employer := s.Employer
	out := make([]job.Job, 0, count)
	for range count {
		remote := pick(demoRemoteTypes)
		location := pick(s.Catalog.Locations)
		if remote == string(jobsearch.RemoteRemote) {
			location = "Remote"
		}

		lo := (20000 + rng.IntN(hiBound/2)) / step * step
		hi := min(lo+step*(2+rng.IntN(8)), hiBound)

		skills := pickN(s.Catalog.Skills, 6)
		required := skills[:min(len(skills), 1+rng.IntN(3))]

		title := pick(demoTitles)
		company := pick(demoCompanies)
		out = append(out, job.Job{
			EmployerID:      &employer,
			Title:           title,
			Company:         company,
			Location:        location,
			Description:     fmt.Sprintf("%s at %s. You will work with %s.", title, company, strings.Join(skills, ", ")),
			RemoteType:      remote,
			JobType:         pick(demoJobTypes),
			SalaryMin:       lo,
			SalaryMax:       hi,
			ExperienceLevel: pick(s.Catalog.Experience),
			Industry:        pick(s.Catalog.Industries),
			Education:       pick(s.Catalog.Education),
			CompanySize:     pick(s.Catalog.CompanySizes),
			Skills:          skills,
			RequiredSkills:  slices.Clone(required),
			Languages:       pickN(s.Catalog.Languages, 2),
			Benefits:        pickN(s.Catalog.Benefits, 4),
			Featured:        rng.IntN(10) == 0,
			Urgent:          rng.IntN(8) == 0,
			Source:          job.SourceSeed,
			PostedAt:        now.Add(-time.Duration(rng.IntN(60*24)) * time.Hour),
		})
	}
	return out
}
