package repository

import (
	"strings"
	"testing"
	"time"

	"jobboard/pkg/jobsearch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListingQuery_Defaults(t *testing.T) {
	q := buildListingQuery(JobListFilter{Filters: jobsearch.DefaultFilters()})

	assert.Equal(t, "WHERE j.is_active = true", q.whereSQL())
	assert.Empty(t, q.args)
	assert.Equal(t, "0", q.scoreSQL())
}

func TestBuildListingQuery_AllFacets(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	after := now.Add(-48 * time.Hour)

	f := jobsearch.DefaultFilters()
	f.Location = "Nicosia"
	f.RemoteType = []string{"REMOTE", "HYBRID"}
	f.JobType = []string{"FULL_TIME"}
	f.SalaryRange = jobsearch.SalaryRange{30000, 60000}
	f.Experience = []string{"Senior"}
	f.Skills = []string{"Go", "PostgreSQL"}
	f.Benefits = []string{"Bonus"}
	f.Featured = jobsearch.True
	f.Urgent = jobsearch.False
	f.PostedWithin = jobsearch.PostedWeek

	q := buildListingQuery(JobListFilter{
		Filters:      f,
		TextVariants: []string{"go developer", "100%_sure"},
		PostedAfter:  &after,
		Now:          now,
	})
	where := q.whereSQL()

	assert.Contains(t, where, "j.title ILIKE ANY($1)")
	assert.Contains(t, where, "j.location ILIKE $2")
	assert.Contains(t, where, "j.remote_type = ANY($3)")
	assert.Contains(t, where, "j.job_type = ANY($4)")
	assert.Contains(t, where, "j.salary_max >= $5")
	assert.Contains(t, where, "j.salary_min <= $6")
	assert.Contains(t, where, "lower(j.experience_level) = ANY($7)")
	assert.Contains(t, where, "unnest(j.skills)")
	assert.Contains(t, where, "unnest(j.benefits)")
	assert.Contains(t, where, "j.featured = $10")
	assert.Contains(t, where, "j.urgent = $11")
	assert.Contains(t, where, "j.posted_at >= $12")
	assert.Contains(t, where, "j.posted_at > $13")
	assert.NotContains(t, where, "industry")
	assert.NotContains(t, where, "languages")

	require.Len(t, q.args, 13)
	assert.Equal(t, []string{"%go developer%", `%100\%\_sure%`}, q.args[0])
	assert.Equal(t, "%Nicosia%", q.args[1])
	assert.Equal(t, 30000, q.args[4])
	assert.Equal(t, 60000, q.args[5])
	assert.Equal(t, []string{"senior"}, q.args[6])
	assert.Equal(t, []string{"go", "postgresql"}, q.args[7])
	assert.Equal(t, true, q.args[9])
	assert.Equal(t, false, q.args[10])
	assert.Equal(t, now.Add(-7*24*time.Hour), q.args[11])
	assert.Equal(t, after, q.args[12])

	assert.Contains(t, q.scoreSQL(), "j.title ILIKE ANY($1) THEN 3")
}

func TestBuildListingQuery_OpenEndedSalary(t *testing.T) {
	f := jobsearch.DefaultFilters()
	f.SalaryRange = jobsearch.SalaryRange{50000, jobsearch.MaxSalary}

	q := buildListingQuery(JobListFilter{Filters: f})
	assert.Contains(t, q.whereSQL(), "j.salary_max >= $1")
	assert.NotContains(t, q.whereSQL(), "j.salary_min <=")
}

func TestOrderBySQL_AlwaysEndsWithID(t *testing.T) {
	q := &listingQuery{}
	for _, key := range jobsearch.SortKeys {
		for _, order := range []jobsearch.SortOrder{jobsearch.OrderAsc, jobsearch.OrderDesc} {
			sql := q.orderBySQL(key, order)
			assert.True(t, strings.HasSuffix(sql, ", j.id ASC"), "%s %s: %s", key, order, sql)
		}
	}

	assert.Equal(t, "ORDER BY lower(j.title) ASC, j.id ASC", q.orderBySQL(jobsearch.SortTitle, jobsearch.OrderAsc))
	assert.Equal(t, "ORDER BY j.views DESC, j.id ASC", q.orderBySQL(jobsearch.SortViews, jobsearch.OrderDesc))
	assert.Equal(t, "ORDER BY j.posted_at ASC, j.id ASC", q.orderBySQL(jobsearch.SortOldest, jobsearch.OrderDesc))
	assert.Contains(t, q.orderBySQL(jobsearch.SortRelevance, jobsearch.OrderAsc), "score DESC")
}
