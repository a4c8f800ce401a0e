package usecase

import (
	"strings"
	"testing"

	"jobboard/pkg/jobsearch"

	"github.com/stretchr/testify/assert"
)

func TestJobsSearchCacheKey_Normalizes(t *testing.T) {
	a := jobsearch.DefaultFilters()
	a.Query = "  Go   Developer"
	a.Location = "nicosia"
	a.Skills = []string{"Go", "SQL"}

	b := jobsearch.DefaultFilters()
	b.Query = "go developer"
	b.Location = "Nicosia "
	b.Skills = []string{"sql", "go", "Go"}

	page := jobsearch.FirstPage()
	ka := JobsSearchCacheKey(a, page)
	assert.Equal(t, ka, JobsSearchCacheKey(b, page))
	assert.True(t, strings.HasPrefix(ka, SearchCachePrefix))

	assert.NotEqual(t, ka, JobsSearchCacheKey(a, jobsearch.Page{Number: 2, Size: 12}))

	c := a.Clone()
	c.Urgent = jobsearch.False
	assert.NotEqual(t, ka, JobsSearchCacheKey(c, page))

	d := a.Clone()
	d.SortBy = ""
	d.SortOrder = ""
	assert.Equal(t, ka, JobsSearchCacheKey(d, page))
}

func TestJobsSearchLockKey(t *testing.T) {
	assert.Equal(t, "jobs:lock:abc", JobsSearchLockKey("jobs:search:abc"))
	assert.Equal(t, "jobs:lock:abc", JobsSearchLockKey("abc"))
}
