package search

import (
	"testing"

	"jobboard/pkg/jobsearch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_MatchesFilterModel(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, jobsearch.MinSalary, c.Salary.Min)
	assert.Equal(t, jobsearch.MaxSalary, c.Salary.Max)

	require.Len(t, c.RemoteTypes, len(jobsearch.RemoteTypes))
	for i, v := range jobsearch.RemoteTypes {
		assert.Equal(t, string(v), c.RemoteTypes[i])
	}
	require.Len(t, c.JobTypes, len(jobsearch.JobTypes))
	for i, v := range jobsearch.JobTypes {
		assert.Equal(t, string(v), c.JobTypes[i])
	}
	require.Len(t, c.SortKeys, len(jobsearch.SortKeys))
	for i, v := range jobsearch.SortKeys {
		assert.Equal(t, string(v), c.SortKeys[i])
	}
	for _, v := range c.PostedWithin {
		assert.Contains(t, jobsearch.PostedWithinValues, jobsearch.PostedWithin(v))
	}
	assert.Contains(t, c.Locations, "Nicosia")
	assert.NotEmpty(t, c.Industries)
}

func TestParseCatalog_Invalid(t *testing.T) {
	_, err := ParseCatalog([]byte("salary: [1, 2"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("salary:\n  min: 10\n  max: 5\n"))
	assert.ErrorContains(t, err, "must exceed")
}
