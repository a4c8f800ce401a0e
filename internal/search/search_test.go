package search

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  Senior   GO Developer ", want: "senior go developer"},
		{in: "C++ / C# engineer.", want: "c++ c# engineer"},
		{in: ".NET developer", want: ".net developer"},
		{in: "front-end!!", want: "front end"},
		{in: "   ", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeQuery(tt.in), tt.in)
	}
}

func TestProcessQuery_Variants(t *testing.T) {
	ctx := ProcessQuery("Backend Berlin")
	assert.Equal(t, "backend berlin", ctx.Normalized)
	require.NotEmpty(t, ctx.Variants)
	assert.Equal(t, "backend berlin", ctx.Variants[0])
	assert.Contains(t, ctx.Variants, "back end berlin")
	assert.Contains(t, ctx.Variants, "server developer berlin")

	compact := ProcessQuery("datascientist")
	assert.Contains(t, compact.Variants, "data scientist")
	assert.Contains(t, compact.Variants, "machine learning")

	assert.Empty(t, ProcessQuery("").Variants)
	assert.LessOrEqual(t, len(ProcessQuery("developer").Variants), MaxVariants)
}

func TestFallbackFirstWord(t *testing.T) {
	assert.Equal(t, "react", FallbackFirstWord("react native developer"))
	assert.Equal(t, "", FallbackFirstWord("react"))
	assert.Equal(t, "", FallbackFirstWord(""))
}

func TestRankJobs_StableAndScored(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	jobs := []Job{
		{OriginalIndex: 0, ID: uuid.New(), Title: "Office Manager", Company: "Acme", PostedAt: now.Add(-60 * 24 * time.Hour)},
		{OriginalIndex: 1, ID: uuid.New(), Title: "Go Developer", Company: "Gopher", Skills: []string{"Go"}, PostedAt: now.Add(-2 * time.Hour), Source: "direct"},
		{OriginalIndex: 2, ID: uuid.New(), Title: "Office Manager", Company: "Acme", PostedAt: now.Add(-60 * 24 * time.Hour)},
	}

	ranked := RankJobs(jobs, []string{"go developer"}, now)
	require.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[0].Job.OriginalIndex)
	assert.Equal(t, 0, ranked[1].Job.OriginalIndex)
	assert.Equal(t, 2, ranked[2].Job.OriginalIndex)
	assert.Greater(t, ranked[0].Percent, ranked[1].Percent)
	assert.LessOrEqual(t, ranked[0].Percent, 100)

	kept := ScoreJobs(jobs, nil, now)
	assert.Equal(t, 0, kept[0].Job.OriginalIndex)
	assert.Equal(t, 0.0, kept[0].Score.Relevance)
}

func TestComputeFreshness(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 5.0, ComputeFreshness(Job{PostedAt: now.Add(time.Hour)}, now))
	assert.Equal(t, 3.0, ComputeFreshness(Job{PostedAt: now.Add(-5 * 24 * time.Hour)}, now))
	assert.Equal(t, 0.0, ComputeFreshness(Job{}, now))
}
