package usecase

import (
	"context"
	"testing"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRecommendationUsecase(t *testing.T) {
	jobs := newFakeJobRepo()
	mk := func(title string, required, optional []string) uuid.UUID {
		j, err := jobs.Create(context.Background(), job.Job{Title: title, RequiredSkills: required, Skills: optional})
		require.NoError(t, err)
		return j.ID
	}
	perfect := mk("Go backend", []string{"Go"}, []string{"PostgreSQL"})
	partial := mk("Java backend", []string{"Java"}, []string{"Go"})
	mk("No tags", nil, nil)
	mk("Rust", nil, []string{"Rust"})

	userID := uuid.New()
	skills := &fakeUserSkillRepo{skills: map[uuid.UUID][]skill.UserSkill{
		userID: {
			{UserID: userID, Name: "go", ProficiencyLevel: 5, YearsExperience: 5},
			{UserID: userID, Name: "PostgreSQL", ProficiencyLevel: 3, YearsExperience: 2},
		},
	}}
	uc := NewJobRecommendationUsecase(jobs, skills, nil)

	items, err := uc.GetRecommendations(context.Background(), userID, JobRecommendationParams{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, perfect, items[0].Job.ID)
	assert.Equal(t, 100, items[0].MatchScore)
	assert.False(t, items[0].MandatoryMissing)
	assert.Equal(t, partial, items[1].Job.ID)
	assert.Equal(t, 35, items[1].MatchScore)
	assert.True(t, items[1].MandatoryMissing)

	items, err = uc.GetRecommendations(context.Background(), userID, JobRecommendationParams{MinScore: 50})
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = uc.GetRecommendations(context.Background(), userID, JobRecommendationParams{Limit: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, perfect, items[0].Job.ID)

	_, err = uc.GetRecommendations(context.Background(), userID, JobRecommendationParams{MinScore: 101})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.GetRecommendations(context.Background(), uuid.New(), JobRecommendationParams{})
	assert.ErrorIs(t, err, ErrUserSkillProfileEmpty)
}
