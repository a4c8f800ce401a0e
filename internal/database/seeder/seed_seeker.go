package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
	"jobboard/internal/domain/savedsearch"
	"jobboard/internal/domain/skill"
	"jobboard/internal/repository"
	"jobboard/pkg/jobsearch"

	"github.com/google/uuid"
)

// SeekerSeeder gives the demo job seeker a skill profile and one saved
// search with daily alerts.
type SeekerSeeder struct {
	UserID uuid.UUID
}

func (SeekerSeeder) Name() string { return "seeker" }

func (s SeekerSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "user_skills", "user_id", "skill", "proficiency_level", "years_experience"); err != nil {
		return err
	}
	if err := RequireColumns(ctx, db, "saved_searches", "id", "user_id", "name", "query", "alert_frequency"); err != nil {
		return err
	}

	skills := repository.NewPostgresUserSkillRepository(db)
	if _, err := skills.ReplaceForUser(ctx, s.UserID, []skill.UserSkill{
		{UserID: s.UserID, Name: "Go", ProficiencyLevel: 4, YearsExperience: 4},
		{UserID: s.UserID, Name: "PostgreSQL", ProficiencyLevel: 3, YearsExperience: 3},
		{UserID: s.UserID, Name: "Docker", ProficiencyLevel: 3, YearsExperience: 2},
		{UserID: s.UserID, Name: "Kubernetes", ProficiencyLevel: 2, YearsExperience: 1},
	}); err != nil {
		return fmt.Errorf("skills: %w", err)
	}

	searches := repository.NewPostgresSavedSearchRepository(db)
	existing, err := searches.ListByUser(ctx, s.UserID)
	if err != nil {
		return fmt.Errorf("list saved searches: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	f := jobsearch.DefaultFilters()
	f.Query = "engineer"
	f.RemoteType = []string{string(jobsearch.RemoteRemote), string(jobsearch.RemoteHybrid)}
	f.Skills = []string{"Go"}
	_, err = searches.Create(ctx, savedsearch.SavedSearch{
		UserID:         s.UserID,
		Name:           "Remote Go roles",
		Query:          jobsearch.EncodeFilters(f).Encode(),
		AlertFrequency: savedsearch.FrequencyDaily,
	}, savedsearch.MaxPerUser)
	if err != nil {
		return fmt.Errorf("saved search: %w", err)
	}
	return nil
}
