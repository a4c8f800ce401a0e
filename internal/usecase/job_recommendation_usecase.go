package usecase

import (
	"context"
	"sort"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultRecommendationLimit = 20
	maxRecommendationLimit     = 50
	// recommendationPool is how many recent postings are scored per request.
	recommendationPool = 300
)

type JobRecommendationParams struct {
	Limit    int
	MinScore int
}

type JobRecommendationItem struct {
	Job              job.Job
	MatchScore       int
	MandatoryMissing bool
	MatchedSkills    []matching.MatchedSkill
	MissingSkills    []matching.MissingSkill
}

type JobRecommendationUsecase interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, params JobRecommendationParams) ([]JobRecommendationItem, error)
}

type JobRecommendation struct {
	jobs       repository.JobRepository
	userSkills repository.UserSkillRepository
	logger     *zap.Logger
}

func NewJobRecommendationUsecase(jobs repository.JobRepository, userSkills repository.UserSkillRepository, logger *zap.Logger) *JobRecommendation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobRecommendation{jobs: jobs, userSkills: userSkills, logger: logger}
}

func (u *JobRecommendation) GetRecommendations(ctx context.Context, userID uuid.UUID, params JobRecommendationParams) ([]JobRecommendationItem, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	if limit > maxRecommendationLimit {
		limit = maxRecommendationLimit
	}
	if params.MinScore < 0 || params.MinScore > 100 {
		return nil, invalidField("minScore", "must be between 0 and 100")
	}

	us, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		u.logger.Error("load user skills failed", zap.Error(err))
		return nil, ErrInternal
	}
	if len(us) == 0 {
		return nil, ErrUserSkillProfileEmpty
	}

	jobs, err := u.jobs.ListRecent(ctx, recommendationPool)
	if err != nil {
		u.logger.Error("load recent jobs failed", zap.Error(err))
		return nil, ErrInternal
	}

	profile := make([]matching.UserSkill, 0, len(us))
	for _, s := range us {
		profile = append(profile, matching.UserSkill{
			SkillName:        s.Name,
			ProficiencyLevel: s.ProficiencyLevel,
			YearsExperience:  s.YearsExperience,
		})
	}

	out := make([]JobRecommendationItem, 0, len(jobs))
	for _, j := range jobs {
		reqs := matching.Requirements(j.RequiredSkills, j.Skills)
		if len(reqs) == 0 {
			continue
		}
		res := matching.Calculate(profile, reqs)
		if res.MatchScore == 0 || res.MatchScore < params.MinScore {
			continue
		}
		out = append(out, JobRecommendationItem{
			Job:              j,
			MatchScore:       res.MatchScore,
			MandatoryMissing: res.MandatoryMissing,
			MatchedSkills:    res.MatchedSkills,
			MissingSkills:    res.MissingSkills,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchScore != out[j].MatchScore {
			return out[i].MatchScore > out[j].MatchScore
		}
		return out[i].Job.PostedAt.After(out[j].Job.PostedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
