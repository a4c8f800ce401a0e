package usecase

import (
	"context"
	"strings"

	"jobboard/internal/domain/skill"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserSkillInput struct {
	Name             string `json:"name" validate:"required,max=50"`
	ProficiencyLevel int    `json:"proficiencyLevel" validate:"gte=1,lte=5"`
	YearsExperience  int    `json:"yearsExperience" validate:"gte=0,lte=60"`
}

type ReplaceUserSkillsInput struct {
	Skills []UserSkillInput `json:"skills" validate:"max=100,dive"`
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	ReplaceUserSkills(ctx context.Context, userID uuid.UUID, in ReplaceUserSkillsInput) ([]skill.UserSkill, error)
}

type UserSkill struct {
	repo   repository.UserSkillRepository
	logger *zap.Logger
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, logger *zap.Logger) *UserSkill {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserSkill{repo: repo, logger: logger}
}

func (u *UserSkill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		u.logger.Error("list user skills failed", zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

// ReplaceUserSkills swaps the whole profile. Names are compared by
// skill.Key; a later duplicate replaces an earlier one.
func (u *UserSkill) ReplaceUserSkills(ctx context.Context, userID uuid.UUID, in ReplaceUserSkillsInput) ([]skill.UserSkill, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	for i := range in.Skills {
		in.Skills[i].Name = strings.Join(strings.Fields(in.Skills[i].Name), " ")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	order := make([]string, 0, len(in.Skills))
	byKey := make(map[string]skill.UserSkill, len(in.Skills))
	for _, s := range in.Skills {
		k := skill.Key(s.Name)
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] = skill.UserSkill{
			UserID:           userID,
			Name:             s.Name,
			ProficiencyLevel: s.ProficiencyLevel,
			YearsExperience:  s.YearsExperience,
		}
	}
	skills := make([]skill.UserSkill, 0, len(order))
	for _, k := range order {
		skills = append(skills, byKey[k])
	}

	out, err := u.repo.ReplaceForUser(ctx, userID, skills)
	if err != nil {
		u.logger.Error("replace user skills failed", zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}
