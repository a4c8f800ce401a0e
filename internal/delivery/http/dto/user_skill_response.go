package dto

import "jobboard/internal/domain/skill"

type UserSkillResponse struct {
	Name             string `json:"name"`
	ProficiencyLevel int    `json:"proficiencyLevel"`
	YearsExperience  int    `json:"yearsExperience"`
}

func NewUserSkillsResponse(items []skill.UserSkill) []UserSkillResponse {
	out := make([]UserSkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, UserSkillResponse{
			Name:             it.Name,
			ProficiencyLevel: it.ProficiencyLevel,
			YearsExperience:  it.YearsExperience,
		})
	}
	return out
}
