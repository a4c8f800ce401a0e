package dto

import (
	"jobboard/internal/domain/matching"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
)

type JobRecommendationResponse struct {
	JobID            uuid.UUID               `json:"jobId"`
	Title            string                  `json:"title"`
	Company          string                  `json:"company"`
	Location         string                  `json:"location"`
	RemoteType       string                  `json:"remoteType"`
	JobType          string                  `json:"jobType"`
	MatchScore       int                     `json:"matchScore"`
	MandatoryMissing bool                    `json:"mandatoryMissing"`
	MatchedSkills    []matching.MatchedSkill `json:"matchedSkills"`
	MissingSkills    []matching.MissingSkill `json:"missingSkills"`
}

func NewJobRecommendationsResponse(items []usecase.JobRecommendationItem) []JobRecommendationResponse {
	out := make([]JobRecommendationResponse, 0, len(items))
	for _, it := range items {
		matched := it.MatchedSkills
		if matched == nil {
			matched = []matching.MatchedSkill{}
		}
		missing := it.MissingSkills
		if missing == nil {
			missing = []matching.MissingSkill{}
		}
		out = append(out, JobRecommendationResponse{
			JobID:            it.Job.ID,
			Title:            it.Job.Title,
			Company:          it.Job.Company,
			Location:         it.Job.Location,
			RemoteType:       it.Job.RemoteType,
			JobType:          it.Job.JobType,
			MatchScore:       it.MatchScore,
			MandatoryMissing: it.MandatoryMissing,
			MatchedSkills:    matched,
			MissingSkills:    missing,
		})
	}
	return out
}
