package dto

import (
	"time"

	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type SavedJobItem struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Location   string    `json:"location"`
	RemoteType string    `json:"remoteType"`
	JobType    string    `json:"jobType"`
	SalaryMin  int       `json:"salaryMin"`
	SalaryMax  int       `json:"salaryMax"`
	PostedAt   time.Time `json:"postedAt"`
}

type SavedJobsResponse struct {
	IDs  []uuid.UUID    `json:"ids"`
	Jobs []SavedJobItem `json:"jobs"`
}

func NewSavedJobsResponse(jobs []job.Job) SavedJobsResponse {
	out := SavedJobsResponse{
		IDs:  make([]uuid.UUID, 0, len(jobs)),
		Jobs: make([]SavedJobItem, 0, len(jobs)),
	}
	for _, j := range jobs {
		out.IDs = append(out.IDs, j.ID)
		out.Jobs = append(out.Jobs, SavedJobItem{
			ID:         j.ID,
			Title:      j.Title,
			Company:    j.Company,
			Location:   j.Location,
			RemoteType: j.RemoteType,
			JobType:    j.JobType,
			SalaryMin:  j.SalaryMin,
			SalaryMax:  j.SalaryMax,
			PostedAt:   j.PostedAt.UTC(),
		})
	}
	return out
}
