package dto

import "jobboard/internal/usecase"

// JobListResponse is the listing body. It is returned bare, without the
// status envelope, so clients can read jobs and total directly.
type JobListResponse struct {
	Jobs       []usecase.JobSummary `json:"jobs"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"totalPages"`
}

func NewJobListResponse(res usecase.JobListResult) JobListResponse {
	jobs := res.Jobs
	if jobs == nil {
		jobs = []usecase.JobSummary{}
	}
	return JobListResponse{
		Jobs:       jobs,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	}
}
