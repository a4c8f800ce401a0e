package dto

import (
	"time"

	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID              uuid.UUID  `json:"id"`
	EmployerID      *uuid.UUID `json:"employerId,omitempty"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Location        string     `json:"location"`
	Description     string     `json:"description"`
	RemoteType      string     `json:"remoteType"`
	JobType         string     `json:"jobType"`
	SalaryMin       int        `json:"salaryMin"`
	SalaryMax       int        `json:"salaryMax"`
	ExperienceLevel string     `json:"experience,omitempty"`
	Industry        string     `json:"industry,omitempty"`
	Education       string     `json:"education,omitempty"`
	CompanySize     string     `json:"companySize,omitempty"`
	Skills          []string   `json:"skills"`
	RequiredSkills  []string   `json:"requiredSkills"`
	Languages       []string   `json:"languages"`
	Benefits        []string   `json:"benefits"`
	Featured        bool       `json:"featured"`
	Urgent          bool       `json:"urgent"`
	Views           int        `json:"views"`
	Source          string     `json:"source"`
	SourceURL       *string    `json:"sourceUrl,omitempty"`
	PostedAt        time.Time  `json:"postedAt"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:              j.ID,
		EmployerID:      j.EmployerID,
		Title:           j.Title,
		Company:         j.Company,
		Location:        j.Location,
		Description:     j.Description,
		RemoteType:      j.RemoteType,
		JobType:         j.JobType,
		SalaryMin:       j.SalaryMin,
		SalaryMax:       j.SalaryMax,
		ExperienceLevel: j.ExperienceLevel,
		Industry:        j.Industry,
		Education:       j.Education,
		CompanySize:     j.CompanySize,
		Skills:          nonNil(j.Skills),
		RequiredSkills:  nonNil(j.RequiredSkills),
		Languages:       nonNil(j.Languages),
		Benefits:        nonNil(j.Benefits),
		Featured:        j.Featured,
		Urgent:          j.Urgent,
		Views:           j.Views,
		Source:          j.Source,
		SourceURL:       j.SourceURL,
		PostedAt:        j.PostedAt.UTC(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
