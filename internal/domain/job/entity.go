package job

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceDirect   = "direct"
	SourceImported = "imported"
	SourceSeed     = "seed"
)

// Job is a posting as stored in the jobs table.
type Job struct {
	ID          uuid.UUID
	EmployerID  *uuid.UUID
	Title       string
	Company     string
	Location    string
	Description string

	RemoteType string
	JobType    string
	SalaryMin  int
	SalaryMax  int

	ExperienceLevel string
	Industry        string
	Education       string
	CompanySize     string

	Skills         []string
	RequiredSkills []string
	Languages      []string
	Benefits       []string

	Featured bool
	Urgent   bool
	Views    int

	Source    string
	SourceURL *string
	IsActive  bool

	PostedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether userID posted the job.
func (j Job) OwnedBy(userID uuid.UUID) bool {
	return j.EmployerID != nil && *j.EmployerID == userID
}
