package user

import "github.com/google/uuid"

type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer || r == RoleAdmin
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanPostJobs reports whether the actor may create or import postings.
func (a Actor) CanPostJobs() bool {
	return a.Role == RoleEmployer || a.Role == RoleAdmin
}
