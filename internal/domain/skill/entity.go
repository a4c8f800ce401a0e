package skill

import (
	"strings"

	"github.com/google/uuid"
)

// UserSkill is one entry of a job seeker's skill profile. Skills are
// identified by name; Key gives the comparison form.
type UserSkill struct {
	UserID           uuid.UUID
	Name             string
	ProficiencyLevel int
	YearsExperience  int
}

// Key normalizes a skill name for comparison with job skill tags.
func Key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
