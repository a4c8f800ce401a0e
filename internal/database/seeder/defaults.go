package seeder

import (
	"jobboard/internal/search"

	"github.com/google/uuid"
)

// Demo accounts. Tokens for them can be minted with cmd/seed -tokens.
var (
	DemoSeekerID   = uuid.MustParse("00000000-0000-4000-8000-000000000001")
	DemoEmployerID = uuid.MustParse("00000000-0000-4000-8000-000000000002")
	DemoAdminID    = uuid.MustParse("00000000-0000-4000-8000-000000000003")
)

func Defaults(catalog search.Catalog, jobs int) []Seeder {
	return []Seeder{
		JobsSeeder{Catalog: catalog, Count: jobs, Employer: DemoEmployerID},
		SeekerSeeder{UserID: DemoSeekerID},
	}
}
