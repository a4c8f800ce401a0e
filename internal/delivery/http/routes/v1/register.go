package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Jobs            *handler.JobHandler
	Recommendations *handler.JobRecommendationHandler
	SavedSearches   *handler.SavedSearchHandler
	SavedJobs       *handler.SavedJobHandler
	Skills          *handler.UserSkillHandler
}

func Register(r fiber.Router, auth fiber.Handler, h Handlers) {
	if r == nil || auth == nil {
		return
	}

	RegisterJobs(r.Group("/jobs"), auth, h.Recommendations, h.Jobs)
	RegisterMe(r.Group("/me", auth), h.SavedSearches, h.SavedJobs, h.Skills)
}
