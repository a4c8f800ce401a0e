package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mounts recommendations ahead of the /:id routes.
func RegisterJobs(r fiber.Router, auth fiber.Handler, recs *handler.JobRecommendationHandler, jobs *handler.JobHandler) {
	if r == nil {
		return
	}
	if recs != nil {
		recs.RegisterRoutes(r, auth)
	}
	if jobs != nil {
		jobs.RegisterRoutes(r, auth)
	}
}
