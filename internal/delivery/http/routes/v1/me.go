package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterMe mounts the caller-scoped resources on an authenticated group.
func RegisterMe(r fiber.Router, searches *handler.SavedSearchHandler, saved *handler.SavedJobHandler, skills *handler.UserSkillHandler) {
	if r == nil {
		return
	}
	if searches != nil {
		searches.RegisterRoutes(r)
	}
	if saved != nil {
		saved.RegisterRoutes(r)
	}
	if skills != nil {
		skills.RegisterRoutes(r)
	}
}
