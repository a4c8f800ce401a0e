package routes

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	v1 "jobboard/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups everything the router mounts. Nil handlers are skipped.
type Handlers struct {
	Health  *handler.HealthHandler
	Listing *handler.JobsHandler
	Metrics fiber.Handler
	WS      fiber.Handler
	Auth    *middleware.AuthMiddleware
	V1      v1.Handlers
}

type Registry struct {
	h Handlers
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{h: h}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerListing(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
	if r.h.Metrics != nil {
		app.Get("/metrics", r.h.Metrics)
	}
	if r.h.WS != nil {
		app.Get("/ws", r.h.WS)
	}
}

func (r *Registry) registerListing(app *fiber.App) {
	if r.h.Listing != nil {
		r.h.Listing.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	if r.h.Auth == nil {
		return
	}
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.h.Auth.Middleware(), r.h.V1)
}
