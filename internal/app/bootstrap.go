package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of a ready container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container and the HTTP app. The returned cleanup
// shuts down background work and closes connections.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func(context.Context) error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	app := New(c)
	c.Start()
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger.Named("http")).Middleware())
	app.Use(middleware.Metrics(c.Metrics))
	app.Use(middleware.NewErrorMiddleware(c.Logger.Named("http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	checks := map[string]handler.Pinger{"postgres": c.DB}
	if c.Cache != nil {
		checks["redis"] = c.Cache
	}

	routes.NewRegistry(routes.Handlers{
		Health:  handler.NewHealthHandler(checks),
		Listing: handler.NewJobsHandler(c.JobList, c.Catalog),
		Metrics: adaptor.HTTPHandler(c.Metrics.Handler()),
		WS:      ws.NewHandler(c.Hub, c.Tokens, c.Logger.Named("ws")).HandleWS,
		Auth:    middleware.NewAuthMiddleware(c.Tokens),
		V1: v1.Handlers{
			Jobs:            handler.NewJobHandler(c.Jobs),
			Recommendations: handler.NewJobRecommendationHandler(c.Recommendations),
			SavedSearches:   handler.NewSavedSearchHandler(c.SavedSearches),
			SavedJobs:       handler.NewSavedJobHandler(c.SavedJobs),
			Skills:          handler.NewUserSkillHandler(c.UserSkills),
		},
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
