package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/importer"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/pkg/metrics"
	"jobboard/internal/repository"
	"jobboard/internal/scheduler"
	"jobboard/internal/search"
	"jobboard/internal/usecase"
	"jobboard/internal/ws"
	"jobboard/migrations"

	"go.uber.org/zap"
)

const alertJobTimeout = 10 * time.Minute

var errDatabaseNotConfigured = errors.New("database not configured: set DB_HOST and DB_NAME")

// Container owns the process-wide dependencies and their lifecycle.
type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      database.DB
	Cache   *cache.Redis
	Metrics *metrics.Metrics
	Tokens  *jwt.HMACService
	Hub     *ws.Hub
	Catalog search.Catalog

	JobList         *usecase.JobList
	Jobs            *usecase.Jobs
	SavedSearches   *usecase.SavedSearches
	SavedJobs       *usecase.SavedJobs
	UserSkills      *usecase.UserSkill
	Recommendations *usecase.JobRecommendation
	Alerts          *usecase.SavedSearchAlerts

	Scheduler *scheduler.Scheduler

	cancelHub context.CancelFunc
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)
	if !cfg.Database.Enabled() {
		return nil, errDatabaseNotConfigured
	}

	catalog, err := search.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, cfg.App.AppName)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	runner := migration.Runner{Dir: cfg.App.MigrationsDir, Logger: log.Named("migration")}
	if runner.Dir == "" {
		runner.FS = migrations.FS
	}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	c := &Container{
		Config:  cfg,
		Logger:  log,
		DB:      db,
		Metrics: metrics.New(),
		Tokens:  jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn),
		Catalog: catalog,
	}
	if cfg.JWT.AccessSecret == "" {
		log.Warn("JWT_ACCESS_SECRET is empty, authenticated routes will reject every token")
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, log.Named("cache"))

	hubCtx, cancelHub := context.WithCancel(context.Background())
	c.cancelHub = cancelHub
	c.Hub = ws.NewHub(log.Named("ws"), c.Metrics)
	go c.Hub.Run(hubCtx)

	jobRepo := repository.NewPostgresJobRepository(db)
	savedSearchRepo := repository.NewPostgresSavedSearchRepository(db)
	savedJobRepo := repository.NewPostgresSavedJobRepository(db)
	userSkillRepo := repository.NewPostgresUserSkillRepository(db)

	fetcher := importer.New(cfg.Import, log.Named("importer"), importer.WithVocabulary(catalog.Skills))

	c.JobList = usecase.NewJobListUsecase(jobRepo, c.Cache, c.Metrics, log.Named("listing"))
	c.Jobs = usecase.NewJobUsecase(jobRepo, c.Cache, c.Hub, fetcher, c.Metrics, log.Named("jobs"))
	c.SavedSearches = usecase.NewSavedSearchUsecase(savedSearchRepo, c.JobList, log.Named("saved_searches"))
	c.SavedJobs = usecase.NewSavedJobUsecase(savedJobRepo, jobRepo, log.Named("saved_jobs"))
	c.UserSkills = usecase.NewUserSkillUsecase(userSkillRepo, log.Named("skills"))
	c.Recommendations = usecase.NewJobRecommendationUsecase(jobRepo, userSkillRepo, log.Named("recommendations"))
	c.Alerts = usecase.NewSavedSearchAlerts(savedSearchRepo, c.JobList, c.Hub, cfg.Alerts.Workers, float64(cfg.Alerts.RPS), c.Metrics, log.Named("alerts"))

	c.Scheduler = scheduler.New(log.Named("scheduler"), alertJobTimeout)
	if cfg.Alerts.Enabled {
		if err := c.Scheduler.Add("saved_search_alerts", cfg.Alerts.Schedule, c.runAlerts); err != nil {
			_ = c.Close(context.Background())
			return nil, fmt.Errorf("schedule alerts: %w", err)
		}
	}

	return c, nil
}

func (c *Container) runAlerts(ctx context.Context) error {
	stats, err := c.Alerts.Run(ctx)
	if err != nil {
		return err
	}
	c.Logger.Info("saved search alerts dispatched",
		zap.Int("checked", stats.Checked),
		zap.Int("due", stats.Due),
		zap.Int("sent", stats.Sent),
		zap.Int("empty", stats.Empty),
		zap.Int("failed", stats.Failed),
	)
	return nil
}

// Start launches background work.
func (c *Container) Start() {
	if c == nil || c.Scheduler == nil {
		return
	}
	c.Scheduler.Start()
}

// Close stops background work and releases connections. Running jobs get
// until ctx is done to finish.
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Scheduler != nil {
		if err := c.Scheduler.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}
	if c.cancelHub != nil {
		c.cancelHub()
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
