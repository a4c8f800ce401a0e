package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/database/seeder"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/search"
	"jobboard/migrations"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	count := flag.Int("jobs", 120, "number of demo postings to generate")
	tokens := flag.Bool("tokens", false, "print access tokens for the demo accounts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.App.AppName, cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg, *count); err != nil {
		lg.Fatal("seed failed", zap.Error(err))
	}

	if *tokens {
		printTokens(cfg, lg)
	}
}

func run(cfg config.Config, lg *zap.Logger, count int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	catalog, err := search.DefaultCatalog()
	if err != nil {
		return err
	}

	db, err := dbpostgres.Connect(ctx, cfg.Database, cfg.App.AppName+"-seed")
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	mig := migration.Runner{Dir: cfg.App.MigrationsDir, Logger: lg.Named("migration")}
	if mig.Dir == "" {
		mig.FS = migrations.FS
	}
	if err := mig.Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	r := seeder.Runner{Seeders: seeder.Defaults(catalog, count), Logger: lg.Named("seeder")}
	return r.Run(ctx, db)
}

func printTokens(cfg config.Config, lg *zap.Logger) {
	svc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)
	accounts := []struct {
		role user.Role
		id   uuid.UUID
	}{
		{user.RoleJobSeeker, seeder.DemoSeekerID},
		{user.RoleEmployer, seeder.DemoEmployerID},
		{user.RoleAdmin, seeder.DemoAdminID},
	}
	for _, a := range accounts {
		tok, err := svc.GenerateAccessToken(a.id, a.role)
		if err != nil {
			lg.Error("mint token failed, is JWT_ACCESS_SECRET set?", zap.String("role", string(a.role)), zap.Error(err))
			continue
		}
		fmt.Printf("%s\t%s\t%s\n", a.role, a.id, tok)
	}
}
