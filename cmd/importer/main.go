package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	pageURL := flag.String("url", "", "public job page to import")
	employer := flag.String("employer", "", "owner of the imported posting (user id, optional)")
	timeout := flag.Duration("timeout", 90*time.Second, "overall import timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.Alerts.Enabled = false

	lg, err := logger.New(cfg.App.AppName, cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	u := strings.TrimSpace(*pageURL)
	if u == "" {
		lg.Fatal("provide -url")
	}

	owner := uuid.Nil
	if s := strings.TrimSpace(*employer); s != "" {
		owner, err = uuid.Parse(s)
		if err != nil {
			lg.Fatal("invalid -employer", zap.Error(err))
		}
	}

	created, err := run(cfg, lg, u, owner, *timeout)
	if err != nil {
		lg.Fatal("import failed", zap.String("url", u), zap.Error(err))
	}
	fmt.Printf("imported %s: %s at %s (%d skills)\n", created.ID, created.Title, created.Company, len(created.Skills))
}

func run(cfg config.Config, lg *zap.Logger, pageURL string, owner uuid.UUID, timeout time.Duration) (job.Job, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		return job.Job{}, err
	}
	defer func() {
		if err := c.Close(context.Background()); err != nil {
			lg.Warn("close container", zap.Error(err))
		}
	}()

	return c.Jobs.Import(ctx, user.Actor{UserID: owner, Role: user.RoleAdmin}, usecase.ImportJobInput{URL: pageURL})
}
