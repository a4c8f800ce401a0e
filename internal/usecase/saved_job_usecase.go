package usecase

import (
	"context"
	"errors"

	"jobboard/internal/domain/job"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SavedJobUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]job.Job, error)
	Save(ctx context.Context, userID, jobID uuid.UUID) error
	Unsave(ctx context.Context, userID, jobID uuid.UUID) error
}

type SavedJobs struct {
	saved  repository.SavedJobRepository
	jobs   repository.JobRepository
	logger *zap.Logger
}

func NewSavedJobUsecase(saved repository.SavedJobRepository, jobs repository.JobRepository, logger *zap.Logger) *SavedJobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SavedJobs{saved: saved, jobs: jobs, logger: logger}
}

func (u *SavedJobs) List(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.saved.ListByUser(ctx, userID)
	if err != nil {
		u.logger.Error("list saved jobs failed", zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

// Save is idempotent. Only active postings can be saved.
func (u *SavedJobs) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if err := u.ensureJob(ctx, jobID); err != nil {
		return err
	}
	if err := u.saved.Save(ctx, userID, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrNotFound
		}
		u.logger.Error("save job failed", zap.Error(err))
		return ErrInternal
	}
	return nil
}

// Unsave is idempotent for known postings.
func (u *SavedJobs) Unsave(ctx context.Context, userID, jobID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return ErrInvalidInput
	}
	if _, err := u.jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if err := u.saved.Unsave(ctx, userID, jobID); err != nil {
		u.logger.Error("unsave job failed", zap.Error(err))
		return ErrInternal
	}
	return nil
}

func (u *SavedJobs) ensureJob(ctx context.Context, jobID uuid.UUID) error {
	if jobID == uuid.Nil {
		return ErrInvalidInput
	}
	ok, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		u.logger.Error("job lookup failed", zap.Error(err))
		return ErrInternal
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
