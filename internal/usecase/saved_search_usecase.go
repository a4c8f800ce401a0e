package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/domain/savedsearch"
	"jobboard/internal/repository"
	"jobboard/pkg/jobsearch"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SavedSearchInput accepts the search either as a query string or as a
// filters object. Filters win when both are given.
type SavedSearchInput struct {
	Name           string             `json:"name" validate:"required,max=100"`
	Query          string             `json:"query" validate:"max=4000"`
	Filters        *jobsearch.Filters `json:"filters" validate:"-"`
	AlertFrequency string             `json:"alertFrequency" validate:"omitempty,oneof=daily weekly"`
}

type SavedSearchUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]savedsearch.SavedSearch, error)
	Get(ctx context.Context, userID, id uuid.UUID) (savedsearch.SavedSearch, error)
	Create(ctx context.Context, userID uuid.UUID, in SavedSearchInput) (savedsearch.SavedSearch, error)
	Update(ctx context.Context, userID, id uuid.UUID, in SavedSearchInput) (savedsearch.SavedSearch, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Results(ctx context.Context, userID, id uuid.UUID, page jobsearch.Page) (JobListResult, error)
}

type SavedSearches struct {
	repo   repository.SavedSearchRepository
	lister JobListUsecase
	logger *zap.Logger
}

func NewSavedSearchUsecase(repo repository.SavedSearchRepository, lister JobListUsecase, logger *zap.Logger) *SavedSearches {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SavedSearches{repo: repo, lister: lister, logger: logger}
}

func (u *SavedSearches) List(ctx context.Context, userID uuid.UUID) ([]savedsearch.SavedSearch, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		u.logger.Error("list saved searches failed", zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

func (u *SavedSearches) Get(ctx context.Context, userID, id uuid.UUID) (savedsearch.SavedSearch, error) {
	if userID == uuid.Nil {
		return savedsearch.SavedSearch{}, ErrUnauthorized
	}
	s, err := u.repo.FindByID(ctx, userID, id)
	if err != nil {
		return savedsearch.SavedSearch{}, u.mapRepoErr(err)
	}
	return s, nil
}

func (u *SavedSearches) Create(ctx context.Context, userID uuid.UUID, in SavedSearchInput) (savedsearch.SavedSearch, error) {
	if userID == uuid.Nil {
		return savedsearch.SavedSearch{}, ErrUnauthorized
	}
	s, err := buildSavedSearch(in)
	if err != nil {
		return savedsearch.SavedSearch{}, err
	}
	s.UserID = userID

	created, err := u.repo.Create(ctx, s, savedsearch.MaxPerUser)
	if err != nil {
		if errors.Is(err, repository.ErrSavedSearchLimit) {
			return savedsearch.SavedSearch{}, fmt.Errorf("%w: at most %d saved searches per user", ErrConflict, savedsearch.MaxPerUser)
		}
		u.logger.Error("create saved search failed", zap.Error(err))
		return savedsearch.SavedSearch{}, ErrInternal
	}
	return created, nil
}

func (u *SavedSearches) Update(ctx context.Context, userID, id uuid.UUID, in SavedSearchInput) (savedsearch.SavedSearch, error) {
	if userID == uuid.Nil {
		return savedsearch.SavedSearch{}, ErrUnauthorized
	}
	s, err := buildSavedSearch(in)
	if err != nil {
		return savedsearch.SavedSearch{}, err
	}
	s.ID = id
	s.UserID = userID

	updated, err := u.repo.Update(ctx, s)
	if err != nil {
		return savedsearch.SavedSearch{}, u.mapRepoErr(err)
	}
	return updated, nil
}

func (u *SavedSearches) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		return u.mapRepoErr(err)
	}
	return nil
}

// Results runs the listing with the stored filters.
func (u *SavedSearches) Results(ctx context.Context, userID, id uuid.UUID, page jobsearch.Page) (JobListResult, error) {
	s, err := u.Get(ctx, userID, id)
	if err != nil {
		return JobListResult{}, err
	}
	f, err := jobsearch.ParseFiltersString(s.Query)
	if err != nil {
		u.logger.Error("stored saved search query is invalid", zap.String("saved_search_id", id.String()), zap.Error(err))
		return JobListResult{}, ErrInternal
	}
	return u.lister.ListJobs(ctx, JobListParams{Filters: f, Page: page})
}

func (u *SavedSearches) mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrSavedSearchNotFound) {
		return ErrNotFound
	}
	u.logger.Error("saved search storage failed", zap.Error(err))
	return ErrInternal
}

// buildSavedSearch validates the input and stores the search in its
// canonical query string form.
func buildSavedSearch(in SavedSearchInput) (savedsearch.SavedSearch, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Query = strings.TrimSpace(in.Query)
	in.AlertFrequency = strings.ToLower(strings.TrimSpace(in.AlertFrequency))
	if err := validateStruct(in); err != nil {
		return savedsearch.SavedSearch{}, err
	}

	var f jobsearch.Filters
	if in.Filters != nil {
		f = in.Filters.Clone()
		// An omitted salaryRange decodes as [0,0].
		if f.SalaryRange == (jobsearch.SalaryRange{}) {
			f.SalaryRange = jobsearch.DefaultSalaryRange()
		}
	} else {
		var err error
		f, err = jobsearch.ParseFiltersString(in.Query)
		if err != nil {
			return savedsearch.SavedSearch{}, invalidField("query", err.Error())
		}
	}
	if err := f.Validate(); err != nil {
		var verr *jobsearch.ValidationError
		if errors.As(err, &verr) {
			fields := make(map[string]string, len(verr.Problems))
			for k, v := range verr.Problems {
				fields["filters."+string(k)] = v
			}
			return savedsearch.SavedSearch{}, &ValidationError{Message: "invalid filters", Fields: fields}
		}
		return savedsearch.SavedSearch{}, ErrInvalidInput
	}

	return savedsearch.SavedSearch{
		Name:           in.Name,
		Query:          jobsearch.EncodeFilters(f).Encode(),
		AlertFrequency: savedsearch.Frequency(in.AlertFrequency),
	}, nil
}
