package dto

import (
	"time"

	"jobboard/internal/domain/savedsearch"
	"jobboard/pkg/jobsearch"

	"github.com/google/uuid"
)

type SavedSearchResponse struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	Query          string            `json:"query"`
	Filters        jobsearch.Filters `json:"filters"`
	AlertFrequency string            `json:"alertFrequency"`
	LastAlertedAt  *time.Time        `json:"lastAlertedAt"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// NewSavedSearchResponse expands the stored query into filters. A query
// that no longer parses is shown as the default filters.
func NewSavedSearchResponse(s savedsearch.SavedSearch) SavedSearchResponse {
	f, err := jobsearch.ParseFiltersString(s.Query)
	if err != nil {
		f = jobsearch.DefaultFilters()
	}
	return SavedSearchResponse{
		ID:             s.ID,
		Name:           s.Name,
		Query:          s.Query,
		Filters:        f,
		AlertFrequency: string(s.AlertFrequency),
		LastAlertedAt:  s.LastAlertedAt,
		CreatedAt:      s.CreatedAt.UTC(),
		UpdatedAt:      s.UpdatedAt.UTC(),
	}
}

func NewSavedSearchListResponse(items []savedsearch.SavedSearch) []SavedSearchResponse {
	out := make([]SavedSearchResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewSavedSearchResponse(s))
	}
	return out
}
