package savedsearch

import (
	"time"

	"github.com/google/uuid"
)

type Frequency string

const (
	FrequencyNone   Frequency = ""
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// MaxPerUser caps how many searches one user may keep.
const MaxPerUser = 20

// Interval is the minimum time between two alerts, zero when alerts are off.
func (f Frequency) Interval() time.Duration {
	switch f {
	case FrequencyDaily:
		return 24 * time.Hour
	case FrequencyWeekly:
		return 7 * 24 * time.Hour
	default:
		return 0
	}
}

func (f Frequency) Valid() bool {
	return f == FrequencyNone || f == FrequencyDaily || f == FrequencyWeekly
}

type SavedSearch struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Query          string
	AlertFrequency Frequency
	LastAlertedAt  *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DueAt reports whether an alert should run at now. A search that was
// never alerted is measured from its creation time.
func (s SavedSearch) DueAt(now time.Time) bool {
	interval := s.AlertFrequency.Interval()
	if interval == 0 {
		return false
	}
	since := s.CreatedAt
	if s.LastAlertedAt != nil {
		since = *s.LastAlertedAt
	}
	return !now.Before(since.Add(interval))
}

// Alert records one alert run for a saved search.
type Alert struct {
	ID            uuid.UUID
	SavedSearchID uuid.UUID
	NewJobs       int
	CreatedAt     time.Time
}
