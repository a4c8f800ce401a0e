package usecase

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobActionCreated     = "created"
	JobActionImported    = "imported"
	JobActionDeactivated = "deactivated"
)

type JobsUpdatedEvent struct {
	Action string    `json:"action"`
	JobID  uuid.UUID `json:"jobId"`
	At     time.Time `json:"at"`
}

type SavedSearchAlertEvent struct {
	SavedSearchID uuid.UUID    `json:"savedSearchId"`
	Name          string       `json:"name"`
	Query         string       `json:"query"`
	NewJobs       int          `json:"newJobs"`
	Preview       []JobSummary `json:"preview"`
	At            time.Time    `json:"at"`
}

// Notifier pushes events to connected clients. Delivery is best effort.
type Notifier interface {
	JobsUpdated(ev JobsUpdatedEvent)
	SavedSearchAlert(userID uuid.UUID, ev SavedSearchAlertEvent)
}

type nopNotifier struct{}

func (nopNotifier) JobsUpdated(JobsUpdatedEvent)                      {}
func (nopNotifier) SavedSearchAlert(uuid.UUID, SavedSearchAlertEvent) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
