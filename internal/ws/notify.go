package ws

import (
	"encoding/json"

	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventJobsUpdated      = "jobs_updated"
	EventSavedSearchAlert = "saved_search_alert"
)

type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// JobsUpdated broadcasts to every client so open listings can refresh.
func (h *Hub) JobsUpdated(ev usecase.JobsUpdatedEvent) {
	if b, ok := h.encode(EventJobsUpdated, ev); ok {
		h.Broadcast(b)
	}
}

// SavedSearchAlert goes to the owner's connections only.
func (h *Hub) SavedSearchAlert(userID uuid.UUID, ev usecase.SavedSearchAlertEvent) {
	if b, ok := h.encode(EventSavedSearchAlert, ev); ok {
		h.SendToUser(userID, b)
	}
}

func (h *Hub) encode(eventType string, data any) ([]byte, bool) {
	if h == nil {
		return nil, false
	}
	b, err := json.Marshal(envelope{Type: eventType, Data: data})
	if err != nil {
		h.logger.Error("ws encode failed", zap.String("type", eventType), zap.Error(err))
		return nil, false
	}
	return b, true
}

var _ usecase.Notifier = (*Hub)(nil)
