package eventhandler

import (
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ON ACTIVITY LOGGED HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// ActivityRecorder receives one observation per logged activity.
type ActivityRecorder func(category string, points int)

// OnActivityLoggedHandler feeds logged activities into the metrics recorder.
type OnActivityLoggedHandler struct {
	record ActivityRecorder
}

// NewOnActivityLoggedHandler creates a new OnActivityLoggedHandler.
func NewOnActivityLoggedHandler(record ActivityRecorder) *OnActivityLoggedHandler {
	return &OnActivityLoggedHandler{record: record}
}

// Handle processes an ActivityLoggedEvent.
func (h *OnActivityLoggedHandler) Handle(event shared.Event) error {
	logged, ok := event.(shared.ActivityLoggedEvent)
	if !ok {
		return nil
	}

	if h.record != nil {
		h.record(logged.Category, logged.Points)
	}
	return nil
}
