package command

import (
	"context"
	"fmt"

	"github.com/octofit-hub/octofit-tracker/internal/domain/activity"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE ACTIVITY COMMAND
// Removes the activity record only. The points it earned stay on the profile
// and team totals: the ledger moves forward, never back.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteActivityHandler deletes an activity by ID.
type DeleteActivityHandler struct {
	activityRepo activity.Repository
}

// NewDeleteActivityHandler creates a new DeleteActivityHandler.
func NewDeleteActivityHandler(activityRepo activity.Repository) *DeleteActivityHandler {
	return &DeleteActivityHandler{activityRepo: activityRepo}
}

// Handle executes the delete activity command.
func (h *DeleteActivityHandler) Handle(ctx context.Context, activityID string) error {
	if activityID == "" {
		return shared.NewDomainError("activity", "Delete", shared.ErrInvalidID, "activity id is required")
	}

	if err := h.activityRepo.Delete(ctx, activityID); err != nil {
		return fmt.Errorf("delete_activity: %w", err)
	}

	return nil
}
