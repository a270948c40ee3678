package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/octofit-hub/octofit-tracker/internal/domain/activity"
	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LOG ACTIVITY COMMAND
// The central write path: validate the activity, compute its points, and
// append it to the ledger, which credits the profile total and the team
// total (when the profile has one) in a single transaction.
// ══════════════════════════════════════════════════════════════════════════════

// LogActivityCommand contains the data to log an activity.
type LogActivityCommand struct {
	// ProfileID is the owner of the activity.
	ProfileID string

	// Category is the activity type. Unrecognized values are accepted and
	// scored at the fallback rate.
	Category string

	// DurationMinutes is the session length. Must be positive.
	DurationMinutes int

	// DistanceKM is optional; nil when not recorded.
	DistanceKM *float64

	// Calories is optional; nil when not recorded.
	Calories *int

	// Date is when the activity took place; zero means "now".
	Date time.Time

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command. Failures carry the validation kind so
// the transport layer can map them to a client error.
func (c LogActivityCommand) Validate() error {
	if c.ProfileID == "" {
		return shared.ErrInvalidOwner
	}
	if c.Category == "" {
		return shared.NewDomainError("activity", "Validate", shared.ErrEmptyValue, "category is required")
	}
	if c.DurationMinutes <= 0 {
		return shared.ErrInvalidDuration
	}
	if c.DistanceKM != nil && *c.DistanceKM < 0 {
		return shared.ErrInvalidDistance
	}
	return nil
}

// LogActivityResult contains the logged activity and the totals after the
// ledger applied its points.
type LogActivityResult struct {
	Activity        *activity.Activity
	NewProfileTotal int

	// NewTeamTotal is nil when the profile is teamless. A present zero is
	// a real total: a short walk can score zero points.
	NewTeamTotal *int
}

// LogActivityHandler handles the LogActivityCommand.
type LogActivityHandler struct {
	profileRepo    profile.Repository
	ledger         activity.Ledger
	eventPublisher shared.EventPublisher
}

// NewLogActivityHandler creates a new LogActivityHandler.
func NewLogActivityHandler(
	profileRepo profile.Repository,
	ledger activity.Ledger,
	eventPublisher shared.EventPublisher,
) *LogActivityHandler {
	return &LogActivityHandler{
		profileRepo:    profileRepo,
		ledger:         ledger,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the log activity command.
//
// The ledger append is a single transaction covering the activity insert and
// both total increments, so a crash cannot leave the profile credited but
// the team not. Append runs exactly once per activity; there is no retry.
func (h *LogActivityHandler) Handle(ctx context.Context, cmd LogActivityCommand) (*LogActivityResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("log_activity: validation failed: %w", err)
	}

	owner, err := h.profileRepo.GetByID(ctx, cmd.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("log_activity: owner not found: %w", err)
	}

	a, err := activity.NewActivity(activity.NewActivityParams{
		ID:              uuid.NewString(),
		ProfileID:       owner.ID,
		Category:        activity.Category(cmd.Category),
		DurationMinutes: cmd.DurationMinutes,
		DistanceKM:      cmd.DistanceKM,
		Calories:        cmd.Calories,
		Date:            cmd.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("log_activity: %w", err)
	}

	profileTotal, teamTotal, err := h.ledger.Append(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("log_activity: ledger append failed: %w", err)
	}

	h.publishEvents(cmd, owner, a, profileTotal, teamTotal)

	result := &LogActivityResult{
		Activity:        a,
		NewProfileTotal: profileTotal,
	}
	if owner.HasTeam() {
		result.NewTeamTotal = &teamTotal
	}
	return result, nil
}

func (h *LogActivityHandler) publishEvents(
	cmd LogActivityCommand,
	owner *profile.Profile,
	a *activity.Activity,
	profileTotal, teamTotal int,
) {
	logged := shared.NewActivityLoggedEvent(
		a.ID, a.ProfileID, string(a.Category), a.DurationMinutes, a.Distance(), int(a.Points),
	)
	if cmd.CorrelationID != "" {
		logged.BaseEvent = logged.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.eventPublisher.Publish(logged)

	teamID := ""
	if owner.HasTeam() {
		teamID = *owner.TeamID
	}

	applied := shared.NewPointsAppliedEvent(owner.ID, teamID, int(a.Points), profileTotal, teamTotal)
	if cmd.CorrelationID != "" {
		applied.BaseEvent = applied.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.eventPublisher.Publish(applied)
}
