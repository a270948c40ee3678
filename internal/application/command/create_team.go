package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
	"github.com/octofit-hub/octofit-tracker/internal/domain/team"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE TEAM COMMAND
// Creates a named team. Team names are unique; totals start at zero.
// ══════════════════════════════════════════════════════════════════════════════

// CreateTeamCommand contains the data to create a team.
type CreateTeamCommand struct {
	Name        string
	Description string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c CreateTeamCommand) Validate() error {
	if c.Name == "" {
		return shared.ErrInvalidTeamName
	}
	return nil
}

// CreateTeamResult contains the result of creating a team.
type CreateTeamResult struct {
	Team *team.Team
}

// CreateTeamHandler handles the CreateTeamCommand.
type CreateTeamHandler struct {
	teamRepo       team.Repository
	eventPublisher shared.EventPublisher
}

// NewCreateTeamHandler creates a new CreateTeamHandler.
func NewCreateTeamHandler(
	teamRepo team.Repository,
	eventPublisher shared.EventPublisher,
) *CreateTeamHandler {
	return &CreateTeamHandler{
		teamRepo:       teamRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the create team command.
func (h *CreateTeamHandler) Handle(ctx context.Context, cmd CreateTeamCommand) (*CreateTeamResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("create_team: validation failed: %w", err)
	}

	t, err := team.NewTeam(team.NewTeamParams{
		ID:          uuid.NewString(),
		Name:        cmd.Name,
		Description: cmd.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create_team: %w", err)
	}

	if err := h.teamRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create_team: failed to persist: %w", err)
	}

	event := shared.NewTeamCreatedEvent(t.ID, t.Name)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.eventPublisher.Publish(event)

	return &CreateTeamResult{Team: t}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE TEAM COMMAND
// Members of a deleted team become teamless; their personal totals keep any
// points earned while on the team.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteTeamHandler handles team deletion.
type DeleteTeamHandler struct {
	teamRepo team.Repository
}

// NewDeleteTeamHandler creates a new DeleteTeamHandler.
func NewDeleteTeamHandler(teamRepo team.Repository) *DeleteTeamHandler {
	return &DeleteTeamHandler{teamRepo: teamRepo}
}

// Handle deletes a team by ID.
func (h *DeleteTeamHandler) Handle(ctx context.Context, teamID string) error {
	if teamID == "" {
		return shared.ErrInvalidID
	}

	if err := h.teamRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete_team: %w", err)
	}
	return nil
}
