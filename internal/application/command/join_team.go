package command

import (
	"context"
	"fmt"

	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
	"github.com/octofit-hub/octofit-tracker/internal/domain/team"
)

// ══════════════════════════════════════════════════════════════════════════════
// JOIN TEAM COMMAND
// Assigns a profile to a team. Points earned before joining stay where they
// were credited; team totals are never replayed on membership change.
// ══════════════════════════════════════════════════════════════════════════════

// JoinTeamCommand contains the data to assign a profile to a team.
type JoinTeamCommand struct {
	ProfileID string
	TeamID    string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c JoinTeamCommand) Validate() error {
	if c.ProfileID == "" {
		return shared.NewDomainError("profile", "JoinTeam", shared.ErrInvalidID, "profile id is required")
	}
	if c.TeamID == "" {
		return shared.NewDomainError("team", "JoinTeam", shared.ErrInvalidID, "team id is required")
	}
	return nil
}

// JoinTeamHandler handles the JoinTeamCommand.
type JoinTeamHandler struct {
	profileRepo    profile.Repository
	teamRepo       team.Repository
	eventPublisher shared.EventPublisher
}

// NewJoinTeamHandler creates a new JoinTeamHandler.
func NewJoinTeamHandler(
	profileRepo profile.Repository,
	teamRepo team.Repository,
	eventPublisher shared.EventPublisher,
) *JoinTeamHandler {
	return &JoinTeamHandler{
		profileRepo:    profileRepo,
		teamRepo:       teamRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the join team command.
func (h *JoinTeamHandler) Handle(ctx context.Context, cmd JoinTeamCommand) (*profile.Profile, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("join_team: validation failed: %w", err)
	}

	p, err := h.profileRepo.GetByID(ctx, cmd.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("join_team: %w", err)
	}

	if _, err := h.teamRepo.GetByID(ctx, cmd.TeamID); err != nil {
		return nil, fmt.Errorf("join_team: %w", err)
	}

	if err := p.JoinTeam(cmd.TeamID); err != nil {
		return nil, fmt.Errorf("join_team: %w", err)
	}

	if err := h.profileRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("join_team: failed to persist: %w", err)
	}

	event := shared.NewProfileJoinedTeamEvent(p.ID, cmd.TeamID)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.eventPublisher.Publish(event)

	return p, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LEAVE TEAM COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// LeaveTeamHandler removes a profile from its team.
type LeaveTeamHandler struct {
	profileRepo profile.Repository
}

// NewLeaveTeamHandler creates a new LeaveTeamHandler.
func NewLeaveTeamHandler(profileRepo profile.Repository) *LeaveTeamHandler {
	return &LeaveTeamHandler{profileRepo: profileRepo}
}

// Handle removes the profile from whatever team it belongs to.
func (h *LeaveTeamHandler) Handle(ctx context.Context, profileID string) (*profile.Profile, error) {
	if profileID == "" {
		return nil, shared.ErrInvalidID
	}

	p, err := h.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("leave_team: %w", err)
	}

	p.LeaveTeam()

	if err := h.profileRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("leave_team: failed to persist: %w", err)
	}

	return p, nil
}
