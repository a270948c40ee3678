// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE PROFILE COMMAND
// Registers a new user profile. Profiles start teamless with zero points.
// ══════════════════════════════════════════════════════════════════════════════

// CreateProfileCommand contains the data to create a profile.
type CreateProfileCommand struct {
	// Name is the display name.
	Name string

	// Age in years.
	Age int

	// Grade is an optional fitness grade label.
	Grade string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c CreateProfileCommand) Validate() error {
	if c.Name == "" {
		return shared.ErrInvalidProfileName
	}
	if c.Age <= 0 {
		return shared.ErrInvalidProfileAge
	}
	return nil
}

// CreateProfileResult contains the result of creating a profile.
type CreateProfileResult struct {
	Profile *profile.Profile
}

// CreateProfileHandler handles the CreateProfileCommand.
type CreateProfileHandler struct {
	profileRepo    profile.Repository
	eventPublisher shared.EventPublisher
}

// NewCreateProfileHandler creates a new CreateProfileHandler.
func NewCreateProfileHandler(
	profileRepo profile.Repository,
	eventPublisher shared.EventPublisher,
) *CreateProfileHandler {
	return &CreateProfileHandler{
		profileRepo:    profileRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the create profile command.
func (h *CreateProfileHandler) Handle(ctx context.Context, cmd CreateProfileCommand) (*CreateProfileResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("create_profile: validation failed: %w", err)
	}

	p, err := profile.NewProfile(profile.NewProfileParams{
		ID:    uuid.NewString(),
		Name:  cmd.Name,
		Age:   cmd.Age,
		Grade: profile.Grade(cmd.Grade),
	})
	if err != nil {
		return nil, fmt.Errorf("create_profile: %w", err)
	}

	if err := h.profileRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create_profile: failed to persist: %w", err)
	}

	event := shared.NewProfileCreatedEvent(p.ID, p.Name, p.Age)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.eventPublisher.Publish(event)

	return &CreateProfileResult{Profile: p}, nil
}
