package command

import (
	"context"
	"fmt"

	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE PROFILE COMMAND
// Edits a profile's descriptive fields. Total points are never edited here -
// they move only through the activity ledger.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateProfileCommand contains the editable profile fields.
// Nil pointers mean "leave unchanged".
type UpdateProfileCommand struct {
	ProfileID string

	Name  *string
	Age   *int
	Grade *string
}

// Validate validates the command.
func (c UpdateProfileCommand) Validate() error {
	if c.ProfileID == "" {
		return shared.NewDomainError("profile", "Update", shared.ErrInvalidID, "profile id is required")
	}
	if c.Name == nil && c.Age == nil && c.Grade == nil {
		return shared.NewDomainError("profile", "Update", shared.ErrInvalidInput, "nothing to update")
	}
	if c.Name != nil && *c.Name == "" {
		return shared.ErrInvalidProfileName
	}
	if c.Age != nil && *c.Age <= 0 {
		return shared.ErrInvalidProfileAge
	}
	return nil
}

// UpdateProfileHandler handles the UpdateProfileCommand.
type UpdateProfileHandler struct {
	profileRepo profile.Repository
}

// NewUpdateProfileHandler creates a new UpdateProfileHandler.
func NewUpdateProfileHandler(profileRepo profile.Repository) *UpdateProfileHandler {
	return &UpdateProfileHandler{profileRepo: profileRepo}
}

// Handle executes the update profile command.
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*profile.Profile, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("update_profile: validation failed: %w", err)
	}

	p, err := h.profileRepo.GetByID(ctx, cmd.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("update_profile: %w", err)
	}

	if cmd.Name != nil {
		p.Name = *cmd.Name
	}
	if cmd.Age != nil {
		p.Age = *cmd.Age
	}
	if cmd.Grade != nil {
		if err := p.SetGrade(profile.Grade(*cmd.Grade)); err != nil {
			return nil, fmt.Errorf("update_profile: %w", err)
		}
	}

	if err := h.profileRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update_profile: failed to persist: %w", err)
	}

	return p, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE PROFILE COMMAND
// Removing a profile does not reverse points its activities contributed to a
// team; the ledger is forward-only.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteProfileHandler handles profile deletion.
type DeleteProfileHandler struct {
	profileRepo profile.Repository
}

// NewDeleteProfileHandler creates a new DeleteProfileHandler.
func NewDeleteProfileHandler(profileRepo profile.Repository) *DeleteProfileHandler {
	return &DeleteProfileHandler{profileRepo: profileRepo}
}

// Handle deletes a profile by ID.
func (h *DeleteProfileHandler) Handle(ctx context.Context, profileID string) error {
	if profileID == "" {
		return shared.ErrInvalidID
	}

	if err := h.profileRepo.Delete(ctx, profileID); err != nil {
		return fmt.Errorf("delete_profile: %w", err)
	}
	return nil
}
