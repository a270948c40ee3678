package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/octofit-hub/octofit-tracker/config"
	"github.com/octofit-hub/octofit-tracker/internal/application/command"
	"github.com/octofit-hub/octofit-tracker/internal/application/query"
	"github.com/octofit-hub/octofit-tracker/internal/domain/leaderboard"
	"github.com/octofit-hub/octofit-tracker/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":    "OctoFit Tracker API",
		"version": "v1",
		"endpoints": map[string]string{
			"health":      "/health",
			"profiles":    "/api/v1/profiles",
			"teams":       "/api/v1/teams",
			"activities":  "/api/v1/activities",
			"leaderboard": "/api/v1/leaderboard/{kind}",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": "v1",
	})
}

// handleReady handles the readiness probe endpoint (for Kubernetes).
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type createProfileRequest struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Grade string `json:"grade,omitempty"`
}

// handleCreateProfile handles POST /api/v1/profiles
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.CreateProfile.Handle(r.Context(), command.CreateProfileCommand{
		Name:          req.Name,
		Age:           req.Age,
		Grade:         req.Grade,
		CorrelationID: getRequestID(r.Context()),
	})
	if err != nil {
		s.logger.Error("failed to create profile", logger.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, query.ToProfileDTO(result.Profile))
}

// handleListProfiles handles GET /api/v1/profiles
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.deps.ListProfiles.Handle(r.Context(), query.ListProfilesQuery{
		Name: getQueryParam(r, "name", ""),
	})
	if err != nil {
		s.logger.Error("failed to list profiles", logger.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// handleFindProfilesByName handles GET /api/v1/profiles/by_name?name=
func (s *Server) handleFindProfilesByName(w http.ResponseWriter, r *http.Request) {
	if !s.featureEnabled(config.FeatureProfileNameSearch) {
		writeJSONError(w, http.StatusForbidden, "feature_disabled", "Profile name search is disabled")
		return
	}

	name := getQueryParam(r, "name", "")
	if name == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "name query parameter is required")
		return
	}

	profiles, err := s.deps.ListProfiles.Handle(r.Context(), query.ListProfilesQuery{Name: name})
	if err != nil {
		s.logger.Error("failed to find profiles", logger.Err(err), logger.String("name", name))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// handleGetProfile handles GET /api/v1/profiles/{id}
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("id")

	p, err := s.deps.GetProfile.Handle(r.Context(), profileID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

type updateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Age   *int    `json:"age,omitempty"`
	Grade *string `json:"grade,omitempty"`
}

// handleUpdateProfile handles PUT /api/v1/profiles/{id}
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := s.deps.UpdateProfile.Handle(r.Context(), command.UpdateProfileCommand{
		ProfileID: r.PathValue("id"),
		Name:      req.Name,
		Age:       req.Age,
		Grade:     req.Grade,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, query.ToProfileDTO(p))
}

// handleDeleteProfile handles DELETE /api/v1/profiles/{id}
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.DeleteProfile.Handle(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type joinTeamRequest struct {
	TeamID string `json:"team_id"`
}

// handleJoinTeam handles POST /api/v1/profiles/{id}/team
func (s *Server) handleJoinTeam(w http.ResponseWriter, r *http.Request) {
	var req joinTeamRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := s.deps.JoinTeam.Handle(r.Context(), command.JoinTeamCommand{
		ProfileID:     r.PathValue("id"),
		TeamID:        req.TeamID,
		CorrelationID: getRequestID(r.Context()),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, query.ToProfileDTO(p))
}

// handleLeaveTeam handles DELETE /api/v1/profiles/{id}/team
func (s *Server) handleLeaveTeam(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.LeaveTeam.Handle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, query.ToProfileDTO(p))
}

// handleGetActivitySummary handles GET /api/v1/profiles/{id}/summary
func (s *Server) handleGetActivitySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.deps.GetActivitySummary.Handle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// handleGetSuggestions handles GET /api/v1/profiles/{id}/suggestions
func (s *Server) handleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("id")

	if s.deps.Features != nil && !s.deps.Features.IsEnabledFor(config.FeatureActivitySuggestions, profileID) {
		writeJSONError(w, http.StatusForbidden, "feature_disabled", "Suggestions are disabled")
		return
	}

	suggestions, err := s.deps.GetSuggestions.Handle(r.Context(), profileID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}

// ══════════════════════════════════════════════════════════════════════════════
// TEAM HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type createTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// handleCreateTeam handles POST /api/v1/teams
func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.CreateTeam.Handle(r.Context(), command.CreateTeamCommand{
		Name:          req.Name,
		Description:   req.Description,
		CorrelationID: getRequestID(r.Context()),
	})
	if err != nil {
		s.logger.Error("failed to create team", logger.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, query.ToTeamDTO(result.Team))
}

// handleListTeams handles GET /api/v1/teams
func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.deps.ListTeams.Handle(r.Context())
	if err != nil {
		s.logger.Error("failed to list teams", logger.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, teams)
}

// handleGetTeamSummary handles GET /api/v1/teams/summary
func (s *Server) handleGetTeamSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.deps.GetTeamSummary.Handle(r.Context())
	if err != nil {
		s.logger.Error("failed to get team summary", logger.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// handleGetTeam handles GET /api/v1/teams/{id}
func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	t, err := s.deps.GetTeam.Handle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// handleDeleteTeam handles DELETE /api/v1/teams/{id}
func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.DeleteTeam.Handle(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ══════════════════════════════════════════════════════════════════════════════
// ACTIVITY HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type logActivityRequest struct {
	ProfileID       string   `json:"profile_id"`
	Category        string   `json:"category"`
	DurationMinutes int      `json:"duration_minutes"`
	DistanceKM      *float64 `json:"distance_km,omitempty"`
	Calories        *int     `json:"calories,omitempty"`
	Date            string   `json:"date,omitempty"`
}

type logActivityResponse struct {
	Activity        query.ActivityDTO `json:"activity"`
	NewProfileTotal int               `json:"new_profile_total"`

	// Pointer so a team total of zero still serializes; only teamless
	// profiles omit the field.
	NewTeamTotal *int `json:"new_team_total,omitempty"`
}

// handleLogActivity handles POST /api/v1/activities
func (s *Server) handleLogActivity(w http.ResponseWriter, r *http.Request) {
	var req logActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", "date must be RFC 3339")
			return
		}
		date = parsed
	}

	result, err := s.deps.LogActivity.Handle(r.Context(), command.LogActivityCommand{
		ProfileID:       req.ProfileID,
		Category:        req.Category,
		DurationMinutes: req.DurationMinutes,
		DistanceKM:      req.DistanceKM,
		Calories:        req.Calories,
		Date:            date,
		CorrelationID:   getRequestID(r.Context()),
	})
	if err != nil {
		s.logger.Error("failed to log activity", logger.Err(err), logger.ProfileID(req.ProfileID))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, logActivityResponse{
		Activity:        query.ToActivityDTO(result.Activity),
		NewProfileTotal: result.NewProfileTotal,
		NewTeamTotal:    result.NewTeamTotal,
	})
}

// handleListActivities handles GET /api/v1/activities
func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := s.deps.ListActivities.Handle(r.Context(), query.ListActivitiesQuery{
		ProfileID: getQueryParam(r, "profile_id", ""),
	})
	if err != nil {
		s.logger.Error("failed to list activities", logger.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, activities)
}

// handleDeleteActivity handles DELETE /api/v1/activities/{id}
// Earned points stay on the totals; only the record is removed.
func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.DeleteActivity.Handle(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// handleGetLeaderboard handles GET /api/v1/leaderboard/{kind}
func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	kind, err := leaderboard.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "kind must be profiles or teams")
		return
	}

	result, err := s.deps.GetLeaderboard.Handle(r.Context(), query.GetLeaderboardQuery{
		Kind:     kind,
		RawLimit: getQueryParam(r, "limit", ""),
	})
	if err != nil {
		s.logger.Error("failed to get leaderboard", logger.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// ADMIN HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRebuildLeaderboard handles POST /api/v1/admin/jobs/rebuild-leaderboard
func (s *Server) handleRebuildLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.deps.RunRebuild == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Scheduler is not configured")
		return
	}

	if err := s.deps.RunRebuild(r.Context()); err != nil {
		s.logger.Error("manual leaderboard rebuild failed", logger.Err(err))
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Rebuild failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "rebuilt"})
}

// handleListFeatures handles GET /api/v1/admin/features
func (s *Server) handleListFeatures(w http.ResponseWriter, r *http.Request) {
	if s.deps.Features == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{})
		return
	}

	writeJSON(w, http.StatusOK, s.deps.Features.GetAllFeatures())
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// decodeBody decodes a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload")
		return false
	}
	return true
}

// featureEnabled reports whether a feature is enabled globally.
// A missing flag registry means everything is on.
func (s *Server) featureEnabled(name string) bool {
	if s.deps.Features == nil {
		return true
	}
	return s.deps.Features.IsEnabled(name)
}
