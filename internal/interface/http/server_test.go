package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := DefaultConfig()
	cfg.RateLimitPerMinute = 0
	cfg.EnableMetrics = false

	return NewServer(cfg, Dependencies{})
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestServer_Root(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OctoFit Tracker API")
}

func TestServer_LeaderboardRejectsUnknownKind(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard/bogus", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_AdminRoutesAbsentWithoutKeyHash(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/jobs/rebuild-leaderboard", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteDomainError_Mapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", shared.ErrProfileNotFound, http.StatusNotFound},
		{"already exists", shared.ErrTeamAlreadyExists, http.StatusConflict},
		{"validation", shared.ErrInvalidDuration, http.StatusBadRequest},
		{"wrapped command validation", fmt.Errorf("log_activity: validation failed: %w", shared.ErrInvalidOwner), http.StatusBadRequest},
		{"unknown", assertionError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

type assertionError string

func (e assertionError) Error() string { return string(e) }

func TestLogActivityResponse_TeamTotalSerialization(t *testing.T) {
	t.Run("zero team total stays in the body", func(t *testing.T) {
		zero := 0
		body, err := json.Marshal(logActivityResponse{NewProfileTotal: 10, NewTeamTotal: &zero})
		require.NoError(t, err)
		assert.Contains(t, string(body), `"new_team_total":0`)
	})

	t.Run("teamless profile omits the field", func(t *testing.T) {
		body, err := json.Marshal(logActivityResponse{NewProfileTotal: 10})
		require.NoError(t, err)
		assert.NotContains(t, string(body), "new_team_total")
	})
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	// Other clients are unaffected
	assert.True(t, rl.Allow("5.6.7.8"))
}
