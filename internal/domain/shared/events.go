// Package shared contains common domain types, errors, and events
// that are used across all domain packages.
package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types - these drive the event-driven architecture.
// Each event represents something significant that happened in the domain.
const (
	// Profile events
	EventProfileCreated    EventType = "profile.created"
	EventProfileUpdated    EventType = "profile.updated"
	EventProfileJoinedTeam EventType = "profile.joined_team"

	// Team events
	EventTeamCreated EventType = "team.created"

	// Activity events
	EventActivityLogged EventType = "activity.logged"

	// Points events
	EventPointsApplied EventType = "points.applied"

	// Leaderboard events
	EventLeaderboardRebuilt EventType = "leaderboard.rebuilt"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// EventHandler processes a single domain event.
type EventHandler func(event Event) error

// EventPublisher publishes domain events to interested subscribers.
type EventPublisher interface {
	Publish(event Event) error
}

// EventBus is a publisher that also manages subscriptions.
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler for a specific event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error

	// Close shuts the bus down, waiting for in-flight handlers.
	Close() error
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateId   string    `json:"aggregate_id"`
	Version       int       `json:"version"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// WithCorrelationID sets the correlation ID for tracing.
func (e BaseEvent) WithCorrelationID(id string) BaseEvent {
	e.CorrelationID = id
	return e
}

// ═══════════════════════════════════════════════════════════════════════════
// Profile Events
// ═══════════════════════════════════════════════════════════════════════════

// ProfileCreatedEvent is emitted when a new profile is created.
type ProfileCreatedEvent struct {
	BaseEvent
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Payload implements Event interface.
func (e ProfileCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"name": e.Name,
		"age":  e.Age,
	}
}

// NewProfileCreatedEvent creates a new ProfileCreatedEvent.
func NewProfileCreatedEvent(profileID, name string, age int) ProfileCreatedEvent {
	return ProfileCreatedEvent{
		BaseEvent: NewBaseEvent(EventProfileCreated, profileID),
		Name:      name,
		Age:       age,
	}
}

// ProfileJoinedTeamEvent is emitted when a profile is assigned to a team.
type ProfileJoinedTeamEvent struct {
	BaseEvent
	ProfileID string `json:"profile_id"`
	TeamID    string `json:"team_id"`
}

// Payload implements Event interface.
func (e ProfileJoinedTeamEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"profile_id": e.ProfileID,
		"team_id":    e.TeamID,
	}
}

// NewProfileJoinedTeamEvent creates a new ProfileJoinedTeamEvent.
func NewProfileJoinedTeamEvent(profileID, teamID string) ProfileJoinedTeamEvent {
	return ProfileJoinedTeamEvent{
		BaseEvent: NewBaseEvent(EventProfileJoinedTeam, profileID),
		ProfileID: profileID,
		TeamID:    teamID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Team Events
// ═══════════════════════════════════════════════════════════════════════════

// TeamCreatedEvent is emitted when a new team is created.
type TeamCreatedEvent struct {
	BaseEvent
	Name string `json:"name"`
}

// Payload implements Event interface.
func (e TeamCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"name": e.Name,
	}
}

// NewTeamCreatedEvent creates a new TeamCreatedEvent.
func NewTeamCreatedEvent(teamID, name string) TeamCreatedEvent {
	return TeamCreatedEvent{
		BaseEvent: NewBaseEvent(EventTeamCreated, teamID),
		Name:      name,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Activity Events
// ═══════════════════════════════════════════════════════════════════════════

// ActivityLoggedEvent is emitted when an activity is recorded.
type ActivityLoggedEvent struct {
	BaseEvent
	ActivityID      string  `json:"activity_id"`
	ProfileID       string  `json:"profile_id"`
	Category        string  `json:"category"`
	DurationMinutes int     `json:"duration_minutes"`
	DistanceKM      float64 `json:"distance_km,omitempty"`
	Points          int     `json:"points"`
}

// Payload implements Event interface.
func (e ActivityLoggedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"activity_id":      e.ActivityID,
		"profile_id":       e.ProfileID,
		"category":         e.Category,
		"duration_minutes": e.DurationMinutes,
		"distance_km":      e.DistanceKM,
		"points":           e.Points,
	}
}

// NewActivityLoggedEvent creates a new ActivityLoggedEvent.
func NewActivityLoggedEvent(activityID, profileID, category string, durationMinutes int, distanceKM float64, points int) ActivityLoggedEvent {
	return ActivityLoggedEvent{
		BaseEvent:       NewBaseEvent(EventActivityLogged, activityID),
		ActivityID:      activityID,
		ProfileID:       profileID,
		Category:        category,
		DurationMinutes: durationMinutes,
		DistanceKM:      distanceKM,
		Points:          points,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Points Events
// ═══════════════════════════════════════════════════════════════════════════

// PointsAppliedEvent is emitted after the ledger applies an activity's points
// to the owning profile (and team, when the profile has one).
type PointsAppliedEvent struct {
	BaseEvent
	ProfileID       string `json:"profile_id"`
	TeamID          string `json:"team_id,omitempty"`
	Points          int    `json:"points"`
	NewProfileTotal int    `json:"new_profile_total"`
	NewTeamTotal    int    `json:"new_team_total"`
}

// Payload implements Event interface.
func (e PointsAppliedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"profile_id":        e.ProfileID,
		"team_id":           e.TeamID,
		"points":            e.Points,
		"new_profile_total": e.NewProfileTotal,
		"new_team_total":    e.NewTeamTotal,
	}
}

// NewPointsAppliedEvent creates a new PointsAppliedEvent.
func NewPointsAppliedEvent(profileID, teamID string, points, newProfileTotal, newTeamTotal int) PointsAppliedEvent {
	return PointsAppliedEvent{
		BaseEvent:       NewBaseEvent(EventPointsApplied, profileID),
		ProfileID:       profileID,
		TeamID:          teamID,
		Points:          points,
		NewProfileTotal: newProfileTotal,
		NewTeamTotal:    newTeamTotal,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Leaderboard Events
// ═══════════════════════════════════════════════════════════════════════════

// LeaderboardRebuiltEvent is emitted when the cached leaderboard is rebuilt.
type LeaderboardRebuiltEvent struct {
	BaseEvent
	Kind       string `json:"kind"`
	EntryCount int    `json:"entry_count"`
}

// Payload implements Event interface.
func (e LeaderboardRebuiltEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"kind":        e.Kind,
		"entry_count": e.EntryCount,
	}
}

// NewLeaderboardRebuiltEvent creates a new LeaderboardRebuiltEvent.
func NewLeaderboardRebuiltEvent(kind string, entryCount int) LeaderboardRebuiltEvent {
	return LeaderboardRebuiltEvent{
		BaseEvent:  NewBaseEvent(EventLeaderboardRebuilt, kind),
		Kind:       kind,
		EntryCount: entryCount,
	}
}
