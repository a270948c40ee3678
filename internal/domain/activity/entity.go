// Package activity contains the domain model for logged fitness activities
// and the points engine that scores them. This is the core of the business
// logic - there are no external dependencies here.
package activity

import (
	"fmt"
	"time"

	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATEGORY
// ══════════════════════════════════════════════════════════════════════════════

// Category identifies the type of a fitness activity.
type Category string

const (
	// CategoryRunning - running.
	CategoryRunning Category = "RUN"
	// CategoryWalking - walking.
	CategoryWalking Category = "WALK"
	// CategoryCycling - cycling.
	CategoryCycling Category = "CYCLE"
	// CategorySwimming - swimming.
	CategorySwimming Category = "SWIM"
	// CategoryYoga - yoga.
	CategoryYoga Category = "YOGA"
	// CategoryStrength - strength training.
	CategoryStrength Category = "STRENGTH"
	// CategoryOther - anything else.
	CategoryOther Category = "OTHER"
)

// IsKnown returns true if the category is one of the enumerated values.
// Unknown categories are still accepted when logging; they score at the
// OTHER rate. This leniency is deliberate.
func (c Category) IsKnown() bool {
	switch c {
	case CategoryRunning, CategoryWalking, CategoryCycling, CategorySwimming,
		CategoryYoga, CategoryStrength, CategoryOther:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryRunning:
		return "Running"
	case CategoryWalking:
		return "Walking"
	case CategoryCycling:
		return "Cycling"
	case CategorySwimming:
		return "Swimming"
	case CategoryYoga:
		return "Yoga"
	case CategoryStrength:
		return "Strength Training"
	default:
		return "Other"
	}
}

// Categories returns all enumerated categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryRunning,
		CategoryWalking,
		CategoryCycling,
		CategorySwimming,
		CategoryYoga,
		CategoryStrength,
		CategoryOther,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// POINTS ENGINE
// ══════════════════════════════════════════════════════════════════════════════

// Points-per-minute rates by category. Unrecognized categories fall back to
// the OTHER rate.
const (
	rateRunning  = 2.0
	rateWalking  = 0.5
	rateCycling  = 1.5
	rateSwimming = 2.5
	rateYoga     = 1.0
	rateStrength = 2.0
	rateOther    = 0.75

	// Bonus points per kilometer of recorded distance.
	distanceBonusPerKM = 5.0
)

// Rate returns the points-per-minute rate for the category.
func (c Category) Rate() float64 {
	switch c {
	case CategoryRunning:
		return rateRunning
	case CategoryWalking:
		return rateWalking
	case CategoryCycling:
		return rateCycling
	case CategorySwimming:
		return rateSwimming
	case CategoryYoga:
		return rateYoga
	case CategoryStrength:
		return rateStrength
	default:
		return rateOther
	}
}

// CalculatePoints computes the point value of an activity.
//
// The base term is rate * duration, truncated toward zero. When a positive
// distance is recorded, distance * 5 is truncated independently and added as
// a bonus. The two terms are never rounded together.
func CalculatePoints(category Category, durationMinutes int, distanceKM *float64) profile.Points {
	points := int(category.Rate() * float64(durationMinutes))

	if distanceKM != nil && *distanceKM > 0 {
		points += int(*distanceKM * distanceBonusPerKM)
	}

	return profile.Points(points)
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: ACTIVITY
// ══════════════════════════════════════════════════════════════════════════════

// Activity is a single logged exercise session with its computed point value.
type Activity struct {
	// ID is the internal unique identifier (UUID in string form).
	ID string

	// ProfileID is the owning profile. Immutable after creation.
	ProfileID string

	// Category is the activity type.
	Category Category

	// DurationMinutes is the session length in minutes. Always positive.
	DurationMinutes int

	// DistanceKM is the covered distance; nil when not recorded.
	DistanceKM *float64

	// Calories is the energy burned; nil when not recorded.
	Calories *int

	// Date is when the activity took place. Defaults to creation time.
	Date time.Time

	// Points is computed once at creation and persisted. It is never
	// recomputed, even if other fields are edited later.
	Points profile.Points

	// CreatedAt is when the record was created.
	CreatedAt time.Time

	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time
}

// NewActivityParams contains parameters for logging a new activity.
type NewActivityParams struct {
	ID              string
	ProfileID       string
	Category        Category
	DurationMinutes int
	DistanceKM      *float64
	Calories        *int
	Date            time.Time
}

// NewActivity creates a new activity with validation and computes its points.
func NewActivity(params NewActivityParams) (*Activity, error) {
	if params.ID == "" {
		return nil, shared.NewDomainError("activity", "Create", shared.ErrInvalidID, "activity id is required")
	}

	if params.ProfileID == "" {
		return nil, shared.ErrInvalidOwner
	}

	if params.Category == "" {
		return nil, shared.NewDomainError("activity", "Validate", shared.ErrEmptyValue, "category is required")
	}

	if params.DurationMinutes <= 0 {
		return nil, shared.ErrInvalidDuration
	}

	if params.DistanceKM != nil && *params.DistanceKM < 0 {
		return nil, shared.ErrInvalidDistance
	}

	if params.Calories != nil && *params.Calories < 0 {
		return nil, shared.NewDomainError("activity", "Validate", shared.ErrNegativeValue, "calories cannot be negative")
	}

	now := time.Now().UTC()

	date := params.Date
	if date.IsZero() {
		date = now
	}

	return &Activity{
		ID:              params.ID,
		ProfileID:       params.ProfileID,
		Category:        params.Category,
		DurationMinutes: params.DurationMinutes,
		DistanceKM:      params.DistanceKM,
		Calories:        params.Calories,
		Date:            date,
		Points:          CalculatePoints(params.Category, params.DurationMinutes, params.DistanceKM),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Distance returns the recorded distance, treating "not recorded" as zero.
func (a *Activity) Distance() float64 {
	if a.DistanceKM == nil {
		return 0
	}
	return *a.DistanceKM
}

// String returns a string representation of the activity for logging.
func (a *Activity) String() string {
	return fmt.Sprintf(
		"Activity{ID: %s, Profile: %s, Category: %s, Duration: %dmin, Points: %d}",
		a.ID, a.ProfileID, a.Category, a.DurationMinutes, a.Points,
	)
}

// Clone creates a deep copy of the activity.
func (a *Activity) Clone() *Activity {
	if a == nil {
		return nil
	}

	clone := *a
	if a.DistanceKM != nil {
		d := *a.DistanceKM
		clone.DistanceKM = &d
	}
	if a.Calories != nil {
		c := *a.Calories
		clone.Calories = &c
	}
	return &clone
}

// ══════════════════════════════════════════════════════════════════════════════
// SUMMARY
// ══════════════════════════════════════════════════════════════════════════════

// Summary aggregates a profile's activity history.
type Summary struct {
	TotalActivities      int
	TotalDurationMinutes int
	TotalDistanceKM      float64
	TotalPoints          profile.Points

	// ByCategory maps category to activity count. Categories with zero
	// activities are omitted.
	ByCategory map[Category]int
}

// Summarize computes aggregate statistics over a set of activities.
// Missing distances count as zero, so TotalDistanceKM is always a number,
// never "unset".
func Summarize(activities []*Activity) Summary {
	summary := Summary{
		ByCategory: make(map[Category]int),
	}

	for _, a := range activities {
		summary.TotalActivities++
		summary.TotalDurationMinutes += a.DurationMinutes
		summary.TotalDistanceKM += a.Distance()
		summary.TotalPoints += a.Points
		summary.ByCategory[a.Category]++
	}

	return summary
}
