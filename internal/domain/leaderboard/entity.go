// Package leaderboard contains the ranking model for profiles and teams.
// A leaderboard is a point-in-time ordering by total points with a
// deterministic tie-break, so two reads over the same data always produce
// the same ranks.
package leaderboard

import (
	"sort"
	"strconv"

	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Kind selects which entities a leaderboard ranks.
type Kind string

const (
	// KindProfiles ranks individual profiles.
	KindProfiles Kind = "profiles"
	// KindTeams ranks teams.
	KindTeams Kind = "teams"
)

// IsValid checks that the kind is one of the enumerated values.
func (k Kind) IsValid() bool {
	return k == KindProfiles || k == KindTeams
}

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", shared.ErrUnknownLeaderboardKind
	}
	return k, nil
}

// Rank is a 1-based position in a leaderboard.
type Rank int

// IsValid checks that the rank is positive.
func (r Rank) IsValid() bool {
	return r > 0
}

// DefaultLimit is used when the caller supplies no usable limit.
const DefaultLimit = 10

// ParseLimit interprets a raw limit parameter. Unparseable or non-positive
// values fall back to DefaultLimit rather than erroring.
func ParseLimit(raw string) int {
	if raw == "" {
		return DefaultLimit
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	return n
}

// ══════════════════════════════════════════════════════════════════════════════
// RANKING
// ══════════════════════════════════════════════════════════════════════════════

// Entry is one ranked row.
type Entry struct {
	Rank        Rank
	ID          string
	Name        string
	TotalPoints profile.Points
}

// Candidate is an unranked row fed into BuildRanking.
type Candidate struct {
	ID          string
	Name        string
	TotalPoints profile.Points
}

// Ranking is an ordered leaderboard page.
type Ranking struct {
	Kind    Kind
	Entries []Entry
}

// BuildRanking orders candidates by total points descending, breaking ties by
// ascending ID. Ranks are 1-based and distinct: tied candidates still get
// consecutive ranks in tie-break order. The result is truncated to limit
// entries; non-positive limits fall back to DefaultLimit.
func BuildRanking(kind Kind, candidates []Candidate, limit int) Ranking {
	if limit <= 0 {
		limit = DefaultLimit
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		return sorted[i].ID < sorted[j].ID
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]Entry, len(sorted))
	for i, c := range sorted {
		entries[i] = Entry{
			Rank:        Rank(i + 1),
			ID:          c.ID,
			Name:        c.Name,
			TotalPoints: c.TotalPoints,
		}
	}

	return Ranking{Kind: kind, Entries: entries}
}

// Top returns the first entry, or nil for an empty ranking.
func (r Ranking) Top() *Entry {
	if len(r.Entries) == 0 {
		return nil
	}
	return &r.Entries[0]
}

// Len returns the number of ranked entries.
func (r Ranking) Len() int {
	return len(r.Entries)
}
