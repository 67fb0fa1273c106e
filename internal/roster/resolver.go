package roster

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/rankforge/standings/internal/dataset"
	"github.com/rankforge/standings/internal/model"
)

// DefaultOverlapThreshold is how many of a 5-player lineup must already be
// on a roster for a match to resolve to it.
const DefaultOverlapThreshold = 3

// Resolver merges match team identities into rosters.
type Resolver struct {
	overlapThreshold int
}

// NewResolver builds a resolver. A threshold below 1 falls back to the
// default.
func NewResolver(overlapThreshold int) *Resolver {
	if overlapThreshold < 1 {
		overlapThreshold = DefaultOverlapThreshold
	}
	return &Resolver{overlapThreshold: overlapThreshold}
}

// Resolve walks the matches most-recent-first so the newest lineup becomes
// the canonical identity a past lineup merges into. Along the way it assigns
// unified match ids in traversal order, records event participation and
// accumulates each match onto both rosters. On return ds.Matches is
// re-sorted ascending by start time, the order the rating engine requires.
func (rv *Resolver) Resolve(ds *dataset.Dataset) []*Roster {
	matches := ds.Matches

	// Most recent first; ties keep input order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].StartTime > matches[j].StartTime
	})

	var rosters []*Roster
	for i := range matches {
		m := &matches[i]
		m.UnifiedID = i

		r1 := rv.insert(&rosters, m.Team1Name, m.Team1Players)
		r2 := rv.insert(&rosters, m.Team2Name, m.Team2Players)
		m.Roster1 = r1.ID
		m.Roster2 = r2.ID

		r1.AccumulateMatch(m)
		r2.AccumulateMatch(m)

		// This is the only point where the source team id is known to match
		// the event's prize data for these players.
		if event, ok := ds.Events[m.EventID]; ok {
			r1.RecordEventParticipation(event, m.Team1ID)
			r2.RecordEventParticipation(event, m.Team2ID)
		}
	}

	// Back to chronological order for the rating pass.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].StartTime != matches[j].StartTime {
			return matches[i].StartTime < matches[j].StartTime
		}
		return matches[i].UnifiedID < matches[j].UnifiedID
	})

	log.Info().
		Int("matches", len(matches)).
		Int("rosters", len(rosters)).
		Msg("rosters resolved")

	return rosters
}

// insert finds the roster owning the majority of a lineup, or creates a new
// one with the lineup as its identity-defining player set.
func (rv *Resolver) insert(rosters *[]*Roster, name string, players []model.Player) *Roster {
	for _, r := range *rosters {
		if r.SharesRoster(players, rv.overlapThreshold) {
			return r
		}
	}
	r := New(len(*rosters), name, players)
	*rosters = append(*rosters, r)
	return r
}
