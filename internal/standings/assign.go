// Package standings turns final ratings into global and regional ranks.
package standings

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/rankforge/standings/internal/region"
	"github.com/rankforge/standings/internal/roster"
)

// DefaultMinMatches is the participation gate: rosters below it stay
// unranked even when their rating would place them.
const DefaultMinMatches = 10

// Assigner sorts rosters by rating and hands out dense rank sequences.
type Assigner struct {
	minMatches int
}

func NewAssigner(minMatches int) *Assigner {
	if minMatches < 0 {
		minMatches = DefaultMinMatches
	}
	return &Assigner{minMatches: minMatches}
}

// Apply drops rosters that never recorded a distinct win, sorts the rest by
// rating descending (ties by roster id, so reruns agree), and assigns dense
// global and per-region ranks to rosters past the match-count gate. It
// returns the standings order; the input slice is not modified.
func (a *Assigner) Apply(rosters []*roster.Roster) []*roster.Roster {
	standings := make([]*roster.Roster, 0, len(rosters))
	for _, r := range rosters {
		if r.Absolute.DistinctTeamsDefeated > 0 {
			standings = append(standings, r)
		}
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Rating != standings[j].Rating {
			return standings[i].Rating > standings[j].Rating
		}
		return standings[i].ID < standings[j].ID
	})

	globalRank := 0
	for _, r := range standings {
		if r.Absolute.MatchesPlayed >= a.minMatches {
			globalRank++
			r.GlobalRank = globalRank
		}
	}

	for reg := 0; reg < region.Count; reg++ {
		regionalRank := 0
		for _, r := range standings {
			if r.Absolute.MatchesPlayed >= a.minMatches && r.Region[reg] {
				regionalRank++
				r.RegionalRank[reg] = regionalRank
			}
		}
	}

	log.Info().
		Int("standings", len(standings)).
		Int("ranked", globalRank).
		Msg("ranks assigned")

	return standings
}
