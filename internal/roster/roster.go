// Package roster resolves the raw team identities of historical matches into
// stable rosters. Team ids in the source data follow organizations; rosters
// follow players, merging two lineups into one identity when they share a
// majority of players.
package roster

import (
	"github.com/rankforge/standings/internal/glicko"
	"github.com/rankforge/standings/internal/model"
	"github.com/rankforge/standings/internal/region"
)

// Unranked marks a roster that did not qualify for a rank.
const Unranked = -1

// TeamMatch is the (roster, match) join: which side the roster played, the
// outcome, and the opponent. It snapshots the per-match fields the seeding
// phases need, keyed back to the match by its unified id.
type TeamMatch struct {
	UnifiedID int
	StartTime int64
	EventID   int64
	Side      int
	Won       bool
	Opponent  int
}

// TeamEvent records a roster's participation in one event under a specific
// team id, with the winnings that team id earned there.
type TeamEvent struct {
	EventID  int64
	TeamID   int64
	Winnings float64
}

// AbsoluteStats are the per-roster seeding inputs computed purely from the
// roster's own history.
type AbsoluteStats struct {
	MatchesPlayed int
	LastPlayed    int64

	// Decay-weighted count of distinct opponents defeated; each opponent
	// contributes the weight of the most recent win over them.
	DistinctTeamsDefeated float64

	// Top-bucket average of decay-weighted LAN wins and top-bucket sum of
	// decay-weighted event winnings.
	ScaledLanWins  float64
	ScaledWinnings float64
}

// RelativeStats are the absolute stats normalized against the Nth-highest
// roster, each clamped to at most 1.
type RelativeStats struct {
	BountyOffered    float64
	OwnNetwork       float64
	LanParticipation float64
}

// OpponentStats credit a roster for beating prestigious opponents: the
// top-bucket averages of opponents' relative stats, weighted by recency and
// event stakes.
type OpponentStats struct {
	OpponentBounties float64
	OpponentNetwork  float64
}

// Modifiers are the five final seed factors after curve shaping.
type Modifiers struct {
	BountyCollected float64
	BountyOffered   float64
	OpponentNetwork float64
	OwnNetwork      float64
	LanFactor       float64
}

// Roster is the unit being ranked: a stable identity over a set of players,
// with its full match and event history and the rating state the later
// stages fill in. Created once, mutated in place by every stage.
type Roster struct {
	ID      int
	Name    string
	Players []model.Player

	Matches []TeamMatch
	Wins    []TeamMatch
	Events  map[int64]TeamEvent

	// Region membership by plurality of player countries; ties count for
	// every tied region.
	Region [region.Count]bool

	Absolute AbsoluteStats
	Relative RelativeStats
	Opponent OpponentStats
	Mods     Modifiers

	SeedValue  float64
	SeedRating float64
	Rating     float64
	Glicko     *glicko.Team

	GlobalRank   int
	RegionalRank [region.Count]int

	playerIDs map[int64]struct{}
}

// New creates a roster whose identity is defined by the given players.
func New(id int, name string, players []model.Player) *Roster {
	r := &Roster{
		ID:         id,
		Name:       name,
		Players:    players,
		Events:     make(map[int64]TeamEvent),
		GlobalRank: Unranked,
		playerIDs:  make(map[int64]struct{}, len(players)),
	}
	for i := range r.RegionalRank {
		r.RegionalRank[i] = Unranked
	}
	for _, p := range players {
		r.playerIDs[p.PlayerID] = struct{}{}
	}
	r.Region = pluralityRegion(players)
	return r
}

// SharesRoster reports whether a lineup overlaps this roster's identity by
// enough players to be considered the same team.
func (r *Roster) SharesRoster(players []model.Player, threshold int) bool {
	overlap := 0
	for _, p := range players {
		if _, ok := r.playerIDs[p.PlayerID]; ok {
			overlap++
		}
	}
	return overlap >= threshold
}

// RecordEventParticipation links this roster to an event under a team id.
// Only the first team id seen per event is kept: the team-id-to-roster
// mapping is only trustworthy within a single event, and we do not want to
// credit a rebuilt roster with an old organization's winnings.
func (r *Roster) RecordEventParticipation(event *model.Event, teamID int64) {
	if event == nil {
		return
	}
	if _, ok := r.Events[event.ID]; ok {
		return
	}
	r.Events[event.ID] = TeamEvent{
		EventID:  event.ID,
		TeamID:   teamID,
		Winnings: event.Winnings(teamID),
	}
}

// AccumulateMatch appends the roster's view of a match to its history.
func (r *Roster) AccumulateMatch(m *model.Match) {
	side := model.SideTeam1
	opponent := m.Roster2
	if m.Roster2 == r.ID && m.Roster1 != r.ID {
		side = model.SideTeam2
		opponent = m.Roster1
	}
	tm := TeamMatch{
		UnifiedID: m.UnifiedID,
		StartTime: m.StartTime,
		EventID:   m.EventID,
		Side:      side,
		Won:       m.WinningTeam == side,
		Opponent:  opponent,
	}
	r.Matches = append(r.Matches, tm)
	if tm.Won {
		r.Wins = append(r.Wins, tm)
	}
}

// pluralityRegion buckets each player's country and flags every region tied
// for the maximum player count.
func pluralityRegion(players []model.Player) [region.Count]bool {
	var counts [region.Count]int
	for _, p := range players {
		counts[region.Of(p.CountryISO)]++
	}
	best := 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	var member [region.Count]bool
	for i, c := range counts {
		member[i] = c == best
	}
	return member
}
