package model

import (
	"regexp"
	"strconv"
	"strings"
)

// Side identifiers used by Match.WinningTeam.
const (
	SideTeam1 = 1
	SideTeam2 = 2
)

// Player identifies one member of a match lineup.
type Player struct {
	PlayerID   int64  `json:"playerId"`
	Nick       string `json:"nick"`
	Country    string `json:"country"`
	CountryISO string `json:"countryIso"`
}

// MapScore holds the per-map result of a match. It is carried through for
// reporting and never consulted by the rating math.
type MapScore struct {
	MapName    string `json:"mapName"`
	Team1Score int    `json:"team1Score"`
	Team2Score int    `json:"team2Score"`
}

// Match is one historical match record. The json-tagged fields come straight
// from the dataset; the remaining fields are derived by the pipeline stages.
type Match struct {
	StartTime    int64      `json:"matchStartTime"`
	Team1ID      int64      `json:"team1Id"`
	Team2ID      int64      `json:"team2Id"`
	Team1Name    string     `json:"team1Name"`
	Team2Name    string     `json:"team2Name"`
	Team1Players []Player   `json:"team1Players"`
	Team2Players []Player   `json:"team2Players"`
	EventID      int64      `json:"eventId"`
	Maps         []MapScore `json:"maps"`
	WinningTeam  int        `json:"winningTeam"`
	Ranked       *bool      `json:"ranked"`

	// Derived during ingest.
	InformationContent float64 `json:"-"`

	// Derived during roster resolution. UnifiedID is the sequence index
	// assigned while scanning matches most-recent-first; Roster1/Roster2 are
	// resolved roster ids. All three default to -1 until assigned.
	UnifiedID int `json:"-"`
	Roster1   int `json:"-"`
	Roster2   int `json:"-"`

	// Derived by the rating engine: the signed rating change each side took
	// away from this match.
	WinnerDelta float64 `json:"-"`
	LoserDelta  float64 `json:"-"`
}

// Winner reports the roster id of the winning side, Loser the other one.
// Valid only after roster resolution.
func (m *Match) Winner() int {
	if m.WinningTeam == SideTeam1 {
		return m.Roster1
	}
	return m.Roster2
}

func (m *Match) Loser() int {
	if m.WinningTeam == SideTeam1 {
		return m.Roster2
	}
	return m.Roster1
}

// PrizeEntry is one team's share of an event's prize distribution.
type PrizeEntry struct {
	Placement int     `json:"placement"`
	TeamID    int64   `json:"teamId"`
	Prize     float64 `json:"prize"`
	Shared    bool    `json:"shared"`
}

// RawEvent is the wire form of an event record. PrizePool arrives as a
// currency string and is parsed into Event.PrizePool.
type RawEvent struct {
	EventID           int64        `json:"eventId"`
	EventName         string       `json:"eventName"`
	PrizePool         string       `json:"prizePool"`
	LAN               bool         `json:"lan"`
	PrizeDistribution []PrizeEntry `json:"prizeDistribution"`
}

// Event is the processed event record. LastMatchTime is the max start time
// over the matches accumulated into the event; -1 means no matches yet.
type Event struct {
	ID            int64
	Name          string
	PrizePool     float64
	LAN           bool
	PrizeByTeam   map[int64]PrizeEntry
	LastMatchTime int64
}

// NewEvent builds an Event from its wire form.
func NewEvent(raw RawEvent) *Event {
	ev := &Event{
		ID:            raw.EventID,
		Name:          raw.EventName,
		PrizePool:     ParsePrizePool(raw.PrizePool),
		LAN:           raw.LAN,
		PrizeByTeam:   make(map[int64]PrizeEntry, len(raw.PrizeDistribution)),
		LastMatchTime: -1,
	}
	for _, entry := range raw.PrizeDistribution {
		ev.PrizeByTeam[entry.TeamID] = entry
	}
	return ev
}

// AccumulateMatch folds a match into the event's activity window.
func (e *Event) AccumulateMatch(m *Match) {
	if m.StartTime > e.LastMatchTime {
		e.LastMatchTime = m.StartTime
	}
}

// Winnings reports the prize recorded for a team id at this event, zero when
// the team has no prize entry.
func (e *Event) Winnings(teamID int64) float64 {
	return e.PrizeByTeam[teamID].Prize
}

// RawDataset is the single input structure: all events and matches.
type RawDataset struct {
	Events  []RawEvent `json:"events"`
	Matches []Match    `json:"matches"`
}

var prizeDigits = regexp.MustCompile(`^[0-9]+$`)

// ParsePrizePool extracts a numeric prize pool from a currency string like
// "$1,000,000". Anything that does not reduce to plain digits (TBA, ranges,
// non-dollar currencies) parses as 0.
func ParsePrizePool(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Replace(s, "$", "", 1)
	if !prizeDigits.MatchString(s) {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}
