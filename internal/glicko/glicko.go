// Package glicko implements a Glicko rating engine over (rating, rating
// deviation) pairs. The standings pipeline runs it with a fixed deviation,
// which reduces the update to an Elo-like step while keeping the g()
// de-weighting of uncertain opponents.
package glicko

import "math"

// Q converts rating-scale differences to the exponential scale: a 400 point
// gap corresponds to a 10x expected-odds ratio.
var Q = math.Log(10) / 400

// C grows deviation over idle time; with the default bounds a team decays
// back to the maximum 350 RD after 100 time units.
const C = 34.6

var oneOverPiSquared = 1 / (math.Pi * math.Pi)

// Team is the mutable rating state for one roster: the committed rating and
// deviation plus the pending accumulators collected during a match (or batch
// of matches) before ApplyPending commits them.
type Team struct {
	rating  float64
	rd      float64
	adjRank float64
	adjRDSq float64
}

// NewTeam returns a team at the given rating and deviation.
func NewTeam(rating, rd float64) *Team {
	return &Team{rating: rating, rd: rd}
}

func (t *Team) Rating() float64 {
	return t.rating
}

func (t *Team) RD() float64 {
	return t.rd
}

// ResetPending discards any uncommitted match data.
func (t *Team) ResetPending() {
	t.adjRank = 0
	t.adjRDSq = 0
}

// AddPending accumulates one match result against an opponent. score is 1
// for a win and 0 for a loss; info scales how much the match is allowed to
// move the rating (and, squared, the deviation). Nothing is committed until
// ApplyPending runs.
func (t *Team) AddPending(opponent *Team, score, info float64) {
	r := t.rating
	ro := opponent.rating
	rdo := opponent.rd

	g := 1 / math.Sqrt(1+3*Q*Q*rdo*rdo*oneOverPiSquared)
	ev := 1 / (1 + math.Pow(10, g*(r-ro)/-400))

	t.adjRDSq += g * g * ev * (1 - ev) * info * info
	t.adjRank += g * (score - ev) * info
}

// ApplyPending commits the accumulated adjustments and clears them.
func (t *Team) ApplyPending(e *Engine) {
	rd := t.rd
	adjustedRDSq := 1 / (1/(rd*rd) + Q*Q*t.adjRDSq)

	t.rating += Q * adjustedRDSq * t.adjRank
	t.rd = e.clampRD(math.Sqrt(adjustedRDSq))

	t.ResetPending()
}

// DecayRD widens a team's deviation for t time units of inactivity. A no-op
// when the engine runs with a fixed deviation.
func (t *Team) DecayRD(e *Engine, units float64) {
	rd := t.rd
	t.rd = e.clampRD(math.Sqrt(rd*rd + C*C*units))
}

// Engine holds the rating-system constants: starting values and the
// deviation clamp range.
type Engine struct {
	startingRating float64
	startingRD     float64
	maxRD          float64
	minRD          float64
}

// NewEngine returns an engine with the classic Glicko defaults: 1500
// starting rating, deviation between 35 and 350.
func NewEngine() *Engine {
	return &Engine{
		startingRating: 1500,
		startingRD:     350,
		maxRD:          350,
		minRD:          35,
	}
}

// SetFixedRD pins the deviation to a single value. The clamp then keeps RD
// constant through every update, turning the engine into a fixed-uncertainty
// Elo variant.
func (e *Engine) SetFixedRD(rd float64) *Engine {
	e.startingRD = rd
	e.maxRD = rd
	e.minRD = rd
	return e
}

func (e *Engine) StartingRating() float64 {
	return e.startingRating
}

func (e *Engine) StartingRD() float64 {
	return e.startingRD
}

func (e *Engine) clampRD(rd float64) float64 {
	return math.Max(e.minRD, math.Min(e.maxRD, rd))
}

// NewTeam creates a team at the given rating and the engine's starting
// deviation.
func (e *Engine) NewTeam(rating float64) *Team {
	return NewTeam(rating, e.startingRD)
}

// IncrementalMatch queues one match onto both sides' pending accumulators.
// Call Finalize once every match of the batch has been submitted.
func (e *Engine) IncrementalMatch(winner, loser *Team, info float64) {
	winner.AddPending(loser, 1, info)
	loser.AddPending(winner, 0, info)
}

// Finalize commits the pending adjustments of every given team.
func (e *Engine) Finalize(teams ...*Team) {
	for _, t := range teams {
		t.ApplyPending(e)
	}
}

// SingleMatch applies one match immediately: both sides accumulate the
// result and are finalized in the same step. This is the normal mode of the
// pipeline, which processes matches strictly one at a time in chronological
// order.
func (e *Engine) SingleMatch(winner, loser *Team, info float64) {
	e.IncrementalMatch(winner, loser, info)
	e.Finalize(winner, loser)
}
