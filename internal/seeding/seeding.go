// Package seeding derives a pre-rating strength value per roster from its
// historical prestige: prize money won, distinct opponents defeated and LAN
// results, normalized across the field so no single outlier dominates.
package seeding

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/rankforge/standings/internal/glicko"
	"github.com/rankforge/standings/internal/model"
	"github.com/rankforge/standings/internal/ranking"
	"github.com/rankforge/standings/internal/roster"
)

// DefaultBucketSize is the top-K window used by every factor that tracks a
// roster's best qualifying results.
const DefaultBucketSize = 10

// prizePoolCeiling caps how much event stakes can inflate a win's value.
const prizePoolCeiling = 1_000_000

// Weights are the per-factor coefficients of the final seed average.
type Weights struct {
	BountyCollected float64 `yaml:"bounty_collected"`
	BountyOffered   float64 `yaml:"bounty_offered"`
	OpponentNetwork float64 `yaml:"opponent_network"`
	OwnNetwork      float64 `yaml:"own_network"`
	LanFactor       float64 `yaml:"lan_factor"`
}

// DefaultWeights weigh every factor equally except a roster's own network,
// which already feeds the opponent-network factor of everyone it beat.
func DefaultWeights() Weights {
	return Weights{
		BountyCollected: 1,
		BountyOffered:   1,
		OpponentNetwork: 1,
		OwnNetwork:      0,
		LanFactor:       1,
	}
}

// bucketEntry is one qualifying result inside a top-K bucket.
type bucketEntry struct {
	id  int64
	val float64
}

// Calculator computes the three seeding phases over the full roster set.
type Calculator struct {
	ctx        *ranking.Context
	events     map[int64]*model.Event
	bucketSize int
}

// NewCalculator builds a calculator. A bucket size below 1 falls back to the
// default.
func NewCalculator(ctx *ranking.Context, events map[int64]*model.Event, bucketSize int) *Calculator {
	if bucketSize < 1 {
		bucketSize = DefaultBucketSize
	}
	return &Calculator{ctx: ctx, events: events, bucketSize: bucketSize}
}

// Apply runs the three phases in order. Phase 1 is absolute and per-roster;
// phase 2 normalizes against the Nth-highest roster and needs the whole
// field; phase 3 reads opponents' phase-2 values. A zero-roster set is a
// valid no-op.
func (c *Calculator) Apply(rosters []*roster.Roster) error {
	if len(rosters) == 0 {
		return nil
	}

	for _, r := range rosters {
		c.absoluteStats(r)
	}
	if err := c.relativeStats(rosters); err != nil {
		return err
	}
	for _, r := range rosters {
		c.opponentStats(r, rosters)
		r.Mods = finalizeModifiers(r)
	}

	log.Info().
		Int("rosters", len(rosters)).
		Int("outlier_rank", c.ctx.OutlierRank()).
		Msg("seeding modifiers calculated")

	return nil
}

// absoluteStats fills phase 1: counts, recency-weighted distinct opponents
// beaten, and the LAN-win and winnings buckets.
func (c *Calculator) absoluteStats(r *roster.Roster) {
	stats := roster.AbsoluteStats{MatchesPlayed: len(r.Matches)}
	for _, tm := range r.Matches {
		if tm.StartTime > stats.LastPlayed {
			stats.LastPlayed = tm.StartTime
		}
	}

	lastWinOver := make(map[int]int64)
	lanWins := make([]bucketEntry, 0, len(r.Wins))
	for _, win := range r.Wins {
		if prev, ok := lastWinOver[win.Opponent]; !ok || prev < win.StartTime {
			lastWinOver[win.Opponent] = win.StartTime
		}

		event, ok := c.events[win.EventID]
		if !ok {
			continue
		}
		lan := 0.0
		if event.LAN {
			lan = 1
		}
		lanWins = append(lanWins, bucketEntry{
			id:  int64(win.UnifiedID),
			val: lan * c.ctx.TimestampModifier(win.StartTime),
		})
	}

	// Each distinct opponent counts by the weight of the most recent win
	// over them. Summed in opponent-id order so reruns are bit-identical.
	opponents := make([]int, 0, len(lastWinOver))
	for opp := range lastWinOver {
		opponents = append(opponents, opp)
	}
	sort.Ints(opponents)
	for _, opp := range opponents {
		stats.DistinctTeamsDefeated += c.ctx.TimestampModifier(lastWinOver[opp])
	}

	// The LAN factor averages over the full bucket, so a roster with few LAN
	// wins is diluted rather than flattered.
	stats.ScaledLanWins = c.topBucketSum(lanWins) / float64(c.bucketSize)

	// Winnings: every event participation with a nonzero prize, weighted by
	// the event's recency, top bucket summed.
	eventIDs := make([]int64, 0, len(r.Events))
	for id := range r.Events {
		eventIDs = append(eventIDs, id)
	}
	sort.Slice(eventIDs, func(i, j int) bool { return eventIDs[i] < eventIDs[j] })

	winnings := make([]bucketEntry, 0, len(eventIDs))
	for _, id := range eventIDs {
		te := r.Events[id]
		event, ok := c.events[id]
		if !ok || te.Winnings <= 0 {
			continue
		}
		winnings = append(winnings, bucketEntry{
			id:  id,
			val: te.Winnings * c.ctx.TimestampModifier(event.LastMatchTime),
		})
	}
	stats.ScaledWinnings = c.topBucketSum(winnings)

	r.Absolute = stats
}

// relativeStats fills phase 2: each roster's absolute stats divided by the
// Nth-highest value across the field, clamped to 1. Being better than the
// Nth-best roster earns no extra credit.
func (c *Calculator) relativeStats(rosters []*roster.Roster) error {
	nth := c.ctx.OutlierRank()

	refWinnings, err := NthHighest(collect(rosters, func(r *roster.Roster) float64 { return r.Absolute.ScaledWinnings }), nth)
	if err != nil {
		return fmt.Errorf("reference winnings: %w", err)
	}
	refOpponents, err := NthHighest(collect(rosters, func(r *roster.Roster) float64 { return r.Absolute.DistinctTeamsDefeated }), nth)
	if err != nil {
		return fmt.Errorf("reference opponent count: %w", err)
	}
	refLanWins, err := NthHighest(collect(rosters, func(r *roster.Roster) float64 { return r.Absolute.ScaledLanWins }), nth)
	if err != nil {
		return fmt.Errorf("reference lan wins: %w", err)
	}

	for _, r := range rosters {
		r.Relative = roster.RelativeStats{
			BountyOffered:    normalize(r.Absolute.ScaledWinnings, refWinnings),
			OwnNetwork:       normalize(r.Absolute.DistinctTeamsDefeated, refOpponents),
			LanParticipation: normalize(r.Absolute.ScaledLanWins, refLanWins),
		}
	}
	return nil
}

// opponentStats fills phase 3: credit for wins over prestigious opponents.
// Each win contributes the opponent's phase-2 value, weighted by the win's
// recency and the stakes of the event it happened at.
func (c *Calculator) opponentStats(r *roster.Roster, rosters []*roster.Roster) {
	bounties := make([]bucketEntry, 0, len(r.Wins))
	network := make([]bucketEntry, 0, len(r.Wins))

	for _, win := range r.Wins {
		event, ok := c.events[win.EventID]
		if !ok {
			// No event record means no stakes context; the win earns no
			// event-dependent bonus.
			continue
		}
		prizePool := math.Max(1, event.PrizePool)
		stakes := Curve(math.Min(prizePool/prizePoolCeiling, 1))
		matchContext := c.ctx.TimestampModifier(win.StartTime) * stakes

		opponent := rosters[win.Opponent]
		bounties = append(bounties, bucketEntry{
			id:  int64(win.UnifiedID),
			val: opponent.Relative.BountyOffered * matchContext,
		})
		network = append(network, bucketEntry{
			id:  int64(win.UnifiedID),
			val: opponent.Relative.OwnNetwork * matchContext,
		})
	}

	r.Opponent = roster.OpponentStats{
		OpponentBounties: c.topBucketSum(bounties) / float64(c.bucketSize),
		OpponentNetwork:  c.topBucketSum(network) / float64(c.bucketSize),
	}
}

// finalizeModifiers shapes the five factors: the prize-derived ones pass
// through the log curve, the rest stay linear.
func finalizeModifiers(r *roster.Roster) roster.Modifiers {
	return roster.Modifiers{
		BountyCollected: Curve(r.Opponent.OpponentBounties),
		BountyOffered:   Curve(r.Relative.BountyOffered),
		OpponentNetwork: r.Opponent.OpponentNetwork,
		OwnNetwork:      r.Relative.OwnNetwork,
		LanFactor:       r.Relative.LanParticipation,
	}
}

// topBucketSum sorts entries by value descending (ties by id, for
// deterministic truncation) and sums the top bucket.
func (c *Calculator) topBucketSum(entries []bucketEntry) float64 {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].val != entries[j].val {
			return entries[i].val > entries[j].val
		}
		return entries[i].id < entries[j].id
	})
	if len(entries) > c.bucketSize {
		entries = entries[:c.bucketSize]
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.val
	}
	return sum
}

func collect(rosters []*roster.Roster, f func(*roster.Roster) float64) []float64 {
	out := make([]float64, len(rosters))
	for i, r := range rosters {
		out[i] = f(r)
	}
	return out
}

// normalize divides by the reference and clamps to 1. A non-positive
// reference means nobody in the field scored, so everyone normalizes to 0.
func normalize(v, reference float64) float64 {
	if reference <= 0 {
		return 0
	}
	return math.Min(v/reference, 1)
}

// Curve compresses a [0,1] value: 1 stays 1 and everything below drops off
// on a reciprocal-log slope, with Curve(0) = 0.
func Curve(x float64) float64 {
	return 1 / (1 + math.Abs(math.Log10(x)))
}

// NthHighest returns the nth largest value (1-based). Asking for nth < 1 is
// a programmer error; asking over an empty set means no ranking can be
// produced. Both are fatal. nth beyond the set size saturates to the
// smallest value.
func NthHighest(values []float64, nth int) (float64, error) {
	if nth < 1 {
		return 0, fmt.Errorf("nth highest: nth must be >= 1, got %d", nth)
	}
	if len(values) == 0 {
		return 0, errors.New("nth highest: empty value set")
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if nth > len(sorted) {
		nth = len(sorted)
	}
	return sorted[nth-1], nil
}

// SeedRatings converts each roster's modifiers into a starting rating: the
// weighted factor average becomes the seed value, and the observed
// [min, max] spread is remapped onto [minRating, maxRating]. Every roster
// also gets its rating state created here, at the engine's starting
// deviation.
func SeedRatings(rosters []*roster.Roster, engine *glicko.Engine, weights Weights, minRating, maxRating float64) {
	if len(rosters) == 0 {
		return
	}

	for _, r := range rosters {
		r.SeedValue = seedValue(r.Mods, weights)
	}

	minSeed := rosters[0].SeedValue
	maxSeed := rosters[0].SeedValue
	for _, r := range rosters[1:] {
		minSeed = math.Min(minSeed, r.SeedValue)
		maxSeed = math.Max(maxSeed, r.SeedValue)
	}

	for _, r := range rosters {
		r.Rating = ranking.RemapClamped(r.SeedValue, minSeed, maxSeed, minRating, maxRating)
		r.SeedRating = r.Rating
		r.Glicko = engine.NewTeam(r.Rating)
	}

	log.Info().
		Float64("min_seed", minSeed).
		Float64("max_seed", maxSeed).
		Msg("rosters seeded")
}

func seedValue(mods roster.Modifiers, w Weights) float64 {
	sumCoeff := w.BountyCollected + w.BountyOffered + w.OpponentNetwork + w.OwnNetwork + w.LanFactor
	if sumCoeff == 0 {
		sumCoeff = 1
	}
	scaled := w.BountyCollected*mods.BountyCollected +
		w.BountyOffered*mods.BountyOffered +
		w.OpponentNetwork*mods.OpponentNetwork +
		w.OwnNetwork*mods.OwnNetwork +
		w.LanFactor*mods.LanFactor
	return scaled / sumCoeff
}
