// Package pipeline wires the ranking stages together: ingest, roster
// resolution, seeding, the chronological rating pass and rank assignment.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rankforge/standings/internal/config"
	"github.com/rankforge/standings/internal/dataset"
	"github.com/rankforge/standings/internal/glicko"
	"github.com/rankforge/standings/internal/model"
	"github.com/rankforge/standings/internal/ranking"
	"github.com/rankforge/standings/internal/roster"
	"github.com/rankforge/standings/internal/seeding"
	"github.com/rankforge/standings/internal/standings"
)

// Result is the pipeline output: the processed matches (chronological, with
// per-match rating deltas), every resolved roster, and the standings order
// (rosters with at least one distinct win, sorted by final rating).
type Result struct {
	Matches   []model.Match
	Rosters   []*roster.Roster
	Standings []*roster.Roster
}

// ComputeRankings runs the full batch transform. The stages are strictly
// sequential: roster identity is established scanning matches newest-first,
// while ratings require the oldest-first order, and each stage reads the
// previous stage's in-place mutations.
func ComputeRankings(raw *model.RawDataset, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	runLog := log.With().Str("run_id", uuid.NewString()).Logger()
	runLog.Info().
		Int("raw_matches", len(raw.Matches)).
		Int("raw_events", len(raw.Events)).
		Msg("computing rankings")

	ctx := ranking.NewContext().
		SetOutlierRank(cfg.OutlierRank).
		SetDecayExponent(cfg.DecayExponent).
		SetHighValueEventMod(cfg.HighValueEventMod)

	ingestor := dataset.NewIngestor(ctx, cfg.TimeWindowEnd, cfg.TimeWindowLength, cfg.GracePeriod)
	ds, err := ingestor.Ingest(raw)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	rosters := roster.NewResolver(cfg.OverlapThreshold).Resolve(ds)

	calculator := seeding.NewCalculator(ctx, ds.Events, cfg.BucketSize)
	if err := calculator.Apply(rosters); err != nil {
		return nil, fmt.Errorf("seeding: %w", err)
	}

	engine := glicko.NewEngine().SetFixedRD(cfg.FixedRD)
	seeding.SeedRatings(rosters, engine, cfg.SeedWeights, cfg.MinSeedRating, cfg.MaxSeedRating)

	runMatches(engine, ds.Matches, rosters)
	for _, r := range rosters {
		if r.Glicko != nil {
			r.Rating = r.Glicko.Rating()
		}
	}

	ranked := standings.NewAssigner(cfg.MinMatchesForRank).Apply(rosters)

	runLog.Info().
		Int("rosters", len(rosters)).
		Int("standings", len(ranked)).
		Msg("rankings computed")

	return &Result{
		Matches:   ds.Matches,
		Rosters:   rosters,
		Standings: ranked,
	}, nil
}

// runMatches applies every match in ascending time order. The order is load
// bearing: a roster's post-match rating feeds the expected-score term of its
// next match, so this loop must not be reordered or parallelized.
func runMatches(engine *glicko.Engine, matches []model.Match, rosters []*roster.Roster) {
	for i := range matches {
		m := &matches[i]
		winner := rosters[m.Winner()].Glicko
		loser := rosters[m.Loser()].Glicko

		winnerBefore := winner.Rating()
		loserBefore := loser.Rating()

		engine.SingleMatch(winner, loser, m.InformationContent)

		m.WinnerDelta = winner.Rating() - winnerBefore
		m.LoserDelta = loser.Rating() - loserBefore
	}
}
