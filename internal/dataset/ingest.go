// Package dataset turns raw match and event records into the filtered,
// time-windowed, information-content-tagged dataset the later stages run on.
package dataset

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rankforge/standings/internal/model"
	"github.com/rankforge/standings/internal/ranking"
)

// RankedEraCutoff is the timestamp from which the ranked flag on a match is
// authoritative. Matches before the cutoff predate the flag and are treated
// as always ranked.
const RankedEraCutoff int64 = 1735689600

// Dataset is the ingestor output: the surviving matches and the events they
// belong to.
type Dataset struct {
	Matches []model.Match
	Events  map[int64]*model.Event
}

// Ingestor applies the filter chain and computes per-match information
// content. FilterEnd below zero means "the latest match in the data".
type Ingestor struct {
	ctx         *ranking.Context
	filterEnd   int64
	window      int64
	gracePeriod int64
}

// NewIngestor builds an ingestor over the given context. window and grace
// are in seconds; filterEnd is an epoch timestamp or -1.
func NewIngestor(ctx *ranking.Context, filterEnd, window, gracePeriod int64) *Ingestor {
	return &Ingestor{
		ctx:         ctx,
		filterEnd:   filterEnd,
		window:      window,
		gracePeriod: gracePeriod,
	}
}

// Ingest runs the filter chain:
// drop incomplete lineups, drop unranked matches, window by time, accumulate
// events, drop showmatches, then tag every survivor with its decay weight.
// It also configures the context's decay window, pulling the window end back
// by the grace period so the final month sits on the full-weight plateau.
func (ing *Ingestor) Ingest(raw *model.RawDataset) (*Dataset, error) {
	matches := filterIncomplete(raw.Matches)
	matches = filterUnranked(matches)

	events := make(map[int64]*model.Event, len(raw.Events))
	for _, rawEvent := range raw.Events {
		events[rawEvent.EventID] = model.NewEvent(rawEvent)
	}

	ds := &Dataset{Events: events}
	if len(matches) == 0 {
		log.Warn().Msg("no matches survived completeness and ranked filters")
		return ds, nil
	}

	startTime, endTime := ing.timeWindow(matches)
	ing.ctx.SetTimeWindow(startTime, endTime-ing.gracePeriod)
	matches = filterByTime(matches, startTime, endTime)

	for i := range matches {
		if event, ok := events[matches[i].EventID]; ok {
			event.AccumulateMatch(&matches[i])
		}
	}

	matches = filterShowmatches(matches, events)

	for i := range matches {
		matches[i].InformationContent = ing.ctx.TimestampModifier(matches[i].StartTime)
		matches[i].UnifiedID = -1
		matches[i].Roster1 = -1
		matches[i].Roster2 = -1
	}

	log.Info().
		Int("matches", len(matches)).
		Int("events", len(events)).
		Int64("window_start", startTime).
		Int64("window_end", endTime).
		Msg("dataset ingested")

	ds.Matches = matches
	return ds, nil
}

// timeWindow resolves the filter window: an explicit end when configured,
// otherwise the latest match in the data, minus the window length.
func (ing *Ingestor) timeWindow(matches []model.Match) (int64, int64) {
	endTime := ing.filterEnd
	if endTime < 0 {
		for _, m := range matches {
			if m.StartTime > endTime {
				endTime = m.StartTime
			}
		}
	}
	return endTime - ing.window, endTime
}

// filterIncomplete keeps only matches with full 5-player lineups on both
// sides. Everything downstream assumes this invariant.
func filterIncomplete(matches []model.Match) []model.Match {
	kept := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if len(m.Team1Players) == 5 && len(m.Team2Players) == 5 {
			kept = append(kept, m)
		}
	}
	return kept
}

// filterUnranked keeps pre-cutoff matches unconditionally and post-cutoff
// matches only when their ranked flag is present and true.
func filterUnranked(matches []model.Match) []model.Match {
	kept := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if m.StartTime < RankedEraCutoff {
			kept = append(kept, m)
			continue
		}
		if m.Ranked != nil && *m.Ranked {
			kept = append(kept, m)
		}
	}
	return kept
}

// filterByTime keeps matches inside [startTime, endTime]. A negative bound
// disables that side of the filter.
func filterByTime(matches []model.Match, startTime, endTime int64) []model.Match {
	kept := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if endTime >= 0 && m.StartTime > endTime {
			continue
		}
		if startTime >= 0 && m.StartTime < startTime {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// filterShowmatches drops matches whose event name contains "showmatch".
// Matches with no event record are kept.
func filterShowmatches(matches []model.Match, events map[int64]*model.Event) []model.Match {
	kept := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if event, ok := events[m.EventID]; ok {
			if strings.Contains(strings.ToLower(event.Name), "showmatch") {
				continue
			}
		}
		kept = append(kept, m)
	}
	return kept
}
