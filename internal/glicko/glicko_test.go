package glicko

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleMatchEqualStart(t *testing.T) {
	engine := NewEngine().SetFixedRD(75)
	winner := engine.NewTeam(1500)
	loser := engine.NewTeam(1500)

	engine.SingleMatch(winner, loser, 1.0)

	assert.Greater(t, winner.Rating(), 1500.0, "winner must gain rating")
	assert.Less(t, loser.Rating(), 1500.0, "loser must lose rating")

	// Reference values for Q = ln(10)/400, fixed RD 75.
	assert.InDelta(t, 1515.084781, winner.Rating(), 1e-4)
	assert.InDelta(t, 1484.915219, loser.Rating(), 1e-4)
}

func TestSingleMatchUpset(t *testing.T) {
	engine := NewEngine().SetFixedRD(75)
	underdog := engine.NewTeam(1500)
	favorite := engine.NewTeam(1600)

	engine.SingleMatch(underdog, favorite, 1.0)

	// An upset moves ratings further than an expected result.
	assert.InDelta(t, 1519.262093, underdog.Rating(), 1e-4)
	assert.InDelta(t, 1580.737907, favorite.Rating(), 1e-4)
}

func TestZeroInformationContentIsNoOp(t *testing.T) {
	engine := NewEngine().SetFixedRD(75)
	winner := engine.NewTeam(1500)
	loser := engine.NewTeam(1500)

	engine.SingleMatch(winner, loser, 0)

	assert.Equal(t, 1500.0, winner.Rating())
	assert.Equal(t, 1500.0, loser.Rating())
}

func TestInformationContentScalesDelta(t *testing.T) {
	full := NewEngine().SetFixedRD(75)
	w1, l1 := full.NewTeam(1500), full.NewTeam(1500)
	full.SingleMatch(w1, l1, 1.0)

	half := NewEngine().SetFixedRD(75)
	w2, l2 := half.NewTeam(1500), half.NewTeam(1500)
	half.SingleMatch(w2, l2, 0.5)

	require.Greater(t, w2.Rating(), 1500.0)
	assert.Less(t, w2.Rating()-1500, w1.Rating()-1500,
		"half-weight match must move ratings less than a full-weight one")
}

func TestFixedRDNeverMoves(t *testing.T) {
	engine := NewEngine().SetFixedRD(75)
	a := engine.NewTeam(1500)
	b := engine.NewTeam(1500)

	for i := 0; i < 20; i++ {
		engine.SingleMatch(a, b, 1.0)
	}
	assert.Equal(t, 75.0, a.RD())
	assert.Equal(t, 75.0, b.RD())

	a.DecayRD(engine, 50)
	assert.Equal(t, 75.0, a.RD(), "decay is a no-op when RD is pinned")
}

func TestVariableRDShrinksWithPlay(t *testing.T) {
	engine := NewEngine()
	a := engine.NewTeam(engine.StartingRating())
	b := engine.NewTeam(engine.StartingRating())
	require.Equal(t, 350.0, a.RD())

	engine.SingleMatch(a, b, 1.0)
	assert.Less(t, a.RD(), 350.0, "an observed match reduces uncertainty")

	before := a.RD()
	a.DecayRD(engine, 4)
	assert.Greater(t, a.RD(), before, "idle time grows uncertainty back")
}

func TestIncrementalBatchMatchesSingle(t *testing.T) {
	// One incremental match finalized immediately must equal SingleMatch.
	e1 := NewEngine().SetFixedRD(75)
	w1, l1 := e1.NewTeam(1500), e1.NewTeam(1400)
	e1.SingleMatch(w1, l1, 0.8)

	e2 := NewEngine().SetFixedRD(75)
	w2, l2 := e2.NewTeam(1500), e2.NewTeam(1400)
	e2.IncrementalMatch(w2, l2, 0.8)
	e2.Finalize(w2, l2)

	assert.Equal(t, w1.Rating(), w2.Rating())
	assert.Equal(t, l1.Rating(), l2.Rating())
}

func TestResetPendingDiscardsAccumulation(t *testing.T) {
	engine := NewEngine().SetFixedRD(75)
	w, l := engine.NewTeam(1500), engine.NewTeam(1500)

	engine.IncrementalMatch(w, l, 1.0)
	w.ResetPending()
	l.ResetPending()
	engine.Finalize(w, l)

	assert.Equal(t, 1500.0, w.Rating())
	assert.Equal(t, 1500.0, l.Rating())
}
