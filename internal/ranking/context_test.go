package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampModifier(t *testing.T) {
	t.Run("no_window_is_unit_weight", func(t *testing.T) {
		ctx := NewContext()
		assert.Equal(t, 1.0, ctx.TimestampModifier(0))
		assert.Equal(t, 1.0, ctx.TimestampModifier(123456789))
	})

	t.Run("clamps_outside_window", func(t *testing.T) {
		ctx := NewContext()
		ctx.SetTimeWindow(1000, 2000)

		assert.Equal(t, 0.0, ctx.TimestampModifier(999))
		assert.Equal(t, 0.0, ctx.TimestampModifier(0))
		assert.Equal(t, 1.0, ctx.TimestampModifier(2000))
		assert.Equal(t, 1.0, ctx.TimestampModifier(5000))
	})

	t.Run("linear_inside_window", func(t *testing.T) {
		ctx := NewContext()
		ctx.SetTimeWindow(1000, 2000)

		assert.InDelta(t, 0.5, ctx.TimestampModifier(1500), 1e-12)
		assert.InDelta(t, 0.25, ctx.TimestampModifier(1250), 1e-12)
	})

	t.Run("monotonic_non_decreasing", func(t *testing.T) {
		ctx := NewContext()
		ctx.SetTimeWindow(1000, 2000)

		prev := -1.0
		for ts := int64(900); ts <= 2100; ts += 10 {
			v := ctx.TimestampModifier(ts)
			require.GreaterOrEqual(t, v, prev, "decay decreased at ts=%d", ts)
			prev = v
		}
	})

	t.Run("exponent_shapes_curve", func(t *testing.T) {
		ctx := NewContext().SetDecayExponent(2)
		ctx.SetTimeWindow(1000, 2000)
		assert.InDelta(t, 0.25, ctx.TimestampModifier(1500), 1e-12)

		ctx = NewContext().SetDecayExponent(0.5)
		ctx.SetTimeWindow(1000, 2000)
		assert.InDelta(t, 0.5, ctx.TimestampModifier(1250), 1e-12)
	})

	t.Run("window_end_forced_to_at_least_start", func(t *testing.T) {
		ctx := NewContext()
		ctx.SetTimeWindow(2000, 1000)

		// Degenerate window collapses to a step at the start.
		assert.Equal(t, 0.0, ctx.TimestampModifier(1999))
		assert.Equal(t, 1.0, ctx.TimestampModifier(2000))
	})
}

func TestRemapClamped(t *testing.T) {
	assert.Equal(t, 400.0, RemapClamped(0, 0, 1, 400, 2000))
	assert.Equal(t, 2000.0, RemapClamped(1, 0, 1, 400, 2000))
	assert.InDelta(t, 1200.0, RemapClamped(0.5, 0, 1, 400, 2000), 1e-9)
	assert.Equal(t, 400.0, RemapClamped(-3, 0, 1, 400, 2000))
	assert.Equal(t, 2000.0, RemapClamped(7, 0, 1, 400, 2000))

	t.Run("degenerate_input_range", func(t *testing.T) {
		assert.Equal(t, 2000.0, RemapClamped(5, 5, 5, 400, 2000))
		assert.Equal(t, 400.0, RemapClamped(4, 5, 5, 400, 2000))
	})
}

func TestContextAccessors(t *testing.T) {
	ctx := NewContext().SetOutlierRank(5).SetHighValueEventMod(2)
	if got := ctx.OutlierRank(); got != 5 {
		t.Errorf("OutlierRank() = %d, want 5", got)
	}
	if got := ctx.HighValueEventMod(); got != 2 {
		t.Errorf("HighValueEventMod() = %v, want 2", got)
	}
}
