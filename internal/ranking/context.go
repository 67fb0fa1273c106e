// Package ranking holds the tunables shared by every pipeline stage, most
// importantly the time-decay weighting that turns a match timestamp into an
// information-content weight.
package ranking

import "math"

// Context carries the per-run tunables: the outlier rank used when
// normalizing relative statistics, the decay window, the decay exponent and
// the high-value-event modifier. It is configured once up front and read-only
// afterwards, except for SetTimeWindow which is called once the dataset's
// time bounds are known.
type Context struct {
	outlierRank   int
	windowStart   int64
	windowEnd     int64
	hasWindow     bool
	decayExponent float64

	// Extra weight reserved for majors and qualifier events. Exposed on the
	// context but not yet folded into the decay or rating formulas.
	highValueEventMod float64
}

// NewContext returns a context with default tunables: outlier rank 10,
// linear decay, no time window (every timestamp weighs 1).
func NewContext() *Context {
	return &Context{
		outlierRank:       10,
		decayExponent:     1,
		highValueEventMod: 1,
	}
}

// SetTimeWindow configures the decay window. The end is forced to be at
// least the start, so a degenerate window collapses to a step function.
func (c *Context) SetTimeWindow(start, end int64) {
	c.windowStart = start
	c.windowEnd = max(start, end)
	c.hasWindow = true
}

// TimestampModifier returns the information-content weight for a timestamp:
// 1 when no window is configured, otherwise the timestamp remapped linearly
// from [windowStart, windowEnd] onto [0, 1], clamped, and raised to the
// decay exponent.
func (c *Context) TimestampModifier(ts int64) float64 {
	if !c.hasWindow {
		return 1
	}
	v := RemapClamped(float64(ts), float64(c.windowStart), float64(c.windowEnd), 0, 1)
	return math.Pow(v, c.decayExponent)
}

// SetOutlierRank sets how many top outliers are ignored when normalizing
// relative statistics: a roster at least as good as the Nth best gets the
// same modifier as the best.
func (c *Context) SetOutlierRank(nth int) *Context {
	c.outlierRank = nth
	return c
}

func (c *Context) OutlierRank() int {
	return c.outlierRank
}

// SetDecayExponent sets the decay curve shape: 1 is linear, below 1 shifts
// weight toward older matches, above 1 toward recent ones.
func (c *Context) SetDecayExponent(exp float64) *Context {
	c.decayExponent = exp
	return c
}

func (c *Context) SetHighValueEventMod(mod float64) *Context {
	c.highValueEventMod = mod
	return c
}

func (c *Context) HighValueEventMod() float64 {
	return c.highValueEventMod
}

// RemapClamped linearly remaps v from [inMin, inMax] to [outMin, outMax],
// clamping to the output range. A degenerate input range maps everything
// below it to outMin and everything else to outMax.
func RemapClamped(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax <= inMin {
		if v < inMin {
			return outMin
		}
		return outMax
	}
	t := (v - inMin) / (inMax - inMin)
	t = math.Max(0, math.Min(1, t))
	return outMin + t*(outMax-outMin)
}
