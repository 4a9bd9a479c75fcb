package engine

import (
	"math"
)

// DefaultDBPerMs is the slope a gain ramp moves at
const DefaultDBPerMs = 2.0

// DBToAmp converts decibels to linear amplitude
func DBToAmp(db float64) float64 {
	return math.Pow(10.0, db*0.05)
}

// AmpToDB converts linear amplitude to decibels
func AmpToDB(amp float64) float64 {
	return 20.0 * math.Log10(amp)
}

// GainRamp smooths gain changes to prevent zipper noise. It moves toward
// the target at a constant slope in decibels, so large jumps take
// proportionally longer than small ones.
//
// A GainRamp is owned by the audio thread.
type GainRamp struct {
	current float64 // amplitude
	target  float64 // amplitude
	up      float64 // per-sample ratio while rising
	down    float64 // per-sample ratio while falling
	dbPerMs float64
	ready   bool
}

// NewGainRamp creates a ramp resting at 0 dB
func NewGainRamp(dbPerMs float64) *GainRamp {
	return &GainRamp{
		current: 1,
		target:  1,
		dbPerMs: dbPerMs,
	}
}

// SetSampleRate recomputes the per-sample step. A ramp is not ready until
// it has a positive sample rate.
func (g *GainRamp) SetSampleRate(sampleRate float64) {
	if sampleRate <= 1e-5 {
		g.ready = false
		return
	}
	g.up = DBToAmp(g.dbPerMs / (sampleRate * 0.001))
	g.down = DBToAmp(-g.dbPerMs / (sampleRate * 0.001))
	g.ready = true
}

// IsReady reports whether a sample rate has been set
func (g *GainRamp) IsReady() bool {
	return g.ready
}

// SetTarget sets the gain to move toward, in dB
func (g *GainRamp) SetTarget(db float64) {
	g.target = DBToAmp(db)
}

// Reset jumps straight to a gain in dB
func (g *GainRamp) Reset(db float64) {
	g.current = DBToAmp(db)
	g.target = g.current
}

// IsSmoothing returns true while the ramp has not reached its target
func (g *GainRamp) IsSmoothing() bool {
	return g.current != g.target
}

// Current returns the current gain in dB
func (g *GainRamp) Current() float64 {
	return AmpToDB(g.current)
}

// Process multiplies in by the ramped gain into out. in and out may alias.
func (g *GainRamp) Process(in, out []float32) {
	n := min(len(in), len(out))
	i := 0
	switch {
	case g.current < g.target:
		for ; i < n && g.current < g.target; i++ {
			g.current = min(g.current*g.up, g.target)
			out[i] = float32(float64(in[i]) * g.current)
		}
	case g.current > g.target:
		for ; i < n && g.current > g.target; i++ {
			g.current = max(g.current*g.down, g.target)
			out[i] = float32(float64(in[i]) * g.current)
		}
	}
	for ; i < n; i++ {
		out[i] = float32(float64(in[i]) * g.current)
	}
}
