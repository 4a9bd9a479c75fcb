// Package pitch keeps target pitch, source pitch, pitch shift and formant
// shift mutually consistent.
//
// The effective target of the selected voice is
//
//	target = AverageTargetPitch[voice] + FormantShift
//
// and the lock mode decides which of AverageSourcePitch and PitchShift is
// authoritative when the other one is re-derived:
//
//	HoldSource: PitchShift := clamp(target - AverageSourcePitch, ±24)
//	HoldShift:  AverageSourcePitch := target - PitchShift
//
// AverageSourcePitch is never clamped when it is the derived side.
package pitch

import (
	"github.com/justyntemme/vcparam/pkg/framework/param"
	"github.com/justyntemme/vcparam/pkg/paramid"
)

// MaxAbsPitchShift bounds PitchShift in semitones
const MaxAbsPitchShift = 24.0

// LockMode selects the authoritative side
type LockMode int

const (
	// HoldSource keeps AverageSourcePitch and re-derives PitchShift
	HoldSource LockMode = 0
	// HoldShift keeps PitchShift and re-derives AverageSourcePitch
	HoldShift LockMode = 1
)

// String returns the lock label shown to users
func (m LockMode) String() string {
	if m == HoldShift {
		return "PitchShift"
	}
	return "AverageSourcePitch"
}

// CurrentLock reads the lock mode
func CurrentLock(e param.Editor) LockMode {
	return LockMode(e.Get(paramid.Lock).AsInt())
}

// EffectiveTarget returns AverageTargetPitch[voice] + formant
func EffectiveTarget(e param.Editor, voice int, formant float64) float64 {
	return e.Get(paramid.AverageTargetPitch(voice)).AsDouble() + formant
}

// Resolve re-derives the dependent side for voice and formant under the
// current lock mode. It is used when the voice, formant or model changes.
func Resolve(e param.Editor, voice int, formant float64) {
	target := EffectiveTarget(e, voice, formant)
	switch CurrentLock(e) {
	case HoldSource:
		src := e.Get(paramid.AverageSourcePitch).AsDouble()
		e.Set(paramid.PitchShift, param.Double(ShiftFor(target, src)))
	case HoldShift:
		shift := e.Get(paramid.PitchShift).AsDouble()
		e.Set(paramid.AverageSourcePitch, param.Double(SourceFor(target, shift)))
	}
}

// FromPitchShift handles an explicit PitchShift edit: the shift wins
// regardless of lock and AverageSourcePitch follows.
func FromPitchShift(e param.Editor, shift float64) {
	target := selectedTarget(e)
	e.Set(paramid.AverageSourcePitch, param.Double(SourceFor(target, shift)))
}

// FromSourcePitch handles an explicit AverageSourcePitch edit: the source
// wins regardless of lock and PitchShift follows.
func FromSourcePitch(e param.Editor, src float64) {
	target := selectedTarget(e)
	e.Set(paramid.PitchShift, param.Double(ShiftFor(target, src)))
}

// ShiftFor returns the clamped shift taking src to target
func ShiftFor(target, src float64) float64 {
	return min(max(target-src, -MaxAbsPitchShift), MaxAbsPitchShift)
}

// SourceFor returns the source pitch that shift moves onto target.
// The result is not clamped.
func SourceFor(target, shift float64) float64 {
	return target - shift
}

func selectedTarget(e param.Editor) float64 {
	voice := e.Get(paramid.Voice).AsInt()
	formant := e.Get(paramid.FormantShift).AsDouble()
	return EffectiveTarget(e, voice, formant)
}
