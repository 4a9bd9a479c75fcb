// Package paramid declares the stable identifiers of every voice-conversion
// parameter. The numbers are persisted in snapshots and must never change.
package paramid

import "github.com/justyntemme/vcparam/pkg/framework/param"

// MaxVoices is the capacity of every per-voice parameter family
const MaxVoices = 256

// Singular parameters
const (
	Model               param.ID = 0
	Voice               param.ID = 1
	FormantShift        param.ID = 2
	PitchShift          param.ID = 3
	AverageSourcePitch  param.ID = 4
	Lock                param.ID = 5
	InputGain           param.ID = 6
	OutputGain          param.ID = 7
	IntonationIntensity param.ID = 8
	PitchCorrection     param.ID = 9
	PitchCorrectionType param.ID = 10
	MergedVoiceIndex    param.ID = 11
)

// Bases of the per-voice families. Each family occupies
// [base, base+MaxVoices).
const (
	AverageTargetPitchBase param.ID = 1000
	MergeWeightBase        param.ID = 2000
	MergeLabelBase         param.ID = 3000
)

// AverageTargetPitch returns the id of voice i's average target pitch
func AverageTargetPitch(i int) param.ID {
	return family(AverageTargetPitchBase, i)
}

// MergeWeight returns the id of voice i's merge weight
func MergeWeight(i int) param.ID {
	return family(MergeWeightBase, i)
}

// MergeLabel returns the id of voice i's merge label
func MergeLabel(i int) param.ID {
	return family(MergeLabelBase, i)
}

// Index reports which family member id is, relative to base
func Index(base, id param.ID) (int, bool) {
	if id < base || id >= base+MaxVoices {
		return 0, false
	}
	return int(id - base), true
}

func family(base param.ID, i int) param.ID {
	if i < 0 || i >= MaxVoices {
		panic("paramid: voice index out of range")
	}
	return base + param.ID(i)
}
