// Package engine is the realtime side of the voice changer. A Proxy holds
// the loaded model and the current settings, and implements
// param.Processor so the parameter schema can forward values to it.
package engine

import (
	"fmt"

	"github.com/justyntemme/vcparam/pkg/framework/param"
	"github.com/justyntemme/vcparam/pkg/modelconfig"
	"github.com/justyntemme/vcparam/pkg/paramid"
)

// Core runs inference for one model format version. Process is called on
// the audio thread and must not block or allocate.
type Core interface {
	Version() int
	// Process converts one block. in and out may alias.
	Process(in, out []float32, s *Settings) error
}

// Factory builds the Core for a parsed model document
type Factory func(cfg *modelconfig.Config, path string) (Core, error)

// DefaultFactory builds a PassthroughCore for every known format version.
// Unknown versions yield a nil Core, leaving the engine unloaded.
func DefaultFactory(cfg *modelconfig.Config, path string) (Core, error) {
	switch v := cfg.Model.VersionNumber(); v {
	case modelconfig.VersionAlpha2, modelconfig.VersionBeta1:
		return NewPassthroughCore(v, cfg), nil
	default:
		return nil, nil
	}
}

// PassthroughCore copies input to output. It checks the target speaker the
// way an inference core would and stands in for one where none is linked.
type PassthroughCore struct {
	version  int
	speakers int
}

// NewPassthroughCore creates a core accepting every populated voice of cfg
// plus the merged voice slot
func NewPassthroughCore(version int, cfg *modelconfig.Config) *PassthroughCore {
	return &PassthroughCore{
		version:  version,
		speakers: min(cfg.FirstEmptyVoice()+1, paramid.MaxVoices),
	}
}

// Version returns the model format version
func (c *PassthroughCore) Version() int {
	return c.version
}

// Process copies in to out
func (c *PassthroughCore) Process(in, out []float32, s *Settings) error {
	if s.TargetSpeaker < 0 || s.TargetSpeaker >= c.speakers {
		clear(out)
		return fmt.Errorf("speaker %d of %d: %w", s.TargetSpeaker, c.speakers, param.SpeakerIDOutOfRange)
	}
	copy(out, in)
	return nil
}

// Settings is the per-block snapshot of engine settings handed to a Core
type Settings struct {
	SampleRate          float64
	TargetSpeaker       int
	FormantShift        float64
	PitchShift          float64
	AverageSourcePitch  float64
	IntonationIntensity float64
	PitchCorrection     float64
	PitchCorrectionType int

	weights *[paramid.MaxVoices]atomicFloat
}

// MergeWeight returns the blend weight of voice i
func (s *Settings) MergeWeight(i int) float64 {
	if s.weights == nil || i < 0 || i >= paramid.MaxVoices {
		return 0
	}
	return s.weights[i].Load()
}
