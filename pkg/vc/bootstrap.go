package vc

import (
	"github.com/justyntemme/vcparam/pkg/framework/param"
	"github.com/justyntemme/vcparam/pkg/modelconfig"
	"github.com/justyntemme/vcparam/pkg/paramid"
	"github.com/justyntemme/vcparam/pkg/pitch"
)

// Bootstrap resets the voice-dependent parameters for a freshly loaded
// model. The first empty voice slot becomes the merged voice; its average
// pitch is the plain mean of the populated voices before it. Voice and
// formant return to zero, merge weights are cleared, every target pitch
// and merge label is rewritten, and the dependent side of the pitch pair
// is re-derived for voice 0.
func Bootstrap(e param.Editor, cfg *modelconfig.Config) {
	voices := cfg.Voices // copy; cfg is shared

	merged := cfg.FirstEmptyVoice()
	if merged < paramid.MaxVoices {
		pitches := make([]float64, merged)
		for i := range merged {
			pitches[i] = voices[i].AveragePitch
		}
		voices[merged].AveragePitch = pitch.Mean(pitches)
	}

	e.Set(paramid.Voice, param.Int(0))
	e.Set(paramid.FormantShift, param.Double(0))
	e.Set(paramid.MergedVoiceIndex, param.Double(float64(merged)))
	for i := range paramid.MaxVoices {
		e.Set(paramid.AverageTargetPitch(i), param.Double(voices[i].AveragePitch))
	}
	for i := range paramid.MaxVoices {
		e.Set(paramid.MergeWeight(i), param.Double(0))
	}
	for i := range paramid.MaxVoices {
		e.Set(paramid.MergeLabel(i), param.Text(voices[i].Name))
	}

	pitch.Resolve(e, 0, 0)
}
