// Package vc declares the parameter schema of the voice changer: every
// parameter's domain, default, and the callbacks that keep dependent
// parameters consistent and forward values to the realtime engine.
package vc

import (
	"fmt"
	"sync"

	"github.com/justyntemme/vcparam/pkg/framework/param"
	"github.com/justyntemme/vcparam/pkg/modelconfig"
	"github.com/justyntemme/vcparam/pkg/paramid"
	"github.com/justyntemme/vcparam/pkg/pitch"
)

// Schema returns the process-wide schema. It is built on first use and
// never modified afterwards.
var Schema = sync.OnceValue(func() *param.Schema {
	return NewSchema(modelconfig.DefaultLoader)
})

// NewSchema builds a schema whose model parameter reads documents through
// loader. Most callers want Schema.
func NewSchema(loader *modelconfig.Loader) *param.Schema {
	b := param.NewSchemaBuilder()

	b.Add(
		param.TextParameter(paramid.Model, "Model").
			FilePath().
			OnControl(func(e param.Editor, v param.Value) error {
				cfg, err := loader.Load(v.AsText())
				if err != nil {
					return err
				}
				Bootstrap(e, cfg)
				return nil
			}).
			OnApply(func(p param.Processor, v param.Value) error {
				return p.LoadModel(v.AsText())
			}).
			Build(),

		param.Choice(paramid.Voice, "Voice", param.IndexedLabels("ID ", paramid.MaxVoices)...).
			ShortName("Voi").
			OutOfRange(param.SpeakerIDOutOfRange).
			OnControl(func(e param.Editor, v param.Value) error {
				voice := v.AsInt()
				if voice < 0 || voice >= paramid.MaxVoices {
					return param.SpeakerIDOutOfRange
				}
				pitch.Resolve(e, voice, e.Get(paramid.FormantShift).AsDouble())
				return nil
			}).
			OnApply(func(p param.Processor, v param.Value) error {
				return p.SetTargetSpeaker(v.AsInt())
			}).
			Build(),

		param.SemitoneParameter(paramid.FormantShift, "FormantShift", 2, 2).
			ShortName("For").
			OnControl(func(e param.Editor, v param.Value) error {
				pitch.Resolve(e, e.Get(paramid.Voice).AsInt(), v.AsDouble())
				return nil
			}).
			OnApply(func(p param.Processor, v param.Value) error {
				return p.SetFormantShift(v.AsDouble())
			}).
			Build(),

		param.SemitoneParameter(paramid.PitchShift, "PitchShift", pitch.MaxAbsPitchShift, 8).
			ShortName("Pit").
			OnControl(func(e param.Editor, v param.Value) error {
				pitch.FromPitchShift(e, v.AsDouble())
				return nil
			}).
			OnApply(func(p param.Processor, v param.Value) error {
				return p.SetPitchShift(v.AsDouble())
			}).
			Build(),

		param.PitchParameter(paramid.AverageSourcePitch, "AverageSourcePitch", 52).
			ShortName("SrcPit").
			Flags(0).
			OnControl(func(e param.Editor, v param.Value) error {
				pitch.FromSourcePitch(e, v.AsDouble())
				return nil
			}).
			OnApply(func(p param.Processor, v param.Value) error {
				return p.SetAverageSourcePitch(v.AsDouble())
			}).
			Build(),

		// Changing the lock only selects the branch later edits take
		param.Choice(paramid.Lock, "Lock", pitch.HoldSource.String(), pitch.HoldShift.String()).
			ShortName("Loc").
			Flags(param.IsList).
			Build(),

		param.GainParameter(paramid.InputGain, "InputGain", -60, 20).
			ShortName("Gain/In").
			OnApply(func(p param.Processor, v param.Value) error {
				return p.SetInputGain(v.AsDouble())
			}).
			Build(),

		param.GainParameter(paramid.OutputGain, "OutputGain", -60, 20).
			ShortName("Gain/Out").
			OnApply(func(p param.Processor, v param.Value) error {
				return p.SetOutputGain(v.AsDouble())
			}).
			Build(),

		param.New(paramid.IntonationIntensity, "IntonationIntensity").
			Range(-1, 3).
			Default(1).
			Steps(40).
			ShortName("Inton").
			OnApply(func(p param.Processor, v param.Value) error {
				return p.SetIntonationIntensity(v.AsDouble())
			}).
			Build(),

		param.New(paramid.PitchCorrection, "PitchCorrection").
			Range(0, 1).
			Default(0).
			Steps(10).
			ShortName("PitCor").
			OnApply(func(p param.Processor, v param.Value) error {
				return p.SetPitchCorrection(v.AsDouble())
			}).
			Build(),

		param.Choice(paramid.PitchCorrectionType, "PitchCorrectionType", "Hard 0", "Hard 1").
			ShortName("CorTyp").
			OutOfRange(param.InvalidPitchCorrectionType).
			OnApply(func(p param.Processor, v param.Value) error {
				return p.SetPitchCorrectionType(v.AsInt())
			}).
			Build(),

		param.New(paramid.MergedVoiceIndex, "MergedVoiceIndex").
			Range(0, paramid.MaxVoices).
			Default(paramid.MaxVoices).
			Steps(paramid.MaxVoices).
			ShortName("MrgID").
			ReadOnly().
			Hidden().
			Build(),
	)

	for i := range paramid.MaxVoices {
		b.Add(param.PitchParameter(paramid.AverageTargetPitch(i), fmt.Sprintf("Speaker %d", i), 60).
			ShortName("TgtPit").
			ReadOnly().
			Hidden().
			Build())
	}
	for i := range paramid.MaxVoices {
		b.Add(param.WeightParameter(paramid.MergeWeight(i), fmt.Sprintf("Voice %d's Weight", i)).
			ShortName("VcWght").
			OnApply(func(p param.Processor, v param.Value) error {
				return p.SetSpeakerMergeWeight(i, v.AsDouble())
			}).
			Build())
	}
	for i := range paramid.MaxVoices {
		b.Add(param.TextParameter(paramid.MergeLabel(i), fmt.Sprintf("Voice %d's Label", i)).
			ShortName("VcLbl").
			ReadOnly().
			Build())
	}

	return b.Build()
}
