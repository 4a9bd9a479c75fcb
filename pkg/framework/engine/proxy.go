package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/justyntemme/vcparam/internal/observe"
	"github.com/justyntemme/vcparam/pkg/framework/param"
	"github.com/justyntemme/vcparam/pkg/modelconfig"
	"github.com/justyntemme/vcparam/pkg/paramid"
)

type loadedModel struct {
	path   string
	config *modelconfig.Config
	core   Core
}

// Proxy implements param.Processor. Setters store into atomics and never
// block, so they may be called from any thread; Process runs on the audio
// thread and reads the model pointer once per block.
type Proxy struct {
	loader  *modelconfig.Loader
	factory Factory
	logger  *slog.Logger
	metrics *observe.Metrics

	mu    sync.Mutex // serializes model swaps
	model atomic.Pointer[loadedModel]

	sampleRate     atomicFloat
	speaker        atomic.Int32
	formant        atomicFloat
	pitchShift     atomicFloat
	inputGain      atomicFloat
	outputGain     atomicFloat
	sourcePitch    atomicFloat
	intonation     atomicFloat
	correction     atomicFloat
	correctionType atomic.Int32
	weights        [paramid.MaxVoices]atomicFloat

	// audio thread only
	inRamp  *GainRamp
	outRamp *GainRamp
}

// Option configures a Proxy
type Option func(*Proxy)

// WithLoader sets the model document loader. Defaults to
// modelconfig.DefaultLoader.
func WithLoader(l *modelconfig.Loader) Option {
	return func(p *Proxy) {
		p.loader = l
	}
}

// WithFactory sets the core factory. Defaults to DefaultFactory.
func WithFactory(f Factory) Option {
	return func(p *Proxy) {
		p.factory = f
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Proxy) {
		p.logger = l
	}
}

// WithMetrics sets the metric instruments
func WithMetrics(m *observe.Metrics) Option {
	return func(p *Proxy) {
		p.metrics = m
	}
}

// NewProxy creates an engine with no model loaded
func NewProxy(opts ...Option) *Proxy {
	p := &Proxy{
		loader:  modelconfig.DefaultLoader,
		factory: DefaultFactory,
		logger:  slog.Default(),
		inRamp:  NewGainRamp(DefaultDBPerMs),
		outRamp: NewGainRamp(DefaultDBPerMs),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetSampleRate must not be called concurrently with Process
func (p *Proxy) SetSampleRate(rate float64) {
	p.sampleRate.Store(rate)
	p.inRamp.SetSampleRate(rate)
	p.outRamp.SetSampleRate(rate)
}

// SampleRate returns the configured sample rate
func (p *Proxy) SampleRate() float64 {
	return p.sampleRate.Load()
}

// LoadModel parses the document at path and swaps in a core for its
// format version. On error the previous model stays loaded. A document
// with an unknown version unloads the engine.
func (p *Proxy) LoadModel(path string) (err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = param.CodeOf(err).String()
		}
		p.metrics.RecordModelLoad(context.Background(), result, time.Since(start))
	}()

	p.mu.Lock()
	defer p.mu.Unlock()

	cfg, err := p.loader.Load(path)
	if err != nil {
		p.logger.Error("failed to load model", "path", path, "error", err)
		return err
	}
	core, err := p.factory(cfg, path)
	if err != nil {
		p.logger.Error("failed to create model core", "path", path, "version", cfg.Model.Version, "error", err)
		return fmt.Errorf("create core: %w", err)
	}
	if core == nil {
		p.model.Store(nil)
		p.logger.Warn("unknown model version, engine unloaded", "path", path, "version", cfg.Model.Version)
		return nil
	}

	p.model.Store(&loadedModel{
		path:   path,
		config: cfg,
		core:   core,
	})
	p.logger.Info("model loaded",
		"path", path,
		"name", cfg.Model.Name,
		"version", cfg.Model.Version,
	)
	return nil
}

// Loaded reports whether a model is loaded
func (p *Proxy) Loaded() bool {
	return p.model.Load() != nil
}

// ModelPath returns the path of the loaded model, or "" if none
func (p *Proxy) ModelPath() string {
	if m := p.model.Load(); m != nil {
		return m.path
	}
	return ""
}

// Version returns the loaded core's format version, or
// modelconfig.VersionUnknown if none is loaded
func (p *Proxy) Version() int {
	if m := p.model.Load(); m != nil {
		return m.core.Version()
	}
	return modelconfig.VersionUnknown
}

// Process converts one block. Without a model the output is silent.
// in and out may alias.
func (p *Proxy) Process(in, out []float32) error {
	m := p.model.Load()
	if m == nil {
		clear(out)
		return nil
	}
	if !p.inRamp.IsReady() || !p.outRamp.IsReady() {
		clear(out)
		return param.GainNotReady
	}

	s := p.settings()
	p.inRamp.SetTarget(p.inputGain.Load())
	p.outRamp.SetTarget(p.outputGain.Load())

	n := min(len(in), len(out))
	p.inRamp.Process(in[:n], out[:n])
	if err := m.core.Process(out[:n], out[:n], &s); err != nil {
		clear(out)
		return err
	}
	p.outRamp.Process(out[:n], out[:n])
	clear(out[n:])
	return nil
}

func (p *Proxy) settings() Settings {
	return Settings{
		SampleRate:          p.sampleRate.Load(),
		TargetSpeaker:       int(p.speaker.Load()),
		FormantShift:        p.formant.Load(),
		PitchShift:          p.pitchShift.Load(),
		AverageSourcePitch:  p.sourcePitch.Load(),
		IntonationIntensity: p.intonation.Load(),
		PitchCorrection:     p.correction.Load(),
		PitchCorrectionType: int(p.correctionType.Load()),
		weights:             &p.weights,
	}
}

// Settings returns a snapshot of the current settings
func (p *Proxy) Settings() Settings {
	return p.settings()
}

func (p *Proxy) SetTargetSpeaker(index int) error {
	if index < 0 || index >= paramid.MaxVoices {
		return param.SpeakerIDOutOfRange
	}
	p.speaker.Store(int32(index))
	return nil
}

func (p *Proxy) SetFormantShift(semitones float64) error {
	p.formant.Store(semitones)
	return nil
}

func (p *Proxy) SetPitchShift(semitones float64) error {
	p.pitchShift.Store(semitones)
	return nil
}

func (p *Proxy) SetInputGain(db float64) error {
	p.inputGain.Store(db)
	return nil
}

func (p *Proxy) SetOutputGain(db float64) error {
	p.outputGain.Store(db)
	return nil
}

func (p *Proxy) SetAverageSourcePitch(pitch float64) error {
	p.sourcePitch.Store(pitch)
	return nil
}

func (p *Proxy) SetIntonationIntensity(intensity float64) error {
	p.intonation.Store(intensity)
	return nil
}

func (p *Proxy) SetPitchCorrection(amount float64) error {
	p.correction.Store(amount)
	return nil
}

func (p *Proxy) SetPitchCorrectionType(kind int) error {
	if kind != 0 && kind != 1 {
		return param.InvalidPitchCorrectionType
	}
	p.correctionType.Store(int32(kind))
	return nil
}

func (p *Proxy) SetSpeakerMergeWeight(index int, weight float64) error {
	if index < 0 || index >= paramid.MaxVoices {
		return param.SpeakerIDOutOfRange
	}
	p.weights[index].Store(weight)
	return nil
}

var _ param.Processor = (*Proxy)(nil)
