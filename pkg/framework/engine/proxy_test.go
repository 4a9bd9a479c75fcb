package engine_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"golang.org/x/sync/errgroup"

	"github.com/justyntemme/vcparam/internal/observe"
	"github.com/justyntemme/vcparam/pkg/framework/engine"
	"github.com/justyntemme/vcparam/pkg/framework/param"
	"github.com/justyntemme/vcparam/pkg/modelconfig"
)

func writeModel(t *testing.T, version string, voices int) string {
	t.Helper()
	body := fmt.Sprintf("[model]\nversion = %q\nname = \"Test\"\ndescription = \"\"\n\n[voice]\n", version)
	for i := range voices {
		body += fmt.Sprintf("[voice.%d]\nname = \"v%d\"\ndescription = \"\"\naverage_pitch = 60.0\n[voice.%d.portrait]\npath = \"\"\ndescription = \"\"\n", i, i, i)
	}
	path := filepath.Join(t.TempDir(), "model.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func ones(n int) []float32 {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = 1
	}
	return buf
}

func TestProxySilentWithoutModel(t *testing.T) {
	p := engine.NewProxy()
	p.SetSampleRate(48000)

	out := ones(8)
	require.NoError(t, p.Process(ones(8), out))
	assert.Equal(t, make([]float32, 8), out)
	assert.False(t, p.Loaded())
	assert.Equal(t, modelconfig.VersionUnknown, p.Version())
}

func TestProxyLoadModel(t *testing.T) {
	p := engine.NewProxy(engine.WithLoader(modelconfig.NewLoader()))
	p.SetSampleRate(48000)
	path := writeModel(t, "2.0.0-beta.1", 2)

	require.NoError(t, p.LoadModel(path))
	assert.True(t, p.Loaded())
	assert.Equal(t, path, p.ModelPath())
	assert.Equal(t, modelconfig.VersionBeta1, p.Version())

	out := make([]float32, 4)
	require.NoError(t, p.Process(ones(4), out))
	assert.Equal(t, ones(4), out)
}

func TestProxyLoadFailureKeepsModel(t *testing.T) {
	p := engine.NewProxy()
	path := writeModel(t, "2.0.0-alpha.2", 1)
	require.NoError(t, p.LoadModel(path))

	err := p.LoadModel(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, param.FileOpenError, param.CodeOf(err))
	assert.Equal(t, path, p.ModelPath())
	assert.Equal(t, modelconfig.VersionAlpha2, p.Version())
}

func TestProxyUnknownVersionUnloads(t *testing.T) {
	p := engine.NewProxy()
	require.NoError(t, p.LoadModel(writeModel(t, "2.0.0-beta.1", 1)))

	require.NoError(t, p.LoadModel(writeModel(t, "9.9.9", 1)))
	assert.False(t, p.Loaded())
}

func TestProxyFactoryError(t *testing.T) {
	boom := errors.New("boom")
	p := engine.NewProxy(engine.WithFactory(func(*modelconfig.Config, string) (engine.Core, error) {
		return nil, boom
	}))
	err := p.LoadModel(writeModel(t, "2.0.0-beta.1", 1))
	assert.ErrorIs(t, err, boom)
	assert.False(t, p.Loaded())
}

func TestProxyGainNotReady(t *testing.T) {
	p := engine.NewProxy()
	require.NoError(t, p.LoadModel(writeModel(t, "2.0.0-beta.1", 1)))

	out := ones(4)
	err := p.Process(ones(4), out)
	assert.Equal(t, param.GainNotReady, param.CodeOf(err))
	assert.Equal(t, make([]float32, 4), out)
}

func TestProxySpeakerBeyondModel(t *testing.T) {
	p := engine.NewProxy()
	p.SetSampleRate(48000)
	require.NoError(t, p.LoadModel(writeModel(t, "2.0.0-beta.1", 2)))

	// Voices 0 and 1 plus the merged slot 2
	require.NoError(t, p.SetTargetSpeaker(2))
	require.NoError(t, p.Process(ones(2), make([]float32, 2)))

	require.NoError(t, p.SetTargetSpeaker(3))
	out := ones(2)
	err := p.Process(ones(2), out)
	assert.Equal(t, param.SpeakerIDOutOfRange, param.CodeOf(err))
	assert.Equal(t, make([]float32, 2), out)
}

func TestProxySetters(t *testing.T) {
	p := engine.NewProxy()

	require.NoError(t, p.SetPitchShift(3))
	require.NoError(t, p.SetAverageSourcePitch(57))
	require.NoError(t, p.SetPitchCorrectionType(1))
	require.NoError(t, p.SetSpeakerMergeWeight(9, 0.5))

	s := p.Settings()
	assert.Equal(t, 3.0, s.PitchShift)
	assert.Equal(t, 57.0, s.AverageSourcePitch)
	assert.Equal(t, 1, s.PitchCorrectionType)
	assert.Equal(t, 0.5, s.MergeWeight(9))
	assert.Equal(t, 0.0, s.MergeWeight(-1))

	assert.Equal(t, param.SpeakerIDOutOfRange, param.CodeOf(p.SetTargetSpeaker(256)))
	assert.Equal(t, param.SpeakerIDOutOfRange, param.CodeOf(p.SetSpeakerMergeWeight(256, 1)))
	assert.Equal(t, param.InvalidPitchCorrectionType, param.CodeOf(p.SetPitchCorrectionType(2)))
}

func TestProxyConcurrentSwap(t *testing.T) {
	p := engine.NewProxy()
	p.SetSampleRate(48000)
	a := writeModel(t, "2.0.0-alpha.2", 1)
	b := writeModel(t, "2.0.0-beta.1", 1)

	var g errgroup.Group
	g.Go(func() error {
		for i := range 20 {
			path := a
			if i%2 == 1 {
				path = b
			}
			if err := p.LoadModel(path); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		out := make([]float32, 64)
		for range 200 {
			if err := p.Process(ones(64), out); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())
	assert.True(t, p.Loaded())
	assert.Equal(t, modelconfig.VersionBeta1, p.Version())
}

func TestProxyRecordsModelLoads(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observe.NewMetrics(mp)
	require.NoError(t, err)

	p := engine.NewProxy(engine.WithMetrics(m))
	require.NoError(t, p.LoadModel(writeModel(t, "2.0.0-beta.1", 1)))
	_ = p.LoadModel(filepath.Join(t.TempDir(), "missing.toml"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var loads *metricdata.Metrics
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == "vcparam.model_loads" {
				loads = &sm.Metrics[i]
			}
		}
	}
	require.NotNil(t, loads)
	sum := loads.Data.(metricdata.Sum[int64])
	assert.Len(t, sum.DataPoints, 2, "one series per result")
}
