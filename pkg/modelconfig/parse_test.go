package modelconfig

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/vcparam/pkg/framework/param"
	"github.com/justyntemme/vcparam/pkg/paramid"
)

func TestParseFile(t *testing.T) {
	path := writeFile(t, modelTOML("2.0.0-beta.1",
		voiceTOML(0, "Alice", 55),
		voiceTOML(1, "Bob", 65),
	))

	cfg, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Test Model", cfg.Model.Name)
	assert.Equal(t, VersionBeta1, cfg.Model.VersionNumber())
	assert.Equal(t, "Alice", cfg.Voices[0].Name)
	assert.Equal(t, 65.0, cfg.Voices[1].AveragePitch)
	assert.Equal(t, "1.png", cfg.Voices[1].Portrait.Path)
	assert.True(t, cfg.Voices[2].IsEmpty())
	assert.Equal(t, 2, cfg.FirstEmptyVoice())
	assert.Equal(t, 2, cfg.PopulatedVoices())
}

func TestVersionNumber(t *testing.T) {
	tests := []struct {
		version string
		want    int
	}{
		{"2.0.0-alpha.2", VersionAlpha2},
		{"2.0.0-beta.1", VersionBeta1},
		{"2.0.0-rc.1", VersionUnknown},
		{"", VersionUnknown},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, Model{Version: test.version}.VersionNumber(), test.version)
	}
}

func TestFirstEmptyVoiceAllPopulated(t *testing.T) {
	var cfg Config
	for i := range cfg.Voices {
		cfg.Voices[i].Name = "v"
	}
	assert.Equal(t, paramid.MaxVoices, cfg.FirstEmptyVoice())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want param.ErrorCode
	}{
		{
			name: "Syntax",
			body: "[model\nversion = ",
			want: param.ConfigSyntaxError,
		},
		{
			name: "MissingModelField",
			body: "[model]\nversion = \"2.0.0-beta.1\"\n" + voiceTOML(0, "A", 50),
			want: param.UnknownError,
		},
		{
			name: "MissingVoiceTable",
			body: modelTOML("2.0.0-beta.1"),
			want: param.UnknownError,
		},
		{
			name: "MissingVoiceField",
			body: modelTOML("2.0.0-beta.1") + "\n[voice.0]\nname = \"A\"\n",
			want: param.UnknownError,
		},
		{
			name: "WrongType",
			body: modelTOML("2.0.0-beta.1", strings.Replace(voiceTOML(0, "A", 50), "average_pitch = 50.0", `average_pitch = "high"`, 1)),
			want: param.UnknownError,
		},
		{
			name: "VoiceKeyOutOfRange",
			body: modelTOML("2.0.0-beta.1", voiceTOML(256, "A", 50)),
			want: param.UnknownError,
		},
		{
			name: "VoiceKeyNotANumber",
			body: modelTOML("2.0.0-beta.1", strings.ReplaceAll(voiceTOML(0, "A", 50), "voice.0", "voice.first")),
			want: param.UnknownError,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(test.body))
			require.Error(t, err)
			assert.Equal(t, test.want, param.CodeOf(err), "error: %v", err)
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, param.FileOpenError), "got %v", err)
}

func TestParseReader(t *testing.T) {
	cfg, err := Parse(strings.NewReader(modelTOML("2.0.0-alpha.2", voiceTOML(3, "Carol", 48))))
	require.NoError(t, err)
	assert.Equal(t, "Carol", cfg.Voices[3].Name)
	assert.Equal(t, 0, cfg.FirstEmptyVoice())
}

func TestLoader(t *testing.T) {
	path := writeFile(t, modelTOML("2.0.0-beta.1", voiceTOML(0, "Alice", 55)))

	var (
		mu    sync.Mutex
		calls int
	)
	l := &Loader{parse: func(p string) (*Config, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return ParseFile(p)
	}}

	var wg sync.WaitGroup
	results := make([]*Config, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg, err := l.Load(path)
			assert.NoError(t, err)
			results[i] = cfg
		}()
	}
	wg.Wait()

	for _, cfg := range results {
		require.NotNil(t, cfg)
		assert.Equal(t, "Alice", cfg.Voices[0].Name)
	}
	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, calls, 1)
	assert.LessOrEqual(t, calls, len(results))
}

func TestLoaderPropagatesErrors(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, param.FileOpenError, param.CodeOf(err))
}
