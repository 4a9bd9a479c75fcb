package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromReaderDefaults(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromReaderOverrides(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(`
log_level: debug
log_format: json
lock: PitchShift
preset_db: /tmp/p.db
model_dir: models
`))
	require.NoError(t, err)
	assert.Equal(t, LogDebug, cfg.LogLevel)
	assert.Equal(t, FormatJSON, cfg.LogFormat)
	assert.Equal(t, LockPitchShift, cfg.Lock)
	assert.Equal(t, 1, cfg.Lock.Index())
	assert.Equal(t, "/tmp/p.db", cfg.PresetDB)
	assert.Equal(t, "models", cfg.ModelDir)
}

func TestLoadFromReaderUnknownField(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("colour: blue\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := &Config{LogLevel: "loud", LogFormat: "xml", Lock: "Voice"}
	err := Validate(cfg)
	require.Error(t, err)
	for _, want := range []string{"log_level", "log_format", "lock", "preset_db"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vcstate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LogWarn, cfg.LogLevel)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveModel(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "a.toml", cfg.ResolveModel("a.toml"))

	cfg.ModelDir = "/models"
	assert.Equal(t, filepath.Join("/models", "a.toml"), cfg.ResolveModel("a.toml"))
	assert.Equal(t, "/abs/a.toml", cfg.ResolveModel("/abs/a.toml"))
	assert.Equal(t, "", cfg.ResolveModel(""))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = FormatJSON
	cfg.LogLevel = LogWarn

	l := cfg.NewLogger(&buf)
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.True(t, l.Enabled(t.Context(), slog.LevelError))
}
