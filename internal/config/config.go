// Package config loads the YAML configuration of the vcstate tool.
package config

import (
	"io"
	"log/slog"
	"path/filepath"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level converts l to a slog level. Unset means info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat selects the slog handler.
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// IsValid reports whether f is a recognised log format.
func (f LogFormat) IsValid() bool {
	return f == FormatText || f == FormatJSON
}

// Lock names the default lock mode written into fresh snapshots.
type Lock string

const (
	LockSourcePitch Lock = "AverageSourcePitch"
	LockPitchShift  Lock = "PitchShift"
)

// IsValid reports whether k is a recognised lock mode.
func (k Lock) IsValid() bool {
	return k == LockSourcePitch || k == LockPitchShift
}

// Index returns the list index of the lock parameter for k.
func (k Lock) Index() int {
	if k == LockPitchShift {
		return 1
	}
	return 0
}

// Config is the root configuration.
type Config struct {
	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat LogFormat `yaml:"log_format"`

	// Lock is the lock mode of fresh snapshots.
	Lock Lock `yaml:"lock"`

	// PresetDB is the SQLite file holding presets.
	PresetDB string `yaml:"preset_db"`

	// ModelDir resolves relative model paths.
	ModelDir string `yaml:"model_dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:  LogInfo,
		LogFormat: FormatText,
		Lock:      LockSourcePitch,
		PresetDB:  "presets.db",
	}
}

// ResolveModel joins a relative model path onto ModelDir.
func (c *Config) ResolveModel(path string) string {
	if path == "" || c.ModelDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ModelDir, path)
}

// NewLogger builds a logger writing to w with the configured level and format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel.Level()}
	if c.LogFormat == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
