package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/vcparam/internal/cli"
)

const testModel = `[model]
version = "2.0.0-beta.1"
name = "Test"
description = ""

[voice.0]
name = "Alice"
description = ""
average_pitch = 55.0
[voice.0.portrait]
path = ""
description = ""

[voice.1]
name = "Bob"
description = ""
average_pitch = 65.0
[voice.1.portrait]
path = ""
description = ""
`

// runCLI runs the tool against a temporary preset database
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	args = append([]string{"-preset-db", filepath.Join(dir, "presets.db")}, args...)
	err := run(context.Background(), &out, &logs, args)
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)
	return exitErr.Code
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, &out, []string{"-h"}))
	assert.Contains(t, out.String(), "Usage:")

	out.Reset()
	require.NoError(t, run(context.Background(), &out, &out, nil))
	assert.Contains(t, out.String(), "Commands:")
}

func TestRunBadInput(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "-nope")
	assert.Equal(t, 2, exitCode(t, err))

	_, err = runCLI(t, dir, "frobnicate")
	assert.Equal(t, 2, exitCode(t, err))

	_, err = runCLI(t, dir, "-log-level", "loud", "params")
	assert.Equal(t, 2, exitCode(t, err))

	_, err = runCLI(t, dir, "defaults")
	assert.Equal(t, 2, exitCode(t, err))
}

func TestRunParams(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "params")
	require.NoError(t, err)
	assert.Contains(t, out, "PitchShift")
	assert.Contains(t, out, "Voice 3's Weight")
	assert.NotContains(t, out, "MergedVoiceIndex")

	out, err = runCLI(t, t.TempDir(), "params", "-all")
	require.NoError(t, err)
	assert.Contains(t, out, "MergedVoiceIndex")
}

func TestRunDefaultsAndDump(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "default.vcs")

	_, err := runCLI(t, dir, "defaults", "-o", snap)
	require.NoError(t, err)

	out, err := runCLI(t, dir, "dump", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "parameters:")
	assert.Contains(t, out, "name: PitchShift")

	out, err = runCLI(t, dir, "dump", "-changed", snap)
	require.NoError(t, err)
	assert.NotContains(t, out, "PitchShift")
}

func TestRunEdit(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "edited.vcs")

	out, err := runCLI(t, dir, "edit", "-out", snap, "PitchShift=3")
	require.NoError(t, err)
	assert.Contains(t, out, "PitchShift = +3.00 st")
	assert.Contains(t, out, "AverageSourcePitch -> 57.00 (A3)")

	out, err = runCLI(t, dir, "dump", "-changed", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "name: PitchShift")
	assert.Contains(t, out, "name: AverageSourcePitch")

	_, err = runCLI(t, dir, "edit", "-in", snap, "Voice=300")
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "speaker id out of range")

	_, err = runCLI(t, dir, "edit", "-in", snap, "Bogus=1")
	assert.Equal(t, 2, exitCode(t, err))
}

func TestRunEditModel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.toml"), []byte(testModel), 0o600))
	cfgPath := filepath.Join(dir, "vcstate.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("model_dir: "+dir+"\n"), 0o600))
	snap := filepath.Join(dir, "model.vcs")

	out, err := runCLI(t, dir, "-config", cfgPath, "edit", "-out", snap, "Model=model.toml", "Voice=1")
	require.NoError(t, err)
	assert.Contains(t, out, "Model = "+filepath.Join(dir, "model.toml"))
	assert.NotContains(t, out, "Unknown model version")
	assert.Contains(t, out, "Voice 0's Label -> \"Alice\"")
	assert.Contains(t, out, "Voice = ID 1")

	_, err = runCLI(t, dir, "edit", "-in", snap, "Model=missing.toml")
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "Failed to load model")
}

func TestRunPresets(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "a.vcs")
	restored := filepath.Join(dir, "b.vcs")

	_, err := runCLI(t, dir, "edit", "-out", snap, "OutputGain=-6")
	require.NoError(t, err)

	_, err = runCLI(t, dir, "preset", "save", "-in", snap, "quiet")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "preset", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "quiet")

	_, err = runCLI(t, dir, "preset", "load", "-out", restored, "quiet")
	require.NoError(t, err)
	want, err := os.ReadFile(snap)
	require.NoError(t, err)
	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = runCLI(t, dir, "preset", "delete", "quiet")
	require.NoError(t, err)

	_, err = runCLI(t, dir, "preset", "load", "-out", restored, "quiet")
	assert.Error(t, err)
}
