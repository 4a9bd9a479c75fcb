package vc_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type testVoice struct {
	name  string
	pitch float64
}

// writeModel writes a model document with voices at indices 0..n-1
func writeModel(t *testing.T, version string, voices ...testVoice) string {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "[model]\nversion = %q\nname = \"Test\"\ndescription = \"test model\"\n", version)
	if len(voices) == 0 {
		b.WriteString("\n[voice]\n")
	}
	for i, v := range voices {
		fmt.Fprintf(&b, "\n[voice.%d]\nname = %q\ndescription = \"\"\naverage_pitch = %f\n[voice.%d.portrait]\npath = \"\"\ndescription = \"\"\n",
			i, v.name, v.pitch, i)
	}
	path := filepath.Join(t.TempDir(), "model.toml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func writeBody(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
