package modelconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// voiceTOML renders one [voice.N] table
func voiceTOML(id int, name string, pitch float64) string {
	return fmt.Sprintf(`
[voice.%d]
name = %q
description = "voice %d"
average_pitch = %.1f
[voice.%d.portrait]
path = "%d.png"
description = "portrait %d"
`, id, name, id, pitch, id, id, id)
}

// modelTOML renders a document with the given version and voice tables
func modelTOML(version string, voices ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[model]\nversion = %q\nname = \"Test Model\"\ndescription = \"for tests\"\n", version)
	for _, v := range voices {
		b.WriteString(v)
	}
	return b.String()
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
