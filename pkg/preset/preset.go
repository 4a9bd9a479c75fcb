// Package preset stores named parameter snapshots. A preset's data is the
// byte stream written by the state codec, so anything that can restore a
// snapshot can restore a preset.
package preset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when no preset has the requested name
var ErrNotFound = errors.New("preset: not found")

// Preset is one named snapshot
type Preset struct {
	Name    string
	Data    []byte
	Updated time.Time
}

// Info describes a preset without its data
type Info struct {
	Name    string
	Size    int
	Updated time.Time
}

// Store persists presets. Saving an existing name replaces it.
type Store interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) (Preset, error)
	List(ctx context.Context) ([]Info, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// ValidateName rejects names that are blank or padded with whitespace
func ValidateName(name string) error {
	if name == "" {
		return errors.New("preset: name is required")
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("preset: name %q has leading or trailing whitespace", name)
	}
	return nil
}
