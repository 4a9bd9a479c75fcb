package modelconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/justyntemme/vcparam/pkg/framework/param"
	"github.com/justyntemme/vcparam/pkg/paramid"
)

type document struct {
	Model struct {
		Version     string `toml:"version"`
		Name        string `toml:"name"`
		Description string `toml:"description"`
	} `toml:"model"`
	Voice map[string]voiceDocument `toml:"voice"`
}

type voiceDocument struct {
	Name         string  `toml:"name"`
	Description  string  `toml:"description"`
	AveragePitch float64 `toml:"average_pitch"`
	Portrait     struct {
		Path        string `toml:"path"`
		Description string `toml:"description"`
	} `toml:"portrait"`
}

// ParseFile reads and parses the document at path.
//
// Errors carry a param.ErrorCode: FileOpenError when the file cannot be
// read, ConfigSyntaxError when it is not valid TOML and UnknownError when
// it is valid TOML but not a model description.
func ParseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modelconfig: open %q: %w: %w", path, param.FileOpenError, err)
	}
	cfg, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("modelconfig: %q: %w", path, err)
	}
	return cfg, nil
}

// Parse reads a document from r
func Parse(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("modelconfig: read: %w: %w", param.FileOpenError, err)
	}
	return ParseBytes(data)
}

// ParseBytes parses an in-memory document
func ParseBytes(data []byte) (*Config, error) {
	// Syntax first, so malformed TOML is told apart from a valid document
	// with the wrong shape.
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("decode toml: %w: %w", param.ConfigSyntaxError, err)
	}

	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("decode model: %w: %w", param.UnknownError, err)
	}
	if err := checkRequired(md); err != nil {
		return nil, fmt.Errorf("%w: %w", param.UnknownError, err)
	}

	cfg := &Config{
		Model: Model{
			Version:     doc.Model.Version,
			Name:        doc.Model.Name,
			Description: doc.Model.Description,
		},
	}
	for key, v := range doc.Voice {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("voice key %q: %w: %w", key, param.UnknownError, err)
		}
		if id < 0 || id >= paramid.MaxVoices {
			return nil, fmt.Errorf("voice key %d: speaker id out of range: %w", id, param.UnknownError)
		}
		cfg.Voices[id] = Voice{
			Name:         v.Name,
			Description:  v.Description,
			AveragePitch: v.AveragePitch,
			Portrait: Portrait{
				Path:        v.Portrait.Path,
				Description: v.Portrait.Description,
			},
		}
	}
	return cfg, nil
}

func checkRequired(md toml.MetaData) error {
	var errs []error
	for _, key := range []string{"version", "name", "description"} {
		if !md.IsDefined("model", key) {
			errs = append(errs, fmt.Errorf("model.%s is required", key))
		}
	}
	if !md.IsDefined("voice") {
		errs = append(errs, errors.New("voice table is required"))
		return errors.Join(errs...)
	}
	for _, key := range md.Keys() {
		// Each voice.<n> table must define all of its fields
		if len(key) != 2 || key[0] != "voice" {
			continue
		}
		for _, field := range [][]string{{"name"}, {"description"}, {"average_pitch"}, {"portrait", "path"}, {"portrait", "description"}} {
			if !md.IsDefined(append([]string{"voice", key[1]}, field...)...) {
				errs = append(errs, fmt.Errorf("voice.%s.%s is required", key[1], joinKey(field)))
			}
		}
	}
	return errors.Join(errs...)
}

func joinKey(k []string) string {
	if len(k) == 1 {
		return k[0]
	}
	return k[0] + "." + k[1]
}
