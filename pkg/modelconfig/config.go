// Package modelconfig reads the TOML document that describes a voice
// conversion model and its voices.
//
//	[model]
//	version = "2.0.0-beta.1"
//	name = "..."
//	description = "..."
//
//	[voice.0]
//	name = "..."
//	description = "..."
//	average_pitch = 55.0
//	[voice.0.portrait]
//	path = "0.png"
//	description = "..."
package modelconfig

import (
	"github.com/justyntemme/vcparam/pkg/paramid"
)

// Known model format versions
const (
	VersionAlpha2  = 0
	VersionBeta1   = 1
	VersionUnknown = -1
)

// Config is a parsed model description
type Config struct {
	Model  Model
	Voices [paramid.MaxVoices]Voice
}

// Model is the [model] table
type Model struct {
	Version     string
	Name        string
	Description string
}

// VersionNumber maps the version string to an internal format number,
// VersionUnknown if it is not recognized.
func (m Model) VersionNumber() int {
	switch m.Version {
	case "2.0.0-alpha.2":
		return VersionAlpha2
	case "2.0.0-beta.1":
		return VersionBeta1
	default:
		return VersionUnknown
	}
}

// Voice is one [voice.N] table. Slots absent from the document are empty.
type Voice struct {
	Name         string
	Description  string
	AveragePitch float64
	Portrait     Portrait
}

// Portrait references the voice's picture
type Portrait struct {
	Path        string
	Description string
}

// IsEmpty reports whether every text field of the voice is blank
func (v Voice) IsEmpty() bool {
	return v.Name == "" && v.Description == "" &&
		v.Portrait.Path == "" && v.Portrait.Description == ""
}

// FirstEmptyVoice returns the index of the first empty slot, or
// paramid.MaxVoices if every slot is populated.
func (c *Config) FirstEmptyVoice() int {
	for i := range c.Voices {
		if c.Voices[i].IsEmpty() {
			return i
		}
	}
	return paramid.MaxVoices
}

// PopulatedVoices counts the leading populated slots
func (c *Config) PopulatedVoices() int {
	return c.FirstEmptyVoice()
}
