package param

import (
	"fmt"
	"strings"
)

// Common parameter helpers

// SemitoneParameter creates a symmetric shift parameter in semitones
func SemitoneParameter(id ID, name string, maxAbs float64, stepsPerSemitone int32) *Builder {
	return New(id, name).
		Range(-maxAbs, maxAbs).
		Default(0).
		Unit("semitones").
		Steps(int32(2*maxAbs) * stepsPerSemitone).
		Formatter(SemitoneFormatter, SemitoneParser)
}

// GainParameter creates a gain parameter in dB
func GainParameter(id ID, name string, minDB, maxDB float64) *Builder {
	return New(id, name).
		Range(minDB, maxDB).
		Default(0).
		Unit("dB").
		Formatter(func(v float64) string {
			if v <= minDB {
				return "-∞ dB"
			}
			return fmt.Sprintf("%.1f dB", v)
		}, func(s string) (float64, error) {
			if strings.Contains(strings.ToLower(s), "inf") || strings.Contains(s, "∞") {
				return minDB, nil
			}
			return DecibelParser(s)
		})
}

// PitchParameter creates an absolute pitch parameter on the MIDI note
// scale [0, 128] with eight steps per semitone
func PitchParameter(id ID, name string, defaultNote float64) *Builder {
	return New(id, name).
		Range(0, 128).
		Default(defaultNote).
		Steps(128*8).
		Formatter(NoteFormatter, NoteParser)
}

// WeightParameter creates a blend weight parameter (0-1)
func WeightParameter(id ID, name string) *Builder {
	return New(id, name).
		Range(0, 1).
		Default(0).
		Steps(100).
		Formatter(PercentFormatter, PercentParser)
}

// IndexedLabels returns "<prefix>0" ... "<prefix>n-1"
func IndexedLabels(prefix string, n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return labels
}

// Helper function to parse float with error handling
func parseFloat(s string) (float64, error) {
	var value float64
	_, err := fmt.Sscanf(s, "%f", &value)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", s)
	}
	return value, nil
}
