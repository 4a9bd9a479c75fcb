package param

import (
	"testing"
)

func TestGainParameter(t *testing.T) {
	d := GainParameter(6, "OutputGain", -60, 20).Build()

	t.Run("Formatter", func(t *testing.T) {
		tests := []struct {
			db       float64
			expected string
		}{
			{-60, "-∞ dB"},
			{0, "0.0 dB"},
			{6, "6.0 dB"},
			{-6, "-6.0 dB"},
		}
		for _, test := range tests {
			if got := d.FormatValue(Double(test.db)); got != test.expected {
				t.Errorf("FormatValue(%f dB) = %s, want %s", test.db, got, test.expected)
			}
		}
	})

	t.Run("Parser", func(t *testing.T) {
		tests := []struct {
			input    string
			expected float64
		}{
			{"-inf dB", -60},
			{"∞", -60},
			{"-6 dB", -6},
			{"3.5db", 3.5},
			{"12", 12},
		}
		for _, test := range tests {
			v, err := d.ParseValue(test.input)
			if err != nil {
				t.Errorf("ParseValue(%q) error: %v", test.input, err)
				continue
			}
			if v.AsDouble() != test.expected {
				t.Errorf("ParseValue(%q) = %f, want %f", test.input, v.AsDouble(), test.expected)
			}
		}
	})
}

func TestSemitoneParameter(t *testing.T) {
	d := SemitoneParameter(3, "PitchShift", 24, 8).Build()

	if d.Min != -24 || d.Max != 24 {
		t.Errorf("Expected range [-24, 24], got [%f, %f]", d.Min, d.Max)
	}
	if d.StepCount() != 384 {
		t.Errorf("Expected 384 steps, got %d", d.StepCount())
	}
	if got := d.FormatValue(Double(0.001)); got != "0.00 st" {
		t.Errorf("Expected '0.00 st', got %q", got)
	}

	for _, input := range []string{"+3", "3 st", "3 semitones", " 3st "} {
		v, err := d.ParseValue(input)
		if err != nil || v.AsDouble() != 3 {
			t.Errorf("ParseValue(%q) = %v (%v), want 3", input, v, err)
		}
	}
	if _, err := d.ParseValue("lots"); err == nil {
		t.Error("Expected error for non-numeric input")
	}
}

func TestPitchParameter(t *testing.T) {
	d := PitchParameter(4, "AverageSourcePitch", 52).Build()

	if d.StepCount() != 1024 {
		t.Errorf("Expected 1024 steps, got %d", d.StepCount())
	}

	tests := []struct {
		input    string
		expected float64
	}{
		{"C4", 60},
		{"c#4", 61},
		{"Bb2", 46},
		{"C-1", 0},
		{"55.5", 55.5},
	}
	for _, test := range tests {
		v, err := d.ParseValue(test.input)
		if err != nil {
			t.Errorf("ParseValue(%q) error: %v", test.input, err)
			continue
		}
		if v.AsDouble() != test.expected {
			t.Errorf("ParseValue(%q) = %f, want %f", test.input, v.AsDouble(), test.expected)
		}
	}

	for _, input := range []string{"H3", "C", "Cx"} {
		if _, err := d.ParseValue(input); err == nil {
			t.Errorf("Expected error for %q", input)
		}
	}
}

func TestWeightParameter(t *testing.T) {
	d := WeightParameter(2000, "Voice 0's Weight").Build()

	if d.DefaultValue().AsDouble() != 0 {
		t.Errorf("Expected default 0, got %v", d.DefaultValue())
	}
	v, err := d.ParseValue("0.3")
	if err != nil || v.AsDouble() != 0.3 {
		t.Errorf("Expected bare number as fraction, got %v (%v)", v, err)
	}
}

func TestIndexedLabels(t *testing.T) {
	labels := IndexedLabels("ID ", 3)
	expected := []string{"ID 0", "ID 1", "ID 2"}
	if len(labels) != len(expected) {
		t.Fatalf("Expected %d labels, got %d", len(expected), len(labels))
	}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Errorf("label %d: expected %q, got %q", i, expected[i], labels[i])
		}
	}
}
