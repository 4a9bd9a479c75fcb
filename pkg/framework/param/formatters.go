package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Common parameter formatters and parsers

// DecibelFormatter formats dB values
func DecibelFormatter(db float64) string {
	if db <= -60 {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser parses dB strings
func DecibelParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "dB")
	str = strings.TrimSuffix(strings.TrimSpace(str), "db")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// PercentFormatter formats a 0-1 fraction as a percentage
func PercentFormatter(value float64) string {
	return fmt.Sprintf("%.0f%%", value*100)
}

// PercentParser parses percentage strings back to a 0-1 fraction.
// A bare number without '%' is taken as a fraction.
func PercentParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if strings.HasSuffix(str, "%") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(str, "%")), 64)
		if err != nil {
			return 0, err
		}
		return v / 100, nil
	}
	return strconv.ParseFloat(str, 64)
}

// SemitoneFormatter formats a shift with an explicit sign
func SemitoneFormatter(st float64) string {
	if math.Abs(st) < 0.005 {
		return "0.00 st"
	}
	return fmt.Sprintf("%+.2f st", st)
}

// SemitoneParser parses "+3", "-1.5 st" or "2 semitones"
func SemitoneParser(str string) (float64, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	str = strings.TrimSuffix(str, "semitones")
	str = strings.TrimSuffix(str, "st")
	return parseFloat(strings.TrimSpace(str))
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteFormatter formats a fractional MIDI note number with its nearest name
func NoteFormatter(noteNumber float64) string {
	nearest := int(math.Round(noteNumber))
	note := ((nearest % 12) + 12) % 12
	octave := int(math.Floor(float64(nearest)/12)) - 1
	return fmt.Sprintf("%.2f (%s%d)", noteNumber, noteNames[note], octave)
}

// NoteParser parses a note name ("E3", "Bb2") or a plain MIDI number
func NoteParser(str string) (float64, error) {
	str = strings.ToUpper(strings.TrimSpace(str))
	if v, err := strconv.ParseFloat(str, 64); err == nil {
		return v, nil
	}

	noteMap := map[string]int{
		"C": 0, "B#": 0,
		"C#": 1, "DB": 1,
		"D": 2,
		"D#": 3, "EB": 3,
		"E": 4, "FB": 4,
		"F": 5, "E#": 5,
		"F#": 6, "GB": 6,
		"G": 7,
		"G#": 8, "AB": 8,
		"A": 9,
		"A#": 10, "BB": 10,
		"B": 11, "CB": 11,
	}

	// Find where the octave number starts
	octaveStart := -1
	for i, ch := range str {
		if ch >= '0' && ch <= '9' || ch == '-' {
			octaveStart = i
			break
		}
	}
	if octaveStart <= 0 {
		return 0, fmt.Errorf("no octave number found in note: %s", str)
	}

	noteOffset, ok := noteMap[str[:octaveStart]]
	if !ok {
		return 0, fmt.Errorf("unknown note name: %s", str[:octaveStart])
	}
	octave, err := strconv.Atoi(str[octaveStart:])
	if err != nil {
		return 0, fmt.Errorf("invalid octave number: %s", str[octaveStart:])
	}
	return float64((octave+1)*12 + noteOffset), nil
}
