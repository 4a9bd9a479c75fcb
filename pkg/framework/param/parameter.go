package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type selects which descriptor variant is active
type Type uint8

const (
	// NumberType is a continuous or stepped double in [Min, Max]
	NumberType Type = iota
	// ListType is an index into Labels
	ListType
	// TextType is a free string, possibly a file path
	TextType
)

// String returns the type name
func (t Type) String() string {
	switch t {
	case NumberType:
		return "number"
	case ListType:
		return "list"
	case TextType:
		return "text"
	default:
		return "type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Flags for parameters
type Flags uint32

const (
	CanAutomate  Flags = 1 << 0
	IsReadOnly   Flags = 1 << 1
	IsWrapAround Flags = 1 << 2
	IsList       Flags = 1 << 3
	IsHidden     Flags = 1 << 4
)

// Has reports whether all bits of f are set
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// Descriptor is the schema entry for one parameter. Only the fields of the
// variant selected by Type are meaningful.
type Descriptor struct {
	ID        ID
	Type      Type
	Name      string
	ShortName string
	Flags     Flags

	// Number
	Unit          string
	Min           float64
	Max           float64
	Steps         int32
	DefaultNumber float64

	// List
	Labels       []string
	DefaultIndex int
	RangeError   ErrorCode

	// Text
	DefaultText string
	IsFilePath  bool

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)

	control ControlFunc
	apply   ApplyFunc
}

// Kind returns the value tag every value of this parameter carries
func (d *Descriptor) Kind() Kind {
	switch d.Type {
	case NumberType:
		return KindDouble
	case ListType:
		return KindInt
	default:
		return KindText
	}
}

// DefaultValue returns the value a fresh store holds for this parameter
func (d *Descriptor) DefaultValue() Value {
	switch d.Type {
	case NumberType:
		return Double(d.DefaultNumber)
	case ListType:
		return Int(d.DefaultIndex)
	default:
		return Text(d.DefaultText)
	}
}

// StepCount returns the number of discrete steps a host sees, 0 if continuous
func (d *Descriptor) StepCount() int32 {
	switch d.Type {
	case NumberType:
		return d.Steps
	case ListType:
		return int32(len(d.Labels) - 1)
	default:
		return 0
	}
}

// Automatable reports whether hosts may record automation for this parameter
func (d *Descriptor) Automatable() bool {
	return d.Type != TextType && d.Flags.Has(CanAutomate)
}

// Validate checks v against the descriptor's domain. Numbers are clamped
// into [Min, Max]; NaN is rejected. List indices outside the label range
// are rejected with RangeError, or ValueOutOfRange if none is set.
func (d *Descriptor) Validate(v Value) (Value, error) {
	if v.Kind() != d.Kind() {
		return v, fmt.Errorf("%s: got %s: %w", d.Name, v.Kind(), ValueKindMismatch)
	}
	switch d.Type {
	case NumberType:
		f := v.AsDouble()
		if math.IsNaN(f) {
			return v, fmt.Errorf("%s: NaN: %w", d.Name, ValueOutOfRange)
		}
		return Double(clamp(f, d.Min, d.Max)), nil
	case ListType:
		if i := v.AsInt(); i < 0 || i >= len(d.Labels) {
			code := d.RangeError
			if code == Success {
				code = ValueOutOfRange
			}
			return v, fmt.Errorf("%s: index %d: %w", d.Name, i, code)
		}
	}
	return v, nil
}

// Normalize converts a plain value to the host automation range [0, 1].
// Text parameters are not automatable and always normalize to 0.
func (d *Descriptor) Normalize(v Value) float64 {
	switch d.Type {
	case NumberType:
		if d.Max <= d.Min {
			return 0
		}
		n := (v.AsDouble() - d.Min) / (d.Max - d.Min)
		if d.Steps > 0 {
			n = math.Floor(n*float64(d.Steps+1)) / float64(d.Steps)
		}
		return clamp(n, 0, 1)
	case ListType:
		div := len(d.Labels) - 1
		if div <= 0 {
			return 0
		}
		i := min(max(v.AsInt(), 0), div)
		return float64(i) / float64(div)
	default:
		return 0
	}
}

// Denormalize converts a host automation value to a plain value.
// For Text parameters it returns the default, since text is never automated.
func (d *Descriptor) Denormalize(n float64) Value {
	switch d.Type {
	case NumberType:
		if d.Steps > 0 {
			n = math.Floor(n*float64(d.Steps+1)) / float64(d.Steps)
		}
		return Double(clamp(d.Min+n*(d.Max-d.Min), d.Min, d.Max))
	case ListType:
		div := len(d.Labels) - 1
		if div <= 0 {
			return Int(0)
		}
		return Int(min(max(int(n*float64(div+1)), 0), div))
	default:
		return Text(d.DefaultText)
	}
}

// FormatValue returns the display string for v
func (d *Descriptor) FormatValue(v Value) string {
	switch d.Type {
	case NumberType:
		if d.formatFunc != nil {
			return d.formatFunc(v.AsDouble())
		}
		if d.Steps > 0 && d.Steps == int32(d.Max-d.Min) {
			// One step per unit, show integer
			return fmt.Sprintf("%.0f", v.AsDouble())
		}
		return fmt.Sprintf("%.2f", v.AsDouble())
	case ListType:
		if i := v.AsInt(); i >= 0 && i < len(d.Labels) {
			return d.Labels[i]
		}
		return "Unknown"
	default:
		return v.AsText()
	}
}

// ParseValue parses a display string. List parameters accept a label
// (case-insensitive) or an index.
func (d *Descriptor) ParseValue(str string) (Value, error) {
	switch d.Type {
	case NumberType:
		if d.parseFunc != nil {
			f, err := d.parseFunc(str)
			if err != nil {
				return Value{}, err
			}
			return Double(f), nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return Value{}, err
		}
		return Double(f), nil
	case ListType:
		s := strings.TrimSpace(str)
		for i, label := range d.Labels {
			if strings.EqualFold(s, label) {
				return Int(i), nil
			}
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return Value{}, fmt.Errorf("unknown option: %s", str)
		}
		return Int(i), nil
	default:
		return Text(str), nil
	}
}

// ControlUpdate runs the control-side callback for v
func (d *Descriptor) ControlUpdate(e Editor, v Value) error {
	if d.control == nil {
		return nil
	}
	return d.control(e, v)
}

// RealtimeApply forwards v to the realtime engine
func (d *Descriptor) RealtimeApply(p Processor, v Value) error {
	if d.apply == nil {
		return nil
	}
	return d.apply(p, v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
