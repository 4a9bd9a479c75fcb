package param

import (
	"fmt"
	"strconv"
)

// ID identifies a parameter
type ID uint32

// Kind is the tag of a Value. It matches the type tag written by the
// snapshot codec, so the numbering must not change.
type Kind uint8

const (
	// KindInt holds an integer (list indices). Snapshots carry it as int32.
	KindInt Kind = 0
	// KindDouble holds a 64-bit float
	KindDouble Kind = 1
	// KindText holds a UTF-8 string
	KindText Kind = 2
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindText:
		return "text"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a tagged union of int, double and text. Exactly one payload is
// meaningful, selected by Kind. The zero Value is Int(0).
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Int creates an integer value
func Int(v int) Value {
	return Value{kind: KindInt, i: int64(v)}
}

// Double creates a floating point value
func Double(v float64) Value {
	return Value{kind: KindDouble, f: v}
}

// Text creates a text value
func Text(v string) Value {
	return Value{kind: KindText, s: v}
}

// Kind returns the active tag
func (v Value) Kind() Kind {
	return v.kind
}

// AsInt returns the integer payload. It panics if the value is not an int.
func (v Value) AsInt() int {
	v.must(KindInt)
	return int(v.i)
}

// AsDouble returns the float payload. It panics if the value is not a double.
func (v Value) AsDouble() float64 {
	v.must(KindDouble)
	return v.f
}

// AsText returns the text payload. It panics if the value is not text.
func (v Value) AsText() string {
	v.must(KindText)
	return v.s
}

// Equal reports whether both values have the same tag and payload.
// Doubles compare by value, so NaN is never equal to itself.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindDouble:
		return v.f == o.f
	default:
		return v.s == o.s
	}
}

// String formats the payload for logs
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return strconv.Quote(v.s)
	}
}

func (v Value) must(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("param: value is %s, not %s", v.kind, k))
	}
}
