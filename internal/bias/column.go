package bias

import (
	"math"
	"strconv"
)

// ValueType is the declared storage type of a column, as reported by the loader.
type ValueType int

const (
	TextType ValueType = iota
	NumericType
)

func (t ValueType) String() string {
	if t == NumericType {
		return "numeric"
	}
	return "text"
}

type valueKind uint8

const (
	missingValue valueKind = iota
	numberValue
	textValue
)

// Value is a single cell: a number, a string, or missing.
// The zero Value is missing.
type Value struct {
	kind valueKind
	num  float64
	str  string
}

// Num returns a numeric value. NaN is treated as missing.
func Num(f float64) Value { return Value{kind: numberValue, num: f} }

// Text returns a textual value.
func Text(s string) Value { return Value{kind: textValue, str: s} }

// Null returns a missing value.
func Null() Value { return Value{} }

// IsMissing reports whether v carries no data.
func (v Value) IsMissing() bool {
	return v.kind == missingValue || (v.kind == numberValue && math.IsNaN(v.num))
}

// IsNumber reports whether v holds a (non-missing) number.
func (v Value) IsNumber() bool { return v.kind == numberValue && !math.IsNaN(v.num) }

// Float returns the numeric payload of v.
func (v Value) Float() (float64, bool) {
	if !v.IsNumber() {
		return 0, false
	}
	return v.num, true
}

// String renders the value as a category label.
func (v Value) String() string {
	switch v.kind {
	case numberValue:
		return formatNumber(v.num)
	case textValue:
		return v.str
	default:
		return ""
	}
}

// Column is a named, ordered sequence of values with a declared type.
type Column struct {
	Name   string
	Type   ValueType
	Values []Value
}

// NumericColumn builds a numeric column; NaN entries count as missing.
func NumericColumn(name string, xs ...float64) *Column {
	vals := make([]Value, len(xs))
	for i, x := range xs {
		vals[i] = Num(x)
	}
	return &Column{Name: name, Type: NumericType, Values: vals}
}

// TextColumn builds a text column; empty strings are kept as values.
func TextColumn(name string, ss ...string) *Column {
	vals := make([]Value, len(ss))
	for i, s := range ss {
		vals[i] = Text(s)
	}
	return &Column{Name: name, Type: TextType, Values: vals}
}

// formatNumber prints integral values without a fraction and everything else
// in the shortest form that round-trips.
func formatNumber(f float64) string {
	if math.IsInf(f, 0) {
		if f > 0 {
			return "inf"
		}
		return "-inf"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
