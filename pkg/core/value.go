// Package core provides the record table model, parse settings and validation errors
// shared by the QuantNorm readers, normalizer and writers.
package core

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the type held by a Value.
type Kind uint8

const (
	KindMissing Kind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a single table cell: missing, string, number or boolean.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Missing returns the missing value.
func Missing() Value {
	return Value{}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric value. NaN is stored as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// ParseValue infers a Value from a raw text cell.
// Empty cells and "NaN" are missing, True/False become booleans, numbers become numbers.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "NaN", "nan", "NA":
		return Missing()
	case "True", "true", "TRUE":
		return Bool(true)
	case "False", "false", "FALSE":
		return Bool(false)
	}
	if f, ok := parseNumber(s); ok {
		return Number(f)
	}
	return String(s)
}

// parseNumber accepts plain decimal notation only. Words such as "inf" or
// "Infinity", hex floats, underscores and integer parts with leading zeros
// ("001") are rejected so identifiers keep their text.
func parseNumber(s string) (float64, bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - intStart
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		fracDigits = i - start
	}
	if intDigits+fracDigits == 0 {
		return 0, false
	}
	if intDigits > 1 && s[intStart] == '0' {
		return 0, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return 0, false
		}
	}
	if i != len(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ParseColumn infers one type for a whole column of raw cells. Missing cells stay
// missing. When every other cell parses as a number the column is numeric, when every
// other cell is a boolean it is boolean, and otherwise every cell is kept as text.
func ParseColumn(raw []string) []Value {
	vals := make([]Value, len(raw))
	kind := KindMissing
	mixed := false
	for i, r := range raw {
		vals[i] = ParseValue(r)
		k := vals[i].Kind()
		switch {
		case k == KindMissing:
		case kind == KindMissing:
			kind = k
		case k != kind:
			mixed = true
		}
	}
	if !mixed && kind != KindString {
		return vals
	}
	for i, v := range vals {
		if !v.IsMissing() {
			vals[i] = String(strings.TrimSpace(raw[i]))
		}
	}
	return vals
}

// TextColumn keeps every non-missing cell of a column as text.
func TextColumn(raw []string) []Value {
	vals := make([]Value, len(raw))
	for i, r := range raw {
		if v := ParseValue(r); !v.IsMissing() {
			vals[i] = String(strings.TrimSpace(r))
		}
	}
	return vals
}

// ValueOf converts a decoded scalar (string, bool, int, float) into a Value.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return Missing()
	case Value:
		return v
	case string:
		return String(v)
	case bool:
		return Bool(v)
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	default:
		return Missing()
	}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the value is missing.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Float returns the numeric content. ok is false for non-numeric values.
func (v Value) Float() (f float64, ok bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// BoolValue returns the boolean content. ok is false for non-boolean values.
func (v Value) BoolValue() (b bool, ok bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Equal reports typed equality. Missing never equals anything, including missing.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	}
	return false
}

// String returns the display form: numbers in shortest form, booleans as True/False,
// missing as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	}
	return ""
}
