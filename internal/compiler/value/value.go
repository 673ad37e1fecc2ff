package value

import (
	"strconv"
)

// DataType is the static type of a variable or expression.
type DataType int

const (
	Invalid DataType = iota
	Int
	Float
	Char
	Bool
	String
)

var dataTypeNames = [...]string{
	Invalid: "INVALID",
	Int:     "INT",
	Float:   "FLOAT",
	Char:    "CHAR",
	Bool:    "BOOL",
	String:  "STRING",
}

func (d DataType) String() string {
	if d < 0 || int(d) >= len(dataTypeNames) {
		return "INVALID"
	}
	return dataTypeNames[d]
}

// IsNumeric reports whether d takes part in Int/Float coercion.
func (d DataType) IsNumeric() bool {
	return d == Int || d == Float
}

// Compatible reports whether a value of type b may be used where a is expected.
// INT and FLOAT coerce into each other; every other pair must match exactly.
func Compatible(a, b DataType) bool {
	if a.IsNumeric() && b.IsNumeric() {
		return true
	}
	return a != Invalid && a == b
}

// Value is a tagged runtime value. The zero Value is "unset".
type Value struct {
	Type DataType
	i    int64
	f    float64
	c    rune
	b    bool
	s    string
}

func IntVal(i int64) Value { return Value{Type: Int, i: i} }
func FloatVal(f float64) Value { return Value{Type: Float, f: f} }
func CharVal(c rune) Value { return Value{Type: Char, c: c} }
func BoolVal(b bool) Value { return Value{Type: Bool, b: b} }
func StringVal(s string) Value { return Value{Type: String, s: s} }

// IsSet is false for the zero Value.
func (v Value) IsSet() bool { return v.Type != Invalid }

func (v Value) Int() int64 { return v.i }
func (v Value) Char() rune { return v.c }
func (v Value) Bool() bool { return v.b }
func (v Value) Str() string { return v.s }

// Float returns the value as a float64, promoting INT.
func (v Value) Float() float64 {
	if v.Type == Int {
		return float64(v.i)
	}
	return v.f
}

// Text is the form DISPLAY writes. BOOL renders as TRUE/FALSE.
// FLOAT uses the shortest single-precision representation.
func (v Value) Text() string {
	switch v.Type {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'f', -1, 32)
	case Char:
		return string(v.c)
	case Bool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case String:
		return v.s
	}
	return ""
}

func (v Value) String() string {
	switch v.Type {
	case Char:
		return "'" + string(v.c) + "'"
	case String:
		return strconv.Quote(v.s)
	case Invalid:
		return "<unset>"
	}
	return v.Text()
}
