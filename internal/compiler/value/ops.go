package value

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Op identifies a unary or binary operator.
type Op int

const (
	OpInvalid Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLess
	OpGreater
	OpLessEq
	OpGreaterEq
	OpEqual
	OpNotEqual
	OpAnd
	OpOr
	OpNot
)

// Class groups operators that share typing rules.
type Class int

const (
	ClassNone Class = iota
	ClassArithmetic
	ClassOrdering // < > <= >=
	ClassEquality // == <>
	ClassLogical  // AND OR
)

type opInfo struct {
	symbol string
	class  Class
}

var opTable = map[Op]opInfo{
	OpAdd:       {"+", ClassArithmetic},
	OpSub:       {"-", ClassArithmetic},
	OpMul:       {"*", ClassArithmetic},
	OpDiv:       {"/", ClassArithmetic},
	OpMod:       {"%", ClassArithmetic},
	OpLess:      {"<", ClassOrdering},
	OpGreater:   {">", ClassOrdering},
	OpLessEq:    {"<=", ClassOrdering},
	OpGreaterEq: {">=", ClassOrdering},
	OpEqual:     {"==", ClassEquality},
	OpNotEqual:  {"<>", ClassEquality},
	OpAnd:       {"AND", ClassLogical},
	OpOr:        {"OR", ClassLogical},
	OpNot:       {"NOT", ClassLogical},
}

func (o Op) String() string {
	if info, ok := opTable[o]; ok {
		return info.symbol
	}
	return "?"
}

func (o Op) Class() Class { return opTable[o].class }

// IsComparison is true for the operators that always yield BOOL.
func (o Op) IsComparison() bool {
	c := o.Class()
	return c == ClassOrdering || c == ClassEquality
}

// ErrDivisionByZero is returned by Apply for integer / and % by zero.
var ErrDivisionByZero = errors.New("Division by zero.")

// TypeError describes an operator applied to operand types it does not accept.
type TypeError struct {
	Op          Op
	Left, Right DataType
	Unary       bool
}

func (e *TypeError) Error() string {
	if e.Unary {
		return fmt.Sprintf("Operator '%s' cannot be applied to %s.", e.Op, e.Left)
	}
	return fmt.Sprintf("Operator '%s' cannot be applied to operands of type %s and %s.", e.Op, e.Left, e.Right)
}

// BinaryType computes the static result type of `l op r`.
// Both the analyzer and Apply go through this function, so a program that
// type-checks never hits a TypeError at runtime.
func BinaryType(op Op, l, r DataType) (DataType, error) {
	if !Compatible(l, r) {
		return Invalid, &TypeError{Op: op, Left: l, Right: r}
	}
	switch op.Class() {
	case ClassArithmetic:
		if !l.IsNumeric() {
			return Invalid, &TypeError{Op: op, Left: l, Right: r}
		}
		return l, nil
	case ClassOrdering, ClassEquality:
		return Bool, nil
	case ClassLogical:
		// Apply reads both operands as booleans, so only BOOL is accepted.
		if l != Bool {
			return Invalid, &TypeError{Op: op, Left: l, Right: r}
		}
		return Bool, nil
	}
	return Invalid, &TypeError{Op: op, Left: l, Right: r}
}

// UnaryType computes the static result type of `op t`.
func UnaryType(op Op, t DataType) (DataType, error) {
	switch op {
	case OpNot:
		if t != Bool {
			return Invalid, &TypeError{Op: op, Left: t, Unary: true}
		}
		return Bool, nil
	case OpAdd, OpSub:
		if !t.IsNumeric() {
			return Invalid, &TypeError{Op: op, Left: t, Unary: true}
		}
		return t, nil
	}
	return Invalid, &TypeError{Op: op, Left: t, Unary: true}
}

// Apply evaluates `l op r`. INT,INT stays INT; any FLOAT operand promotes the
// operation to FLOAT.
func Apply(op Op, l, r Value) (Value, error) {
	if _, err := BinaryType(op, l.Type, r.Type); err != nil {
		return Value{}, err
	}

	switch op.Class() {
	case ClassArithmetic:
		if l.Type == Int && r.Type == Int {
			return intArith(op, l.i, r.i)
		}
		return floatArith(op, l.Float(), r.Float())
	case ClassOrdering, ClassEquality:
		return BoolVal(compare(op, l, r)), nil
	case ClassLogical:
		if op == OpAnd {
			return BoolVal(l.b && r.b), nil
		}
		return BoolVal(l.b || r.b), nil
	}
	return Value{}, &TypeError{Op: op, Left: l.Type, Right: r.Type}
}

// ApplyUnary evaluates `op v`. NOT is a textual test: the operand counts as
// true only when its text form contains "TRUE".
func ApplyUnary(op Op, v Value) (Value, error) {
	if _, err := UnaryType(op, v.Type); err != nil {
		return Value{}, err
	}
	switch op {
	case OpNot:
		return BoolVal(!strings.Contains(v.Text(), "TRUE")), nil
	case OpSub:
		if v.Type == Int {
			return IntVal(-v.i), nil
		}
		return FloatVal(-v.f), nil
	}
	return v, nil
}

func intArith(op Op, a, b int64) (Value, error) {
	switch op {
	case OpAdd:
		return IntVal(a + b), nil
	case OpSub:
		return IntVal(a - b), nil
	case OpMul:
		return IntVal(a * b), nil
	case OpDiv:
		if b == 0 {
			return Value{}, ErrDivisionByZero
		}
		return IntVal(a / b), nil
	case OpMod:
		if b == 0 {
			return Value{}, ErrDivisionByZero
		}
		return IntVal(a % b), nil
	}
	return Value{}, &TypeError{Op: op, Left: Int, Right: Int}
}

func floatArith(op Op, a, b float64) (Value, error) {
	switch op {
	case OpAdd:
		return FloatVal(a + b), nil
	case OpSub:
		return FloatVal(a - b), nil
	case OpMul:
		return FloatVal(a * b), nil
	case OpDiv:
		if b == 0 {
			return Value{}, ErrDivisionByZero
		}
		return FloatVal(a / b), nil
	case OpMod:
		if b == 0 {
			return Value{}, ErrDivisionByZero
		}
		return FloatVal(math.Mod(a, b)), nil
	}
	return Value{}, &TypeError{Op: op, Left: Float, Right: Float}
}

func compare(op Op, l, r Value) bool {
	var cmp int
	switch {
	case l.Type == Int && r.Type == Int:
		cmp = cmpInt(l.i, r.i)
	case l.Type.IsNumeric():
		a, b := l.Float(), r.Float()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	case l.Type == Char:
		cmp = cmpInt(int64(l.c), int64(r.c))
	case l.Type == Bool:
		// FALSE < TRUE
		switch {
		case !l.b && r.b:
			cmp = -1
		case l.b && !r.b:
			cmp = 1
		}
	case l.Type == String:
		cmp = strings.Compare(l.s, r.s)
	}

	switch op {
	case OpLess:
		return cmp < 0
	case OpGreater:
		return cmp > 0
	case OpLessEq:
		return cmp <= 0
	case OpGreaterEq:
		return cmp >= 0
	case OpEqual:
		return cmp == 0
	case OpNotEqual:
		return cmp != 0
	}
	return false
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
