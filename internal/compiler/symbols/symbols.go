package symbols

import "github.com/arnavsurve/codelang/internal/compiler/value"

// SymbolInfo is one entry of the flat symbol table. The analyzer only fills
// in Type; the evaluator also tracks Value, which stays unset until the
// variable is first assigned.
type SymbolInfo struct {
	Type  value.DataType
	Value value.Value
}

// Assigned reports whether the variable has ever received a value.
func (s SymbolInfo) Assigned() bool {
	return s.Value.IsSet()
}

// Load returns the stored value as it is read back by an expression.
// BOOL is re-materialized from its canonical TRUE/FALSE text form so that a
// stored boolean always reads back exactly as TRUE or FALSE.
func (s SymbolInfo) Load() value.Value {
	if s.Value.Type == value.Bool {
		return value.BoolVal(s.Value.Text() == "TRUE")
	}
	return s.Value
}
