package scope

import (
	"fmt"
	"sort"

	"github.com/arnavsurve/codelang/internal/compiler/symbols"
	"github.com/arnavsurve/codelang/internal/compiler/value"
)

// --- Table ---

// Table is the program-wide symbol table. There is exactly one per phase and
// it has no outer link: IF and WHILE bodies are checked and executed against
// the same table as the code around them.
type Table struct {
	Symbols map[string]symbols.SymbolInfo
}

func NewTable() *Table {
	return &Table{
		Symbols: make(map[string]symbols.SymbolInfo),
	}
}

// Define adds a symbol. It returns an error if the name is already declared
// anywhere in the program.
func (t *Table) Define(name string, info symbols.SymbolInfo) error {
	if _, exists := t.Symbols[name]; exists {
		return fmt.Errorf("Variable %q already exists.", name)
	}
	t.Symbols[name] = info
	return nil
}

// Bind sets name to info, replacing any earlier entry. The evaluator uses it
// because a declaration inside a WHILE body runs once per iteration.
func (t *Table) Bind(name string, info symbols.SymbolInfo) {
	t.Symbols[name] = info
}

// Lookup returns a copy of the entry for name.
func (t *Table) Lookup(name string) (symbols.SymbolInfo, bool) {
	info, ok := t.Symbols[name]
	return info, ok
}

func (t *Table) Exists(name string) bool {
	_, ok := t.Symbols[name]
	return ok
}

// Assign stores v under an existing name. The declared type is not changed.
func (t *Table) Assign(name string, v value.Value) error {
	info, ok := t.Symbols[name]
	if !ok {
		return fmt.Errorf("Variable %q does not exist.", name)
	}
	info.Value = v
	t.Symbols[name] = info
	return nil
}

// Names returns the declared names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.Symbols))
	for name := range t.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
