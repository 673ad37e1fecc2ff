// Package evaluator runs a checked program by walking its tree.
package evaluator

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/arnavsurve/codelang/internal/compiler/ast"
	"github.com/arnavsurve/codelang/internal/compiler/diag"
	"github.com/arnavsurve/codelang/internal/compiler/scope"
	"github.com/arnavsurve/codelang/internal/compiler/symbols"
	"github.com/arnavsurve/codelang/internal/compiler/token"
	"github.com/arnavsurve/codelang/internal/compiler/value"
)

// Evaluator executes programs against SCAN input and DISPLAY output.
type Evaluator struct {
	in  LineReader
	out io.Writer
}

type Option func(*Evaluator)

// WithInput sets where SCAN reads lines from. The default is os.Stdin.
func WithInput(in LineReader) Option {
	return func(e *Evaluator) { e.in = in }
}

// WithOutput sets where DISPLAY writes. The default is os.Stdout.
func WithOutput(out io.Writer) Option {
	return func(e *Evaluator) { e.out = out }
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	if e.in == nil {
		e.in = NewLineReader(os.Stdin)
	}
	if e.out == nil {
		e.out = os.Stdout
	}
	return e
}

// Execute runs program with a fresh symbol table.
func (e *Evaluator) Execute(program *ast.Program) error {
	return e.ExecuteContext(context.Background(), program)
}

// ExecuteContext is Execute with a context that is checked before every loop
// iteration, so a runaway WHILE can be stopped from outside.
func (e *Evaluator) ExecuteContext(ctx context.Context, program *ast.Program) error {
	return e.execBlock(ctx, scope.NewTable(), program)
}

func (e *Evaluator) execBlock(ctx context.Context, tbl *scope.Table, block *ast.Program) error {
	for _, stmt := range block.Statements {
		if err := e.exec(ctx, tbl, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) exec(ctx context.Context, tbl *scope.Table, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		return e.execDeclaration(tbl, s)
	case *ast.Assignment:
		return e.execAssignment(tbl, s)
	case *ast.Display:
		return e.execDisplay(tbl, s)
	case *ast.Scan:
		return e.execScan(tbl, s)
	case *ast.Conditional:
		return e.execConditional(ctx, tbl, s)
	case *ast.Loop:
		return e.execLoop(ctx, tbl, s)
	}
	return diag.New(diag.Runtime, "Unknown statement %T.", stmt)
}

// execDeclaration rebinds each declared name. Redeclaration was already
// rejected by analysis, so a repeat here is a loop body running again.
func (e *Evaluator) execDeclaration(tbl *scope.Table, stmt *ast.VariableDeclaration) error {
	for _, d := range stmt.Declarators {
		var v value.Value
		if d.Value != nil {
			var err error
			if v, err = Eval(tbl, d.Value); err != nil {
				return err
			}
		}
		tbl.Bind(d.Name.Value, symbols.SymbolInfo{Type: stmt.Type, Value: v})
	}
	return nil
}

// execAssignment evaluates the right-hand side once and stores it under
// every target, left to right.
func (e *Evaluator) execAssignment(tbl *scope.Table, stmt *ast.Assignment) error {
	v, err := Eval(tbl, stmt.Value)
	if err != nil {
		return err
	}
	for i, target := range stmt.Targets {
		if err := tbl.Assign(target.Value, v); err != nil {
			return diag.At(diag.Runtime, stmt.Equals[i], "%s", err)
		}
	}
	return nil
}

func (e *Evaluator) execDisplay(tbl *scope.Table, stmt *ast.Display) error {
	var sb strings.Builder
	for _, operand := range stmt.Operands {
		v, err := Eval(tbl, operand)
		if err != nil {
			return err
		}
		sb.WriteString(v.Text())
	}
	_, err := io.WriteString(e.out, sb.String())
	return err
}

func (e *Evaluator) execScan(tbl *scope.Table, stmt *ast.Scan) error {
	if f, ok := e.out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}

	line, err := e.in.ReadLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	fields := splitFields(line)
	if len(fields) != len(stmt.Targets) {
		return diag.New(diag.Runtime, "Missing input/s.")
	}

	for i, target := range stmt.Targets {
		info, ok := tbl.Lookup(target.Value)
		if !ok {
			return diag.At(diag.Runtime, stmt.Token, "Variable %q does not exist.", target.Value)
		}
		v := token.ConvertLiteral(fields[i])
		if !token.Coercible(info.Type, v.Type) {
			return diag.New(diag.Runtime, "Unable to assign %s on %q.", v.Type, target.Value)
		}
		if err := tbl.Assign(target.Value, v); err != nil {
			return diag.At(diag.Runtime, stmt.Token, "%s", err)
		}
	}
	return nil
}

// splitFields removes every space from line and splits it on commas. An
// empty line has no fields.
func splitFields(line string) []string {
	line = strings.ReplaceAll(strings.TrimRight(line, "\r\n"), " ", "")
	if line == "" {
		return nil
	}
	return strings.Split(line, ",")
}

func (e *Evaluator) execConditional(ctx context.Context, tbl *scope.Table, stmt *ast.Conditional) error {
	for _, branch := range stmt.Branches {
		if branch.Condition != nil {
			ok, err := truth(tbl, branch.Token, branch.Condition)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		return e.execBlock(ctx, tbl, branch.Body)
	}
	return nil
}

func (e *Evaluator) execLoop(ctx context.Context, tbl *scope.Table, stmt *ast.Loop) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := truth(tbl, stmt.Token, stmt.Condition)
		if err != nil || !ok {
			return err
		}
		if err := e.execBlock(ctx, tbl, stmt.Body); err != nil {
			return err
		}
	}
}

func truth(tbl *scope.Table, at token.Token, cond ast.Expression) (bool, error) {
	v, err := Eval(tbl, cond)
	if err != nil {
		return false, err
	}
	if v.Type != value.Bool {
		return false, diag.At(diag.Runtime, at, "Expression is not %s.", value.Bool)
	}
	return v.Bool(), nil
}

// Eval computes the value of expr against tbl.
func Eval(tbl *scope.Table, expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Identifier:
		info, ok := tbl.Lookup(e.Value)
		if !ok {
			return value.Value{}, diag.At(diag.Runtime, e.Token, "Variable %q does not exist.", e.Value)
		}
		if !info.Assigned() {
			return value.Value{}, diag.At(diag.Runtime, e.Token, "Variable '%s' is null.", e.Value)
		}
		return info.Load(), nil

	case *ast.Grouping:
		return Eval(tbl, e.Inner)

	case *ast.Unary:
		operand, err := Eval(tbl, e.Operand)
		if err != nil {
			return value.Value{}, err
		}
		v, err := value.ApplyUnary(e.Op, operand)
		if err != nil {
			return value.Value{}, diag.At(diag.Runtime, e.Token, "%s", err)
		}
		return v, nil

	case *ast.Binary:
		left, err := Eval(tbl, e.Left)
		if err != nil {
			return value.Value{}, err
		}
		right, err := Eval(tbl, e.Right)
		if err != nil {
			return value.Value{}, err
		}
		v, err := value.Apply(e.Op, left, right)
		if err != nil {
			return value.Value{}, diag.At(diag.Runtime, e.Token, "%s", err)
		}
		return v, nil
	}
	return value.Value{}, diag.New(diag.Runtime, "Unknown expression.")
}
