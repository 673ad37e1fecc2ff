// Package semantic type-checks a parsed program before it runs.
//
// All checks share one flat symbol table. IF and WHILE bodies are checked
// against the same table as the code around them, so a variable declared
// inside one branch is visible to everything checked after it and declaring
// it again anywhere else is an error.
package semantic

import (
	"errors"

	"github.com/arnavsurve/codelang/internal/compiler/ast"
	"github.com/arnavsurve/codelang/internal/compiler/diag"
	"github.com/arnavsurve/codelang/internal/compiler/scope"
	"github.com/arnavsurve/codelang/internal/compiler/symbols"
	"github.com/arnavsurve/codelang/internal/compiler/token"
	"github.com/arnavsurve/codelang/internal/compiler/value"
)

// Analyze checks program and returns the first semantic error, if any.
func Analyze(program *ast.Program) error {
	return checkBlock(scope.NewTable(), program)
}

// AnalyzeWith checks program against an existing table and leaves the
// declarations it finds in tbl.
func AnalyzeWith(tbl *scope.Table, program *ast.Program) error {
	return checkBlock(tbl, program)
}

func checkBlock(tbl *scope.Table, block *ast.Program) error {
	for _, stmt := range block.Statements {
		if err := checkStatement(tbl, stmt); err != nil {
			return err
		}
	}
	return nil
}

func checkStatement(tbl *scope.Table, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		return checkDeclaration(tbl, s)
	case *ast.Assignment:
		return checkAssignment(tbl, s)
	case *ast.Display:
		return checkDisplay(tbl, s)
	case *ast.Scan:
		return checkScan(tbl, s)
	case *ast.Conditional:
		return checkConditional(tbl, s)
	case *ast.Loop:
		return checkLoop(tbl, s)
	}
	return diag.New(diag.Semantic, "Unknown statement %T.", stmt)
}

func checkDeclaration(tbl *scope.Table, stmt *ast.VariableDeclaration) error {
	for _, d := range stmt.Declarators {
		name := d.Name.Value
		if tbl.Exists(name) {
			return diag.At(diag.Semantic, stmt.Token, "Variable %q already exists.", name)
		}

		if d.Value != nil {
			exprType, err := TypeOf(tbl, d.Value)
			if err != nil {
				return err
			}
			if !token.Coercible(stmt.Type, exprType) {
				return diag.At(diag.Semantic, stmt.Token, "Unable to assign %s on %q.", exprType, name)
			}
		}

		if err := tbl.Define(name, symbols.SymbolInfo{Type: stmt.Type}); err != nil {
			return diag.At(diag.Semantic, stmt.Token, "%s", err)
		}
	}
	return nil
}

// checkAssignment reports undeclared targets before looking at the value.
func checkAssignment(tbl *scope.Table, stmt *ast.Assignment) error {
	for i, target := range stmt.Targets {
		if !tbl.Exists(target.Value) {
			return diag.At(diag.Semantic, stmt.Equals[i], "Variable %q does not exist.", target.Value)
		}
	}

	exprType, err := TypeOf(tbl, stmt.Value)
	if err != nil {
		return err
	}

	for i, target := range stmt.Targets {
		info, _ := tbl.Lookup(target.Value)
		if !token.Coercible(info.Type, exprType) {
			return diag.At(diag.Semantic, stmt.Equals[i], "Unable to assign %s on %q.", exprType, target.Value)
		}
	}
	return nil
}

// checkDisplay only requires bare identifier operands to exist; computed
// operands are not otherwise restricted.
func checkDisplay(tbl *scope.Table, stmt *ast.Display) error {
	for _, operand := range stmt.Operands {
		if ident, ok := operand.(*ast.Identifier); ok && !tbl.Exists(ident.Value) {
			return undeclared(ident)
		}
	}
	return nil
}

func checkScan(tbl *scope.Table, stmt *ast.Scan) error {
	for _, target := range stmt.Targets {
		if !tbl.Exists(target.Value) {
			return diag.At(diag.Semantic, stmt.Token, "Variable %q does not exist.", target.Value)
		}
	}
	return nil
}

func checkConditional(tbl *scope.Table, stmt *ast.Conditional) error {
	for _, branch := range stmt.Branches {
		if branch.Condition != nil {
			if err := requireBool(tbl, branch.Token, branch.Condition); err != nil {
				return err
			}
		}
		if err := checkBlock(tbl, branch.Body); err != nil {
			return err
		}
	}
	return nil
}

func checkLoop(tbl *scope.Table, stmt *ast.Loop) error {
	if err := requireBool(tbl, stmt.Token, stmt.Condition); err != nil {
		return err
	}
	return checkBlock(tbl, stmt.Body)
}

func requireBool(tbl *scope.Table, at token.Token, cond ast.Expression) error {
	t, err := TypeOf(tbl, cond)
	if err != nil {
		return err
	}
	if t != value.Bool {
		return diag.At(diag.Semantic, at, "Expression is not %s.", value.Bool)
	}
	return nil
}

// TypeOf computes the static type of expr against tbl.
func TypeOf(tbl *scope.Table, expr ast.Expression) (value.DataType, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		if !e.Value.IsSet() {
			return value.Invalid, diag.At(diag.Semantic, e.Token, "Unknown data type %s.", e.Token.Literal)
		}
		return e.Value.Type, nil

	case *ast.Identifier:
		info, ok := tbl.Lookup(e.Value)
		if !ok {
			return value.Invalid, undeclared(e)
		}
		return info.Type, nil

	case *ast.Grouping:
		return TypeOf(tbl, e.Inner)

	case *ast.Unary:
		operand, err := TypeOf(tbl, e.Operand)
		if err != nil {
			return value.Invalid, err
		}
		return operatorType(e.Token, func() (value.DataType, error) {
			return value.UnaryType(e.Op, operand)
		})

	case *ast.Binary:
		left, err := TypeOf(tbl, e.Left)
		if err != nil {
			return value.Invalid, err
		}
		right, err := TypeOf(tbl, e.Right)
		if err != nil {
			return value.Invalid, err
		}
		return operatorType(e.Token, func() (value.DataType, error) {
			return value.BinaryType(e.Op, left, right)
		})
	}
	return value.Invalid, diag.New(diag.Semantic, "Unknown expression.")
}

// operatorType runs an operator typing rule and positions any TypeError at
// the operator token.
func operatorType(at token.Token, rule func() (value.DataType, error)) (value.DataType, error) {
	t, err := rule()
	var typeErr *value.TypeError
	if errors.As(err, &typeErr) {
		return value.Invalid, diag.At(diag.Semantic, at, "%s", typeErr)
	}
	return t, err
}

func undeclared(ident *ast.Identifier) error {
	return diag.At(diag.Semantic, ident.Token, "Variable %q does not exist.", ident.Value)
}
