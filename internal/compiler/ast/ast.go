package ast

import (
	"bytes"
	"strings"

	"github.com/arnavsurve/codelang/internal/compiler/token"
	"github.com/arnavsurve/codelang/internal/compiler/value"
)

// --- Interfaces ---
type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// --- Program ---

// Program is an ordered list of statements. The same node type is used for
// the outermost BEGIN CODE block and for the bodies of IF and WHILE.
type Program struct {
	Token      token.Token // BEGIN
	Kind       token.TokenType
	Statements []Statement
}

func (p *Program) TokenLiteral() string { return p.Token.Literal }

func (p *Program) String() string {
	var out bytes.Buffer
	kind := string(p.Kind)
	out.WriteString("BEGIN " + kind + "\n")
	for _, s := range p.Statements {
		for _, line := range strings.Split(s.String(), "\n") {
			out.WriteString("\t" + line + "\n")
		}
	}
	out.WriteString("END " + kind)
	return out.String()
}

// --- Statements ---

// Declarator is one `name` or `name = expr` inside a declaration.
type Declarator struct {
	Name  *Identifier
	Value Expression // nil when no initializer
}

// VariableDeclaration -> INT a, b = 5
type VariableDeclaration struct {
	Token       token.Token // type keyword
	Type        value.DataType
	Declarators []Declarator
}

func (vd *VariableDeclaration) statementNode()       {}
func (vd *VariableDeclaration) TokenLiteral() string { return vd.Token.Literal }
func (vd *VariableDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString(vd.Token.Literal + " ")
	for i, d := range vd.Declarators {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(d.Name.String())
		if d.Value != nil {
			out.WriteString(" = " + d.Value.String())
		}
	}
	return out.String()
}

// Assignment -> a = b = expr. Every target receives the single evaluated value.
type Assignment struct {
	Targets []*Identifier
	Equals  []token.Token // one '=' per target
	Value   Expression
}

func (as *Assignment) statementNode()       {}
func (as *Assignment) TokenLiteral() string { return as.Targets[0].TokenLiteral() }
func (as *Assignment) String() string {
	var out bytes.Buffer
	for _, t := range as.Targets {
		out.WriteString(t.String() + " = ")
	}
	out.WriteString(as.Value.String())
	return out.String()
}

// Display -> DISPLAY: a & $ & "text"
type Display struct {
	Token    token.Token // DISPLAY
	Operands []Expression
}

func (ds *Display) statementNode()       {}
func (ds *Display) TokenLiteral() string { return ds.Token.Literal }
func (ds *Display) String() string {
	parts := make([]string, len(ds.Operands))
	for i, op := range ds.Operands {
		parts[i] = op.String()
	}
	return "DISPLAY: " + strings.Join(parts, " & ")
}

// Scan -> SCAN: a, b
type Scan struct {
	Token   token.Token // SCAN
	Targets []*Identifier
}

func (ss *Scan) statementNode()       {}
func (ss *Scan) TokenLiteral() string { return ss.Token.Literal }
func (ss *Scan) String() string {
	names := make([]string, len(ss.Targets))
	for i, t := range ss.Targets {
		names[i] = t.Value
	}
	return "SCAN: " + strings.Join(names, ", ")
}

// Branch is one arm of a conditional. Condition is nil for the trailing ELSE.
type Branch struct {
	Token     token.Token // IF or ELSE
	Condition Expression
	Body      *Program
}

// Conditional -> IF (c) ... ELSE IF (c) ... ELSE ...
type Conditional struct {
	Branches []Branch
}

func (cs *Conditional) statementNode()       {}
func (cs *Conditional) TokenLiteral() string { return cs.Branches[0].Token.Literal }
func (cs *Conditional) String() string {
	var out bytes.Buffer
	for i, b := range cs.Branches {
		switch {
		case i == 0:
			out.WriteString("IF (" + b.Condition.String() + ")\n")
		case b.Condition != nil:
			out.WriteString("\nELSE IF (" + b.Condition.String() + ")\n")
		default:
			out.WriteString("\nELSE\n")
		}
		out.WriteString(b.Body.String())
	}
	return out.String()
}

// Loop -> WHILE (c) BEGIN WHILE ... END WHILE
type Loop struct {
	Token     token.Token // WHILE
	Condition Expression
	Body      *Program
}

func (ls *Loop) statementNode()       {}
func (ls *Loop) TokenLiteral() string { return ls.Token.Literal }
func (ls *Loop) String() string {
	return "WHILE (" + ls.Condition.String() + ")\n" + ls.Body.String()
}

// --- Expressions ---

type Identifier struct {
	Token token.Token // the IDENTIFIER token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Literal }
func (i *Identifier) String() string        { return i.Value }
func (i *Identifier) GetToken() token.Token { return i.Token }

// Literal holds a constant. Escape codes and the DISPLAY '$' segment are
// literals too.
type Literal struct {
	Token token.Token
	Value value.Value
}

func (l *Literal) expressionNode()       {}
func (l *Literal) TokenLiteral() string  { return l.Token.Literal }
func (l *Literal) String() string        { return l.Token.Literal }
func (l *Literal) GetToken() token.Token { return l.Token }

type Unary struct {
	Token   token.Token // operator
	Op      value.Op
	Operand Expression
}

func (u *Unary) expressionNode()       {}
func (u *Unary) TokenLiteral() string  { return u.Token.Literal }
func (u *Unary) GetToken() token.Token { return u.Token }
func (u *Unary) String() string {
	sep := ""
	if u.Op == value.OpNot {
		sep = " "
	}
	return "(" + u.Token.Literal + sep + u.Operand.String() + ")"
}

type Binary struct {
	Token token.Token // operator
	Op    value.Op
	Left  Expression
	Right Expression
}

func (b *Binary) expressionNode()       {}
func (b *Binary) TokenLiteral() string  { return b.Token.Literal }
func (b *Binary) GetToken() token.Token { return b.Token }
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Token.Literal + " " + b.Right.String() + ")"
}

// Grouping is an explicit pair of parentheses in the source.
type Grouping struct {
	Token token.Token // (
	Inner Expression
}

func (g *Grouping) expressionNode()       {}
func (g *Grouping) TokenLiteral() string  { return g.Token.Literal }
func (g *Grouping) GetToken() token.Token { return g.Token }
func (g *Grouping) String() string        { return "(" + g.Inner.String() + ")" }
