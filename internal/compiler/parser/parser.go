package parser

import (
	"github.com/arnavsurve/codelang/internal/compiler/ast"
	"github.com/arnavsurve/codelang/internal/compiler/diag"
	"github.com/arnavsurve/codelang/internal/compiler/lexer"
	"github.com/arnavsurve/codelang/internal/compiler/token"
	"github.com/arnavsurve/codelang/internal/compiler/value"
)

// DefaultMaxDepth bounds block and expression nesting.
const DefaultMaxDepth = 256

type Option func(*Parser)

// WithMaxDepth sets the nesting bound. Values < 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

type Parser struct {
	l      *lexer.Lexer
	curTok token.Token

	// canDeclare is true until the first non-declaration statement of the
	// current block.
	canDeclare bool

	// declared holds every name declared so far, used to tell identifiers
	// apart from misspelled keywords.
	declared map[string]bool

	depth    int
	maxDepth int
}

func NewParser(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		l:        l,
		declared: make(map[string]bool),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// --- Token Handling ---

// nextToken advances the single token of lookahead. An ERROR token from the
// lexer becomes a syntax error unless it is a keyword-like word directly after
// a type keyword, or a name that has already been declared; in those cases a
// corrected IDENTIFIER token takes its place.
func (p *Parser) nextToken() error {
	prev := p.curTok
	p.curTok = p.l.NextToken()
	if p.curTok.Type != token.TokenError {
		return nil
	}

	if (prev.IsTypeKeyword() && isWordError(p.curTok)) || p.declared[p.curTok.Literal] {
		p.curTok = p.curTok.AsIdentifier()
		return nil
	}
	return diag.At(diag.Syntax, p.curTok, "%s", p.curTok.Message)
}

func isWordError(tok token.Token) bool {
	return tok.Message == "Invalid keyword." || tok.Message == "Invalid data type."
}

// expect consumes the current token if it has the given type.
func (p *Parser) expect(expectedType token.TokenType) error {
	if p.curTok.Type != expectedType {
		return p.unexpected(string(expectedType))
	}
	return p.nextToken()
}

func (p *Parser) unexpected(expected string) error {
	return diag.At(diag.Syntax, p.curTok, "Unexpected %s token, expected %s token.", p.curTok.Type, expected)
}

func (p *Parser) skipNewlines() error {
	for p.curTok.Type == token.TokenNewline {
		if err := p.nextToken(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return diag.At(diag.Syntax, p.curTok, "Maximum nesting depth of %d exceeded.", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// --- Program Parsing ---

// ParseProgram parses a complete BEGIN CODE ... END CODE program followed by
// end of input. It stops at the first error.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	program, err := p.parseBlock(token.TokenCode)
	if err != nil {
		return nil, err
	}

	if p.curTok.Type != token.TokenEOF {
		return nil, p.unexpected(string(token.TokenEOF))
	}
	return program, nil
}

// parseBlock parses `BEGIN <kind> statements END <kind>` with optional blank
// lines around every part. Used for the program body and for IF/WHILE bodies.
func (p *Parser) parseBlock(kind token.TokenType) (*ast.Program, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	block := &ast.Program{Token: p.curTok, Kind: kind}
	if err := p.expect(token.TokenBegin); err != nil {
		return nil, err
	}
	if err := p.expect(kind); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	outerCanDeclare := p.canDeclare
	p.canDeclare = true
	stmts, err := p.parseStatements()
	p.canDeclare = outerCanDeclare
	if err != nil {
		return nil, err
	}
	block.Statements = stmts

	if err := p.expect(token.TokenEnd); err != nil {
		return nil, err
	}
	if err := p.expect(kind); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseStatements() ([]ast.Statement, error) {
	statements := []ast.Statement{}

	for p.curTok.Type != token.TokenEnd {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)

		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}
	return statements, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	if p.curTok.IsTypeKeyword() {
		if !p.canDeclare {
			return nil, diag.At(diag.Syntax, p.curTok, "Invalid syntax.")
		}
		return p.parseVariableDeclaration()
	}

	switch p.curTok.Type {
	case token.TokenIdent:
		p.canDeclare = false
		return p.parseAssignment()
	case token.TokenDisplay:
		p.canDeclare = false
		return p.parseDisplay()
	case token.TokenScan:
		p.canDeclare = false
		return p.parseScan()
	case token.TokenIf:
		p.canDeclare = false
		return p.parseConditional()
	case token.TokenWhile:
		p.canDeclare = false
		return p.parseLoop()
	case token.TokenEOF:
		return nil, diag.At(diag.Syntax, p.curTok, "Missing End Statement.")
	default:
		return nil, diag.At(diag.Syntax, p.curTok, "Invalid syntax %q.", p.curTok.Literal)
	}
}

// --- Statements ---

// parseVariableDeclaration parses `TYPE name (= expr)? (, name (= expr)?)*`.
func (p *Parser) parseVariableDeclaration() (ast.Statement, error) {
	stmt := &ast.VariableDeclaration{
		Token: p.curTok,
		Type:  token.DataTypeOf(p.curTok.Type),
	}
	if err := p.nextToken(); err != nil { // Consume type keyword
		return nil, err
	}

	for {
		if p.curTok.Type != token.TokenIdent {
			return nil, p.unexpected(string(token.TokenIdent))
		}
		decl := ast.Declarator{Name: &ast.Identifier{Token: p.curTok, Value: p.curTok.Literal}}
		if err := p.nextToken(); err != nil { // Consume name
			return nil, err
		}

		if p.curTok.Type == token.TokenAssign {
			if err := p.nextToken(); err != nil { // Consume '='
				return nil, err
			}
			initExpr, err := p.parseExpression(token.PrecLowest)
			if err != nil {
				return nil, err
			}
			decl.Value = initExpr
		}

		stmt.Declarators = append(stmt.Declarators, decl)
		p.declared[decl.Name.Value] = true

		if p.curTok.Type != token.TokenComma {
			return stmt, nil
		}
		if err := p.nextToken(); err != nil { // Consume ','
			return nil, err
		}
	}
}

// parseAssignment parses `name = name = ... = expr`. The chain is parsed as
// expressions; every expression followed by another '=' must be a bare
// identifier.
func (p *Parser) parseAssignment() (ast.Statement, error) {
	stmt := &ast.Assignment{
		Targets: []*ast.Identifier{{Token: p.curTok, Value: p.curTok.Literal}},
	}
	if err := p.nextToken(); err != nil { // Consume identifier
		return nil, err
	}

	for {
		eq := p.curTok
		if err := p.expect(token.TokenAssign); err != nil {
			return nil, err
		}
		stmt.Equals = append(stmt.Equals, eq)

		expr, err := p.parseExpression(token.PrecLowest)
		if err != nil {
			return nil, err
		}
		if p.curTok.Type != token.TokenAssign {
			stmt.Value = expr
			return stmt, nil
		}

		ident, ok := expr.(*ast.Identifier)
		if !ok {
			return nil, diag.At(diag.Syntax, p.curTok, "Invalid assignment target %q.", expr.String())
		}
		stmt.Targets = append(stmt.Targets, ident)
	}
}

// parseDisplay parses `DISPLAY: segment (& segment)*` where a segment is an
// expression or '$'. The statement must end at a NEWLINE.
func (p *Parser) parseDisplay() (ast.Statement, error) {
	stmt := &ast.Display{Token: p.curTok}
	if err := p.expect(token.TokenDisplay); err != nil {
		return nil, err
	}
	if err := p.expect(token.TokenColon); err != nil {
		return nil, err
	}

	for {
		operand, err := p.parseDisplaySegment()
		if err != nil {
			return nil, err
		}
		stmt.Operands = append(stmt.Operands, operand)

		if p.curTok.Type != token.TokenAmpersand {
			break
		}
		if err := p.nextToken(); err != nil { // Consume '&'
			return nil, err
		}
	}

	if p.curTok.Type != token.TokenNewline {
		return nil, p.unexpected(string(token.TokenNewline))
	}
	return stmt, nil
}

func (p *Parser) parseDisplaySegment() (ast.Expression, error) {
	if p.curTok.Type == token.TokenDollar {
		lit := &ast.Literal{Token: p.curTok, Value: value.StringVal("\n")}
		if err := p.nextToken(); err != nil { // Consume '$'
			return nil, err
		}
		return lit, nil
	}
	if !isExpressionStart(p.curTok) {
		return nil, p.unexpected("expression")
	}
	return p.parseExpression(token.PrecLowest)
}

// parseScan parses `SCAN: name (, name)*`.
func (p *Parser) parseScan() (ast.Statement, error) {
	stmt := &ast.Scan{Token: p.curTok}
	if err := p.expect(token.TokenScan); err != nil {
		return nil, err
	}
	if err := p.expect(token.TokenColon); err != nil {
		return nil, err
	}

	for {
		if p.curTok.Type != token.TokenIdent {
			return nil, p.unexpected(string(token.TokenIdent))
		}
		stmt.Targets = append(stmt.Targets, &ast.Identifier{Token: p.curTok, Value: p.curTok.Literal})
		if err := p.nextToken(); err != nil { // Consume identifier
			return nil, err
		}

		if p.curTok.Type != token.TokenComma {
			return stmt, nil
		}
		if err := p.nextToken(); err != nil { // Consume ','
			return nil, err
		}
	}
}

// parseConditional parses an IF / ELSE IF / ELSE chain. Only one trailing
// unconditional ELSE is allowed.
func (p *Parser) parseConditional() (ast.Statement, error) {
	stmt := &ast.Conditional{}

	ifTok := p.curTok
	if err := p.expect(token.TokenIf); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(token.TokenIf)
	if err != nil {
		return nil, err
	}
	stmt.Branches = append(stmt.Branches, ast.Branch{Token: ifTok, Condition: cond, Body: body})

	sawElse := false
	for p.curTok.Type == token.TokenElse {
		if sawElse {
			return nil, diag.At(diag.Syntax, p.curTok, "Invalid syntax %s.", p.curTok.Type)
		}
		branch := ast.Branch{Token: p.curTok}
		if err := p.nextToken(); err != nil { // Consume ELSE
			return nil, err
		}

		if p.curTok.Type == token.TokenIf {
			if err := p.nextToken(); err != nil { // Consume IF
				return nil, err
			}
			if branch.Condition, err = p.parseCondition(); err != nil {
				return nil, err
			}
		} else {
			sawElse = true
		}

		if branch.Body, err = p.parseBlock(token.TokenIf); err != nil {
			return nil, err
		}
		stmt.Branches = append(stmt.Branches, branch)
	}
	return stmt, nil
}

// parseLoop parses `WHILE (cond) BEGIN WHILE ... END WHILE`.
func (p *Parser) parseLoop() (ast.Statement, error) {
	stmt := &ast.Loop{Token: p.curTok}
	if err := p.expect(token.TokenWhile); err != nil {
		return nil, err
	}

	var err error
	if stmt.Condition, err = p.parseCondition(); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseBlock(token.TokenWhile); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseCondition parses the parenthesized guard of IF and WHILE.
func (p *Parser) parseCondition() (ast.Expression, error) {
	if p.curTok.Type != token.TokenLParen {
		return nil, p.unexpected(string(token.TokenLParen))
	}
	return p.parseGrouping()
}

// --- Expressions ---

func isExpressionStart(tok token.Token) bool {
	if tok.IsLiteral() {
		return true
	}
	switch tok.Type {
	case token.TokenIdent, token.TokenEscape, token.TokenLParen,
		token.TokenPlus, token.TokenMinus, token.TokenNot:
		return true
	}
	return false
}

// parseExpression is a precedence climber. It parses a prefix term and then
// keeps absorbing binary operators whose precedence is at least minPrec. The
// right operand is parsed with minPrec one higher, which makes operators of
// equal precedence associate to the left.
func (p *Parser) parseExpression(minPrec int) (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		prec := token.Precedence(p.curTok.Type)
		if prec == 0 || prec < minPrec {
			return left, nil
		}

		opTok := p.curTok
		op, _ := token.BinaryOp(opTok.Type)
		if err := p.nextToken(); err != nil { // Consume operator
			return nil, err
		}

		right, err := p.parseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Token: opTok, Op: op, Left: left, Right: right}
	}
}

// parsePrefix parses a unary operator, a parenthesized group, or a primary
// term (identifier, literal, escape code).
func (p *Parser) parsePrefix() (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.curTok

	if op, ok := token.UnaryOp(tok.Type); ok {
		if err := p.nextToken(); err != nil { // Consume operator
			return nil, err
		}
		operand, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Token: tok, Op: op, Operand: operand}, nil
	}

	switch {
	case tok.Type == token.TokenLParen:
		return p.parseGrouping()
	case tok.Type == token.TokenIdent:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Token: tok, Value: tok.Literal}, nil
	case tok.IsLiteral() || tok.Type == token.TokenEscape:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return &ast.Literal{Token: tok, Value: tok.Value}, nil
	}
	return nil, p.unexpected("expression")
}

func (p *Parser) parseGrouping() (ast.Expression, error) {
	group := &ast.Grouping{Token: p.curTok}
	if err := p.nextToken(); err != nil { // Consume '('
		return nil, err
	}

	inner, err := p.parseExpression(token.PrecLowest)
	if err != nil {
		return nil, err
	}
	group.Inner = inner

	if err := p.expect(token.TokenRParen); err != nil {
		return nil, err
	}
	return group, nil
}
