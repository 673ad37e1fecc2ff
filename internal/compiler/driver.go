package compiler

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavsurve/codelang/internal/compiler/ast"
	"github.com/arnavsurve/codelang/internal/compiler/evaluator"
	"github.com/arnavsurve/codelang/internal/compiler/lexer"
	"github.com/arnavsurve/codelang/internal/compiler/parser"
	"github.com/arnavsurve/codelang/internal/compiler/semantic"
	"github.com/arnavsurve/codelang/internal/compiler/token"
)

// SourceExt is the file extension of CODE programs.
const SourceExt = ".code"

// Options configures one run of the pipeline. Zero values fall back to
// os.Stdin, os.Stdout and parser.DefaultMaxDepth.
type Options struct {
	Input    evaluator.LineReader
	Output   io.Writer
	MaxDepth int
}

// RunFile loads a .code file and runs it.
func RunFile(ctx context.Context, path string, opts Options) error {
	src, err := LoadFile(path)
	if err != nil {
		return err
	}
	return Run(ctx, src, opts)
}

// CheckFile loads a .code file and runs every phase except evaluation.
func CheckFile(path string, opts Options) (*ast.Program, error) {
	src, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Check(src, opts)
}

// Run parses, checks and executes src. Nothing is executed unless both
// parsing and analysis succeed.
func Run(ctx context.Context, src string, opts Options) error {
	prog, err := Check(src, opts)
	if err != nil {
		return err
	}

	var evalOpts []evaluator.Option
	if opts.Input != nil {
		evalOpts = append(evalOpts, evaluator.WithInput(opts.Input))
	}
	if opts.Output != nil {
		evalOpts = append(evalOpts, evaluator.WithOutput(opts.Output))
	}
	return evaluator.New(evalOpts...).ExecuteContext(ctx, prog)
}

// Check parses and analyzes src and returns the checked tree.
func Check(src string, opts Options) (*ast.Program, error) {
	prog, err := Parse(src, opts)
	if err != nil {
		return nil, err
	}
	if err := semantic.Analyze(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// Parse builds the syntax tree of src.
func Parse(src string, opts Options) (*ast.Program, error) {
	var parserOpts []parser.Option
	if opts.MaxDepth > 0 {
		parserOpts = append(parserOpts, parser.WithMaxDepth(opts.MaxDepth))
	}
	p := parser.NewParser(lexer.NewLexer(src), parserOpts...)
	return p.ParseProgram()
}

// Tokens scans src to the end and returns every token, including ERROR
// tokens, ending with ENDOFFILE.
func Tokens(src string) []token.Token {
	l := lexer.NewLexer(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.TokenEOF {
			return toks
		}
	}
}

// LoadFile reads a program from disk. Carriage returns are dropped so CRLF
// sources scan the same as LF ones.
func LoadFile(path string) (string, error) {
	if err := validateExtension(path); err != nil {
		return "", err
	}
	content, err := readSource(path)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(content, "\r", ""), nil
}

func validateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return fmt.Errorf("driver: source must have %s extension: %s", SourceExt, path)
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("driver: read %s: %w", path, err)
	}
	return string(b), nil
}
