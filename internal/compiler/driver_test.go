package compiler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnavsurve/codelang/internal/compiler/diag"
	"github.com/arnavsurve/codelang/internal/compiler/evaluator"
	"github.com/arnavsurve/codelang/internal/compiler/token"
)

func TestRunPhaseOrder(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		phase diag.Phase
	}{
		{"syntax error stops before analysis", "BEGIN CODE\nDISPLAY: \"x\"\nINT y = 'a'\nDISPLAY: $\n", diag.Syntax},
		{"semantic error stops before execution", "BEGIN CODE\nINT x = 1\nDISPLAY: \"first\" & $\nx = 'c'\nEND CODE", diag.Semantic},
		{"runtime error", "BEGIN CODE\nINT x\nDISPLAY: x\nEND CODE", diag.Runtime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Run(context.Background(), tt.src, Options{Input: evaluator.StringInput(""), Output: &out})
			if err == nil {
				t.Fatalf("expected error")
			}
			phase, ok := diag.PhaseOf(err)
			if !ok || phase != tt.phase {
				t.Errorf("phase expected=%s, got=%s (err=%v)", tt.phase, phase, err)
			}
			if tt.phase != diag.Runtime && out.Len() != 0 {
				t.Errorf("expected no output before execution, got=%q", out.String())
			}
		})
	}
}

func TestCheck(t *testing.T) {
	prog, err := Check("BEGIN CODE\nINT x = 1\nDISPLAY: x\nEND CODE", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Statements) != 2 {
		t.Errorf("statements expected=2, got=%d", len(prog.Statements))
	}
}

func TestParseMaxDepth(t *testing.T) {
	src := "BEGIN CODE\nx = ((((1))))\nEND CODE"
	if _, err := Parse(src, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := Parse(src, Options{MaxDepth: 3})
	if err == nil || !strings.Contains(err.Error(), "Maximum nesting depth of 3 exceeded.") {
		t.Errorf("expected depth error, got=%v", err)
	}
}

func TestTokens(t *testing.T) {
	toks := Tokens("INT x = @")
	expected := []token.TokenType{token.TokenInt, token.TokenIdent, token.TokenAssign, token.TokenError, token.TokenEOF}
	if len(toks) != len(expected) {
		t.Fatalf("tokens expected=%d, got=%d", len(expected), len(toks))
	}
	for i, tt := range expected {
		if toks[i].Type != tt {
			t.Errorf("toks[%d] expected=%s, got=%s", i, tt, toks[i].Type)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	crlf := filepath.Join(dir, "crlf.code")
	if err := os.WriteFile(crlf, []byte("BEGIN CODE\r\nDISPLAY: 1\r\nEND CODE\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := LoadFile(crlf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(src, "\r") {
		t.Errorf("expected carriage returns to be stripped, got=%q", src)
	}

	var out bytes.Buffer
	if err := RunFile(context.Background(), crlf, Options{Output: &out}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "1" {
		t.Errorf("expected=%q, got=%q", "1", out.String())
	}

	if _, err := LoadFile(filepath.Join(dir, "prog.txt")); err == nil || !strings.Contains(err.Error(), "driver: source must have .code extension") {
		t.Errorf("expected extension error, got=%v", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.code")); err == nil || !strings.HasPrefix(err.Error(), "driver: read") {
		t.Errorf("expected read error, got=%v", err)
	}
	if _, err := CheckFile(filepath.Join(dir, "missing.code"), Options{}); err == nil {
		t.Errorf("expected CheckFile to fail for a missing file")
	}
}
