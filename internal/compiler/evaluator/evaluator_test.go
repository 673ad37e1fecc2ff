package evaluator

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arnavsurve/codelang/internal/compiler/ast"
	"github.com/arnavsurve/codelang/internal/compiler/diag"
	"github.com/arnavsurve/codelang/internal/compiler/lexer"
	"github.com/arnavsurve/codelang/internal/compiler/parser"
	"github.com/arnavsurve/codelang/internal/compiler/semantic"
)

func checked(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := parser.NewParser(lexer.NewLexer(src)).ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := semantic.Analyze(program); err != nil {
		t.Fatalf("semantic error: %v", err)
	}
	return program
}

func run(t *testing.T, src, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	e := New(WithInput(StringInput(input)), WithOutput(&out))
	err := e.Execute(checked(t, src))
	return out.String(), err
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		input    string
		expected string
	}{
		{
			name:     "int addition",
			src:      "BEGIN CODE\nINT x=5, y=3\nDISPLAY: x + y\nEND CODE",
			expected: "8",
		},
		{
			name:     "int float promotion",
			src:      "BEGIN CODE\nINT x=5\nFLOAT y=2.5\nDISPLAY: x + y\nEND CODE",
			expected: "7.5",
		},
		{
			name:     "dollar newline",
			src:      "BEGIN CODE\nINT x=10\nDISPLAY: \"Value:\" & $ & x\nEND CODE",
			expected: "Value:\n10",
		},
		{
			name:     "while countdown",
			src:      "BEGIN CODE\nINT x=3\nWHILE (x > 0)\nBEGIN WHILE\nDISPLAY: x\nx = x - 1\nEND WHILE\nEND CODE",
			expected: "321",
		},
		{
			name:     "chained assignment",
			src:      "BEGIN CODE\nINT a, b, c\na = b = c = 2 * 3\nDISPLAY: a & b & c\nEND CODE",
			expected: "666",
		},
		{
			name:     "bool display",
			src:      "BEGIN CODE\nBOOL t = \"TRUE\", f = NOT t\nDISPLAY: t & \",\" & f & \",\" & (1 < 2)\nEND CODE",
			expected: "TRUE,FALSE,TRUE",
		},
		{
			name:     "escapes and chars",
			src:      "BEGIN CODE\nCHAR c = '[&]'\nDISPLAY: [[] & c & [#] & 'z'\nEND CODE",
			expected: "[&#z",
		},
		{
			name:     "integer division",
			src:      "BEGIN CODE\nINT a = 7\nDISPLAY: a / 2 & \" \" & a % 4\nEND CODE",
			expected: "3 3",
		},
		{
			name: "if chain",
			src: `BEGIN CODE
INT x = 0
IF (x > 0)
BEGIN IF
DISPLAY: "pos"
END IF
ELSE IF (x < 0)
BEGIN IF
DISPLAY: "neg"
END IF
ELSE
BEGIN IF
DISPLAY: "zero"
END IF
END CODE`,
			expected: "zero",
		},
		{
			name:     "scan values",
			src:      "BEGIN CODE\nINT a\nFLOAT b\nCHAR c\nBOOL d\nSCAN: a, b, c, d\nDISPLAY: a & \"|\" & b & \"|\" & c & \"|\" & d\nEND CODE",
			input:    "-4, 2.25, q, TRUE\n",
			expected: "-4|2.25|q|TRUE",
		},
		{
			name:     "scan int into float",
			src:      "BEGIN CODE\nFLOAT f\nSCAN: f\nDISPLAY: f * 1.5\nEND CODE",
			input:    "5",
			expected: "7.5",
		},
		{
			name:     "logical operators",
			src:      "BEGIN CODE\nBOOL a = \"TRUE\", b = \"FALSE\"\nDISPLAY: a AND b & a OR b & NOT (a AND b)\nEND CODE",
			expected: "FALSETRUETRUE",
		},
		{
			name:     "string and bool ordering",
			src:      "BEGIN CODE\nBOOL t = \"TRUE\", f = \"FALSE\"\nDISPLAY: (\"a\" < \"b\") & \",\" & (f < t) & \",\" & (t <= f)\nEND CODE",
			expected: "TRUE,TRUE,FALSE",
		},
		{
			name:     "declaration inside loop body runs each iteration",
			src:      "BEGIN CODE\nINT i = 0\nWHILE (i < 3)\nBEGIN WHILE\nINT j = i * 2\nDISPLAY: j\ni = i + 1\nEND WHILE\nEND CODE",
			expected: "024",
		},
		{
			name:     "declaration inside branch is global",
			src:      "BEGIN CODE\nINT i = 0\nIF (i == 0)\nBEGIN IF\nINT j = 5\nEND IF\nDISPLAY: i + j\nEND CODE",
			expected: "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.src, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, out)
			}
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		input    string
		expected string
		output   string
	}{
		{
			name:     "missing input",
			src:      "BEGIN CODE\nINT x,y\nSCAN: x,y\nEND CODE",
			input:    "1\n",
			expected: "Missing input/s.",
		},
		{
			name:     "too many fields",
			src:      "BEGIN CODE\nINT x\nSCAN: x\nEND CODE",
			input:    "1,2\n",
			expected: "Missing input/s.",
		},
		{
			name:     "no input at all",
			src:      "BEGIN CODE\nINT x\nSCAN: x\nEND CODE",
			expected: "Missing input/s.",
		},
		{
			name:     "scan type mismatch",
			src:      "BEGIN CODE\nINT x\nSCAN: x\nEND CODE",
			input:    "abc\n",
			expected: `Unable to assign STRING on "x".`,
		},
		{
			name:     "unassigned read",
			src:      "BEGIN CODE\nINT x\nDISPLAY: \"a\" & $\nDISPLAY: x\nEND CODE",
			expected: "(4,10): Variable 'x' is null.",
			output:   "a\n",
		},
		{
			name:     "division by zero",
			src:      "BEGIN CODE\nINT x = 0\nDISPLAY: 1 / x\nEND CODE",
			expected: "(3,12): Division by zero.",
		},
		{
			name:     "float modulo by zero",
			src:      "BEGIN CODE\nFLOAT x = 0\nDISPLAY: 1.5 % x\nEND CODE",
			expected: "(3,14): Division by zero.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.src, tt.input)
			if err == nil {
				t.Fatalf("expected error %q, got nil (output %q)", tt.expected, out)
			}
			var d *diag.Error
			if !errors.As(err, &d) || d.Phase != diag.Runtime {
				t.Fatalf("expected runtime *diag.Error, got=%T (%v)", err, err)
			}
			if err.Error() != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, err.Error())
			}
			if out != tt.output {
				t.Errorf("output expected=%q, got=%q", tt.output, out)
			}
		})
	}
}

func TestExecuteContextStopsLoop(t *testing.T) {
	program := checked(t, "BEGIN CODE\nBOOL b = \"TRUE\"\nWHILE (b)\nBEGIN WHILE\nb = \"TRUE\"\nEND WHILE\nEND CODE")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	err := New(WithInput(StringInput("")), WithOutput(&out)).ExecuteContext(ctx, program)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got=%v", err)
	}
}

func TestStringInput(t *testing.T) {
	in := StringInput("a\nb\n")
	for _, expected := range []string{"a", "b"} {
		line, err := in.ReadLine()
		if err != nil || line != expected {
			t.Errorf("expected=%q, got=%q (err=%v)", expected, line, err)
		}
	}
	if _, err := in.ReadLine(); err == nil {
		t.Errorf("expected EOF after last line")
	}
}

func TestNewLineReader(t *testing.T) {
	in := NewLineReader(bytes.NewBufferString("1, 2\r\nlast"))
	first, _ := in.ReadLine()
	if got := splitFields(first); len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("expected=[1 2], got=%q", got)
	}
	last, err := in.ReadLine()
	if err != nil || last != "last" {
		t.Errorf("expected=%q, got=%q (err=%v)", "last", last, err)
	}
}
