package compiler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arnavsurve/codelang/internal/compiler/evaluator"
)

const runTimeout = 5 * time.Second // per program, guards against runaway loops

type goldenResult struct {
	output string
	err    error
}

// runGolden runs one program with its optional .in file as stdin.
func runGolden(t *testing.T, file string) goldenResult {
	t.Helper()

	input := ""
	if b, err := os.ReadFile(strings.TrimSuffix(file, SourceExt) + ".in"); err == nil {
		input = string(b)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	var out bytes.Buffer
	err := RunFile(ctx, file, Options{
		Input:  evaluator.StringInput(input),
		Output: &out,
	})
	return goldenResult{output: out.String(), err: err}
}

func readExpected(t *testing.T, file, ext string) string {
	t.Helper()
	path := strings.TrimSuffix(file, SourceExt) + ext
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("missing expected output: %s", path)
	}
	// Normalize line endings before comparison
	return strings.ReplaceAll(string(b), "\r\n", "\n")
}

func TestGoodPrograms(t *testing.T) {
	files, _ := filepath.Glob(filepath.Join("testdata", "good", "*"+SourceExt))
	if len(files) == 0 {
		t.Fatalf("no good test programs found")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			res := runGolden(t, file)
			if res.err != nil {
				t.Fatalf("unexpected error: %v\nOutput:\n%s", res.err, res.output)
			}
			expected := readExpected(t, file, ".out")
			if res.output != expected {
				t.Errorf("output mismatch\nExpected:\n%q\nActual:\n%q", expected, res.output)
			}
		})
	}
}

// Bad programs must fail with exactly the message in their .err file. Any
// output produced before the failure is compared against an optional .out.
func TestBadPrograms(t *testing.T) {
	files, _ := filepath.Glob(filepath.Join("testdata", "bad", "*"+SourceExt))
	if len(files) == 0 {
		t.Fatalf("no bad test programs found")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			res := runGolden(t, file)
			if res.err == nil {
				t.Fatalf("expected failure but got success.\nOutput:\n%s", res.output)
			}
			expected := strings.TrimSpace(readExpected(t, file, ".err"))
			if res.err.Error() != expected {
				t.Errorf("error mismatch\nExpected: %s\nActual:   %s", expected, res.err)
			}

			outPath := strings.TrimSuffix(file, SourceExt) + ".out"
			wantOut := ""
			if _, err := os.Stat(outPath); err == nil {
				wantOut = readExpected(t, file, ".out")
			}
			if res.output != wantOut {
				t.Errorf("output before failure expected=%q, got=%q", wantOut, res.output)
			}
		})
	}
}
