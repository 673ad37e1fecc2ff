package evaluator

import (
	"bufio"
	"io"
	"strings"
)

// LineReader supplies one line of SCAN input per call. It returns io.EOF once
// no input is left.
type LineReader interface {
	ReadLine() (string, error)
}

type scannerReader struct {
	sc *bufio.Scanner
}

// NewLineReader reads lines from r.
func NewLineReader(r io.Reader) LineReader {
	return &scannerReader{sc: bufio.NewScanner(r)}
}

func (s *scannerReader) ReadLine() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Lines is a fixed list of input lines, handy for tests and scripted runs.
type Lines []string

// StringInput splits text into lines.
func StringInput(text string) *Lines {
	lines := Lines(strings.Split(strings.TrimSuffix(text, "\n"), "\n"))
	if text == "" {
		lines = nil
	}
	return &lines
}

func (l *Lines) ReadLine() (string, error) {
	if len(*l) == 0 {
		return "", io.EOF
	}
	line := (*l)[0]
	*l = (*l)[1:]
	return line, nil
}
