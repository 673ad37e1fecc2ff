package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arnavsurve/codelang/internal/compiler"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	replBanner = "CODE REPL. Enter a program from BEGIN CODE to END CODE; :quit exits."
	contPrompt = "....> "
)

// repl: read whole programs interactively and run them
var ReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Type CODE programs in interactively",
	Args:  cobra.NoArgs,
	RunE:  replRun,
}

func replRun(cmd *cobra.Command, args []string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	loadHistory(ln, cfg.History)
	defer saveHistory(ln, cfg.History)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, replBanner)

	prompt := func(p string) (string, error) {
		line, err := ln.Prompt(p)
		if err == nil && strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		return line, err
	}

	for {
		src, err := collectProgram(prompt, cfg.Prompt, contPrompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit":
			return nil
		}

		opts := compilerOptions()
		opts.Input = linerInput{ln}
		opts.Output = out
		if err := compiler.Run(cmd.Context(), src, opts); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		fmt.Fprintln(out)
	}
}

// collectProgram reads lines until a complete program has been entered: a
// line reading END CODE closes it. A first line starting with ':' is a REPL
// command and is returned on its own.
func collectProgram(prompt func(string) (string, error), first, cont string) (string, error) {
	var b strings.Builder
	for {
		p := first
		if b.Len() > 0 {
			p = cont
		}
		line, err := prompt(p)
		if err != nil {
			return "", err
		}

		trimmed := strings.TrimSpace(line)
		if b.Len() == 0 && (trimmed == "" || strings.HasPrefix(trimmed, ":")) {
			return trimmed, nil
		}

		b.WriteString(line)
		b.WriteByte('\n')
		if trimmed == "END CODE" {
			return b.String(), nil
		}
	}
}

// linerInput feeds SCAN from the line editor so input shares the REPL's
// terminal handling.
type linerInput struct {
	ln *liner.State
}

func (l linerInput) ReadLine() (string, error) {
	return l.ln.Prompt("")
}

func loadHistory(ln *liner.State, path string) {
	if path == "" {
		return
	}
	if f, err := os.Open(path); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
}

func saveHistory(ln *liner.State, path string) {
	if path == "" {
		return
	}
	if f, err := os.Create(path); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}
