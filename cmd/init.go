package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
)

//go:embed templates/*
var tplFS embed.FS

// init: scaffold a new project
var InitCmd = &cobra.Command{
	Use:   "init [project-dir]",
	Short: "Scaffold a new CODE project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  initRun,
}

func initRun(cmd *cobra.Command, args []string) error {
	var (
		targetDir string
		project   string
	)

	// targetDir is where files go, project is for templating
	if len(args) == 1 {
		targetDir = args[0]
		project = filepath.Base(args[0])
	} else {
		targetDir = "."
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		project = filepath.Base(cwd)
	}

	// A new subdirectory must not already exist
	if targetDir != "." {
		if _, err := os.Stat(targetDir); err == nil {
			return fmt.Errorf("directory %q already exists", targetDir)
		}
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "↪ scaffolding new project %q ...\n", project)

	if err := os.MkdirAll(filepath.Join(targetDir, "src"), 0o755); err != nil {
		return err
	}

	data := map[string]string{"Project": project}

	files := map[string]string{
		"templates/hello.code.tpl": "src/hello.code",
		"templates/code.yml.tpl":   "code.yml",
		"templates/gitignore.tpl":  ".gitignore",
	}

	for tplPath, outName := range files {
		if err := writeTpl(tplPath, filepath.Join(targetDir, outName), data); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "✓ project %q initialized!\n", project)
	return nil
}

// writeTpl loads tplName from tplFS, executes it with data, and writes to outPath
func writeTpl(tplName, outPath string, data any) error {
	t, err := template.ParseFS(tplFS, tplName)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return t.Execute(f, data)
}
