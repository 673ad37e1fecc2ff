package cmd

import (
	"fmt"

	"github.com/arnavsurve/codelang/internal/compiler"
	"github.com/spf13/cobra"
)

// check: parse + analyze without running
var CheckCmd = &cobra.Command{
	Use:   "check <source.code>",
	Short: "Parse and type-check a CODE program without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  checkRun,
}

func checkRun(cmd *cobra.Command, args []string) error {
	src := args[0]

	logf(cmd, "↪ checking %q ...\n", src)

	prog, err := compiler.CheckFile(src, compilerOptions())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✔︎ %s: %d statements, no errors\n", src, len(prog.Statements))
	return nil
}
