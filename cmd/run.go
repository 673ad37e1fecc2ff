package cmd

import (
	"github.com/arnavsurve/codelang/internal/compiler"
	"github.com/arnavsurve/codelang/internal/compiler/evaluator"
	"github.com/spf13/cobra"
)

// run: execute a program
var RunCmd = &cobra.Command{
	Use:   "run [source.code]",
	Short: "Run a CODE program",
	Long:  "Run a CODE program. Without an argument the entry from code.yml is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	src := cfg.Entry
	if len(args) == 1 {
		src = args[0]
	}

	logf(cmd, "↪ running %q ...\n", src)

	opts := compilerOptions()
	opts.Input = evaluator.NewLineReader(cmd.InOrStdin())
	opts.Output = cmd.OutOrStdout()
	if err := compiler.RunFile(cmd.Context(), src, opts); err != nil {
		return err
	}

	logf(cmd, "\n✔︎ %s finished\n", src)
	return nil
}
