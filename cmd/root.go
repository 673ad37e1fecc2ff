package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/arnavsurve/codelang/internal/compiler"
	"github.com/arnavsurve/codelang/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "code",
	Short: "Interpreter for the CODE teaching language",
	Long: `code runs programs written in the CODE teaching language.

Commands:
  init     Scaffold a new CODE project
  run      Run a (.code) program
  check    Parse and type-check a program without running it
  inspect  Print the tokens or syntax tree of a program
  repl     Type programs in interactively
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if cfg.Path != "" {
			logf(cmd, "↪ using config %s\n", cfg.Path)
		}
		return nil
	},
}

// Execute runs the command tree. An interrupt cancels the running program.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "project config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress to stderr")

	rootCmd.AddCommand(InitCmd, RunCmd, CheckCmd, InspectCmd, ReplCmd)
}

// logf prints a progress line on stderr when --verbose is set.
func logf(cmd *cobra.Command, format string, args ...any) {
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
	}
}

func compilerOptions() compiler.Options {
	return compiler.Options{MaxDepth: cfg.MaxDepth}
}
