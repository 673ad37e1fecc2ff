package cmd

import (
	"fmt"

	"github.com/arnavsurve/codelang/internal/compiler"
	"github.com/spf13/cobra"
)

var (
	showTokens bool
	showAST    bool
)

// inspect: dump the token stream and/or the syntax tree
var InspectCmd = &cobra.Command{
	Use:   "inspect <source.code>",
	Short: "Print the tokens or syntax tree of a CODE program",
	Args:  cobra.ExactArgs(1),
	RunE:  inspectRun,
}

func init() {
	InspectCmd.Flags().BoolVar(&showTokens, "tokens", false, "print the token stream")
	InspectCmd.Flags().BoolVar(&showAST, "ast", false, "print the syntax tree (default when no flag is given)")
}

func inspectRun(cmd *cobra.Command, args []string) error {
	src, err := compiler.LoadFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if showTokens {
		fmt.Fprintln(out, "Tokens:")
		for _, tok := range compiler.Tokens(src) {
			fmt.Fprintf(out, "  %s\n", tok)
		}
	}

	if showAST || !showTokens {
		prog, err := compiler.Parse(src, compilerOptions())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "AST:")
		fmt.Fprintln(out, prog.String())
	}
	return nil
}
