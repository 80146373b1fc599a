package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/gram/cli"
	"github.com/grovetools/gram/errors"
	"github.com/grovetools/gram/tui/theme"
)

// NewTokensCmd creates the `tokens` command
func NewTokensCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"tokens FILE",
		"Dump the token stream of a file",
	)
	cmd.Long = `Tokenizes a file with the project grammar's terminal rules and prints
one token per line: type, byte offset, and source text. Pruned terminals
(whitespace, comments) are not shown.`
	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		_, g, err := loadProject(cmd)
		if err != nil {
			return err
		}

		filename := args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return errors.InputNotFound(filename)
		}
		code := string(data)

		tokens, err := g.Tokenize(filename, code)
		if err != nil {
			return errors.SyntaxError(filename, err)
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			out, err := json.MarshalIndent(tokens, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		t := theme.DefaultTheme
		for _, token := range tokens {
			fmt.Printf("%s %s %s\n",
				t.Terminal.Render(fmt.Sprintf("%-20s", token.Type)),
				t.Muted.Render(fmt.Sprintf("%6d", token.Offset)),
				t.Value.Render(fmt.Sprintf("%q", token.Value(code))))
		}
		return nil
	}

	return cmd
}
