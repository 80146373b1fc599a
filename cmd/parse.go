package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grovetools/gram/cli"
	"github.com/grovetools/gram/errors"
	"github.com/grovetools/gram/pkg/inputs"
	"github.com/grovetools/gram/render"
	"github.com/grovetools/gram/tui/treeview"
)

// NewParseCmd creates the `parse` command
func NewParseCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"parse [FILE...]",
		"Parse files with the project grammar",
	)
	cmd.Long = `Parses the given files with the project grammar and prints their parse
trees. Without arguments, the files matching the inputs.include patterns
in gram.yml are parsed.`

	cmd.Flags().BoolP("interactive", "i", false, "Explore the parse tree in a TUI")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := cli.GetLogger(cmd)

		cfg, g, err := loadProject(cmd)
		if err != nil {
			return err
		}

		files, err := inputs.Resolve(cfg, args)
		if err != nil {
			return err
		}

		interactive, _ := cmd.Flags().GetBool("interactive")
		if interactive && len(files) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "--interactive needs exactly one input file")
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")

		for _, filename := range files {
			logger.WithField("file", filename).Debug("parsing input")

			data, err := os.ReadFile(filename)
			if err != nil {
				return errors.InputNotFound(filename)
			}
			code := string(data)

			tree, tokens, err := g.Parse(filename, code)
			if err != nil {
				return errors.SyntaxError(filename, err)
			}

			switch {
			case interactive:
				p := tea.NewProgram(treeview.New(filename, tree, tokens, code), tea.WithAltScreen())
				if _, err := p.Run(); err != nil {
					return err
				}

			case jsonOutput:
				out, err := json.MarshalIndent(tree, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))

			default:
				if len(files) > 1 {
					fmt.Printf("%s:\n", filename)
				}
				render.Tree(os.Stdout, tree, tokens, code)
			}
		}

		return nil
	}

	return cmd
}
