package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/gram/cli"
	"github.com/grovetools/gram/grammar"
	"github.com/grovetools/gram/tui/theme"
)

// NewFmtCmd creates the `fmt` command
func NewFmtCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"fmt",
		"Rewrite the grammar file in canonical form",
	)
	cmd.Long = `Rewrites the project grammar file in canonical form: terminals first in
declaration order, non-terminals sorted by name, and a single @prune
directive. With --diff the canonical form is printed instead of written.`

	cmd.Flags().Bool("diff", false, "Print the canonical form without writing the file")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := cli.GetLogger(cmd)

		cfg, g, err := loadProject(cmd)
		if err != nil {
			return err
		}

		grammarPath := cfg.GrammarPath()
		canonical := g.Format()

		diff, _ := cmd.Flags().GetBool("diff")
		if diff {
			fmt.Print(canonical)
			return nil
		}

		stale, _, err := grammar.CheckStale(grammarPath, g)
		if err != nil {
			return err
		}
		if !stale {
			fmt.Println(theme.RenderStatus("info", "grammar file is already canonical"))
			return nil
		}

		if err := os.WriteFile(grammarPath, []byte(canonical), 0644); err != nil {
			return err
		}
		logger.WithField("grammar", grammarPath).Debug("rewrote grammar file")
		fmt.Println(theme.RenderStatus("success", fmt.Sprintf("rewrote %s (%d lines)", grammarPath, strings.Count(canonical, "\n"))))

		return nil
	}

	return cmd
}
