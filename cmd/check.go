package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/gram/cli"
	"github.com/grovetools/gram/errors"
	"github.com/grovetools/gram/grammar"
	"github.com/grovetools/gram/tui/theme"
)

// NewCheckCmd creates the `check` command
func NewCheckCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"check",
		"Validate the grammar and check derived files",
	)
	cmd.Long = `Validates the project grammar and verifies that the grammar file is in
canonical form and that generated code, if configured, is up to date.
Exits non-zero when anything is stale.`

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := cli.GetLogger(cmd)

		cfg, g, err := loadProject(cmd)
		if err != nil {
			return err
		}

		grammarPath := cfg.GrammarPath()
		logger.WithField("grammar", grammarPath).Debug("grammar is valid")
		fmt.Println(theme.RenderStatus("success", "grammar is valid"))

		stale, _, err := grammar.CheckStale(grammarPath, g)
		if err != nil {
			return err
		}
		if stale {
			return errors.GrammarStale(grammarPath, "grammar formatting")
		}
		fmt.Println(theme.RenderStatus("success", "grammar file is in canonical form"))

		if genPath := cfg.GeneratePath(); genPath != "" {
			want, err := g.GenerateGo(cfg.Generate.Package)
			if err != nil {
				return errors.GenerateFailed(genPath, err)
			}
			have, err := os.ReadFile(genPath)
			if err != nil || !bytes.Equal(have, want) {
				return errors.GrammarStale(grammarPath, genPath)
			}
			fmt.Println(theme.RenderStatus("success", "generated code is up to date"))
		}

		return nil
	}

	return cmd
}
