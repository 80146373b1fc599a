package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grovetools/gram/cli"
	"github.com/grovetools/gram/errors"
	"github.com/grovetools/gram/tui/theme"
)

// NewGenerateCmd creates the `generate` command
func NewGenerateCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"generate",
		"Generate Go source for the grammar",
	)
	cmd.Long = `Generates a Go source file embedding the grammar's terminal rules and
parse rules, written to the generate.path configured in gram.yml. The
generated file needs no grammar file at runtime.`

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := cli.GetLogger(cmd)

		cfg, g, err := loadProject(cmd)
		if err != nil {
			return err
		}

		genPath := cfg.GeneratePath()
		if genPath == "" {
			return errors.New(errors.ErrCodeInvalidInput, "no generate.path configured in gram.yml")
		}

		source, err := g.GenerateGo(cfg.Generate.Package)
		if err != nil {
			return errors.GenerateFailed(genPath, err)
		}

		if err := os.MkdirAll(filepath.Dir(genPath), 0755); err != nil {
			return errors.GenerateFailed(genPath, err)
		}
		if err := os.WriteFile(genPath, source, 0644); err != nil {
			return errors.GenerateFailed(genPath, err)
		}

		logger.WithField("path", genPath).Debug("wrote generated code")
		fmt.Println(theme.RenderStatus("success", fmt.Sprintf("generated %s", genPath)))

		return nil
	}

	return cmd
}
