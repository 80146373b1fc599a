// Package cmd contains the gram subcommands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/gram/cli"
	"github.com/grovetools/gram/config"
	"github.com/grovetools/gram/errors"
	"github.com/grovetools/gram/grammar"
	"github.com/grovetools/gram/parser"
)

// loadProject loads the project config and its grammar file. The config's
// grammar.root override is applied to the returned grammar.
func loadProject(cmd *cobra.Command) (*config.Config, *grammar.Grammar, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid gram.yml")
	}

	g, err := loadGrammar(cfg)
	if err != nil {
		return nil, nil, err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		g.SetTraceLogger(cli.GetLogger(cmd).WithField("component", "engine"))
	}
	return cfg, g, nil
}

func loadGrammar(cfg *config.Config) (*grammar.Grammar, error) {
	path := cfg.GrammarPath()
	if _, err := os.Stat(path); err != nil {
		return nil, errors.GrammarNotFound(path)
	}

	g, err := grammar.Load(path)
	if err != nil {
		return nil, errors.GrammarInvalid(path, err)
	}

	if cfg.Grammar.Root != "" {
		g.Root = parser.TokenType(cfg.Grammar.Root)
		if err := g.Validate(); err != nil {
			return nil, errors.GrammarInvalid(path, err)
		}
	}
	return g, nil
}
