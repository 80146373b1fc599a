package main

import (
	"os"

	"github.com/grovetools/gram/cli"
	"github.com/grovetools/gram/cmd"
	"github.com/grovetools/gram/pkg/profiling"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"gram",
		"Grammar-driven tokenizer and parser toolkit",
	)
	rootCmd.Long = `gram reads a grammar file describing terminals and parse rules, and
tokenizes, parses, formats, and generates Go code from it. Projects are
configured with a gram.yml file discovered in the current directory or
any parent.`

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(rootCmd)
	rootCmd.PersistentPreRunE = profiler.PreRun
	rootCmd.PersistentPostRun = profiler.PostRun

	rootCmd.AddCommand(
		cmd.NewTokensCmd(),
		cmd.NewParseCmd(),
		cmd.NewCheckCmd(),
		cmd.NewFmtCmd(),
		cmd.NewGenerateCmd(),
		cmd.NewWatchCmd(),
		cli.NewVersionCommand("gram"),
	)

	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
