package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/grovetools/gram/tui/theme"
)

const maxWidth = 72
const minWidth = 40

// getTerminalWidth returns the terminal width capped at maxWidth.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth {
		return maxWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// wrapText wraps text to the specified width, preserving existing line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = maxWidth
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			result = append(result, paragraph)
			continue
		}

		var line string
		for _, word := range strings.Fields(paragraph) {
			if line == "" {
				line = word
			} else if len(line)+1+len(word) <= width {
				line += " " + word
			} else {
				result = append(result, line)
				line = word
			}
		}
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// SetStyledHelp applies consistent gram styling to a command's help output.
// Call this on the root command before Execute().
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
}

func styledHelpFunc(cmd *cobra.Command, args []string) {
	t := theme.DefaultTheme
	width := getTerminalWidth() - 2

	fmt.Println(" " + t.Header.Render(strings.ToUpper(cmd.CommandPath())))

	description := cmd.Long
	if description == "" {
		description = cmd.Short
	}
	if description != "" {
		for _, line := range strings.Split(wrapText(description, width), "\n") {
			fmt.Println(" " + line)
		}
	}

	if cmd.Runnable() {
		fmt.Println()
		fmt.Println(" " + t.Muted.Render("USAGE"))
		fmt.Println("   " + cmd.UseLine())
	}

	if subs := visibleSubcommands(cmd); len(subs) > 0 {
		fmt.Println()
		fmt.Println(" " + t.Muted.Render("COMMANDS"))
		for _, sub := range subs {
			fmt.Printf("   %s %s\n",
				t.Accent.Render(fmt.Sprintf("%-12s", sub.Name())),
				sub.Short)
		}
	}

	if cmd.HasAvailableFlags() {
		fmt.Println()
		fmt.Println(" " + t.Muted.Render("FLAGS"))
		cmd.Flags().VisitAll(func(flag *pflag.Flag) {
			if flag.Hidden {
				return
			}
			name := "--" + flag.Name
			if flag.Shorthand != "" {
				name = "-" + flag.Shorthand + ", " + name
			}
			fmt.Printf("   %s %s\n",
				t.Accent.Render(fmt.Sprintf("%-16s", name)),
				flag.Usage)
		})
	}

	if len(visibleSubcommands(cmd)) > 0 {
		fmt.Println()
		fmt.Println(" " + t.Muted.Render(
			fmt.Sprintf("Run '%s COMMAND --help' for more information.", cmd.CommandPath())))
	}
}

func visibleSubcommands(cmd *cobra.Command) []*cobra.Command {
	var subs []*cobra.Command
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			subs = append(subs, sub)
		}
	}
	return subs
}
