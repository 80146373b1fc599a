package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/gram/errors"
	"github.com/grovetools/gram/render"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	// Positioned errors (syntax errors, grammar errors) render with
	// their source line and a caret.
	if gramErr, ok := err.(*errors.GramError); ok && gramErr.Cause != nil {
		if _, ok := gramErr.Cause.(render.Positioned); ok {
			render.Diagnostic(os.Stderr, gramErr.Cause)
			return err
		}
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No gram.yml found. Create one with a 'grammar.path' entry.\n")
		return err

	case errors.ErrCodeGrammarNotFound:
		if gramErr, ok := err.(*errors.GramError); ok {
			fmt.Fprintf(os.Stderr, "❌ Grammar file '%s' not found\n", gramErr.Details["path"])
			fmt.Fprintf(os.Stderr, "Check the 'grammar.path' entry in gram.yml.\n")
		}
		return err

	case errors.ErrCodeGrammarStale:
		if gramErr, ok := err.(*errors.GramError); ok {
			fmt.Fprintf(os.Stderr, "❌ %s is out of date\n", gramErr.Details["artifact"])
			fmt.Fprintf(os.Stderr, "Run 'gram fmt' or 'gram generate' to refresh it.\n")
		}
		return err

	case errors.ErrCodeInputNotFound:
		if gramErr, ok := err.(*errors.GramError); ok {
			fmt.Fprintf(os.Stderr, "❌ No input files match '%s'\n", gramErr.Details["pattern"])
		}
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if gramErr, ok := err.(*errors.GramError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", gramErr.ToJSON())
			}
		}
		return err
	}
}
