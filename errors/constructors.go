package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *GramError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *GramError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// GrammarNotFound creates a grammar file not found error
func GrammarNotFound(path string) *GramError {
	return New(ErrCodeGrammarNotFound, fmt.Sprintf("grammar file not found: %s", path)).
		WithDetail("path", path)
}

// GrammarInvalid wraps a grammar parse or validation failure
func GrammarInvalid(path string, err error) *GramError {
	return Wrap(err, ErrCodeGrammarInvalid, fmt.Sprintf("invalid grammar: %s", path)).
		WithDetail("path", path)
}

// GrammarStale creates an error for a grammar file that differs from its
// canonical formatting or generated artifacts
func GrammarStale(path, artifact string) *GramError {
	return New(ErrCodeGrammarStale,
		fmt.Sprintf("%s is out of date with %s, run 'gram fmt' or 'gram generate'", artifact, path)).
		WithDetail("path", path).
		WithDetail("artifact", artifact)
}

// SyntaxError wraps a tokenize or parse failure on an input file
func SyntaxError(filename string, err error) *GramError {
	return Wrap(err, ErrCodeSyntaxError, fmt.Sprintf("failed to parse %s", filename)).
		WithDetail("file", filename)
}

// InputNotFound creates an error for a missing or unmatched input file
func InputNotFound(pattern string) *GramError {
	return New(ErrCodeInputNotFound, fmt.Sprintf("no input files match: %s", pattern)).
		WithDetail("pattern", pattern)
}

// GenerateFailed wraps a code generation failure
func GenerateFailed(path string, err error) *GramError {
	return Wrap(err, ErrCodeGenerateFailed, fmt.Sprintf("failed to generate %s", path)).
		WithDetail("path", path)
}

// WatchFailed wraps a file watcher failure
func WatchFailed(path string, err error) *GramError {
	return Wrap(err, ErrCodeWatchFailed, fmt.Sprintf("failed to watch %s", path)).
		WithDetail("path", path)
}
