// Package inputs selects the files a gram command operates on, combining
// explicit arguments with the include/exclude patterns from project
// configuration.
package inputs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/moby/patternmatcher"

	"github.com/grovetools/gram/config"
	"github.com/grovetools/gram/errors"
)

// Resolve returns the files to process. Explicit args win: each must
// exist. With no args, the config's include patterns are matched against
// the tree rooted at the config directory, minus the exclude patterns.
func Resolve(cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		for _, arg := range args {
			if _, err := os.Stat(arg); err != nil {
				return nil, errors.InputNotFound(arg)
			}
		}
		return args, nil
	}

	if len(cfg.Inputs.Include) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"no input files given and no inputs.include patterns configured")
	}

	includes, err := patternmatcher.New(cfg.Inputs.Include)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid inputs.include pattern")
	}

	var excludes *patternmatcher.PatternMatcher
	if len(cfg.Inputs.Exclude) > 0 {
		excludes, err = patternmatcher.New(cfg.Inputs.Exclude)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid inputs.exclude pattern")
		}
	}

	root := cfg.Dir
	if root == "" {
		root = "."
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		matched, err := includes.MatchesOrParentMatches(rel)
		if err != nil || !matched {
			return err
		}
		if excludes != nil {
			excluded, err := excludes.MatchesOrParentMatches(rel)
			if err != nil {
				return err
			}
			if excluded {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to scan input files")
	}

	if len(files) == 0 {
		return nil, errors.InputNotFound(cfg.Inputs.Include[0])
	}

	sort.Strings(files)
	return files, nil
}
