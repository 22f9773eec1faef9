package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	return os.ExpandEnv(path)
}

// ResolvePaths expands each pattern and its globs into a de-duplicated list of
// files, keeping the order the patterns were given in. A pattern with no glob
// match is kept when it names an existing file.
func ResolvePaths(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		expanded := ExpandPath(pattern)
		matches, err := filepath.Glob(expanded)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(expanded); err == nil {
				add(expanded)
			}
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}

	if len(files) == 0 {
		return nil, common.ErrNoImportFiles
	}
	return files, nil
}
