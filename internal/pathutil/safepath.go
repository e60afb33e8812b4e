// Package pathutil locates the board's data directory and resolves
// user-supplied file paths inside it.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// appDirName is the directory created under the user config dir.
const appDirName = "workboard"

// DefaultDataDir returns <user config dir>/workboard, e.g.
// ~/.config/workboard on Linux.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// ResolveSafePath resolves userPath against baseDir and guarantees the result
// stays inside baseDir once symlinks are followed.
//
// Relative paths are joined to baseDir; absolute paths are accepted only if
// they already point inside it. Neither path needs to exist yet: the deepest
// existing ancestor is resolved and the missing tail re-attached.
//
// Example:
//
//	p, err := ResolveSafePath("/home/u/.config/workboard", "boards/team.json")
//	// p == "/home/u/.config/workboard/boards/team.json"
func ResolveSafePath(baseDir, userPath string) (string, error) {
	if strings.TrimSpace(userPath) == "" {
		return "", fmt.Errorf("path is empty or whitespace-only")
	}
	if strings.ContainsRune(userPath, 0) {
		return "", fmt.Errorf("path contains null byte")
	}

	candidate := userPath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}

	resolved, err := resolveExisting(filepath.Clean(candidate))
	if err != nil {
		return "", err
	}
	root, err := resolveExisting(filepath.Clean(baseDir))
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes data directory: %s", userPath)
	}
	return resolved, nil
}

// resolveExisting follows symlinks in the longest existing prefix of path and
// appends the components that do not exist yet.
func resolveExisting(path string) (string, error) {
	current := path
	var missing []string

	for {
		if _, err := os.Lstat(current); err == nil {
			resolved, err := filepath.EvalSymlinks(current)
			if err != nil {
				return "", fmt.Errorf("failed to resolve symlinks: %w", err)
			}
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing parent directory for %s", path)
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}
