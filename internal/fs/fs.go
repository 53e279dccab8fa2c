// Package fs provides common filesystem helper functions.
package fs

import (
	"os"
	"path/filepath"
	"strings"
)

// HiddenPrefix marks files and directories that scans never descend into.
const HiddenPrefix = "."

// FileExists checks if a file or directory exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsFileIn reports whether dir holds a non-directory entry called name.
func IsFileIn(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}

// IsHidden reports whether a base name starts with the hidden prefix.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, HiddenPrefix)
}

// SlashRel returns target relative to base with forward slashes.
// ok is false when target lies outside base.
func SlashRel(base, target string) (rel string, ok bool) {
	r, err := filepath.Rel(base, target)
	if err != nil {
		return "", false
	}
	if r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(r), true
}

// WriteFileAll creates dir if needed and writes data to dir/name,
// replacing any existing file.
func WriteFileAll(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
