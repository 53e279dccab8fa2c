// Package ignore answers whether a path under a scan root is excluded by the
// root's .gitignore.
package ignore

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	gitignore "github.com/denormal/go-gitignore"
	"go.uber.org/zap"
)

// FileName is the ignore-rules file read from the scan root.
const FileName = ".gitignore"

// Matcher wraps the rules parsed from a single ignore file.
// The zero value and a nil *Matcher exclude nothing.
type Matcher struct {
	rules gitignore.GitIgnore
}

// Load parses <root>/.gitignore. A missing file is not an error: the
// returned matcher simply excludes nothing.
func Load(root string) (*Matcher, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Matcher{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	base, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	// The rules are parsed from memory, so only pattern errors reach the
	// handler. Bad patterns are dropped; the remaining rules still apply.
	rules := gitignore.New(bytes.NewReader(data), base, func(e gitignore.Error) bool {
		zap.L().Debug("skipping ignore pattern", zap.String("file", path), zap.String("error", e.Error()))
		return true
	})

	return &Matcher{rules: rules}, nil
}

// Excluded reports whether rel, a path relative to the scan root, matches
// an ignore rule. Negated rules re-include what earlier rules excluded.
func (m *Matcher) Excluded(rel string, isDir bool) bool {
	if m == nil || m.rules == nil {
		return false
	}
	rel = filepath.Clean(rel)
	if rel == "." || rel == "" {
		return false
	}

	match := m.rules.Relative(rel, isDir)
	return match != nil && match.Ignore()
}
