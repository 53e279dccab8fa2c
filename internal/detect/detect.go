// Package detect finds sub-projects in a directory tree by their marker files
// and Python entry points.
package detect

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	lfs "github.com/luuuc/launchgen/internal/fs"
	"github.com/luuuc/launchgen/internal/ignore"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/mod/modfile"
)

// Kind identifies the language of a detected project.
type Kind int

const (
	Go Kind = iota
	Web
	Rust
	Python
)

func (k Kind) String() string {
	switch k {
	case Go:
		return "go"
	case Web:
		return "typescript"
	case Rust:
		return "rust"
	case Python:
		return "python"
	}
	return "unknown"
}

// MarshalText renders the kind as its language tag.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Marker pairs a marker filename with the project kind it signals.
type Marker struct {
	File string
	Kind Kind
}

// Markers are scanned in this order.
var Markers = []Marker{
	{File: "go.mod", Kind: Go},
	{File: "package.json", Kind: Web},
	{File: "Cargo.toml", Kind: Rust},
}

// EntryExtension is the source extension inspected for entry points.
const EntryExtension = ".py"

var entryPrefixes = [][]byte{
	[]byte("#!/usr/bin/env python"),
	[]byte("#!/usr/bin/python"),
}

var mainToken = []byte("__main__")

// binarySniffLen bounds the NUL-byte check used to skip binary files.
const binarySniffLen = 8000

// Project is a single detection hit.
type Project struct {
	Kind Kind `json:"kind"`
	// Path is slash-separated and relative to the scan root. It names the
	// project directory, or the entry file for Python.
	Path string `json:"path"`
	// Name is a best-effort project name; empty when unknown.
	Name string `json:"name,omitempty"`
}

// Scanner walks one tree, pruning hidden and ignored directories.
type Scanner struct {
	root    string
	matcher *ignore.Matcher
}

// NewScanner returns a scanner rooted at root. A nil matcher excludes nothing.
func NewScanner(root string, m *ignore.Matcher) *Scanner {
	return &Scanner{root: root, matcher: m}
}

// walk visits every directory and file the scan is allowed to see. Hidden and
// ignored subdirectories are skipped before they are entered.
func (s *Scanner) walk(visit func(path, rel string, d fs.DirEntry)) error {
	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			zap.L().Debug("skipping unreadable path", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() && path != s.root {
				return filepath.SkipDir
			}
			if path == s.root {
				return err
			}
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil
		}

		if d.IsDir() && rel != "." {
			if lfs.IsHidden(d.Name()) {
				return filepath.SkipDir
			}
			if s.matcher.Excluded(rel, true) {
				zap.L().Debug("pruning ignored directory", zap.String("dir", rel))
				return filepath.SkipDir
			}
		}

		visit(path, rel, d)
		return nil
	})
}

// FindMarkerRoots returns every directory, relative to the root, that holds a
// file named marker. Parents come before their children.
func (s *Scanner) FindMarkerRoots(marker string) ([]string, error) {
	var roots []string
	err := s.walk(func(path, rel string, d fs.DirEntry) {
		if !d.IsDir() || !lfs.IsFileIn(path, marker) {
			return
		}
		if s.matcher.Excluded(filepath.Join(rel, marker), false) {
			return
		}
		roots = append(roots, rel)
	})
	if err != nil {
		return nil, err
	}
	return roots, nil
}

// FindEntryFiles returns every file with extension ext whose content marks
// it as a program entry point. Unreadable and binary files are skipped.
func (s *Scanner) FindEntryFiles(ext string) ([]string, error) {
	var files []string
	err := s.walk(func(path, rel string, d fs.DirEntry) {
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return
		}
		if s.matcher.Excluded(rel, false) {
			return
		}

		content, err := os.ReadFile(path)
		if err != nil {
			zap.L().Debug("skipping unreadable file", zap.String("file", rel), zap.Error(err))
			return
		}
		if isBinary(content) {
			zap.L().Debug("skipping binary file", zap.String("file", rel))
			return
		}
		if IsEntryPoint(content) {
			files = append(files, rel)
		}
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// IsEntryPoint reports whether content starts with a Python shebang or
// contains the __main__ idiom.
func IsEntryPoint(content []byte) bool {
	for _, prefix := range entryPrefixes {
		if bytes.HasPrefix(content, prefix) {
			return true
		}
	}
	return bytes.Contains(content, mainToken)
}

func isBinary(content []byte) bool {
	head := content
	if len(head) > binarySniffLen {
		head = head[:binarySniffLen]
	}
	return bytes.IndexByte(head, 0) >= 0
}

// Scan detects all projects under root: the marker kinds in Markers order,
// then Python entry files.
func Scan(root string) ([]Project, error) {
	m, err := ignore.Load(root)
	if err != nil {
		return nil, err
	}
	s := NewScanner(root, m)

	projects := []Project{}
	for _, marker := range Markers {
		dirs, err := s.FindMarkerRoots(marker.File)
		if err != nil {
			return nil, err
		}
		zap.L().Debug("marker scan complete", zap.String("marker", marker.File), zap.Int("found", len(dirs)))
		for _, dir := range dirs {
			projects = append(projects, Project{
				Kind: marker.Kind,
				Path: filepath.ToSlash(dir),
				Name: projectName(filepath.Join(root, dir), marker),
			})
		}
	}

	files, err := s.FindEntryFiles(EntryExtension)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("entry scan complete", zap.String("extension", EntryExtension), zap.Int("found", len(files)))
	for _, f := range files {
		projects = append(projects, Project{
			Kind: Python,
			Path: filepath.ToSlash(f),
			Name: strings.TrimSuffix(filepath.Base(f), EntryExtension),
		})
	}

	return projects, nil
}

// Counts tallies projects by kind.
func Counts(projects []Project) map[Kind]int {
	counts := make(map[Kind]int)
	for _, p := range projects {
		counts[p.Kind]++
	}
	return counts
}

// projectName reads the manifest for a display name. Failures yield "".
func projectName(dir string, marker Marker) string {
	data, err := os.ReadFile(filepath.Join(dir, marker.File))
	if err != nil {
		return ""
	}

	switch marker.Kind {
	case Go:
		return modfile.ModulePath(data)
	case Web:
		var pkg struct {
			Name string `json:"name"`
		}
		if json.Unmarshal(data, &pkg) == nil {
			return pkg.Name
		}
	case Rust:
		var manifest struct {
			Package struct {
				Name string `toml:"name"`
			} `toml:"package"`
		}
		if toml.Unmarshal(data, &manifest) == nil {
			return manifest.Package.Name
		}
	}
	return ""
}
