// Package launch turns detected projects into an editor debugger launch file.
//
// Each project kind maps to one record type. All record types embed Common
// so the shared name/type/request fields lead every JSON object.
package launch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/luuuc/launchgen/internal/detect"
	"github.com/luuuc/launchgen/internal/fs"
)

// Version is the launch file schema version written to every file.
const Version = "0.2.0"

// WorkspaceFolder is the editor variable for the workspace root.
const WorkspaceFolder = "${workspaceFolder}"

const (
	requestLaunch      = "launch"
	integratedTerminal = "integratedTerminal"
)

// Configuration is one launch record.
type Configuration interface {
	Label() string
	Kind() detect.Kind
}

// Common holds the fields every record carries.
type Common struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Request string `json:"request"`
}

// Label returns the display name shown in the editor's debug picker.
func (c Common) Label() string { return c.Name }

// GoLaunch launches a Go package.
type GoLaunch struct {
	Common
	Console string `json:"console"`
	Program string `json:"program"`
}

// Kind reports the project kind the record was generated for.
func (GoLaunch) Kind() detect.Kind { return detect.Go }

// BrowserLaunch opens a browser debugging session against a dev server.
type BrowserLaunch struct {
	Common
	URL     string `json:"url"`
	WebRoot string `json:"webRoot"`
}

// Kind reports the project kind the record was generated for.
func (BrowserLaunch) Kind() detect.Kind { return detect.Web }

// NativeLaunch runs a binary built by a pre-launch task.
type NativeLaunch struct {
	Common
	PreLaunchTask string   `json:"preLaunchTask"`
	Console       string   `json:"console"`
	Program       string   `json:"program"`
	Args          []string `json:"args"`
	Cwd           string   `json:"cwd"`
}

// Kind reports the project kind the record was generated for.
func (NativeLaunch) Kind() detect.Kind { return detect.Rust }

// PythonLaunch runs a single Python file.
type PythonLaunch struct {
	Common
	Program string `json:"program"`
	Console string `json:"console"`
	// PythonPath is omitted so the editor falls back to its own interpreter.
	PythonPath string `json:"pythonPath,omitempty"`
}

// Kind reports the project kind the record was generated for.
func (PythonLaunch) Kind() detect.Kind { return detect.Python }

// File is the launch file artifact.
type File struct {
	Version        string          `json:"version"`
	Configurations []Configuration `json:"configurations"`
}

// NewFile returns an empty launch file.
func NewFile() *File {
	return &File{Version: Version, Configurations: []Configuration{}}
}

// Len returns the number of records.
func (f *File) Len() int {
	return len(f.Configurations)
}

// Counts tallies records by the project kind that produced them.
func (f *File) Counts() map[detect.Kind]int {
	counts := make(map[detect.Kind]int)
	for _, c := range f.Configurations {
		counts[c.Kind()]++
	}
	return counts
}

// JSON renders the file with four-space indentation and a trailing newline.
func (f *File) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode launch file: %w", err)
	}
	return buf.Bytes(), nil
}

// Write stores f as dir/name, creating dir when needed and replacing any
// previous file. The write is not atomic.
func Write(f *File, dir, name string) (string, error) {
	data, err := f.JSON()
	if err != nil {
		return "", err
	}
	path, err := fs.WriteFileAll(dir, name, data)
	if err != nil {
		return "", fmt.Errorf("failed to write launch file: %w", err)
	}
	return path, nil
}

// workspacePath anchors a slash path relative to the workspace root.
func workspacePath(rel string) string {
	if rel == "" || rel == "." {
		return WorkspaceFolder
	}
	return WorkspaceFolder + "/" + rel
}
