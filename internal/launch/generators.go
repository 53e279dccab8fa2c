package launch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/luuuc/launchgen/internal/detect"
	"github.com/luuuc/launchgen/internal/fs"
	"github.com/pelletier/go-toml/v2"
)

const (
	cargoManifest   = "Cargo.toml"
	cargoBuildTask  = "rust: cargo build"
	cargoTargetPath = "target/debug/"
)

// GoConfig builds the record for a Go module root.
func GoConfig(p detect.Project) Configuration {
	return GoLaunch{
		Common: Common{
			Name:    fmt.Sprintf("Launch Go Package (%s)", p.Path),
			Type:    "go",
			Request: requestLaunch,
		},
		Console: integratedTerminal,
		Program: workspacePath(p.Path),
	}
}

// BrowserConfig builds the record for a web project served at url.
func BrowserConfig(p detect.Project, url string) Configuration {
	return BrowserLaunch{
		Common: Common{
			Name:    fmt.Sprintf("Launch Chrome (%s)", p.Path),
			Type:    "chrome",
			Request: requestLaunch,
		},
		URL:     url,
		WebRoot: workspacePath(p.Path),
	}
}

// ManifestError reports a Cargo.toml that could not be read or decoded into
// records.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("malformed manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

type manifest struct {
	Package *struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Bin []struct {
		Name string `toml:"name"`
	} `toml:"bin"`
}

// NativeConfigs builds one record per binary target of the crate at
// p.Path under root. A manifest without a [package] table is a workspace
// manifest and yields no records.
func NativeConfigs(root string, p detect.Project) ([]Configuration, error) {
	path := filepath.Join(root, filepath.FromSlash(p.Path), cargoManifest)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}
	if m.Package == nil {
		return nil, nil
	}
	if m.Package.Name == "" {
		return nil, &ManifestError{Path: path, Err: fmt.Errorf("[package] has no name")}
	}

	// Without [[bin]] entries cargo builds a single binary named after the package.
	if len(m.Bin) == 0 {
		return []Configuration{nativeConfig(strings.ReplaceAll(m.Package.Name, "-", "_"))}, nil
	}

	configs := make([]Configuration, 0, len(m.Bin))
	for i, bin := range m.Bin {
		if bin.Name == "" {
			return nil, &ManifestError{Path: path, Err: fmt.Errorf("[[bin]] entry %d has no name", i+1)}
		}
		configs = append(configs, nativeConfig(bin.Name))
	}
	return configs, nil
}

func nativeConfig(bin string) Configuration {
	return NativeLaunch{
		Common: Common{
			Name:    fmt.Sprintf("Debug executable '%s'", bin),
			Type:    "lldb",
			Request: requestLaunch,
		},
		PreLaunchTask: cargoBuildTask,
		Console:       integratedTerminal,
		Program:       workspacePath(cargoTargetPath + bin),
		Args:          []string{},
		Cwd:           WorkspaceFolder,
	}
}

// PythonConfig builds the record for a Python entry file. An empty
// interpreter leaves pythonPath out of the record.
func PythonConfig(p detect.Project, interpreter string) Configuration {
	return PythonLaunch{
		Common: Common{
			Name:    fmt.Sprintf("Python: %s", p.Path),
			Type:    "debugpy",
			Request: requestLaunch,
		},
		Program:    workspacePath(p.Path),
		Console:    integratedTerminal,
		PythonPath: interpreter,
	}
}

// Env is the slice of process state the interpreter lookup reads.
type Env struct {
	Getenv func(string) string
	GOOS   string
}

func (e Env) withDefaults() Env {
	if e.Getenv == nil {
		e.Getenv = os.Getenv
	}
	if e.GOOS == "" {
		e.GOOS = runtime.GOOS
	}
	return e
}

// Interpreter locates the python executable of the active virtualenv or
// conda environment. It returns "" when no environment is active or the
// executable is missing. Paths inside root are rendered workspace-relative.
func Interpreter(root string, env Env) string {
	env = env.withDefaults()

	prefix := env.Getenv("VIRTUAL_ENV")
	if prefix == "" {
		prefix = env.Getenv("CONDA_PREFIX")
	}
	if prefix == "" {
		return ""
	}

	var path string
	if env.GOOS == "windows" {
		path = filepath.Join(prefix, "Scripts", "python.exe")
	} else {
		path = filepath.Join(prefix, "bin", "python")
	}
	if !fs.FileExists(path) {
		return ""
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	if absRoot, err := filepath.Abs(root); err == nil {
		if rel, ok := fs.SlashRel(absRoot, absPath); ok {
			return workspacePath(rel)
		}
	}
	return filepath.ToSlash(absPath)
}
