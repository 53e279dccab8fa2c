package launch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/luuuc/launchgen/internal/detect"
)

func writeManifest(t *testing.T, root, dir, content string) detect.Project {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(dir))
	if err := os.MkdirAll(full, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(full, "Cargo.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return detect.Project{Kind: detect.Rust, Path: dir}
}

func TestGoConfig(t *testing.T) {
	tests := []struct {
		path        string
		wantName    string
		wantProgram string
	}{
		{"app", "Launch Go Package (app)", "${workspaceFolder}/app"},
		{"svc/api", "Launch Go Package (svc/api)", "${workspaceFolder}/svc/api"},
		{".", "Launch Go Package (.)", "${workspaceFolder}"},
	}

	for _, tt := range tests {
		c := GoConfig(detect.Project{Kind: detect.Go, Path: tt.path}).(GoLaunch)
		if c.Name != tt.wantName {
			t.Errorf("GoConfig(%q).Name = %q, want %q", tt.path, c.Name, tt.wantName)
		}
		if c.Program != tt.wantProgram {
			t.Errorf("GoConfig(%q).Program = %q, want %q", tt.path, c.Program, tt.wantProgram)
		}
		if c.Type != "go" || c.Request != "launch" || c.Console != "integratedTerminal" {
			t.Errorf("GoConfig(%q) = %+v, unexpected fixed fields", tt.path, c)
		}
	}
}

func TestBrowserConfig(t *testing.T) {
	c := BrowserConfig(detect.Project{Kind: detect.Web, Path: "web"}, "http://localhost:5173").(BrowserLaunch)

	if c.Name != "Launch Chrome (web)" {
		t.Errorf("Name = %q, want %q", c.Name, "Launch Chrome (web)")
	}
	if c.Type != "chrome" || c.Request != "launch" {
		t.Errorf("Type/Request = %s/%s, want chrome/launch", c.Type, c.Request)
	}
	if c.URL != "http://localhost:5173" {
		t.Errorf("URL = %q", c.URL)
	}
	if c.WebRoot != "${workspaceFolder}/web" {
		t.Errorf("WebRoot = %q, want ${workspaceFolder}/web", c.WebRoot)
	}
}

func TestNativeConfigs(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     []string
	}{
		{
			name:     "single implicit binary",
			manifest: "[package]\nname = \"my-svc\"\nversion = \"0.1.0\"\n",
			want:     []string{"my_svc"},
		},
		{
			name: "explicit binaries",
			manifest: `[package]
name = "tools"

[[bin]]
name = "server"
path = "src/bin/server.rs"

[[bin]]
name = "cli-admin"
path = "src/bin/admin.rs"
`,
			want: []string{"server", "cli-admin"},
		},
		{
			name:     "workspace manifest",
			manifest: "[workspace]\nmembers = [\"a\", \"b\"]\n",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			p := writeManifest(t, root, "svc", tt.manifest)

			configs, err := NativeConfigs(root, p)
			if err != nil {
				t.Fatalf("NativeConfigs failed: %v", err)
			}
			if len(configs) != len(tt.want) {
				t.Fatalf("NativeConfigs returned %d records, want %d", len(configs), len(tt.want))
			}

			for i, bin := range tt.want {
				c := configs[i].(NativeLaunch)
				if c.Name != "Debug executable '"+bin+"'" {
					t.Errorf("record %d Name = %q", i, c.Name)
				}
				if c.Program != "${workspaceFolder}/target/debug/"+bin {
					t.Errorf("record %d Program = %q", i, c.Program)
				}
				if c.PreLaunchTask != "rust: cargo build" {
					t.Errorf("record %d PreLaunchTask = %q", i, c.PreLaunchTask)
				}
				if c.Args == nil || len(c.Args) != 0 {
					t.Errorf("record %d Args = %#v, want empty non-nil slice", i, c.Args)
				}
				if c.Cwd != "${workspaceFolder}" {
					t.Errorf("record %d Cwd = %q", i, c.Cwd)
				}
			}
		})
	}
}

func TestNativeConfigs_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"invalid toml", "[package\nname = \"broken\"\n"},
		{"package without name", "[package]\nversion = \"0.1.0\"\n"},
		{"unnamed bin", "[package]\nname = \"x\"\n\n[[bin]]\npath = \"src/main.rs\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			p := writeManifest(t, root, ".", tt.manifest)

			_, err := NativeConfigs(root, p)
			var me *ManifestError
			if !errors.As(err, &me) {
				t.Fatalf("NativeConfigs error = %v, want *ManifestError", err)
			}
			if filepath.Base(me.Path) != "Cargo.toml" {
				t.Errorf("ManifestError.Path = %q", me.Path)
			}
		})
	}
}

func TestPythonConfig(t *testing.T) {
	p := detect.Project{Kind: detect.Python, Path: "scripts/run.py"}

	c := PythonConfig(p, "").(PythonLaunch)
	if c.Name != "Python: scripts/run.py" {
		t.Errorf("Name = %q", c.Name)
	}
	if c.Type != "debugpy" || c.Request != "launch" {
		t.Errorf("Type/Request = %s/%s, want debugpy/launch", c.Type, c.Request)
	}
	if c.Program != "${workspaceFolder}/scripts/run.py" {
		t.Errorf("Program = %q", c.Program)
	}
	if c.PythonPath != "" {
		t.Errorf("PythonPath = %q, want empty", c.PythonPath)
	}

	c = PythonConfig(p, "/opt/venv/bin/python").(PythonLaunch)
	if c.PythonPath != "/opt/venv/bin/python" {
		t.Errorf("PythonPath = %q", c.PythonPath)
	}
}

func fakeEnv(vars map[string]string, goos string) Env {
	return Env{
		Getenv: func(key string) string { return vars[key] },
		GOOS:   goos,
	}
}

func makeInterpreter(t *testing.T, prefix string, parts ...string) {
	t.Helper()
	path := filepath.Join(append([]string{prefix}, parts...)...)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte{}, 0755); err != nil {
		t.Fatal(err)
	}
}

func TestInterpreter(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	localVenv := filepath.Join(root, ".venv")
	makeInterpreter(t, localVenv, "bin", "python")
	makeInterpreter(t, outside, "bin", "python")
	winVenv := filepath.Join(root, "winenv")
	makeInterpreter(t, winVenv, "Scripts", "python.exe")

	absOutside, _ := filepath.Abs(filepath.Join(outside, "bin", "python"))

	tests := []struct {
		name string
		vars map[string]string
		goos string
		want string
	}{
		{"no environment", nil, "linux", ""},
		{"virtualenv inside root", map[string]string{"VIRTUAL_ENV": localVenv}, "linux", "${workspaceFolder}/.venv/bin/python"},
		{"conda outside root", map[string]string{"CONDA_PREFIX": outside}, "darwin", filepath.ToSlash(absOutside)},
		{"virtualenv wins over conda", map[string]string{"VIRTUAL_ENV": localVenv, "CONDA_PREFIX": outside}, "linux", "${workspaceFolder}/.venv/bin/python"},
		{"missing executable", map[string]string{"VIRTUAL_ENV": filepath.Join(root, "nope")}, "linux", ""},
		{"windows layout", map[string]string{"VIRTUAL_ENV": winVenv}, "windows", "${workspaceFolder}/winenv/Scripts/python.exe"},
		{"posix layout absent on windows", map[string]string{"VIRTUAL_ENV": localVenv}, "windows", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpreter(root, fakeEnv(tt.vars, tt.goos)); got != tt.want {
				t.Errorf("Interpreter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInterpreter_ProcessEnv(t *testing.T) {
	root := t.TempDir()
	venv := filepath.Join(root, "env")
	makeInterpreter(t, venv, "bin", "python")
	makeInterpreter(t, venv, "Scripts", "python.exe")

	t.Setenv("VIRTUAL_ENV", venv)
	t.Setenv("CONDA_PREFIX", "")

	if got := Interpreter(root, Env{}); got == "" {
		t.Error("Interpreter with zero Env should read the process environment")
	}
}
