package launch

import (
	"errors"

	"github.com/luuuc/launchgen/internal/config"
	"github.com/luuuc/launchgen/internal/detect"
	"go.uber.org/zap"
)

// Generator maps detected projects to launch records.
type Generator struct {
	// Root is the scan root; record paths are relative to it.
	Root string
	// URL is the dev server address for browser records.
	URL string
	Env Env
	// Strict aborts on a malformed Cargo.toml. Otherwise the crate is skipped.
	Strict bool
}

// NewGenerator returns a generator for root using cfg's settings.
func NewGenerator(root string, cfg *config.Config) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Generator{
		Root:   root,
		URL:    cfg.Web.URL,
		Strict: cfg.Strict,
	}
}

// Build scans the root and generates its launch file.
func (g *Generator) Build() (*File, error) {
	projects, err := detect.Scan(g.Root)
	if err != nil {
		return nil, err
	}
	return g.Generate(projects)
}

// Generate maps projects to records, keeping their order.
func (g *Generator) Generate(projects []detect.Project) (*File, error) {
	f := NewFile()

	url := g.URL
	if url == "" {
		url = config.DevURL
	}

	var interpreter string
	resolved := false

	for _, p := range projects {
		switch p.Kind {
		case detect.Go:
			f.Configurations = append(f.Configurations, GoConfig(p))

		case detect.Web:
			f.Configurations = append(f.Configurations, BrowserConfig(p, url))

		case detect.Rust:
			configs, err := NativeConfigs(g.Root, p)
			if err != nil {
				var me *ManifestError
				if g.Strict || !errors.As(err, &me) {
					return nil, err
				}
				zap.L().Warn("skipping crate with malformed manifest", zap.String("path", me.Path), zap.Error(me.Err))
				continue
			}
			f.Configurations = append(f.Configurations, configs...)

		case detect.Python:
			if !resolved {
				interpreter = Interpreter(g.Root, g.Env)
				resolved = true
				zap.L().Debug("resolved python interpreter", zap.String("pythonPath", interpreter))
			}
			f.Configurations = append(f.Configurations, PythonConfig(p, interpreter))
		}
	}

	return f, nil
}
