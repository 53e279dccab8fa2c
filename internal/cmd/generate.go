package cmd

import (
	"fmt"
	"io"

	"github.com/luuuc/launchgen/internal/config"
	"github.com/luuuc/launchgen/internal/detect"
	"github.com/luuuc/launchgen/internal/launch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const noProjectsMessage = "No supported projects found (go.mod, package.json, Cargo.toml, Python entry files)"

type generateOptions struct {
	dryRun bool
	strict bool
	url    string
}

var genOpts generateOptions

func addGenerateFlags(c *cobra.Command) {
	c.Flags().BoolVar(&genOpts.dryRun, "dry-run", false, "Print the launch file to stdout instead of writing it")
	c.Flags().BoolVar(&genOpts.strict, "strict", false, "Abort on a malformed Cargo.toml instead of skipping it")
	c.Flags().StringVar(&genOpts.url, "url", "", "Dev server URL for browser configurations (default "+config.DevURL+")")
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Scan the tree and write the launch file",
	Long: `Scans the directory for projects and writes one debug configuration per
program to .vscode/launch.json, replacing any existing file.

Records are ordered: Go modules, web projects, Rust binaries, Python entry files.
Settings can be overridden in .launchgen.yaml at the scan root:

  output:
    dir: .vscode
    file: launch.json
  web:
    url: http://localhost:5173
  strict: false

Examples:
  launchgen generate
  launchgen generate --dir ./services --url http://localhost:3000
  launchgen generate --dry-run > launch.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.OutOrStdout(), genOpts)
	},
}

func runGenerate(out io.Writer, opts generateOptions) error {
	cfg, err := config.Load(scanDir)
	if err != nil {
		return err
	}
	if opts.strict {
		cfg.Strict = true
	}
	if opts.url != "" {
		cfg.Web.URL = opts.url
	}

	f, err := launch.NewGenerator(scanDir, cfg).Build()
	if err != nil {
		return err
	}

	if f.Len() == 0 {
		fmt.Fprintln(out, noProjectsMessage)
		return nil
	}

	counts := f.Counts()
	zap.L().Debug("launch file built",
		zap.Int("go", counts[detect.Go]),
		zap.Int("typescript", counts[detect.Web]),
		zap.Int("rust", counts[detect.Rust]),
		zap.Int("python", counts[detect.Python]))

	if opts.dryRun {
		data, err := f.JSON()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	path, err := launch.Write(f, cfg.OutputPath(scanDir), cfg.Output.File)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Generated %s with %d configuration(s)\n", path, f.Len())
	return nil
}
