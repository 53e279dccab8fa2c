package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/luuuc/launchgen/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "launchgen",
	Short: "Generate debugger launch configurations for every project in a tree",
	Long: `launchgen scans a directory tree for Go modules, web projects, Rust crates
and Python entry files, and writes a .vscode/launch.json with one debug
configuration per program it finds.

Hidden directories and anything matched by the root .gitignore are skipped.
Every run is a full scan and replaces the previous launch.json.

Quick start:
  launchgen              Scan the current directory and write .vscode/launch.json
  launchgen --dry-run    Print the launch file instead of writing it
  launchgen detect       List detected projects without writing anything`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := logging.Setup(verbose, version)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.OutOrStdout(), genOpts)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var (
	scanDir     string
	verbose     bool
	versionJSON bool
)

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
	rootCmd.SetVersionTemplate("launchgen {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&scanDir, "dir", "C", ".", "Directory to scan")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	addGenerateFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output version information as JSON")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if versionJSON {
			_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
				"version": version,
				"commit":  commit,
			})
			return
		}
		fmt.Printf("launchgen %s (%s)\n", version, commit)
	},
}
