package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/luuuc/launchgen/internal/detect"
	"github.com/spf13/cobra"
)

var detectJSON bool

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "Output as JSON")
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "List detected projects",
	Long:  `Scans the directory for Go modules, web projects, Rust crates and Python entry files without writing a launch file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := detect.Scan(scanDir)
		if err != nil {
			return err
		}
		return printProjects(cmd.OutOrStdout(), projects, detectJSON)
	},
}

func printProjects(out io.Writer, projects []detect.Project, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(projects, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(projects) == 0 {
		fmt.Fprintln(out, noProjectsMessage)
		return nil
	}

	// Human-readable output
	fmt.Fprintln(out, "Detected projects:")
	fmt.Fprintln(out)
	for _, p := range projects {
		if p.Name != "" {
			fmt.Fprintf(out, "  %-10s %s (%s)\n", p.Kind, p.Path, p.Name)
		} else {
			fmt.Fprintf(out, "  %-10s %s\n", p.Kind, p.Path)
		}
	}
	fmt.Fprintln(out)

	counts := detect.Counts(projects)
	fmt.Fprintf(out, "%d project(s): %d go, %d typescript, %d rust, %d python\n",
		len(projects), counts[detect.Go], counts[detect.Web], counts[detect.Rust], counts[detect.Python])
	return nil
}
