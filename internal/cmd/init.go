package cmd

import (
	"fmt"
	"io"

	"github.com/luuuc/launchgen/internal/config"
	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing .launchgen.yaml")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a .launchgen.yaml with the default settings",
	Long: `Creates .launchgen.yaml at the scan root with every setting at its default,
ready to be edited.

Examples:
  launchgen init
  launchgen init --dir ./services
  launchgen init --force      Replace an existing file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.OutOrStdout(), initForce)
	},
}

func initConfig(out io.Writer, force bool) error {
	if config.Exists(scanDir) && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.Path(scanDir))
	}

	if err := config.Default().Save(scanDir); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s\n", config.Path(scanDir))
	return nil
}
