// Package cli implements the nativeplan command line interface.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd is the root command for nativeplan.
var rootCmd = &cobra.Command{
	Use:     "nativeplan",
	Version: "dev",
	Short:   "Rewrite container build plans around a native executable",
	Long: `nativeplan rewrites container image build plans so the image carries a
single locally compiled native executable, and can realize the result
as an OCI image layout.

Plans are exchanged as JSON files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// SetVersion sets the version reported by the version flag.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
