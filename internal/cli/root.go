package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags
var Version = "dev"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := NewAurCmd()
	rootCmd.Version = Version
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Setup logging
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	return rootCmd
}
