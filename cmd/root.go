// Package cmd provides the hook-engine CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	// Version is the current version number.
	Version = "0.1.0"
)

var (
	cfgFile string
	debug   bool
	quiet   bool
)

// rootCmd is the root command.
var rootCmd = &cobra.Command{
	Use:   "hook-engine",
	Short: "Ordered hook chain runner",
	Long: `hook-engine runs an ordered set of executable scripts ("hooks")
against an external process boundary. Each hook receives one merged
environment; its exit code decides whether the chain continues, warns,
or halts:

  0        success
  1..31    error, stops the chain
  32..64   warning, chain continues
  100      deliberate interrupt, stops the chain
  65..255  reserved, treated as error`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate(fmt.Sprintf("hook-engine %s\n", Version))
}

// GetRootCmd returns the root command (used in tests).
func GetRootCmd() *cobra.Command {
	return rootCmd
}
