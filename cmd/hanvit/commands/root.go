package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	// configPath is shared by every subcommand.
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hanvit",
	Short: "Hanvit LMS - synchronized learning management state",
	Long: `Hanvit LMS manages course authoring, enrollment, weekly learning modules,
AI-assisted grading, notices and messaging on top of a single shared
application state.

State persists locally and synchronizes across devices through a Redis
backed shared record: local edits are debounced into full-snapshot pushes,
remote updates stream in over Pub/Sub, and echo suppression keeps the two
flows from feeding back into each other.`,
	Version: version,

	// Errors are printed once by main; without these cobra would print
	// the message again plus usage text.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "hanvit.yml", "Path to the configuration file")
}
