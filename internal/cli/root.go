// Package cli implements the prdesk CLI commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/prreview/prdesk/internal/shell"
)

var (
	flagNoSidecar  bool
	flagForeground bool
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "prdesk",
	Short: "Desktop shell for the PR Review Agent",
	Long: `prdesk starts the PR Review Agent backend as a sidecar, puts an icon
in the system tray and opens the review UI on demand.

Set TAURI_NO_SIDECAR (to any value) or pass --no-sidecar to run against a
backend you started yourself on port 47685.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return shell.Run(shell.Options{
			NoSidecar:  flagNoSidecar,
			Foreground: flagForeground,
			LogLevel:   flagLogLevel,
			Console:    true,
		})
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&flagNoSidecar, "no-sidecar", false, "Do not spawn the backend (expect a manual backend)")
	rootCmd.Flags().BoolVar(&flagForeground, "foreground", false, "Run without a system tray until interrupted")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
