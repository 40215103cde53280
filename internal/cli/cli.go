// Package cli provides the command-line interface for couchpilot.
package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/couchpilot/internal/telemetry"
	"github.com/asteroid-belt/couchpilot/pkg/version"
)

var telemetryClient telemetry.Client

var commandStartTime time.Time

var rootCmd = &cobra.Command{
	Use:   "couchpilot",
	Short: "Offline-first client for your personal media server",
	Long: `Offline-first client for your personal media server.

couchpilot mirrors your server's movie and show catalog into a local
cache, then answers browse, search, and detail queries from it even
while the server is unreachable.

Configure the server in ~/.couchpilot/config.yaml or with
COUCHPILOT_SERVER_URL and COUCHPILOT_SERVER_TOKEN.

Telemetry:
  Telemetry is enabled by default, always anonymous, and never tracks
  titles, search terms, or server addresses.

  Opt-out with:
  	COUCHPILOT_TELEMETRY_TRACKING_ENABLED=false`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commandStartTime = time.Now()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() != "couchpilot" {
			durationMs := time.Since(commandStartTime).Milliseconds()
			hasFlags := cmd.Flags().NFlag() > 0
			telemetryClient.TrackCLICommandExecuted(cmd.Name(), hasFlags, durationMs)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(watchCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context, tc telemetry.Client) error {
	if tc == nil {
		tc = telemetry.New(nil)
	}
	telemetryClient = tc

	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}
