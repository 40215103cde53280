package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/couchpilot/internal/config"
	"github.com/asteroid-belt/couchpilot/pkg/version"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache statistics and version",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, database, err := openEnv()
	if err != nil {
		return trackCLIError("info", err)
	}
	defer func() { _ = database.Close() }()

	stats, err := database.Stats()
	if err != nil {
		return trackCLIError("info", fmt.Errorf("read stats: %w", err))
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Println(headerStyle.Render(version.Info()))
	fmt.Println(strings.Repeat("─", 50))

	server := cfg.Server.URL
	if server == "" {
		server = "(not configured)"
	}
	fmt.Printf("  server:     %s\n", server)
	fmt.Printf("  cache:      %s\n", config.GetPaths(cfg).Database)
	fmt.Printf("  items:      %d\n", stats.TotalItems)
	fmt.Printf("  favorites:  %d\n", stats.TotalFavorites)
	fmt.Printf("  history:    %d\n", stats.TotalHistory)
	fmt.Printf("  cache size: %.1f MiB\n", float64(stats.CacheSizeBytes)/(1024*1024))
	if stats.LastFullSync.IsZero() {
		fmt.Println("  last sync:  never")
	} else {
		fmt.Printf("  last sync:  %s\n", stats.LastFullSync.Format("2006-01-02 15:04:05"))
	}
	return nil
}
