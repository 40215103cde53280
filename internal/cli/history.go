package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/couchpilot/internal/models"
)

var (
	historyLimit int
	historyAll   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show playback history",
	Long: `Show playback history.

By default only unfinished entries are shown, most recently played
first: the continue-watching shelf. Use --all for the full history
including finished items.

Examples:
  couchpilot history
  couchpilot history --all --limit 50`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to show")
	historyCmd.Flags().BoolVar(&historyAll, "all", false, "include finished entries")
}

func runHistory(cmd *cobra.Command, args []string) error {
	_, database, err := openEnv()
	if err != nil {
		return trackCLIError("history", err)
	}
	defer func() { _ = database.Close() }()

	var (
		entries []models.PlaybackHistoryEntry
		title   string
	)
	if historyAll {
		entries, err = database.ListHistory(historyLimit)
		title = "HISTORY"
	} else {
		entries, err = database.ContinueWatching(historyLimit)
		title = "CONTINUE WATCHING"
	}
	if err != nil {
		return trackCLIError("history", fmt.Errorf("read history: %w", err))
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Printf("%s (%d)\n", headerStyle.Render(title), len(entries))
	fmt.Println(strings.Repeat("─", 50))

	if len(entries) == 0 {
		fmt.Println("  nothing here yet")
		return nil
	}

	for _, e := range entries {
		status := fmt.Sprintf("at %s", formatMs(e.PositionMs))
		if e.Finished {
			status = "finished"
		}
		fmt.Printf("  %s  %s  (%s)\n",
			e.LastPlayedAt.Format("2006-01-02 15:04"), e.Title, status)
	}
	return nil
}
