package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/couchpilot/internal/detail"
)

var detailCmd = &cobra.Command{
	Use:   "detail <id>",
	Short: "Show one catalog entry, refreshing it from the server",
	Long: `Show a single catalog entry.

The cached version prints immediately; if the server is reachable the
entry is refreshed and printed again. Offline, the cached version is
all you get, never an error in its place.

Examples:
  couchpilot detail "imdb://tt0111161"`,
	Args: cobra.ExactArgs(1),
	RunE: runDetail,
}

func runDetail(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	cfg, database, err := openEnv()
	if err != nil {
		return trackCLIError("detail", err)
	}
	defer func() { _ = database.Close() }()

	client, err := newClient(cfg, database)
	if err != nil {
		return trackCLIError("detail", err)
	}

	reconciler := detail.New(database, client)

	refreshed := false
	for emission := range reconciler.Observe(ctx, id) {
		printDetail(emission)
		if emission.Origin == detail.OriginRefreshed {
			refreshed = true
		}
	}
	telemetryClient.TrackDetailViewed(refreshed)

	return nil
}

func printDetail(e detail.Emission) {
	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Printf("%s [%s]\n", headerStyle.Render("DETAIL"), e.Origin)
	fmt.Println(strings.Repeat("─", 50))

	if e.Item == nil {
		fmt.Println("  not in cache")
		fmt.Println()
		return
	}

	item := e.Item
	fmt.Printf("  %s", item.Title)
	if item.Year > 0 {
		fmt.Printf(" (%d)", item.Year)
	}
	fmt.Println()
	fmt.Printf("  kind: %s", item.Kind)
	if item.ContentRating != "" {
		fmt.Printf("  rated: %s", item.ContentRating)
	}
	if item.Rating != nil {
		fmt.Printf("  rating: %.1f", *item.Rating)
	}
	if item.CriticRating != nil {
		fmt.Printf("  critics: %.1f", *item.CriticRating)
	}
	fmt.Println()
	if item.Director != "" {
		fmt.Printf("  director: %s\n", item.Director)
	}
	if item.Studio != "" {
		fmt.Printf("  studio: %s\n", item.Studio)
	}
	if item.Genres != "" {
		fmt.Printf("  genres: %s\n", item.Genres)
	}
	if item.Summary != "" {
		fmt.Printf("  %s\n", item.Summary)
	}
	if seasons := item.SeasonList(); len(seasons) > 0 {
		fmt.Printf("  seasons: %d\n", len(seasons))
	}
	if item.MultipleSources {
		fmt.Println("  multiple sources available")
	}
	if item.ShouldResume() {
		fmt.Printf("  resume at %s\n", formatMs(item.ViewOffsetMs))
	}
	fmt.Println()
}

func formatMs(ms int64) string {
	secs := ms / 1000
	if secs >= 3600 {
		return fmt.Sprintf("%dh%02dm%02ds", secs/3600, (secs%3600)/60, secs%60)
	}
	return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
}
