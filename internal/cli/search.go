package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	searchKind     string
	searchCategory string
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over the cached catalog",
	Long: `Search cached titles and descriptions.

Tokens match by prefix ("dark kni" finds "The Dark Knight"). Results
are ordered by text relevance; sort flags do not apply to searches.

Examples:
  couchpilot search "dark knight"
  couchpilot search alien --kind movie`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchKind, "kind", "", "filter by kind (movie|show)")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "filter by taxonomy category")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "maximum results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	_, database, err := openEnv()
	if err != nil {
		return trackCLIError("search", err)
	}
	defer func() { _ = database.Close() }()

	filter, err := buildFilter(query, searchKind, searchCategory, "")
	if err != nil {
		return trackCLIError("search", err)
	}

	items, err := database.ListCatalog(filter, searchLimit, 0)
	if err != nil {
		return trackCLIError("search", fmt.Errorf("search: %w", err))
	}

	telemetryClient.TrackSearchPerformed(len(items))

	if len(items) == 0 {
		fmt.Printf("No matches for %q.\n", query)
		return nil
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Printf("%s %q (%d results)\n", headerStyle.Render("SEARCH"), query, len(items))
	fmt.Println(strings.Repeat("─", 50))
	for i := range items {
		printItemLine(&items[i])
	}
	return nil
}
