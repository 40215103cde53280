package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/couchpilot/internal/db"
	"github.com/asteroid-belt/couchpilot/internal/models"
	"github.com/asteroid-belt/couchpilot/internal/pager"
	"github.com/asteroid-belt/couchpilot/internal/taxonomy"
)

var (
	browseKind     string
	browseCategory string
	browseSort     string
	browsePage     int
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the cached catalog",
	Long: `Browse the cached catalog with filters and sorting.

Categories come from the built-in taxonomy (run with --category "" to
see the catalog unfiltered; unknown categories mean no genre filter).

Examples:
  couchpilot browse
  couchpilot browse --kind movie --sort year-desc
  couchpilot browse --category "Sci-Fi & Fantasy" --page 2`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Long += "\n\nCategories:\n  " + strings.Join(taxonomy.Categories(), "\n  ")

	browseCmd.Flags().StringVar(&browseKind, "kind", "", "filter by kind (movie|show)")
	browseCmd.Flags().StringVar(&browseCategory, "category", "", "filter by taxonomy category")
	browseCmd.Flags().StringVar(&browseSort, "sort", "recently-added", "sort order: recently-added, title, year-desc, year-asc, rating-desc, rating-asc")
	browseCmd.Flags().IntVar(&browsePage, "page", 1, "page number")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, database, err := openEnv()
	if err != nil {
		return trackCLIError("browse", err)
	}
	defer func() { _ = database.Close() }()

	filter, err := buildFilter("", browseKind, browseCategory, browseSort)
	if err != nil {
		return trackCLIError("browse", err)
	}

	p := pager.New(database, filter,
		pager.WithPageSize(cfg.Browse.PageSize),
		pager.WithWindowPages(cfg.Browse.WindowPages),
	)

	total, err := p.Total(ctx)
	if err != nil {
		return trackCLIError("browse", fmt.Errorf("count catalog: %w", err))
	}
	if total == 0 {
		fmt.Println("The cache is empty. Run 'couchpilot sync' first.")
		return nil
	}

	if browsePage < 1 {
		browsePage = 1
	}
	start := (browsePage - 1) * p.PageSize()

	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Printf("%s (page %d, %d items total)\n", headerStyle.Render("CATALOG"), browsePage, total)
	fmt.Println(strings.Repeat("─", 50))

	shown := 0
	for i := start; i < start+p.PageSize() && int64(i) < total; i++ {
		item, err := p.Get(ctx, i)
		if err != nil {
			return trackCLIError("browse", fmt.Errorf("load row %d: %w", i, err))
		}
		if item == nil {
			break
		}
		printItemLine(item)
		shown++
	}

	if shown == 0 {
		fmt.Println("No items on this page.")
	}
	return nil
}

// buildFilter resolves the CLI flags into a query filter.
func buildFilter(search, kind, category, sortName string) (db.Filter, error) {
	f := db.Filter{Search: search}

	switch kind {
	case "":
	case "movie":
		k := models.KindMovie
		f.Kind = &k
	case "show":
		k := models.KindShow
		f.Kind = &k
	default:
		return f, fmt.Errorf("unknown kind %q (movie|show)", kind)
	}

	if category != "" {
		f.Genres = taxonomy.Resolve(category)
	}

	sort, err := models.ParseSortOption(sortName)
	if err != nil {
		return f, err
	}
	f.Sort = sort

	return f, nil
}

// printItemLine renders one catalog row for terminal output.
func printItemLine(item *models.CatalogItem) {
	year := ""
	if item.Year > 0 {
		year = fmt.Sprintf(" (%d)", item.Year)
	}
	rating := ""
	if item.Rating != nil {
		rating = fmt.Sprintf("  %.1f", *item.Rating)
	}
	fmt.Printf("  %-6s %s%s%s\n", item.Kind, item.Title, year, rating)
}
