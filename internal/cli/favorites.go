package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/couchpilot/internal/models"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite items",
	Long: `Manage favorite items.

Favorites live beside the catalog cache and survive resyncs and schema
rebuilds. Adding an id already marked is a no-op.

Examples:
  couchpilot favorites list
  couchpilot favorites add "imdb://tt0111161"
  couchpilot favorites remove "imdb://tt0111161"`,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite items",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Mark an item as favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an item from favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesRemove,
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	_, database, err := openEnv()
	if err != nil {
		return trackCLIError("favorites", err)
	}
	defer func() { _ = database.Close() }()

	marks, err := database.ListFavorites()
	if err != nil {
		return trackCLIError("favorites", fmt.Errorf("list favorites: %w", err))
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Printf("%s (%d)\n", headerStyle.Render("FAVORITES"), len(marks))
	fmt.Println(strings.Repeat("─", 50))

	if len(marks) == 0 {
		fmt.Println("  none yet")
		return nil
	}

	for _, m := range marks {
		// The catalog row may have been evicted by a rebuild; the mark's
		// own display fields are the fallback.
		if item, err := database.GetItem(m.MediaID); err == nil && item != nil {
			printItemLine(item)
			continue
		}
		fmt.Printf("  %-6s %s\n", m.Kind, m.Title)
	}
	return nil
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	id := args[0]

	_, database, err := openEnv()
	if err != nil {
		return trackCLIError("favorites", err)
	}
	defer func() { _ = database.Close() }()

	item, err := database.GetItem(id)
	if err != nil {
		return trackCLIError("favorites", fmt.Errorf("look up item: %w", err))
	}

	// An id not in the cache can still be favorited; the mark simply
	// carries no display fields until a sync fills them in.
	mark := models.FavoriteMark{MediaID: id}
	if item != nil {
		mark = models.FavoriteFromItem(item)
	}

	if err := database.AddFavorite(mark); err != nil {
		return trackCLIError("favorites", fmt.Errorf("add favorite: %w", err))
	}
	telemetryClient.TrackFavoriteToggled(true)

	if item != nil {
		fmt.Printf("Added %q to favorites.\n", item.Title)
	} else {
		fmt.Printf("Added %s to favorites.\n", id)
	}
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	id := args[0]

	_, database, err := openEnv()
	if err != nil {
		return trackCLIError("favorites", err)
	}
	defer func() { _ = database.Close() }()

	if err := database.RemoveFavorite(id); err != nil {
		return trackCLIError("favorites", fmt.Errorf("remove favorite: %w", err))
	}
	telemetryClient.TrackFavoriteToggled(false)

	fmt.Printf("Removed %s from favorites.\n", id)
	return nil
}
