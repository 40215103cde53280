package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/couchpilot/internal/models"
)

var watchDurationMs int64

var watchCmd = &cobra.Command{
	Use:   "watch <id> <position-ms>",
	Short: "Record a playback position",
	Long: `Record a playback position for a media id.

Positions below 10 seconds are discarded as player startup noise,
unless they already pass the finished mark for a short item.
Past 90% of the duration the entry is marked finished and drops off
the continue-watching shelf. Duration defaults to the cached value
for the id; pass --duration-ms to override.

Examples:
  couchpilot watch "imdb://tt0111161" 3600000`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Int64Var(&watchDurationMs, "duration-ms", 0, "total duration in milliseconds")
}

func runWatch(cmd *cobra.Command, args []string) error {
	id := args[0]
	positionMs, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || positionMs < 0 {
		return trackCLIError("watch", fmt.Errorf("invalid position %q: want non-negative milliseconds", args[1]))
	}

	_, database, err := openEnv()
	if err != nil {
		return trackCLIError("watch", err)
	}
	defer func() { _ = database.Close() }()

	item, err := database.GetItem(id)
	if err != nil {
		return trackCLIError("watch", fmt.Errorf("look up item: %w", err))
	}

	title, thumb := id, ""
	durationMs := watchDurationMs
	if item != nil {
		title, thumb = item.Title, item.Thumb
		if durationMs == 0 {
			durationMs = item.DurationMs
		}
	}

	if err := database.SaveProgress(id, title, thumb, positionMs, durationMs); err != nil {
		return trackCLIError("watch", fmt.Errorf("save progress: %w", err))
	}

	switch {
	case models.IsFinished(positionMs, durationMs):
		fmt.Printf("Marked %q as finished.\n", title)
	case positionMs < models.MinSavePositionMs:
		fmt.Printf("Position under %ds, not saved.\n", models.MinSavePositionMs/1000)
	default:
		fmt.Printf("Saved %q at %s.\n", title, formatMs(positionMs))
	}
	return nil
}
