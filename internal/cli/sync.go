package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/couchpilot/internal/models"
	"github.com/asteroid-belt/couchpilot/internal/sync"
)

var syncWatch bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the catalog from the media server",
	Long: `Run a full catalog sync now.

Walks the server's catalog page by page and upserts every movie and
show into the local cache. Safe to re-run at any time: upserts are
idempotent and a sync already in progress absorbs the request.

With --watch the process stays up and repeats the sync on the
configured interval, skipping rounds while the server is unreachable.

Examples:
  couchpilot sync
  couchpilot sync --watch`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncWatch, "watch", false, "keep running and sync on the configured interval")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, database, err := openEnv()
	if err != nil {
		return trackCLIError("sync", err)
	}
	defer func() { _ = database.Close() }()

	client, err := newClient(cfg, database)
	if err != nil {
		return trackCLIError("sync", err)
	}

	engine := sync.NewEngine(database, client, cfg.Sync.PageSize)

	headerStyle := lipgloss.NewStyle().Bold(true)

	if syncWatch {
		fmt.Printf("%s %s every %s\n", headerStyle.Render("WATCHING"), cfg.Server.URL, cfg.Sync.Interval)

		online := func(ctx context.Context) bool { return client.Ping(ctx) == nil }
		scheduler := sync.NewScheduler(engine, cfg.Sync.Interval, online)
		scheduler.Start(ctx)
		<-ctx.Done()
		scheduler.Stop()
		return nil
	}

	fmt.Printf("%s %s\n", headerStyle.Render("SYNCING from"), cfg.Server.URL)

	start := time.Now()
	if err := engine.Sync(ctx); err != nil {
		telemetryClient.TrackSyncFailed(3)
		return trackCLIError("sync", err)
	}

	raw, _ := database.GetSyncMeta(models.SyncMetaTotalItems)
	total, _ := strconv.Atoi(raw)
	pages := 0
	if cfg.Sync.PageSize > 0 {
		pages = (total + cfg.Sync.PageSize - 1) / cfg.Sync.PageSize
	}
	durationMs := time.Since(start).Milliseconds()
	telemetryClient.TrackSyncCompleted(total, pages, durationMs)

	fmt.Printf("Synced %d items in %s\n", total, time.Since(start).Round(time.Millisecond))
	return nil
}
