package telemetry

import (
	"runtime"

	"github.com/asteroid-belt/couchpilot/pkg/version"
)

// Event names.
const (
	EventAppStarted         = "app_started"
	EventAppExited          = "app_exited"
	EventCLICommandExecuted = "cli_command_executed"
	EventCLIErrorOccurred   = "cli_error_occurred"
	EventSyncCompleted      = "sync_completed"
	EventSyncFailed         = "sync_failed"
	EventSearchPerformed    = "search_performed"
	EventDetailViewed       = "detail_viewed"
	EventFavoriteToggled    = "favorite_toggled"
)

// baseProps returns properties attached to every event. Never includes
// personal data, titles, or server addresses.
func baseProps() map[string]interface{} {
	return map[string]interface{}{
		"app_version": version.Short(),
		"os":          runtime.GOOS,
		"arch":        runtime.GOARCH,
	}
}

func merged(extra map[string]interface{}) map[string]interface{} {
	props := baseProps()
	for k, v := range extra {
		props[k] = v
	}
	return props
}

func (c *posthogClient) TrackAppStarted(hasServer bool) {
	c.Track(EventAppStarted, merged(map[string]interface{}{
		"has_server": hasServer,
	}))
}

func (c *posthogClient) TrackAppExited(sessionDurationMs int64) {
	c.Track(EventAppExited, merged(map[string]interface{}{
		"session_duration_ms": sessionDurationMs,
	}))
}

func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	c.Track(EventCLICommandExecuted, merged(map[string]interface{}{
		"command_name": commandName,
		"has_flags":    hasFlags,
		"duration_ms":  durationMs,
	}))
}

func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	c.Track(EventCLIErrorOccurred, merged(map[string]interface{}{
		"command_name": commandName,
		"error_type":   errorType,
	}))
}

func (c *posthogClient) TrackSyncCompleted(itemCount, pageCount int, durationMs int64) {
	c.Track(EventSyncCompleted, merged(map[string]interface{}{
		"item_count":  itemCount,
		"page_count":  pageCount,
		"duration_ms": durationMs,
	}))
}

func (c *posthogClient) TrackSyncFailed(attempts int) {
	c.Track(EventSyncFailed, merged(map[string]interface{}{
		"attempts": attempts,
	}))
}

func (c *posthogClient) TrackSearchPerformed(resultCount int) {
	c.Track(EventSearchPerformed, merged(map[string]interface{}{
		"result_count": resultCount,
	}))
}

func (c *posthogClient) TrackDetailViewed(refreshed bool) {
	c.Track(EventDetailViewed, merged(map[string]interface{}{
		"refreshed": refreshed,
	}))
}

func (c *posthogClient) TrackFavoriteToggled(added bool) {
	c.Track(EventFavoriteToggled, merged(map[string]interface{}{
		"added": added,
	}))
}

func (c *noopClient) TrackAppStarted(hasServer bool)                                     {}
func (c *noopClient) TrackAppExited(sessionDurationMs int64)                             {}
func (c *noopClient) TrackCLICommandExecuted(commandName string, hasFlags bool, d int64) {}
func (c *noopClient) TrackCLIError(commandName, errorType string)                        {}
func (c *noopClient) TrackSyncCompleted(itemCount, pageCount int, durationMs int64)      {}
func (c *noopClient) TrackSyncFailed(attempts int)                                       {}
func (c *noopClient) TrackSearchPerformed(resultCount int)                               {}
func (c *noopClient) TrackDetailViewed(refreshed bool)                                   {}
func (c *noopClient) TrackFavoriteToggled(added bool)                                    {}
