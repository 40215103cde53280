package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_DisabledByEnvVar(t *testing.T) {
	t.Setenv("COUCHPILOT_TELEMETRY_TRACKING_ENABLED", "false")

	client := New(nil)
	_, ok := client.(*noopClient)
	assert.True(t, ok, "Should return noopClient when disabled")
}

func TestNew_DisabledWithoutAPIKey(t *testing.T) {
	originalKey := PostHogAPIKey
	PostHogAPIKey = ""
	defer func() { PostHogAPIKey = originalKey }()

	client := New(nil)
	_, ok := client.(*noopClient)
	assert.True(t, ok, "Should return noopClient without API key")
}

func TestIsEnabled(t *testing.T) {
	originalKey := PostHogAPIKey
	PostHogAPIKey = "phc_test"
	defer func() { PostHogAPIKey = originalKey }()

	t.Setenv("COUCHPILOT_TELEMETRY_TRACKING_ENABLED", "")
	assert.True(t, IsEnabled(), "enabled by default with an API key")

	t.Setenv("COUCHPILOT_TELEMETRY_TRACKING_ENABLED", "false")
	assert.False(t, IsEnabled(), "disabled by explicit opt-out")
}

func TestNoopClient_DoesNotPanic(t *testing.T) {
	client := &noopClient{}

	client.Track("test_event", map[string]interface{}{"key": "value"})
	client.TrackAppStarted(true)
	client.TrackAppExited(5000)
	client.TrackCLICommandExecuted("browse", true, 100)
	client.TrackCLIError("sync", "network_error")
	client.TrackSyncCompleted(500, 3, 12000)
	client.TrackSyncFailed(3)
	client.TrackSearchPerformed(5)
	client.TrackDetailViewed(true)
	client.TrackFavoriteToggled(false)
	client.Close()

	assert.Equal(t, "", client.GetTrackingID())
}

type staticProvider struct{ id string }

func (p staticProvider) GetOrCreateTrackingID() string { return p.id }

func TestNew_UsesProviderTrackingID(t *testing.T) {
	originalKey := PostHogAPIKey
	PostHogAPIKey = "phc_test"
	defer func() { PostHogAPIKey = originalKey }()
	t.Setenv("COUCHPILOT_TELEMETRY_TRACKING_ENABLED", "")

	client := New(staticProvider{id: "stable-install-id"})
	defer client.Close()

	assert.Equal(t, "stable-install-id", client.GetTrackingID())
}
