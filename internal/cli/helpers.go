package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/asteroid-belt/couchpilot/internal/config"
	"github.com/asteroid-belt/couchpilot/internal/db"
	"github.com/asteroid-belt/couchpilot/internal/remote"
)

// openEnv loads config and opens the cache database. The caller owns the
// returned database and must close it.
func openEnv() (*config.Config, *db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}

	return cfg, database, nil
}

// newClient builds the remote catalog client from config, using the
// persistent tracking id as the client identifier so the server sees a
// stable installation.
func newClient(cfg *config.Config, database *db.DB) (*remote.Client, error) {
	if cfg.Server.URL == "" {
		return nil, fmt.Errorf("no server configured; set server.url in %s or COUCHPILOT_SERVER_URL",
			config.GetPaths(cfg).Config)
	}

	clientID := database.GetOrCreateTrackingID()
	if clientID == "" {
		clientID = uuid.New().String()
	}

	return remote.NewClient(cfg.Server.URL, cfg.Server.Token, remote.Options{
		ClientID:          clientID,
		RequestsPerMinute: cfg.Sync.RequestsPerMinute,
	}), nil
}

// trackCLIError records a command failure and passes the error through.
func trackCLIError(commandName string, err error) error {
	if err != nil {
		telemetryClient.TrackCLIError(commandName, fmt.Sprintf("%T", err))
	}
	return err
}
