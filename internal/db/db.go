// Package db provides the GORM-based catalog cache for couchpilot.
// It uses the pure-Go SQLite driver with FTS5 support.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/asteroid-belt/couchpilot/internal/models"
)

// schemaVersion is bumped whenever the catalog row layout changes. A
// mismatch triggers a destructive rebuild of the catalog tables (the
// next sync repopulates them), never a migration.
const schemaVersion = "1"

// DB wraps the GORM database connection with couchpilot-specific operations.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection and prepares the schema.
func New(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode for simpler transaction handling
	// (WAL mode has visibility issues with the pure-Go SQLite driver)
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	// A stale schema version drops the catalog tables before they are
	// recreated below. User data (favorites, history) is kept.
	if err := wrapped.rebuildIfStale(); err != nil {
		return nil, fmt.Errorf("schema check: %w", err)
	}

	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := wrapped.setupFTS(); err != nil {
		return nil, fmt.Errorf("setup FTS: %w", err)
	}

	if err := wrapped.seedSyncMeta(); err != nil {
		return nil, fmt.Errorf("seed sync meta: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.CatalogItem{},
		&models.FavoriteMark{},
		&models.PlaybackHistoryEntry{},
		&models.SyncMeta{},
		&models.RemoteKey{},
	)
}

// rebuildIfStale drops the catalog tables when the persisted schema
// version differs from the compiled-in one. Favorites and playback
// history survive a rebuild; the catalog is resynced from the server.
func (db *DB) rebuildIfStale() error {
	if !db.Migrator().HasTable("sync_meta") {
		return nil // fresh database
	}

	var stored string
	err := db.Raw("SELECT value FROM sync_meta WHERE key = ?", models.SyncMetaSchemaVersion).Scan(&stored).Error
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if stored == "" || stored == schemaVersion {
		return nil
	}

	drops := []string{
		"DROP TRIGGER IF EXISTS catalog_ai",
		"DROP TRIGGER IF EXISTS catalog_ad",
		"DROP TRIGGER IF EXISTS catalog_au",
		"DROP TABLE IF EXISTS catalog_fts",
		"DROP TABLE IF EXISTS catalog_items",
		"DROP TABLE IF EXISTS remote_keys",
	}
	for _, stmt := range drops {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("drop stale table: %w", err)
		}
	}

	return db.Exec("UPDATE sync_meta SET value = ? WHERE key = ?",
		schemaVersion, models.SyncMetaSchemaVersion).Error
}

// setupFTS creates the FTS5 shadow index over title and summary together
// with the triggers that keep it row-synchronized with catalog_items.
// Triggers fire inside the writing transaction, so a batch upsert updates
// both structures atomically.
func (db *DB) setupFTS() error {
	ftsSQL := `
		CREATE VIRTUAL TABLE IF NOT EXISTS catalog_fts USING fts5(
			title,
			summary,
			content='catalog_items',
			content_rowid='rowid',
			tokenize='porter unicode61'
		);
	`
	if err := db.Exec(ftsSQL).Error; err != nil {
		return fmt.Errorf("create FTS table: %w", err)
	}

	triggers := []string{
		`CREATE TRIGGER IF NOT EXISTS catalog_ai AFTER INSERT ON catalog_items BEGIN
			INSERT INTO catalog_fts(rowid, title, summary)
			VALUES (NEW.rowid, NEW.title, NEW.summary);
		END;`,

		`CREATE TRIGGER IF NOT EXISTS catalog_ad AFTER DELETE ON catalog_items BEGIN
			INSERT INTO catalog_fts(catalog_fts, rowid, title, summary)
			VALUES ('delete', OLD.rowid, OLD.title, OLD.summary);
		END;`,

		`CREATE TRIGGER IF NOT EXISTS catalog_au AFTER UPDATE ON catalog_items BEGIN
			INSERT INTO catalog_fts(catalog_fts, rowid, title, summary)
			VALUES ('delete', OLD.rowid, OLD.title, OLD.summary);
			INSERT INTO catalog_fts(rowid, title, summary)
			VALUES (NEW.rowid, NEW.title, NEW.summary);
		END;`,
	}

	for _, trigger := range triggers {
		if err := db.Exec(trigger).Error; err != nil {
			return fmt.Errorf("create trigger: %w", err)
		}
	}

	return nil
}

// seedSyncMeta inserts default sync metadata if not present.
func (db *DB) seedSyncMeta() error {
	defaults := []models.SyncMeta{
		{Key: models.SyncMetaLastFullSync, Value: ""},
		{Key: models.SyncMetaSchemaVersion, Value: schemaVersion},
		{Key: models.SyncMetaTotalItems, Value: "0"},
	}

	for _, meta := range defaults {
		result := db.Where("key = ?", meta.Key).FirstOrCreate(&meta)
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wrappedTx := &DB{DB: tx, path: d.path}
		return fc(wrappedTx)
	})
}

// Stats returns aggregate statistics about the cache.
func (db *DB) Stats() (*models.CatalogStats, error) {
	var stats models.CatalogStats

	if err := db.Model(&models.CatalogItem{}).Count(&stats.TotalItems).Error; err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	if err := db.Model(&models.FavoriteMark{}).Count(&stats.TotalFavorites).Error; err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}
	if err := db.Model(&models.PlaybackHistoryEntry{}).Count(&stats.TotalHistory).Error; err != nil {
		return nil, fmt.Errorf("count history: %w", err)
	}

	if raw, err := db.GetSyncMeta(models.SyncMetaLastFullSync); err == nil && raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			stats.LastFullSync = ts
		}
	}

	if info, err := os.Stat(db.path); err == nil {
		stats.CacheSizeBytes = info.Size()
	}

	return &stats, nil
}
