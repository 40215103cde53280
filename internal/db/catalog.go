package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/couchpilot/internal/models"
)

// catalogContentColumns are the remote-owned fields compared on conflict.
// Only the primary key is immutable.
var catalogContentColumns = []string{
	"title", "kind", "thumb", "art",
	"year", "added_at",
	"rating", "critic_rating",
	"summary", "studio", "content_rating", "director",
	"genres",
	"audio_tracks", "subtitles", "chapters", "markers", "seasons",
	"view_offset_ms", "duration_ms", "multiple_sources", "view_count",
}

var catalogUpdateColumns = append(catalogContentColumns[:len(catalogContentColumns):len(catalogContentColumns)],
	"synced_at", "updated_at")

// catalogChangedExpr is true when any content column of the incoming row
// differs from the stored row. IS NOT compares null-safely, which matters
// for the nullable rating columns.
func catalogChangedExpr() clause.Expression {
	preds := make([]string, len(catalogContentColumns))
	for i, col := range catalogContentColumns {
		preds[i] = fmt.Sprintf("catalog_items.%s IS NOT excluded.%s", col, col)
	}
	return clause.Expr{SQL: strings.Join(preds, " OR ")}
}

// UpsertItems inserts or replaces a batch of catalog rows keyed by id.
// The batch is one transaction: a failure leaves neither the rows nor the
// FTS shadow index partially updated (the FTS triggers fire inside the
// same transaction). The conflict update is guarded so re-applying an
// unchanged row touches nothing, not even its timestamps, and fires no
// FTS trigger.
func (db *DB) UpsertItems(items []models.CatalogItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now()
	for i := range items {
		items[i].SyncedAt = now
	}

	return db.Transaction(func(tx *DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(catalogUpdateColumns),
			Where:     clause.Where{Exprs: []clause.Expression{catalogChangedExpr()}},
		}).Create(&items).Error
	})
}

// GetItem retrieves a catalog item by id, (nil, nil) when never seen.
func (db *DB) GetItem(id string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := db.First(&item, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CountItems returns the total number of cached catalog rows.
func (db *DB) CountItems() (int64, error) {
	var count int64
	err := db.Model(&models.CatalogItem{}).Count(&count).Error
	return count, err
}

// ClearCatalog removes every catalog row and its ephemeral page keys.
// Destructive; used only ahead of a forced resync. The FTS delete
// triggers empty the shadow index in the same transaction.
func (db *DB) ClearCatalog() error {
	return db.Transaction(func(tx *DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CatalogItem{}).Error; err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.RemoteKey{}).Error; err != nil {
			return fmt.Errorf("clear remote keys: %w", err)
		}
		return nil
	})
}
