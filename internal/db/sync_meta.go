package db

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/couchpilot/internal/models"
)

// GetSyncMeta retrieves a sync metadata value.
func (db *DB) GetSyncMeta(key string) (string, error) {
	var meta models.SyncMeta
	err := db.First(&meta, "key = ?", key).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetSyncMeta sets a sync metadata value.
func (db *DB) SetSyncMeta(key, value string) error {
	meta := models.SyncMeta{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&meta).Error
}

// GetOrCreateTrackingID returns the persistent anonymous id used for
// telemetry, generating one on first call. Implements
// telemetry.TrackingIDProvider.
func (db *DB) GetOrCreateTrackingID() string {
	id, err := db.GetSyncMeta(models.SyncMetaTrackingID)
	if err == nil && id != "" {
		return id
	}

	id = uuid.New().String()
	if err := db.SetSyncMeta(models.SyncMetaTrackingID, id); err != nil {
		// Fall back to a per-session id; tracking stays anonymous.
		return uuid.New().String()
	}
	return id
}

// ReplaceRemoteKeys upserts pagination cursors for a synced page batch.
func (db *DB) ReplaceRemoteKeys(keys []models.RemoteKey) error {
	if len(keys) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"prev_page", "next_page"}),
	}).Create(&keys).Error
}

// ClearRemoteKeys drops all pagination cursors ahead of a full sync.
func (db *DB) ClearRemoteKeys() error {
	return db.Where("1 = 1").Delete(&models.RemoteKey{}).Error
}

// GetRemoteKey retrieves the page cursor for an item, (nil, nil) when absent.
func (db *DB) GetRemoteKey(itemID string) (*models.RemoteKey, error) {
	var key models.RemoteKey
	err := db.First(&key, "item_id = ?", itemID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &key, nil
}
