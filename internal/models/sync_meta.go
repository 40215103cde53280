package models

import "time"

// SyncMeta stores sync metadata as key-value pairs.
type SyncMeta struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (SyncMeta) TableName() string {
	return "sync_meta"
}

// Common sync meta keys.
const (
	SyncMetaLastFullSync  = "last_full_sync"
	SyncMetaSchemaVersion = "schema_version"
	SyncMetaTotalItems    = "total_items"
	SyncMetaTrackingID    = "tracking_id"
)

// RemoteKey maps a catalog item id to the remote page numbers around it.
// The table is ephemeral and rebuilt on every full sync; 0 means no
// page in that direction.
type RemoteKey struct {
	ItemID   string `gorm:"primaryKey;size:64" json:"item_id"`
	PrevPage int    `json:"prev_page"`
	NextPage int    `json:"next_page"`
}

// TableName specifies the table name for GORM.
func (RemoteKey) TableName() string {
	return "remote_keys"
}
