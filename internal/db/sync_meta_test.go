package db

import (
	"testing"

	"github.com/asteroid-belt/couchpilot/internal/models"
)

func TestSyncMeta(t *testing.T) {
	db := testDB(t)

	value, err := db.GetSyncMeta("nonexistent")
	if err != nil {
		t.Fatalf("GetSyncMeta() error = %v", err)
	}
	if value != "" {
		t.Errorf("GetSyncMeta() on unknown key = %q, want empty", value)
	}

	if err := db.SetSyncMeta(models.SyncMetaLastFullSync, "2026-01-01T00:00:00Z"); err != nil {
		t.Fatalf("SetSyncMeta() error = %v", err)
	}
	value, err = db.GetSyncMeta(models.SyncMetaLastFullSync)
	if err != nil {
		t.Fatalf("GetSyncMeta() error = %v", err)
	}
	if value != "2026-01-01T00:00:00Z" {
		t.Errorf("GetSyncMeta() = %q", value)
	}

	// Overwrite.
	if err := db.SetSyncMeta(models.SyncMetaLastFullSync, "2026-02-01T00:00:00Z"); err != nil {
		t.Fatalf("SetSyncMeta() overwrite error = %v", err)
	}
	value, _ = db.GetSyncMeta(models.SyncMetaLastFullSync)
	if value != "2026-02-01T00:00:00Z" {
		t.Errorf("GetSyncMeta() after overwrite = %q", value)
	}
}

func TestGetOrCreateTrackingID(t *testing.T) {
	db := testDB(t)

	first := db.GetOrCreateTrackingID()
	if first == "" {
		t.Fatal("GetOrCreateTrackingID() returned empty id")
	}

	second := db.GetOrCreateTrackingID()
	if second != first {
		t.Errorf("tracking id not stable: %q then %q", first, second)
	}
}

func TestRemoteKeys(t *testing.T) {
	db := testDB(t)

	keys := []models.RemoteKey{
		{ItemID: "imdb://tt0001", PrevPage: 0, NextPage: 2},
		{ItemID: "imdb://tt0002", PrevPage: 0, NextPage: 2},
	}
	if err := db.ReplaceRemoteKeys(keys); err != nil {
		t.Fatalf("ReplaceRemoteKeys() error = %v", err)
	}

	key, err := db.GetRemoteKey("imdb://tt0001")
	if err != nil {
		t.Fatalf("GetRemoteKey() error = %v", err)
	}
	if key == nil || key.NextPage != 2 {
		t.Errorf("GetRemoteKey() = %+v, want next page 2", key)
	}

	// Replaying the same item moves its cursor.
	if err := db.ReplaceRemoteKeys([]models.RemoteKey{{ItemID: "imdb://tt0001", PrevPage: 1, NextPage: 3}}); err != nil {
		t.Fatalf("ReplaceRemoteKeys() replay error = %v", err)
	}
	key, _ = db.GetRemoteKey("imdb://tt0001")
	if key == nil || key.PrevPage != 1 || key.NextPage != 3 {
		t.Errorf("GetRemoteKey() after replay = %+v", key)
	}

	if err := db.ClearRemoteKeys(); err != nil {
		t.Fatalf("ClearRemoteKeys() error = %v", err)
	}
	key, err = db.GetRemoteKey("imdb://tt0001")
	if err != nil {
		t.Fatalf("GetRemoteKey() error = %v", err)
	}
	if key != nil {
		t.Errorf("GetRemoteKey() after clear = %+v, want nil", key)
	}
}
