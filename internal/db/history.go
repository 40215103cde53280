package db

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/couchpilot/internal/models"
)

// SaveProgress records a playback position for a media id. Positions
// under the minimum threshold are discarded so a player spinning up does
// not clobber a real resume point, unless the position already counts as
// finished (short items can complete inside the noise window). The
// finished flag is derived from the position/duration ratio.
func (db *DB) SaveProgress(mediaID, title, thumb string, positionMs, durationMs int64) error {
	if positionMs < models.MinSavePositionMs && !models.IsFinished(positionMs, durationMs) {
		return nil
	}

	entry := models.PlaybackHistoryEntry{
		MediaID:      mediaID,
		Title:        title,
		Thumb:        thumb,
		LastPlayedAt: time.Now(),
		PositionMs:   positionMs,
		DurationMs:   durationMs,
		Finished:     models.IsFinished(positionMs, durationMs),
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "media_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "thumb", "last_played_at", "position_ms", "duration_ms", "finished",
		}),
	}).Create(&entry).Error
}

// GetHistoryEntry retrieves the saved progress for one media id,
// (nil, nil) when none exists.
func (db *DB) GetHistoryEntry(mediaID string) (*models.PlaybackHistoryEntry, error) {
	var entry models.PlaybackHistoryEntry
	err := db.First(&entry, "media_id = ?", mediaID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// ContinueWatching returns unfinished entries, most recently played
// first. This backs the resume shelf.
func (db *DB) ContinueWatching(limit int) ([]models.PlaybackHistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []models.PlaybackHistoryEntry
	err := db.Where("finished = ?", false).
		Order("last_played_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// ListHistory returns all history entries, most recently played first.
func (db *DB) ListHistory(limit int) ([]models.PlaybackHistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.PlaybackHistoryEntry
	err := db.Order("last_played_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
