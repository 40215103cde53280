package models

import "time"

// Playback progress thresholds. Positions under MinSavePositionMs are
// noise (the player reporting while spinning up) and are discarded;
// beyond FinishedRatio the entry is marked finished.
const (
	MinSavePositionMs int64   = 10_000
	FinishedRatio     float64 = 0.90
)

// PlaybackHistoryEntry records the last playback position for a media id.
// It backs resume-playback and the continue-watching shelf.
type PlaybackHistoryEntry struct {
	MediaID      string    `gorm:"primaryKey;size:64" json:"media_id"`
	Title        string    `gorm:"size:255" json:"title"`
	Thumb        string    `gorm:"size:500" json:"thumb"`
	LastPlayedAt time.Time `gorm:"index" json:"last_played_at"`
	PositionMs   int64     `json:"position_ms"`
	DurationMs   int64     `json:"duration_ms"`
	Finished     bool      `gorm:"index" json:"finished"`
}

// TableName specifies the table name for GORM.
func (PlaybackHistoryEntry) TableName() string {
	return "playback_history"
}

// IsFinished reports whether a position counts as a completed viewing.
func IsFinished(positionMs, durationMs int64) bool {
	if durationMs <= 0 {
		return false
	}
	return float64(positionMs)/float64(durationMs) > FinishedRatio
}
