package db

import (
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/couchpilot/internal/models"
)

// AddFavorite marks a media id as a favorite. Idempotent: re-adding an
// existing favorite refreshes its display fields without error.
func (db *DB) AddFavorite(mark models.FavoriteMark) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "media_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "title", "thumb"}),
	}).Create(&mark).Error
}

// RemoveFavorite deletes a favorite mark. Removing a non-existent mark
// is not an error.
func (db *DB) RemoveFavorite(mediaID string) error {
	return db.Delete(&models.FavoriteMark{}, "media_id = ?", mediaID).Error
}

// IsFavorite checks whether a media id is marked.
func (db *DB) IsFavorite(mediaID string) (bool, error) {
	var count int64
	err := db.Model(&models.FavoriteMark{}).Where("media_id = ?", mediaID).Count(&count).Error
	return count > 0, err
}

// ListFavorites returns all marks, most recently added first. Marks may
// reference ids no longer present in the catalog; callers that need the
// full row should look it up and tolerate a miss.
func (db *DB) ListFavorites() ([]models.FavoriteMark, error) {
	var marks []models.FavoriteMark
	err := db.Order("added_at DESC").Find(&marks).Error
	return marks, err
}
