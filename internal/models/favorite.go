package models

import "time"

// FavoriteMark flags a media id the user pinned. Its lifecycle is
// independent from CatalogItem: a favorite may outlive the cached row it
// was created from (a schema rebuild clears the catalog, not favorites).
type FavoriteMark struct {
	MediaID string    `gorm:"primaryKey;size:64" json:"media_id"`
	Kind    MediaKind `gorm:"size:16" json:"kind"`
	Title   string    `gorm:"size:255" json:"title"`
	Thumb   string    `gorm:"size:500" json:"thumb"`
	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`
}

// TableName specifies the table name for GORM.
func (FavoriteMark) TableName() string {
	return "favorites"
}

// FavoriteFromItem builds a mark carrying the display fields a favorites
// list needs even after the catalog row is gone.
func FavoriteFromItem(item *CatalogItem) FavoriteMark {
	return FavoriteMark{
		MediaID: item.ID,
		Kind:    item.Kind,
		Title:   item.Title,
		Thumb:   item.Thumb,
	}
}
