package models

import (
	"strings"
	"time"
)

// MediaKind distinguishes the two record types the catalog carries.
type MediaKind string

const (
	KindMovie MediaKind = "movie"
	KindShow  MediaKind = "show"
)

// CatalogItem is one cached media record. Rows are replaced wholesale on
// resync; only the id is stable across syncs. List-valued fields are
// stored as JSON text so the row stays a flat SQLite record.
type CatalogItem struct {
	ID    string    `gorm:"primaryKey;size:64" json:"id"`
	Title string    `gorm:"size:255;index" json:"title"`
	Kind  MediaKind `gorm:"size:16;index" json:"kind"`
	Thumb string    `gorm:"size:500" json:"thumb"`
	Art   string    `gorm:"size:500" json:"art"`

	Year    int   `gorm:"index" json:"year"`
	AddedAt int64 `gorm:"index" json:"added_at"` // unix seconds, server clock

	// Rating is the audience score, CriticRating the critic score. Nil
	// means the server sent none; zero is a real (terrible) score.
	Rating       *float64 `json:"rating,omitempty"`
	CriticRating *float64 `json:"critic_rating,omitempty"`

	Summary       string `gorm:"type:text" json:"summary"`
	Studio        string `gorm:"size:255" json:"studio"`
	ContentRating string `gorm:"size:32" json:"content_rating"`
	Director      string `gorm:"size:255" json:"director"`

	// Genres is the lowercased genre list joined with ", ". Kept as one
	// column so genre filters reduce to substring matches.
	Genres string `gorm:"size:500" json:"genres"`

	AudioTracks string `gorm:"type:text" json:"audio_tracks"`
	Subtitles   string `gorm:"type:text" json:"subtitles"`
	Chapters    string `gorm:"type:text" json:"chapters"`
	Markers     string `gorm:"type:text" json:"markers"`
	Seasons     string `gorm:"type:text" json:"seasons"`

	ViewOffsetMs    int64 `json:"view_offset_ms"`
	DurationMs      int64 `json:"duration_ms"`
	MultipleSources bool  `json:"multiple_sources"`
	ViewCount       int   `json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SyncedAt  time.Time `json:"synced_at"`
}

// TableName specifies the table name for GORM.
func (CatalogItem) TableName() string {
	return "catalog_items"
}

// GenreList splits the serialized genre column back into a slice.
func (i *CatalogItem) GenreList() []string {
	if i.Genres == "" {
		return nil
	}
	parts := strings.Split(i.Genres, ", ")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

// SetGenreList serializes genres into the flat column, lowercased.
func (i *CatalogItem) SetGenreList(genres []string) {
	lowered := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			lowered = append(lowered, strings.ToLower(g))
		}
	}
	i.Genres = strings.Join(lowered, ", ")
}

func (i *CatalogItem) AudioTrackList() []AudioTrack {
	return decodeList[AudioTrack](i.AudioTracks)
}

func (i *CatalogItem) SetAudioTrackList(tracks []AudioTrack) {
	i.AudioTracks = encodeList(tracks)
}

func (i *CatalogItem) SubtitleList() []SubtitleTrack {
	return decodeList[SubtitleTrack](i.Subtitles)
}

func (i *CatalogItem) SetSubtitleList(subs []SubtitleTrack) {
	i.Subtitles = encodeList(subs)
}

func (i *CatalogItem) ChapterList() []Chapter {
	return decodeList[Chapter](i.Chapters)
}

func (i *CatalogItem) SetChapterList(chapters []Chapter) {
	i.Chapters = encodeList(chapters)
}

func (i *CatalogItem) MarkerList() []Marker {
	return decodeList[Marker](i.Markers)
}

func (i *CatalogItem) SetMarkerList(markers []Marker) {
	i.Markers = encodeList(markers)
}

func (i *CatalogItem) SeasonList() []SeasonRef {
	return decodeList[SeasonRef](i.Seasons)
}

func (i *CatalogItem) SetSeasonList(seasons []SeasonRef) {
	i.Seasons = encodeList(seasons)
}

// ShouldResume reports whether the server-side view offset is worth
// offering as a resume point.
func (i *CatalogItem) ShouldResume() bool {
	return i.ViewOffsetMs >= MinSavePositionMs && !IsFinished(i.ViewOffsetMs, i.DurationMs)
}

// CatalogStats summarizes the cache for the info surface.
type CatalogStats struct {
	TotalItems     int64     `json:"total_items"`
	TotalFavorites int64     `json:"total_favorites"`
	TotalHistory   int64     `json:"total_history"`
	LastFullSync   time.Time `json:"last_full_sync"`
	CacheSizeBytes int64     `json:"cache_size_bytes"`
}
