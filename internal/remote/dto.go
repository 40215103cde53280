package remote

// Wire types for the media server's JSON catalog API. Only the fields
// the mapper consumes are declared.

// APIResponse wraps the MediaContainer for JSON unmarshaling.
type APIResponse struct {
	MediaContainer MediaContainer `json:"MediaContainer"`
}

// MediaContainer is the root container for catalog responses.
type MediaContainer struct {
	Size      int        `json:"size"`
	TotalSize int        `json:"totalSize,omitempty"`
	Offset    int        `json:"offset,omitempty"`
	Metadata  []Metadata `json:"Metadata,omitempty"`
}

// Guid represents an external identifier (IMDB, TMDB, TVDB, ...).
type Guid struct {
	ID string `json:"id"` // e.g. "imdb://tt1234567", "tmdb://12345"
}

// Tag is a generic name-carrying element (genres, directors).
type Tag struct {
	Tag string `json:"tag"`
}

// Metadata represents one catalog record (movie or show).
type Metadata struct {
	RatingKey     string `json:"ratingKey"`
	Key           string `json:"key"`
	GUID          string `json:"guid,omitempty"` // provider-internal GUID
	Guids         []Guid `json:"Guid,omitempty"` // external canonical ids
	Type          string `json:"type"`
	Title         string `json:"title"`
	TitleSort     string `json:"titleSort,omitempty"`
	Studio        string `json:"studio,omitempty"`
	ContentRating string `json:"contentRating,omitempty"`
	Summary       string `json:"summary,omitempty"`
	// Ratings are pointers so an absent value maps to null in the
	// cache rather than a spurious 0.
	Rating         *float64 `json:"rating,omitempty"`         // critic rating
	AudienceRating *float64 `json:"audienceRating,omitempty"` // primary rating

	Year       int    `json:"year,omitempty"`
	Thumb      string `json:"thumb,omitempty"`
	Art        string `json:"art,omitempty"`
	Duration   int64  `json:"duration,omitempty"`   // milliseconds
	ViewOffset int64  `json:"viewOffset,omitempty"` // milliseconds
	ViewCount  int    `json:"viewCount,omitempty"`
	AddedAt    int64  `json:"addedAt,omitempty"` // unix seconds

	Genre    []Tag     `json:"Genre,omitempty"`
	Director []Tag     `json:"Director,omitempty"`
	Media    []Media   `json:"Media,omitempty"`
	Chapter  []Chapter `json:"Chapter,omitempty"`
	Marker   []Marker  `json:"Marker,omitempty"`
	Children []Season  `json:"Children,omitempty"`
}

// Media represents one source of an item (container, streams).
type Media struct {
	ID       int    `json:"id"`
	Duration int64  `json:"duration,omitempty"`
	Bitrate  int    `json:"bitrate,omitempty"`
	Part     []Part `json:"Part,omitempty"`
}

// Part represents a media file part.
type Part struct {
	ID     int      `json:"id"`
	Key    string   `json:"key"`
	Stream []Stream `json:"Stream,omitempty"`
}

// Stream is one audio/video/subtitle stream. streamType: 1 video,
// 2 audio, 3 subtitle.
type Stream struct {
	StreamType   int    `json:"streamType"`
	Codec        string `json:"codec,omitempty"`
	Language     string `json:"language,omitempty"`
	Channels     int    `json:"channels,omitempty"`
	Format       string `json:"format,omitempty"`
	Forced       bool   `json:"forced,omitempty"`
	DisplayTitle string `json:"displayTitle,omitempty"`
}

// Chapter is a named time range.
type Chapter struct {
	Tag         string `json:"tag,omitempty"`
	StartTimeMs int64  `json:"startTimeOffset,omitempty"`
	EndTimeMs   int64  `json:"endTimeOffset,omitempty"`
}

// Marker flags a skippable region (intro, credits).
type Marker struct {
	Type        string `json:"type"`
	StartTimeMs int64  `json:"startTimeOffset,omitempty"`
	EndTimeMs   int64  `json:"endTimeOffset,omitempty"`
}

// Season is a nested season reference on a show record.
type Season struct {
	RatingKey string `json:"ratingKey"`
	Title     string `json:"title,omitempty"`
	Index     int    `json:"index,omitempty"`
	LeafCount int    `json:"leafCount,omitempty"`
}
