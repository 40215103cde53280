package models

import "encoding/json"

// AudioTrack describes one audio stream of a media item.
type AudioTrack struct {
	Codec        string `json:"codec,omitempty"`
	Language     string `json:"language,omitempty"`
	Channels     int    `json:"channels,omitempty"`
	DisplayTitle string `json:"display_title,omitempty"`
}

// SubtitleTrack describes one subtitle stream.
type SubtitleTrack struct {
	Language     string `json:"language,omitempty"`
	Format       string `json:"format,omitempty"`
	Forced       bool   `json:"forced,omitempty"`
	DisplayTitle string `json:"display_title,omitempty"`
}

// Chapter is a named position range within a media item.
type Chapter struct {
	Title   string `json:"title,omitempty"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
}

// Marker is a server-detected segment such as intro or credits.
type Marker struct {
	Type    string `json:"type"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
}

// SeasonRef is a lightweight pointer to one season of a show.
type SeasonRef struct {
	ID           string `json:"id"`
	Title        string `json:"title,omitempty"`
	Index        int    `json:"index"`
	EpisodeCount int    `json:"episode_count"`
}

// encodeList serializes a slice to the JSON text stored in a list
// column. An empty slice stores the empty string, not "[]".
func encodeList[T any](items []T) string {
	if len(items) == 0 {
		return ""
	}
	data, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(data)
}

// decodeList parses a list column back into a slice. Empty or malformed
// text decodes to nil; a corrupt column must never fail a read path.
func decodeList[T any](raw string) []T {
	if raw == "" {
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}
