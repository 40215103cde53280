package models

import (
	"reflect"
	"testing"
)

func TestGenreList(t *testing.T) {
	var item CatalogItem

	item.SetGenreList([]string{"Action", " Sci-Fi ", ""})
	if item.Genres != "action, sci-fi" {
		t.Errorf("Genres = %q, want %q", item.Genres, "action, sci-fi")
	}

	got := item.GenreList()
	if !reflect.DeepEqual(got, []string{"action", "sci-fi"}) {
		t.Errorf("GenreList() = %v", got)
	}

	item.SetGenreList(nil)
	if item.Genres != "" {
		t.Errorf("Genres after empty set = %q", item.Genres)
	}
	if item.GenreList() != nil {
		t.Errorf("GenreList() on empty column = %v, want nil", item.GenreList())
	}
}

func TestListColumns(t *testing.T) {
	var item CatalogItem

	tracks := []AudioTrack{{Codec: "aac", Language: "en", Channels: 2, DisplayTitle: "English Stereo"}}
	item.SetAudioTrackList(tracks)
	if got := item.AudioTrackList(); !reflect.DeepEqual(got, tracks) {
		t.Errorf("AudioTrackList() = %v, want %v", got, tracks)
	}

	item.SetAudioTrackList(nil)
	if item.AudioTracks != "" {
		t.Errorf("empty list should store empty string, got %q", item.AudioTracks)
	}
	if item.AudioTrackList() != nil {
		t.Error("empty column should decode to nil")
	}

	// A corrupt column decodes to nil rather than failing the read.
	item.Chapters = "{not json"
	if item.ChapterList() != nil {
		t.Error("malformed column should decode to nil")
	}
}

func TestIsFinished(t *testing.T) {
	tests := []struct {
		name       string
		positionMs int64
		durationMs int64
		want       bool
	}{
		{"past threshold", 6_500_000, 7_200_000, true},
		{"exactly at threshold", 6_480_000, 7_200_000, false},
		{"halfway", 3_600_000, 7_200_000, false},
		{"zero duration", 6_500_000, 0, false},
		{"negative duration", 100, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinished(tt.positionMs, tt.durationMs); got != tt.want {
				t.Errorf("IsFinished(%d, %d) = %v, want %v", tt.positionMs, tt.durationMs, got, tt.want)
			}
		})
	}
}

func TestShouldResume(t *testing.T) {
	item := CatalogItem{ViewOffsetMs: 3_600_000, DurationMs: 7_200_000}
	if !item.ShouldResume() {
		t.Error("halfway in should offer resume")
	}

	item.ViewOffsetMs = 5_000
	if item.ShouldResume() {
		t.Error("sub-threshold offset should not offer resume")
	}

	item.ViewOffsetMs = 7_100_000
	if item.ShouldResume() {
		t.Error("a finished viewing should not offer resume")
	}
}
