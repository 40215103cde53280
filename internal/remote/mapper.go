package remote

import (
	"strings"

	"github.com/asteroid-belt/couchpilot/internal/models"
)

// legacyAgentPrefix marks GUIDs minted by the old metadata agents
// ("com.plexapp.agents.imdb://tt0111161?lang=en"). The substitution to
// the modern "imdb://tt0111161" form patches over an id-format
// inconsistency in the upstream server; it is environment-specific, not
// a general contract.
const legacyAgentPrefix = "com.plexapp.agents."

// canonicalAgents are the external id schemes accepted as canonical,
// in preference order.
var canonicalAgents = []string{"imdb://", "tmdb://", "tvdb://"}

// resolveID picks the cache id for a record: canonical external id if
// present, else an id derived from a recognizable legacy GUID, else the
// raw provider key. Empty means the record is unusable.
func resolveID(m Metadata) string {
	for _, agent := range canonicalAgents {
		for _, g := range m.Guids {
			if strings.HasPrefix(g.ID, agent) {
				return g.ID
			}
		}
	}

	if rest, ok := strings.CutPrefix(m.GUID, legacyAgentPrefix); ok {
		// "imdb://tt0111161?lang=en" -> "imdb://tt0111161"
		if id, _, found := strings.Cut(rest, "?"); found {
			return id
		}
		return rest
	}

	return m.RatingKey
}

// resolveImage makes a possibly-relative image path absolute against the
// server base URL.
func resolveImage(path, baseURL string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return baseURL + path
}

// MapItem converts one wire record into a cache row. ok is false when no
// id can be resolved; such records are skipped rather than failing the
// batch. Absent optional fields get defaults: missing title falls back
// to the sort title then a provider placeholder, missing ratings stay
// null, missing lists stay empty.
func MapItem(m Metadata, baseURL string) (models.CatalogItem, bool) {
	id := resolveID(m)
	if id == "" {
		return models.CatalogItem{}, false
	}

	item := models.CatalogItem{
		ID:            id,
		Title:         m.Title,
		Kind:          mapKind(m.Type),
		Thumb:         resolveImage(m.Thumb, baseURL),
		Art:           resolveImage(m.Art, baseURL),
		Year:          m.Year,
		AddedAt:       m.AddedAt,
		Rating:        m.AudienceRating,
		CriticRating:  m.Rating,
		Summary:       m.Summary,
		Studio:        m.Studio,
		ContentRating: m.ContentRating,
		ViewOffsetMs:  m.ViewOffset,
		DurationMs:    m.Duration,
		ViewCount:     m.ViewCount,
	}

	if item.Title == "" {
		item.Title = m.TitleSort
	}
	if item.Title == "" {
		item.Title = "Untitled " + m.RatingKey
	}

	if len(m.Director) > 0 {
		item.Director = m.Director[0].Tag
	}

	genres := make([]string, 0, len(m.Genre))
	for _, g := range m.Genre {
		if g.Tag != "" {
			genres = append(genres, g.Tag)
		}
	}
	item.SetGenreList(genres)

	item.MultipleSources = len(m.Media) > 1
	item.SetAudioTrackList(mapAudioTracks(m.Media))
	item.SetSubtitleList(mapSubtitles(m.Media))
	item.SetChapterList(mapChapters(m.Chapter))
	item.SetMarkerList(mapMarkers(m.Marker))
	item.SetSeasonList(mapSeasons(m.Children))

	return item, true
}

// mapKind folds unknown record types into movie; the bulk endpoint only
// serves movies and shows.
func mapKind(t string) models.MediaKind {
	if t == "show" {
		return models.KindShow
	}
	return models.KindMovie
}

func mapAudioTracks(media []Media) []models.AudioTrack {
	var tracks []models.AudioTrack
	for _, m := range media {
		for _, p := range m.Part {
			for _, s := range p.Stream {
				if s.StreamType != 2 {
					continue
				}
				tracks = append(tracks, models.AudioTrack{
					Codec:        s.Codec,
					Language:     s.Language,
					Channels:     s.Channels,
					DisplayTitle: s.DisplayTitle,
				})
			}
		}
	}
	return tracks
}

func mapSubtitles(media []Media) []models.SubtitleTrack {
	var subs []models.SubtitleTrack
	for _, m := range media {
		for _, p := range m.Part {
			for _, s := range p.Stream {
				if s.StreamType != 3 {
					continue
				}
				subs = append(subs, models.SubtitleTrack{
					Language:     s.Language,
					Format:       s.Format,
					Forced:       s.Forced,
					DisplayTitle: s.DisplayTitle,
				})
			}
		}
	}
	return subs
}

func mapChapters(chapters []Chapter) []models.Chapter {
	out := make([]models.Chapter, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, models.Chapter{
			Title:   c.Tag,
			StartMs: c.StartTimeMs,
			EndMs:   c.EndTimeMs,
		})
	}
	return out
}

func mapMarkers(markers []Marker) []models.Marker {
	out := make([]models.Marker, 0, len(markers))
	for _, m := range markers {
		out = append(out, models.Marker{
			Type:    m.Type,
			StartMs: m.StartTimeMs,
			EndMs:   m.EndTimeMs,
		})
	}
	return out
}

func mapSeasons(seasons []Season) []models.SeasonRef {
	out := make([]models.SeasonRef, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, models.SeasonRef{
			ID:           s.RatingKey,
			Title:        s.Title,
			Index:        s.Index,
			EpisodeCount: s.LeafCount,
		})
	}
	return out
}
