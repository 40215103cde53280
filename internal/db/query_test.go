package db

import (
	"testing"

	"github.com/asteroid-belt/couchpilot/internal/models"
)

// seedCatalog installs a small fixed catalog for query tests.
func seedCatalog(t *testing.T, db *DB) {
	t.Helper()

	ratingHigh, ratingLow := 9.0, 5.5
	items := []models.CatalogItem{
		{
			ID: "imdb://tt0001", Title: "The Quiet Harbor", Kind: models.KindMovie,
			Year: 2019, AddedAt: 100, Rating: &ratingHigh,
			Summary: "A lighthouse keeper uncovers a smuggling ring.",
		},
		{
			ID: "imdb://tt0002", Title: "Harbor Nights", Kind: models.KindMovie,
			Year: 2021, AddedAt: 300, Rating: &ratingLow,
			Summary: "Crime drama set on the docks.",
		},
		{
			ID: "imdb://tt0003", Title: "Starlane", Kind: models.KindShow,
			Year: 2021, AddedAt: 200,
			Summary: "A freighter crew hauls cargo between colonies.",
		},
	}
	items[0].SetGenreList([]string{"Drama"})
	items[1].SetGenreList([]string{"Crime", "Drama"})
	items[2].SetGenreList([]string{"Science Fiction"})

	if err := db.UpsertItems(items); err != nil {
		t.Fatalf("seed: UpsertItems() error = %v", err)
	}
}

func TestListCatalog_NoFilter(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)

	items, err := db.ListCatalog(Filter{}, 10, 0)
	if err != nil {
		t.Fatalf("ListCatalog() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	// Default order is recently added.
	if items[0].ID != "imdb://tt0002" || items[1].ID != "imdb://tt0003" || items[2].ID != "imdb://tt0001" {
		t.Errorf("unexpected order: %s, %s, %s", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestListCatalog_KindFilter(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)

	kind := models.KindShow
	items, err := db.ListCatalog(Filter{Kind: &kind}, 10, 0)
	if err != nil {
		t.Fatalf("ListCatalog() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "imdb://tt0003" {
		t.Errorf("kind filter returned %v", ids(items))
	}
}

func TestListCatalog_GenreFilter(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)

	items, err := db.ListCatalog(Filter{Genres: []string{"drama"}}, 10, 0)
	if err != nil {
		t.Fatalf("ListCatalog() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("genre filter returned %v, want both dramas", ids(items))
	}

	// Any keyword in the set is enough.
	items, err = db.ListCatalog(Filter{Genres: []string{"crime", "science fiction"}}, 10, 0)
	if err != nil {
		t.Fatalf("ListCatalog() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("multi-keyword filter returned %v", ids(items))
	}
}

func TestListCatalog_Search(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)

	items, err := db.ListCatalog(Filter{Search: "harbor"}, 10, 0)
	if err != nil {
		t.Fatalf("ListCatalog() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("search returned %v, want the two harbor titles", ids(items))
	}

	// Summary text is indexed too.
	items, err = db.ListCatalog(Filter{Search: "lighthouse"}, 10, 0)
	if err != nil {
		t.Fatalf("ListCatalog() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "imdb://tt0001" {
		t.Errorf("summary search returned %v", ids(items))
	}

	// Prefix matching applies to every token.
	items, err = db.ListCatalog(Filter{Search: "starl"}, 10, 0)
	if err != nil {
		t.Fatalf("ListCatalog() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "imdb://tt0003" {
		t.Errorf("prefix search returned %v", ids(items))
	}
}

func TestListCatalog_SearchWithKind(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)

	kind := models.KindMovie
	items, err := db.ListCatalog(Filter{Search: "harbor", Kind: &kind}, 10, 0)
	if err != nil {
		t.Fatalf("ListCatalog() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("search+kind returned %v", ids(items))
	}

	kind = models.KindShow
	items, err = db.ListCatalog(Filter{Search: "harbor", Kind: &kind}, 10, 0)
	if err != nil {
		t.Fatalf("ListCatalog() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("search+mismatched kind returned %v, want none", ids(items))
	}
}

func TestListCatalog_Sorts(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)

	tests := []struct {
		name  string
		sort  models.SortOption
		first string
	}{
		{"title", models.SortTitle, "imdb://tt0002"},
		{"year desc", models.SortYearDesc, "imdb://tt0003"}, // id tiebreak between the 2021 pair
		{"year asc", models.SortYearAsc, "imdb://tt0001"},
		{"rating desc", models.SortRatingDesc, "imdb://tt0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := db.ListCatalog(Filter{Sort: tt.sort}, 10, 0)
			if err != nil {
				t.Fatalf("ListCatalog() error = %v", err)
			}
			if len(items) == 0 || items[0].ID != tt.first {
				t.Errorf("first item = %v, want %s", ids(items), tt.first)
			}
		})
	}
}

func TestListCatalog_Pagination(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)

	pageOne, err := db.ListCatalog(Filter{}, 2, 0)
	if err != nil {
		t.Fatalf("ListCatalog() error = %v", err)
	}
	pageTwo, err := db.ListCatalog(Filter{}, 2, 2)
	if err != nil {
		t.Fatalf("ListCatalog() error = %v", err)
	}

	if len(pageOne) != 2 || len(pageTwo) != 1 {
		t.Fatalf("page sizes = %d, %d; want 2, 1", len(pageOne), len(pageTwo))
	}
	for _, first := range pageOne {
		for _, second := range pageTwo {
			if first.ID == second.ID {
				t.Errorf("item %s appears on both pages", first.ID)
			}
		}
	}
}

func TestCountCatalog(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)

	tests := []struct {
		name   string
		filter Filter
		want   int64
	}{
		{"all", Filter{}, 3},
		{"search", Filter{Search: "harbor"}, 2},
		{"genre", Filter{Genres: []string{"drama"}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := db.CountCatalog(tt.filter)
			if err != nil {
				t.Fatalf("CountCatalog() error = %v", err)
			}
			if count != tt.want {
				t.Errorf("CountCatalog() = %d, want %d", count, tt.want)
			}
		})
	}
}

func TestFilter_HasSearch(t *testing.T) {
	if (Filter{}).HasSearch() {
		t.Error("empty filter should not report a search")
	}
	if (Filter{Search: "   "}).HasSearch() {
		t.Error("whitespace-only search should count as absent")
	}
	if (Filter{Search: "()"}).HasSearch() {
		t.Error("metacharacter-only search should count as absent")
	}
	if !(Filter{Search: "dune"}).HasSearch() {
		t.Error("non-blank search should be detected")
	}
}

func TestListCatalog_SearchStripsToNothing(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)

	// Terms made only of FTS metacharacters cannot form a MATCH query.
	// They must fall back to the full listing instead of erroring.
	items, err := db.ListCatalog(Filter{Search: "()"}, 10, 0)
	if err != nil {
		t.Fatalf("ListCatalog() error = %v", err)
	}
	if len(items) != 3 {
		t.Errorf("ListCatalog() returned %d rows, want the full listing of 3", len(items))
	}

	count, err := db.CountCatalog(Filter{Search: "***"})
	if err != nil {
		t.Fatalf("CountCatalog() error = %v", err)
	}
	if count != 3 {
		t.Errorf("CountCatalog() = %d, want 3", count)
	}
}

func TestPrepareFTSQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hello", "hello*"},
		{"hello world", "hello* world*"},
		{"it's (complicated)", "its* complicated*"},
		{"spider-man", "spider man*"},
		{`"quoted"`, "quoted*"},
		{"", ""},
		{"   ", ""},
		{"***", ""},
	}

	for _, tt := range tests {
		if got := prepareFTSQuery(tt.input); got != tt.want {
			t.Errorf("prepareFTSQuery(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func ids(items []models.CatalogItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
