package db

import (
	"fmt"
	"strings"

	"github.com/asteroid-belt/couchpilot/internal/models"
)

// Filter is the structured query tuple the browse surface composes. The
// zero value matches the whole catalog in recently-added order.
type Filter struct {
	// Search routes row selection through the FTS shadow index when
	// non-blank. Relevance then determines order and Sort is ignored:
	// ranking and an explicit sort cannot be honored simultaneously.
	Search string
	// Kind restricts to movies or shows; nil means both.
	Kind *models.MediaKind
	// Genres is a resolved keyword set, matched by substring against the
	// serialized genre column. Empty means no genre restriction.
	Genres []string
	// Sort applies only when Search is blank.
	Sort models.SortOption
}

// HasSearch reports whether the filter carries a usable search term.
// A term that is blank or strips to nothing (whitespace, bare FTS
// metacharacters) cannot form a MATCH query and is treated as absent,
// so such filters take the plain listing path.
func (f Filter) HasSearch() bool {
	return prepareFTSQuery(f.Search) != ""
}

// predKind tags the predicate variants the renderer understands.
type predKind int

const (
	predEquals predKind = iota
	predKeywordAny
)

// pred is one rendered-later predicate. Keeping predicates structured
// until render time preserves parameter binding for every user input.
type pred struct {
	kind   predKind
	column string
	values []string
}

// render returns the SQL fragment and its bind arguments.
func (p pred) render() (string, []any) {
	switch p.kind {
	case predEquals:
		return p.column + " = ?", []any{p.values[0]}
	case predKeywordAny:
		clauses := make([]string, len(p.values))
		args := make([]any, len(p.values))
		for i, kw := range p.values {
			clauses[i] = p.column + " LIKE ?"
			args[i] = "%" + strings.ToLower(kw) + "%"
		}
		return "(" + strings.Join(clauses, " OR ") + ")", args
	default:
		panic(fmt.Sprintf("unknown predicate kind %d", p.kind))
	}
}

// predicates builds the non-text predicates shared by the list and count
// variants. The qualifier prefixes column names when the FTS join is in
// play.
func (f Filter) predicates(qualifier string) []pred {
	var preds []pred
	if f.Kind != nil {
		preds = append(preds, pred{kind: predEquals, column: qualifier + "kind", values: []string{string(*f.Kind)}})
	}
	if len(f.Genres) > 0 {
		preds = append(preds, pred{kind: predKeywordAny, column: qualifier + "genres", values: f.Genres})
	}
	return preds
}

// orderClause renders the ORDER BY for a sort option. Every ordering ends
// with an id tiebreak so pagination windows are stable across identical
// sort keys. An out-of-range option is a programmer error: the enum is
// closed and never reaches this from user input.
func orderClause(sort models.SortOption) string {
	switch sort {
	case models.SortRecentlyAdded:
		return "added_at DESC, id DESC"
	case models.SortTitle:
		return "title COLLATE NOCASE ASC, id DESC"
	case models.SortYearDesc:
		return "year DESC, id DESC"
	case models.SortYearAsc:
		return "year ASC, id DESC"
	case models.SortRatingDesc:
		return "rating DESC, id DESC"
	case models.SortRatingAsc:
		return "rating ASC, id DESC"
	default:
		panic(fmt.Sprintf("unknown sort option %v", sort))
	}
}

// ListCatalog runs the composed filter against the cache and returns one
// page of rows.
func (db *DB) ListCatalog(f Filter, limit, offset int) ([]models.CatalogItem, error) {
	if limit <= 0 {
		limit = 50
	}

	var items []models.CatalogItem

	if f.HasSearch() {
		sql, args := f.searchQuery(false)
		args = append(args, limit, offset)
		if err := db.Raw(sql, args...).Scan(&items).Error; err != nil {
			return nil, fmt.Errorf("fts query: %w", err)
		}
		return items, nil
	}

	sql, args := f.plainQuery(false)
	args = append(args, limit, offset)
	if err := db.Raw(sql, args...).Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("catalog query: %w", err)
	}
	return items, nil
}

// CountCatalog returns the total row count for the same predicate as
// ListCatalog, without sort or limit. Used for UI totals.
func (db *DB) CountCatalog(f Filter) (int64, error) {
	var (
		sql  string
		args []any
	)
	if f.HasSearch() {
		sql, args = f.searchQuery(true)
	} else {
		sql, args = f.plainQuery(true)
	}

	var count int64
	if err := db.Raw(sql, args...).Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("catalog count: %w", err)
	}
	return count, nil
}

// plainQuery renders the no-search-term variant.
func (f Filter) plainQuery(count bool) (string, []any) {
	var b strings.Builder
	var args []any

	if count {
		b.WriteString("SELECT COUNT(*) FROM catalog_items")
	} else {
		b.WriteString("SELECT * FROM catalog_items")
	}

	preds := f.predicates("")
	for i, p := range preds {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		sql, a := p.render()
		b.WriteString(sql)
		args = append(args, a...)
	}

	if !count {
		b.WriteString(" ORDER BY ")
		b.WriteString(orderClause(f.Sort))
		b.WriteString(" LIMIT ? OFFSET ?")
	}

	return b.String(), args
}

// searchQuery renders the FTS-joined variant. Row order comes from the
// index rank, never from f.Sort.
func (f Filter) searchQuery(count bool) (string, []any) {
	var b strings.Builder
	var args []any

	if count {
		b.WriteString("SELECT COUNT(*) FROM catalog_items c JOIN catalog_fts fts ON c.rowid = fts.rowid")
	} else {
		b.WriteString("SELECT c.* FROM catalog_items c JOIN catalog_fts fts ON c.rowid = fts.rowid")
	}

	b.WriteString(" WHERE catalog_fts MATCH ?")
	args = append(args, prepareFTSQuery(f.Search))

	for _, p := range f.predicates("c.") {
		b.WriteString(" AND ")
		sql, a := p.render()
		b.WriteString(sql)
		args = append(args, a...)
	}

	if !count {
		b.WriteString(" ORDER BY rank LIMIT ? OFFSET ?")
	}

	return b.String(), args
}

// prepareFTSQuery turns free text into an FTS5 prefix query: whitespace
// tokens, metacharacters stripped, each token suffixed for prefix match,
// joined with implicit AND.
func prepareFTSQuery(query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return ""
	}

	var escaped []string
	for _, term := range terms {
		term = strings.ReplaceAll(term, "\"", "")
		term = strings.ReplaceAll(term, "'", "")
		term = strings.ReplaceAll(term, "(", "")
		term = strings.ReplaceAll(term, ")", "")
		term = strings.ReplaceAll(term, "*", "")
		term = strings.ReplaceAll(term, ":", "")
		term = strings.ReplaceAll(term, "-", " ")

		if term != "" {
			escaped = append(escaped, term+"*")
		}
	}

	return strings.Join(escaped, " ")
}
