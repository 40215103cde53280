// Package taxonomy maps user-facing category labels to the genre
// keywords the query layer matches against serialized genre lists.
package taxonomy

// categories is the static label -> keyword-set mapping. Keywords are
// lowercase because the genre column is stored lowercase.
var categories = map[string][]string{
	"Action & Adventure": {"action", "adventure", "martial arts"},
	"Animation":          {"animation", "anime"},
	"Comedy":             {"comedy", "stand-up"},
	"Crime & Thriller":   {"crime", "thriller", "mystery", "film noir"},
	"Documentary":        {"documentary", "biography"},
	"Drama":              {"drama"},
	"Horror":             {"horror"},
	"Kids & Family":      {"children", "family", "kids"},
	"Music":              {"music", "musical", "concert"},
	"Romance":            {"romance"},
	"Sci-Fi & Fantasy":   {"science fiction", "sci-fi", "fantasy"},
	"War & History":      {"war", "history", "western"},
}

// order keeps Categories deterministic for display.
var order = []string{
	"Action & Adventure",
	"Animation",
	"Comedy",
	"Crime & Thriller",
	"Documentary",
	"Drama",
	"Horror",
	"Kids & Family",
	"Music",
	"Romance",
	"Sci-Fi & Fantasy",
	"War & History",
}

// Resolve returns the keyword set for a category label. An unknown label
// resolves to nil, which the query layer treats as "no genre filter".
func Resolve(label string) []string {
	kws, ok := categories[label]
	if !ok {
		return nil
	}
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}

// Categories returns all category labels in display order.
func Categories() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}
