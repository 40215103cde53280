package models

import "fmt"

// SortOption enumerates the orderings the browse surface offers. The
// zero value is recently-added, the default shelf order.
type SortOption int

const (
	SortRecentlyAdded SortOption = iota
	SortTitle
	SortYearDesc
	SortYearAsc
	SortRatingDesc
	SortRatingAsc
)

var sortNames = map[SortOption]string{
	SortRecentlyAdded: "recently-added",
	SortTitle:         "title",
	SortYearDesc:      "year-desc",
	SortYearAsc:       "year-asc",
	SortRatingDesc:    "rating-desc",
	SortRatingAsc:     "rating-asc",
}

func (s SortOption) String() string {
	if name, ok := sortNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SortOption(%d)", int(s))
}

// ParseSortOption maps a user-supplied name to a sort option. The empty
// string means the default ordering.
func ParseSortOption(name string) (SortOption, error) {
	if name == "" {
		return SortRecentlyAdded, nil
	}
	for opt, n := range sortNames {
		if n == name {
			return opt, nil
		}
	}
	return SortRecentlyAdded, fmt.Errorf("unknown sort option %q", name)
}

// SortOptions returns every option in display order.
func SortOptions() []SortOption {
	return []SortOption{
		SortRecentlyAdded,
		SortTitle,
		SortYearDesc,
		SortYearAsc,
		SortRatingDesc,
		SortRatingAsc,
	}
}
