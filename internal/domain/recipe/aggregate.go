// Package recipe contains the core domain logic for recipe discovery:
// the browse aggregation pipeline, the recipe entity, and the ingredient
// measure validator.
package recipe

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder selects the ordering applied by Aggregate.
type SortOrder string

const (
	SortNameAsc    SortOrder = "name-asc"
	SortNameDesc   SortOrder = "name-desc"
	SortRatingDesc SortOrder = "rating-desc"
	SortRatingAsc  SortOrder = "rating-asc"
)

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 12

// Filters holds the user-chosen browse parameters. The caller owns this
// state and must reset Page to 1 whenever any other field changes.
type Filters struct {
	SearchTerm string
	Category   string
	Area       string
	MinRating  float64
	Sort       SortOrder
	Page       int
	PageSize   int
}

// Page is one displayable slice of the aggregated result set.
type Page struct {
	Items      []Summary `json:"items"`
	TotalCount int       `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// Aggregate merges local and external recipe summaries into one ordered,
// paginated page. It is a pure function of its inputs: no I/O, no hidden
// state, and the input slices are never mutated. A source that has not
// loaded yet is simply passed as an empty slice.
//
// The pipeline runs dedup, merge, search filter, category filter, area
// filter, rating filter, stable sort, pagination — in that order. The
// filters are independent predicates, so their order only affects
// intermediate lists, never the final set.
func Aggregate(local, external []Summary, f Filters) Page {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}

	merged := dedupMerge(local, external)

	filtered := merged[:0:0]
	for _, s := range merged {
		if !matchesSearch(s, f.SearchTerm) {
			continue
		}
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if f.Area != "" && s.Area != f.Area {
			continue
		}
		if s.AverageRating < f.MinRating {
			continue
		}
		filtered = append(filtered, s)
	}

	sortSummaries(filtered, f.Sort)

	total := len(filtered)
	totalPages := (total + f.PageSize - 1) / f.PageSize

	start := (f.Page - 1) * f.PageSize
	end := start + f.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      filtered[start:end],
		TotalCount: total,
		TotalPages: totalPages,
	}
}

// dedupMerge concatenates the two sources, dropping every live external
// record that a local cached copy already mirrors. The local copy wins
// because only it carries the ratings accumulated by this application's
// own users; the live record has no rating data at all. Repeated
// external records keep only their first occurrence, so feeding the
// same live list twice changes nothing.
func dedupMerge(local, external []Summary) []Summary {
	externalIDs := make(map[string]struct{}, len(external))
	for _, s := range external {
		externalIDs[s.ID] = struct{}{}
	}

	merged := make([]Summary, 0, len(local)+len(external))
	mirrored := make(map[string]struct{}, len(local))
	for _, s := range local {
		if s.ExternalID != "" {
			if _, live := externalIDs[s.ExternalID]; live {
				mirrored[s.ExternalID] = struct{}{}
			}
		}
		merged = append(merged, s.normalized())
	}
	seen := make(map[string]struct{}, len(external))
	for _, s := range external {
		if _, dup := mirrored[s.ID]; dup {
			continue
		}
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		merged = append(merged, s.normalized())
	}
	return merged
}

// matchesSearch reports whether any of title, category or area contains
// term, case-insensitively. An empty term passes everything.
func matchesSearch(s Summary, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.Title), term) ||
		strings.Contains(strings.ToLower(s.Category), term) ||
		strings.Contains(strings.ToLower(s.Area), term)
}

// sortSummaries sorts in place, stably: rating ties keep input order,
// which matters since unrated items all share a rating of zero.
func sortSummaries(items []Summary, order SortOrder) {
	switch order {
	case SortRatingDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].AverageRating > items[j].AverageRating
		})
	case SortRatingAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].AverageRating < items[j].AverageRating
		})
	case SortNameDesc:
		c := titleCollator()
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Title, items[j].Title) > 0
		})
	default: // SortNameAsc
		c := titleCollator()
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Title, items[j].Title) < 0
		})
	}
}

func titleCollator() *collate.Collator {
	return collate.New(language.English, collate.Loose)
}
