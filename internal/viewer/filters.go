// Package viewer implements the market listing core: an explicit state
// object driven by discrete commands, with pure functions for filtering,
// sorting and pagination so the logic runs the same under tests, the
// terminal browser, or any other surface.
package viewer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lucasreis/polyview/internal/models"
)

// Status filter values.
const (
	StatusAny    = ""
	StatusActive = "active"
	StatusClosed = "closed"
)

// Filters holds the active predicates. Empty fields mean "no constraint".
// Volume bounds are kept as the raw input text; unparsable bounds are
// treated as absent.
type Filters struct {
	Search    string
	Category  string
	Status    string
	MinVolume string
	MaxVolume string
}

// Empty reports whether no predicate is active.
func (f Filters) Empty() bool {
	return f == Filters{}
}

// Match reports whether a market satisfies every active predicate.
func (f Filters) Match(m models.Market, rules []models.CategoryRule) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		title := strings.ToLower(m.Title)
		desc := strings.ToLower(m.Description)
		if !strings.Contains(title, term) && !strings.Contains(desc, term) {
			return false
		}
	}

	if f.Category != "" && m.EffectiveCategory(rules) != f.Category {
		return false
	}

	switch f.Status {
	case StatusActive:
		if m.Closed {
			return false
		}
	case StatusClosed:
		if !m.Closed {
			return false
		}
	}

	if min, ok := parseBound(f.MinVolume); ok && m.Volume < min {
		return false
	}
	if max, ok := parseBound(f.MaxVolume); ok && m.Volume > max {
		return false
	}

	return true
}

func parseBound(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Apply returns the subset of markets matching the filters, sorted by
// volume descending. The input slice is not modified.
func Apply(markets []models.Market, f Filters, rules []models.CategoryRule) []models.Market {
	filtered := make([]models.Market, 0, len(markets))
	for _, m := range markets {
		if f.Match(m, rules) {
			filtered = append(filtered, m)
		}
	}
	SortByVolume(filtered)
	return filtered
}

// SortByVolume sorts descending by volume in place. The sort is stable so
// equal-volume records keep their input order.
func SortByVolume(markets []models.Market) {
	sort.SliceStable(markets, func(i, j int) bool {
		return markets[i].Volume > markets[j].Volume
	})
}

// Categories returns the distinct categories across the collection,
// explicit ones unioned with keyword-derived ones for records lacking an
// explicit category, sorted lexicographically.
func Categories(markets []models.Market, rules []models.CategoryRule) []string {
	seen := make(map[string]bool)
	for _, m := range markets {
		if c := m.EffectiveCategory(rules); c != "" {
			seen[c] = true
		}
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// TotalPages returns ceil(n/size), and 1 for an empty collection so the
// page index always has a valid home.
func TotalPages(n, size int) int {
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// ClampPage clamps a page index to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageSlice returns the visible window [(page-1)*size, page*size).
func PageSlice(markets []models.Market, page, size int) []models.Market {
	start := (page - 1) * size
	if start >= len(markets) {
		return nil
	}
	end := start + size
	if end > len(markets) {
		end = len(markets)
	}
	return markets[start:end]
}

// Stats summarizes the collection for the header display. Volume figures
// cover the currently filtered set, not just the visible page.
type Stats struct {
	Total       int
	Filtered    int
	TotalVolume float64
	AvgVolume   float64
}

// ComputeStats recomputes summary statistics.
func ComputeStats(all, filtered []models.Market) Stats {
	s := Stats{
		Total:    len(all),
		Filtered: len(filtered),
	}
	for _, m := range filtered {
		s.TotalVolume += m.Volume
	}
	if s.Filtered > 0 {
		s.AvgVolume = s.TotalVolume / float64(s.Filtered)
	}
	return s
}
