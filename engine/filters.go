package engine

import (
	"strings"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// ============================================================================
// FILTERS — Dimension-Based Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL dimension constraints per record in one loop.
// Returns a SubView (index list into parent) — zero data copy.
// ============================================================================

// Filters define which records to include.
// Keys are dimension names. Values are allowed values.
// OR within a dimension, AND across dimensions. Empty = all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// StateFilter is shorthand for a single-state filter.
func StateFilter(state string) Filters {
	return Filters{Dimensions: map[string][]string{schema.KeyState: {state}}}
}

// ApplyFilters returns a view of records matching all dimension filters.
// Values match exactly; a state filter of "Kerala" does not select "KERALA".
// Empty filter = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool)
	for dim, allowed := range filters.Dimensions {
		if len(allowed) > 0 {
			sets[dim] = toSet(allowed)
		}
	}

	// Single pass — record passes if it matches ALL dimension filters
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for dim, set := range sets {
			if !set[view.Dimension(i, dim)] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

// ExcludeValues drops records whose dimension value is in values.
func ExcludeValues(view RecordView, dimension string, values ...string) RecordView {
	if len(values) == 0 {
		return view
	}
	set := toSet(values)
	indices := make([]int, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if !set[view.Dimension(i, dimension)] {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

// SearchDimension keeps records whose dimension contains query,
// case-insensitively. A blank query returns the view unchanged.
func SearchDimension(view RecordView, dimension, query string) RecordView {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return view
	}
	indices := make([]int, 0)
	for i := 0; i < view.Len(); i++ {
		if strings.Contains(strings.ToLower(view.Dimension(i, dimension)), q) {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
