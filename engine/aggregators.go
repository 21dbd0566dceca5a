package engine

import (
	"math"
	"sort"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// ============================================================================
// AGGREGATORS — State Rollups, Rankings and Overview via RecordView
// ============================================================================
// Grouping produces SubViews (index lists into parent view). Rollups are
// recomputed on every call; nothing here is cached.
// ============================================================================

// Group is one bucket of records sharing a dimension value.
type Group struct {
	Key  string
	View RecordView
}

// Aggregate turns the district view into the entries of one dashboard view.
//
// An empty or "All" filter yields one synthetic Entry per state holding the
// unweighted mean of ami/erp/icmp across its districts, with sentinel states
// discarded. Any other filter yields that state's district records unchanged.
func Aggregate(view RecordView, stateFilter string, opts ...Option) ([]Entry, bool) {
	cfg := applyOptions(opts)

	if !isAllStates(stateFilter) {
		subset := ApplyFilters(view, StateFilter(stateFilter))
		entries := make([]Entry, 0, subset.Len())
		for i := 0; i < subset.Len(); i++ {
			entries = append(entries, entryFromRecord(RecordAt(subset, i)))
		}
		return entries, false
	}

	groups := groupBySingle(view, schema.KeyState)
	excluded := toSet(cfg.ExcludedStates)

	entries := make([]Entry, 0, len(groups))
	for _, g := range groups {
		if excluded[g.Key] {
			continue
		}
		entries = append(entries, Entry{
			Name:      g.Key,
			State:     g.Key,
			AMIScore:  AvgMeasure(g.View, schema.KeyAMI),
			ERPScore:  AvgMeasure(g.View, schema.KeyERP),
			ICMPScore: AvgMeasure(g.View, schema.KeyICMP),
			Count:     g.View.Len(),
			IsState:   true,
		})
	}
	return entries, true
}

// ============================================================================
// GROUPING
// ============================================================================

// groupBySingle buckets records by one dimension, in first-seen order.
func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:  key,
			View: newSubView(view, grouped[key]),
		})
	}
	return groups
}

// ============================================================================
// AGGREGATION
// ============================================================================

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// AvgMeasure computes average of a named measure.
func AvgMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	return SumMeasure(view, measure) / float64(n)
}

// MaxMeasure returns the largest value of a named measure.
func MaxMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := math.Inf(-1)
	for i := 0; i < n; i++ {
		if v := view.Measure(i, measure); v > m {
			m = v
		}
	}
	return m
}

// MinMeasure returns the smallest value of a named measure.
func MinMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := math.Inf(1)
	for i := 0; i < n; i++ {
		if v := view.Measure(i, measure); v < m {
			m = v
		}
	}
	return m
}

// ============================================================================
// RANKING
// ============================================================================

// Top returns the n entries with the largest metric value, descending.
// Ties break on name, then state, then input position, so the order is a
// deterministic total order for identical input. n <= 0 means DefaultTopN.
func Top(entries []Entry, metric string, n int) []Entry {
	return rank(entries, metric, n, false)
}

// Bottom returns the n entries with the smallest metric value, ascending.
// Its comparator is the exact reverse of Top's, so for len(entries) <= n
// Bottom is Top reversed.
func Bottom(entries []Entry, metric string, n int) []Entry {
	return rank(entries, metric, n, true)
}

func rank(entries []Entry, metric string, n int, ascending bool) []Entry {
	if n <= 0 {
		n = DefaultTopN
	}
	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		if ascending {
			return topOrder(entries, idx[b], idx[a], metric)
		}
		return topOrder(entries, idx[a], idx[b], metric)
	})
	if len(idx) > n {
		idx = idx[:n]
	}
	out := make([]Entry, len(idx))
	for i, j := range idx {
		out[i] = entries[j]
	}
	return out
}

// topOrder reports whether entry i ranks before entry j in a Top listing.
func topOrder(entries []Entry, i, j int, metric string) bool {
	vi, vj := entries[i].Metric(metric), entries[j].Metric(metric)
	if vi != vj {
		return vi > vj
	}
	if entries[i].Name != entries[j].Name {
		return entries[i].Name < entries[j].Name
	}
	if entries[i].State != entries[j].State {
		return entries[i].State < entries[j].State
	}
	return i < j
}

// ============================================================================
// OVERVIEW + DISPLAY ORDER
// ============================================================================

// ComputeOverview derives the headline statistics. It returns false for an
// empty set so callers can skip rendering instead of failing.
func ComputeOverview(entries []Entry) (Overview, bool) {
	if len(entries) == 0 {
		return Overview{}, false
	}

	var ami, erp, icmp float64
	best, worst := entries[0], entries[0]
	for _, e := range entries {
		ami += e.AMIScore
		erp += e.ERPScore
		icmp += e.ICMPScore
		if e.AMIScore > best.AMIScore {
			best = e
		}
		if e.AMIScore < worst.AMIScore {
			worst = e
		}
	}

	n := float64(len(entries))
	return Overview{
		Count:   len(entries),
		AvgAMI:  RoundTo1(ami * 10 / n),
		AvgERP:  RoundTo1(erp * 100 / n),
		AvgICMP: RoundTo1(icmp * 100 / n),
		Best:    best,
		Worst:   worst,
	}, true
}

// SortForDisplay orders entries by AMI descending for the detail table.
// Equal scores keep their input order.
func SortForDisplay(entries []Entry) []Entry {
	out := append([]Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AMIScore > out[j].AMIScore })
	return out
}

// ============================================================================
// LOOKUPS
// ============================================================================

// States returns the distinct selectable states, sorted, sentinels removed.
func States(view RecordView) []string {
	states := UniqueValues(ExcludeValues(view, schema.KeyState, schema.StateDrop, schema.StateUnknown), schema.KeyState)
	sort.Strings(states)
	return states
}

// Districts returns the sorted district names recorded for a state.
func Districts(view RecordView, state string) []string {
	names := UniqueValues(ApplyFilters(view, StateFilter(state)), schema.KeyDistrict)
	sort.Strings(names)
	return names
}

// FindDistrict returns the first record matching state and district exactly.
func FindDistrict(view RecordView, state, district string) (schema.Record, bool) {
	subset := ApplyFilters(view, Filters{Dimensions: map[string][]string{
		schema.KeyState:    {state},
		schema.KeyDistrict: {district},
	}})
	if subset.Len() == 0 {
		return schema.Record{}, false
	}
	return RecordAt(subset, 0), true
}

// UniqueValues returns distinct non-empty values for a dimension across a view.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// RoundTo1 rounds to 1 decimal place.
func RoundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
