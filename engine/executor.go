package engine

import (
	"log"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// ============================================================================
// EXECUTOR — View pipeline
// ============================================================================
// Entry point: Build(view, state, opts...)
//
// Pipeline:
//   1. Aggregate to state rollups or select one state's districts
//   2. (District view) apply the search box
//   3. Sort for display
//   4. Overview → cards, rankings → charts, detail table
//   5. Return Dashboard
//
// The render context is passed in explicitly; nothing here reads globals.
// Zero data copy until entries are materialised in step 1.
// ============================================================================

// SearchLimit caps the district explorer result list.
const SearchLimit = 50

// Build runs the aggregation pipeline for one view and returns a
// render-ready Dashboard. An empty result short-circuits with Empty set and
// no overview, rankings or charts.
//
// Options:
//   - WithTopN(n) — ranking size (default 10)
//   - WithExcludedStates(states...) — extra states hidden from rollups
func Build(view RecordView, state ViewState, opts ...Option) *Dashboard {
	cfg := applyOptions(opts)

	entries, isState := Aggregate(view, state.StateFilter, opts...)
	if !isState && state.Search != "" {
		entries = searchEntries(entries, state.Search)
	}

	dash := &Dashboard{
		State:   state,
		IsState: isState,
		Scope:   scopeLabel(isState),
		Entries: SortForDisplay(entries),
	}

	overview, ok := ComputeOverview(entries)
	if !ok {
		dash.Empty = true
		dash.Entries = []Entry{}
		dash.Table = BuildTable(nil, isState)
		log.Printf("📊 Pulse: no records for view %q, skipping overview", state.StateFilter)
		return dash
	}

	log.Printf("📊 Pulse: %d %s in view (from %d records)", len(entries), dash.Scope, view.Len())

	dash.Overview = &overview
	dash.Cards = BuildCards(overview, isState)
	dash.Rankings = BuildRankings(entries, isState, cfg.TopN)
	for _, r := range dash.Rankings {
		if chart := BuildRankingChart(r); chart != nil {
			dash.Charts = append(dash.Charts, chart)
		}
	}
	dash.Table = BuildTable(dash.Entries, isState)
	return dash
}

// SearchDistricts backs the district explorer: optional exact state filter,
// case-insensitive district substring, at most limit results (limit <= 0
// means SearchLimit). Sentinel-state records are still searchable.
func SearchDistricts(view RecordView, state, query string, limit int) []schema.Record {
	if limit <= 0 {
		limit = SearchLimit
	}
	if state != "" {
		view = ApplyFilters(view, StateFilter(state))
	}
	view = SearchDimension(view, schema.KeyDistrict, query)

	n := view.Len()
	if n > limit {
		n = limit
	}
	out := make([]schema.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, RecordAt(view, i))
	}
	return out
}

// searchEntries keeps district entries whose name contains query.
func searchEntries(entries []Entry, query string) []Entry {
	records := make([]schema.Record, len(entries))
	for i, e := range entries {
		records[i] = e.Record()
	}
	matched := SearchDimension(NewRecordView(records), schema.KeyDistrict, query)
	out := make([]Entry, 0, matched.Len())
	for i := 0; i < matched.Len(); i++ {
		out = append(out, entryFromRecord(RecordAt(matched, i)))
	}
	return out
}
