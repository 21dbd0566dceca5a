package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// ============================================================================
// TEST DATA
// ============================================================================

func sampleRecords() []schema.Record {
	return []schema.Record{
		{State: "Kerala", District: "Kochi", AMIScore: 0.82, ERPScore: 0.75, ICMPScore: 0.55, LastMileDensity: 0.03},
		{State: "Kerala", District: "Thrissur", AMIScore: 0.64, ERPScore: 0.61, ICMPScore: 0.32, LastMileDensity: 0.01},
		{State: "Bihar", District: "Patna", AMIScore: 0.31, ERPScore: 0.15, ICMPScore: 0.05, LastMileDensity: 0.2, GhostFlag: true},
		{State: "Bihar", District: "Gaya", AMIScore: 0.27, ERPScore: 0.22, ICMPScore: 0.08, LastMileDensity: 0.12},
		{State: "Bihar", District: "Nalanda", AMIScore: 0.45, ERPScore: 0.38, ICMPScore: 0.12, LastMileDensity: 0.07},
		{State: "Gujarat", District: "Surat", AMIScore: 0.71, ERPScore: 0.58, ICMPScore: 0.78, LastMileDensity: 0.02},
		{State: "DROP", District: "Garbled", AMIScore: 0.99, ERPScore: 0.99, ICMPScore: 0.99},
		{State: "UNKNOWN", District: "Nowhere", AMIScore: 0.01, ERPScore: 0.01, ICMPScore: 0.01},
	}
}

func sampleView() RecordView {
	return NewRecordView(sampleRecords())
}

// ============================================================================
// AGGREGATION
// ============================================================================

func TestAggregateStateMeans(t *testing.T) {
	entries, isState := Aggregate(sampleView(), "")
	if !isState {
		t.Fatal("empty filter should aggregate to states")
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 states, got %d: %v", len(entries), entryNames(entries))
	}

	bihar := findEntry(t, entries, "Bihar")
	assertFloat(t, bihar.AMIScore, (0.31+0.27+0.45)/3, "Bihar ami mean")
	assertFloat(t, bihar.ERPScore, (0.15+0.22+0.38)/3, "Bihar erp mean")
	assertFloat(t, bihar.ICMPScore, (0.05+0.08+0.12)/3, "Bihar icmp mean")
	if bihar.Count != 3 || !bihar.IsState || bihar.State != "Bihar" {
		t.Errorf("unexpected Bihar rollup: %+v", bihar)
	}
}

func TestAggregateAllLabels(t *testing.T) {
	for _, filter := range []string{"", "All", AllStatesLabel} {
		if _, isState := Aggregate(sampleView(), filter); !isState {
			t.Errorf("filter %q should select the state view", filter)
		}
	}
}

func TestAggregateExcludesSentinels(t *testing.T) {
	records := sampleRecords()
	for i := 0; i < 20; i++ {
		records = append(records, schema.Record{State: "DROP", District: "x", AMIScore: 1})
	}
	entries, _ := Aggregate(NewRecordView(records), "")
	for _, e := range entries {
		if schema.IsSentinelState(e.Name) || schema.IsSentinelState(e.State) {
			t.Errorf("sentinel state %q leaked into rollup", e.Name)
		}
	}
}

func TestAggregateExtraExclusions(t *testing.T) {
	entries, _ := Aggregate(sampleView(), "", WithExcludedStates("Gujarat"))
	if len(entries) != 2 {
		t.Errorf("expected Gujarat excluded, got %v", entryNames(entries))
	}
}

func TestAggregateDistrictSubsetUnchanged(t *testing.T) {
	entries, isState := Aggregate(sampleView(), "Kerala")
	if isState {
		t.Fatal("named state should return districts")
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 Kerala districts, got %d", len(entries))
	}
	if entries[0].Record() != sampleRecords()[0] {
		t.Errorf("district record altered: %+v", entries[0])
	}
	if entries[0].IsState {
		t.Error("district entries must not be marked isState")
	}

	if got, _ := Aggregate(sampleView(), "kerala"); len(got) != 0 {
		t.Error("state match should be exact")
	}
}

// ============================================================================
// RANKING
// ============================================================================

func TestTopBottomOrdering(t *testing.T) {
	entries, _ := Aggregate(sampleView(), "Bihar")

	top := Top(entries, schema.KeyAMI, 2)
	if len(top) != 2 || top[0].Name != "Nalanda" || top[1].Name != "Patna" {
		t.Errorf("top 2 by AMI = %v", entryNames(top))
	}
	bottom := Bottom(entries, schema.KeyAMI, 2)
	if len(bottom) != 2 || bottom[0].Name != "Gaya" || bottom[1].Name != "Patna" {
		t.Errorf("bottom 2 by AMI = %v", entryNames(bottom))
	}

	for _, metric := range []string{schema.KeyAMI, schema.KeyERP, schema.KeyICMP} {
		top := Top(entries, metric, 10)
		for i := 1; i < len(top); i++ {
			if top[i-1].Metric(metric) < top[i].Metric(metric) {
				t.Errorf("%s top not descending at %d", metric, i)
			}
		}
		bottom := Bottom(entries, metric, 10)
		for i := 1; i < len(bottom); i++ {
			if bottom[i-1].Metric(metric) > bottom[i].Metric(metric) {
				t.Errorf("%s bottom not ascending at %d", metric, i)
			}
		}
	}
}

func TestTopBottomReversedWhenSmall(t *testing.T) {
	// Ties included on purpose: the order must still mirror.
	entries := []Entry{
		{Name: "A", State: "S", AMIScore: 0.5},
		{Name: "B", State: "S", AMIScore: 0.7},
		{Name: "C", State: "S", AMIScore: 0.5},
		{Name: "A", State: "T", AMIScore: 0.5},
		{Name: "D", State: "S", AMIScore: 0.1},
	}
	top := Top(entries, schema.KeyAMI, 10)
	bottom := Bottom(entries, schema.KeyAMI, 10)
	if len(top) != len(entries) || len(bottom) != len(entries) {
		t.Fatalf("both rankings should hold every entry, got %d and %d", len(top), len(bottom))
	}
	for i := range top {
		if top[i] != bottom[len(bottom)-1-i] {
			t.Errorf("position %d: top %v is not mirrored by bottom %v", i, top[i], bottom[len(bottom)-1-i])
		}
	}
}

func TestTopDeterministic(t *testing.T) {
	entries, _ := Aggregate(sampleView(), "")
	first := entryNames(Top(entries, schema.KeyERP, 10))
	for i := 0; i < 5; i++ {
		if got := entryNames(Top(entries, schema.KeyERP, 10)); strings.Join(got, ",") != strings.Join(first, ",") {
			t.Fatalf("ranking changed between runs: %v vs %v", first, got)
		}
	}
}

func TestTopDefaultsToTen(t *testing.T) {
	entries := make([]Entry, 15)
	for i := range entries {
		entries[i] = Entry{Name: string(rune('A' + i)), AMIScore: float64(i) / 20}
	}
	if got := len(Top(entries, schema.KeyAMI, 0)); got != DefaultTopN {
		t.Errorf("n=0 should use %d, got %d", DefaultTopN, got)
	}
}

// ============================================================================
// OVERVIEW
// ============================================================================

func TestComputeOverview(t *testing.T) {
	entries, _ := Aggregate(sampleView(), "Kerala")
	ov, ok := ComputeOverview(entries)
	if !ok {
		t.Fatal("non-empty set should produce an overview")
	}
	assertFloat(t, ov.AvgAMI, 7.3, "avg AMI")
	assertFloat(t, ov.AvgERP, 68.0, "avg ERP")
	assertFloat(t, ov.AvgICMP, 43.5, "avg ICMP")
	if ov.Best.Name != "Kochi" || ov.Worst.Name != "Thrissur" {
		t.Errorf("best/worst = %s/%s", ov.Best.Name, ov.Worst.Name)
	}
}

func TestComputeOverviewTiesFirstOccurrence(t *testing.T) {
	entries := []Entry{
		{Name: "First", AMIScore: 0.5},
		{Name: "Second", AMIScore: 0.5},
	}
	ov, _ := ComputeOverview(entries)
	if ov.Best.Name != "First" || ov.Worst.Name != "First" {
		t.Errorf("ties should resolve to first occurrence, got %s/%s", ov.Best.Name, ov.Worst.Name)
	}
}

func TestComputeOverviewEmpty(t *testing.T) {
	if _, ok := ComputeOverview(nil); ok {
		t.Error("empty set should report no overview")
	}
}

func TestSortForDisplay(t *testing.T) {
	entries, _ := Aggregate(sampleView(), "Bihar")
	sorted := SortForDisplay(entries)
	want := []string{"Nalanda", "Patna", "Gaya"}
	if strings.Join(entryNames(sorted), ",") != strings.Join(want, ",") {
		t.Errorf("display order = %v, want %v", entryNames(sorted), want)
	}
	if entries[0].Name != "Patna" {
		t.Error("SortForDisplay must not reorder its input")
	}
}

// ============================================================================
// LOOKUPS + FILTERS
// ============================================================================

func TestStatesAndDistricts(t *testing.T) {
	states := States(sampleView())
	if strings.Join(states, ",") != "Bihar,Gujarat,Kerala" {
		t.Errorf("States = %v", states)
	}
	districts := Districts(sampleView(), "Bihar")
	if strings.Join(districts, ",") != "Gaya,Nalanda,Patna" {
		t.Errorf("Districts = %v", districts)
	}
}

func TestFindDistrict(t *testing.T) {
	rec, ok := FindDistrict(sampleView(), "Bihar", "Patna")
	if !ok || !rec.GhostFlag || rec.ERPScore != 0.15 {
		t.Errorf("FindDistrict = %+v, %v", rec, ok)
	}
	if _, ok := FindDistrict(sampleView(), "Kerala", "Patna"); ok {
		t.Error("district must match within its state")
	}
}

func TestSearchDistricts(t *testing.T) {
	got := SearchDistricts(sampleView(), "", "NA", 0)
	names := make([]string, len(got))
	for i, r := range got {
		names[i] = r.District
	}
	if strings.Join(names, ",") != "Patna,Nalanda" {
		t.Errorf("search = %v", names)
	}
	if got := SearchDistricts(sampleView(), "Kerala", "", 1); len(got) != 1 {
		t.Errorf("limit not applied: %d", len(got))
	}
}

func TestApplyFiltersAndAcrossDimensions(t *testing.T) {
	view := ApplyFilters(sampleView(), Filters{Dimensions: map[string][]string{
		schema.KeyState:    {"Bihar", "Kerala"},
		schema.KeyDistrict: {"Kochi", "Gaya", "Surat"},
	}})
	if view.Len() != 2 {
		t.Errorf("expected Kochi and Gaya, got %d records", view.Len())
	}
	if ApplyFilters(sampleView(), Filters{}).Len() != len(sampleRecords()) {
		t.Error("empty filter should pass everything")
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func entryNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func findEntry(t *testing.T, entries []Entry, name string) Entry {
	t.Helper()
	for _, e := range entries {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("entry %q not found in %v", name, entryNames(entries))
	return Entry{}
}

func assertFloat(t *testing.T, got, want float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}
