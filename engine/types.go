package engine

import "github.com/Sharon-codes/UIDAI-Hackathon/schema"

// ============================================================================
// PULSE ENGINE TYPES — Aggregation, Ranking and Render-Ready Output
// ============================================================================
// Entry is the view-model row every chart and table is built from. In the
// state view an Entry is a synthetic rollup; in the district view it is a
// straight copy of one dataset record.
// ============================================================================

// AllStatesLabel is the selector value that means "no state filter".
const AllStatesLabel = "All States Overview"

// DefaultTopN is the ranking size used when none is configured.
const DefaultTopN = 10

// ============================================================================
// ENTRY — one row of the current view
// ============================================================================

// Entry is either a district record or a state-level rollup.
type Entry struct {
	Name            string  `json:"name"` // district name, or state name for rollups
	State           string  `json:"state"`
	AMIScore        float64 `json:"ami_score"`
	ERPScore        float64 `json:"erp_score"`
	ICMPScore       float64 `json:"icmp_score"`
	LastMileDensity float64 `json:"last_mile_density"`
	GhostFlag       bool    `json:"ghost_flag"`
	Count           int     `json:"count"` // contributing districts
	IsState         bool    `json:"isState"`
}

// Metric returns the raw value of a measure for this entry.
func (e Entry) Metric(key string) float64 {
	switch key {
	case schema.KeyAMI:
		return e.AMIScore
	case schema.KeyERP:
		return e.ERPScore
	case schema.KeyICMP:
		return e.ICMPScore
	case schema.KeyLastMile:
		return e.LastMileDensity
	case schema.KeyGhost:
		if e.GhostFlag {
			return 1
		}
	}
	return 0
}

// Record converts the entry back to the dataset record shape.
func (e Entry) Record() schema.Record {
	return schema.Record{
		State:           e.State,
		District:        e.Name,
		AMIScore:        e.AMIScore,
		ERPScore:        e.ERPScore,
		ICMPScore:       e.ICMPScore,
		LastMileDensity: e.LastMileDensity,
		GhostFlag:       e.GhostFlag,
	}
}

// entryFromRecord copies a district record into an Entry.
func entryFromRecord(r schema.Record) Entry {
	return Entry{
		Name:            r.District,
		State:           r.State,
		AMIScore:        r.AMIScore,
		ERPScore:        r.ERPScore,
		ICMPScore:       r.ICMPScore,
		LastMileDensity: r.LastMileDensity,
		GhostFlag:       r.GhostFlag,
		Count:           1,
	}
}

// ============================================================================
// VIEW STATE — explicit render context
// ============================================================================

// ViewState is the user-selected context a dashboard is rendered for.
// It is replaced wholesale on every user action.
type ViewState struct {
	StateFilter string `json:"state"`  // "" or AllStatesLabel → state rollups
	Search      string `json:"search"` // district substring, district view only
}

// IsStateView reports whether the view aggregates to state level.
func (s ViewState) IsStateView() bool {
	return isAllStates(s.StateFilter)
}

func isAllStates(filter string) bool {
	return filter == "" || filter == AllStatesLabel || filter == "All"
}

// ============================================================================
// OVERVIEW + RANKING
// ============================================================================

// Overview holds the headline statistics of a non-empty entry set.
// Averages are already on display scale and rounded to one decimal.
type Overview struct {
	Count   int     `json:"count"`
	AvgAMI  float64 `json:"avgAmi"`  // mean of ami×10
	AvgERP  float64 `json:"avgErp"`  // mean of erp×100
	AvgICMP float64 `json:"avgIcmp"` // mean of icmp×100
	Best    Entry   `json:"best"`
	Worst   Entry   `json:"worst"`
}

// Ranking is an ordered top or bottom slice for one metric.
type Ranking struct {
	ID      string  `json:"id"` // e.g. "top-ami"
	Metric  string  `json:"metric"`
	Order   string  `json:"order"` // "top" or "bottom"
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// Card is one overview tile.
type Card struct {
	Title   string `json:"title"`
	Value   string `json:"value"`
	Unit    string `json:"unit,omitempty"`
	Subtext string `json:"subtext"`
	Tone    string `json:"tone,omitempty"` // "good", "bad", ""
}

// ============================================================================
// DASHBOARD — render-ready output of Build
// ============================================================================

// Dashboard is everything one view paints.
type Dashboard struct {
	State   ViewState `json:"viewState"`
	IsState bool      `json:"isState"`
	Scope   string    `json:"scope"` // "States" or "Districts"
	Empty   bool      `json:"empty"`

	Entries  []Entry        `json:"entries"` // sorted by AMI descending
	Overview *Overview      `json:"overview,omitempty"`
	Cards    []Card         `json:"cards,omitempty"`
	Rankings []Ranking      `json:"rankings,omitempty"`
	Charts   []*ChartConfig `json:"charts,omitempty"`
	Table    *TableData     `json:"table,omitempty"`
}

// Chart returns the chart with the given ranking id, or nil.
func (d *Dashboard) Chart(id string) *ChartConfig {
	if d == nil {
		return nil
	}
	for _, c := range d.Charts {
		if c != nil && c.ID == id {
			return c
		}
	}
	return nil
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ID         string        `json:"id"`
	ChartType  string        `json:"chartType"` // "bar", "radar"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Horizontal bool          `json:"horizontal"`
	Max        float64       `json:"max,omitempty"` // scale ceiling (10 or 100)
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "percent", "status"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals or aggregations for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
