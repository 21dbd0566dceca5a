package engine

import (
	"fmt"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// ============================================================================
// CHART BUILDER — Produces ChartConfig from Rankings and single records
// ============================================================================
// Builders only format values they are handed. Scores are never recomputed
// here: a point value is the raw metric times the chart multiplier.
// ============================================================================

// rankingSpec describes one of the six comparison charts.
type rankingSpec struct {
	ID         string
	Metric     string
	Order      string
	Title      string // %[1]d is the ranking size, %[2]s "States" or "Districts"
	Axis       string
	Color      string
	Multiplier float64
}

// rankingSpecs is the fixed chart grid, in display order.
var rankingSpecs = []rankingSpec{
	{"top-ami", schema.KeyAMI, "top", "Top %[1]d %[2]s by AMI", "AMI Score (0-10)", "#00f2ff", 10},
	{"bottom-ami", schema.KeyAMI, "bottom", "Bottom %[1]d %[2]s by AMI", "AMI Score (0-10)", "#ff4b4b", 10},
	{"top-erp", schema.KeyERP, "top", "Best Compliance (ERP) %[2]s", "Compliance %", "#4ade80", 100},
	{"bottom-erp", schema.KeyERP, "bottom", "Worst Compliance (ERP) %[2]s", "Compliance %", "#ff8800", 100},
	{"top-icmp", schema.KeyICMP, "top", "Highest Migration (ICMP) %[2]s", "Migration Velocity %", "#f59e0b", 100},
	{"bottom-icmp", schema.KeyICMP, "bottom", "Lowest Migration (ICMP) %[2]s", "Migration Velocity %", "#94a3b8", 100},
}

// RankingIDs lists the chart ids in display order.
func RankingIDs() []string {
	ids := make([]string, len(rankingSpecs))
	for i, s := range rankingSpecs {
		ids[i] = s.ID
	}
	return ids
}

func lookupRankingSpec(id string) (rankingSpec, bool) {
	for _, s := range rankingSpecs {
		if s.ID == id {
			return s, true
		}
	}
	return rankingSpec{}, false
}

// BuildRankings computes all six top/bottom rankings for a set of entries.
func BuildRankings(entries []Entry, isState bool, n int) []Ranking {
	if n <= 0 {
		n = DefaultTopN
	}
	scope := scopeLabel(isState)
	rankings := make([]Ranking, 0, len(rankingSpecs))
	for _, s := range rankingSpecs {
		var ranked []Entry
		if s.Order == "top" {
			ranked = Top(entries, s.Metric, n)
		} else {
			ranked = Bottom(entries, s.Metric, n)
		}
		rankings = append(rankings, Ranking{
			ID:      s.ID,
			Metric:  s.Metric,
			Order:   s.Order,
			Title:   fmt.Sprintf(s.Title, n, scope),
			Entries: ranked,
		})
	}
	return rankings
}

// BuildRankingChart renders a ranking as a horizontal bar chart.
// Returns nil for an unknown ranking id or an empty ranking.
func BuildRankingChart(r Ranking) *ChartConfig {
	s, ok := lookupRankingSpec(r.ID)
	if !ok || len(r.Entries) == 0 {
		return nil
	}

	points := make([]ChartPoint, 0, len(r.Entries))
	for _, e := range r.Entries {
		points = append(points, ChartPoint{
			Label: e.Name,
			Value: RoundTo1(e.Metric(s.Metric) * s.Multiplier),
		})
	}

	return &ChartConfig{
		ID:         r.ID,
		ChartType:  "bar",
		Title:      r.Title,
		XAxis:      s.Axis,
		Horizontal: true,
		Max:        s.Multiplier,
		Series: []ChartSeries{{
			Name:  s.Axis,
			Data:  points,
			Color: s.Color,
		}},
		Colors:   []string{s.Color},
		ShowGrid: true,
	}
}

// Radar axis labels, in plotting order.
var radarAxes = []string{
	"ERP (Exclusion Risk)",
	"ICMP (Migration)",
	"Integrity Shield",
	"Last Mile (Inclusion)",
	"AMI (Maturity)",
}

// BuildRadar renders the five-axis health profile of one district.
// Every axis is on a 0–100 scale.
func BuildRadar(r schema.Record) *ChartConfig {
	integrity := 95.0
	if r.GhostFlag {
		integrity = 15
	}
	values := []float64{
		r.ERPScore * 100,
		r.ICMPScore * 100,
		integrity,
		schema.InclusionPercent(r.LastMileDensity),
		r.AMIScore * 100,
	}

	points := make([]ChartPoint, len(values))
	for i, v := range values {
		points[i] = ChartPoint{Label: radarAxes[i], Value: RoundTo1(v)}
	}

	return &ChartConfig{
		ID:        "radar",
		ChartType: "radar",
		Title:     fmt.Sprintf("%s, %s", r.District, r.State),
		Max:       100,
		Series: []ChartSeries{{
			Name:  r.District,
			Data:  points,
			Color: "#00f2ff",
		}},
		Colors: []string{"#00f2ff"},
	}
}

func scopeLabel(isState bool) string {
	if isState {
		return "States"
	}
	return "Districts"
}
