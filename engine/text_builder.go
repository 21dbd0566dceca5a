package engine

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// ============================================================================
// TEXT BUILDER — Overview cards
// ============================================================================

// BuildCards produces the five overview tiles for an Overview.
func BuildCards(ov Overview, isState bool) []Card {
	bestLabel, worstLabel := "Top District", "Needs Attention"
	if isState {
		bestLabel, worstLabel = "Top Performing State", "Lowest Performing State"
	}

	return []Card{
		{
			Title:   "Average AMI Score",
			Value:   fmt.Sprintf("%.1f", math.Min(ov.AvgAMI, 10)),
			Unit:    "/10",
			Subtext: fmt.Sprintf("Across %s %s", humanize.Comma(int64(ov.Count)), scopeLabel(isState)),
		},
		{
			Title:   "Avg Compliance (ERP)",
			Value:   fmt.Sprintf("%.1f%%", ov.AvgERP),
			Subtext: "Biometric Update Rate",
		},
		{
			Title:   "Avg Migration (ICMP)",
			Value:   fmt.Sprintf("%.1f%%", ov.AvgICMP),
			Subtext: "Demographic Churn",
		},
		{
			Title:   bestLabel,
			Value:   ov.Best.Name,
			Subtext: fmt.Sprintf("AMI: %.1f", ov.Best.AMIScore*10),
			Tone:    "good",
		},
		{
			Title:   worstLabel,
			Value:   ov.Worst.Name,
			Subtext: fmt.Sprintf("AMI: %.1f", ov.Worst.AMIScore*10),
			Tone:    "bad",
		},
	}
}
