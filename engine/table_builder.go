package engine

import (
	"fmt"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// ============================================================================
// TABLE BUILDER — Detail table rows from the display-sorted entries
// ============================================================================

// Maturity status bands on AMI (display scale 0–10).
const (
	StatusHighMaturity = "High Maturity"
	StatusDeveloping   = "Developing"
	StatusCritical     = "Critical Attention"
)

// MaturityStatus classifies a display-scale AMI value.
func MaturityStatus(ami float64) string {
	switch {
	case ami >= 7:
		return StatusHighMaturity
	case ami >= 4:
		return StatusDeveloping
	default:
		return StatusCritical
	}
}

// ScoreColor returns the badge colour for a display-scale AMI value.
func ScoreColor(ami float64) string {
	switch {
	case ami >= 7:
		return "#4ade80"
	case ami >= 4:
		return "#facc15"
	default:
		return "#ff4b4b"
	}
}

// IntegrityLabel renders the ghost flag for the detail table.
func IntegrityLabel(ghost bool) string {
	if ghost {
		return "Flagged"
	}
	return "Secure"
}

// BuildTable produces the detail table. Entries must already be sorted for
// display; rank is the 1-based row position.
func BuildTable(entries []Entry, isState bool) *TableData {
	columns := []Column{
		{Key: "rank", Label: "Rank", Type: "number", Align: "left"},
	}
	title := "District Performance Details"
	if isState {
		title = "All State Performance Rankings"
		columns = append(columns,
			Column{Key: schema.KeyState, Label: "State / UT", Type: "text", Align: "left"},
			Column{Key: schema.KeyAMI, Label: "Avg AMI Score", Type: "number", Align: "right"},
			Column{Key: schema.KeyERP, Label: "Avg ERP", Type: "percent", Align: "right"},
			Column{Key: schema.KeyICMP, Label: "Avg ICMP", Type: "percent", Align: "right"},
			Column{Key: "status", Label: "Status", Type: "status", Align: "left"},
		)
	} else {
		columns = append(columns,
			Column{Key: schema.KeyDistrict, Label: "District", Type: "text", Align: "left"},
			Column{Key: schema.KeyAMI, Label: "AMI Score", Type: "number", Align: "right"},
			Column{Key: schema.KeyERP, Label: "ERP", Type: "percent", Align: "right"},
			Column{Key: schema.KeyICMP, Label: "ICMP", Type: "percent", Align: "right"},
			Column{Key: schema.KeyLastMile, Label: "Inclusion", Type: "percent", Align: "right"},
			Column{Key: schema.KeyGhost, Label: "Integrity", Type: "status", Align: "left"},
		)
	}

	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		ami := e.AMIScore * 10
		row := []string{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%.1f", ami),
			fmt.Sprintf("%.1f%%", e.ERPScore*100),
			fmt.Sprintf("%.1f%%", e.ICMPScore*100),
		}
		if isState {
			row = append(row, MaturityStatus(RoundTo1(ami)))
		} else {
			row = append(row,
				fmt.Sprintf("%.1f%%", schema.InclusionPercent(e.LastMileDensity)),
				IntegrityLabel(e.GhostFlag),
			)
		}
		rows = append(rows, row)
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("%d %s", len(entries), scopeLabel(isState)),
			Values: map[string]string{
				"rank": fmt.Sprintf("%d", len(entries)),
			},
		},
	}
}
