package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Sharon-codes/UIDAI-Hackathon/engine"
	"github.com/Sharon-codes/UIDAI-Hackathon/intel"
)

// Sheet names of the exported workbook.
const (
	SheetRankings = "Rankings"
	SheetOverview = "Overview"
	SheetCharts   = "Charts"
	SheetBriefs   = "Briefs"
)

// sheetWriter records the first cell error so the export reads linearly.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (s *sheetWriter) set(sheet string, col, row int, v interface{}) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetCellValue(sheet, cell, v)
}

func (s *sheetWriter) row(sheet string, row int, values ...interface{}) {
	for i, v := range values {
		s.set(sheet, i+1, row, v)
	}
}

func (s *sheetWriter) sheet(name string) {
	if s.err != nil {
		return
	}
	_, s.err = s.f.NewSheet(name)
}

// WriteWorkbook exports a dashboard (and optional district briefs) as xlsx.
// An empty dashboard still produces a workbook with headers only.
func WriteWorkbook(w io.Writer, dash *engine.Dashboard, briefs []intel.Brief) error {
	f := excelize.NewFile()
	defer f.Close()

	s := &sheetWriter{f: f}
	s.err = f.SetSheetName("Sheet1", SheetRankings)

	// Rankings: the detail table as shown on the page.
	if dash.Table != nil {
		for i, c := range dash.Table.Columns {
			s.set(SheetRankings, i+1, 1, c.Label)
		}
		for r, row := range dash.Table.Rows {
			for c, v := range row {
				s.set(SheetRankings, c+1, r+2, v)
			}
		}
	}
	if s.err == nil {
		s.err = f.SetColWidth(SheetRankings, "A", "G", 20)
	}

	// Overview: cards plus raw averages.
	s.sheet(SheetOverview)
	s.row(SheetOverview, 1, "Metric", "Value", "Detail")
	for i, c := range dash.Cards {
		s.row(SheetOverview, i+2, c.Title, c.Value+c.Unit, c.Subtext)
	}
	if dash.Overview != nil {
		base := len(dash.Cards) + 3
		s.row(SheetOverview, base, "Entities", dash.Overview.Count, dash.Scope)
		s.row(SheetOverview, base+1, "Avg AMI (0-10)", dash.Overview.AvgAMI)
		s.row(SheetOverview, base+2, "Avg ERP (%)", dash.Overview.AvgERP)
		s.row(SheetOverview, base+3, "Avg ICMP (%)", dash.Overview.AvgICMP)
	}

	// Charts: one block per ranking chart.
	s.sheet(SheetCharts)
	row := 1
	for _, chart := range dash.Charts {
		s.row(SheetCharts, row, chart.Title, chart.XAxis)
		row++
		for _, series := range chart.Series {
			for _, p := range series.Data {
				s.row(SheetCharts, row, p.Label, p.Value)
				row++
			}
		}
		row++
	}

	if len(briefs) > 0 {
		s.sheet(SheetBriefs)
		s.row(SheetBriefs, 1, "District", "State", "Mode", "Risk", "Score", "Compliance", "Priority",
			"Migration", "Inclusion", "Integrity", "Region")
		for i, b := range briefs {
			s.row(SheetBriefs, i+2,
				b.Metrics.District, b.Metrics.State, b.ModeName,
				string(b.Risk.Level), b.Risk.Score,
				b.Compliance.Severity, b.Compliance.Priority,
				b.Migration.Pattern, b.Inclusion.Band,
				b.Integrity.Status, string(b.Regional))
		}
	}

	if s.err != nil {
		return fmt.Errorf("building workbook: %w", s.err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
