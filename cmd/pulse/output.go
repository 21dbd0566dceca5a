package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Sharon-codes/UIDAI-Hackathon/engine"
)

// now is swapped in tests.
var now = time.Now

// withOutput runs fn against path, or stdout when path is empty.
func withOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v interface{}, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// ============================================================================
// CSV OUTPUT — detail table, ready for Sheets
// ============================================================================

func writeTableCSV(w io.Writer, table *engine.TableData) error {
	cw := csv.NewWriter(w)
	if table == nil {
		cw.Write([]string{"Result", "No data"})
		cw.Flush()
		return cw.Error()
	}

	headers := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		headers[i] = c.Label
	}
	cw.Write(headers)
	for _, row := range table.Rows {
		cw.Write(row)
	}
	cw.Flush()
	return cw.Error()
}

// ============================================================================
// TEXT OUTPUT
// ============================================================================

func writeDashboardText(w io.Writer, dash *engine.Dashboard) {
	heading := engine.AllStatesLabel
	if !dash.State.IsStateView() {
		heading = dash.State.StateFilter
	}
	fmt.Fprintf(w, "%s\n%s\n", heading, strings.Repeat("=", len(heading)))

	if dash.Empty {
		fmt.Fprintln(w, "No data available for this view.")
		return
	}

	for _, c := range dash.Cards {
		fmt.Fprintf(w, "%-26s %s%s  (%s)\n", c.Title+":", c.Value, c.Unit, c.Subtext)
	}

	for _, chart := range dash.Charts {
		fmt.Fprintf(w, "\n%s\n", chart.Title)
		for _, s := range chart.Series {
			for i, p := range s.Data {
				fmt.Fprintf(w, "  %-5s %-28s %s\n", humanize.Ordinal(i+1), p.Label, fmtNum(p.Value))
			}
		}
	}

	if dash.Table != nil {
		fmt.Fprintf(w, "\n%s (%s)\n", dash.Table.Title, humanize.Comma(int64(len(dash.Table.Rows))))
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 1 decimal
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
