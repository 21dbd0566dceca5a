package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Sharon-codes/UIDAI-Hackathon/engine"
)

// ErrUnsupportedChart is returned for chart types with no PNG renderer.
var ErrUnsupportedChart = errors.New("report: unsupported chart type")

// ErrEmptyChart is returned when a chart has no points to draw.
var ErrEmptyChart = errors.New("report: chart has no data")

// RenderChartPNG draws a ranking bar chart as a PNG. The first point is
// drawn at the top, matching the on-page ranking order.
func RenderChartPNG(w io.Writer, chart *engine.ChartConfig) error {
	if chart == nil || len(chart.Series) == 0 || len(chart.Series[0].Data) == 0 {
		return ErrEmptyChart
	}
	if chart.ChartType != "bar" {
		return fmt.Errorf("%w: %s", ErrUnsupportedChart, chart.ChartType)
	}

	series := chart.Series[0]
	n := len(series.Data)
	values := make(plotter.Values, n)
	labels := make([]string, n)
	for i, p := range series.Data {
		values[n-1-i] = p.Value
		labels[n-1-i] = p.Label
	}

	p := plot.New()
	p.Title.Text = chart.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = chart.XAxis
	p.X.Min = 0
	if chart.Max > 0 {
		p.X.Max = chart.Max
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return fmt.Errorf("building bar chart: %w", err)
	}
	bars.Horizontal = true
	bars.Color = parseHex(series.Color)
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	if chart.ShowGrid {
		p.Add(plotter.NewGrid())
	}
	p.NominalY(labels...)

	height := vg.Length(n)*vg.Points(22) + vg.Points(90)
	wt, err := p.WriterTo(8*vg.Inch, height, "png")
	if err != nil {
		return fmt.Errorf("encoding chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}

// parseHex reads "#rrggbb"; anything else falls back to the accent cyan.
func parseHex(s string) color.RGBA {
	fallback := color.RGBA{R: 0x00, G: 0xf2, B: 0xff, A: 0xff}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
