// Package export renders the current summary into files a user can keep:
// PNG charts and an XLSX workbook.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Sameer280406/Projects/internal/dashboard"
)

// ErrEmptyChart is returned when there is nothing non-zero to draw.
var ErrEmptyChart = errors.New("chart has no non-zero values")

// RenderBarPNG draws the averages chart.
func RenderBarPNG(w io.Writer, data *dashboard.BarChartData) error {
	if data == nil || len(data.Datasets) == 0 {
		return ErrEmptyChart
	}
	ds := data.Datasets[0]

	bars := make([]chart.Value, 0, len(data.Labels))
	nonZero := false
	var lo, hi float64
	for i, label := range data.Labels {
		var v float64
		if i < len(ds.Data) {
			v, _ = ds.Data[i].Float64()
		}
		if v != 0 {
			nonZero = true
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
		color := chart.ColorBlue
		if i < len(ds.BackgroundColor) {
			color = parseColor(ds.BackgroundColor[i])
		}
		bars = append(bars, chart.Value{
			Label: label,
			Value: v,
			Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		})
	}
	if !nonZero {
		return ErrEmptyChart
	}

	bc := chart.BarChart{
		Title:      "Average Parameter Analysis",
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      640,
		Height:     400,
		BarWidth:   90,
		Bars:       bars,
		// Bars grow from zero with some headroom above the tallest.
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo * 1.1, Max: hi * 1.1},
		},
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering bar chart: %w", err)
	}
	return nil
}

// RenderDoughnutPNG draws the type distribution chart.
func RenderDoughnutPNG(w io.Writer, data *dashboard.DoughnutChartData) error {
	if data == nil || len(data.Datasets) == 0 {
		return ErrEmptyChart
	}
	ds := data.Datasets[0]

	values := make([]chart.Value, 0, len(data.Labels))
	var total float64
	for i, label := range data.Labels {
		if i >= len(ds.Data) {
			break
		}
		color := chart.ColorBlue
		if i < len(ds.BackgroundColor) {
			color = parseColor(ds.BackgroundColor[i])
		}
		v, _ := ds.Data[i].Float64()
		if v < 0 {
			v = 0
		}
		total += v
		values = append(values, chart.Value{
			Label: label,
			Value: v,
			Style: chart.Style{FillColor: color, StrokeColor: chart.ColorWhite},
		})
	}
	if total == 0 {
		return ErrEmptyChart
	}

	dc := chart.DonutChart{
		Title:  "Equipment Type Distribution",
		Width:  480,
		Height: 480,
		Values: values,
	}
	if err := dc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering doughnut chart: %w", err)
	}
	return nil
}

// parseColor understands the "#rrggbb" and "rgba(r, g, b, a)" forms the chart
// style uses. Anything else falls back to blue.
func parseColor(s string) drawing.Color {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "#") && len(s) == 7 {
		r, errR := strconv.ParseUint(s[1:3], 16, 8)
		g, errG := strconv.ParseUint(s[3:5], 16, 8)
		b, errB := strconv.ParseUint(s[5:7], 16, 8)
		if errR == nil && errG == nil && errB == nil {
			return drawing.Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
		}
		return chart.ColorBlue
	}

	if strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "rgba("), ")"), ",")
		if len(parts) != 4 {
			return chart.ColorBlue
		}
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 8)
			if err != nil {
				return chart.ColorBlue
			}
			rgb[i] = uint8(v)
		}
		alpha, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || alpha < 0 || alpha > 1 {
			return chart.ColorBlue
		}
		return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(alpha*255 + 0.5)}
	}

	return chart.ColorBlue
}
