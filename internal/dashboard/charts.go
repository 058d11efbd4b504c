package dashboard

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rbc-health/malaria-dashboard/internal/analytics"
)

var (
	barColor   = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	upColor    = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	downColor  = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	chartWidth = 10 * vg.Inch
)

// FacilityChart renders the per-facility totals as a PNG bar chart, with a
// growth arrow above every facility that has at least two monthly buckets.
func FacilityChart(w io.Writer, view analytics.View) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Total Malaria Cases by Facility (%d-%d)", view.Years.From, view.Years.To)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "facility_name"
	p.Y.Label.Text = "Total Cases"

	if n := len(view.Facilities); n > 0 {
		values := make(plotter.Values, n)
		names := make([]string, n)
		var arrows plotter.XYLabels
		var arrowColors []color.Color
		for i, f := range view.Facilities {
			values[i] = float64(f.TotalCases)
			names[i] = f.FacilityName
			switch f.Trend {
			case analytics.TrendUp:
				arrows.XYs = append(arrows.XYs, plotter.XY{X: float64(i), Y: float64(f.TotalCases)})
				arrows.Labels = append(arrows.Labels, "▲")
				arrowColors = append(arrowColors, upColor)
			case analytics.TrendDown:
				arrows.XYs = append(arrows.XYs, plotter.XY{X: float64(i), Y: float64(f.TotalCases)})
				arrows.Labels = append(arrows.Labels, "▼")
				arrowColors = append(arrowColors, downColor)
			}
		}

		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		bars.Color = barColor
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.NominalX(names...)
		p.X.Tick.Label.Rotation = math.Pi / 4

		if len(arrows.XYs) > 0 {
			labels, err := plotter.NewLabels(arrows)
			if err != nil {
				return fmt.Errorf("growth labels: %w", err)
			}
			for i := range labels.TextStyle {
				labels.TextStyle[i].Color = arrowColors[i]
				labels.TextStyle[i].Font.Size = vg.Points(16)
			}
			labels.Offset = vg.Point{X: -vg.Points(5), Y: vg.Points(4)}
			p.Add(labels)
		}
	}

	return writePNG(w, p, chartWidth, 6*vg.Inch)
}

// TrendChart renders the district monthly series as a PNG line chart.
func TrendChart(w io.Writer, view analytics.View) error {
	p := plot.New()
	p.Title.Text = "Monthly Trend of Malaria Cases"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Malaria_cases_OPD"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())

	if len(view.Monthly) > 0 {
		xys := make(plotter.XYs, len(view.Monthly))
		for i, pt := range view.Monthly {
			xys[i].X = float64(pt.Date.Unix())
			xys[i].Y = float64(pt.Cases)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("trend line: %w", err)
		}
		line.Color = barColor
		line.Width = vg.Points(2)
		p.Add(line)
	}

	return writePNG(w, p, chartWidth, 4*vg.Inch)
}

func writePNG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
