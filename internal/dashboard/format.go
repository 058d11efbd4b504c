package dashboard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rbc-health/malaria-dashboard/internal/analytics"
)

const (
	colorUp   = "#2ecc71"
	colorDown = "#e74c3c"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders a number rounded to an integer with thousands
// separators, e.g. 1,234.
func FormatCount(v float64) string {
	return printer.Sprintf("%.0f", v)
}

// FormatGrowth renders a signed percentage, e.g. +12.5%.
func FormatGrowth(v float64) string {
	return printer.Sprintf("%+.1f%%", v)
}

// GrowthLabel is the arrow-prefixed growth shown on facility cards.
func GrowthLabel(v float64) string {
	if v >= 0 {
		return "▲ " + FormatGrowth(v)
	}
	return "▼ " + printer.Sprintf("%.1f%%", v)
}

func GrowthColor(v float64) string {
	if v >= 0 {
		return colorUp
	}
	return colorDown
}

func newViewResponse(res analytics.Result) ViewResponse {
	v := res.View
	cards := make([]Card, 0, len(v.Markers))
	for _, m := range v.Markers {
		cards = append(cards, Card{
			FacilityName: m.FacilityName,
			Total:        FormatCount(float64(m.TotalCases)),
			Average:      printer.Sprintf("%.1f", m.AverageCases),
			Maximum:      FormatCount(float64(m.MaximumCases)),
			Growth:       GrowthLabel(m.Growth),
			Color:        GrowthColor(m.Growth),
		})
	}

	return ViewResponse{
		Status:  res.Status,
		Columns: analytics.Columns,
		View:    v,
		Cards:   cards,
		Display: SummaryDisplay{
			TotalCases:     FormatCount(float64(v.Summary.TotalCases)),
			AverageMonthly: FormatCount(v.Summary.AverageMonthly),
			PeriodGrowth:   FormatGrowth(v.Summary.PeriodGrowth),
		},
	}
}
