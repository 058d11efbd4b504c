package analytics

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
)

// YearRange is an inclusive range of report years.
type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether year falls inside the range.
func (r YearRange) Contains(year int) bool {
	return r.From <= year && year <= r.To
}

// AggregateRow is one facility line of the dashboard table.
type AggregateRow struct {
	FacilityName string  `json:"facility_name"`
	TotalCases   int     `json:"Total Cases"`
	AverageCases float64 `json:"Average Cases"`
	MaximumCases int     `json:"Maximum Cases"`
}

// Columns lists the table columns in display order.
var Columns = []string{"facility_name", "Total Cases", "Average Cases", "Maximum Cases"}

// Marker is the map card of a single facility.
type Marker struct {
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	FacilityName string  `json:"facility_name"`
	TotalCases   int     `json:"total_cases"`
	AverageCases float64 `json:"average_cases"`
	MaximumCases int     `json:"maximum_cases"`
	Growth       float64 `json:"growth"`
	Increasing   bool    `json:"increasing"`
}

// Trend is the bar-chart growth indicator.
type Trend string

const (
	TrendNone Trend = ""
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// FacilityBar is one bar of the facility chart.
type FacilityBar struct {
	FacilityName string  `json:"facility_name"`
	TotalCases   int     `json:"total_cases"`
	Growth       float64 `json:"growth"`
	// Trend is empty when the facility has fewer than two monthly buckets.
	Trend Trend `json:"trend,omitempty"`
}

// MonthlyPoint is the case sum of one (year, month) bucket.
type MonthlyPoint struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Date  time.Time `json:"date"`
	Cases int       `json:"cases"`
}

type Summary struct {
	TotalCases     int     `json:"total_cases"`
	AverageMonthly float64 `json:"average_monthly"`
	PeriodGrowth   float64 `json:"period_growth"`
}

// View is everything the dashboard renders for one district and year range.
type View struct {
	District   string                     `json:"district"`
	Years      YearRange                  `json:"years"`
	Rows       []AggregateRow             `json:"rows"`
	Features   *geojson.FeatureCollection `json:"geojson"`
	Markers    []Marker                   `json:"markers"`
	Facilities []FacilityBar              `json:"facilities"`
	Monthly    []MonthlyPoint             `json:"monthly"`
	Summary    Summary                    `json:"summary"`
}

// Result wraps a View with the outcome of computing it. Err is set only when
// Status is StatusDegraded and is never meant for end users.
type Result struct {
	Status Status
	View   View
	Err    error
}

// EmptyView is the view shown for an empty selection or a degraded request.
func EmptyView(district string, years YearRange) View {
	return View{
		District:   district,
		Years:      years,
		Rows:       []AggregateRow{},
		Features:   geojson.NewFeatureCollection(),
		Markers:    []Marker{},
		Facilities: []FacilityBar{},
		Monthly:    []MonthlyPoint{},
	}
}
