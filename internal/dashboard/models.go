package dashboard

import (
	"github.com/rbc-health/malaria-dashboard/internal/analytics"
)

// Map defaults for Rwanda.
var (
	MapCenter = [2]float64{-1.9403, 29.8739}
	MapZoom   = 8
	MapBounds = [2][2]float64{{-2.8389, 28.8617}, {-1.0474, 30.8989}}
)

type MetaResponse struct {
	Districts       []string      `json:"districts"`
	DefaultDistrict string        `json:"default_district"`
	MinYear         int           `json:"min_year"`
	MaxYear         int           `json:"max_year"`
	YearMarks       []int         `json:"year_marks"`
	Center          [2]float64    `json:"center"`
	Zoom            int           `json:"zoom"`
	Bounds          [2][2]float64 `json:"bounds"`
	Records         int           `json:"records"`
}

// Card is the display text of one facility map marker.
type Card struct {
	FacilityName string `json:"facility_name"`
	Total        string `json:"total"`
	Average      string `json:"average"`
	Maximum      string `json:"maximum"`
	Growth       string `json:"growth"`
	Color        string `json:"color"`
}

type SummaryDisplay struct {
	TotalCases     string `json:"total_cases"`
	AverageMonthly string `json:"average_monthly"`
	PeriodGrowth   string `json:"period_growth"`
}

type ViewResponse struct {
	Status  analytics.Status `json:"status"`
	Columns []string         `json:"columns"`
	analytics.View
	Cards   []Card         `json:"cards"`
	Display SummaryDisplay `json:"display"`
}

type WetlandRow struct {
	Nom     string   `json:"Nom"`
	AreaKm2 *float64 `json:"Area_km2"`
}

type RegionResponse struct {
	District string `json:"district"`
	Sector   string `json:"sector"`
}
