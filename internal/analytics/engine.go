package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"github.com/rbc-health/malaria-dashboard/internal/dataset"
	"github.com/rbc-health/malaria-dashboard/internal/logging"
)

var ErrNonFinite = errors.New("non-finite aggregate")

// Engine filters and aggregates the joined table. It holds no mutable state,
// so a single Engine serves concurrent requests.
type Engine struct {
	store *dataset.Store
	log   *zap.Logger
}

func NewEngine(store *dataset.Store, log *zap.Logger) *Engine {
	return &Engine{store: store, log: logging.Component(log, "analytics")}
}

// ComputeView builds the dashboard view for district over years. An unknown
// district or an inverted range yields an empty view with StatusOK. Any
// failure during the computation yields an empty view with StatusDegraded.
func (e *Engine) ComputeView(district string, years YearRange) Result {
	view, err := e.compute(district, years)
	if err != nil {
		e.log.Warn("view degraded",
			zap.String("district", district),
			zap.Int("from", years.From),
			zap.Int("to", years.To),
			zap.Error(err),
		)
		return Result{Status: StatusDegraded, View: EmptyView(district, years), Err: err}
	}
	return Result{Status: StatusOK, View: view}
}

func (e *Engine) compute(district string, years YearRange) (view View, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compute view: %v", r)
		}
	}()

	filtered := Filter(e.store.Records(), district, years)
	view = EmptyView(district, years)
	if len(filtered) == 0 {
		return view, nil
	}

	byFacility := make(map[string][]dataset.JoinedRecord)
	for _, r := range filtered {
		byFacility[r.FacilityName] = append(byFacility[r.FacilityName], r)
	}

	view.Rows = Aggregate(filtered)
	for _, row := range view.Rows {
		recs := byFacility[row.FacilityName]
		monthly := MonthlySeries(recs)
		growth := MonthOverMonth(monthly)

		c, _ := planar.CentroidArea(recs[0].Geometry)
		view.Markers = append(view.Markers, Marker{
			Lat:          c.Y(),
			Lng:          c.X(),
			FacilityName: row.FacilityName,
			TotalCases:   row.TotalCases,
			AverageCases: row.AverageCases,
			MaximumCases: row.MaximumCases,
			Growth:       growth,
			Increasing:   growth >= 0,
		})

		bar := FacilityBar{FacilityName: row.FacilityName, TotalCases: row.TotalCases, Growth: growth}
		if len(monthly) > 1 {
			bar.Trend = TrendDown
			if growth >= 0 {
				bar.Trend = TrendUp
			}
		}
		view.Facilities = append(view.Facilities, bar)
	}

	for _, r := range filtered {
		f := geojson.NewFeature(r.Geometry)
		f.Properties["District"] = r.District
		f.Properties["Sector"] = r.Sector
		f.Properties["facility_name"] = r.FacilityName
		f.Properties["Year"] = r.Year
		f.Properties["Month"] = r.Month
		f.Properties["Malaria_cases_OPD"] = r.Cases
		view.Features.Append(f)
	}

	view.Monthly = MonthlySeries(filtered)
	view.Summary = Summarize(filtered, view.Monthly)

	if err := checkFinite(view); err != nil {
		return View{}, err
	}
	return view, nil
}

// Filter keeps the records of district whose year falls inside years, in
// table order.
func Filter(records []dataset.JoinedRecord, district string, years YearRange) []dataset.JoinedRecord {
	var out []dataset.JoinedRecord
	for _, r := range records {
		if r.District == district && years.Contains(r.Year) {
			out = append(out, r)
		}
	}
	return out
}

// Aggregate groups records by facility name and returns sum, mean and max of
// the case counts, sorted by facility name.
func Aggregate(records []dataset.JoinedRecord) []AggregateRow {
	type acc struct {
		total, n, max int
	}
	groups := make(map[string]*acc)
	for _, r := range records {
		a, ok := groups[r.FacilityName]
		if !ok {
			a = &acc{max: r.Cases}
			groups[r.FacilityName] = a
		}
		a.total += r.Cases
		a.n++
		a.max = max(a.max, r.Cases)
	}

	rows := make([]AggregateRow, 0, len(groups))
	for name, a := range groups {
		rows = append(rows, AggregateRow{
			FacilityName: name,
			TotalCases:   a.total,
			AverageCases: Round2(float64(a.total) / float64(a.n)),
			MaximumCases: a.max,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].FacilityName < rows[j].FacilityName })
	return rows
}

// MonthlySeries sums case counts per (year, month) bucket, in chronological
// order.
func MonthlySeries(records []dataset.JoinedRecord) []MonthlyPoint {
	type key struct{ year, month int }
	sums := make(map[key]int)
	for _, r := range records {
		sums[key{r.Year, r.Month}] += r.Cases
	}

	out := make([]MonthlyPoint, 0, len(sums))
	for k, v := range sums {
		out = append(out, MonthlyPoint{
			Year:  k.year,
			Month: k.month,
			Date:  time.Date(k.year, time.Month(k.month), 1, 0, 0, 0, 0, time.UTC),
			Cases: v,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// MonthOverMonth is the percentage change between the last two buckets.
// It is 0 with fewer than two buckets or when the previous bucket is 0.
func MonthOverMonth(series []MonthlyPoint) float64 {
	if len(series) < 2 {
		return 0
	}
	last, prev := series[len(series)-1].Cases, series[len(series)-2].Cases
	if prev == 0 {
		return 0
	}
	return float64(last-prev) / float64(prev) * 100
}

// PeriodGrowth is the percentage change from the first to the last bucket.
// It is 0 with fewer than two buckets or when the first bucket is 0.
func PeriodGrowth(series []MonthlyPoint) float64 {
	if len(series) < 2 {
		return 0
	}
	first, last := series[0].Cases, series[len(series)-1].Cases
	if first == 0 {
		return 0
	}
	return float64(last-first) / float64(first) * 100
}

// Summarize computes the summary cards from the filtered records and their
// monthly series.
func Summarize(records []dataset.JoinedRecord, series []MonthlyPoint) Summary {
	var s Summary
	for _, r := range records {
		s.TotalCases += r.Cases
	}
	if len(series) > 0 {
		var sum int
		for _, p := range series {
			sum += p.Cases
		}
		s.AverageMonthly = float64(sum) / float64(len(series))
	}
	s.PeriodGrowth = PeriodGrowth(series)
	return s
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func checkFinite(v View) error {
	vals := []float64{v.Summary.AverageMonthly, v.Summary.PeriodGrowth}
	for _, m := range v.Markers {
		vals = append(vals, m.Lat, m.Lng, m.Growth, m.AverageCases)
	}
	for _, x := range vals {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ErrNonFinite
		}
	}
	return nil
}
