package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/rbc-health/malaria-dashboard/internal/analytics"
	"github.com/rbc-health/malaria-dashboard/internal/dataset"
)

const (
	dataStatusHeader = "X-Data-Status"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var errInvalidYear = errors.New("invalid year")

// Service serves the dashboard API over a loaded Store.
type Service struct {
	store  *dataset.Store
	engine *analytics.Engine
	log    *zap.Logger
}

func NewService(store *dataset.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, engine: analytics.NewEngine(store, log), log: log}
}

// Meta returns the selector options and map defaults
func (s *Service) Meta(w http.ResponseWriter, r *http.Request) {
	minYear, maxYear := s.store.YearRange()
	marks := make([]int, 0, maxYear-minYear+1)
	for y := minYear; y <= maxYear; y++ {
		marks = append(marks, y)
	}

	writeJSON(w, MetaResponse{
		Districts:       s.store.Districts(),
		DefaultDistrict: s.store.DefaultDistrict(),
		MinYear:         minYear,
		MaxYear:         maxYear,
		YearMarks:       marks,
		Center:          MapCenter,
		Zoom:            MapZoom,
		Bounds:          MapBounds,
		Records:         s.store.Len(),
	})
}

// View returns the table, map layers, chart series and summary for one
// district and year range.
func (s *Service) View(w http.ResponseWriter, r *http.Request) {
	res, ok := s.compute(w, r)
	if !ok {
		return
	}
	writeJSON(w, newViewResponse(res))
}

func (s *Service) FacilityChart(w http.ResponseWriter, r *http.Request) {
	res, ok := s.compute(w, r)
	if !ok {
		return
	}
	s.writeRendered(w, "image/png", "", func(buf *bytes.Buffer) error {
		return FacilityChart(buf, res.View)
	})
}

func (s *Service) TrendChart(w http.ResponseWriter, r *http.Request) {
	res, ok := s.compute(w, r)
	if !ok {
		return
	}
	s.writeRendered(w, "image/png", "", func(buf *bytes.Buffer) error {
		return TrendChart(buf, res.View)
	})
}

// Export downloads the current selection as an xlsx workbook
func (s *Service) Export(w http.ResponseWriter, r *http.Request) {
	res, ok := s.compute(w, r)
	if !ok {
		return
	}
	name := ExportFilename(res.View)
	s.writeRendered(w, xlsxContentType, name, func(buf *bytes.Buffer) error {
		return WriteWorkbook(buf, res.View)
	})
}

// Wetlands returns the wetland layer as GeoJSON
func (s *Service) Wetlands(w http.ResponseWriter, r *http.Request) {
	fc := geojson.NewFeatureCollection()
	for _, wl := range s.store.Wetlands() {
		f := geojson.NewFeature(wl.Geometry)
		f.Properties["Nom"] = wl.Name
		f.Properties["Area_km2"] = wl.AreaKm2
		fc.Append(f)
	}

	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		s.log.Warn("encode wetlands", zap.Error(err))
	}
}

// WetlandTable returns name and area of every wetland, rounded to 2 decimals
func (s *Service) WetlandTable(w http.ResponseWriter, r *http.Request) {
	wetlands := s.store.Wetlands()
	rows := make([]WetlandRow, 0, len(wetlands))
	for _, wl := range wetlands {
		row := WetlandRow{Nom: wl.Name}
		if wl.AreaKm2 != nil {
			v := analytics.Round2(*wl.AreaKm2)
			row.AreaKm2 = &v
		}
		rows = append(rows, row)
	}
	writeJSON(w, rows)
}

// LookupRegion returns the district and sector containing lat/lng
func (s *Service) LookupRegion(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		http.Error(w, "Invalid lat", http.StatusBadRequest)
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		http.Error(w, "Invalid lng", http.StatusBadRequest)
		return
	}

	region, err := s.store.Lookup(lat, lng)
	if errors.Is(err, dataset.ErrRegionNotFound) {
		http.Error(w, "Region not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("region lookup", zap.Error(err))
		http.Error(w, "Lookup failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, RegionResponse{District: region.District, Sector: region.Sector})
}

// compute parses the selection and runs the engine. It writes a 400 and
// returns false when the query is malformed.
func (s *Service) compute(w http.ResponseWriter, r *http.Request) (analytics.Result, bool) {
	district, years, err := s.parseSelection(r)
	if err != nil {
		http.Error(w, "Invalid year format", http.StatusBadRequest)
		return analytics.Result{}, false
	}
	res := s.engine.ComputeView(district, years)
	w.Header().Set(dataStatusHeader, string(res.Status))
	return res, true
}

func (s *Service) parseSelection(r *http.Request) (string, analytics.YearRange, error) {
	q := r.URL.Query()
	district := q.Get("district")
	if district == "" {
		district = s.store.DefaultDistrict()
	}

	minYear, maxYear := s.store.YearRange()
	years := analytics.YearRange{From: minYear, To: maxYear}
	for _, p := range []struct {
		key string
		dst *int
	}{{"from", &years.From}, {"to", &years.To}} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return "", years, fmt.Errorf("%w: %s=%q", errInvalidYear, p.key, v)
		}
		*p.dst = n
	}
	return district, years, nil
}

// writeRendered renders into a buffer first so a rendering failure can still
// produce a clean 500.
func (s *Service) writeRendered(w http.ResponseWriter, contentType, filename string, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.log.Error("render", zap.String("content_type", contentType), zap.Error(err))
		http.Error(w, "Failed to render", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.Write(buf.Bytes())
}

// ExportFilename names the workbook for a view.
func ExportFilename(v analytics.View) string {
	return fmt.Sprintf("malaria_%s_%d-%d.xlsx", v.District, v.Years.From, v.Years.To)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// Unavailable answers every API request while the dataset failed to load.
func Unavailable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(dataStatusHeader, "unavailable")
	http.Error(w, "Data unavailable", http.StatusServiceUnavailable)
}
