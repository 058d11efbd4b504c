package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rbc-health/malaria-dashboard/internal/analytics"
	"github.com/rbc-health/malaria-dashboard/internal/dataset"
)

func square(x, y, size float64) orb.Polygon {
	return orb.Polygon{{{x, y}, {x, y + size}, {x + size, y + size}, {x + size, y}, {x, y}}}
}

func testStore(t *testing.T) *dataset.Store {
	t.Helper()

	kimironko := square(30.10, -1.95, 0.05)
	muhima := square(30.05, -1.95, 0.05)
	rec := func(district, sector, facility string, year, month, cases int, g orb.Geometry) dataset.JoinedRecord {
		return dataset.JoinedRecord{
			District: district, Sector: sector, FacilityName: facility,
			Year: year, Month: month, Cases: cases, Geometry: g,
		}
	}
	records := []dataset.JoinedRecord{
		rec("Nyarugenge", "Muhima", "Muhima HC", 2020, 11, 900, muhima),
		rec("Gasabo", "Kimironko", "Kimironko HC", 2021, 1, 1000, kimironko),
		rec("Gasabo", "Kimironko", "Kimironko HC", 2021, 2, 1234, kimironko),
		rec("Gasabo", "Kimironko", "Kibagabaga HC", 2021, 2, 50, kimironko),
	}

	area := 12.3456
	wetlands := []dataset.Wetland{
		{Name: "Nyabugogo", Geometry: square(30.04, -1.94, 0.01), AreaKm2: &area},
		{Name: "Rugezi", Geometry: square(29.8, -1.5, 0.1)},
	}
	regions := []dataset.Region{
		dataset.NewRegion("Gasabo", "Kimironko", kimironko),
		dataset.NewRegion("Nyarugenge", "Muhima", muhima),
	}

	store, err := dataset.NewStore(records, wetlands, regions)
	require.NoError(t, err)
	return store
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func testRouter(t *testing.T) http.Handler {
	return SetupRoutes(NewService(testStore(t), zap.NewNop()))
}

func TestMeta(t *testing.T) {
	rec := serve(t, testRouter(t), "/meta")
	require.Equal(t, http.StatusOK, rec.Code)

	var meta MetaResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&meta))
	assert.Equal(t, []string{"Gasabo", "Nyarugenge"}, meta.Districts)
	assert.Equal(t, "Nyarugenge", meta.DefaultDistrict)
	assert.Equal(t, 2020, meta.MinYear)
	assert.Equal(t, 2021, meta.MaxYear)
	assert.Equal(t, []int{2020, 2021}, meta.YearMarks)
	assert.Equal(t, MapCenter, meta.Center)
	assert.Equal(t, 4, meta.Records)
}

func TestView(t *testing.T) {
	rec := serve(t, testRouter(t), "/view?district=Gasabo&from=2021&to=2021")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Header().Get("X-Data-Status"))

	var body struct {
		Status  string                   `json:"status"`
		Columns []string                 `json:"columns"`
		Rows    []analytics.AggregateRow `json:"rows"`
		GeoJSON struct {
			Type     string            `json:"type"`
			Features []json.RawMessage `json:"features"`
		} `json:"geojson"`
		Cards   []Card         `json:"cards"`
		Display SummaryDisplay `json:"display"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, analytics.Columns, body.Columns)
	require.Len(t, body.Rows, 2)
	assert.Equal(t, "Kibagabaga HC", body.Rows[0].FacilityName)
	assert.Equal(t, 2234, body.Rows[1].TotalCases)
	assert.Equal(t, "FeatureCollection", body.GeoJSON.Type)
	assert.Len(t, body.GeoJSON.Features, 3)

	require.Len(t, body.Cards, 2)
	assert.Equal(t, "2,234", body.Cards[1].Total)
	assert.Equal(t, "▲ +23.4%", body.Cards[1].Growth)
	assert.Equal(t, "#2ecc71", body.Cards[1].Color)

	assert.Equal(t, "2,284", body.Display.TotalCases)
	assert.Equal(t, "+28.4%", body.Display.PeriodGrowth)
}

func TestView_Defaults(t *testing.T) {
	rec := serve(t, testRouter(t), "/view")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ViewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Nyarugenge", body.District)
	assert.Equal(t, analytics.YearRange{From: 2020, To: 2021}, body.Years)
	assert.Equal(t, 900, body.Summary.TotalCases)
}

func TestView_InvalidYear(t *testing.T) {
	for _, target := range []string{"/view?from=abc", "/view?to=2021.5", "/charts/trend.png?from=x"} {
		rec := serve(t, testRouter(t), target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestView_UnknownDistrictIsEmpty(t *testing.T) {
	rec := serve(t, testRouter(t), "/view?district=Nowhere")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ViewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, analytics.StatusOK, body.Status)
	assert.Empty(t, body.Rows)
	assert.Equal(t, "0", body.Display.TotalCases)
	assert.Equal(t, "+0.0%", body.Display.PeriodGrowth)
}

func TestCharts(t *testing.T) {
	router := testRouter(t)
	for _, target := range []string{
		"/charts/facilities.png?district=Gasabo",
		"/charts/trend.png?district=Gasabo",
		"/charts/facilities.png?district=Nowhere",
		"/charts/trend.png?district=Nowhere",
	} {
		rec := serve(t, router, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")), target)
	}
}

func TestExport(t *testing.T) {
	rec := serve(t, testRouter(t), "/export.xlsx?district=Gasabo&from=2021&to=2021")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "malaria_Gasabo_2021-2021.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{facilitySheet, monthlySheet}, f.GetSheetList())

	name, err := f.GetCellValue(facilitySheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Kimironko HC", name)

	total, err := f.GetCellValue(facilitySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2234", total)

	date, err := f.GetCellValue(monthlySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2021-01-01", date)
}

func TestWetlands(t *testing.T) {
	router := testRouter(t)

	rec := serve(t, router, "/wetlands")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Nom":"Nyabugogo"`)
	assert.Contains(t, rec.Body.String(), `"Area_km2":null`)

	rec = serve(t, router, "/wetlands/table")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []WetlandRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].AreaKm2)
	assert.Equal(t, 12.35, *rows[0].AreaKm2)
	assert.Nil(t, rows[1].AreaKm2)
}

func TestLookupRegion(t *testing.T) {
	router := testRouter(t)

	rec := serve(t, router, "/regions/lookup?lat=-1.93&lng=30.07")
	require.Equal(t, http.StatusOK, rec.Code)
	var region RegionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&region))
	assert.Equal(t, RegionResponse{District: "Nyarugenge", Sector: "Muhima"}, region)

	assert.Equal(t, http.StatusNotFound, serve(t, router, "/regions/lookup?lat=0&lng=0").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, router, "/regions/lookup?lat=north&lng=0").Code)
}

func TestUnavailableRoutes(t *testing.T) {
	for _, target := range []string{"/meta", "/view?district=Gasabo", "/anything"} {
		rec := serve(t, UnavailableRoutes(), target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		assert.Equal(t, "Data unavailable\n", rec.Body.String())
	}
}

func TestPages(t *testing.T) {
	rec := serve(t, Pages(true), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Malaria Cases Dashboard")

	rec = serve(t, Pages(false), "/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error Loading Data")
	assert.Contains(t, rec.Body.String(), "Please check if your data files exist and are in the correct format.")
}

func TestInit_LoadFailureServesUnavailable(t *testing.T) {
	dir := t.TempDir()
	loader := &dataset.Loader{
		Sources: dataset.Sources{
			BoundaryPath: filepath.Join(dir, "missing.shp"),
			WetlandPath:  filepath.Join(dir, "missing_wetlands.shp"),
			Cases:        dataset.CSVCaseSource{Path: filepath.Join(dir, "missing.csv")},
		},
		Log: zap.NewNop(),
	}

	api, page := Init(context.Background(), loader, zap.NewNop())
	assert.Equal(t, http.StatusServiceUnavailable, serve(t, api, "/meta").Code)
	assert.True(t, strings.Contains(serve(t, page, "/").Body.String(), "Error Loading Data"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1,234", FormatCount(1234))
	assert.Equal(t, "+12.5%", FormatGrowth(12.5))
	assert.Equal(t, "▼ -3.0%", GrowthLabel(-3))
	assert.Equal(t, "#e74c3c", GrowthColor(-0.1))
	assert.Equal(t, "#2ecc71", GrowthColor(0))
}
