package caseimport

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rbc-health/malaria-dashboard/internal/dataset"
	"github.com/rbc-health/malaria-dashboard/internal/db"
)

const sampleCSV = `facility_name,Date,Malaria_cases_OPD
Kimironko Health Centre,2021-01-15,10
Muhima Hospital,2021-02-01,20
`

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRun_RefusesWithoutWipe(t *testing.T) {
	_, err := Run(context.Background(), Config{CSVPath: "cases.csv", Table: "malaria.case_reports"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to run")
}

func TestRun_InvalidCSVFailsBeforeConnecting(t *testing.T) {
	path := writeCSV(t, "facility_name,Date,Malaria_cases_OPD\nKimironko,not-a-date,3\n")

	_, err := Run(context.Background(), Config{
		CSVPath: path,
		Table:   "malaria.case_reports",
		Wipe:    true,
	}, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrInvalidDate)
}

func TestBuildReports(t *testing.T) {
	reports, err := BuildReports([]dataset.CaseRecord{
		dataset.NewCaseRecord("Kimironko Health Centre", "2021-01-15", 10),
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Kimironko Health Centre", reports[0].FacilityName)
	assert.Equal(t, time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC), reports[0].ReportDate)
	assert.Equal(t, 10, reports[0].Cases)
}

// TestRun_Integration imports into a real database and reads the rows back
// through the Postgres case source. Skipped when DATABASE_URL is unset.
func TestRun_Integration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}

	table := "malaria_test.case_reports"
	n, err := Run(context.Background(), Config{
		CSVPath:     writeCSV(t, sampleCSV),
		DatabaseURL: dsn,
		Table:       table,
		Wipe:        true,
		BatchSize:   1,
		Quiet:       true,
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	gdb, err := db.Connect(dsn)
	require.NoError(t, err)
	defer db.Close(gdb)
	defer gdb.Exec(`DROP TABLE IF EXISTS ` + db.QuoteTable(table))

	records, err := dataset.PostgresCaseSource{DB: gdb, Table: table}.ReadCases(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "kimironko", records[0].FacilityKey)
	assert.Equal(t, "2021-02-01", records[1].RawDate)
}
