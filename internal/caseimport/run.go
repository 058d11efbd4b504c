package caseimport

import (
	"context"
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rbc-health/malaria-dashboard/internal/dataset"
	"github.com/rbc-health/malaria-dashboard/internal/db"
)

const defaultBatchSize = 500

type Config struct {
	CSVPath     string
	DatabaseURL string
	// Table is the possibly schema-qualified destination, e.g.
	// malaria.case_reports.
	Table     string
	Wipe      bool
	BatchSize int
	Quiet     bool
}

// Run replaces the contents of the case table with the rows of the CSV file
// in a single transaction and returns the number of rows written.
func Run(ctx context.Context, cfg Config, log *zap.Logger) (int, error) {
	if !cfg.Wipe {
		return 0, errors.New("refusing to run: set Wipe=true (this importer truncates the case table)")
	}
	if cfg.Table == "" {
		return 0, errors.New("destination table is required")
	}

	records, err := dataset.CSVCaseSource{Path: cfg.CSVPath}.ReadCases(ctx)
	if err != nil {
		return 0, err
	}
	reports, err := BuildReports(records)
	if err != nil {
		return 0, err
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return 0, err
	}
	defer db.Close(gdb)

	if schema, _ := db.SplitTable(cfg.Table); schema != "" {
		if err := db.EnsureSchema(gdb, schema); err != nil {
			return 0, fmt.Errorf("ensure schema %s: %w", schema, err)
		}
	}
	if err := gdb.Table(cfg.Table).AutoMigrate(&dataset.CaseReport{}); err != nil {
		return 0, fmt.Errorf("migrate %s: %w", cfg.Table, err)
	}

	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}

	var bar *progressbar.ProgressBar
	if cfg.Quiet {
		bar = progressbar.DefaultSilent(int64(len(reports)))
	} else {
		bar = progressbar.Default(int64(len(reports)), "Importing case reports")
	}

	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := wipe(tx, cfg.Table); err != nil {
			return err
		}
		for start := 0; start < len(reports); start += batch {
			end := min(start+batch, len(reports))
			chunk := reports[start:end]
			if err := tx.Table(cfg.Table).Create(&chunk).Error; err != nil {
				return fmt.Errorf("insert rows %d-%d: %w", start+1, end, err)
			}
			bar.Add(len(chunk))
		}
		return nil
	})
	bar.Finish()
	if err != nil {
		return 0, err
	}

	log.Info("case reports imported",
		zap.String("csv", cfg.CSVPath),
		zap.String("table", cfg.Table),
		zap.Int("rows", len(reports)),
	)
	return len(reports), nil
}

// BuildReports converts parsed CSV records into table rows. A date that
// does not parse rejects the whole file, as it would fail the dashboard load.
func BuildReports(records []dataset.CaseRecord) ([]dataset.CaseReport, error) {
	out := make([]dataset.CaseReport, 0, len(records))
	for i, r := range records {
		date, err := dataset.ParseReportDate(r.RawDate)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+2, r.FacilityName, err)
		}
		if r.Cases < 0 {
			return nil, fmt.Errorf("row %d (%s): %w", i+2, r.FacilityName, dataset.ErrInvalidCaseCount)
		}
		out = append(out, dataset.CaseReport{
			FacilityName: r.FacilityName,
			ReportDate:   date,
			Cases:        r.Cases,
		})
	}
	return out, nil
}

func wipe(tx *gorm.DB, table string) error {
	return tx.Exec(`TRUNCATE TABLE ` + db.QuoteTable(table) + ` RESTART IDENTITY`).Error
}
