// Package app wires configuration into the data layer shared by the server
// and the operator CLI.
package app

import (
	"go.uber.org/zap"

	"github.com/rbc-health/malaria-dashboard/internal/config"
	"github.com/rbc-health/malaria-dashboard/internal/dataset"
	"github.com/rbc-health/malaria-dashboard/internal/db"
)

// NewLoader builds the dataset loader for cfg. The returned cleanup closes
// any database connection opened for the case source and is never nil.
func NewLoader(cfg config.Config, log *zap.Logger) (*dataset.Loader, func(), error) {
	cleanup := func() {}
	src := dataset.Sources{
		BoundaryPath: cfg.Data.BoundaryPath,
		WetlandPath:  cfg.Data.WetlandPath,
	}

	if cfg.UsesDatabaseCases() {
		gdb, err := db.Connect(cfg.Data.CasesDatabaseURL)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() {
			if err := db.Close(gdb); err != nil {
				log.Warn("close database", zap.Error(err))
			}
		}
		src.Cases = dataset.PostgresCaseSource{DB: gdb, Table: cfg.Data.CasesTable}
	} else {
		src.Cases = dataset.CSVCaseSource{Path: cfg.Data.CasesPath}
	}

	return &dataset.Loader{Sources: src, Log: log}, cleanup, nil
}
