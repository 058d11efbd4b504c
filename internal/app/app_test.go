package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rbc-health/malaria-dashboard/internal/config"
	"github.com/rbc-health/malaria-dashboard/internal/dataset"
)

func TestNewLoader_CSV(t *testing.T) {
	cfg := config.Default()
	cfg.Data.CasesPath = "cases.csv"

	loader, cleanup, err := NewLoader(cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, cfg.Data.BoundaryPath, loader.Sources.BoundaryPath)
	assert.Equal(t, dataset.CSVCaseSource{Path: "cases.csv"}, loader.Sources.Cases)
}
