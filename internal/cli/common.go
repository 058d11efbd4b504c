package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rbc-health/malaria-dashboard/internal/analytics"
	"github.com/rbc-health/malaria-dashboard/internal/app"
	"github.com/rbc-health/malaria-dashboard/internal/config"
	"github.com/rbc-health/malaria-dashboard/internal/dataset"
	"github.com/rbc-health/malaria-dashboard/internal/logging"
)

// session is the configuration and logger shared by one command run.
type session struct {
	cfg config.Config
	log *zap.Logger
}

func newSession() (*session, error) {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	// Operators read stdout; keep diagnostics terse.
	log, err := logging.New("warn", "console")
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: log}, nil
}

func (s *session) loadStore(ctx context.Context) (*dataset.Store, error) {
	loader, cleanup, err := app.NewLoader(s.cfg, s.log)
	defer cleanup()
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx)
}

type selection struct {
	district string
	from     int
	to       int
}

func addSelectionFlags(cmd *cobra.Command, sel *selection) {
	cmd.Flags().StringVar(&sel.district, "district", "", "district name (default: first district in the data)")
	cmd.Flags().IntVar(&sel.from, "from", 0, "first year, inclusive (default: earliest year)")
	cmd.Flags().IntVar(&sel.to, "to", 0, "last year, inclusive (default: latest year)")
}

// resolve fills unset selection fields from the store.
func (sel selection) resolve(store *dataset.Store) (string, analytics.YearRange) {
	minYear, maxYear := store.YearRange()
	years := analytics.YearRange{From: minYear, To: maxYear}
	if sel.from != 0 {
		years.From = sel.from
	}
	if sel.to != 0 {
		years.To = sel.to
	}
	district := sel.district
	if district == "" {
		district = store.DefaultDistrict()
	}
	return district, years
}

func computeView(ctx context.Context, sel selection) (analytics.Result, error) {
	s, err := newSession()
	if err != nil {
		return analytics.Result{}, err
	}
	defer s.log.Sync()

	store, err := s.loadStore(ctx)
	if err != nil {
		return analytics.Result{}, err
	}
	district, years := sel.resolve(store)
	return analytics.NewEngine(store, s.log).ComputeView(district, years), nil
}
