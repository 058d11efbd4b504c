package dataset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sources names the three inputs of a load.
type Sources struct {
	BoundaryPath string
	WetlandPath  string
	Cases        CaseSource
}

// Load reads the three sources concurrently, joins them and returns the
// immutable Store. It is all-or-nothing: any failure is reported as
// ErrDataUnavailable and no partial Store is returned.
func Load(ctx context.Context, src Sources, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()

	var (
		regions  []Region
		wetlands []Wetland
		reports  []CaseRecord
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("loading boundary shapefile", zap.String("path", src.BoundaryPath))
		var err error
		regions, err = ReadBoundaries(src.BoundaryPath)
		if err != nil {
			return fmt.Errorf("boundaries: %w", err)
		}
		log.Debug("boundaries loaded", zap.Int("regions", len(regions)))
		return nil
	})
	g.Go(func() error {
		log.Info("loading wetland shapefile", zap.String("path", src.WetlandPath))
		var err error
		wetlands, err = ReadWetlands(src.WetlandPath)
		if err != nil {
			return fmt.Errorf("wetlands: %w", err)
		}
		log.Debug("wetlands loaded", zap.Int("wetlands", len(wetlands)))
		return nil
	})
	g.Go(func() error {
		if src.Cases == nil {
			return fmt.Errorf("cases: no case source configured")
		}
		log.Info("loading case reports", zap.String("source", src.Cases.Name()))
		var err error
		reports, err = src.Cases.ReadCases(ctx)
		if err != nil {
			return fmt.Errorf("cases: %w", err)
		}
		log.Debug("case reports loaded", zap.Int("reports", len(reports)))
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("error loading data", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	store, err := Assemble(regions, wetlands, reports)
	if err != nil {
		log.Error("error loading data", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	minYear, maxYear := store.YearRange()
	log.Info("data loaded",
		zap.Int("joined_records", store.Len()),
		zap.Int("reports", len(reports)),
		zap.Int("districts", len(store.Districts())),
		zap.Int("wetlands", len(wetlands)),
		zap.Int("min_year", minYear),
		zap.Int("max_year", maxYear),
		zap.Duration("took", time.Since(start)))
	return store, nil
}

// Assemble joins already-read inputs into a Store.
func Assemble(regions []Region, wetlands []Wetland, reports []CaseRecord) (*Store, error) {
	records, err := Join(regions, reports)
	if err != nil {
		return nil, fmt.Errorf("join: %w", err)
	}
	return NewStore(records, wetlands, regions)
}

// Loader runs Load at most once. Later calls return the first outcome, so a
// failed startup load stays failed for the life of the process.
type Loader struct {
	Sources Sources
	Log     *zap.Logger

	once  sync.Once
	store *Store
	err   error
}

func (l *Loader) Load(ctx context.Context) (*Store, error) {
	l.once.Do(func() {
		l.store, l.err = Load(ctx, l.Sources, l.Log)
	})
	return l.store, l.err
}
