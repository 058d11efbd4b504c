package dataset

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/rbc-health/malaria-dashboard/internal/names"
)

const (
	fieldDistrict = "ADM2_EN"
	fieldSector   = "ADM3_EN"
)

// ReadBoundaries loads the administrative boundary layer. The layer is
// expected in geographic coordinates already.
//
// A sector with a null or degenerate shape is kept with a nil Geometry. It
// only fails the load if a case report joins to it.
func ReadBoundaries(path string) ([]Region, error) {
	rows, err := readShapefile(path, fieldDistrict, fieldSector)
	if err != nil {
		return nil, err
	}

	regions := make([]Region, 0, len(rows))
	for i, row := range rows {
		g, err := toOrb(row.Geometry)
		if err != nil && !errors.Is(err, ErrMissingGeometry) {
			return nil, fmt.Errorf("boundary record %d: %w", i, err)
		}
		regions = append(regions, NewRegion(row.Fields[fieldDistrict], row.Fields[fieldSector], g))
	}
	return regions, nil
}

// NewRegion builds a Region and its normalized sector key.
func NewRegion(district, sector string, g orb.Geometry) Region {
	return Region{
		District:  district,
		Sector:    sector,
		SectorKey: names.Normalize(sector),
		Geometry:  g,
	}
}
