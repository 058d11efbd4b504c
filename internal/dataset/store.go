package dataset

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ErrRegionNotFound is returned by Lookup when no sector contains the point.
var ErrRegionNotFound = errors.New("no region contains the point")

// Store is the read-only state shared by every query after startup. It is
// never mutated once built; accessors hand out copies.
type Store struct {
	records  []JoinedRecord
	wetlands []Wetland
	regions  []Region

	districts       []string
	defaultDistrict string
	minYear         int
	maxYear         int
}

// NewStore validates the joined table and wraps it with the wetland and
// region layers.
func NewStore(records []JoinedRecord, wetlands []Wetland, regions []Region) (*Store, error) {
	if len(records) == 0 {
		return nil, ErrEmptyJoin
	}

	s := &Store{
		records:  slices.Clone(records),
		wetlands: slices.Clone(wetlands),
		regions:  slices.Clone(regions),
		minYear:  records[0].Year,
		maxYear:  records[0].Year,
	}

	seen := make(map[string]bool)
	for i, r := range s.records {
		if r.Geometry == nil {
			return nil, fmt.Errorf("joined record %d (%s): %w", i, r.FacilityName, ErrMissingGeometry)
		}
		if r.Cases < 0 {
			return nil, fmt.Errorf("joined record %d (%s): %w", i, r.FacilityName, ErrInvalidCaseCount)
		}
		if !seen[r.District] {
			seen[r.District] = true
			s.districts = append(s.districts, r.District)
		}
		s.minYear = min(s.minYear, r.Year)
		s.maxYear = max(s.maxYear, r.Year)
	}
	for i, w := range s.wetlands {
		if w.Geometry == nil {
			return nil, fmt.Errorf("wetland %d (%s): %w", i, w.Name, ErrMissingGeometry)
		}
	}

	// The default is the first district in table order, the option list is sorted.
	s.defaultDistrict = s.districts[0]
	sort.Strings(s.districts)
	return s, nil
}

// Records returns a copy of the joined table in join order.
func (s *Store) Records() []JoinedRecord { return slices.Clone(s.records) }

// Wetlands returns a copy of the prepared wetland layer.
func (s *Store) Wetlands() []Wetland { return slices.Clone(s.wetlands) }

// Districts returns the distinct districts, sorted.
func (s *Store) Districts() []string { return slices.Clone(s.districts) }

// DefaultDistrict is the district preselected by the dashboard.
func (s *Store) DefaultDistrict() string { return s.defaultDistrict }

// YearRange returns the earliest and latest report years.
func (s *Store) YearRange() (minYear, maxYear int) { return s.minYear, s.maxYear }

// Len is the number of joined records.
func (s *Store) Len() int { return len(s.records) }

// Lookup finds the administrative region containing the lat/lng point.
func (s *Store) Lookup(lat, lng float64) (Region, error) {
	pt := orb.Point{lng, lat}
	for _, r := range s.regions {
		if contains(r.Geometry, pt) {
			return r, nil
		}
	}
	return Region{}, ErrRegionNotFound
}

func contains(g orb.Geometry, pt orb.Point) bool {
	switch t := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(t, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(t, pt)
	default:
		return false
	}
}
