package dataset

import (
	"time"

	"github.com/paulmach/orb"
)

// CaseRecord is one facility report as read from the case source.
type CaseRecord struct {
	FacilityName string
	FacilityKey  string
	RawDate      string
	Cases        int
}

// Region is the smallest administrative unit of the boundary layer.
type Region struct {
	District  string
	Sector    string
	SectorKey string
	Geometry  orb.Geometry
}

// JoinedRecord is a case report matched to its sector geometry.
type JoinedRecord struct {
	District     string
	Sector       string
	FacilityName string
	Date         time.Time
	Year         int
	Month        int
	Cases        int
	Geometry     orb.Geometry
}

// Wetland is a prepared wetland polygon in EPSG:4326.
type Wetland struct {
	Name     string
	Geometry orb.Geometry
	// AreaKm2 is copied from the source Area_1 attribute; nil when the
	// attribute is blank.
	AreaKm2 *float64
}
