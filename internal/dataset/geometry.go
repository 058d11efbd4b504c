package dataset

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/paulmach/orb"
)

// toOrb converts a decoded shapefile geometry into an orb polygon or
// multipolygon.
//
// Shapefiles store every ring of a multi-part polygon in one record: outer
// rings are clockwise and holes counter-clockwise. Each clockwise ring opens a
// new polygon and the holes that follow attach to it.
func toOrb(g geom.Geom) (orb.Geometry, error) {
	var paths []geom.Path
	switch t := g.(type) {
	case nil:
		return nil, ErrMissingGeometry
	case geom.Polygon:
		paths = t
	case *geom.Polygon:
		if t == nil {
			return nil, ErrMissingGeometry
		}
		paths = *t
	case geom.MultiPolygon:
		for _, p := range t {
			paths = append(paths, p...)
		}
	case *geom.MultiPolygon:
		if t == nil {
			return nil, ErrMissingGeometry
		}
		for _, p := range *t {
			paths = append(paths, p...)
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedGeometry, g)
	}

	var mp orb.MultiPolygon
	for _, path := range paths {
		ring := toRing(path)
		if len(ring) < 4 {
			continue
		}
		if signedArea(ring) <= 0 || len(mp) == 0 {
			mp = append(mp, orb.Polygon{ring})
			continue
		}
		last := len(mp) - 1
		mp[last] = append(mp[last], ring)
	}

	switch len(mp) {
	case 0:
		return nil, ErrMissingGeometry
	case 1:
		return mp[0], nil
	default:
		return mp, nil
	}
}

func toRing(path geom.Path) orb.Ring {
	ring := make(orb.Ring, 0, len(path)+1)
	for _, p := range path {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// signedArea is the shoelace area; negative for clockwise rings.
func signedArea(r orb.Ring) float64 {
	var sum float64
	for i := 0; i < len(r)-1; i++ {
		sum += r[i][0]*r[i+1][1] - r[i+1][0]*r[i][1]
	}
	return sum / 2
}
