package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

const (
	fieldWetlandName = "Nom"
	fieldWetlandArea = "Area_1"

	// wgs84 is the geographic reference every layer is served in (EPSG:4326).
	wgs84 = "+proj=longlat +ellps=WGS84 +datum=WGS84 +no_defs"
)

// RawWetland is a wetland record in its native coordinate reference.
type RawWetland struct {
	Name     string
	Area     string
	Geometry geom.Geom
}

// ReadWetlands loads the wetland layer and prepares it for serving.
func ReadWetlands(path string) ([]Wetland, error) {
	rows, err := readShapefile(path, fieldWetlandName, fieldWetlandArea)
	if err != nil {
		return nil, err
	}

	src, err := readProjection(path)
	if err != nil {
		return nil, err
	}
	ct, err := ToWGS84(src)
	if err != nil {
		return nil, err
	}

	raw := make([]RawWetland, 0, len(rows))
	for _, row := range rows {
		raw = append(raw, RawWetland{
			Name:     row.Fields[fieldWetlandName],
			Area:     row.Fields[fieldWetlandArea],
			Geometry: row.Geometry,
		})
	}
	return PrepareWetlands(raw, ct)
}

// ToWGS84 returns a transformer from src to geographic WGS84 coordinates.
func ToWGS84(src *proj.SR) (proj.Transformer, error) {
	dst, err := proj.Parse(wgs84)
	if err != nil {
		return nil, fmt.Errorf("parse wgs84: %w", err)
	}
	ct, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("build wgs84 transform: %w", err)
	}
	return ct, nil
}

// PrepareWetlands reprojects raw wetlands with ct, drops records without a
// geometry and copies the area attribute into AreaKm2.
func PrepareWetlands(raw []RawWetland, ct proj.Transformer) ([]Wetland, error) {
	out := make([]Wetland, 0, len(raw))
	for i, w := range raw {
		if w.Geometry == nil {
			continue
		}

		projected, err := w.Geometry.Transform(ct)
		if err != nil {
			return nil, fmt.Errorf("reproject wetland %d (%s): %w", i, w.Name, err)
		}
		g, err := toOrb(projected)
		if err != nil {
			return nil, fmt.Errorf("wetland %d (%s): %w", i, w.Name, err)
		}

		var area *float64
		if w.Area != "" {
			v, err := strconv.ParseFloat(w.Area, 64)
			if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
				err = errors.New("not a finite number")
			}
			if err != nil {
				return nil, fmt.Errorf("wetland %d (%s): invalid %s %q: %w", i, w.Name, fieldWetlandArea, w.Area, err)
			}
			area = &v
		}

		out = append(out, Wetland{Name: w.Name, Geometry: g, AreaKm2: area})
	}
	return out, nil
}
