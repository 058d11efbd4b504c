package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
)

// shapeRow is one decoded shapefile record with the requested attributes.
type shapeRow struct {
	Geometry geom.Geom
	Fields   map[string]string
}

// readShapefile decodes every record of path, keeping only fields.
func readShapefile(path string, fields ...string) ([]shapeRow, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile %s: %w", path, err)
	}
	defer d.Close()

	var rows []shapeRow
	for {
		g, values, more := d.DecodeRowFields(fields...)
		if !more {
			break
		}
		for k, v := range values {
			values[k] = cleanAttribute(v)
		}
		rows = append(rows, shapeRow{Geometry: g, Fields: values})
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("decode shapefile %s: %w", path, err)
	}
	return rows, nil
}

// readProjection parses the .prj sidecar of a shapefile.
func readProjection(shpPath string) (*proj.SR, error) {
	prj := strings.TrimSuffix(shpPath, filepath.Ext(shpPath)) + ".prj"
	b, err := os.ReadFile(prj)
	if err != nil {
		return nil, fmt.Errorf("read projection: %w", err)
	}
	sr, err := proj.Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("parse projection %s: %w", prj, err)
	}
	return sr, nil
}

// cleanAttribute strips the space and NUL padding of fixed-width dbf values.
func cleanAttribute(v string) string {
	return strings.Trim(v, " \x00")
}
