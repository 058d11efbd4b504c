package dataset

import (
	"errors"
	"testing"

	"github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shift is a stand-in projection that offsets every coordinate.
func shift(dx, dy float64) func(x, y float64) (float64, float64, error) {
	return func(x, y float64) (float64, float64, error) {
		return x + dx, y + dy, nil
	}
}

func rawSquare() geom.Polygon {
	return geom.Polygon{{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}}
}

func TestPrepareWetlands(t *testing.T) {
	raw := []RawWetland{
		{Name: "Nyabugogo", Area: "1.2345", Geometry: rawSquare()},
		{Name: "Dropped", Area: "3", Geometry: nil},
		{Name: "Rugezi", Area: "", Geometry: rawSquare()},
	}

	out, err := PrepareWetlands(raw, shift(29, -2))
	require.NoError(t, err)
	require.Len(t, out, 2, "null geometries are dropped")

	assert.Equal(t, "Nyabugogo", out[0].Name)
	require.NotNil(t, out[0].AreaKm2)
	assert.Equal(t, 1.2345, *out[0].AreaKm2)
	assert.Nil(t, out[1].AreaKm2, "blank area stays empty")

	poly, ok := out[0].Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.Equal(t, orb.Point{29, -2}, poly[0][0], "coordinates are reprojected")
}

func TestPrepareWetlands_Errors(t *testing.T) {
	for _, area := range []string{"wide", "NaN", "Inf", "-Inf"} {
		_, err := PrepareWetlands([]RawWetland{{Name: "Bad", Area: area, Geometry: rawSquare()}}, shift(0, 0))
		assert.Error(t, err, area)
	}

	failing := func(x, y float64) (float64, float64, error) { return 0, 0, errors.New("out of zone") }
	_, err := PrepareWetlands([]RawWetland{{Name: "Far", Area: "1", Geometry: rawSquare()}}, failing)
	assert.Error(t, err)
}
