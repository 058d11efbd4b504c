package dataset

import (
	"testing"

	"github.com/paulmach/orb"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// square returns a closed clockwise unit-ish square with its lower-left at (x, y).
func square(x, y, size float64) orb.Polygon {
	return orb.Polygon{{
		{x, y}, {x, y + size}, {x + size, y + size}, {x + size, y}, {x, y},
	}}
}
