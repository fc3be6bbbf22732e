package buffer

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/twpayne/go-geom"

	"geobuffer/internal/offset"
	"geobuffer/internal/planar"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func pt(x, y float64) r2.Point { return r2.Point{X: x, Y: y} }

func point(x, y float64) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{x, y})
}

func line(flat ...float64) *geom.LineString {
	return geom.NewLineStringFlat(geom.XY, flat)
}

func polygon(rings ...[]float64) *geom.Polygon {
	var flat []float64
	var ends []int
	for _, r := range rings {
		flat = append(flat, r...)
		ends = append(ends, len(flat))
	}
	return geom.NewPolygonFlat(geom.XY, flat, ends)
}

// cwSquare is a clockwise square ring with corners (x0,y0) and (x1,y1).
func cwSquare(x0, y0, x1, y1 float64) []float64 {
	return []float64{x0, y0, x0, y1, x1, y1, x1, y0, x0, y0}
}

func ccwSquare(x0, y0, x1, y1 float64) []float64 {
	return []float64{x0, y0, x1, y0, x1, y1, x0, y1, x0, y0}
}

func ringPts(lr *geom.LinearRing) []r2.Point {
	return planar.NewSeq(lr.Layout(), lr.FlatCoords()).Points()
}

// area sums shell areas minus hole areas.
func area(mp *geom.MultiPolygon) float64 {
	a := 0.0
	for i := range mp.NumPolygons() {
		p := mp.Polygon(i)
		for j := range p.NumLinearRings() {
			s := math.Abs(planar.SignedArea(ringPts(p.LinearRing(j))))
			if j == 0 {
				a += s
			} else {
				a -= s
			}
		}
	}
	return a
}

func bounds(t geom.T) []float64 {
	b := t.Bounds()
	return []float64{b.Min(0), b.Max(0), b.Min(1), b.Max(1)}
}

func mustBuffer(t *testing.T, g geom.T, d float64, params offset.Params, opts ...Option) *geom.MultiPolygon {
	t.Helper()
	got, err := Buffer(g, d, params, opts...)
	if err != nil {
		t.Fatalf("Buffer(%v) = %v", d, err)
	}
	return got
}
