package buffer

import (
	"testing"

	"github.com/golang/geo/r2"

	"geobuffer/internal/planar"
)

func pts(flat []float64) []r2.Point {
	out := make([]r2.Point, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		out = append(out, pt(flat[i], flat[i+1]))
	}
	return out
}

func TestErodedCompletely(t *testing.T) {
	for _, tc := range []struct {
		name string
		ring []float64
		d    float64
		want bool
	}{
		{"square survives", cwSquare(0, 0, 10, 10), -4, false},
		{"square narrower than twice distance", cwSquare(0, 0, 10, 10), -6, true},
		{"thin rectangle", cwSquare(0, 0, 100, 1), -0.6, true},
		{"positive distance", cwSquare(0, 0, 1, 1), 5, false},
		{"triangle inside incircle", []float64{0, 0, 5, 10, 10, 0, 0, 0}, -3, false},
		{"triangle beyond incircle", []float64{0, 0, 5, 10, 10, 0, 0, 0}, -3.2, true},
		{"degenerate ring", []float64{0, 0, 1, 1}, -1, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := erodedCompletely(pts(tc.ring), tc.d); got != tc.want {
				t.Errorf("erodedCompletely(%v) = %v, want %v", tc.d, got, tc.want)
			}
		})
	}
}

func TestDepthSegmentCompare(t *testing.T) {
	left := depthSegment{p0: pt(0, 0), p1: pt(0, 10)}
	right := depthSegment{p0: pt(5, 0), p1: pt(5, 10)}
	diff(t, -1, left.compare(right))
	diff(t, 1, right.compare(left))

	// overlapping x ranges fall back to orientation
	a := depthSegment{p0: pt(0, 0), p1: pt(4, 10)}
	b := depthSegment{p0: pt(2, 0), p1: pt(6, 10)}
	diff(t, -1, a.compare(b))
	diff(t, 1, b.compare(a))
}

func TestContainingShellPicksSmallest(t *testing.T) {
	ring := func(flat []float64) *edgeRing {
		p := pts(flat)
		return &edgeRing{pts: p, env: planar.Envelope(p)}
	}
	outer := ring(cwSquare(0, 0, 10, 10))
	inner := ring(cwSquare(2, 2, 8, 8))
	other := ring(cwSquare(20, 0, 30, 10))
	hole := ring(ccwSquare(4, 4, 6, 6))

	if got := containingShell(hole, []*edgeRing{outer, other, inner}); got != inner {
		t.Error("containingShell did not pick the innermost shell")
	}
	if got := containingShell(ring(ccwSquare(40, 0, 41, 1)), []*edgeRing{outer, inner}); got != nil {
		t.Errorf("containingShell found %v for an uncontained hole", got.pts)
	}
}

func TestStageString(t *testing.T) {
	diff(t, "initial", stageInitial.String())
	diff(t, "result extracted", stageResultExtracted.String())
	diff(t, "stage(42)", stage(42).String())
}

func TestPolygonsAssembly(t *testing.T) {
	shell := func(holes ...[]float64) *edgeRing {
		er := &edgeRing{pts: pts(cwSquare(0, 0, 10, 10))}
		for _, h := range holes {
			er.holes = append(er.holes, &edgeRing{pts: pts(h), hole: true})
		}
		return er
	}

	pb := newPolygonBuilder(nil)
	pb.shells = []*edgeRing{shell(ccwSquare(2, 2, 4, 4)), shell()}
	got, err := pb.polygons()
	if err != nil {
		t.Fatal(err)
	}
	if got.NumPolygons() != 2 {
		t.Fatalf("got %d polygons, want 2", got.NumPolygons())
	}
	diff(t, 2, got.Polygon(0).NumLinearRings())
	diff(t, ccwSquare(2, 2, 4, 4), got.Polygon(0).LinearRing(1).FlatCoords())

	for _, tc := range []struct {
		name string
		hole []float64
	}{
		{"collapsed", []float64{2, 2, 3, 3, 2, 2}},
		{"open", []float64{2, 2, 4, 2, 4, 4, 2, 4}},
		{"empty", nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			pb := newPolygonBuilder(nil)
			pb.shells = []*edgeRing{shell(tc.hole)}
			if _, err := pb.polygons(); !planar.IsTopologyError(err) {
				t.Errorf("polygons() = %v, want a topology error", err)
			}
		})
	}
}
