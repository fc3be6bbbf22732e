package buffer

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom/xy/location"

	"geobuffer/internal/noding"
	"geobuffer/internal/offset"
	"geobuffer/internal/planar"
	"geobuffer/internal/topo"
)

// curveSet collects the raw offset curves of an input geometry. Each curve
// is a segment string whose ID indexes its label: the curve is the boundary
// of the buffer, with the buffer interior on one side.
type curveSet struct {
	distance float64
	builder  *offset.Builder

	curves []*noding.SegmentString
	labels []topo.Label
}

func newCurveSet(in *input, distance float64, params offset.Params, pm planar.PrecisionModel) *curveSet {
	cs := &curveSet{distance: distance, builder: offset.NewBuilder(params, pm)}
	for _, p := range in.points {
		cs.addPoint(p)
	}
	for _, l := range in.lines {
		cs.addLine(l)
	}
	for _, p := range in.polygons {
		cs.addPolygon(p)
	}
	return cs
}

func (cs *curveSet) addCurve(pts []r2.Point, left, right location.Type) {
	if len(pts) < 2 {
		return
	}
	id := len(cs.curves)
	cs.curves = append(cs.curves, noding.NewSegmentString(pts, id))
	cs.labels = append(cs.labels, topo.AreaLabel(0, location.Boundary, left, right))
}

func (cs *curveSet) addPoint(p r2.Point) {
	if cs.distance <= 0 {
		return
	}
	cs.addCurve(cs.builder.LineCurve([]r2.Point{p}, cs.distance), location.Exterior, location.Interior)
}

// addLine offsets an open line. A closed line of at least four points is
// offset as a ring on both sides so that no end caps are generated, except
// in single-sided mode.
func (cs *curveSet) addLine(pts []r2.Point) {
	if cs.distance == 0 || (cs.distance < 0 && !cs.builder.Params.SingleSided) {
		return
	}
	if isRing(pts) && !cs.builder.Params.SingleSided {
		cs.addRingSide(pts, cs.distance, offset.Left, location.Exterior, location.Interior)
		cs.addRingSide(pts, cs.distance, offset.Right, location.Interior, location.Exterior)
		return
	}
	cs.addCurve(cs.builder.LineCurve(pts, cs.distance), location.Exterior, location.Interior)
}

// addPolygon offsets the shell and holes of a polygon. A negative distance
// offsets inwards; holes are offset on the side opposite to the shell.
func (cs *curveSet) addPolygon(rings [][]r2.Point) {
	d, side := cs.distance, offset.Left
	if d < 0 {
		d, side = -d, offset.Right
	}
	shell := rings[0]
	if cs.distance < 0 && erodedCompletely(shell, cs.distance) {
		return
	}
	if cs.distance <= 0 && len(shell) < 3 {
		return
	}
	cs.addRingSide(shell, d, side, location.Exterior, location.Interior)
	for _, hole := range rings[1:] {
		if cs.distance > 0 && erodedCompletely(hole, -cs.distance) {
			continue
		}
		cs.addRingSide(hole, d, side.Opposite(), location.Interior, location.Exterior)
	}
}

// addRingSide adds the offset of a ring on one side. The locations are
// given for a clockwise ring; a counter-clockwise ring swaps them together
// with the side.
func (cs *curveSet) addRingSide(ring []r2.Point, d float64, side offset.Side, cwLeft, cwRight location.Type) {
	if d == 0 && len(ring) < 4 {
		return
	}
	left, right := cwLeft, cwRight
	if len(ring) >= 4 && planar.IsCCW(ring) {
		left, right = cwRight, cwLeft
		side = side.Opposite()
	}
	cs.addCurve(cs.builder.RingCurve(ring, side, d), left, right)
}

func isRing(pts []r2.Point) bool {
	return len(pts) >= 4 && pts[0] == pts[len(pts)-1]
}

// erodedCompletely reports whether buffering ring by a negative distance
// certainly leaves nothing.
func erodedCompletely(ring []r2.Point, distance float64) bool {
	if len(ring) < 4 {
		return distance < 0
	}
	if len(ring) == 4 {
		return triangleErodedCompletely(ring, distance)
	}
	env := planar.Envelope(ring)
	minDim := min(env.X.Length(), env.Y.Length())
	return distance < 0 && 2*math.Abs(distance) > minDim
}

// triangleErodedCompletely compares the buffer distance with the radius of
// the incircle.
func triangleErodedCompletely(tri []r2.Point, distance float64) bool {
	p0, p1, p2 := tri[0], tri[1], tri[2]
	l0, l1, l2 := p1.Sub(p2).Norm(), p0.Sub(p2).Norm(), p0.Sub(p1).Norm()
	perimeter := l0 + l1 + l2
	if perimeter == 0 {
		return true
	}
	centre := p0.Mul(l0).Add(p1.Mul(l1)).Add(p2.Mul(l2)).Mul(1 / perimeter)
	return planar.DistanceToSegment(centre, p0, p1) < math.Abs(distance)
}
