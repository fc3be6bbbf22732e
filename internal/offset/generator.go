package offset

import (
	"math"

	"github.com/golang/geo/r2"

	"geobuffer/internal/planar"
)

// Side selects which side of a directed line is offset.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

const (
	// Offset segment ends closer than this fraction of the distance are
	// treated as one point at outside turns.
	segmentSeparationFactor = 1e-3
	// Same, for the ends of non-intersecting offsets at inside turns.
	insideTurnSnapFactor = 1e-3
	// Consecutive curve vertices closer than this fraction are merged.
	vertexSnapFactor = 1e-6
	// Closing segments at narrow inside turns are 1/closingSegmentFactor of
	// the offset length.
	closingSegmentFactor = 80
)

type segment struct{ p0, p1 r2.Point }

// generator emits the offset segments of one curve. Callers feed the
// vertices of one side with initSide and addNext, add caps and close the
// curve.
type generator struct {
	params   Params
	distance float64
	quantum  float64
	// closing is the closing segment length factor used at narrow inside
	// turns; zero routes through the vertex itself.
	closing float64

	out curve
	li  planar.LineIntersector

	s0, s1, s2       r2.Point
	seg0, seg1       segment
	offset0, offset1 segment
	side             Side

	// narrowConcave is set when an inside turn produced offsets that do
	// not intersect.
	narrowConcave bool
}

func newGenerator(params Params, pm planar.PrecisionModel, distance float64) *generator {
	quad := max(params.QuadrantSegments, 1)
	g := &generator{
		params:   params,
		distance: distance,
		quantum:  math.Pi / 2 / float64(quad),
		out:      curve{pm: pm, minDist: distance * vertexSnapFactor},
		closing:  1,
	}
	if params.QuadrantSegments >= 8 && params.JoinStyle == JoinRound {
		g.closing = closingSegmentFactor
	}
	return g
}

func (g *generator) points() []r2.Point { return g.out.points() }

func (g *generator) closeRing() { g.out.close() }

func (g *generator) addSegments(pts []r2.Point, forward bool) { g.out.addAll(pts, forward) }

func (g *generator) addFirstSegment() { g.out.add(g.offset1.p0) }

func (g *generator) addLastSegment() { g.out.add(g.offset1.p1) }

func (g *generator) initSide(s1, s2 r2.Point, side Side) {
	g.s1, g.s2 = s1, s2
	g.side = side
	g.seg1 = segment{s1, s2}
	g.offset1 = offsetSegment(g.seg1, side, g.distance)
}

// addNext advances the window by one vertex and emits the join at the
// previous vertex.
func (g *generator) addNext(p r2.Point, addStart bool) {
	g.s0, g.s1, g.s2 = g.s1, g.s2, p
	g.seg0 = segment{g.s0, g.s1}
	g.offset0 = offsetSegment(g.seg0, g.side, g.distance)
	g.seg1 = segment{g.s1, g.s2}
	g.offset1 = offsetSegment(g.seg1, g.side, g.distance)

	if g.s1 == g.s2 {
		return
	}
	orient := planar.Orientation(g.s0, g.s1, g.s2)
	outside := (orient == planar.Clockwise && g.side == Left) ||
		(orient == planar.CounterClockwise && g.side == Right)
	switch {
	case orient == planar.Collinear:
		g.addCollinear(addStart)
	case outside:
		g.addOutsideTurn(orient, addStart)
	default:
		g.addInsideTurn(addStart)
	}
}

// addCollinear handles a vertex where the line doubles back on itself. A
// straight continuation needs no join.
func (g *generator) addCollinear(addStart bool) {
	g.li.Compute(g.s0, g.s1, g.s1, g.s2)
	if g.li.Count() < 2 {
		return
	}
	if g.params.JoinStyle == JoinBevel || g.params.JoinStyle == JoinMitre {
		if addStart {
			g.out.add(g.offset0.p1)
		}
		g.out.add(g.offset1.p0)
		return
	}
	g.addCornerFillet(g.s1, g.offset0.p1, g.offset1.p0, planar.Clockwise, g.distance)
}

func (g *generator) addOutsideTurn(orient int, addStart bool) {
	if g.offset0.p1.Sub(g.offset1.p0).Norm() < g.distance*segmentSeparationFactor {
		g.out.add(g.offset0.p1)
		return
	}
	switch g.params.JoinStyle {
	case JoinMitre:
		g.addMitreJoin(g.s1, g.offset0, g.offset1, g.distance)
	case JoinBevel:
		g.addBevelJoin(g.offset0, g.offset1)
	default:
		if addStart {
			g.out.add(g.offset0.p1)
		}
		g.addCornerFillet(g.s1, g.offset0.p1, g.offset1.p0, orient, g.distance)
		g.out.add(g.offset1.p0)
	}
}

// addInsideTurn joins the offsets at their intersection. When they do not
// intersect, the curve is routed back towards the vertex so the spurious
// loop it forms lies inside the buffer and is removed by depth selection.
func (g *generator) addInsideTurn(addStart bool) {
	g.li.Compute(g.offset0.p0, g.offset0.p1, g.offset1.p0, g.offset1.p1)
	if g.li.HasIntersection() {
		g.out.add(g.li.Point(0))
		return
	}
	g.narrowConcave = true
	if g.offset0.p1.Sub(g.offset1.p0).Norm() < g.distance*insideTurnSnapFactor {
		g.out.add(g.offset0.p1)
		return
	}
	g.out.add(g.offset0.p1)
	if g.closing > 0 {
		f := g.closing
		g.out.add(g.offset0.p1.Mul(f).Add(g.s1).Mul(1 / (f + 1)))
		g.out.add(g.offset1.p0.Mul(f).Add(g.s1).Mul(1 / (f + 1)))
	} else {
		g.out.add(g.s1)
	}
	g.out.add(g.offset1.p0)
}

// offsetSegment shifts seg perpendicular to itself by distance on side.
func offsetSegment(seg segment, side Side, distance float64) segment {
	sign := 1.0
	if side == Right {
		sign = -1
	}
	d := seg.p1.Sub(seg.p0)
	l := d.Norm()
	ux := sign * distance * d.X / l
	uy := sign * distance * d.Y / l
	return segment{
		p0: r2.Point{X: seg.p0.X - uy, Y: seg.p0.Y + ux},
		p1: r2.Point{X: seg.p1.X - uy, Y: seg.p1.Y + ux},
	}
}

// addLineEndCap caps the line end at p1, arriving from p0.
func (g *generator) addLineEndCap(p0, p1 r2.Point) {
	seg := segment{p0, p1}
	offL := offsetSegment(seg, Left, g.distance)
	offR := offsetSegment(seg, Right, g.distance)
	angle := planar.Angle(p0, p1)

	switch g.params.EndCapStyle {
	case CapRound:
		g.out.add(offL.p1)
		g.addDirectedFillet(p1, angle+math.Pi/2, angle-math.Pi/2, planar.Clockwise, g.distance)
		g.out.add(offR.p1)
	case CapFlat:
		g.out.add(offL.p1)
		g.out.add(offR.p1)
	case CapSquare:
		ext := r2.Point{X: math.Abs(g.distance) * math.Cos(angle), Y: math.Abs(g.distance) * math.Sin(angle)}
		g.out.add(offL.p1.Add(ext))
		g.out.add(offR.p1.Add(ext))
	}
}

func (g *generator) addMitreJoin(corner r2.Point, offset0, offset1 segment, distance float64) {
	limit := g.params.MitreLimit * distance
	if pt, ok := planar.LineIntersection(offset0.p0, offset0.p1, offset1.p0, offset1.p1); ok && pt.Sub(corner).Norm() <= limit {
		g.out.add(pt)
		return
	}
	if planar.DistanceToSegment(corner, offset0.p1, offset1.p0) >= limit {
		g.addBevelJoin(offset0, offset1)
		return
	}
	g.addLimitedMitreJoin(offset0, offset1, distance, limit)
}

// addLimitedMitreJoin cuts the mitre with a bevel perpendicular to the
// corner bisector, limit away from the corner.
func (g *generator) addLimitedMitreJoin(offset0, offset1 segment, distance, limit float64) {
	corner := g.seg0.p1
	interior := planar.AngleBetweenOriented(g.seg0.p0, corner, g.seg1.p1)
	bisector := planar.NormalizeAngle(planar.Angle(corner, g.seg0.p0) + interior/2)
	outward := planar.NormalizeAngle(bisector + math.Pi)
	mid := project(corner, limit, outward)
	dir := planar.NormalizeAngle(outward + math.Pi/2)
	b0 := project(mid, distance, dir)
	b1 := project(mid, distance, dir+math.Pi)

	i0, ok0 := lineSegmentIntersection(offset0.p0, offset0.p1, b0, b1)
	i1, ok1 := lineSegmentIntersection(offset1.p0, offset1.p1, b0, b1)
	if ok0 && ok1 {
		g.out.add(i0)
		g.out.add(i1)
		return
	}
	g.addBevelJoin(offset0, offset1)
}

func (g *generator) addBevelJoin(offset0, offset1 segment) {
	g.out.add(offset0.p1)
	g.out.add(offset1.p0)
}

// addCornerFillet adds an arc of the given radius around p from p0 to p1,
// turning in direction.
func (g *generator) addCornerFillet(p, p0, p1 r2.Point, direction int, radius float64) {
	start := planar.Angle(p, p0)
	end := planar.Angle(p, p1)
	if direction == planar.Clockwise {
		if start <= end {
			start += 2 * math.Pi
		}
	} else if start >= end {
		start -= 2 * math.Pi
	}
	g.out.add(p0)
	g.addDirectedFillet(p, start, end, direction, radius)
	g.out.add(p1)
}

// addDirectedFillet adds the arc vertices from start towards end, excluding
// the end angle itself.
func (g *generator) addDirectedFillet(p r2.Point, start, end float64, direction int, radius float64) {
	dir := 1.0
	if direction == planar.Clockwise {
		dir = -1
	}
	total := math.Abs(start - end)
	n := int(total/g.quantum + 0.5)
	if n < 1 {
		return
	}
	inc := total / float64(n)
	for i := range n {
		a := start + dir*float64(i)*inc
		g.out.add(r2.Point{X: p.X + radius*math.Cos(a), Y: p.Y + radius*math.Sin(a)})
	}
}

// addCircle adds a full circle around p, starting due east and running
// clockwise.
func (g *generator) addCircle(p r2.Point) {
	g.out.add(r2.Point{X: p.X + g.distance, Y: p.Y})
	g.addDirectedFillet(p, 0, 2*math.Pi, planar.Clockwise, g.distance)
	g.out.close()
}

func (g *generator) addSquare(p r2.Point) {
	d := g.distance
	g.out.add(r2.Point{X: p.X + d, Y: p.Y + d})
	g.out.add(r2.Point{X: p.X + d, Y: p.Y - d})
	g.out.add(r2.Point{X: p.X - d, Y: p.Y - d})
	g.out.add(r2.Point{X: p.X - d, Y: p.Y + d})
	g.out.close()
}

func project(p r2.Point, d, angle float64) r2.Point {
	return r2.Point{X: p.X + d*math.Cos(angle), Y: p.Y + d*math.Sin(angle)}
}

// lineSegmentIntersection intersects the infinite line through l0-l1 with
// the segment s0-s1.
func lineSegmentIntersection(l0, l1, s0, s1 r2.Point) (r2.Point, bool) {
	o0 := planar.Orientation(l0, l1, s0)
	o1 := planar.Orientation(l0, l1, s1)
	switch {
	case o0 == planar.Collinear:
		return s0, true
	case o1 == planar.Collinear:
		return s1, true
	case o0 == o1:
		return r2.Point{}, false
	}
	return planar.LineIntersection(l0, l1, s0, s1)
}
