package planar

import (
	"math"

	"github.com/golang/geo/r2"
)

// IntersectionKind classifies the intersection of two segments.
type IntersectionKind int

const (
	NoIntersection IntersectionKind = iota
	PointIntersection
	CollinearIntersection
)

// LineIntersector computes the intersection of two segments. Computed
// intersection points are rounded with PM.
type LineIntersector struct {
	PM PrecisionModel

	kind   IntersectionKind
	pts    [2]r2.Point
	proper bool
	in     [2][2]r2.Point
}

func (li *LineIntersector) HasIntersection() bool { return li.kind != NoIntersection }

// Count is the number of intersection points: 0, 1, or 2 for a collinear
// overlap.
func (li *LineIntersector) Count() int { return int(li.kind) }

func (li *LineIntersector) Point(i int) r2.Point { return li.pts[i] }

// IsProper reports a single intersection point interior to both segments.
func (li *LineIntersector) IsProper() bool { return li.HasIntersection() && li.proper }

// IsInterior reports whether some intersection point is interior to either
// input segment.
func (li *LineIntersector) IsInterior() bool {
	return li.IsInteriorFor(0) || li.IsInteriorFor(1)
}

// IsInteriorFor reports whether some intersection point is not an endpoint
// of input segment i.
func (li *LineIntersector) IsInteriorFor(i int) bool {
	for k := range li.Count() {
		if li.pts[k] != li.in[i][0] && li.pts[k] != li.in[i][1] {
			return true
		}
	}
	return false
}

// Compute intersects segment p1-p2 with q1-q2.
func (li *LineIntersector) Compute(p1, p2, q1, q2 r2.Point) {
	li.in = [2][2]r2.Point{{p1, p2}, {q1, q2}}
	li.kind = li.compute(p1, p2, q1, q2)
}

func (li *LineIntersector) compute(p1, p2, q1, q2 r2.Point) IntersectionKind {
	li.proper = false
	if !envelopesIntersect(p1, p2, q1, q2) {
		return NoIntersection
	}
	pq1 := Orientation(p1, p2, q1)
	pq2 := Orientation(p1, p2, q2)
	if (pq1 > 0 && pq2 > 0) || (pq1 < 0 && pq2 < 0) {
		return NoIntersection
	}
	qp1 := Orientation(q1, q2, p1)
	qp2 := Orientation(q1, q2, p2)
	if (qp1 > 0 && qp2 > 0) || (qp1 < 0 && qp2 < 0) {
		return NoIntersection
	}
	if pq1 == 0 && pq2 == 0 && qp1 == 0 && qp2 == 0 {
		return li.collinear(p1, p2, q1, q2)
	}
	if pq1 == 0 || pq2 == 0 || qp1 == 0 || qp2 == 0 {
		switch {
		case p1 == q1 || p1 == q2:
			li.pts[0] = p1
		case p2 == q1 || p2 == q2:
			li.pts[0] = p2
		case pq1 == 0:
			li.pts[0] = q1
		case pq2 == 0:
			li.pts[0] = q2
		case qp1 == 0:
			li.pts[0] = p1
		default:
			li.pts[0] = p2
		}
		return PointIntersection
	}
	li.proper = true
	li.pts[0] = li.properPoint(p1, p2, q1, q2)
	return PointIntersection
}

func (li *LineIntersector) collinear(p1, p2, q1, q2 r2.Point) IntersectionKind {
	q1InP := inEnvelope(p1, p2, q1)
	q2InP := inEnvelope(p1, p2, q2)
	p1InQ := inEnvelope(q1, q2, p1)
	p2InQ := inEnvelope(q1, q2, p2)
	set := func(a, b r2.Point, single bool) IntersectionKind {
		li.pts[0], li.pts[1] = a, b
		if single {
			return PointIntersection
		}
		return CollinearIntersection
	}
	switch {
	case q1InP && q2InP:
		return set(q1, q2, false)
	case p1InQ && p2InQ:
		return set(p1, p2, false)
	case q1InP && p1InQ:
		return set(q1, p1, q1 == p1 && !q2InP && !p2InQ)
	case q1InP && p2InQ:
		return set(q1, p2, q1 == p2 && !q2InP && !p1InQ)
	case q2InP && p1InQ:
		return set(q2, p1, q2 == p1 && !q1InP && !p2InQ)
	case q2InP && p2InQ:
		return set(q2, p2, q2 == p2 && !q1InP && !p1InQ)
	}
	return NoIntersection
}

func (li *LineIntersector) properPoint(p1, p2, q1, q2 r2.Point) r2.Point {
	pt, ok := LineIntersection(p1, p2, q1, q2)
	if !ok || !inEnvelope(p1, p2, pt) || !inEnvelope(q1, q2, pt) {
		pt = nearestEndpoint(p1, p2, q1, q2)
	}
	return li.PM.MakePointPrecise(pt)
}

// LineIntersection intersects the infinite lines through p1-p2 and q1-q2.
// It reports false when the lines are parallel or the intersection cannot be
// represented in float64.
func LineIntersection(p1, p2, q1, q2 r2.Point) (r2.Point, bool) {
	// Translate to the centre of the overlap of the segment envelopes to keep
	// the determinant well conditioned.
	mid := r2.Point{
		X: (max(min(p1.X, p2.X), min(q1.X, q2.X)) + min(max(p1.X, p2.X), max(q1.X, q2.X))) / 2,
		Y: (max(min(p1.Y, p2.Y), min(q1.Y, q2.Y)) + min(max(p1.Y, p2.Y), max(q1.Y, q2.Y))) / 2,
	}
	a1, a2 := p1.Sub(mid), p2.Sub(mid)
	b1, b2 := q1.Sub(mid), q2.Sub(mid)

	px, py := a1.Y-a2.Y, a2.X-a1.X
	pw := a1.X*a2.Y - a2.X*a1.Y
	qx, qy := b1.Y-b2.Y, b2.X-b1.X
	qw := b1.X*b2.Y - b2.X*b1.Y

	x := py*qw - qy*pw
	y := qx*pw - px*qw
	w := px*qy - qx*py

	xi, yi := x/w, y/w
	if math.IsNaN(xi) || math.IsInf(xi, 0) || math.IsNaN(yi) || math.IsInf(yi, 0) {
		return r2.Point{}, false
	}
	return r2.Point{X: xi + mid.X, Y: yi + mid.Y}, true
}

func nearestEndpoint(p1, p2, q1, q2 r2.Point) r2.Point {
	best := p1
	bestDist := DistanceToSegment(p1, q1, q2)
	for _, c := range []struct{ p, a, b r2.Point }{{p2, q1, q2}, {q1, p1, p2}, {q2, p1, p2}} {
		if d := DistanceToSegment(c.p, c.a, c.b); d < bestDist {
			best, bestDist = c.p, d
		}
	}
	return best
}

func inEnvelope(a, b, q r2.Point) bool {
	return q.X >= min(a.X, b.X) && q.X <= max(a.X, b.X) &&
		q.Y >= min(a.Y, b.Y) && q.Y <= max(a.Y, b.Y)
}

func envelopesIntersect(p1, p2, q1, q2 r2.Point) bool {
	return max(p1.X, p2.X) >= min(q1.X, q2.X) && min(p1.X, p2.X) <= max(q1.X, q2.X) &&
		max(p1.Y, p2.Y) >= min(q1.Y, q2.Y) && min(p1.Y, p2.Y) <= max(q1.Y, q2.Y)
}
