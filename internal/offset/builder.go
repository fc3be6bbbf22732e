package offset

import (
	"math"

	"github.com/golang/geo/r2"

	"geobuffer/internal/planar"
)

// Builder produces raw offset curves for points, lines and rings. Curve
// vertices are rounded to PM.
type Builder struct {
	Params Params
	PM     planar.PrecisionModel
}

func NewBuilder(params Params, pm planar.PrecisionModel) *Builder {
	return &Builder{Params: params, PM: pm}
}

// LineCurve returns the closed curve around an open line, or nil when the
// offset of a line at this distance is empty. A single point yields a
// circle or square according to the end cap style. In single-sided mode the
// sign of distance picks the side: positive is left, negative right.
func (b *Builder) LineCurve(pts []r2.Point, distance float64) []r2.Point {
	if b.lineOffsetEmpty(distance) || len(pts) == 0 {
		return nil
	}
	d := math.Abs(distance)
	g := newGenerator(b.Params, b.PM, d)
	switch {
	case len(pts) == 1:
		b.pointCurve(pts[0], g)
	case b.Params.SingleSided:
		b.singleSidedCurve(pts, distance < 0, g)
	default:
		b.lineCurve(pts, g)
	}
	return g.points()
}

// RingCurve returns the offset of a closed ring on the given side. A zero
// distance returns a copy of the ring. Rings with fewer than three points
// are offset as lines.
func (b *Builder) RingCurve(pts []r2.Point, side Side, distance float64) []r2.Point {
	if len(pts) <= 2 {
		return b.LineCurve(pts, distance)
	}
	if distance == 0 {
		return append([]r2.Point(nil), pts...)
	}
	g := newGenerator(b.Params, b.PM, distance)
	b.ringCurve(pts, side, g)
	return g.points()
}

func (b *Builder) lineOffsetEmpty(distance float64) bool {
	return distance == 0 || (distance < 0 && !b.Params.SingleSided)
}

func (b *Builder) tolerance(distance float64) float64 {
	return distance * b.Params.SimplifyFactor
}

func (b *Builder) pointCurve(p r2.Point, g *generator) {
	switch b.Params.EndCapStyle {
	case CapRound:
		g.addCircle(p)
	case CapSquare:
		g.addSquare(p)
	}
}

func (b *Builder) lineCurve(pts []r2.Point, g *generator) {
	tol := b.tolerance(g.distance)

	left := Simplify(pts, tol)
	n1 := len(left) - 1
	g.initSide(left[0], left[1], Left)
	for i := 2; i <= n1; i++ {
		g.addNext(left[i], true)
	}
	g.addLastSegment()
	g.addLineEndCap(left[n1-1], left[n1])

	// The right side is the left side of the reversed line.
	right := Simplify(pts, -tol)
	n2 := len(right) - 1
	g.initSide(right[n2], right[n2-1], Left)
	for i := n2 - 2; i >= 0; i-- {
		g.addNext(right[i], true)
	}
	g.addLastSegment()
	g.addLineEndCap(right[1], right[0])

	g.closeRing()
}

func (b *Builder) singleSidedCurve(pts []r2.Point, rightSide bool, g *generator) {
	tol := b.tolerance(g.distance)
	if rightSide {
		g.addSegments(pts, true)
		simp := Simplify(pts, -tol)
		n := len(simp) - 1
		g.initSide(simp[n], simp[n-1], Left)
		g.addFirstSegment()
		for i := n - 2; i >= 0; i-- {
			g.addNext(simp[i], true)
		}
	} else {
		g.addSegments(pts, false)
		simp := Simplify(pts, tol)
		n := len(simp) - 1
		g.initSide(simp[0], simp[1], Left)
		g.addFirstSegment()
		for i := 2; i <= n; i++ {
			g.addNext(simp[i], true)
		}
	}
	g.addLastSegment()
	g.closeRing()
}

func (b *Builder) ringCurve(pts []r2.Point, side Side, g *generator) {
	tol := b.tolerance(g.distance)
	if side == Right {
		tol = -tol
	}
	simp := Simplify(pts, tol)
	n := len(simp) - 1
	g.initSide(simp[n-1], simp[0], side)
	for i := 1; i <= n; i++ {
		g.addNext(simp[i], i != 1)
	}
	g.closeRing()
}
