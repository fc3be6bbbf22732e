package planar

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"github.com/twpayne/go-geom/xy/orientation"
)

const (
	Clockwise        = -1
	Collinear        = 0
	CounterClockwise = 1
)

// Orientation reports on which side of the directed line p1->p2 the point q
// lies: CounterClockwise (left), Clockwise (right) or Collinear. The test is
// exact.
func Orientation(p1, p2, q r2.Point) int {
	switch xy.OrientationIndex(coord(p1), coord(p2), coord(q)) {
	case orientation.CounterClockwise:
		return CounterClockwise
	case orientation.Clockwise:
		return Clockwise
	}
	return Collinear
}

func coord(p r2.Point) geom.Coord { return geom.Coord{p.X, p.Y} }

// SignedArea is the shoelace area of a closed ring, positive when the ring
// runs counter-clockwise.
func SignedArea(ring []r2.Point) float64 {
	if len(ring) < 3 {
		return 0
	}
	o := ring[0]
	sum := 0.0
	for i := 1; i < len(ring)-1; i++ {
		sum += ring[i].Sub(o).Cross(ring[i+1].Sub(o))
	}
	return sum / 2
}

func IsCCW(ring []r2.Point) bool { return SignedArea(ring) > 0 }

// DistanceToSegment is the distance from p to the closed segment a-b.
func DistanceToSegment(p, a, b r2.Point) float64 {
	if a == b {
		return p.Sub(a).Norm()
	}
	ab := b.Sub(a)
	r := p.Sub(a).Dot(ab) / ab.Dot(ab)
	switch {
	case r <= 0:
		return p.Sub(a).Norm()
	case r >= 1:
		return p.Sub(b).Norm()
	}
	return math.Abs(ab.Cross(p.Sub(a))) / ab.Norm()
}

// Angle is the angle of the vector p0->p1 from the positive x-axis.
func Angle(p0, p1 r2.Point) float64 {
	return math.Atan2(p1.Y-p0.Y, p1.X-p0.X)
}

// NormalizeAngle maps a to (-Pi, Pi].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// AngleBetweenOriented is the signed angle from tail->tip1 to tail->tip2,
// in (-Pi, Pi]. Positive is counter-clockwise.
func AngleBetweenOriented(tip1, tail, tip2 r2.Point) float64 {
	d := Angle(tail, tip2) - Angle(tail, tip1)
	switch {
	case d <= -math.Pi:
		return d + 2*math.Pi
	case d > math.Pi:
		return d - 2*math.Pi
	}
	return d
}

// Quadrants of a direction vector, counter-clockwise from the positive
// x-axis.
const (
	NE = iota
	NW
	SW
	SE
)

// Quadrant returns the quadrant of the direction (dx, dy). A zero component
// counts as non-negative.
func Quadrant(dx, dy float64) int {
	if dx >= 0 {
		if dy >= 0 {
			return NE
		}
		return SE
	}
	if dy >= 0 {
		return NW
	}
	return SW
}
