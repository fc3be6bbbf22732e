package planar

import (
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom/xy/location"
)

// LocateInRing classifies p against the closed ring by counting crossings of
// a ray running from p towards +x.
func LocateInRing(p r2.Point, ring []r2.Point) location.Type {
	crossings := 0
	for i := 1; i < len(ring); i++ {
		p1, p2 := ring[i], ring[i-1]
		if p1.X < p.X && p2.X < p.X {
			continue
		}
		if p == p2 {
			return location.Boundary
		}
		if p1.Y == p.Y && p2.Y == p.Y {
			if p.X >= min(p1.X, p2.X) && p.X <= max(p1.X, p2.X) {
				return location.Boundary
			}
			continue
		}
		if (p1.Y > p.Y && p2.Y <= p.Y) || (p2.Y > p.Y && p1.Y <= p.Y) {
			o := Orientation(p1, p2, p)
			if o == Collinear {
				return location.Boundary
			}
			if p2.Y < p1.Y {
				o = -o
			}
			if o == CounterClockwise {
				crossings++
			}
		}
	}
	if crossings%2 == 1 {
		return location.Interior
	}
	return location.Exterior
}
