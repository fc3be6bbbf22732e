package buffer

import (
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom/xy/location"

	"geobuffer/internal/planar"
)

// areaLocator classifies points against the polygonal parts of an input.
// Points and lines have no interior and are ignored.
type areaLocator struct {
	polygons [][][]r2.Point
	envs     []r2.Rect
}

func newAreaLocator(in *input) *areaLocator {
	l := &areaLocator{polygons: in.polygons}
	for _, p := range in.polygons {
		l.envs = append(l.envs, planar.Envelope(p[0]))
	}
	return l
}

// locate returns the first non-exterior location over the polygons.
func (l *areaLocator) locate(p r2.Point) location.Type {
	for i, rings := range l.polygons {
		if !l.envs[i].ContainsPoint(p) {
			continue
		}
		if loc := locateInPolygon(p, rings); loc != location.Exterior {
			return loc
		}
	}
	return location.Exterior
}

func locateInPolygon(p r2.Point, rings [][]r2.Point) location.Type {
	if len(rings[0]) < 4 {
		return location.Exterior
	}
	if loc := planar.LocateInRing(p, rings[0]); loc != location.Interior {
		return loc
	}
	for _, hole := range rings[1:] {
		if len(hole) < 4 {
			continue
		}
		switch planar.LocateInRing(p, hole) {
		case location.Interior:
			return location.Exterior
		case location.Boundary:
			return location.Boundary
		}
	}
	return location.Interior
}
