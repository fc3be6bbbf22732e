package buffer

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"

	"geobuffer/internal/planar"
)

// ErrUnsupportedGeometry is returned for geometry types the engine cannot
// buffer.
var ErrUnsupportedGeometry = errors.New("buffer: unsupported geometry type")

// input is a geometry flattened into its point, line and polygon parts, in
// traversal order. Repeated points are removed from every part.
type input struct {
	points   []r2.Point
	lines    [][]r2.Point
	polygons [][][]r2.Point
	env      r2.Rect
}

func newInput(g geom.T) (*input, error) {
	in := &input{env: r2.EmptyRect()}
	if err := in.add(g); err != nil {
		return nil, err
	}
	return in, nil
}

func (in *input) add(g geom.T) error {
	if g == nil {
		return nil
	}
	switch g := g.(type) {
	case *geom.Point:
		if len(g.FlatCoords()) == 0 {
			return nil
		}
		p := planar.NewSeq(g.Layout(), g.FlatCoords()).Point(0)
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil
		}
		in.points = append(in.points, p)
		in.grow([]r2.Point{p})
	case *geom.MultiPoint:
		for i := range g.NumPoints() {
			if err := in.add(g.Point(i)); err != nil {
				return err
			}
		}
	case *geom.LineString:
		in.addLine(planar.NewSeq(g.Layout(), g.FlatCoords()))
	case *geom.LinearRing:
		in.addLine(planar.NewSeq(g.Layout(), g.FlatCoords()))
	case *geom.MultiLineString:
		for i := range g.NumLineStrings() {
			in.addLine(planar.NewSeq(g.Layout(), g.LineString(i).FlatCoords()))
		}
	case *geom.Polygon:
		in.addPolygon(g)
	case *geom.MultiPolygon:
		for i := range g.NumPolygons() {
			in.addPolygon(g.Polygon(i))
		}
	case *geom.GeometryCollection:
		for _, c := range g.Geoms() {
			if err := in.add(c); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedGeometry, g)
	}
	return nil
}

func (in *input) addLine(s planar.Seq) {
	pts := s.RemoveRepeated().Points()
	if len(pts) == 0 {
		return
	}
	in.lines = append(in.lines, pts)
	in.grow(pts)
}

func (in *input) addPolygon(p *geom.Polygon) {
	n := p.NumLinearRings()
	if n == 0 {
		return
	}
	rings := make([][]r2.Point, 0, n)
	for i := range n {
		lr := p.LinearRing(i)
		pts := planar.NewSeq(lr.Layout(), lr.FlatCoords()).RemoveRepeated().Points()
		if i == 0 && len(pts) == 0 {
			return
		}
		rings = append(rings, pts)
	}
	in.polygons = append(in.polygons, rings)
	in.grow(rings[0])
}

func (in *input) grow(pts []r2.Point) {
	in.env = in.env.Union(planar.Envelope(pts))
}

func (in *input) empty() bool {
	return len(in.points) == 0 && len(in.lines) == 0 && len(in.polygons) == 0
}

// hasArea reports whether any polygon part has a shell.
func (in *input) hasArea() bool { return len(in.polygons) > 0 }
