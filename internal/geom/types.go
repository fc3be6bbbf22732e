// Package geom loads geometries from the file formats the viewer accepts
// and flattens them into plain coordinate lists for rendering.
package geom

import (
	"math"

	gogeom "github.com/twpayne/go-geom"
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has a positive extent on both axes.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Expand grows the box by d on every side.
func (b BBox) Expand(d float64) BBox {
	return BBox{MinX: b.MinX - d, MinY: b.MinY - d, MaxX: b.MaxX + d, MaxY: b.MaxY + d}
}

// Union returns the smallest box covering b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Diagonal is the length of the box diagonal.
func (b BBox) Diagonal() float64 {
	return math.Hypot(b.MaxX-b.MinX, b.MaxY-b.MinY)
}

// BBoxOf returns the bounds of g in its first two dimensions.
func BBoxOf(g gogeom.T) BBox {
	bounds := g.Bounds()
	if bounds.IsEmpty() {
		return BBox{}
	}
	return BBox{MinX: bounds.Min(0), MinY: bounds.Min(1), MaxX: bounds.Max(0), MaxY: bounds.Max(1)}
}

// Data is a minimal geometry container for rendering
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox
}

// Empty reports whether d holds no coordinates.
func (d Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

// DataOf flattens g into points, lines and polygons. Linear rings outside a
// polygon are treated as lines.
func DataOf(g gogeom.T) Data {
	var d Data
	if g == nil {
		return d
	}
	d.add(g)
	if !d.Empty() {
		d.BBox = BBoxOf(g)
	}
	return d
}

func (d *Data) add(g gogeom.T) {
	switch g := g.(type) {
	case *gogeom.Point:
		if len(g.FlatCoords()) > 0 {
			d.Points = append(d.Points, [2]float64{g.X(), g.Y()})
		}
	case *gogeom.MultiPoint:
		for i := range g.NumPoints() {
			d.add(g.Point(i))
		}
	case *gogeom.LineString:
		d.Lines = append(d.Lines, coords(g.FlatCoords(), g.Stride()))
	case *gogeom.LinearRing:
		d.Lines = append(d.Lines, coords(g.FlatCoords(), g.Stride()))
	case *gogeom.MultiLineString:
		for i := range g.NumLineStrings() {
			d.add(g.LineString(i))
		}
	case *gogeom.Polygon:
		var poly [][][2]float64
		for i := range g.NumLinearRings() {
			r := g.LinearRing(i)
			poly = append(poly, coords(r.FlatCoords(), r.Stride()))
		}
		if len(poly) > 0 {
			d.Polygons = append(d.Polygons, poly)
		}
	case *gogeom.MultiPolygon:
		for i := range g.NumPolygons() {
			d.add(g.Polygon(i))
		}
	case *gogeom.GeometryCollection:
		for _, c := range g.Geoms() {
			d.add(c)
		}
	}
}

func coords(flat []float64, stride int) [][2]float64 {
	out := make([][2]float64, 0, len(flat)/stride)
	for i := 0; i+1 < len(flat); i += stride {
		out = append(out, [2]float64{flat[i], flat[i+1]})
	}
	return out
}
