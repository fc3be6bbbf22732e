package buffer

import (
	"math"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom/xy/location"

	"geobuffer/internal/planar"
	"geobuffer/internal/topo"
)

// validateResult rebuilds a graph from the result boundary, with the input
// as second geometry, and checks that the side labels around every node
// agree. For purely polygonal input buffered on a grid finer than the
// distance it also checks that the boundary lies on the expected side of
// the input: outside it when growing and inside it when shrinking.
func validateResult(g *topo.Graph, in *input, distance float64, pm planar.PrecisionModel) error {
	var edges []*topo.Edge
	for i := range g.DirEdges {
		de := g.DE(i)
		if !de.InResult {
			continue
		}
		pts := g.EdgeOf(i).Pts
		if !de.Forward {
			pts = slices.Clone(pts)
			slices.Reverse(pts)
		}
		edges = append(edges, topo.NewEdge(pts, topo.AreaLabel(0, location.Boundary, location.Exterior, location.Interior)))
	}
	if len(edges) == 0 {
		return nil
	}
	rg := topo.NewGraph()
	rg.AddEdges(edges)

	al := newAreaLocator(in)
	err := rg.ComputeLabelling(topo.LocatorFunc(func(i int, p r2.Point) location.Type {
		if i == 1 {
			return al.locate(p)
		}
		return location.Exterior
	}))
	if err != nil {
		return err
	}

	if distance == 0 || !in.hasArea() || len(in.points) > 0 || len(in.lines) > 0 {
		return nil
	}
	if pm.GridSize() >= math.Abs(distance)/2 {
		return nil
	}
	wrong := location.Interior
	if distance < 0 {
		wrong = location.Exterior
	}
	for n := range rg.Nodes {
		star := rg.Nodes[n].Star
		if len(star) == 0 {
			continue
		}
		if rg.DE(star[0]).Label.Get(1, topo.On) == wrong {
			return planar.NewTopologyErrorAt("result boundary on wrong side of input", rg.Nodes[n].Pt)
		}
	}
	return nil
}
