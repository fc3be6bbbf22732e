package topo

import (
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom/xy/location"

	"geobuffer/internal/planar"
)

// Locator classifies a point against source geometry i. It resolves the
// labels that cannot be derived from neighbouring edges.
type Locator interface {
	Locate(i int, p r2.Point) location.Type
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(i int, p r2.Point) location.Type

func (f LocatorFunc) Locate(i int, p r2.Point) location.Type { return f(i, p) }

// ComputeLabelling completes the directed edge labels at every node: side
// locations propagate around each star, and remaining unknowns come from
// loc. Two edges that disagree about the area between them are a topology
// error.
func (g *Graph) ComputeLabelling(loc Locator) error {
	for n := range g.Nodes {
		if err := g.labelStar(n, loc); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) labelStar(n int, loc Locator) error {
	star := g.Nodes[n].Star
	for i := range 2 {
		if err := g.propagateSideLabels(n, i); err != nil {
			return err
		}
	}

	// An edge of a geometry that collapsed to a line leaves the sides of
	// that geometry undetermined at this node. They are taken to be
	// exterior rather than located; this is an approximation.
	var collapsed [2]bool
	for _, d := range star {
		l := g.DirEdges[d].Label
		for i := range 2 {
			if l.IsLineOf(i) && l.Get(i, On) == location.Boundary {
				collapsed[i] = true
			}
		}
	}
	for _, d := range star {
		de := &g.DirEdges[d]
		for i := range 2 {
			if !de.Label.IsAnyNull(i) {
				continue
			}
			l := location.Exterior
			if !collapsed[i] {
				l = loc.Locate(i, de.P0)
			}
			de.Label.SetAllIfNull(i, l)
		}
	}

	node := &g.Nodes[n]
	node.Label = NullLabel()
	for _, d := range star {
		el := g.EdgeOf(d).Label
		for i := range 2 {
			if l := el.Get(i, On); l == location.Interior || l == location.Boundary {
				node.Label.Set(i, On, location.Interior)
			}
		}
	}
	return nil
}

// propagateSideLabels walks the star of node n counter-clockwise carrying
// the location of the area of geometry i between consecutive edges.
func (g *Graph) propagateSideLabels(n, i int) error {
	star := g.Nodes[n].Star
	start := location.None
	for _, d := range star {
		l := g.DirEdges[d].Label
		if l.IsAreaOf(i) && l.Get(i, Left) != location.None {
			start = l.Get(i, Left)
		}
	}
	if start == location.None {
		return nil
	}
	curr := start
	for _, d := range star {
		de := &g.DirEdges[d]
		l := &de.Label
		if l.Get(i, On) == location.None {
			l.Set(i, On, curr)
		}
		if !l.IsAreaOf(i) {
			continue
		}
		left, right := l.Get(i, Left), l.Get(i, Right)
		switch {
		case right != location.None:
			if right != curr {
				return planar.NewTopologyErrorAt("side location conflict", de.P0)
			}
			if left == location.None {
				return planar.NewTopologyErrorAt("found single null side", de.P0)
			}
			curr = left
		case left != location.None:
			return planar.NewTopologyErrorAt("found single null side", de.P0)
		default:
			l.Set(i, Right, curr)
			l.Set(i, Left, curr)
		}
	}
	return nil
}
