package buffer

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy/location"

	"geobuffer/internal/planar"
	"geobuffer/internal/topo"
)

// edgeRing is a closed ring of result directed edges. Rings that are
// clockwise become shells, counter-clockwise ones holes.
type edgeRing struct {
	edges []int
	pts   []r2.Point
	env   r2.Rect
	hole  bool
	shell *edgeRing
	holes []*edgeRing
}

// ringWalk describes how a kind of ring is traversed: next follows the
// ring and mark records ring id on a directed edge, returning the id it
// held before.
type ringWalk struct {
	next func(de *topo.DirectedEdge) int
	mark func(de *topo.DirectedEdge, id int) int
}

var (
	maximalWalk = ringWalk{
		next: func(de *topo.DirectedEdge) int { return de.Next },
		mark: func(de *topo.DirectedEdge, id int) int {
			old := de.EdgeRing
			de.EdgeRing = id
			return old
		},
	}
	minimalWalk = ringWalk{
		next: func(de *topo.DirectedEdge) int { return de.NextMin },
		mark: func(de *topo.DirectedEdge, id int) int {
			old := de.MinEdgeRing
			de.MinEdgeRing = id
			return old
		},
	}
)

// polygonBuilder assembles result polygons from the directed edges marked
// as in the result.
type polygonBuilder struct {
	g         *topo.Graph
	shells    []*edgeRing
	freeHoles []*edgeRing

	maxRings, minRings int
}

func newPolygonBuilder(g *topo.Graph) *polygonBuilder {
	return &polygonBuilder{g: g}
}

// add links and builds the rings of one subgraph.
func (pb *polygonBuilder) add(sg *subgraph) error {
	for _, n := range sg.nodes {
		if err := pb.g.LinkResult(n); err != nil {
			return err
		}
	}
	var maximal []*edgeRing
	for _, i := range sg.dirEdges {
		de := pb.g.DE(i)
		if !de.InResult || !de.Label.IsArea() || de.EdgeRing >= 0 {
			continue
		}
		er, err := pb.buildRing(i, pb.maxRings, maximalWalk)
		if err != nil {
			return err
		}
		pb.maxRings++
		maximal = append(maximal, er)
	}
	for k, er := range maximal {
		id := pb.maxRings - len(maximal) + k
		if pb.maxNodeDegree(er, id) <= 2 {
			pb.sort(er)
			continue
		}
		if err := pb.splitMinimal(er, id); err != nil {
			return err
		}
	}
	return nil
}

func (pb *polygonBuilder) sort(er *edgeRing) {
	if er.hole {
		pb.freeHoles = append(pb.freeHoles, er)
	} else {
		pb.shells = append(pb.shells, er)
	}
}

// splitMinimal breaks a maximal ring that touches itself into minimal
// rings. At most one of them may be a shell; the others are its holes.
func (pb *polygonBuilder) splitMinimal(er *edgeRing, id int) error {
	for _, i := range er.edges {
		if err := pb.g.LinkMinimal(pb.g.DE(i).Node, id); err != nil {
			return err
		}
	}
	var minimal []*edgeRing
	for _, i := range er.edges {
		if pb.g.DE(i).MinEdgeRing >= 0 {
			continue
		}
		m, err := pb.buildRing(i, pb.minRings, minimalWalk)
		if err != nil {
			return err
		}
		pb.minRings++
		minimal = append(minimal, m)
	}
	var shell *edgeRing
	for _, m := range minimal {
		if m.hole {
			continue
		}
		if shell != nil {
			return planar.NewTopologyErrorAt("found two shells in minimal edge ring list", m.pts[0])
		}
		shell = m
	}
	if shell == nil {
		pb.freeHoles = append(pb.freeHoles, minimal...)
		return nil
	}
	for _, m := range minimal {
		if m.hole {
			m.shell = shell
			shell.holes = append(shell.holes, m)
		}
	}
	pb.shells = append(pb.shells, shell)
	return nil
}

func (pb *polygonBuilder) buildRing(start, id int, walk ringWalk) (*edgeRing, error) {
	er := &edgeRing{}
	i := start
	for {
		if i < 0 {
			return nil, planar.NewTopologyErrorAt("found null directed edge", pb.g.DE(start).P0)
		}
		de := pb.g.DE(i)
		if !de.Label.IsArea() {
			return nil, planar.NewTopologyErrorAt("ring edge is not an area edge", de.P0)
		}
		if walk.mark(de, id) == id {
			return nil, planar.NewTopologyErrorAt("directed edge visited twice during ring building", de.P0)
		}
		er.edges = append(er.edges, i)
		er.addPoints(pb.g.EdgeOf(i).Pts, de.Forward)
		i = walk.next(de)
		if i == start {
			break
		}
	}
	er.env = planar.Envelope(er.pts)
	er.hole = len(er.pts) >= 4 && planar.IsCCW(er.pts)
	return er, nil
}

func (er *edgeRing) addPoints(pts []r2.Point, forward bool) {
	first := len(er.pts) == 0
	if forward {
		k := 1
		if first {
			k = 0
		}
		er.pts = append(er.pts, pts[k:]...)
		return
	}
	k := len(pts) - 2
	if first {
		k = len(pts) - 1
	}
	for ; k >= 0; k-- {
		er.pts = append(er.pts, pts[k])
	}
}

func (pb *polygonBuilder) maxNodeDegree(er *edgeRing, id int) int {
	d := 0
	for _, i := range er.edges {
		d = max(d, pb.g.OutgoingDegree(pb.g.DE(i).Node, id))
	}
	return d
}

// placeFreeHoles assigns every hole not yet owned to the smallest shell
// containing it.
func (pb *polygonBuilder) placeFreeHoles() error {
	for _, h := range pb.freeHoles {
		if h.shell != nil {
			continue
		}
		s := containingShell(h, pb.shells)
		if s == nil {
			return planar.NewTopologyErrorAt("unable to assign hole to a shell", h.pts[0])
		}
		h.shell = s
		s.holes = append(s.holes, h)
	}
	return nil
}

func containingShell(hole *edgeRing, shells []*edgeRing) *edgeRing {
	var best *edgeRing
	for _, s := range shells {
		if s.env == hole.env || !s.env.Contains(hole.env) {
			continue
		}
		p, ok := pointNotIn(hole.pts, s.pts)
		if !ok || planar.LocateInRing(p, s.pts) == location.Exterior {
			continue
		}
		if best == nil || best.env.Contains(s.env) {
			best = s
		}
	}
	return best
}

func pointNotIn(pts, ring []r2.Point) (r2.Point, bool) {
	in := make(map[r2.Point]bool, len(ring))
	for _, p := range ring {
		in[p] = true
	}
	for _, p := range pts {
		if !in[p] {
			return p, true
		}
	}
	return r2.Point{}, false
}

// polygons returns the shells with their holes in build order.
func (pb *polygonBuilder) polygons() (*geom.MultiPolygon, error) {
	mp := geom.NewMultiPolygon(geom.XY)
	for _, s := range pb.shells {
		p := geom.NewPolygon(geom.XY)
		for _, r := range append([]*edgeRing{s}, s.holes...) {
			lr, err := linearRing(r.pts)
			if err != nil {
				return nil, err
			}
			if err := p.Push(lr); err != nil {
				return nil, fmt.Errorf("polygon assembly: %w", err)
			}
		}
		if err := mp.Push(p); err != nil {
			return nil, fmt.Errorf("polygon assembly: %w", err)
		}
	}
	return mp, nil
}

// linearRing rejects rings that are open or have fewer than four points.
func linearRing(pts []r2.Point) (*geom.LinearRing, error) {
	n := len(pts)
	if n == 0 {
		return nil, planar.NewTopologyError("empty ring")
	}
	if n < 4 || pts[0] != pts[n-1] {
		return nil, planar.NewTopologyErrorAt(fmt.Sprintf("invalid ring of %d points", n), pts[0])
	}
	return geom.NewLinearRingFlat(geom.XY, planar.SeqFromPoints(pts).FlatCoords()), nil
}
