package buffer

import (
	"cmp"
	"slices"

	"github.com/golang/geo/r2"

	"geobuffer/internal/planar"
	"geobuffer/internal/topo"
)

// subgraph is a connected component of the buffer graph. Components are
// processed from right to left so that the depth outside each one can be
// found from the components already done.
type subgraph struct {
	g        *topo.Graph
	nodes    []int
	dirEdges []int

	// rightmost is the coordinate with the largest x and rightEdge a
	// directed edge through it whose right side is outside the component.
	rightmost r2.Point
	rightEdge int
	env       r2.Rect
}

// subgraphs partitions g into connected components, ordered by decreasing
// rightmost x.
func subgraphs(g *topo.Graph) ([]*subgraph, error) {
	var out []*subgraph
	for n := range g.Nodes {
		if g.Nodes[n].Visited {
			continue
		}
		sg := &subgraph{g: g}
		sg.addReachable(n)
		if err := sg.findRightmostEdge(); err != nil {
			return nil, err
		}
		out = append(out, sg)
	}
	slices.SortStableFunc(out, func(a, b *subgraph) int {
		return cmp.Compare(b.rightmost.X, a.rightmost.X)
	})
	return out, nil
}

func (sg *subgraph) addReachable(start int) {
	stack := []int{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &sg.g.Nodes[n]
		if node.Visited {
			continue
		}
		node.Visited = true
		sg.nodes = append(sg.nodes, n)
		for _, i := range node.Star {
			sg.dirEdges = append(sg.dirEdges, i)
			if to := sg.g.ToNode(i); !sg.g.Nodes[to].Visited {
				stack = append(stack, to)
			}
		}
	}
	var pts []r2.Point
	for _, i := range sg.dirEdges {
		if sg.g.DE(i).Forward {
			pts = append(pts, sg.g.EdgeOf(i).Pts...)
		}
	}
	sg.env = planar.Envelope(pts)
}

// findRightmostEdge locates the vertex with the largest x over the forward
// edges and picks the directed edge at it whose right side faces outwards.
func (sg *subgraph) findRightmostEdge() error {
	minDe, minIndex := -1, -1
	var minPt r2.Point
	scan := func(i int) {
		pts := sg.g.EdgeOf(i).Pts
		for k := 0; k < len(pts)-1; k++ {
			if minDe < 0 || pts[k].X > minPt.X {
				minDe, minIndex, minPt = i, k, pts[k]
			}
		}
	}
	for _, i := range sg.dirEdges {
		if sg.g.DE(i).Forward {
			scan(i)
		}
	}
	if minDe < 0 {
		return planar.NewTopologyError("subgraph has no edges")
	}

	if minIndex == 0 {
		de, err := sg.g.RightmostEdge(sg.g.DE(minDe).Node)
		if err != nil {
			return err
		}
		if de < 0 {
			return planar.NewTopologyErrorAt("no edge at rightmost node", minPt)
		}
		minDe = de
		if !sg.g.DE(de).Forward {
			minDe = sg.g.DE(de).Sym
			minIndex = len(sg.g.EdgeOf(minDe).Pts) - 1
		}
	} else {
		minIndex = rightmostSegmentAtVertex(sg.g.EdgeOf(minDe).Pts, minIndex)
	}

	side, ok := rightmostSide(sg.g.EdgeOf(minDe).Pts, minIndex)
	if !ok {
		return planar.NewTopologyErrorAt("unable to determine rightmost side", minPt)
	}
	sg.rightmost = minPt
	sg.rightEdge = minDe
	if side == topo.Left {
		sg.rightEdge = sg.g.DE(minDe).Sym
	}
	return nil
}

// rightmostSegmentAtVertex chooses between the segments on either side of
// interior vertex i. When both lie above or both below the vertex the one
// further clockwise from the vertical is taken.
func rightmostSegmentAtVertex(pts []r2.Point, i int) int {
	p, prev, next := pts[i], pts[i-1], pts[i+1]
	o := planar.Orientation(p, next, prev)
	switch {
	case prev.Y < p.Y && next.Y < p.Y && o == planar.CounterClockwise:
		return i - 1
	case prev.Y > p.Y && next.Y > p.Y && o == planar.Clockwise:
		return i - 1
	}
	return i
}

func rightmostSide(pts []r2.Point, i int) (topo.Position, bool) {
	if side, ok := segmentSide(pts, i); ok {
		return side, true
	}
	return segmentSide(pts, i-1)
}

// segmentSide reports which side of segment i faces the +x direction: an
// upward segment has the outside on its right.
func segmentSide(pts []r2.Point, i int) (topo.Position, bool) {
	if i < 0 || i+1 >= len(pts) || pts[i].Y == pts[i+1].Y {
		return topo.On, false
	}
	if pts[i].Y < pts[i+1].Y {
		return topo.Right, true
	}
	return topo.Left, true
}

// computeDepths assigns depths to every directed edge of the component,
// starting from outsideDepth on the right of the rightmost edge and
// spreading breadth-first over the nodes.
func (sg *subgraph) computeDepths(outsideDepth int) error {
	g := sg.g
	for _, i := range sg.dirEdges {
		g.DE(i).Visited = false
	}
	start := sg.rightEdge
	if err := g.SetEdgeDepths(start, topo.Right, outsideDepth); err != nil {
		return err
	}
	if err := sg.copySymDepths(start); err != nil {
		return err
	}

	startNode := g.DE(start).Node
	seen := map[int]bool{startNode: true}
	queue := []int{startNode}
	g.DE(start).Visited = true
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if err := sg.computeNodeDepth(n); err != nil {
			return err
		}
		for _, i := range g.Nodes[n].Star {
			sym := g.DE(i).Sym
			if g.DE(sym).Visited {
				continue
			}
			if adj := g.DE(sym).Node; !seen[adj] {
				seen[adj] = true
				queue = append(queue, adj)
			}
		}
	}
	return nil
}

func (sg *subgraph) computeNodeDepth(n int) error {
	g := sg.g
	start := -1
	for _, i := range g.Nodes[n].Star {
		if g.DE(i).Visited || g.DE(g.DE(i).Sym).Visited {
			start = i
			break
		}
	}
	if start < 0 {
		return planar.NewTopologyErrorAt("unable to find edge to compute depths", g.Nodes[n].Pt)
	}
	if err := g.ComputeDepths(start); err != nil {
		return err
	}
	for _, i := range g.Nodes[n].Star {
		g.DE(i).Visited = true
		if err := sg.copySymDepths(i); err != nil {
			return err
		}
	}
	return nil
}

func (sg *subgraph) copySymDepths(i int) error {
	de := sg.g.DE(i)
	sym := sg.g.DE(de.Sym)
	if err := sym.SetDepth(topo.Left, de.Depth(topo.Right)); err != nil {
		return err
	}
	return sym.SetDepth(topo.Right, de.Depth(topo.Left))
}

// findResultEdges marks the directed edges that bound the buffer: inside
// on the right, outside on the left, and not a collapsed interior edge.
func (sg *subgraph) findResultEdges() {
	for _, i := range sg.dirEdges {
		de := sg.g.DE(i)
		if de.Depth(topo.Right) >= 1 && de.Depth(topo.Left) <= 0 && !sg.g.EdgeOf(i).IsInteriorAreaEdge() {
			de.InResult = true
		}
	}
}
