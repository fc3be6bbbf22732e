package topo

import (
	"cmp"
	"slices"

	"github.com/golang/geo/r2"

	"geobuffer/internal/planar"
)

// unsetDepth marks a side depth that has not been assigned.
const unsetDepth = -999

// none is the null index into the graph arenas.
const none = -1

// DirectedEdge is one direction of an Edge. Directed edges live in the
// graph's arena: edge k has its forward view at index 2k and its reverse
// view at 2k+1, so Sym is always the index with the low bit flipped.
type DirectedEdge struct {
	Edge    int
	Forward bool
	Sym     int
	// Node is the origin node.
	Node int
	// P0 is the origin point, P1 the next point along the edge.
	P0, P1   r2.Point
	Quadrant int
	// Label is the edge label as seen in this direction.
	Label Label

	depth    [3]int
	Visited  bool
	InResult bool

	// Result ring linking. Next and NextMin are directed edge indices,
	// EdgeRing and MinEdgeRing are ring ids assigned by the caller.
	Next        int
	NextMin     int
	EdgeRing    int
	MinEdgeRing int
}

func (de *DirectedEdge) dx() float64 { return de.P1.X - de.P0.X }

func (de *DirectedEdge) dy() float64 { return de.P1.Y - de.P0.Y }

// Depth returns the depth on side p; it is unset until assigned.
func (de *DirectedEdge) Depth(p Position) int { return de.depth[p] }

// SetDepth assigns the depth on side p. Reassigning a different depth is a
// topology error.
func (de *DirectedEdge) SetDepth(p Position, depth int) error {
	if de.depth[p] != unsetDepth && de.depth[p] != depth {
		return planar.NewTopologyErrorAt("assigned depths do not match", de.P0)
	}
	de.depth[p] = depth
	return nil
}

// Node is a graph vertex. Star lists the outgoing directed edges in
// counter-clockwise order starting from the positive x-axis.
type Node struct {
	Pt      r2.Point
	Star    []int
	Label   Label
	Visited bool
}

// Graph is a planar graph held in arenas: nodes, edges and directed edges
// refer to each other by index only.
type Graph struct {
	Edges    []*Edge
	DirEdges []DirectedEdge
	Nodes    []Node

	nodeAt map[r2.Point]int
}

func NewGraph() *Graph {
	return &Graph{nodeAt: make(map[r2.Point]int)}
}

// AddEdges inserts both directions of every edge and sorts the stars of
// the affected nodes. Edges need at least two distinct leading and
// trailing points.
func (g *Graph) AddEdges(edges []*Edge) {
	touched := map[int]bool{}
	for _, e := range edges {
		k := len(g.Edges)
		g.Edges = append(g.Edges, e)
		n := len(e.Pts) - 1
		fwd := g.newDirectedEdge(k, true, e.Pts[0], e.Pts[1], e.Label)
		rev := g.newDirectedEdge(k, false, e.Pts[n], e.Pts[n-1], e.Label.Flipped())
		g.DirEdges[fwd].Sym = rev
		g.DirEdges[rev].Sym = fwd
		touched[g.DirEdges[fwd].Node] = true
		touched[g.DirEdges[rev].Node] = true
	}
	for n := range touched {
		g.sortStar(n)
	}
}

func (g *Graph) newDirectedEdge(edge int, forward bool, p0, p1 r2.Point, label Label) int {
	i := len(g.DirEdges)
	node := g.addNode(p0)
	g.DirEdges = append(g.DirEdges, DirectedEdge{
		Edge:        edge,
		Forward:     forward,
		Node:        node,
		P0:          p0,
		P1:          p1,
		Quadrant:    planar.Quadrant(p1.X-p0.X, p1.Y-p0.Y),
		Label:       label,
		depth:       [3]int{0, unsetDepth, unsetDepth},
		Next:        none,
		NextMin:     none,
		EdgeRing:    none,
		MinEdgeRing: none,
	})
	g.Nodes[node].Star = append(g.Nodes[node].Star, i)
	return i
}

func (g *Graph) addNode(p r2.Point) int {
	if n, ok := g.nodeAt[p]; ok {
		return n
	}
	n := len(g.Nodes)
	g.Nodes = append(g.Nodes, Node{Pt: p, Label: NullLabel()})
	g.nodeAt[p] = n
	return n
}

// NodeAt returns the node at p.
func (g *Graph) NodeAt(p r2.Point) (int, bool) {
	n, ok := g.nodeAt[p]
	return n, ok
}

func (g *Graph) DE(i int) *DirectedEdge { return &g.DirEdges[i] }

// EdgeOf returns the undirected edge of directed edge i.
func (g *Graph) EdgeOf(i int) *Edge { return g.Edges[g.DirEdges[i].Edge] }

// ToNode is the node a directed edge points to.
func (g *Graph) ToNode(i int) int { return g.DirEdges[g.DirEdges[i].Sym].Node }

func (g *Graph) sortStar(n int) {
	slices.SortStableFunc(g.Nodes[n].Star, func(a, b int) int {
		return g.compareDirection(&g.DirEdges[a], &g.DirEdges[b])
	})
}

// compareDirection orders directed edges by angle: first by quadrant, then
// by the exact orientation of one direction against the other.
func (g *Graph) compareDirection(a, b *DirectedEdge) int {
	if a.dx() == b.dx() && a.dy() == b.dy() {
		return 0
	}
	if c := cmp.Compare(a.Quadrant, b.Quadrant); c != 0 {
		return c
	}
	return planar.Orientation(b.P0, b.P1, a.P1)
}

// SetEdgeDepths assigns depth to side p of directed edge i and derives the
// opposite side from the edge's depth delta.
func (g *Graph) SetEdgeDepths(i int, p Position, depth int) error {
	de := &g.DirEdges[i]
	delta := g.Edges[de.Edge].DepthDelta
	if !de.Forward {
		delta = -delta
	}
	if p == Left {
		delta = -delta
	}
	if err := de.SetDepth(p, depth); err != nil {
		return err
	}
	return de.SetDepth(p.Opposite(), depth+delta)
}
