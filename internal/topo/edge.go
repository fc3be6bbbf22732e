package topo

import (
	"encoding/binary"
	"math"

	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom/xy/location"
)

// Edge is an undirected noded polyline of the graph.
type Edge struct {
	Pts   []r2.Point
	Label Label
	// DepthDelta is the change in depth crossing the edge from its right
	// side to its left side.
	DepthDelta int
}

func NewEdge(pts []r2.Point, label Label) *Edge {
	return &Edge{Pts: pts, Label: label}
}

// IsPointwiseEqual reports whether e and o have the same points in the
// same order.
func (e *Edge) IsPointwiseEqual(o *Edge) bool {
	if len(e.Pts) != len(o.Pts) {
		return false
	}
	for i := range e.Pts {
		if e.Pts[i] != o.Pts[i] {
			return false
		}
	}
	return true
}

// IsInteriorAreaEdge reports an edge with the interior of geometry 0 on
// both sides. Such an edge is what remains of an area that collapsed to
// zero width.
func (e *Edge) IsInteriorAreaEdge() bool {
	l := e.Label
	return l.IsAreaOf(0) && l.Get(0, Left) == location.Interior && l.Get(0, Right) == location.Interior
}

// DepthDelta returns the depth change implied by the area label of
// geometry 0: +1 with the interior on the left, -1 with it on the right.
func DepthDelta(l Label) int {
	left, right := l.Get(0, Left), l.Get(0, Right)
	switch {
	case left == location.Interior && right == location.Exterior:
		return 1
	case left == location.Exterior && right == location.Interior:
		return -1
	}
	return 0
}

// EdgeList is a set of edges in which no two edges have the same points in
// either direction.
type EdgeList struct {
	edges []*Edge
	index map[string]*Edge
}

func (l *EdgeList) Edges() []*Edge { return l.edges }

// FindEqual returns the edge with the same points as e, in either order.
func (l *EdgeList) FindEqual(e *Edge) *Edge {
	if l.index == nil {
		return nil
	}
	if o, ok := l.index[key(e.Pts, true)]; ok {
		return o
	}
	return l.index[key(e.Pts, false)]
}

func (l *EdgeList) Add(e *Edge) {
	if l.index == nil {
		l.index = make(map[string]*Edge)
	}
	l.edges = append(l.edges, e)
	l.index[key(e.Pts, true)] = e
}

// InsertUnique adds e, or merges it into an equal edge already in the
// list. A merged edge takes the union of the labels, with e's label
// flipped when it runs the other way, and the sum of the depth deltas.
func (l *EdgeList) InsertUnique(e *Edge) {
	existing := l.FindEqual(e)
	if existing == nil {
		e.DepthDelta = DepthDelta(e.Label)
		l.Add(e)
		return
	}
	merge := e.Label
	if !existing.IsPointwiseEqual(e) {
		merge = merge.Flipped()
	}
	existing.Label.Merge(merge)
	existing.DepthDelta += DepthDelta(merge)
}

func key(pts []r2.Point, forward bool) string {
	b := make([]byte, 0, 16*len(pts))
	for i := range pts {
		p := pts[i]
		if !forward {
			p = pts[len(pts)-1-i]
		}
		b = binary.LittleEndian.AppendUint64(b, bits(p.X))
		b = binary.LittleEndian.AppendUint64(b, bits(p.Y))
	}
	return string(b)
}

// bits maps -0 and +0 to the same key.
func bits(v float64) uint64 {
	if v == 0 {
		return 0
	}
	return math.Float64bits(v)
}
