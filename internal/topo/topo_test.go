package topo

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/twpayne/go-geom/xy/location"

	"geobuffer/internal/planar"
)

const (
	iN = location.Interior
	bD = location.Boundary
	eX = location.Exterior
	nO = location.None
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func pt(x, y float64) r2.Point { return r2.Point{X: x, Y: y} }

func TestLabelFlipAndMerge(t *testing.T) {
	l := AreaLabel(0, bD, iN, eX)
	diff(t, "A:ibe B:---", l.String())
	diff(t, "A:ebi B:---", l.Flipped().String())
	if !l.IsAnyNull(1) || !l.IsNull(1) || l.IsAnyNull(0) {
		t.Errorf("null checks wrong for %v", l)
	}

	m := LineLabel(1, iN)
	m.Merge(l)
	diff(t, "A:ibe B:-i-", m.String())

	l.SetAllIfNull(1, eX)
	diff(t, "A:ibe B:eee", l.String())
}

func TestDepthDelta(t *testing.T) {
	tests := []struct {
		l    Label
		want int
	}{
		{AreaLabel(0, bD, iN, eX), 1},
		{AreaLabel(0, bD, eX, iN), -1},
		{AreaLabel(0, bD, iN, iN), 0},
		{LineLabel(0, iN), 0},
	}
	for _, tt := range tests {
		if got := DepthDelta(tt.l); got != tt.want {
			t.Errorf("DepthDelta(%v) = %d, want %d", tt.l, got, tt.want)
		}
	}
}

func TestInsertUnique(t *testing.T) {
	var l EdgeList
	l.InsertUnique(NewEdge([]r2.Point{pt(0, 0), pt(1, 0), pt(2, 1)}, AreaLabel(0, bD, iN, eX)))
	// same points, same direction: deltas add
	l.InsertUnique(NewEdge([]r2.Point{pt(0, 0), pt(1, 0), pt(2, 1)}, AreaLabel(0, bD, iN, eX)))
	if len(l.Edges()) != 1 || l.Edges()[0].DepthDelta != 2 {
		t.Fatalf("got %d edges, delta %d", len(l.Edges()), l.Edges()[0].DepthDelta)
	}
	// reversed, with the interior on the same geometric side, still adds
	l.InsertUnique(NewEdge([]r2.Point{pt(2, 1), pt(1, 0), pt(0, 0)}, AreaLabel(0, bD, eX, iN)))
	if len(l.Edges()) != 1 || l.Edges()[0].DepthDelta != 3 {
		t.Fatalf("got %d edges, delta %d", len(l.Edges()), l.Edges()[0].DepthDelta)
	}
	l.InsertUnique(NewEdge([]r2.Point{pt(2, 1), pt(1, 0), pt(0, 0)}, AreaLabel(0, bD, iN, eX)))
	if l.Edges()[0].DepthDelta != 2 {
		t.Fatalf("got delta %d, want 2", l.Edges()[0].DepthDelta)
	}
	l.InsertUnique(NewEdge([]r2.Point{pt(0, 0), pt(1, 0)}, AreaLabel(0, bD, iN, eX)))
	if len(l.Edges()) != 2 {
		t.Fatalf("got %d edges, want 2", len(l.Edges()))
	}
}

func TestStarOrder(t *testing.T) {
	g := NewGraph()
	o := pt(0, 0)
	dirs := []r2.Point{pt(0, -1), pt(-1, 0), pt(0, 1), pt(1, 1), pt(1, 0)}
	var edges []*Edge
	for _, d := range dirs {
		edges = append(edges, NewEdge([]r2.Point{o, d}, AreaLabel(0, bD, eX, eX)))
	}
	g.AddEdges(edges)
	n, ok := g.NodeAt(o)
	if !ok {
		t.Fatal("no node at origin")
	}
	var got []r2.Point
	for _, i := range g.Nodes[n].Star {
		got = append(got, g.DE(i).P1)
	}
	diff(t, []r2.Point{pt(1, 0), pt(1, 1), pt(0, 1), pt(-1, 0), pt(0, -1)}, got)

	for i := range g.DirEdges {
		de := g.DE(i)
		if g.DE(de.Sym).Sym != i || de.Sym != i^1 {
			t.Errorf("bad sym link at %d", i)
		}
	}
}

func TestRightmostEdge(t *testing.T) {
	g := NewGraph()
	g.AddEdges([]*Edge{
		NewEdge([]r2.Point{pt(10, 0), pt(0, 5)}, NullLabel()),
		NewEdge([]r2.Point{pt(10, 0), pt(0, 1)}, NullLabel()),
	})
	n, _ := g.NodeAt(pt(10, 0))
	got, err := g.RightmostEdge(n)
	if err != nil {
		t.Fatal(err)
	}
	// both edges point into the northern half: the first counter-clockwise
	// from the positive x-axis is taken
	diff(t, pt(0, 5), g.DE(got).P1)

	g = NewGraph()
	g.AddEdges([]*Edge{
		NewEdge([]r2.Point{pt(10, 0), pt(0, 0)}, NullLabel()),
		NewEdge([]r2.Point{pt(10, 0), pt(0, -3)}, NullLabel()),
	})
	n, _ = g.NodeAt(pt(10, 0))
	got, err = g.RightmostEdge(n)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, pt(0, -3), g.DE(got).P1)
}

// square builds the clockwise unit square with its interior on the right
// of every edge.
func square(labels ...Label) *Graph {
	pts := []r2.Point{pt(0, 0), pt(0, 1), pt(1, 1), pt(1, 0), pt(0, 0)}
	var l EdgeList
	for i := range 4 {
		lbl := AreaLabel(0, bD, eX, iN)
		if i < len(labels) {
			lbl = labels[i]
		}
		l.InsertUnique(NewEdge([]r2.Point{pts[i], pts[i+1]}, lbl))
	}
	g := NewGraph()
	g.AddEdges(l.Edges())
	return g
}

func TestComputeDepths(t *testing.T) {
	g := square()
	// forward view of the first edge, (0,0) -> (0,1)
	if err := g.SetEdgeDepths(0, Left, 0); err != nil {
		t.Fatal(err)
	}
	diff(t, 1, g.DE(0).Depth(Right))
	if err := g.ComputeDepths(0); err != nil {
		t.Fatal(err)
	}
	// reverse view of the last edge, (0,0) -> (1,0)
	de := g.DE(7)
	diff(t, []int{0, 1}, []int{de.Depth(Right), de.Depth(Left)})
}

func TestComputeDepthsMismatch(t *testing.T) {
	g := square(AreaLabel(0, bD, eX, iN), AreaLabel(0, bD, eX, iN), AreaLabel(0, bD, eX, iN), AreaLabel(0, bD, iN, eX))
	if err := g.SetEdgeDepths(0, Left, 0); err != nil {
		t.Fatal(err)
	}
	if err := g.ComputeDepths(0); !planar.IsTopologyError(err) {
		t.Fatalf("got %v, want a topology error", err)
	}
}

func TestSetDepthConflict(t *testing.T) {
	g := square()
	if err := g.DE(0).SetDepth(Left, 2); err != nil {
		t.Fatal(err)
	}
	if err := g.DE(0).SetDepth(Left, 2); err != nil {
		t.Fatalf("same depth twice: %v", err)
	}
	if err := g.DE(0).SetDepth(Left, 3); !planar.IsTopologyError(err) {
		t.Fatalf("got %v, want a topology error", err)
	}
}

func TestLinkResult(t *testing.T) {
	g := square()
	for i := 0; i < len(g.DirEdges); i += 2 {
		g.DE(i).InResult = true
	}
	for n := range g.Nodes {
		if err := g.LinkResult(n); err != nil {
			t.Fatal(err)
		}
	}
	// forward views link around the square
	for i := 0; i < len(g.DirEdges); i += 2 {
		diff(t, (i+2)%8, g.DE(i).Next)
	}
	for i := 1; i < len(g.DirEdges); i += 2 {
		diff(t, -1, g.DE(i).Next)
	}

	for i := 0; i < len(g.DirEdges); i += 2 {
		g.DE(i).EdgeRing = 0
	}
	for n := range g.Nodes {
		diff(t, 1, g.OutgoingDegree(n, 0))
		if err := g.LinkMinimal(n, 0); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < len(g.DirEdges); i += 2 {
		diff(t, (i+2)%8, g.DE(i).NextMin)
	}
}

func TestComputeLabelling(t *testing.T) {
	g := square()
	var located []r2.Point
	err := g.ComputeLabelling(LocatorFunc(func(i int, p r2.Point) location.Type {
		if i != 1 {
			t.Errorf("locate called for geometry %d", i)
		}
		located = append(located, p)
		return eX
	}))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 8, len(located))
	for i := range g.DirEdges {
		want := "A:ebi B:eee"
		if i%2 == 1 {
			want = "A:ibe B:eee"
		}
		diff(t, want, g.DE(i).Label.String())
	}
}

func TestComputeLabellingConflict(t *testing.T) {
	g := square(AreaLabel(0, bD, iN, eX))
	err := g.ComputeLabelling(LocatorFunc(func(int, r2.Point) location.Type { return eX }))
	if !planar.IsTopologyError(err) {
		t.Fatalf("got %v, want a topology error", err)
	}
}

// The sides of a geometry that collapsed to a line at a node are set to
// exterior without consulting the locator. This reproduces a known
// approximation.
func TestComputeLabellingCollapseDefaultsExterior(t *testing.T) {
	tri := []r2.Point{pt(0, 0), pt(1, 0), pt(0, 1), pt(0, 0)}
	var edges []*Edge
	for i := range 3 {
		l := AreaLabel(0, bD, iN, eX)
		if i == 0 {
			l.elt[1] = LineLoc(bD)
		}
		edges = append(edges, NewEdge([]r2.Point{tri[i], tri[i+1]}, l))
	}
	g := NewGraph()
	g.AddEdges(edges)
	err := g.ComputeLabelling(LocatorFunc(func(int, r2.Point) location.Type { return iN }))
	if err != nil {
		t.Fatal(err)
	}
	// edge 2 runs (0,1) -> (0,0): its forward view starts away from the
	// collapse, its reverse view at it
	diff(t, iN, g.DE(4).Label.Get(1, On))
	diff(t, eX, g.DE(5).Label.Get(1, On))
	diff(t, bD, g.DE(0).Label.Get(1, On))

	n, _ := g.NodeAt(pt(0, 0))
	diff(t, iN, g.Nodes[n].Label.Get(0, On))
}
