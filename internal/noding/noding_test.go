package noding

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"

	"geobuffer/internal/planar"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func pt(x, y float64) r2.Point { return r2.Point{X: x, Y: y} }

type piece struct {
	ID  int
	Pts []r2.Point
}

func pieces(ss []*SegmentString) []piece {
	out := make([]piece, len(ss))
	for i, s := range ss {
		out[i] = piece{s.ID, s.Pts}
	}
	return out
}

func TestMCNoderCrossing(t *testing.T) {
	in := []*SegmentString{
		NewSegmentString([]r2.Point{pt(0, 0), pt(10, 10)}, 1),
		NewSegmentString([]r2.Point{pt(0, 10), pt(10, 0)}, 2),
	}
	got, err := New(planar.FloatingPrecision()).Node(in)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []piece{
		{1, []r2.Point{pt(0, 0), pt(5, 5)}},
		{1, []r2.Point{pt(5, 5), pt(10, 10)}},
		{2, []r2.Point{pt(0, 10), pt(5, 5)}},
		{2, []r2.Point{pt(5, 5), pt(10, 0)}},
	}, pieces(got))
}

func TestMCNoderSelfIntersectingRing(t *testing.T) {
	bowtie := []r2.Point{pt(0, 0), pt(10, 10), pt(10, 0), pt(0, 10), pt(0, 0)}
	got, err := (&MCNoder{}).Node([]*SegmentString{NewSegmentString(bowtie, 0)})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []piece{
		{0, []r2.Point{pt(0, 0), pt(5, 5)}},
		{0, []r2.Point{pt(5, 5), pt(10, 10), pt(10, 0), pt(5, 5)}},
		{0, []r2.Point{pt(5, 5), pt(0, 10), pt(0, 0)}},
	}, pieces(got))
}

func TestMCNoderTouchingVertex(t *testing.T) {
	in := []*SegmentString{
		NewSegmentString([]r2.Point{pt(0, 0), pt(10, 0)}, 1),
		NewSegmentString([]r2.Point{pt(5, 5), pt(5, 0)}, 2),
	}
	got, err := (&MCNoder{}).Node(in)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []piece{
		{1, []r2.Point{pt(0, 0), pt(5, 0)}},
		{1, []r2.Point{pt(5, 0), pt(10, 0)}},
		{2, []r2.Point{pt(5, 5), pt(5, 0)}},
	}, pieces(got))
}

func TestSnapRounder(t *testing.T) {
	in := []*SegmentString{
		NewSegmentString([]r2.Point{pt(0, 0), pt(3, 1)}, 1),
		NewSegmentString([]r2.Point{pt(0, 1), pt(3, 0)}, 2),
	}
	got, err := New(planar.FixedPrecision(1)).Node(in)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []piece{
		{1, []r2.Point{pt(0, 0), pt(2, 1)}},
		{1, []r2.Point{pt(2, 1), pt(3, 1)}},
		{2, []r2.Point{pt(0, 1), pt(2, 1)}},
		{2, []r2.Point{pt(2, 1), pt(3, 0)}},
	}, pieces(got))
}

func TestSnapRounderDropsCollapsedStrings(t *testing.T) {
	in := []*SegmentString{
		NewSegmentString([]r2.Point{pt(0.1, 0.1), pt(0.2, 0.3)}, 1),
		NewSegmentString([]r2.Point{pt(0.4, 2.2), pt(5.1, 2)}, 2),
	}
	got, err := (&SnapRounder{PM: planar.FixedPrecision(1)}).Node(in)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []piece{{2, []r2.Point{pt(0, 2), pt(5, 2)}}}, pieces(got))
}

func TestSnapRounderOutputOnGrid(t *testing.T) {
	circle := []r2.Point{pt(10, 0), pt(7.07, -7.07), pt(0, -10), pt(-7.07, -7.07), pt(-10, 0), pt(-7.07, 7.07), pt(0, 10), pt(7.07, 7.07), pt(10, 0)}
	line := []r2.Point{pt(-12.34, 0.55), pt(12.66, 0.45)}
	pm := planar.FixedPrecision(10)
	got, err := New(pm).Node([]*SegmentString{NewSegmentString(circle, 0), NewSegmentString(line, 1)})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range got {
		for _, p := range s.Pts {
			if pm.MakePointPrecise(p) != p {
				t.Errorf("vertex %v is off the grid", p)
			}
		}
	}
	if err := Validate(got); err != nil {
		t.Errorf("output not noded: %v", err)
	}
}

// The rounded line (-12.3 0.6, 12.7 0.5) misses the pixel of its own
// crossing with the circle at (-9.776 0.5397); the floating line does not.
func TestSnapRounderNodesBothStringsAtCrossing(t *testing.T) {
	circle := []r2.Point{pt(10, 0), pt(7.07, -7.07), pt(0, -10), pt(-7.07, -7.07), pt(-10, 0), pt(-7.07, 7.07), pt(0, 10), pt(7.07, 7.07), pt(10, 0)}
	line := []r2.Point{pt(-12.34, 0.55), pt(12.66, 0.45)}
	got, err := New(planar.FixedPrecision(10)).Node([]*SegmentString{NewSegmentString(circle, 0), NewSegmentString(line, 1)})
	if err != nil {
		t.Fatal(err)
	}
	crossing := pt(-9.8, 0.5)
	found := map[int]bool{}
	for _, s := range got {
		for _, p := range s.Pts {
			if p == crossing {
				found[s.ID] = true
			}
		}
	}
	diff(t, map[int]bool{0: true, 1: true}, found)
}

func TestSplitCollapsedVertex(t *testing.T) {
	s := NewSegmentString([]r2.Point{pt(0, 0), pt(5, 0), pt(0, 0)}, 3)
	diff(t, []piece{
		{3, []r2.Point{pt(0, 0), pt(5, 0)}},
		{3, []r2.Point{pt(5, 0), pt(0, 0)}},
	}, pieces(s.Split()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   [][]r2.Point
		ok   bool
	}{
		{"crossing", [][]r2.Point{{pt(0, 0), pt(10, 10)}, {pt(0, 10), pt(10, 0)}}, false},
		{"shared endpoint", [][]r2.Point{{pt(0, 0), pt(5, 5)}, {pt(5, 5), pt(10, 0)}}, true},
		{"endpoint on interior", [][]r2.Point{{pt(0, 0), pt(10, 0)}, {pt(5, 0), pt(5, 5)}}, false},
		{"interior vertices touch", [][]r2.Point{{pt(0, 0), pt(5, 5), pt(10, 0)}, {pt(0, 10), pt(5, 5), pt(10, 10)}}, false},
		{"closed ring", [][]r2.Point{{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 0)}}, true},
		{"disjoint", [][]r2.Point{{pt(0, 0), pt(1, 0)}, {pt(0, 1), pt(1, 1)}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ss []*SegmentString
			for i, pts := range tt.in {
				ss = append(ss, NewSegmentString(pts, i))
			}
			err := Validate(ss)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !planar.IsTopologyError(err) {
				t.Fatalf("got %v, want a topology error", err)
			}
		})
	}
}

func TestChainsAreMonotone(t *testing.T) {
	pts := []r2.Point{pt(0, 0), pt(1, 1), pt(2, 3), pt(3, 2), pt(3, 2), pt(4, 0), pt(3, -1)}
	chains := buildChains(NewSegmentString(pts, 0))
	var spans [][2]int
	for _, c := range chains {
		spans = append(spans, [2]int{c.start, c.end})
	}
	diff(t, [][2]int{{0, 2}, {2, 5}, {5, 6}}, spans)
}
