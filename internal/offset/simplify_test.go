package offset

import (
	"testing"

	"github.com/golang/geo/r2"
)

func TestSimplify(t *testing.T) {
	dip := []r2.Point{pt(0, 0), pt(5, 0), pt(6, -0.01), pt(7, 0), pt(12, 0)}
	bump := []r2.Point{pt(0, 0), pt(5, 0), pt(6, 0.01), pt(7, 0), pt(12, 0)}
	deep := []r2.Point{pt(0, 0), pt(5, 0), pt(6, -1), pt(7, 0), pt(12, 0)}
	tests := []struct {
		name string
		in   []r2.Point
		tol  float64
		want []r2.Point
	}{
		{"left concavity removed", dip, 0.1, []r2.Point{pt(0, 0), pt(5, 0), pt(7, 0), pt(12, 0)}},
		{"left concavity kept on right", dip, -0.1, []r2.Point{pt(0, 0), pt(5, 0), pt(6, -0.01), pt(12, 0)}},
		{"right concavity removed", bump, -0.1, []r2.Point{pt(0, 0), pt(5, 0), pt(7, 0), pt(12, 0)}},
		{"convex vertex kept", bump, 0.1, []r2.Point{pt(0, 0), pt(5, 0), pt(6, 0.01), pt(12, 0)}},
		{"deep concavity kept", deep, 0.1, deep},
		{"two points", dip[:2], 0.1, dip[:2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, Simplify(tt.in, tt.tol))
		})
	}
}

func TestSimplifyKeepsEnds(t *testing.T) {
	// every interior vertex is a shallow concavity
	in := []r2.Point{pt(0, 0), pt(1, -0.01), pt(2, -0.02), pt(3, -0.01), pt(4, 0)}
	got := Simplify(in, 1)
	if got[0] != in[0] || got[len(got)-1] != in[len(in)-1] {
		t.Fatalf("ends changed: %v", got)
	}
}
