package offset

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func pt(x, y float64) r2.Point { return r2.Point{X: x, Y: y} }

func contains(pts []r2.Point, p r2.Point) bool {
	for _, q := range pts {
		if q.Sub(p).Norm() < 1e-9 {
			return true
		}
	}
	return false
}
