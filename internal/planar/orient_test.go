package planar

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestOrientation(t *testing.T) {
	a, b := r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}
	tests := []struct {
		q    r2.Point
		want int
	}{
		{r2.Point{X: 5, Y: 1}, CounterClockwise},
		{r2.Point{X: 5, Y: -1}, Clockwise},
		{r2.Point{X: 20, Y: 0}, Collinear},
	}
	for _, tt := range tests {
		if got := Orientation(a, b, tt.q); got != tt.want {
			t.Errorf("Orientation(%v) = %d, want %d", tt.q, got, tt.want)
		}
	}
}

func TestOrientationNearlyCollinear(t *testing.T) {
	// a point a tiny step off a long line must still be classified exactly
	p1 := r2.Point{X: 0, Y: 0}
	p2 := r2.Point{X: 1e6, Y: 1e6}
	q := r2.Point{X: 5e5, Y: math.Nextafter(5e5, 1e7)}
	if got := Orientation(p1, p2, q); got != CounterClockwise {
		t.Errorf("got %d, want counter-clockwise", got)
	}
}

func TestSignedArea(t *testing.T) {
	ccw := []r2.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 0}}
	diff(t, 4.0, SignedArea(ccw), approx)
	if !IsCCW(ccw) {
		t.Error("ring should be counter-clockwise")
	}
	cw := make([]r2.Point, len(ccw))
	for i, p := range ccw {
		cw[len(ccw)-1-i] = p
	}
	diff(t, -4.0, SignedArea(cw), approx)
}

func TestDistanceToSegment(t *testing.T) {
	a, b := r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}
	diff(t, 3.0, DistanceToSegment(r2.Point{X: 5, Y: 3}, a, b), approx)
	diff(t, 5.0, DistanceToSegment(r2.Point{X: -3, Y: 4}, a, b), approx)
	diff(t, 5.0, DistanceToSegment(r2.Point{X: 3, Y: 4}, a, a), approx)
}

func TestAngleBetweenOriented(t *testing.T) {
	tail := r2.Point{}
	diff(t, math.Pi/2, AngleBetweenOriented(r2.Point{X: 1}, tail, r2.Point{Y: 1}), approx)
	diff(t, -math.Pi/2, AngleBetweenOriented(r2.Point{Y: 1}, tail, r2.Point{X: 1}), approx)
	diff(t, math.Pi, NormalizeAngle(-math.Pi), approx)
}

func TestQuadrant(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   int
	}{
		{1, 1, NE},
		{1, 0, NE},
		{0, 1, NE},
		{-1, 0, NW},
		{-1, 1, NW},
		{-1, -1, SW},
		{0, -1, SE},
		{1, -1, SE},
	}
	for _, tt := range tests {
		if got := Quadrant(tt.dx, tt.dy); got != tt.want {
			t.Errorf("Quadrant(%v, %v) = %d, want %d", tt.dx, tt.dy, got, tt.want)
		}
	}
}
