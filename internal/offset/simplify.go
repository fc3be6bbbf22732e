package offset

import (
	"github.com/golang/geo/r2"

	"geobuffer/internal/planar"
)

// samplesPerWindow bounds the number of input vertices checked between the
// ends of a candidate window.
const samplesPerWindow = 10

// Simplify removes vertices that form shallow concavities on one side of a
// line. A positive tolerance simplifies the left side, a negative one the
// right side. The first and last vertices are always kept.
//
// The result is used only as input to offset generation: removing a vertex
// closer than |tol| to its neighbours' chord changes the offset curve by no
// more than |tol|.
func Simplify(pts []r2.Point, tol float64) []r2.Point {
	keep := simplifyIndices(pts, tol)
	out := make([]r2.Point, len(keep))
	for i, k := range keep {
		out[i] = pts[k]
	}
	return out
}

type simplifier struct {
	pts     []r2.Point
	tol     float64
	concave int
	deleted []bool
}

func simplifyIndices(pts []r2.Point, tol float64) []int {
	s := simplifier{
		pts:     pts,
		tol:     tol,
		concave: planar.CounterClockwise,
		deleted: make([]bool, len(pts)),
	}
	if tol < 0 {
		s.tol = -tol
		s.concave = planar.Clockwise
	}
	for s.deleteShallowConcavities() {
	}
	idx := make([]int, 0, len(pts))
	for i := range pts {
		if !s.deleted[i] {
			idx = append(idx, i)
		}
	}
	return idx
}

// deleteShallowConcavities makes one pass over the line and reports whether
// any vertex was removed.
func (s *simplifier) deleteShallowConcavities() bool {
	changed := false
	i0 := 1
	i1 := s.next(i0)
	i2 := s.next(i1)
	for i2 < len(s.pts) {
		if s.deletable(i0, i1, i2) {
			s.deleted[i1] = true
			changed = true
			i0 = i2
		} else {
			i0 = i1
		}
		i1 = s.next(i0)
		i2 = s.next(i1)
	}
	return changed
}

func (s *simplifier) next(i int) int {
	i++
	for i < len(s.pts) && s.deleted[i] {
		i++
	}
	return i
}

func (s *simplifier) deletable(i0, i1, i2 int) bool {
	p0, p1, p2 := s.pts[i0], s.pts[i1], s.pts[i2]
	if planar.Orientation(p0, p1, p2) != s.concave {
		return false
	}
	if !s.shallow(p0, p1, p2) {
		return false
	}
	return s.shallowSampled(p0, p2, i0, i2)
}

// shallowSampled checks a sample of the original vertices between i0 and i2
// against the chord p0-p2, so detail hidden by earlier deletions is not lost.
func (s *simplifier) shallowSampled(p0, p2 r2.Point, i0, i2 int) bool {
	inc := max((i2-i0)/samplesPerWindow, 1)
	for i := i0; i < i2; i += inc {
		if !s.shallow(p0, s.pts[i], p2) {
			return false
		}
	}
	return true
}

func (s *simplifier) shallow(p0, p1, p2 r2.Point) bool {
	return planar.DistanceToSegment(p1, p0, p2) < s.tol
}
