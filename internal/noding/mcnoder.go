package noding

import (
	"fmt"

	"geobuffer/internal/planar"
)

// MCNoder nodes strings at their intersection points, found with a
// monotone chain index. Intersection points are rounded to PM, which
// leaves them inexact, so the result is validated before it is returned.
type MCNoder struct {
	PM planar.PrecisionModel

	li planar.LineIntersector
}

func (n *MCNoder) Node(ss []*SegmentString) ([]*SegmentString, error) {
	n.li.PM = n.PM
	newChainIndex(ss).visit(0, func(s0 *SegmentString, i0 int, s1 *SegmentString, i1 int) bool {
		n.addIntersections(s0, i0, s1, i1)
		return true
	})
	out := splitAll(ss)
	if err := Validate(out); err != nil {
		return nil, fmt.Errorf("monotone chain noding: %w", err)
	}
	return out, nil
}

func (n *MCNoder) addIntersections(s0 *SegmentString, i0 int, s1 *SegmentString, i1 int) {
	if s0 == s1 && i0 == i1 {
		return
	}
	n.li.Compute(s0.Pts[i0], s0.Pts[i0+1], s1.Pts[i1], s1.Pts[i1+1])
	if !n.li.HasIntersection() || n.trivial(s0, i0, s1, i1) {
		return
	}
	s0.AddIntersections(&n.li, i0)
	s1.AddIntersections(&n.li, i1)
}

// trivial reports the single shared vertex of two consecutive segments of
// one string, including the closing vertex of a ring.
func (n *MCNoder) trivial(s0 *SegmentString, i0 int, s1 *SegmentString, i1 int) bool {
	if s0 != s1 || n.li.Count() != 1 {
		return false
	}
	if i0-i1 == 1 || i1-i0 == 1 {
		return true
	}
	if s0.IsClosed() {
		last := s0.Len() - 2
		return (i0 == 0 && i1 == last) || (i1 == 0 && i0 == last)
	}
	return false
}
