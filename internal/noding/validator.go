package noding

import (
	"github.com/golang/geo/r2"

	"geobuffer/internal/planar"
)

// Validate checks that no two strings intersect except at string endpoints.
// It returns a *planar.TopologyError at the first offending point.
func Validate(ss []*SegmentString) error {
	var (
		li    planar.LineIntersector
		found *planar.TopologyError
	)
	newChainIndex(ss).visit(0, func(s0 *SegmentString, i0 int, s1 *SegmentString, i1 int) bool {
		if s0 == s1 && i0 == i1 {
			return true
		}
		p00, p01 := s0.Pts[i0], s0.Pts[i0+1]
		p10, p11 := s1.Pts[i1], s1.Pts[i1+1]
		li.Compute(p00, p01, p10, p11)
		if li.HasIntersection() && li.IsInterior() {
			found = planar.NewTopologyErrorAt("found non-noded intersection", li.Point(0))
			return false
		}
		adjacent := s0 == s1 && (i0-i1 == 1 || i1-i0 == 1)
		if adjacent {
			return true
		}
		end00, end01 := i0 == 0, i0+2 == s0.Len()
		end10, end11 := i1 == 0, i1+2 == s1.Len()
		for _, c := range []struct {
			p, q       r2.Point
			endP, endQ bool
		}{
			{p00, p10, end00, end10},
			{p00, p11, end00, end11},
			{p01, p10, end01, end10},
			{p01, p11, end01, end11},
		} {
			if c.p == c.q && !(c.endP && c.endQ) {
				found = planar.NewTopologyErrorAt("found non-noded vertex intersection", c.p)
				return false
			}
		}
		return true
	})
	if found != nil {
		return found
	}
	return nil
}
