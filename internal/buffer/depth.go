package buffer

import (
	"cmp"

	"github.com/golang/geo/r2"

	"geobuffer/internal/planar"
	"geobuffer/internal/topo"
)

// depthSegment is an upward-pointing segment crossed by a stabbing ray,
// with the depth on its left side.
type depthSegment struct {
	p0, p1    r2.Point
	leftDepth int
}

func (s depthSegment) minX() float64 { return min(s.p0.X, s.p1.X) }
func (s depthSegment) maxX() float64 { return max(s.p0.X, s.p1.X) }

// orientationIndex is 1 when o lies left of s, -1 when it lies right and 0
// when o straddles the line of s.
func (s depthSegment) orientationIndex(o depthSegment) int {
	o0 := planar.Orientation(s.p0, s.p1, o.p0)
	o1 := planar.Orientation(s.p0, s.p1, o.p1)
	switch {
	case o0 >= 0 && o1 >= 0:
		return max(o0, o1)
	case o0 <= 0 && o1 <= 0:
		return min(o0, o1)
	}
	return 0
}

// compare orders segments from left to right along a horizontal ray.
func (s depthSegment) compare(o depthSegment) int {
	if s.minX() >= o.maxX() {
		return 1
	}
	if s.maxX() <= o.minX() {
		return -1
	}
	if c := s.orientationIndex(o); c != 0 {
		return c
	}
	if c := -o.orientationIndex(s); c != 0 {
		return c
	}
	return cmp.Or(
		cmp.Compare(s.p0.X, o.p0.X), cmp.Compare(s.p0.Y, o.p0.Y),
		cmp.Compare(s.p1.X, o.p1.X), cmp.Compare(s.p1.Y, o.p1.Y),
	)
}

// depthLocator finds the depth at a point from subgraphs whose depths are
// already known, by casting a ray towards +x and taking the nearest
// crossed segment.
type depthLocator struct {
	done []*subgraph
}

func (l *depthLocator) depth(p r2.Point) int {
	var best depthSegment
	found := false
	for _, sg := range l.done {
		if p.Y < sg.env.Y.Lo || p.Y > sg.env.Y.Hi {
			continue
		}
		for _, i := range sg.dirEdges {
			de := sg.g.DE(i)
			if !de.Forward {
				continue
			}
			stabEdge(p, sg.g.EdgeOf(i).Pts, de, func(s depthSegment) {
				if !found || s.compare(best) < 0 {
					best, found = s, true
				}
			})
		}
	}
	if !found {
		return 0
	}
	return best.leftDepth
}

func stabEdge(p r2.Point, pts []r2.Point, de *topo.DirectedEdge, fn func(depthSegment)) {
	for i := 0; i+1 < len(pts); i++ {
		s := depthSegment{p0: pts[i], p1: pts[i+1], leftDepth: de.Depth(topo.Left)}
		if s.p0.Y > s.p1.Y {
			s.p0, s.p1 = s.p1, s.p0
			s.leftDepth = de.Depth(topo.Right)
		}
		if s.maxX() < p.X || s.p0.Y == s.p1.Y {
			continue
		}
		if p.Y < s.p0.Y || p.Y > s.p1.Y {
			continue
		}
		if planar.Orientation(s.p0, s.p1, p) == planar.Clockwise {
			continue
		}
		fn(s)
	}
}
