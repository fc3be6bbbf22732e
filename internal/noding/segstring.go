// Package noding splits sets of polylines so that they meet only at shared
// endpoints.
package noding

import (
	"github.com/golang/geo/r2"

	"geobuffer/internal/planar"
)

// SegmentString is a polyline taking part in noding. ID is opaque to the
// noder and is copied to every piece the string is split into.
type SegmentString struct {
	Pts []r2.Point
	ID  int

	nodes nodeList
}

func NewSegmentString(pts []r2.Point, id int) *SegmentString {
	return &SegmentString{Pts: pts, ID: id}
}

func (s *SegmentString) Len() int { return len(s.Pts) }

func (s *SegmentString) IsClosed() bool {
	return len(s.Pts) > 1 && s.Pts[0] == s.Pts[len(s.Pts)-1]
}

// AddIntersection records a node at p on segment segIndex. A node equal to
// the segment's end vertex is attributed to the next segment.
func (s *SegmentString) AddIntersection(p r2.Point, segIndex int) {
	if next := segIndex + 1; next < len(s.Pts) && p == s.Pts[next] {
		segIndex = next
	}
	s.nodes.add(p, segIndex, p != s.Pts[segIndex])
}

// AddIntersections records every intersection point li found on segment
// segIndex.
func (s *SegmentString) AddIntersections(li *planar.LineIntersector, segIndex int) {
	for i := range li.Count() {
		s.AddIntersection(li.Point(i), segIndex)
	}
}

// Split returns the pieces of s between consecutive nodes. The endpoints
// are always nodes.
func (s *SegmentString) Split() []*SegmentString {
	if len(s.Pts) == 0 {
		return nil
	}
	last := len(s.Pts) - 1
	s.nodes.add(s.Pts[0], 0, false)
	s.nodes.add(s.Pts[last], last, false)
	s.addCollapsedNodes()

	nodes := s.nodes.sorted(s.Pts)
	out := make([]*SegmentString, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		out = append(out, &SegmentString{Pts: s.splitPts(nodes[i-1], nodes[i]), ID: s.ID})
	}
	return out
}

func (s *SegmentString) splitPts(n0, n1 node) []r2.Point {
	if n0.seg == n1.seg {
		return []r2.Point{n0.pt, n1.pt}
	}
	useLast := n1.interior || n1.pt != s.Pts[n1.seg]
	pts := make([]r2.Point, 0, n1.seg-n0.seg+2)
	pts = append(pts, n0.pt)
	for i := n0.seg + 1; i <= n1.seg; i++ {
		pts = append(pts, s.Pts[i])
	}
	if useLast {
		pts = append(pts, n1.pt)
	}
	return pts
}

// addCollapsedNodes adds nodes at vertices where the string folds back on
// itself, so the fold produces separate edges instead of a zero-area spike.
func (s *SegmentString) addCollapsedNodes() {
	var idx []int
	for i := 0; i+2 < len(s.Pts); i++ {
		if s.Pts[i] == s.Pts[i+2] {
			idx = append(idx, i+1)
		}
	}
	nodes := s.nodes.sorted(s.Pts)
	for i := 1; i < len(nodes); i++ {
		n0, n1 := nodes[i-1], nodes[i]
		if n0.pt != n1.pt {
			continue
		}
		between := n1.seg - n0.seg
		if !n1.interior {
			between--
		}
		if between == 1 {
			idx = append(idx, n0.seg+1)
		}
	}
	for _, i := range idx {
		s.nodes.add(s.Pts[i], i, false)
	}
}
