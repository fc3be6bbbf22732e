package noding

import (
	"cmp"
	"slices"

	"github.com/golang/geo/r2"
)

type node struct {
	pt  r2.Point
	seg int
	// interior is set when pt is not the start vertex of seg.
	interior bool
}

type nodeKey struct {
	pt  r2.Point
	seg int
}

type nodeList struct {
	byKey map[nodeKey]node
}

func (l *nodeList) add(p r2.Point, seg int, interior bool) {
	if l.byKey == nil {
		l.byKey = make(map[nodeKey]node)
	}
	k := nodeKey{p, seg}
	if _, ok := l.byKey[k]; ok {
		return
	}
	l.byKey[k] = node{pt: p, seg: seg, interior: interior}
}

// sorted orders nodes along the string: by segment, then by distance from
// the segment's start vertex.
func (l *nodeList) sorted(pts []r2.Point) []node {
	out := make([]node, 0, len(l.byKey))
	for _, n := range l.byKey {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b node) int {
		if c := cmp.Compare(a.seg, b.seg); c != 0 {
			return c
		}
		o := pts[a.seg]
		if c := cmp.Compare(dist2(a.pt, o), dist2(b.pt, o)); c != 0 {
			return c
		}
		// equidistant points only arise off the segment, after snapping
		if c := cmp.Compare(a.pt.X, b.pt.X); c != 0 {
			return c
		}
		return cmp.Compare(a.pt.Y, b.pt.Y)
	})
	return out
}

func dist2(p, q r2.Point) float64 {
	d := p.Sub(q)
	return d.Dot(d)
}
