package noding

import (
	"cmp"
	"slices"

	"github.com/golang/geo/r2"

	"geobuffer/internal/planar"
)

// chain is a run of segments of one string whose directions all fall in a
// single quadrant. The envelope of any sub-run is the box spanned by its
// end vertices, which makes overlap tests cheap.
type chain struct {
	ss         *SegmentString
	start, end int
	env        r2.Rect
}

func buildChains(ss *SegmentString) []*chain {
	pts := ss.Pts
	if len(pts) < 2 {
		return nil
	}
	var out []*chain
	start := 0
	for {
		end := chainEnd(pts, start)
		out = append(out, &chain{ss: ss, start: start, end: end, env: r2.RectFromPoints(pts[start], pts[end])})
		start = end
		if start >= len(pts)-1 {
			return out
		}
	}
}

func chainEnd(pts []r2.Point, start int) int {
	safe := start
	for safe < len(pts)-1 && pts[safe] == pts[safe+1] {
		safe++
	}
	if safe >= len(pts)-1 {
		return len(pts) - 1
	}
	quad := quadrant(pts[safe], pts[safe+1])
	last := start + 1
	for ; last < len(pts); last++ {
		if pts[last-1] != pts[last] && quadrant(pts[last-1], pts[last]) != quad {
			break
		}
	}
	return last - 1
}

func quadrant(p0, p1 r2.Point) int {
	return planar.Quadrant(p1.X-p0.X, p1.Y-p0.Y)
}

// overlaps calls fn for every pair of segments from c and o whose
// envelopes, grown by tol, overlap. fn returns false to stop.
func (c *chain) overlaps(o *chain, tol float64, fn func(i, j int) bool) bool {
	return c.overlapRange(c.start, c.end, o, o.start, o.end, tol, fn)
}

func (c *chain) overlapRange(s0, e0 int, o *chain, s1, e1 int, tol float64, fn func(i, j int) bool) bool {
	if e0-s0 == 1 && e1-s1 == 1 {
		return fn(s0, s1)
	}
	a := r2.RectFromPoints(c.ss.Pts[s0], c.ss.Pts[e0]).ExpandedByMargin(tol)
	b := r2.RectFromPoints(o.ss.Pts[s1], o.ss.Pts[e1])
	if !a.Intersects(b) {
		return true
	}
	m0 := (s0 + e0) / 2
	m1 := (s1 + e1) / 2
	if s0 < m0 {
		if s1 < m1 && !c.overlapRange(s0, m0, o, s1, m1, tol, fn) {
			return false
		}
		if m1 < e1 && !c.overlapRange(s0, m0, o, m1, e1, tol, fn) {
			return false
		}
	}
	if m0 < e0 {
		if s1 < m1 && !c.overlapRange(m0, e0, o, s1, m1, tol, fn) {
			return false
		}
		if m1 < e1 && !c.overlapRange(m0, e0, o, m1, e1, tol, fn) {
			return false
		}
	}
	return true
}

// segmentVisitor receives a candidate pair of segments, segment i0 of s0
// and i1 of s1. It returns false to stop the scan.
type segmentVisitor func(s0 *SegmentString, i0 int, s1 *SegmentString, i1 int) bool

// chainIndex finds overlapping chains with a sweep over their x extents.
type chainIndex struct {
	chains []*chain
}

func newChainIndex(ss []*SegmentString) *chainIndex {
	x := &chainIndex{}
	for _, s := range ss {
		x.chains = append(x.chains, buildChains(s)...)
	}
	slices.SortStableFunc(x.chains, func(a, b *chain) int {
		return cmp.Compare(a.env.X.Lo, b.env.X.Lo)
	})
	return x
}

// visit calls fn once for every pair of segments in different chains whose
// envelopes are within tol of each other.
func (x *chainIndex) visit(tol float64, fn segmentVisitor) {
	for i, a := range x.chains {
		env := a.env.ExpandedByMargin(tol)
		for _, b := range x.chains[i+1:] {
			if b.env.X.Lo > env.X.Hi {
				break
			}
			if !env.Intersects(b.env) {
				continue
			}
			ok := a.overlaps(b, tol, func(i0, i1 int) bool {
				return fn(a.ss, i0, b.ss, i1)
			})
			if !ok {
				return
			}
		}
	}
}
