package noding

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/golang/geo/r2"

	"geobuffer/internal/planar"
)

// nearnessFactor relates the grid size to the distance at which a vertex
// is treated as lying on a nearby segment.
const nearnessFactor = 100

// SnapRounder nodes strings on the grid of a fixed precision model. Every
// vertex and every intersection point is rounded to a grid cell, the hot
// pixel, and each segment passing through a hot pixel is split at its
// centre. The output is fully noded up to the grid.
type SnapRounder struct {
	PM planar.PrecisionModel
}

func (n *SnapRounder) Node(ss []*SegmentString) ([]*SegmentString, error) {
	pix := newPixelIndex(n.PM)
	for _, p := range n.interiorIntersections(ss) {
		pix.add(p, true)
	}
	for _, s := range ss {
		for _, p := range s.Pts {
			pix.add(p, false)
		}
	}
	pix.build()

	var rounded []*SegmentString
	for _, s := range ss {
		if r := n.snapString(pix, s); r != nil {
			rounded = append(rounded, r)
		}
	}
	for _, s := range rounded {
		for i := 1; i+1 < s.Len(); i++ {
			if hp := pix.find(s.Pts[i]); hp != nil && hp.node {
				s.AddIntersection(s.Pts[i], i)
			}
		}
	}
	out := splitAll(rounded)
	if err := Validate(out); err != nil {
		return nil, fmt.Errorf("snap rounding at %v: %w", n.PM, err)
	}
	return out, nil
}

// round moves every vertex to the grid and drops resulting repeats.
func (n *SnapRounder) round(pts []r2.Point) []r2.Point {
	out := make([]r2.Point, 0, len(pts))
	for _, p := range pts {
		p = n.PM.MakePointPrecise(p)
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

// interiorIntersections finds the floating intersection points of the
// input strings, plus vertices lying within a fraction of a pixel of
// another segment.
func (n *SnapRounder) interiorIntersections(ss []*SegmentString) []r2.Point {
	var (
		li  planar.LineIntersector
		out []r2.Point
	)
	tol := n.PM.GridSize() / nearnessFactor
	near := func(p, p0, p1 r2.Point) {
		if p.Sub(p0).Norm() < tol || p.Sub(p1).Norm() < tol {
			return
		}
		if planar.DistanceToSegment(p, p0, p1) < tol {
			out = append(out, p)
		}
	}
	newChainIndex(ss).visit(2*tol, func(s0 *SegmentString, i0 int, s1 *SegmentString, i1 int) bool {
		if s0 == s1 && i0 == i1 {
			return true
		}
		p00, p01 := s0.Pts[i0], s0.Pts[i0+1]
		p10, p11 := s1.Pts[i1], s1.Pts[i1+1]
		li.Compute(p00, p01, p10, p11)
		if li.HasIntersection() && li.IsInterior() {
			for k := range li.Count() {
				out = append(out, li.Point(k))
			}
			return true
		}
		near(p00, p10, p11)
		near(p01, p10, p11)
		near(p10, p00, p01)
		near(p11, p00, p01)
		return true
	})
	return out
}

// snapString rounds s to the grid and nodes the rounded string at every
// hot pixel its floating segments pass through. Pixels are tested against
// the floating segments: rounding can move a segment off the pixel of its
// own crossing. Returns nil when s collapses to a single grid point.
func (n *SnapRounder) snapString(pix *pixelIndex, s *SegmentString) *SegmentString {
	pts := n.round(s.Pts)
	if len(pts) < 2 {
		return nil
	}
	out := NewSegmentString(pts, s.ID)
	seg := 0
	for i := 0; i+1 < len(s.Pts); i++ {
		// a floating segment inside one pixel has no rounded counterpart
		if n.PM.MakePointPrecise(s.Pts[i+1]) == pts[seg] {
			continue
		}
		n.snapSegment(pix, s.Pts[i], s.Pts[i+1], out, seg)
		seg++
	}
	return out
}

// snapSegment adds a node to segment seg of out at every hot pixel the
// floating segment p0-p1 passes through. A pixel that only holds the
// segment's own end vertex is skipped unless it is already a node.
func (n *SnapRounder) snapSegment(pix *pixelIndex, p0, p1 r2.Point, out *SegmentString, seg int) {
	pix.query(p0, p1, func(hp *hotPixel) {
		if !hp.node && (hp.containsPoint(p0) || hp.containsPoint(p1)) {
			return
		}
		if hp.intersects(p0, p1) {
			out.AddIntersection(hp.pt, seg)
			hp.node = true
		}
	})
}

// hotPixel is the grid cell around a rounded point. Its centre pt is a grid
// point; the cell spans half a grid unit on each side, closed on the left
// and bottom and open on the top and right.
type hotPixel struct {
	pt     r2.Point
	cx, cy float64
	scale  float64
	node   bool
}

const pixelHalf = 0.5

func (hp *hotPixel) containsPoint(p r2.Point) bool {
	x, y := p.X*hp.scale, p.Y*hp.scale
	return x >= hp.cx-pixelHalf && x < hp.cx+pixelHalf &&
		y >= hp.cy-pixelHalf && y < hp.cy+pixelHalf
}

// intersects reports whether segment p0-p1 crosses the pixel. The test runs
// in scaled coordinates, where the pixel is the unit square around
// (cx, cy).
func (hp *hotPixel) intersects(p0, p1 r2.Point) bool {
	px, py := p0.X*hp.scale, p0.Y*hp.scale
	qx, qy := p1.X*hp.scale, p1.Y*hp.scale
	if px > qx {
		px, py, qx, qy = qx, qy, px, py
	}
	minx, maxx := hp.cx-pixelHalf, hp.cx+pixelHalf
	miny, maxy := hp.cy-pixelHalf, hp.cy+pixelHalf
	if min(px, qx) >= maxx || max(px, qx) < minx ||
		min(py, qy) >= maxy || max(py, qy) < miny {
		return false
	}
	// horizontal and vertical segments inside the envelope test cross the
	// interior or the closed sides
	if px == qx || py == qy {
		return true
	}
	p := r2.Point{X: px, Y: py}
	q := r2.Point{X: qx, Y: qy}
	ul := planar.Orientation(p, q, r2.Point{X: minx, Y: maxy})
	if ul == planar.Collinear {
		return py >= qy
	}
	ur := planar.Orientation(p, q, r2.Point{X: maxx, Y: maxy})
	if ur == planar.Collinear {
		return py <= qy
	}
	if ul != ur {
		return true
	}
	ll := planar.Orientation(p, q, r2.Point{X: minx, Y: miny})
	if ll == planar.Collinear || ll != ul {
		return true
	}
	lr := planar.Orientation(p, q, r2.Point{X: maxx, Y: miny})
	if lr == planar.Collinear {
		return py >= qy
	}
	return ll != lr
}

// pixelIndex holds the hot pixels sorted by x for range queries. All adds
// must happen before build.
type pixelIndex struct {
	pm     planar.PrecisionModel
	byPt   map[r2.Point]*hotPixel
	sorted []*hotPixel
}

func newPixelIndex(pm planar.PrecisionModel) *pixelIndex {
	return &pixelIndex{pm: pm, byPt: make(map[r2.Point]*hotPixel)}
}

// add registers the pixel containing p. A pixel added twice holds more
// than one vertex and becomes a node.
func (x *pixelIndex) add(p r2.Point, node bool) {
	rp := x.pm.MakePointPrecise(p)
	if hp, ok := x.byPt[rp]; ok {
		hp.node = true
		return
	}
	s := x.pm.Scale()
	hp := &hotPixel{pt: rp, cx: math.Round(rp.X * s), cy: math.Round(rp.Y * s), scale: s, node: node}
	x.byPt[rp] = hp
	x.sorted = append(x.sorted, hp)
}

func (x *pixelIndex) build() {
	slices.SortStableFunc(x.sorted, func(a, b *hotPixel) int {
		if c := cmp.Compare(a.pt.X, b.pt.X); c != 0 {
			return c
		}
		return cmp.Compare(a.pt.Y, b.pt.Y)
	})
}

func (x *pixelIndex) find(p r2.Point) *hotPixel {
	return x.byPt[x.pm.MakePointPrecise(p)]
}

// query calls fn for every pixel whose cell may touch segment p0-p1.
func (x *pixelIndex) query(p0, p1 r2.Point, fn func(*hotPixel)) {
	half := x.pm.GridSize() * pixelHalf
	env := r2.RectFromPoints(p0, p1).ExpandedByMargin(half)
	i := sort.Search(len(x.sorted), func(i int) bool { return x.sorted[i].pt.X >= env.X.Lo })
	for ; i < len(x.sorted) && x.sorted[i].pt.X <= env.X.Hi; i++ {
		hp := x.sorted[i]
		if hp.pt.Y < env.Y.Lo || hp.pt.Y > env.Y.Hi {
			continue
		}
		fn(hp)
	}
}
