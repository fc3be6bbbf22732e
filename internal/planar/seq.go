// Package planar holds the low-level 2D primitives shared by the buffer
// engine: coordinate sequences, precision models, orientation and
// intersection predicates, and the topology error kind.
package planar

import (
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"
)

// Seq is an ordered, mutable sequence of coordinates that share one layout.
// Only X and Y take part in geometric computation; Z and M values are carried
// along unchanged.
type Seq struct {
	layout geom.Layout
	flat   []float64
}

// NewSeq copies flat into a new sequence with the given layout.
func NewSeq(layout geom.Layout, flat []float64) Seq {
	if layout == geom.NoLayout {
		layout = geom.XY
	}
	n := len(flat) - len(flat)%layout.Stride()
	return Seq{layout: layout, flat: append([]float64(nil), flat[:n]...)}
}

// SeqFromPoints builds an XY sequence.
func SeqFromPoints(pts []r2.Point) Seq {
	flat := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		flat = append(flat, p.X, p.Y)
	}
	return Seq{layout: geom.XY, flat: flat}
}

func (s Seq) Layout() geom.Layout {
	if s.layout == geom.NoLayout {
		return geom.XY
	}
	return s.layout
}

func (s Seq) Stride() int { return s.Layout().Stride() }

func (s Seq) Len() int { return len(s.flat) / s.Stride() }

// Point returns the X/Y part of coordinate i.
func (s Seq) Point(i int) r2.Point {
	o := i * s.Stride()
	return r2.Point{X: s.flat[o], Y: s.flat[o+1]}
}

// Set overwrites the X/Y part of coordinate i.
func (s Seq) Set(i int, p r2.Point) {
	o := i * s.Stride()
	s.flat[o], s.flat[o+1] = p.X, p.Y
}

func (s Seq) FlatCoords() []float64 { return s.flat }

func (s Seq) Points() []r2.Point {
	pts := make([]r2.Point, s.Len())
	for i := range pts {
		pts[i] = s.Point(i)
	}
	return pts
}

func (s Seq) Clone() Seq {
	return Seq{layout: s.layout, flat: append([]float64(nil), s.flat...)}
}

// IsClosed reports whether the first and last points coincide in 2D.
func (s Seq) IsClosed() bool {
	n := s.Len()
	return n > 1 && s.Point(0) == s.Point(n-1)
}

// Subset returns the coordinates at the given indices, in order.
func (s Seq) Subset(idx []int) Seq {
	st := s.Stride()
	out := make([]float64, 0, len(idx)*st)
	for _, i := range idx {
		out = append(out, s.flat[i*st:(i+1)*st]...)
	}
	return Seq{layout: s.layout, flat: out}
}

// RemoveRepeated drops coordinates equal in 2D to their predecessor.
func (s Seq) RemoveRepeated() Seq {
	n := s.Len()
	if n < 2 {
		return s.Clone()
	}
	idx := []int{0}
	last := s.Point(0)
	for i := 1; i < n; i++ {
		p := s.Point(i)
		if p == last {
			continue
		}
		idx = append(idx, i)
		last = p
	}
	return s.Subset(idx)
}

// Envelope is the bounding rectangle of the sequence.
func (s Seq) Envelope() r2.Rect {
	return Envelope(s.Points())
}

// Envelope is the bounding rectangle of pts; empty when pts is empty.
func Envelope(pts []r2.Point) r2.Rect {
	if len(pts) == 0 {
		return r2.EmptyRect()
	}
	return r2.RectFromPoints(pts...)
}
