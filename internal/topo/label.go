// Package topo holds the planar topology graph used to turn noded offset
// curves into polygons: labelled edges, directed edges, nodes with their
// angularly sorted stars, and the depth and label rules applied around a
// node.
package topo

import (
	"strings"

	"github.com/twpayne/go-geom/xy/location"
)

// Position is a location relative to a directed edge.
type Position int

const (
	On Position = iota
	Left
	Right
)

func (p Position) Opposite() Position {
	switch p {
	case Left:
		return Right
	case Right:
		return Left
	}
	return p
}

// TopoLoc holds the location of an edge relative to one geometry: only On
// for a line, On, Left and Right for the boundary of an area.
type TopoLoc struct {
	locs [3]location.Type
	area bool
}

func LineLoc(on location.Type) TopoLoc {
	return TopoLoc{locs: [3]location.Type{on, location.None, location.None}}
}

func AreaLoc(on, left, right location.Type) TopoLoc {
	return TopoLoc{locs: [3]location.Type{on, left, right}, area: true}
}

func (t TopoLoc) Get(p Position) location.Type {
	if !t.area && p != On {
		return location.None
	}
	return t.locs[p]
}

func (t *TopoLoc) Set(p Position, loc location.Type) {
	if p != On {
		t.area = true
	}
	t.locs[p] = loc
}

func (t TopoLoc) IsArea() bool { return t.area }

func (t TopoLoc) IsLine() bool { return !t.area }

func (t TopoLoc) n() int {
	if t.area {
		return 3
	}
	return 1
}

// IsNull reports that no location is known.
func (t TopoLoc) IsNull() bool {
	for _, l := range t.locs[:t.n()] {
		if l != location.None {
			return false
		}
	}
	return true
}

// IsAnyNull reports that some location is unknown.
func (t TopoLoc) IsAnyNull() bool {
	for _, l := range t.locs[:t.n()] {
		if l == location.None {
			return true
		}
	}
	return false
}

func (t *TopoLoc) SetAllIfNull(loc location.Type) {
	for i := range t.n() {
		if t.locs[i] == location.None {
			t.locs[i] = loc
		}
	}
}

// Flip swaps the side locations.
func (t *TopoLoc) Flip() {
	if t.area {
		t.locs[Left], t.locs[Right] = t.locs[Right], t.locs[Left]
	}
}

// Merge fills unknown locations from o. A line location merged with an
// area location becomes an area location.
func (t *TopoLoc) Merge(o TopoLoc) {
	if o.area && !t.area {
		t.area = true
		t.locs[Left], t.locs[Right] = location.None, location.None
	}
	for i := range t.n() {
		if t.locs[i] == location.None && i < o.n() {
			t.locs[i] = o.locs[i]
		}
	}
}

func (t TopoLoc) String() string {
	var b strings.Builder
	if t.area {
		b.WriteByte(symbol(t.locs[Left]))
	}
	b.WriteByte(symbol(t.locs[On]))
	if t.area {
		b.WriteByte(symbol(t.locs[Right]))
	}
	return b.String()
}

func symbol(l location.Type) byte {
	switch l {
	case location.Interior:
		return 'i'
	case location.Boundary:
		return 'b'
	case location.Exterior:
		return 'e'
	}
	return '-'
}

// Label classifies an edge against the two geometries of a graph: index 0
// is the geometry the graph was built from, index 1 an optional second one.
type Label struct {
	elt [2]TopoLoc
}

// NullLabel returns a label with no known locations.
func NullLabel() Label {
	return Label{elt: [2]TopoLoc{LineLoc(location.None), LineLoc(location.None)}}
}

// AreaLabel returns an area label for geometry i; the other geometry's
// locations are unknown.
func AreaLabel(i int, on, left, right location.Type) Label {
	l := Label{elt: [2]TopoLoc{
		AreaLoc(location.None, location.None, location.None),
		AreaLoc(location.None, location.None, location.None),
	}}
	l.elt[i] = AreaLoc(on, left, right)
	return l
}

// LineLabel returns a line label for geometry i.
func LineLabel(i int, on location.Type) Label {
	l := NullLabel()
	l.elt[i] = LineLoc(on)
	return l
}

func (l Label) Loc(i int) TopoLoc { return l.elt[i] }

func (l Label) Get(i int, p Position) location.Type { return l.elt[i].Get(p) }

func (l *Label) Set(i int, p Position, loc location.Type) { l.elt[i].Set(p, loc) }

func (l *Label) SetAllIfNull(i int, loc location.Type) { l.elt[i].SetAllIfNull(loc) }

func (l Label) IsArea() bool { return l.elt[0].IsArea() || l.elt[1].IsArea() }

func (l Label) IsAreaOf(i int) bool { return l.elt[i].IsArea() }

func (l Label) IsLineOf(i int) bool { return l.elt[i].IsLine() }

func (l Label) IsNull(i int) bool { return l.elt[i].IsNull() }

func (l Label) IsAnyNull(i int) bool { return l.elt[i].IsAnyNull() }

// Flipped returns l with left and right swapped for both geometries.
func (l Label) Flipped() Label {
	l.elt[0].Flip()
	l.elt[1].Flip()
	return l
}

func (l *Label) Merge(o Label) {
	l.elt[0].Merge(o.elt[0])
	l.elt[1].Merge(o.elt[1])
}

func (l Label) String() string {
	return "A:" + l.elt[0].String() + " B:" + l.elt[1].String()
}
