package noding

import (
	"geobuffer/internal/planar"
)

// Noder splits segment strings at their mutual intersections. The returned
// strings meet only at endpoints; an error wraps a *planar.TopologyError
// when the result fails validation.
type Noder interface {
	Node(ss []*SegmentString) ([]*SegmentString, error)
}

// New returns the noder for a precision model: floating precision uses
// exact intersection points, a fixed model snap-rounds to its grid.
func New(pm planar.PrecisionModel) Noder {
	if pm.IsFloating() {
		return &MCNoder{}
	}
	return &SnapRounder{PM: pm}
}

func splitAll(ss []*SegmentString) []*SegmentString {
	var out []*SegmentString
	for _, s := range ss {
		out = append(out, s.Split()...)
	}
	return out
}
