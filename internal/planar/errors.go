package planar

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
)

// TopologyError reports a robustness failure: an interior intersection that
// noding left behind, conflicting side labels, inconsistent depths, or a
// ring that cannot be assembled. Callers may retry at a coarser precision.
type TopologyError struct {
	Msg   string
	Pt    r2.Point
	HasPt bool
}

func NewTopologyError(msg string) *TopologyError {
	return &TopologyError{Msg: msg}
}

func NewTopologyErrorAt(msg string, pt r2.Point) *TopologyError {
	return &TopologyError{Msg: msg, Pt: pt, HasPt: true}
}

func (e *TopologyError) Error() string {
	if e.HasPt {
		return fmt.Sprintf("topology: %s [ %g %g ]", e.Msg, e.Pt.X, e.Pt.Y)
	}
	return "topology: " + e.Msg
}

func IsTopologyError(err error) bool {
	var te *TopologyError
	return errors.As(err, &te)
}
