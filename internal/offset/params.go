// Package offset generates raw offset curves around lines, rings and points.
// The curves it produces may self-intersect; noding and depth selection turn
// them into a buffer polygon.
package offset

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// CapStyle defines the shape drawn at the ends of an offset line.
type CapStyle int

const (
	// Semicircular arc around the endpoint.
	CapRound CapStyle = iota
	// Straight closure through the endpoint.
	CapFlat
	// Square extended by the offset distance past the endpoint.
	CapSquare
)

func (c CapStyle) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapFlat:
		return "flat"
	case CapSquare:
		return "square"
	}
	return fmt.Sprintf("CapStyle(%d)", int(c))
}

// JoinStyle defines the connection between two offset segments at a convex
// corner.
type JoinStyle int

const (
	// An arc around the corner vertex.
	JoinRound JoinStyle = iota
	// The offset segments are extended to their intersection point.
	JoinMitre
	// A straight line between the offset segment ends.
	JoinBevel
)

func (j JoinStyle) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinMitre:
		return "mitre"
	case JoinBevel:
		return "bevel"
	}
	return fmt.Sprintf("JoinStyle(%d)", int(j))
}

func ParseCapStyle(s string) (CapStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "round":
		return CapRound, nil
	case "flat", "butt":
		return CapFlat, nil
	case "square":
		return CapSquare, nil
	}
	return 0, fmt.Errorf("%w: unknown cap style %q", ErrInvalidParams, s)
}

func ParseJoinStyle(s string) (JoinStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "round":
		return JoinRound, nil
	case "mitre", "miter":
		return JoinMitre, nil
	case "bevel":
		return JoinBevel, nil
	}
	return 0, fmt.Errorf("%w: unknown join style %q", ErrInvalidParams, s)
}

// ErrInvalidParams is returned for a configuration that cannot produce a
// curve. It is never worth retrying.
var ErrInvalidParams = errors.New("offset: invalid parameters")

// Params configures offset curve generation.
type Params struct {
	// Number of segments used to approximate a quarter circle.
	QuadrantSegments int
	EndCapStyle      CapStyle
	JoinStyle        JoinStyle
	// Largest ratio of mitre length to offset distance before a mitre join
	// is bevelled.
	MitreLimit float64
	// Offset only one side of a line; the line itself closes the curve.
	SingleSided bool
	// Fraction of the distance used as the input simplification tolerance.
	SimplifyFactor float64
}

var DefaultParams = Params{
	QuadrantSegments: 8,
	EndCapStyle:      CapRound,
	JoinStyle:        JoinRound,
	MitreLimit:       5.0,
	SimplifyFactor:   0.01,
}

func (p Params) WithQuadrantSegments(n int) Params   { p.QuadrantSegments = n; return p }
func (p Params) WithEndCapStyle(c CapStyle) Params   { p.EndCapStyle = c; return p }
func (p Params) WithJoinStyle(j JoinStyle) Params    { p.JoinStyle = j; return p }
func (p Params) WithMitreLimit(limit float64) Params { p.MitreLimit = limit; return p }
func (p Params) WithSingleSided(b bool) Params       { p.SingleSided = b; return p }
func (p Params) WithSimplifyFactor(f float64) Params { p.SimplifyFactor = f; return p }

// Validate reports the first unusable setting.
func (p Params) Validate() error {
	switch {
	case p.QuadrantSegments < 1:
		return fmt.Errorf("%w: quadrant segments %d < 1", ErrInvalidParams, p.QuadrantSegments)
	case p.EndCapStyle < CapRound || p.EndCapStyle > CapSquare:
		return fmt.Errorf("%w: %v", ErrInvalidParams, p.EndCapStyle)
	case p.JoinStyle < JoinRound || p.JoinStyle > JoinBevel:
		return fmt.Errorf("%w: %v", ErrInvalidParams, p.JoinStyle)
	case math.IsNaN(p.MitreLimit) || p.MitreLimit <= 0:
		return fmt.Errorf("%w: mitre limit %g", ErrInvalidParams, p.MitreLimit)
	case math.IsNaN(p.SimplifyFactor) || p.SimplifyFactor < 0 || p.SimplifyFactor >= 1:
		return fmt.Errorf("%w: simplify factor %g", ErrInvalidParams, p.SimplifyFactor)
	}
	return nil
}
