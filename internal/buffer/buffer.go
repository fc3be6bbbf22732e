// Package buffer computes buffer polygons: the set of points within a
// distance of a geometry. A negative distance shrinks polygonal input.
//
// The computation offsets every part of the input into raw curves, nodes
// the curves into a planar graph, assigns depths to the faces of the graph
// and extracts the faces of positive depth as polygons. When floating-point
// noding fails the computation is repeated on successively coarser grids.
package buffer

import (
	"errors"
	"fmt"
	"math"

	"github.com/twpayne/go-geom"

	"geobuffer/internal/noding"
	"geobuffer/internal/offset"
	"geobuffer/internal/planar"
)

// MaxPrecisionDigits is the number of significant digits of the first
// reduced-precision retry.
const MaxPrecisionDigits = 12

// ErrInvalidDistance is returned for NaN or infinite distances.
var ErrInvalidDistance = errors.New("buffer: distance must be finite")

type options struct {
	pm        planar.PrecisionModel
	maxDigits int
	// noder picks the noder of an attempt; native is set for the first.
	noder func(pm planar.PrecisionModel, native bool) noding.Noder
}

func defaultNoder(pm planar.PrecisionModel, native bool) noding.Noder {
	if native {
		return &noding.MCNoder{PM: pm}
	}
	return noding.New(pm)
}

// Option configures a buffer computation.
type Option func(*options)

// WithPrecisionModel declares the precision model of the input. A fixed
// model rounds the generated curves to its grid and is the only grid
// retried on failure.
func WithPrecisionModel(pm planar.PrecisionModel) Option {
	return func(o *options) { o.pm = pm }
}

// WithMaxPrecisionDigits sets the number of significant digits of the
// first reduced-precision retry. Retries continue down to zero digits.
func WithMaxPrecisionDigits(n int) Option {
	return func(o *options) { o.maxDigits = max(n, 0) }
}

// Buffer returns the buffer of g at distance. The result is never nil; an
// empty MultiPolygon means the buffer is empty. Shells are oriented
// clockwise and holes counter-clockwise.
//
// The first attempt runs at the input's precision. If it fails with a
// topology error, a fixed input precision is retried once with snap
// rounding; otherwise snap rounding is retried with MaxPrecisionDigits
// significant digits down to zero. If every attempt fails, the error of
// the first attempt is returned.
func Buffer(g geom.T, distance float64, params offset.Params, opts ...Option) (*geom.MultiPolygon, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return nil, ErrInvalidDistance
	}
	o := options{maxDigits: MaxPrecisionDigits, noder: defaultNoder}
	for _, opt := range opts {
		opt(&o)
	}
	in, err := newInput(g)
	if err != nil {
		return nil, err
	}
	if in.empty() {
		return geom.NewMultiPolygon(geom.XY), nil
	}

	res, first := run(in, distance, params, o.pm, o.noder(o.pm, true))
	if first == nil {
		return res, nil
	}
	if !planar.IsTopologyError(first) {
		return nil, first
	}

	var grids []planar.PrecisionModel
	if !o.pm.IsFloating() {
		grids = append(grids, o.pm)
	} else {
		for digits := o.maxDigits; digits >= 0; digits-- {
			grids = append(grids, planar.FixedPrecision(planar.ScaleForDigits(in.env, distance, digits)))
		}
	}
	for _, pm := range grids {
		Logger().Warn("buffer: retrying with reduced precision", "precision", pm, "err", first)
		res, err := run(in, distance, params, pm, o.noder(pm, false))
		if err == nil {
			return res, nil
		}
		if !planar.IsTopologyError(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("buffer: %w", first)
}

func run(in *input, distance float64, params offset.Params, pm planar.PrecisionModel, noder noding.Noder) (*geom.MultiPolygon, error) {
	Logger().Debug("buffer: attempt", "precision", pm, "distance", distance)
	return newBuilder(in, distance, params, pm, noder).build()
}

// OffsetCurve returns the raw offset curve of a line: the closed curve
// around it at distance, before noding. A single coordinate yields the
// point's circle or square. The curve is not a valid polygon boundary in
// general; it may self-intersect.
func OffsetCurve(s planar.Seq, distance float64, params offset.Params) (planar.Seq, error) {
	if err := params.Validate(); err != nil {
		return planar.Seq{}, err
	}
	pts := offset.NewBuilder(params, planar.FloatingPrecision()).LineCurve(s.RemoveRepeated().Points(), distance)
	return planar.SeqFromPoints(pts), nil
}

// OffsetCurves returns every raw curve the buffer of g would be built
// from, as open or closed line strings in generation order.
func OffsetCurves(g geom.T, distance float64, params offset.Params) (*geom.MultiLineString, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	in, err := newInput(g)
	if err != nil {
		return nil, err
	}
	mls := geom.NewMultiLineString(geom.XY)
	for _, c := range newCurveSet(in, distance, params, planar.FloatingPrecision()).curves {
		if err := mls.Push(geom.NewLineStringFlat(geom.XY, planar.SeqFromPoints(c.Pts).FlatCoords())); err != nil {
			return nil, err
		}
	}
	return mls, nil
}
