package planar

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// PrecisionModel is the snapping grid used when noding. A zero scale means
// full floating precision.
type PrecisionModel struct {
	scale float64
}

func FloatingPrecision() PrecisionModel { return PrecisionModel{} }

// FixedPrecision returns a grid with 1/scale spacing. Non-positive or
// non-finite scales yield floating precision.
func FixedPrecision(scale float64) PrecisionModel {
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return PrecisionModel{}
	}
	return PrecisionModel{scale: scale}
}

func (pm PrecisionModel) IsFloating() bool { return pm.scale == 0 }

func (pm PrecisionModel) Scale() float64 { return pm.scale }

// GridSize is the distance between adjacent grid lines, zero when floating.
func (pm PrecisionModel) GridSize() float64 {
	if pm.IsFloating() {
		return 0
	}
	return 1 / pm.scale
}

// MakePrecise rounds v to the grid.
func (pm PrecisionModel) MakePrecise(v float64) float64 {
	if pm.IsFloating() {
		return v
	}
	return math.Round(v*pm.scale) / pm.scale
}

func (pm PrecisionModel) MakePointPrecise(p r2.Point) r2.Point {
	if pm.IsFloating() {
		return p
	}
	return r2.Point{X: pm.MakePrecise(p.X), Y: pm.MakePrecise(p.Y)}
}

func (pm PrecisionModel) String() string {
	if pm.IsFloating() {
		return "floating"
	}
	return fmt.Sprintf("fixed(scale=%g)", pm.scale)
}

// ScaleForDigits returns the power-of-ten scale that keeps the given number
// of significant digits for coordinates of a geometry with envelope env
// grown by distance.
func ScaleForDigits(env r2.Rect, distance float64, digits int) float64 {
	envMax := 0.0
	if !env.IsEmpty() {
		envMax = max(math.Abs(env.X.Lo), math.Abs(env.X.Hi), math.Abs(env.Y.Lo), math.Abs(env.Y.Hi))
	}
	bufEnvMax := envMax + 2*max(distance, 0)
	// a point at the origin has no magnitude to take digits from
	if bufEnvMax == 0 {
		bufEnvMax = 1
	}
	envDigits := int(math.Log10(bufEnvMax) + 1)
	return math.Pow(10, float64(digits-envDigits))
}
