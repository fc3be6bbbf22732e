package buffer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/twpayne/go-geom"

	"geobuffer/internal/noding"
	"geobuffer/internal/offset"
	"geobuffer/internal/planar"
)

type failingNoder struct{ err error }

func (n failingNoder) Node([]*noding.SegmentString) ([]*noding.SegmentString, error) {
	return nil, n.err
}

func withNoder(f func(pm planar.PrecisionModel, native bool) noding.Noder) Option {
	return func(o *options) { o.noder = f }
}

func TestBufferRetriesAfterNativeFailure(t *testing.T) {
	var grids []planar.PrecisionModel
	noder := func(pm planar.PrecisionModel, native bool) noding.Noder {
		if native {
			return failingNoder{planar.NewTopologyError("native attempt")}
		}
		grids = append(grids, pm)
		return noding.New(pm)
	}
	got := mustBuffer(t, polygon(cwSquare(0, 0, 10, 10)), 1, offset.DefaultParams, withNoder(noder))
	if len(grids) != 1 {
		t.Fatalf("got %d retries, want 1", len(grids))
	}
	// buffered extent 12 has two integer digits
	diff(t, 1e10, grids[0].Scale())
	if got.NumPolygons() != 1 {
		t.Fatalf("got %d polygons, want 1", got.NumPolygons())
	}
	diff(t, []float64{-1, 11, -1, 11}, bounds(got), cmpopts.EquateApprox(0, 1e-6))
}

func TestBufferRetryFixedPrecisionOnce(t *testing.T) {
	var grids []planar.PrecisionModel
	noder := func(pm planar.PrecisionModel, native bool) noding.Noder {
		if native {
			return failingNoder{planar.NewTopologyError("native attempt")}
		}
		grids = append(grids, pm)
		return noding.New(pm)
	}
	pm := planar.FixedPrecision(1)
	got := mustBuffer(t, point(0, 0), 10, offset.DefaultParams, WithPrecisionModel(pm), withNoder(noder))
	if len(grids) != 1 || grids[0].Scale() != pm.Scale() {
		t.Fatalf("retried at %v, want only %v", grids, pm)
	}
	if got.NumPolygons() != 1 {
		t.Errorf("got %d polygons, want 1", got.NumPolygons())
	}
}

func TestBufferRetryExhausted(t *testing.T) {
	first := planar.NewTopologyError("native attempt")
	attempts := 0
	noder := func(pm planar.PrecisionModel, native bool) noding.Noder {
		attempts++
		if native {
			return failingNoder{first}
		}
		return failingNoder{planar.NewTopologyError("retry")}
	}
	_, err := Buffer(polygon(cwSquare(0, 0, 10, 10)), 1, offset.DefaultParams, withNoder(noder), WithMaxPrecisionDigits(3))
	if err == nil {
		t.Fatal("no error")
	}
	// native attempt, then 3, 2, 1 and 0 digits
	diff(t, 5, attempts)
	if !strings.HasPrefix(err.Error(), "buffer: ") {
		t.Errorf("err = %q, want a buffer: prefix", err)
	}
	if !planar.IsTopologyError(err) || !errors.Is(err, first) {
		t.Errorf("err = %v, want the native attempt's topology error", err)
	}
}

func TestBufferOtherErrorsAreNotRetried(t *testing.T) {
	boom := errors.New("boom")
	attempts := 0
	noder := func(planar.PrecisionModel, bool) noding.Noder {
		attempts++
		return failingNoder{boom}
	}
	if _, err := Buffer(point(0, 0), 1, offset.DefaultParams, withNoder(noder)); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	diff(t, 1, attempts)
}

func TestRunSnapRoundedAtEachPrecision(t *testing.T) {
	gc := geom.NewGeometryCollection()
	if err := gc.Push(polygon(cwSquare(0, 0, 10, 10), ccwSquare(3, 3, 7, 7)), line(-5, 5, 15, 5.3)); err != nil {
		t.Fatal(err)
	}
	in, err := newInput(gc)
	if err != nil {
		t.Fatal(err)
	}
	for digits := MaxPrecisionDigits; digits >= 4; digits-- {
		pm := planar.FixedPrecision(planar.ScaleForDigits(in.env, 1, digits))
		got, err := run(in, 1, offset.DefaultParams, pm, noding.New(pm))
		if err != nil {
			t.Errorf("%d digits: %v", digits, err)
			continue
		}
		if got.NumPolygons() == 0 || area(got) <= 0 {
			t.Errorf("%d digits: empty buffer", digits)
			continue
		}
		diff(t, []float64{-6, 16, -1, 11}, bounds(got), cmpopts.EquateApprox(0, 0.1))
	}
}
