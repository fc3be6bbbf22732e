package tui

import (
	"fmt"
	"math"

	gogeom "github.com/twpayne/go-geom"

	"geobuffer/internal/buffer"
	"geobuffer/internal/geom"
	"geobuffer/internal/offset"
)

// setGeometry installs g as the previewed input and recomputes the buffer.
func (m *Model) setGeometry(g gogeom.T, features []geom.Feature) {
	m.source = g
	m.in = geom.DataOf(g)
	m.features = features
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	m.showPolys = len(m.in.Polygons) > 0
	m.showLines = len(m.in.Lines) > 0
	m.showPoints = len(m.in.Points) > 0
	if !m.fixedDistance {
		m.distance = defaultDistance(m.in.BBox)
	}
	m.rebuffer()
}

// defaultDistance is a twentieth of the diagonal, or 1 for a degenerate box.
func defaultDistance(b geom.BBox) float64 {
	d := b.Diagonal() / 20
	if d == 0 || math.IsNaN(d) {
		return 1
	}
	return d
}

// distanceStep is the increment applied by the grow and shrink keys.
func (m Model) distanceStep() float64 {
	return defaultDistance(m.in.BBox) / 5
}

// rebuffer recomputes the buffer and raw curve layers for the current
// parameters and refits the view extent.
func (m *Model) rebuffer() {
	m.buf, m.raw, m.bufErr = geom.Data{}, geom.Data{}, nil
	if m.source == nil {
		m.bbox = geom.BBox{}
		return
	}
	if m.showBuffer {
		mp, err := buffer.Buffer(m.source, m.distance, m.params)
		if err != nil {
			m.bufErr = err
		} else {
			m.buf = geom.DataOf(mp)
		}
	}
	if m.showRaw && m.bufErr == nil {
		mls, err := buffer.OffsetCurves(m.source, m.distance, m.params)
		if err != nil {
			m.bufErr = err
		} else {
			m.raw = geom.DataOf(mls)
		}
	}
	m.bbox = m.viewBox()
	m.status = m.bufferStatus()
}

// viewBox covers the input and every computed layer. A degenerate extent
// (a single point or an axis-parallel line) is padded so it can be projected.
func (m Model) viewBox() geom.BBox {
	b := m.in.BBox
	for _, d := range []geom.Data{m.buf, m.raw} {
		if !d.Empty() {
			b = b.Union(d.BBox)
		}
	}
	if b.Valid() {
		return b
	}
	pad := math.Max(math.Abs(m.distance), 1)
	if b.MaxX > b.MinX || b.MaxY > b.MinY {
		pad = math.Max(b.MaxX-b.MinX, b.MaxY-b.MinY) / 2
	}
	return b.Expand(pad)
}

func (m Model) bufferStatus() string {
	if m.bufErr != nil {
		return "buffer error: " + m.bufErr.Error()
	}
	if !m.showBuffer && !m.showRaw {
		return fmt.Sprintf("input  counts: pts=%d ls=%d poly=%d", len(m.in.Points), len(m.in.Lines), len(m.in.Polygons))
	}
	s := fmt.Sprintf("d=%.4g %s", m.distance, describeParams(m.params))
	if m.showBuffer {
		s += fmt.Sprintf("  buffer: %d polygons", len(m.buf.Polygons))
	}
	if m.showRaw {
		s += fmt.Sprintf("  curves: %d", len(m.raw.Lines))
	}
	return s
}

func describeParams(p offset.Params) string {
	s := fmt.Sprintf("cap=%v join=%v quad=%d", p.EndCapStyle, p.JoinStyle, p.QuadrantSegments)
	if p.SingleSided {
		s += " single-sided"
	}
	return s
}

// bufferKey applies a buffer preview key and reports whether it was one.
func (m *Model) bufferKey(key string) bool {
	switch key {
	case "b":
		m.showBuffer = !m.showBuffer
	case "o":
		m.showRaw = !m.showRaw
	case "]":
		m.distance += m.distanceStep()
	case "[":
		m.distance -= m.distanceStep()
	case "c":
		m.params.EndCapStyle = (m.params.EndCapStyle + 1) % (offset.CapSquare + 1)
	case "j":
		m.params.JoinStyle = (m.params.JoinStyle + 1) % (offset.JoinBevel + 1)
	case "}":
		m.params.QuadrantSegments++
	case "{":
		if m.params.QuadrantSegments > 1 {
			m.params.QuadrantSegments--
		}
	case "s":
		m.params.SingleSided = !m.params.SingleSided
	default:
		return false
	}
	m.rebuffer()
	return true
}
