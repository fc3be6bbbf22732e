package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/vector"

	"geobuffer/internal/geom"
)

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !m.bbox.Valid() {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	lat := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return lon, lat, true
}

// layer is one braille canvas and the style its cells are drawn in.
type layer struct {
	br    *brailleBuf
	style lipgloss.Style
}

// renderAsciiMap draws the visible layers and composites them cell by cell.
// Earlier layers win: input outlines, raw curves, the buffer, input fill.
func (m Model) renderAsciiMap(w, h int) string {
	edges := newBrailleBuf(w, h)
	curves := newBrailleBuf(w, h)
	buf := newBrailleBuf(w, h)
	fill := newBrailleBuf(w, h)

	if m.bbox.Valid() {
		if m.showPolys {
			for _, poly := range m.in.Polygons {
				m.fillPolygon(fill, poly, w, h)
				for _, ring := range poly {
					m.drawPath(edges, ring, w, h)
				}
			}
		}
		if m.showLines {
			for _, ls := range m.in.Lines {
				m.drawPath(edges, ls, w, h)
			}
		}
		if m.showPoints {
			for _, p := range m.in.Points {
				mx, my, _ := m.screenXYMicro(p[0], p[1], w, h)
				edges.setPixel(mx, my)
				edges.setPixel(mx+1, my)
				edges.setPixel(mx, my+1)
				edges.setPixel(mx+1, my+1)
			}
		}
		if m.showBuffer {
			for _, poly := range m.buf.Polygons {
				m.fillPolygon(buf, poly, w, h)
				for _, ring := range poly {
					m.drawPath(buf, ring, w, h)
				}
			}
		}
		if m.showRaw {
			for _, ls := range m.raw.Lines {
				m.drawPath(curves, ls, w, h)
			}
		}
	}
	layers := []layer{
		{edges, inputStyle},
		{curves, curveStyle},
		{buf, bufferStyle},
		{fill, fillStyle},
	}
	hx, hy := -1, -1
	if m.hovering {
		hx, hy = m.hoverMicX/2, m.hoverMicY/4
	}
	return strings.Join(composite(layers, w, h, hx, hy), "\n")
}

// composite merges the layers into styled rows. Runs of cells from the same
// layer share one styled span; the hovered cell gets an orange circle.
func composite(layers []layer, w, h, hx, hy int) []string {
	lines := make([]string, h)
	var sb strings.Builder
	var run []rune
	for y := range h {
		sb.Reset()
		cur := -1
		flush := func() {
			if len(run) == 0 {
				return
			}
			if cur < 0 {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(layers[cur].style.Render(string(run)))
			}
			run = run[:0]
		}
		for x := range w {
			if x == hx && y == hy {
				flush()
				sb.WriteString(hoverStyle.Render("◯"))
				continue
			}
			idx, r := -1, ' '
			for i, l := range layers {
				if g, ok := l.br.glyph(x, y); ok {
					idx, r = i, g
					break
				}
			}
			if idx != cur {
				flush()
				cur = idx
			}
			run = append(run, r)
		}
		flush()
		lines[y] = sb.String()
	}
	return lines
}

// drawPath strokes consecutive vertices on the microgrid.
func (m Model) drawPath(br *brailleBuf, pts [][2]float64, w, h int) {
	for i := 1; i < len(pts); i++ {
		ax, ay, _ := m.screenXYMicro(pts[i-1][0], pts[i-1][1], w, h)
		bx, by, _ := m.screenXYMicro(pts[i][0], pts[i][1], w, h)
		br.drawLineMicro(ax, ay, bx, by)
	}
}

// fillPolygon rasterises a polygon with holes onto the microgrid. The
// rasteriser accumulates signed coverage, so holes are wound against the
// shell to cancel it.
func (m Model) fillPolygon(br *brailleBuf, poly [][][2]float64, w, h int) {
	wMic, hMic := w*2, h*4
	r := vector.NewRasterizer(wMic, hMic)
	drawn := false
	for i, ring := range poly {
		pts := make([][2]float32, 0, len(ring))
		for _, p := range ring {
			x, y := m.screenMicroF(p[0], p[1], w, h)
			pts = append(pts, [2]float32{float32(x), float32(y)})
		}
		if len(pts) < 3 {
			continue
		}
		if (signedArea(pts) > 0) != (i == 0) {
			for a, b := 0, len(pts)-1; a < b; a, b = a+1, b-1 {
				pts[a], pts[b] = pts[b], pts[a]
			}
		}
		r.MoveTo(pts[0][0], pts[0][1])
		for _, p := range pts[1:] {
			r.LineTo(p[0], p[1])
		}
		r.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}
	dst := image.NewAlpha(image.Rect(0, 0, wMic, hMic))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	for y := range hMic {
		for x := range wMic {
			if dst.AlphaAt(x, y).A >= 0x80 {
				br.setPixel(x, y)
			}
		}
	}
}

// signedArea is positive for rings that turn clockwise on screen, where y
// grows downwards.
func signedArea(pts [][2]float32) float32 {
	var a float32
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	return a / 2
}

// screenMicroF is screenXYMicro without rounding, measured to pixel centres.
func (m Model) screenMicroF(lon, lat float64, w, h int) (float64, float64) {
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := zx*float64(w*2-1) + float64(m.offsetX*2) + 0.5
	sy := (1.0-zy)*float64(h*4-1) + float64(m.offsetY*4) + 0.5
	return sx, sy
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if !m.bbox.Valid() {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps lon/lat to current screen integer coordinates considering zoom and pan.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	if !m.bbox.Valid() {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// vertices lists every input vertex followed by every buffer vertex.
func (m Model) vertices() [][2]float64 {
	var out [][2]float64
	for _, d := range []geom.Data{m.in, m.buf} {
		out = append(out, d.Points...)
		for _, ls := range d.Lines {
			out = append(out, ls...)
		}
		for _, poly := range d.Polygons {
			for _, ring := range poly {
				out = append(out, ring...)
			}
		}
	}
	return out
}

// nearestVertexMicro returns the microgrid position of the vertex closest
// to the micro coordinate (x, y).
func (m Model) nearestVertexMicro(x, y, w, h int) (int, int, bool) {
	best := -1
	bx, by := x, y
	for _, p := range m.vertices() {
		mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
		if !ok {
			continue
		}
		d := (mx-x)*(mx-x) + (my-y)*(my-y)
		if best < 0 || d < best {
			best = d
			bx, by = mx, my
		}
	}
	return bx, by, best >= 0
}

// inspectNearest finds the vertex closest to the viewport center and returns lon/lat.
func (m Model) inspectNearest() (lon, lat float64, ok bool) {
	w, h := m.mapW, m.mapH
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	cx, cy := w/2, h/2
	bestD := -1
	var best [2]float64
	for _, p := range m.vertices() {
		sx, sy, ok2 := m.screenXY(p[0], p[1], w, h)
		if !ok2 {
			continue
		}
		dx := sx - cx
		dy := sy - cy
		d := dx*dx + dy*dy
		if bestD < 0 || d < bestD {
			bestD = d
			best = p
		}
	}
	if bestD < 0 {
		return 0, 0, false
	}
	return best[0], best[1], true
}
