package tui

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	table "github.com/charmbracelet/bubbles/table"

	"geobuffer/internal/geom"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the current dataset
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, 24)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		cells := make([]string, len(tcols))
		cells[0] = fmt.Sprintf("%d", i+1)
		copy(cells[1:], r)
		trows = append(trows, table.Row(cells))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes returns feature properties for GeoJSON, the table of a CSV
// file, and a per-layer summary for everything else.
func (m *Model) buildAttributes() ([]string, [][]string) {
	if m.source == nil {
		return nil, nil
	}
	if len(m.features) > 0 {
		if cols, rows := featureAttributes(m.features); len(cols) > 0 {
			return cols, rows
		}
	}
	if strings.ToLower(filepath.Ext(m.selPath)) == ".csv" {
		if header, rows, err := geom.LoadTable(m.selPath); err == nil && len(rows) > 0 {
			return header, rows
		}
	}
	return m.layerSummary()
}

// featureAttributes unions the property keys of fs in first-seen order.
func featureAttributes(fs []geom.Feature) ([]string, [][]string) {
	var order []string
	seen := map[string]bool{}
	for _, f := range fs {
		keys := make([]string, 0, len(f.Properties))
		for k := range f.Properties {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		// map order is random; keep columns stable within a feature
		slices.Sort(keys)
		for _, k := range keys {
			seen[k] = true
			order = append(order, k)
		}
	}
	rows := make([][]string, 0, len(fs))
	for _, f := range fs {
		vals := make([]string, 0, len(order))
		for _, k := range order {
			vals = append(vals, formatValue(f.Properties[k]))
		}
		rows = append(rows, vals)
	}
	return order, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%v", t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}

func (m *Model) layerSummary() ([]string, [][]string) {
	cols := []string{"layer", "points", "lines", "polygons", "bbox"}
	row := func(name string, d geom.Data) []string {
		return []string{
			name,
			fmt.Sprintf("%d", len(d.Points)),
			fmt.Sprintf("%d", len(d.Lines)),
			fmt.Sprintf("%d", len(d.Polygons)),
			fmt.Sprintf("[%.5f,%.5f,%.5f,%.5f]", d.BBox.MinX, d.BBox.MinY, d.BBox.MaxX, d.BBox.MaxY),
		}
	}
	rows := [][]string{row("input", m.in)}
	if m.showBuffer {
		rows = append(rows, row(fmt.Sprintf("buffer %.4g", m.distance), m.buf))
	}
	if m.showRaw {
		rows = append(rows, row("curves", m.raw))
	}
	return cols, rows
}
