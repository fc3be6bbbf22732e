package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	gogeom "github.com/twpayne/go-geom"

	"geobuffer/internal/geom"
	"geobuffer/internal/offset"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Input geometry
	source   gogeom.T
	in       geom.Data
	features []geom.Feature

	// view extent covering every visible layer
	bbox geom.BBox

	// Buffer preview
	params        offset.Params
	distance      float64
	fixedDistance bool
	showBuffer    bool
	showRaw       bool
	buf           geom.Data
	raw           geom.Data
	bufErr        error

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// Option adjusts a Model before the first geometry is loaded.
type Option func(*Model)

// WithParams sets the offset parameters of the buffer preview.
func WithParams(p offset.Params) Option {
	return func(m *Model) { m.params = p }
}

// WithDistance fixes the initial buffer distance. Without it the distance
// defaults to a twentieth of the input's diagonal.
func WithDistance(d float64) Option {
	return func(m *Model) {
		m.distance = d
		m.fixedDistance = true
	}
}

// WithRawCurves shows the raw offset curves from the start.
func WithRawCurves(b bool) Option {
	return func(m *Model) { m.showRaw = b }
}

func New(opts ...Option) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "geobuffer ready",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		params:      offset.DefaultParams,
		showBuffer:  true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (any geometry type). Press Enter to buffer; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns will be inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(path string, opts ...Option) Model {
	m := New(opts...)
	m.loadPath(path)
	return m
}

// NewWithGeometry starts the preview on an already parsed geometry.
func NewWithGeometry(g gogeom.T, opts ...Option) Model {
	m := New(opts...)
	m.setGeometry(g, nil)
	return m
}

func (m Model) Init() tea.Cmd { return nil }
