// Command geobuffer buffers geometries read from WKT, GeoJSON, KML or CSV.
// With -print it writes the result to stdout; otherwise it opens an
// interactive terminal preview.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	gogeom "github.com/twpayne/go-geom"

	"geobuffer/internal/buffer"
	"geobuffer/internal/geom"
	"geobuffer/internal/offset"
	"geobuffer/internal/planar"
	"geobuffer/internal/tui"
)

type config struct {
	distance    float64
	distanceSet bool
	params      offset.Params
	scale       float64
	wkt         string
	path        string
	format      string
	raw         bool
	print       bool
	verbose     bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var (
		c        config
		capName  string
		joinName string
		quads    int
		mitre    float64
		side     bool
	)
	fs := flag.NewFlagSet("geobuffer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&c.distance, "d", 1, "buffer distance; negative erodes polygons")
	fs.IntVar(&quads, "quad", offset.DefaultParams.QuadrantSegments, "segments per quarter circle")
	fs.StringVar(&capName, "cap", offset.DefaultParams.EndCapStyle.String(), "end cap style: round, flat or square")
	fs.StringVar(&joinName, "join", offset.DefaultParams.JoinStyle.String(), "join style: round, mitre or bevel")
	fs.Float64Var(&mitre, "mitre", offset.DefaultParams.MitreLimit, "mitre ratio limit")
	fs.BoolVar(&side, "single", false, "buffer one side of lines only")
	fs.Float64Var(&c.scale, "scale", 0, "fixed precision scale of the input; 0 means floating")
	fs.StringVar(&c.wkt, "wkt", "", "input geometry as WKT instead of a file")
	fs.StringVar(&c.format, "format", "wkt", "output format: wkt or geojson")
	fs.BoolVar(&c.raw, "raw", false, "show the raw offset curves; with -print, print them instead of the buffer")
	fs.BoolVar(&c.print, "print", false, "print the buffer instead of opening the preview")
	fs.BoolVar(&c.verbose, "v", false, "log buffer stages")
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "d" {
			c.distanceSet = true
		}
	})
	if fs.NArg() > 1 {
		return c, errors.New("at most one input file")
	}
	c.path = fs.Arg(0)
	if c.wkt != "" && c.path != "" {
		return c, errors.New("-wkt and an input file are exclusive")
	}
	if c.format != "wkt" && c.format != "geojson" {
		return c, fmt.Errorf("unknown output format %q", c.format)
	}
	if c.scale < 0 {
		return c, fmt.Errorf("negative precision scale %g", c.scale)
	}

	capStyle, err := offset.ParseCapStyle(capName)
	if err != nil {
		return c, err
	}
	joinStyle, err := offset.ParseJoinStyle(joinName)
	if err != nil {
		return c, err
	}
	c.params = offset.DefaultParams.
		WithQuadrantSegments(quads).
		WithEndCapStyle(capStyle).
		WithJoinStyle(joinStyle).
		WithMitreLimit(mitre).
		WithSingleSided(side)
	return c, c.params.Validate()
}

func (c config) input() (gogeom.T, error) {
	switch {
	case c.wkt != "":
		return geom.ParseWKT(c.wkt)
	case c.path != "":
		return geom.Load(c.path)
	}
	return nil, errors.New("no input: pass a file or -wkt")
}

func (c config) bufferOptions() []buffer.Option {
	if c.scale == 0 {
		return nil
	}
	return []buffer.Option{buffer.WithPrecisionModel(planar.FixedPrecision(c.scale))}
}

// batch computes the buffer, or the raw curves, and writes it to w.
func batch(c config, w io.Writer) error {
	g, err := c.input()
	if err != nil {
		return err
	}
	var out gogeom.T
	if c.raw {
		out, err = buffer.OffsetCurves(g, c.distance, c.params)
	} else {
		out, err = buffer.Buffer(g, c.distance, c.params, c.bufferOptions()...)
	}
	if err != nil {
		return err
	}
	switch c.format {
	case "geojson":
		b, err := geom.FormatGeoJSON(out)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	default:
		s, err := geom.FormatWKT(out)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	}
}

func preview(c config) error {
	opts := []tui.Option{tui.WithParams(c.params), tui.WithRawCurves(c.raw)}
	if c.distanceSet {
		opts = append(opts, tui.WithDistance(c.distance))
	}
	var m tea.Model
	switch {
	case c.wkt != "":
		g, err := geom.ParseWKT(c.wkt)
		if err != nil {
			return err
		}
		m = tui.NewWithGeometry(g, opts...)
	case c.path != "":
		m = tui.NewWithPath(c.path, opts...)
	default:
		m = tui.New(opts...)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

func main() {
	c, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	interactive := !c.print
	if c.verbose {
		// the preview owns the terminal, so its log goes to a file
		var lw io.Writer = os.Stderr
		if interactive {
			f, err := os.OpenFile("geobuffer.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()
			lw = f
		}
		buffer.SetLogger(slog.New(slog.NewTextHandler(lw, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if interactive {
		err = preview(c)
	} else {
		err = batch(c, os.Stdout)
	}
	if err != nil {
		log.Fatal(err)
	}
}
