package geom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	gogeom "github.com/twpayne/go-geom"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
	Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

type kmlGeometry struct {
	Points   []kmlCoords   `xml:"Point"`
	Lines    []kmlCoords   `xml:"LineString"`
	Rings    []kmlCoords   `xml:"LinearRing"`
	Polygons []kmlPolygon  `xml:"Polygon"`
	Multi    []kmlGeometry `xml:"MultiGeometry"`
}

type kmlPlacemark struct {
	Name string `xml:"name"`
	kmlGeometry
}

type kmlContainer struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Folders    []kmlContainer `xml:"Folder"`
	Documents  []kmlContainer `xml:"Document"`
}

// LoadKML reads the Point, LineString, LinearRing and Polygon geometries
// of every Placemark in a KML file, including those nested in folders and
// MultiGeometry elements.
func LoadKML(path string) (gogeom.T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadKML(f)
}

func ReadKML(r io.Reader) (gogeom.T, error) {
	var doc kmlContainer
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("kml: %w", err)
	}
	gc := gogeom.NewGeometryCollection()
	if err := doc.collect(gc); err != nil {
		return nil, err
	}
	if gc.NumGeoms() == 0 {
		return nil, errors.New("kml: no geometries found")
	}
	return gc, nil
}

func (c *kmlContainer) collect(gc *gogeom.GeometryCollection) error {
	for _, d := range c.Documents {
		if err := d.collect(gc); err != nil {
			return err
		}
	}
	for _, f := range c.Folders {
		if err := f.collect(gc); err != nil {
			return err
		}
	}
	for _, pm := range c.Placemarks {
		if err := pm.collect(gc); err != nil {
			return err
		}
	}
	return nil
}

func (g *kmlGeometry) collect(gc *gogeom.GeometryCollection) error {
	for _, p := range g.Points {
		flat := kmlFlat(p.Coordinates)
		if len(flat) < 2 {
			continue
		}
		if err := gc.Push(gogeom.NewPointFlat(gogeom.XY, flat[:2])); err != nil {
			return err
		}
	}
	for _, l := range slices.Concat(g.Lines, g.Rings) {
		flat := kmlFlat(l.Coordinates)
		if len(flat) < 4 {
			continue
		}
		if err := gc.Push(gogeom.NewLineStringFlat(gogeom.XY, flat)); err != nil {
			return err
		}
	}
	for _, p := range g.Polygons {
		flat := kmlFlat(p.Outer.Coordinates)
		if len(flat) < 8 {
			continue
		}
		ends := []int{len(flat)}
		for _, in := range p.Inner {
			flat = append(flat, kmlFlat(in.Coordinates)...)
			ends = append(ends, len(flat))
		}
		if err := gc.Push(gogeom.NewPolygonFlat(gogeom.XY, flat, ends)); err != nil {
			return err
		}
	}
	for _, m := range g.Multi {
		if err := m.collect(gc); err != nil {
			return err
		}
	}
	return nil
}

// kmlFlat parses "lon,lat[,alt]" tuples separated by whitespace into flat
// XY coordinates. Altitude is ignored and malformed tuples are skipped.
func kmlFlat(s string) []float64 {
	var flat []float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		flat = append(flat, lon, lat)
	}
	return flat
}
