package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	gogeom "github.com/twpayne/go-geom"
)

// LoadCSV reads a CSV file. A wkt|geometry|geom column is parsed as WKT,
// one geometry per row; otherwise latitude/longitude columns give points.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x (case-insensitive).
func LoadCSV(path string) (gogeom.T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func ReadCSV(r io.Reader) (gogeom.T, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}
	idxLat, idxLon, idxWKT := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "wkt", "geometry", "geom":
			if idxWKT == -1 {
				idxWKT = i
			}
		}
	}
	switch {
	case idxWKT >= 0:
		return csvGeometries(rows, idxWKT)
	case idxLat == -1 || idxLon == -1:
		return nil, errors.New("csv: latitude/longitude columns not found")
	}
	var flat []float64
	for _, row := range rows {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		flat = append(flat, lon, lat)
	}
	if len(flat) == 0 {
		return nil, errors.New("csv: no valid points parsed")
	}
	return gogeom.NewMultiPointFlat(gogeom.XY, flat), nil
}

func csvGeometries(rows [][]string, col int) (gogeom.T, error) {
	gc := gogeom.NewGeometryCollection()
	for i, row := range rows {
		if col >= len(row) || strings.TrimSpace(row[col]) == "" {
			continue
		}
		g, err := ParseWKT(row[col])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+2, err)
		}
		if err := gc.Push(g); err != nil {
			return nil, err
		}
	}
	if gc.NumGeoms() == 0 {
		return nil, errors.New("csv: no geometries parsed")
	}
	return gc, nil
}

// LoadTable returns the header and the rows of a CSV file, each row padded
// or cut to the header width.
func LoadTable(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	header, rows, err := readTable(f)
	if err != nil {
		return nil, nil, err
	}
	for i, row := range rows {
		vals := make([]string, len(header))
		copy(vals, row)
		rows[i] = vals
	}
	return header, rows, nil
}

func readTable(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil, errors.New("empty csv")
	}
	return recs[0], recs[1:], nil
}
