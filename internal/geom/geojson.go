package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Feature is a geometry with its GeoJSON properties.
type Feature struct {
	Geometry   gogeom.T
	Properties map[string]any
}

// LoadGeoJSON reads a GeoJSON file holding a bare geometry, a Feature or a
// FeatureCollection, and returns its geometries as one collection.
func LoadGeoJSON(path string) (gogeom.T, error) {
	fs, err := LoadFeatures(path)
	if err != nil {
		return nil, err
	}
	return Collect(fs)
}

// LoadFeatures reads the features of a GeoJSON file. A bare geometry
// becomes a single feature without properties.
func LoadFeatures(path string) ([]Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadFeatures(data)
}

func ReadFeatures(data []byte) ([]Feature, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	switch head.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		var fc geojson.FeatureCollection
		if err := fc.UnmarshalJSON(data); err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		out := make([]Feature, 0, len(fc.Features))
		for _, f := range fc.Features {
			out = append(out, Feature{Geometry: f.Geometry, Properties: f.Properties})
		}
		return out, nil
	case "Feature":
		var f geojson.Feature
		if err := f.UnmarshalJSON(data); err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		return []Feature{{Geometry: f.Geometry, Properties: f.Properties}}, nil
	}
	var g gogeom.T
	if err := geojson.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	return []Feature{{Geometry: g}}, nil
}

// Collect gathers the geometries of fs into one collection, skipping
// features without geometry.
func Collect(fs []Feature) (gogeom.T, error) {
	gc := gogeom.NewGeometryCollection()
	for _, f := range fs {
		if f.Geometry == nil {
			continue
		}
		if err := gc.Push(f.Geometry); err != nil {
			return nil, err
		}
	}
	if gc.NumGeoms() == 0 {
		return nil, errors.New("no geometries found")
	}
	if gc.NumGeoms() == 1 {
		return gc.Geom(0), nil
	}
	return gc, nil
}

// FormatGeoJSON encodes g as a GeoJSON geometry object.
func FormatGeoJSON(g gogeom.T) ([]byte, error) {
	b, err := geojson.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	return b, nil
}
