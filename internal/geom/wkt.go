package geom

import (
	"errors"
	"fmt"
	"strings"

	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// ParseWKT parses a WKT string. Every geometry type of the OGC simple
// features model is accepted, with optional Z and M ordinates.
func ParseWKT(s string) (gogeom.T, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}
	return g, nil
}

// ParseWKTData parses s and flattens it for rendering.
func ParseWKTData(s string) (Data, error) {
	g, err := ParseWKT(s)
	if err != nil {
		return Data{}, err
	}
	d := DataOf(g)
	if d.Empty() {
		return Data{}, errors.New("wkt: no coordinates parsed")
	}
	return d, nil
}

// FormatWKT encodes g as WKT.
func FormatWKT(g gogeom.T) (string, error) {
	s, err := wkt.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("wkt: %w", err)
	}
	return s, nil
}
