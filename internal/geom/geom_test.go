package geom

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	gogeom "github.com/twpayne/go-geom"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParseWKTData(t *testing.T) {
	d, err := ParseWKTData("POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 3 2, 3 3, 2 2))")
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Polygons) != 1 || len(d.Polygons[0]) != 2 {
		t.Fatalf("got %d polygons, want one with a hole", len(d.Polygons))
	}
	diff(t, [][2]float64{{2, 2}, {3, 2}, {3, 3}, {2, 2}}, d.Polygons[0][1])
	diff(t, BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, d.BBox)

	for _, bad := range []string{"", "   ", "POLYGON ((0 0, 1"} {
		if _, err := ParseWKTData(bad); err == nil {
			t.Errorf("ParseWKTData(%q) succeeded", bad)
		}
	}
}

func TestDataOfCollection(t *testing.T) {
	g, err := ParseWKT("GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (0 0, 5 5), MULTIPOINT ((7 1), (8 3)))")
	if err != nil {
		t.Fatal(err)
	}
	d := DataOf(g)
	diff(t, [][2]float64{{1, 2}, {7, 1}, {8, 3}}, d.Points)
	diff(t, [][][2]float64{{{0, 0}, {5, 5}}}, d.Lines)
	diff(t, BBox{MinX: 0, MinY: 0, MaxX: 8, MaxY: 5}, d.BBox)
}

func TestFormatWKT(t *testing.T) {
	s, err := FormatWKT(gogeom.NewPointFlat(gogeom.XY, []float64{1, 2}))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, "POINT (1 2)", s)
}

func TestBBox(t *testing.T) {
	b := BBox{MinX: 0, MinY: 0, MaxX: 3, MaxY: 4}
	diff(t, 5.0, b.Diagonal())
	diff(t, BBox{MinX: -1, MinY: -1, MaxX: 4, MaxY: 5}, b.Expand(1))
	diff(t, BBox{MinX: -2, MinY: 0, MaxX: 3, MaxY: 9}, b.Union(BBox{MinX: -2, MinY: 1, MaxX: 1, MaxY: 9}))
	if (BBox{MinX: 1, MaxX: 1, MaxY: 2}).Valid() {
		t.Error("zero-width box reported valid")
	}
}

const featureCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 2]}, "properties": {"name": "a"}},
    {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}, "properties": {"name": "b", "n": 3}}
  ]
}`

func TestLoadGeoJSON(t *testing.T) {
	p := writeFile(t, "fc.geojson", featureCollection)
	fs, err := LoadFeatures(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 2 {
		t.Fatalf("got %d features, want 2", len(fs))
	}
	diff(t, "a", fs[0].Properties["name"])
	diff(t, 3.0, fs[1].Properties["n"])

	g, err := LoadGeoJSON(p)
	if err != nil {
		t.Fatal(err)
	}
	d := DataOf(g)
	if len(d.Points) != 1 || len(d.Lines) != 1 {
		t.Errorf("got %d points and %d lines, want 1 and 1", len(d.Points), len(d.Lines))
	}
}

func TestReadFeaturesBareGeometry(t *testing.T) {
	fs, err := ReadFeatures([]byte(`{"type": "Polygon", "coordinates": [[[0, 0], [4, 0], [4, 4], [0, 0]]]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 1 || fs[0].Properties != nil {
		t.Fatalf("got %+v, want one feature without properties", fs)
	}
	if _, ok := fs[0].Geometry.(*gogeom.Polygon); !ok {
		t.Errorf("got %T, want *geom.Polygon", fs[0].Geometry)
	}

	if _, err := ReadFeatures([]byte(`{"coordinates": []}`)); err == nil {
		t.Error("missing type accepted")
	}
}

func TestFormatGeoJSON(t *testing.T) {
	b, err := FormatGeoJSON(gogeom.NewPointFlat(gogeom.XY, []float64{1, 2}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"coordinates":[1,2]`) {
		t.Errorf("unexpected encoding %s", b)
	}
}

const kmlDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark><name>p</name><Point><coordinates>1,2,0</coordinates></Point></Placemark>
    <Folder>
      <Placemark>
        <Polygon>
          <outerBoundaryIs><LinearRing><coordinates>0,0 4,0 4,4 0,0</coordinates></LinearRing></outerBoundaryIs>
        </Polygon>
      </Placemark>
      <Placemark>
        <MultiGeometry>
          <LineString><coordinates>5,5 6,6</coordinates></LineString>
        </MultiGeometry>
      </Placemark>
    </Folder>
  </Document>
</kml>`

func TestLoadKML(t *testing.T) {
	g, err := LoadKML(writeFile(t, "doc.kml", kmlDoc))
	if err != nil {
		t.Fatal(err)
	}
	d := DataOf(g)
	diff(t, [][2]float64{{1, 2}}, d.Points)
	diff(t, [][][2]float64{{{5, 5}, {6, 6}}}, d.Lines)
	if len(d.Polygons) != 1 {
		t.Fatalf("got %d polygons, want 1", len(d.Polygons))
	}
	diff(t, [][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 0}}, d.Polygons[0][0])

	if _, err := ReadKML(strings.NewReader(`<kml></kml>`)); err == nil {
		t.Error("empty kml accepted")
	}
}

func TestLoadCSV(t *testing.T) {
	t.Run("lat lon", func(t *testing.T) {
		g, err := LoadCSV(writeFile(t, "pts.csv", "name,Lat,Lon\na,2,1\nb,4,3\nc,bad,5\n"))
		if err != nil {
			t.Fatal(err)
		}
		diff(t, [][2]float64{{1, 2}, {3, 4}}, DataOf(g).Points)
	})
	t.Run("wkt column", func(t *testing.T) {
		g, err := LoadCSV(writeFile(t, "geoms.csv", "id,wkt\n1,POINT (1 2)\n2,\"LINESTRING (0 0, 1 1)\"\n"))
		if err != nil {
			t.Fatal(err)
		}
		d := DataOf(g)
		if len(d.Points) != 1 || len(d.Lines) != 1 {
			t.Errorf("got %d points and %d lines, want 1 and 1", len(d.Points), len(d.Lines))
		}
	})
	t.Run("no columns", func(t *testing.T) {
		if _, err := LoadCSV(writeFile(t, "bad.csv", "a,b\n1,2\n")); err == nil {
			t.Error("csv without coordinate columns accepted")
		}
	})
}

func TestLoadTable(t *testing.T) {
	header, rows, err := LoadTable(writeFile(t, "t.csv", "a,b,c\n1,2\n3,4,5,6\n"))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []string{"a", "b", "c"}, header)
	diff(t, [][]string{{"1", "2", ""}, {"3", "4", "5"}}, rows)
}

func TestLoad(t *testing.T) {
	g, err := Load(writeFile(t, "shape.WKT", "LINESTRING (0 0, 3 4)"))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, BBox{MinX: 0, MinY: 0, MaxX: 3, MaxY: 4}, BBoxOf(g))

	if _, err := Load(writeFile(t, "shape.shp", "")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
	if !Supported("a/b.GeoJSON") || Supported("a/b.shp") {
		t.Error("Supported disagrees with Load")
	}
}
