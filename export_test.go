package roadgrid

import (
	"image/color"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	geojson "github.com/paulmach/go.geojson"
)

type capturingWriter struct {
	pixels []color.RGBA
	width  int
	height int
}

func (w *capturingWriter) WriteImage(pixels []color.RGBA, width, height int, path string) (string, error) {
	w.pixels = pixels
	w.width = width
	w.height = height
	return path, nil
}

func TestSaveImage(t *testing.T) {
	rm := buildUniform(t, 2, 1, 1.0, Transform{}, Vector{}, func(builder *GridBuilder, x, y uint32) {
		if x == 0 {
			builder.AppendEmpty()
		} else {
			builder.AppendDirected(Vector{X: 1.0})
		}
	})
	writer := &capturingWriter{}
	written, err := rm.SaveImage(writer, "road_map.png")
	if err != nil {
		t.Fatalf("Can't save road map: %v", err)
	}
	if written != "road_map.png" {
		t.Errorf("Writer path must be passed through, but got '%s'", written)
	}
	if writer.width != 2 || writer.height != 1 {
		t.Errorf("Image must be 2 x 1, but got %d x %d", writer.width, writer.height)
	}
	if len(writer.pixels) != 2 {
		t.Fatalf("Pixel buffer must hold 2 entries, but got %d", len(writer.pixels))
	}
	if writer.pixels[0] != (color.RGBA{R: 0, G: 0, B: 0, A: 255}) {
		t.Errorf("Off-road pixel must be black, but got %v", writer.pixels[0])
	}
	if writer.pixels[1] != (color.RGBA{R: 255, G: 127, B: 127, A: 255}) {
		t.Errorf("Directed pixel must encode the direction, but got %v", writer.pixels[1])
	}
}

func TestSaveImageInvalidMap(t *testing.T) {
	rm := &RoadMap{width: 2, height: 2, cellsPerUnit: 1.0, cells: []CellData{{OffRoad: true}}}
	writer := &capturingWriter{}
	if _, err := rm.SaveImage(writer, "road_map.png"); err == nil {
		t.Error("Saving an invalid road map must fail")
	}
	if writer.pixels != nil {
		t.Error("Writer must not be called for an invalid road map")
	}
}

func TestSaveAsPNG(t *testing.T) {
	dir, err := ioutil.TempDir("", "roadgrid")
	if err != nil {
		t.Fatalf("Can't create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	rm := buildUniform(t, 3, 2, 1.0, Transform{}, Vector{}, func(builder *GridBuilder, x, y uint32) {
		builder.AppendRoad()
	})
	path := filepath.Join(dir, "road_map.png")
	written, err := rm.SaveAsPNG(path)
	if err != nil {
		t.Fatalf("Can't save PNG: %v", err)
	}
	info, err := os.Stat(written)
	if err != nil {
		t.Fatalf("Written PNG must exist: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Written PNG must not be empty")
	}
}

func TestExportGeoJSON(t *testing.T) {
	dir, err := ioutil.TempDir("", "roadgrid")
	if err != nil {
		t.Fatalf("Can't create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	rm := buildUniform(t, 2, 2, 1.0, Transform{}, Vector{}, func(builder *GridBuilder, x, y uint32) {
		switch {
		case x == 0 && y == 0:
			builder.AppendEmpty()
		case x == 1 && y == 0:
			builder.AppendDirected(Vector{Y: 1.0})
		default:
			builder.AppendRoad()
		}
	})
	path := filepath.Join(dir, "road_map.geojson")
	if err := rm.ExportGeoJSON(path); err != nil {
		t.Fatalf("Can't export geojson: %v", err)
	}
	b, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("Can't read geojson file: %v", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		t.Fatalf("Exported geojson must parse back: %v", err)
	}
	if len(fc.Features) != 3 {
		t.Errorf("Export must hold 3 on-road cells, but got %d features", len(fc.Features))
	}
	directed := 0
	for _, feature := range fc.Features {
		if _, ok := feature.Properties["heading"]; ok {
			directed++
		}
	}
	if directed != 1 {
		t.Errorf("Exactly one exported cell must carry a heading, but got %d", directed)
	}
}

func TestExportGeoJSONInvalidMap(t *testing.T) {
	rm := &RoadMap{width: 3, height: 3, cellsPerUnit: 1.0, cells: []CellData{}}
	if err := rm.ExportGeoJSON("road_map.geojson"); err == nil {
		t.Error("Exporting an invalid road map must fail")
	}
}
