package roadgrid

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"math"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// ImageWriter Sink for raster export. Pixels come in row-major order,
// width*height entries. Returns the path actually written to.
type ImageWriter interface {
	WriteImage(pixels []color.RGBA, width, height int, path string) (string, error)
}

// PNGWriter ImageWriter backed by the PNG codec
type PNGWriter struct{}

// WriteImage writes pixel buffer as PNG file
func (PNGWriter) WriteImage(pixels []color.RGBA, width, height int, path string) (string, error) {
	if len(pixels) != width*height {
		return "", errors.Errorf("Pixel buffer has %d entries but %d x %d image needs %d", len(pixels), width, height, width*height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, c := range pixels {
		img.SetRGBA(i%width, i/width, c)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return "", errors.Wrap(err, "Can't encode PNG")
	}
	return path, nil
}

// SaveImage encodes every cell in row-major order and delegates to the given
// writer. Returns an error (not a panic) on an invalid map, so callers decide
// whether a failed diagnostic export matters to them.
func (rm *RoadMap) SaveImage(writer ImageWriter, path string) (string, error) {
	if !rm.IsValid() {
		return "", errors.New("Can't save invalid road map")
	}
	pixels := make([]color.RGBA, 0, len(rm.cells))
	for i := range rm.cells {
		pixels = append(pixels, rm.cells[i].Encode())
	}
	written, err := writer.WriteImage(pixels, int(rm.width), int(rm.height), path)
	if err != nil {
		return "", errors.Wrap(err, "Can't write road map image")
	}
	fmt.Printf("Saved road map to '%s'\n", written)
	return written, nil
}

// SaveAsPNG writes the map as PNG file
func (rm *RoadMap) SaveAsPNG(path string) (string, error) {
	return rm.SaveImage(PNGWriter{}, path)
}

// ExportGeoJSON writes on-road cell centers as GeoJSON FeatureCollection of
// points. Directed cells carry a 'heading' property in degrees. Coordinates
// are world-space, whatever frame the map was built in.
func (rm *RoadMap) ExportGeoJSON(path string) error {
	if !rm.IsValid() {
		return errors.New("Can't export invalid road map")
	}
	fc := geojson.NewFeatureCollection()
	for y := uint32(0); y < rm.height; y++ {
		for x := uint32(0); x < rm.width; x++ {
			data := rm.dataAtPixel(x, y)
			if data.OffRoad {
				continue
			}
			location := rm.WorldLocation(x, y)
			feature := geojson.NewPointFeature([]float64{location.X, location.Y})
			if data.HasDirection {
				feature.SetProperty("heading", radiansTodegrees(math.Atan2(data.Direction.Y, data.Direction.X)))
			}
			fc.AddFeature(feature)
		}
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't convert road map to geojson format")
	}
	if err := ioutil.WriteFile(path, b, 0644); err != nil {
		return errors.Wrap(err, "Can't write geojson file")
	}
	return nil
}
