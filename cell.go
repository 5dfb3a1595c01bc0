package roadgrid

import (
	"image/color"
	"math"
)

// CellData Road information stored for a single grid cell. When OffRoad is
// true the cell carries no direction; Direction is meaningful only while
// HasDirection is set and is kept normalized.
type CellData struct {
	OffRoad      bool
	HasDirection bool
	Direction    Vector
}

// Encode returns debug color for the cell: opaque black for off-road cells,
// opaque white for road cells without canonical direction, otherwise RGB
// channels carry the direction components mapped from [-1, 1] to [0, 255].
// The 8-bit quantization is lossy; this encoding is for diagnostics, not for
// reconstructing the direction.
func (d CellData) Encode() color.RGBA {
	if d.OffRoad {
		return color.RGBA{R: 0, G: 0, B: 0, A: 255}
	}
	if !d.HasDirection {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	// Assumes normalized direction.
	toColor := func(x float64) uint8 {
		return uint8(math.Floor(255.0 * (x + 1.0) / 2.0))
	}
	return color.RGBA{
		R: toColor(d.Direction.X),
		G: toColor(d.Direction.Y),
		B: toColor(d.Direction.Z),
		A: 255,
	}
}
