package roadgrid

import (
	"fmt"
)

// RoadMap Raster overlay of a scene: per-cell drivability and expected
// traffic direction, plus the affine mapping between world space and pixel
// indices. The map is populated once through GridBuilder and is read-only
// afterwards; concurrent readers are safe as long as no population is in
// progress.
type RoadMap struct {
	width        uint32
	height       uint32
	cellsPerUnit float64
	worldToMap   Transform
	mapOffset    Vector
	cells        []CellData
}

// NewRoadMap returns valid empty map (single cell, every point is off-road)
func NewRoadMap() *RoadMap {
	return &RoadMap{
		width:        1,
		height:       1,
		cellsPerUnit: 1.0,
		cells:        []CellData{{OffRoad: true}},
	}
}

// Width returns number of cells along X axis
func (rm *RoadMap) Width() uint32 {
	return rm.width
}

// Height returns number of cells along Y axis
func (rm *RoadMap) Height() uint32 {
	return rm.height
}

// CellsPerUnit returns map resolution (cells per unit of world length)
func (rm *RoadMap) CellsPerUnit() float64 {
	return rm.cellsPerUnit
}

// IsValid reports whether the backing storage matches the declared dimensions
func (rm *RoadMap) IsValid() bool {
	return len(rm.cells) > 0 && uint32(len(rm.cells)) == rm.width*rm.height
}

// WorldLocation returns world-space position of the origin of cell (pixelX, pixelY)
func (rm *RoadMap) WorldLocation(pixelX, pixelY uint32) Vector {
	relative := Vector{
		X: float64(pixelX) / rm.cellsPerUnit,
		Y: float64(pixelY) / rm.cellsPerUnit,
	}
	return rm.worldToMap.InverseTransformPosition(relative.Add(rm.mapOffset))
}

// DataAt returns the cell under the given world location. Every finite world
// position maps to some cell: indices are clamped to the map edges, so
// querying slightly outside the covered area yields the nearest edge cell.
// Panics if the map is invalid, since that indicates a construction-order bug
// in the caller.
func (rm *RoadMap) DataAt(worldLocation Vector) *CellData {
	if !rm.IsValid() {
		panic(fmt.Sprintf("roadgrid: query on invalid road map (%d x %d, %d cells)", rm.width, rm.height, len(rm.cells)))
	}
	location := rm.worldToMap.TransformPosition(worldLocation).Sub(rm.mapOffset)
	x := clampFloatToInt(rm.cellsPerUnit*location.X, 0, int(rm.width)-1)
	y := clampFloatToInt(rm.cellsPerUnit*location.Y, 0, int(rm.height)-1)
	return rm.dataAtPixel(uint32(x), uint32(y))
}

func (rm *RoadMap) dataAtPixel(pixelX, pixelY uint32) *CellData {
	return &rm.cells[pixelY*rm.width+pixelX]
}

// IntersectionResult Fractions of a sampled footprint lying off-road and on
// lanes flowing against the footprint's forward direction. Both values are in
// [0, 1] and a sample contributes to at most one of them.
type IntersectionResult struct {
	OffRoad      float64
	OppositeLane float64
}

// Intersect estimates road-surface coverage of an oriented box footprint by
// regular sampling. Sample offsets run over [-extent, extent) on each axis
// with step 1/samplesPerUnit, anchored at -extent; the sampling phase is not
// centered, which slightly biases cells near the box boundary. A sample on an
// off-road cell counts toward OffRoad; otherwise a sample on a directed cell
// whose direction has positive dot product with the box forward vector counts
// toward OppositeLane (a lane flowing along the footprint's own heading means
// the footprint faces against that lane's traffic). Degenerate extents or too
// coarse sampling yield zero samples and a zero result with a warning.
func (rm *RoadMap) Intersect(boxTransform Transform, boxExtent Vector, samplesPerUnit float64) IntersectionResult {
	directionOfMovement := boxTransform.Rotation.ForwardVector()
	checkCount := 0
	result := IntersectionResult{}
	if samplesPerUnit > 0.0 {
		step := 1.0 / samplesPerUnit
		for x := -boxExtent.X; x < boxExtent.X; x += step {
			for y := -boxExtent.Y; y < boxExtent.Y; y += step {
				checkCount++
				location := boxTransform.TransformPosition(Vector{X: x, Y: y})
				data := rm.DataAt(location)
				if data.OffRoad {
					result.OffRoad += 1.0
				} else if data.HasDirection && data.Direction.Dot(directionOfMovement) > 0.0 {
					result.OppositeLane += 1.0
				}
			}
		}
	}
	if checkCount > 0 {
		result.OffRoad /= float64(checkCount)
		result.OppositeLane /= float64(checkCount)
	} else {
		fmt.Printf("Warning. Road map intersection did zero checks\n")
	}
	return result
}
