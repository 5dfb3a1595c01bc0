package roadgrid

import (
	"image/color"
)

// DebugDrawSink Receiver of debug drawing commands in a 3D scene
type DebugDrawSink interface {
	ClearPersistentDrawings()
	DrawPoint(location Vector, size float64, c color.RGBA, persistent bool)
}

const debugPointSize = 20.0

// DrawDebugCells clears the sink's persistent drawings and, unless justClear
// is set, draws one colored point per cell at its world location using the
// same encoding as raster export.
func (rm *RoadMap) DrawDebugCells(sink DebugDrawSink, justClear bool) {
	sink.ClearPersistentDrawings()
	if justClear {
		return
	}
	for x := uint32(0); x < rm.width; x++ {
		for y := uint32(0); y < rm.height; y++ {
			location := rm.WorldLocation(x, y)
			sink.DrawPoint(location, debugPointSize, rm.dataAtPixel(x, y).Encode(), true)
		}
	}
}
