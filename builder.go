package roadgrid

import (
	"github.com/pkg/errors"
)

// GridBuilder Population protocol for a RoadMap: Configure once, then append
// exactly width*height cells in row-major order (index = y*width + x), then
// Build. The append order must match how queries interpret indices; Build
// fails when the cell count does not match the configured dimensions.
type GridBuilder struct {
	rm         *RoadMap
	configured bool
}

// NewGridBuilder returns builder holding the default valid empty map
func NewGridBuilder() *GridBuilder {
	return &GridBuilder{
		rm: NewRoadMap(),
	}
}

// Configure sets map dimensions, resolution and world mapping. May be called
// again to start a fresh population; previously appended cells are dropped.
func (builder *GridBuilder) Configure(width, height uint32, cellsPerUnit float64, worldToMap Transform, mapOffset Vector) error {
	if width == 0 || height == 0 {
		return errors.Errorf("Bad road map dimensions: %d x %d", width, height)
	}
	if cellsPerUnit <= 0.0 {
		return errors.Errorf("Bad road map resolution: %f", cellsPerUnit)
	}
	builder.rm = &RoadMap{
		width:        width,
		height:       height,
		cellsPerUnit: cellsPerUnit,
		worldToMap:   worldToMap,
		mapOffset:    mapOffset,
		cells:        make([]CellData, 0, int(width)*int(height)),
	}
	builder.configured = true
	return nil
}

// AppendEmpty appends one off-road cell
func (builder *GridBuilder) AppendEmpty() {
	builder.rm.cells = append(builder.rm.cells, CellData{OffRoad: true})
}

// AppendRoad appends one on-road cell without canonical direction
func (builder *GridBuilder) AppendRoad() {
	builder.rm.cells = append(builder.rm.cells, CellData{})
}

// AppendDirected appends one on-road cell flowing along the given direction
func (builder *GridBuilder) AppendDirected(direction Vector) {
	builder.rm.cells = append(builder.rm.cells, CellData{
		HasDirection: true,
		Direction:    direction.Normalize(),
	})
}

// AppendFromPlacement appends one on-road cell for a placed road segment
// mesh. The cell direction is the placement rotation plus the tag's yaw
// offset; tags without canonical flow (intersections, sidewalks) produce an
// undirected cell. invertDirection negates the resulting direction, for
// generators that mirror segment meshes.
func (builder *GridBuilder) AppendFromPlacement(tag MeshTag, placement Transform, invertDirection bool) {
	data := CellData{}
	if flow, ok := laneFlowByTag[tag]; ok {
		rotator := placement.Rotation
		rotator.Yaw += flow.yawOffsetDegrees
		data.HasDirection = true
		data.Direction = rotator.ForwardVector()
		if invertDirection {
			data.Direction = data.Direction.Scale(-1.0)
		}
	}
	builder.rm.cells = append(builder.rm.cells, data)
}

// Build finalizes population and hands the map over. The builder resets to
// the default empty map so the returned RoadMap is never aliased.
func (builder *GridBuilder) Build() (*RoadMap, error) {
	if !builder.configured {
		return nil, errors.New("Road map was not configured")
	}
	expected := int(builder.rm.width) * int(builder.rm.height)
	if len(builder.rm.cells) != expected {
		return nil, errors.Errorf("Appended %d cells but %d x %d map needs %d", len(builder.rm.cells), builder.rm.width, builder.rm.height, expected)
	}
	rm := builder.rm
	builder.rm = NewRoadMap()
	builder.configured = false
	return rm, nil
}
