package roadgrid

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// RoadSegment Center line of one road piece in planar map coordinates
// (meters). Oneway segments stamp directed cells flowing along the line;
// bidirectional segments stamp undirected road.
type RoadSegment struct {
	Line   orb.LineString
	Oneway bool
}

// RasterConfig Resolution and road geometry used when stamping segments
type RasterConfig struct {
	CellsPerMeter       float64
	RoadHalfWidthMeters float64
}

const (
	defaultCellsPerMeter = 0.5
	defaultRoadHalfWidth = 3.5

	// Overlapping directed stamps whose headings disagree by more than 60
	// degrees mark a crossing; the cell loses its canonical direction.
	crossingDotThreshold = 0.5

	maxRasterCells = 1 << 26
)

// RasterizeSegments builds a road map covering all given segments. The grid
// frame is axis-aligned with the segment coordinates (identity world
// transform); the map offset anchors pixel (0, 0) at the padded lower-left
// corner of the segment bounds.
func RasterizeSegments(segments []RoadSegment, cfg RasterConfig) (*RoadMap, error) {
	if cfg.CellsPerMeter <= 0.0 {
		cfg.CellsPerMeter = defaultCellsPerMeter
	}
	if cfg.RoadHalfWidthMeters <= 0.0 {
		cfg.RoadHalfWidthMeters = defaultRoadHalfWidth
	}

	lines := make([]orb.LineString, 0, len(segments))
	for i := range segments {
		if len(segments[i].Line) >= 2 {
			lines = append(lines, segments[i].Line)
		}
	}
	if len(lines) == 0 {
		return nil, errors.New("No segment geometry to rasterize")
	}

	bound := lines[0].Bound()
	for _, line := range lines[1:] {
		bound = bound.Union(line.Bound())
	}
	pad := cfg.RoadHalfWidthMeters + 1.0/cfg.CellsPerMeter
	minX := bound.Min.X() - pad
	minY := bound.Min.Y() - pad
	width := uint32(math.Ceil((bound.Max.X()+pad-minX)*cfg.CellsPerMeter)) + 1
	height := uint32(math.Ceil((bound.Max.Y()+pad-minY)*cfg.CellsPerMeter)) + 1
	if int(width)*int(height) > maxRasterCells {
		return nil, errors.Errorf("Raster of %d x %d cells is too large", width, height)
	}

	cells := make([]CellData, int(width)*int(height))
	for i := range cells {
		cells[i].OffRoad = true
	}

	for i := range segments {
		line := segments[i].Line
		for j := 1; j < len(line); j++ {
			stampSegment(cells, width, height, minX, minY, cfg, line[j-1], line[j], segments[i].Oneway)
		}
	}

	builder := NewGridBuilder()
	err := builder.Configure(width, height, cfg.CellsPerMeter, Transform{}, Vector{X: minX, Y: minY})
	if err != nil {
		return nil, errors.Wrap(err, "Can't configure road map")
	}
	for _, cell := range cells {
		switch {
		case cell.OffRoad:
			builder.AppendEmpty()
		case cell.HasDirection:
			builder.AppendDirected(cell.Direction)
		default:
			builder.AppendRoad()
		}
	}
	return builder.Build()
}

// stampSegment walks the segment at half-cell steps and stamps a disk of the
// configured half width at every step.
func stampSegment(cells []CellData, width, height uint32, minX, minY float64, cfg RasterConfig, p, q orb.Point, oneway bool) {
	heading := segmentHeading(p, q)
	sh, ch := math.Sincos(heading)
	direction := Vector{X: ch, Y: sh}

	length := math.Hypot(q.X()-p.X(), q.Y()-p.Y())
	step := 0.5 / cfg.CellsPerMeter
	for travelled := 0.0; ; travelled += step {
		if travelled > length {
			travelled = length
		}
		cx := p.X() + ch*travelled
		cy := p.Y() + sh*travelled
		stampDisk(cells, width, height, minX, minY, cfg, cx, cy, direction, oneway)
		if travelled == length {
			break
		}
	}
}

func stampDisk(cells []CellData, width, height uint32, minX, minY float64, cfg RasterConfig, cx, cy float64, direction Vector, oneway bool) {
	hw := cfg.RoadHalfWidthMeters
	cpm := cfg.CellsPerMeter
	loX := clampFloatToInt((cx-hw-minX)*cpm, 0, int(width)-1)
	hiX := clampFloatToInt((cx+hw-minX)*cpm, 0, int(width)-1)
	loY := clampFloatToInt((cy-hw-minY)*cpm, 0, int(height)-1)
	hiY := clampFloatToInt((cy+hw-minY)*cpm, 0, int(height)-1)
	for py := loY; py <= hiY; py++ {
		for px := loX; px <= hiX; px++ {
			// Distance from the stamp center to the cell center.
			dx := (float64(px)+0.5)/cpm + minX - cx
			dy := (float64(py)+0.5)/cpm + minY - cy
			if dx*dx+dy*dy > hw*hw {
				continue
			}
			stampCell(&cells[py*int(width)+px], direction, oneway)
		}
	}
}

// stampCell merges one stamp into a cell. Freshly covered cells take the
// stamp's direction; cells already covered keep their direction unless the
// new stamp disagrees, which marks a crossing and demotes the cell to
// undirected road.
func stampCell(cell *CellData, direction Vector, oneway bool) {
	if cell.OffRoad {
		cell.OffRoad = false
		if oneway {
			cell.HasDirection = true
			cell.Direction = direction
		}
		return
	}
	if !cell.HasDirection {
		return
	}
	if !oneway || cell.Direction.Dot(direction) < crossingDotThreshold {
		cell.HasDirection = false
		cell.Direction = Vector{}
	}
}
