package roadgrid

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

// Importer reads road geometry from OSM data in PBF-format and rasterizes it
// into a RoadMap. Ways are kept when their 'highway' tag is in the configured
// tag set; 'oneway' ways produce directed cells.
type Importer struct {
	filename      string
	highwayTags   []string
	cellsPerMeter float64
	roadHalfWidth float64
	verbose       bool
}

// NewImporter returns importer for given file with default parameters
func NewImporter(fileName string, options ...func(*Importer)) *Importer {
	importer := &Importer{
		filename:      fileName,
		highwayTags:   []string{"motorway", "primary", "primary_link", "secondary", "secondary_link", "residential", "tertiary", "tertiary_link", "unclassified", "trunk", "trunk_link", "motorway_link"},
		cellsPerMeter: defaultCellsPerMeter,
		roadHalfWidth: defaultRoadHalfWidth,
		verbose:       false,
	}
	for _, option := range options {
		option(importer)
	}
	return importer
}

func WithHighwayTags(highwayTags []string) func(*Importer) {
	return func(importer *Importer) {
		importer.highwayTags = highwayTags
	}
}

func WithCellsPerMeter(cellsPerMeter float64) func(*Importer) {
	return func(importer *Importer) {
		importer.cellsPerMeter = cellsPerMeter
	}
}

func WithRoadHalfWidth(roadHalfWidth float64) func(*Importer) {
	return func(importer *Importer) {
		importer.roadHalfWidth = roadHalfWidth
	}
}

func WithVerbose(verbose bool) func(*Importer) {
	return func(importer *Importer) {
		importer.verbose = verbose
	}
}

// checkTag Checks if incoming tag is represented in configured tag set
func (importer *Importer) checkTag(tag string) bool {
	for i := range importer.highwayTags {
		if importer.highwayTags[i] == tag {
			return true
		}
	}
	return false
}

type importedWay struct {
	nodes  osm.WayNodes
	oneway bool
}

// ImportRoadMap scans the PBF file and builds a road map from every matched
// way. Geometry is projected to planar meters (EPSG:3857) before stamping.
func (importer *Importer) ImportRoadMap() (*RoadMap, error) {
	file, err := os.Open(importer.filename)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer file.Close()

	if importer.verbose {
		fmt.Printf("Scanning ways...")
	}
	st := time.Now()
	scannerWays := osmpbf.New(context.Background(), file, 4)
	ways := []importedWay{}
	nodesNeeded := make(map[osm.NodeID]struct{})
	for scannerWays.Scan() {
		obj := scannerWays.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		tagMap := way.TagMap()
		tag, ok := tagMap["highway"]
		if !ok {
			continue
		}
		if !importer.checkTag(tag) {
			continue
		}
		oneway := false
		if v, ok := tagMap["oneway"]; ok {
			if v == "yes" || v == "1" {
				oneway = true
			}
		}
		for _, node := range way.Nodes {
			nodesNeeded[node.ID] = struct{}{}
		}
		ways = append(ways, importedWay{nodes: way.Nodes, oneway: oneway})
	}
	if err := scannerWays.Err(); err != nil {
		scannerWays.Close()
		return nil, errors.Wrap(err, "Scanner ways")
	}
	scannerWays.Close()
	if importer.verbose {
		fmt.Printf(" Done in %v. Ways: %d\n", time.Since(st), len(ways))
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't rewind file")
	}

	if importer.verbose {
		fmt.Printf("Scanning nodes...")
	}
	st = time.Now()
	scannerNodes := osmpbf.New(context.Background(), file, 4)
	nodes := make(map[osm.NodeID]orb.Point)
	for scannerNodes.Scan() {
		obj := scannerNodes.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := nodesNeeded[node.ID]; !ok {
			continue
		}
		nodes[node.ID] = orb.Point{node.Lon, node.Lat}
	}
	if err := scannerNodes.Err(); err != nil {
		scannerNodes.Close()
		return nil, errors.Wrap(err, "Scanner nodes")
	}
	scannerNodes.Close()
	if importer.verbose {
		fmt.Printf(" Done in %v. Nodes: %d\n", time.Since(st), len(nodes))
	}

	segments := make([]RoadSegment, 0, len(ways))
	for _, way := range ways {
		line := make(orb.LineString, 0, len(way.nodes))
		for _, node := range way.nodes {
			pt, ok := nodes[node.ID]
			if !ok {
				continue
			}
			line = append(line, pt)
		}
		if len(line) < 2 {
			continue
		}
		segments = append(segments, RoadSegment{
			Line:   lineToEuclidean(line),
			Oneway: way.oneway,
		})
	}
	if len(segments) == 0 {
		return nil, errors.New("No drivable ways found")
	}

	if importer.verbose {
		fmt.Printf("Rasterizing %d segments...", len(segments))
	}
	st = time.Now()
	rm, err := RasterizeSegments(segments, RasterConfig{
		CellsPerMeter:       importer.cellsPerMeter,
		RoadHalfWidthMeters: importer.roadHalfWidth,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Can't rasterize ways")
	}
	if importer.verbose {
		fmt.Printf(" Done in %v. Grid: %d x %d\n", time.Since(st), rm.Width(), rm.Height())
	}
	return rm, nil
}
