package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"roadgrid"
)

var (
	tagStr      = flag.String("tags", "motorway,primary,primary_link,road,secondary,secondary_link,residential,tertiary,tertiary_link,unclassified,trunk,trunk_link,motorway_link", "Set of needed 'highway' tags (separated by commas)")
	osmFileName = flag.String("file", "my_map.osm.pbf", "Filename of *.osm.pbf file (it has to be compressed)")
	out         = flag.String("png", "road_map.png", "Filename of output PNG raster")
	geojsonOut  = flag.String("geojson", "", "Optional filename of GeoJSON export of on-road cells")
	resolution  = flag.Float64("resolution", 0.5, "Resolution of the grid (cells per meter)")
	halfWidth   = flag.Float64("halfwidth", 3.5, "Half width of stamped roads (meters)")
	verbose     = flag.Bool("verbose", true, "Print progress")
)

func main() {

	flag.Parse()

	tags := strings.Split(*tagStr, ",")
	importer := roadgrid.NewImporter(
		*osmFileName,
		roadgrid.WithHighwayTags(tags),
		roadgrid.WithCellsPerMeter(*resolution),
		roadgrid.WithRoadHalfWidth(*halfWidth),
		roadgrid.WithVerbose(*verbose),
	)

	rm, err := importer.ImportRoadMap()
	if err != nil {
		fmt.Println(err)
		return
	}

	st := time.Now()
	if _, err := rm.SaveAsPNG(*out); err != nil {
		fmt.Println(err)
		return
	}
	if *geojsonOut != "" {
		if err := rm.ExportGeoJSON(*geojsonOut); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("Saved road map cells to '%s'\n", *geojsonOut)
	}
	if *verbose {
		fmt.Printf("Exports done in %v\n", time.Since(st))
	}
}
