package roadgrid

// MeshTag Kind of placed road segment mesh. The map generator emits one tag
// per placement and the builder derives the cell's traffic direction from it.
type MeshTag uint16

const (
	TAG_ROAD_TWO_LANES_LANE_RIGHT = MeshTag(iota + 1)
	TAG_ROAD_TWO_LANES_LANE_LEFT
	TAG_ROAD_TWO_LANES_SIDEWALK_LEFT
	TAG_ROAD_TWO_LANES_SIDEWALK_RIGHT
	TAG_ROAD_90DEG_TURN_LANE_0
	TAG_ROAD_90DEG_TURN_LANE_1
	TAG_ROAD_90DEG_TURN_LANE_2
	TAG_ROAD_90DEG_TURN_LANE_3
	TAG_ROAD_T_INTERSECTION
	TAG_ROAD_X_INTERSECTION
)

func (iotaIdx MeshTag) String() string {
	return [...]string{"road_two_lanes_lane_right", "road_two_lanes_lane_left", "road_two_lanes_sidewalk_left", "road_two_lanes_sidewalk_right", "road_90deg_turn_lane_0", "road_90deg_turn_lane_1", "road_90deg_turn_lane_2", "road_90deg_turn_lane_3", "road_t_intersection", "road_x_intersection"}[iotaIdx-1]
}

// laneFlow Canonical traffic flow attached to a mesh tag: yaw offset added to
// the placement rotation. Tags absent from the table produce on-road cells
// without direction (intersections, sidewalks).
type laneFlow struct {
	yawOffsetDegrees float64
}

var (
	laneFlowByTag = map[MeshTag]laneFlow{
		TAG_ROAD_TWO_LANES_LANE_RIGHT: {yawOffsetDegrees: 0.0},
		TAG_ROAD_90DEG_TURN_LANE_0:    {yawOffsetDegrees: 0.0},
		TAG_ROAD_TWO_LANES_LANE_LEFT:  {yawOffsetDegrees: 180.0},
		TAG_ROAD_90DEG_TURN_LANE_1:    {yawOffsetDegrees: 180.0},
		TAG_ROAD_90DEG_TURN_LANE_2:    {yawOffsetDegrees: 90.0},
		TAG_ROAD_90DEG_TURN_LANE_3:    {yawOffsetDegrees: 270.0},
	}
)
