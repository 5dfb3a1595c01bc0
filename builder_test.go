package roadgrid

import (
	"testing"
)

func TestBuilderCountEnforced(t *testing.T) {
	builder := NewGridBuilder()
	if err := builder.Configure(2, 2, 1.0, Transform{}, Vector{}); err != nil {
		t.Fatalf("Can't configure builder: %v", err)
	}
	builder.AppendEmpty()
	builder.AppendEmpty()
	builder.AppendEmpty()
	if _, err := builder.Build(); err == nil {
		t.Error("Build with 3 of 4 cells appended must fail")
	}
	builder.AppendEmpty()
	rm, err := builder.Build()
	if err != nil {
		t.Fatalf("Build with all cells appended must succeed, but got: %v", err)
	}
	if !rm.IsValid() {
		t.Error("Built road map must be valid")
	}
}

func TestBuilderUnconfigured(t *testing.T) {
	if _, err := NewGridBuilder().Build(); err == nil {
		t.Error("Build on an unconfigured builder must fail")
	}
}

func TestBuilderRejectsBadConfiguration(t *testing.T) {
	builder := NewGridBuilder()
	if err := builder.Configure(0, 5, 1.0, Transform{}, Vector{}); err == nil {
		t.Error("Zero width must be rejected")
	}
	if err := builder.Configure(5, 5, 0.0, Transform{}, Vector{}); err == nil {
		t.Error("Zero resolution must be rejected")
	}
	if err := builder.Configure(5, 5, -2.0, Transform{}, Vector{}); err == nil {
		t.Error("Negative resolution must be rejected")
	}
}

func TestAppendFromPlacementLaneRight(t *testing.T) {
	builder := NewGridBuilder()
	if err := builder.Configure(1, 1, 1.0, Transform{}, Vector{}); err != nil {
		t.Fatalf("Can't configure builder: %v", err)
	}
	builder.AppendFromPlacement(TAG_ROAD_TWO_LANES_LANE_RIGHT, Transform{Rotation: Rotator{Yaw: 30.0}}, false)
	rm, err := builder.Build()
	if err != nil {
		t.Fatalf("Can't build road map: %v", err)
	}
	data := rm.dataAtPixel(0, 0)
	if data.OffRoad || !data.HasDirection {
		t.Fatal("Lane placement must produce a directed on-road cell")
	}
	expected := Rotator{Yaw: 30.0}.ForwardVector()
	if !closeEnough(data.Direction.X, expected.X) || !closeEnough(data.Direction.Y, expected.Y) {
		t.Errorf("Lane-right direction must be %s, but got %s", expected, data.Direction)
	}
}

func TestAppendFromPlacementLaneLeft(t *testing.T) {
	placement := Transform{Rotation: Rotator{Yaw: 30.0}}
	builder := NewGridBuilder()
	if err := builder.Configure(2, 1, 1.0, Transform{}, Vector{}); err != nil {
		t.Fatalf("Can't configure builder: %v", err)
	}
	builder.AppendFromPlacement(TAG_ROAD_TWO_LANES_LANE_LEFT, placement, false)
	builder.AppendFromPlacement(TAG_ROAD_TWO_LANES_LANE_LEFT, placement, true)
	rm, err := builder.Build()
	if err != nil {
		t.Fatalf("Can't build road map: %v", err)
	}

	// Lane-left flows against the placement: yaw plus 180 degrees.
	expected := Rotator{Yaw: 210.0}.ForwardVector()
	straight := rm.dataAtPixel(0, 0)
	if !closeEnough(straight.Direction.X, expected.X) || !closeEnough(straight.Direction.Y, expected.Y) {
		t.Errorf("Lane-left direction must be %s, but got %s", expected, straight.Direction)
	}

	inverted := rm.dataAtPixel(1, 0)
	negated := straight.Direction.Scale(-1.0)
	if inverted.Direction != negated {
		t.Errorf("Inverted direction must be exactly %s, but got %s", negated, inverted.Direction)
	}
}

func TestAppendFromPlacementTurnLanes(t *testing.T) {
	cases := []struct {
		tag         MeshTag
		expectedYaw float64
	}{
		{TAG_ROAD_90DEG_TURN_LANE_0, 0.0},
		{TAG_ROAD_90DEG_TURN_LANE_1, 180.0},
		{TAG_ROAD_90DEG_TURN_LANE_2, 90.0},
		{TAG_ROAD_90DEG_TURN_LANE_3, 270.0},
	}
	for _, c := range cases {
		builder := NewGridBuilder()
		if err := builder.Configure(1, 1, 1.0, Transform{}, Vector{}); err != nil {
			t.Fatalf("Can't configure builder: %v", err)
		}
		builder.AppendFromPlacement(c.tag, Transform{}, false)
		rm, err := builder.Build()
		if err != nil {
			t.Fatalf("Can't build road map: %v", err)
		}
		data := rm.dataAtPixel(0, 0)
		expected := Rotator{Yaw: c.expectedYaw}.ForwardVector()
		if !closeEnough(data.Direction.X, expected.X) || !closeEnough(data.Direction.Y, expected.Y) {
			t.Errorf("Tag %s direction must be %s, but got %s", c.tag, expected, data.Direction)
		}
	}
}

func TestAppendFromPlacementUnknownTagUndirected(t *testing.T) {
	tags := []MeshTag{
		TAG_ROAD_T_INTERSECTION,
		TAG_ROAD_X_INTERSECTION,
		TAG_ROAD_TWO_LANES_SIDEWALK_LEFT,
		MeshTag(9999),
	}
	builder := NewGridBuilder()
	if err := builder.Configure(uint32(len(tags)), 1, 1.0, Transform{}, Vector{}); err != nil {
		t.Fatalf("Can't configure builder: %v", err)
	}
	for _, tag := range tags {
		builder.AppendFromPlacement(tag, Transform{Rotation: Rotator{Yaw: 45.0}}, false)
	}
	rm, err := builder.Build()
	if err != nil {
		t.Fatalf("Can't build road map: %v", err)
	}
	for x := uint32(0); x < rm.Width(); x++ {
		data := rm.dataAtPixel(x, 0)
		if data.OffRoad {
			t.Errorf("Placement cell %d must be on-road", x)
		}
		if data.HasDirection {
			t.Errorf("Tag without canonical flow must produce an undirected cell, but cell %d has direction %s", x, data.Direction)
		}
	}
}

func TestAppendDirectedNormalizes(t *testing.T) {
	builder := NewGridBuilder()
	if err := builder.Configure(1, 1, 1.0, Transform{}, Vector{}); err != nil {
		t.Fatalf("Can't configure builder: %v", err)
	}
	builder.AppendDirected(Vector{X: 3.0, Y: 4.0})
	rm, err := builder.Build()
	if err != nil {
		t.Fatalf("Can't build road map: %v", err)
	}
	data := rm.dataAtPixel(0, 0)
	if !closeEnough(data.Direction.Length(), 1.0) {
		t.Errorf("Appended direction must be normalized, but has length %f", data.Direction.Length())
	}
	if !closeEnough(data.Direction.X, 0.6) || !closeEnough(data.Direction.Y, 0.8) {
		t.Errorf("Direction must keep its heading, but got %s", data.Direction)
	}
}
