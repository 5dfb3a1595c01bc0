package roadgrid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

const (
	pi180    = math.Pi / 180.0
	pi180Rev = 180.0 / math.Pi

	earthR = 20037508.34
)

// Vector Representation of point (or direction) in 3D space. The road map
// works in the ground plane, so Z is zero almost everywhere.
type Vector struct {
	X float64
	Y float64
	Z float64
}

// String returns pretty printed value for Vector
func (v Vector) String() string {
	return fmt.Sprintf("X: %f | Y: %f | Z: %f", v.X, v.Y, v.Z)
}

// Add returns component-wise sum of two vectors
func (v Vector) Add(u Vector) Vector {
	return Vector{v.X + u.X, v.Y + u.Y, v.Z + u.Z}
}

// Sub returns component-wise difference of two vectors
func (v Vector) Sub(u Vector) Vector {
	return Vector{v.X - u.X, v.Y - u.Y, v.Z - u.Z}
}

// Scale returns vector multiplied by given scalar
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns dot product of two vectors
func (v Vector) Dot(u Vector) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Length returns euclidean norm of vector
func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns unit vector of the same direction. Zero vector stays zero.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return v.Scale(1.0 / l)
}

// Point returns ground-plane projection of vector
func (v Vector) Point() orb.Point {
	return orb.Point{v.X, v.Y}
}

// Rotator Orientation as pitch/yaw/roll angles (degrees). Yaw is rotation
// about the vertical axis, counter-clockwise, zero along +X.
type Rotator struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// ForwardVector returns unit vector the rotator points along
func (r Rotator) ForwardVector() Vector {
	sp, cp := math.Sincos(degreesToRadians(r.Pitch))
	sy, cy := math.Sincos(degreesToRadians(r.Yaw))
	return Vector{X: cp * cy, Y: cp * sy, Z: sp}
}

// Transform Rigid placement: rotation followed by translation. Positions are
// rotated about the vertical axis only (ground-plane transform).
type Transform struct {
	Rotation Rotator
	Location Vector
}

// TransformPosition maps a position from local space to world space
func (t Transform) TransformPosition(v Vector) Vector {
	sy, cy := math.Sincos(degreesToRadians(t.Rotation.Yaw))
	return Vector{
		X: v.X*cy - v.Y*sy + t.Location.X,
		Y: v.X*sy + v.Y*cy + t.Location.Y,
		Z: v.Z + t.Location.Z,
	}
}

// InverseTransformPosition maps a position from world space back to local space
func (t Transform) InverseTransformPosition(v Vector) Vector {
	sy, cy := math.Sincos(degreesToRadians(t.Rotation.Yaw))
	d := v.Sub(t.Location)
	return Vector{
		X: d.X*cy + d.Y*sy,
		Y: -d.X*sy + d.Y*cy,
		Z: d.Z,
	}
}

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// radiansTodegrees r = deg  * 180 / pi
func radiansTodegrees(d float64) float64 {
	return d * pi180Rev
}

// clampFloatToInt floors given value and clamps result to [min, max]
func clampFloatToInt(value float64, min, max int) int {
	v := int(math.Floor(value))
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func epsg4326To3857(lon, lat float64) (float64, float64) {
	x := lon * earthR / 180
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * earthR / 180
	return x, y
}

func pointToEuclidean(pt orb.Point) orb.Point {
	euclideanX, euclideanY := epsg4326To3857(pt.Lon(), pt.Lat())
	return orb.Point{euclideanX, euclideanY}
}

func lineToEuclidean(line orb.LineString) orb.LineString {
	newLine := make(orb.LineString, len(line))
	for i, pt := range line {
		newLine[i] = pointToEuclidean(pt)
	}
	return newLine
}

// segmentHeading returns heading of segment p->q in radians (zero along +X)
func segmentHeading(p, q orb.Point) float64 {
	return math.Atan2(q.Y()-p.Y(), q.X()-p.X())
}
