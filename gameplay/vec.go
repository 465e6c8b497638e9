package gameplay

import "math"

type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Vec3 holds Euler angles or per-axis rates, in degrees.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}
