package component

import "github.com/milk9111/shmup/ecs"

// Transform is in screen space, Y pointing down. TiltX and TiltY are the
// pitch and roll of the ship in radians, drawn as a squash.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	TiltX    float64
	TiltY    float64
}

var TransformComponent = ecs.NewComponent[Transform]()
