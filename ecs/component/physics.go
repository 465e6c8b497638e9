package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/ecs"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Driven bodies follow the entity transform; the rest integrate Velocity.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Width  float64
	Height float64
	Radius float64
	Driven bool
}

var PhysicsBodyComponent = ecs.NewComponent[PhysicsBody]()
