package component

import "github.com/milk9111/shmup/ecs"

// Velocity in pixels per second. Entities with a PhysicsBody are moved by the
// physics step instead of MovementSystem.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = ecs.NewComponent[Velocity]()
