package system

import (
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

// MovementSystem integrates Velocity for entities the physics step does not
// own.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	_, dt := now(w)
	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, v *component.Velocity, t *component.Transform) {
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && !body.Driven {
			return
		}
		t.X += v.X * dt
		t.Y += v.Y * dt
	})
}
