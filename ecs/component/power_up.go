package component

import (
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/gameplay"
)

// PowerUp binds a gameplay power-up to its root entity. Cube is the child
// entity drawn as the spinning block.
type PowerUp struct {
	State *gameplay.PowerUp
	Cube  ecs.Entity
}

var PowerUpComponent = ecs.NewComponent[PowerUp]()
