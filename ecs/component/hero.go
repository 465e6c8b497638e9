package component

import (
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/gameplay"
)

// Hero binds the gameplay ship to its entity. Mounts are the x offsets of
// the weapon slots, one per slot.
type Hero struct {
	Ship   *gameplay.Hero
	Mounts []float64
}

var HeroComponent = ecs.NewComponent[Hero]()

// HeroDied is added to the game-state entity when the ship is destroyed.
type HeroDied struct {
	At    float64
	Score int
}

var HeroDiedComponent = ecs.NewComponent[HeroDied]()

// RestartRequest asks the game to rebuild the world once the clock reaches At.
type RestartRequest struct {
	At float64
}

var RestartRequestComponent = ecs.NewComponent[RestartRequest]()

// EventHeroDied is pushed on the world queue with the hero entity as Data.
const EventHeroDied = "hero_died"
