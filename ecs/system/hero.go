package system

import (
	"math"

	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/gameplay"
)

// HeroSystem feeds input to every ship. The ship works Y-up, the world Y-down.
type HeroSystem struct{}

func NewHeroSystem() *HeroSystem {
	return &HeroSystem{}
}

func (s *HeroSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, dt := now(w)
	ecs.ForEach3(w, component.HeroComponent.Kind(), component.TransformComponent.Kind(), component.InputComponent.Kind(),
		func(e ecs.Entity, hero *component.Hero, t *component.Transform, in *component.Input) {
			ship := hero.Ship
			if ship == nil || ship.Dead() {
				return
			}
			ship.Position = gameplay.Vec2{X: t.X, Y: -t.Y}
			fired := ship.OnFrame(dt, in.Horizontal, in.Vertical, in.Fire)
			t.X = ship.Position.X
			t.Y = -ship.Position.Y
			t.TiltX = ship.Orientation.Pitch * math.Pi / 180
			t.TiltY = ship.Orientation.Roll * math.Pi / 180

			if fired {
				if a, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok {
					a.Request("shoot")
				}
			}
		})
}
