package system

import (
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/gameplay"
)

// HeroCollisionSystem feeds shield contacts to the hero and applies the
// outcome to the world.
type HeroCollisionSystem struct {
	fx *Effects
}

func NewHeroCollisionSystem(fx *Effects) *HeroCollisionSystem {
	return &HeroCollisionSystem{fx: fx}
}

func (s *HeroCollisionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, c := range w.Events().Contacts() {
		hero, ok := ecs.Get(w, c.Source, component.HeroComponent.Kind())
		if !ok || hero.Ship == nil || !ecs.IsAlive(w, c.Other) {
			continue
		}
		root := component.RootOf(w, c.Other)
		contact := describeContact(w, root)

		switch hero.Ship.OnCollision(contact) {
		case gameplay.CollisionEnemy:
			s.fx.Explode(w, root)
			component.DestroyTree(w, root)
		case gameplay.CollisionPowerUp:
			playSfx(w, "pickup")
		}
	}
}

func describeContact(w *ecs.World, root ecs.Entity) gameplay.Contact {
	c := gameplay.Contact{Root: gameplay.EntityRef(root)}
	if n, ok := ecs.Get(w, root, component.NameComponent.Kind()); ok {
		c.Name = n.Value
	}
	switch {
	case ecs.Has(w, root, component.EnemyTagComponent.Kind()):
		c.Kind = gameplay.ContactEnemy
	case ecs.Has(w, root, component.PowerUpComponent.Kind()):
		pu, _ := ecs.Get(w, root, component.PowerUpComponent.Kind())
		c.Kind = gameplay.ContactPowerUp
		c.PowerUp = pu.State
	}
	return c
}
