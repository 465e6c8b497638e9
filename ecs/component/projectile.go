package component

import (
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/gameplay"
)

type Projectile struct {
	Type   gameplay.WeaponType
	Damage float64
}

var ProjectileComponent = ecs.NewComponent[Projectile]()
