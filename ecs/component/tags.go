package component

import "github.com/milk9111/shmup/ecs"

type HeroTag struct{}

var HeroTagComponent = ecs.NewComponent[HeroTag]()

type EnemyTag struct{}

var EnemyTagComponent = ecs.NewComponent[EnemyTag]()

type ProjectileTag struct{}

var ProjectileTagComponent = ecs.NewComponent[ProjectileTag]()

// SfxTag marks the entity that owns the shared sound effects.
type SfxTag struct{}

var SfxTagComponent = ecs.NewComponent[SfxTag]()
