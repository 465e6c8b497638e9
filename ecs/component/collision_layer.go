package component

import "github.com/milk9111/shmup/ecs"

const (
	LayerHero uint32 = 1 << iota
	LayerEnemy
	LayerHeroProjectile
	LayerPowerUp
)

// CollisionLayer allows entities to declare a collision category and mask
// so the physics system can selectively enable/disable collisions between
// groups of objects.
type CollisionLayer struct {
	// Category is this entity's category bit. Zero means category 1.
	Category uint32 `yaml:"category"`
	// Mask lists the categories this entity collides with. Zero means all.
	Mask uint32 `yaml:"mask"`
}

var CollisionLayerComponent = ecs.NewComponent[CollisionLayer]()
