package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/shmup/assets"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/prefabs"
)

func addHeroTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HeroTagComponent.Kind(), &component.HeroTag{})
}

func addEnemyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
}

func addProjectileTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ProjectileTagComponent.Kind(), &component.ProjectileTag{})
}

func addSfxTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SfxTagComponent.Kind(), &component.SfxTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	t := &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	}
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	if t.ScaleY == 0 {
		t.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addVelocity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.VelocityComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: spec.X, Y: spec.Y})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return err
	}
	img, err := assets.Shape(spec.Shape, spec.Width, spec.Height)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   img,
		OriginX: float64(spec.Width) / 2,
		OriginY: float64(spec.Height) / 2,
		Tint:    spec.Color.ColorOr(color.White),
		Alpha:   1,
	})
}

func addLabel(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LabelComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.LabelComponent.Kind(), &component.Label{
		Text:    spec.Text,
		Color:   spec.Color.ColorOr(color.White),
		Alpha:   1,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
	})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Frames <= 0 {
		return fmt.Errorf("ttl frames must be positive")
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: spec.Frames})
}

var collisionLayerNames = map[string]uint32{
	"hero":            component.LayerHero,
	"enemy":           component.LayerEnemy,
	"hero_projectile": component.LayerHeroProjectile,
	"power_up":        component.LayerPowerUp,
}

func collisionBits(names []string) (uint32, error) {
	var bits uint32
	for _, name := range names {
		bit, ok := collisionLayerNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown collision layer %q", name)
		}
		bits |= bit
	}
	return bits, nil
}

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CollisionLayerComponentSpec](raw)
	if err != nil {
		return err
	}
	category, err := collisionBits(spec.Category)
	if err != nil {
		return err
	}
	mask, err := collisionBits(spec.Mask)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: category, Mask: mask})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("physics body needs a radius or a size")
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:  spec.Width,
		Height: spec.Height,
		Radius: spec.Radius,
		Driven: spec.Driven,
	})
}

func addBoundsCheck(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BoundsCheckComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.BoundsCheckComponent.Kind(), &component.BoundsCheck{
		Radius:       spec.Radius,
		KeepOnScreen: spec.KeepOnScreen,
		IsOnScreen:   true,
	})
}
