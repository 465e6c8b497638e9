package entity

import (
	"fmt"

	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/gameplay"
	"github.com/milk9111/shmup/prefabs"
)

func addHero(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HeroComponentSpec](raw)
	if err != nil {
		return err
	}
	cfg := gameplay.DefaultHeroConfig()
	if spec.Speed != 0 {
		cfg.Speed = spec.Speed
	}
	if spec.RollMultiplier != 0 {
		cfg.RollMultiplier = spec.RollMultiplier
	}
	if spec.PitchMultiplier != 0 {
		cfg.PitchMultiplier = spec.PitchMultiplier
	}
	if spec.Slots > 0 {
		cfg.Slots = spec.Slots
	}
	if spec.ShieldLevel != nil {
		cfg.ShieldLevel = *spec.ShieldLevel
	}
	if spec.BaseWeapon != "" {
		base, err := gameplay.ParseWeaponType(spec.BaseWeapon)
		if err != nil {
			return err
		}
		cfg.BaseWeapon = base
	}

	ship := gameplay.NewHero(cfg, ctx.Env.logger())
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		ship.Position = gameplay.Vec2{X: t.X, Y: -t.Y}
	}
	// A second hero is logged by Initialize and keeps running unregistered.
	_ = ship.Initialize(ctx.Env.registry())
	ship.OnDeath = func(*gameplay.Hero) {
		w.Events().Push(ecs.Event{Type: component.EventHeroDied, Data: e})
	}

	mounts := make([]float64, cfg.Slots)
	copy(mounts, spec.Mounts)
	return ecs.Add(w, e, component.HeroComponent.Kind(), &component.Hero{Ship: ship, Mounts: mounts})
}

func addEnemy(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.EnemyComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Health <= 0 {
		spec.Health = 1
	}
	if spec.PowerUpDropChance < 0 || spec.PowerUpDropChance > 1 {
		return fmt.Errorf("power_up_drop_chance %v outside [0,1]", spec.PowerUpDropChance)
	}
	name := ctx.PrefabPath
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
		name = n.Value
	}
	return ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{
		Name:              name,
		Speed:             spec.Speed,
		Health:            spec.Health,
		Score:             spec.Score,
		Script:            spec.Script,
		PowerUpDropChance: spec.PowerUpDropChance,
		SpawnedAt:         Now(w),
	})
}

func addProjectile(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{Type: gameplay.WeaponNone, Damage: 1})
}

func addPowerUp(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PowerUpComponentSpec](raw)
	if err != nil {
		return err
	}
	cfg := gameplay.DefaultPowerUpConfig()
	if spec.RotMinMax != [2]float64{} {
		cfg.RotMin, cfg.RotMax = spec.RotMinMax[0], spec.RotMinMax[1]
	}
	if spec.DriftMinMax != [2]float64{} {
		cfg.DriftMin, cfg.DriftMax = spec.DriftMinMax[0], spec.DriftMinMax[1]
	}
	if spec.UnitScale > 0 {
		cfg.UnitScale = spec.UnitScale
	}
	if spec.LifeTime > 0 {
		cfg.LifeTime = spec.LifeTime
	}
	if spec.FadeTime > 0 {
		cfg.FadeTime = spec.FadeTime
	}
	if cfg.RotMin > cfg.RotMax || cfg.DriftMin > cfg.DriftMax {
		return fmt.Errorf("power-up ranges must be [min, max]")
	}

	pu := gameplay.NewPowerUp(cfg, ctx.Env.catalog(), ctx.Env.logger())
	pu.Initialize(ctx.Env.rng(), gameplay.WeaponNone, Now(w))
	pu.OnDestroy = func(*gameplay.PowerUp) {
		component.DestroyTree(w, e)
	}

	// Drift is Y-up; the world is Y-down.
	vel := &component.Velocity{X: pu.Drift.X, Y: -pu.Drift.Y}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), vel); err != nil {
		return err
	}
	return ecs.Add(w, e, component.PowerUpComponent.Kind(), &component.PowerUp{State: pu})
}

// Now reads the world clock, or zero before the clock entity exists.
func Now(w *ecs.World) float64 {
	e, ok := ecs.First(w, component.ClockComponent.Kind())
	if !ok {
		return 0
	}
	c, _ := ecs.Get(w, e, component.ClockComponent.Kind())
	return c.Now
}
