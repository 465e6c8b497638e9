package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/ecs/entity"
	"github.com/milk9111/shmup/gameplay"
)

const muzzleOffset = 24

// WeaponSystem gives every hero weapon slot a fire subscription. Fire events
// queue shots, which are resolved into projectiles after HeroSystem has run.
type WeaponSystem struct {
	env        *entity.Env
	projectile string
	heroes     map[ecs.Entity]*gameplay.Hero
	pending    []pendingShot
	logger     *log.Logger
}

type pendingShot struct {
	hero ecs.Entity
	slot int
}

func NewWeaponSystem(env *entity.Env, projectilePrefab string, logger *log.Logger) *WeaponSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &WeaponSystem{
		env:        env,
		projectile: projectilePrefab,
		heroes:     map[ecs.Entity]*gameplay.Hero{},
		logger:     logger,
	}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.env == nil {
		return
	}
	t, _ := now(w)

	shots := s.pending
	s.pending = nil
	for _, shot := range shots {
		s.fire(w, shot, t)
	}

	for e := range s.heroes {
		if !ecs.IsAlive(w, e) {
			delete(s.heroes, e)
		}
	}
	ecs.ForEach(w, component.HeroComponent.Kind(), func(e ecs.Entity, hero *component.Hero) {
		if hero.Ship == nil || s.heroes[e] == hero.Ship {
			return
		}
		s.heroes[e] = hero.Ship
		for i := range hero.Ship.Weapons {
			shot := pendingShot{hero: e, slot: i}
			hero.Ship.Subscribe(func() {
				s.pending = append(s.pending, shot)
			})
		}
	})
}

func (s *WeaponSystem) fire(w *ecs.World, shot pendingShot, t float64) {
	hero, ok := ecs.Get(w, shot.hero, component.HeroComponent.Kind())
	if !ok || hero.Ship == nil || shot.slot >= len(hero.Ship.Weapons) {
		return
	}
	tr, ok := ecs.Get(w, shot.hero, component.TransformComponent.Kind())
	if !ok {
		return
	}
	slot := &hero.Ship.Weapons[shot.slot]
	def := s.env.Catalog.Get(slot.Type)
	if !slot.TryFire(t, def.DelayBetweenShots) {
		return
	}

	x := tr.X
	if shot.slot < len(hero.Mounts) {
		x += hero.Mounts[shot.slot]
	}
	y := tr.Y - muzzleOffset
	for _, vel := range ProjectileVelocities(def) {
		if err := s.spawnProjectile(w, def, x, y, vel); err != nil {
			s.logger.Error("spawn projectile", "type", def.Type, "err", err)
			return
		}
	}
}

func (s *WeaponSystem) spawnProjectile(w *ecs.World, def gameplay.WeaponDefinition, x, y float64, vel gameplay.Vec2) error {
	e, err := entity.SpawnAt(w, s.env, s.projectile, x, y)
	if err != nil {
		return err
	}
	if p, ok := ecs.Get(w, e, component.ProjectileComponent.Kind()); ok {
		p.Type = def.Type
		p.Damage = def.DamageOnHit
	}
	if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		v.X, v.Y = vel.X, vel.Y
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.Rotation = math.Atan2(vel.X, -vel.Y)
	}
	if sp, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sp.Tint = def.ProjectileColor
	}
	return nil
}

// ProjectileVelocities returns one screen-space velocity per projectile of a
// volley. Spread fans out at -30, 0 and +30 degrees from straight up.
func ProjectileVelocities(def gameplay.WeaponDefinition) []gameplay.Vec2 {
	angles := []float64{0}
	if def.Type == gameplay.WeaponSpread {
		angles = []float64{0, -30, 30}
	}
	out := make([]gameplay.Vec2, 0, len(angles))
	for _, a := range angles {
		rad := a * math.Pi / 180
		out = append(out, gameplay.Vec2{X: def.Velocity * math.Sin(rad), Y: -def.Velocity * math.Cos(rad)})
	}
	return out
}
