package system

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/ecs/entity"
	"github.com/milk9111/shmup/gameplay"
)

// WeaponWeight is one row of the power-up drop table.
type WeaponWeight struct {
	Type   gameplay.WeaponType
	Weight int
}

// PickWeighted maps r in [0, 1) onto the table by weight. It returns
// WeaponNone for an empty or weightless table.
func PickWeighted(table []WeaponWeight, r float64) gameplay.WeaponType {
	total := 0
	for _, row := range table {
		total += max(row.Weight, 0)
	}
	if total == 0 {
		return gameplay.WeaponNone
	}
	target := r * float64(total)
	acc := 0.0
	for _, row := range table {
		if row.Weight <= 0 {
			continue
		}
		acc += float64(row.Weight)
		if target < acc {
			return row.Type
		}
	}
	return table[len(table)-1].Type
}

// ProjectileSystem applies hits from hero projectiles, scores kills and rolls
// power-up drops. Projectiles that leave the screen are removed.
type ProjectileSystem struct {
	env     *entity.Env
	fx      *Effects
	powerUp string
	drops   []WeaponWeight
	rng     *rand.Rand
	logger  *log.Logger
}

func NewProjectileSystem(env *entity.Env, fx *Effects, powerUpPrefab string, drops []WeaponWeight, logger *log.Logger) *ProjectileSystem {
	if logger == nil {
		logger = log.Default()
	}
	rng := rand.New(rand.NewPCG(3, 5))
	if env != nil && env.Rand != nil {
		rng = env.Rand
	}
	return &ProjectileSystem{env: env, fx: fx, powerUp: powerUpPrefab, drops: drops, rng: rng, logger: logger}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, c := range w.Events().Contacts() {
		// A projectile already spent this frame is no longer alive.
		if !ecs.IsAlive(w, c.Source) || !ecs.IsAlive(w, c.Other) {
			continue
		}
		p, ok := ecs.Get(w, c.Source, component.ProjectileComponent.Kind())
		if !ok {
			continue
		}
		root := component.RootOf(w, c.Other)
		enemy, ok := ecs.Get(w, root, component.EnemyComponent.Kind())
		if !ok {
			continue
		}
		component.DestroyTree(w, c.Source)

		enemy.Health -= p.Damage
		if enemy.Health > 0 {
			continue
		}
		s.kill(w, root, enemy)
	}

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.BoundsCheckComponent.Kind(), func(e ecs.Entity, _ *component.Projectile, bc *component.BoundsCheck) {
		if !bc.IsOnScreen {
			component.DestroyTree(w, e)
		}
	})
}

func (s *ProjectileSystem) kill(w *ecs.World, root ecs.Entity, enemy *component.Enemy) {
	if e, ok := ecs.First(w, component.ScoreComponent.Kind()); ok {
		score, _ := ecs.Get(w, e, component.ScoreComponent.Kind())
		score.Points += enemy.Score
		score.EnemiesDestroyed++
	}
	s.fx.Explode(w, root)

	if t, ok := ecs.Get(w, root, component.TransformComponent.Kind()); ok && s.rng.Float64() < enemy.PowerUpDropChance {
		kind := PickWeighted(s.drops, s.rng.Float64())
		if kind != gameplay.WeaponNone {
			if _, err := entity.SpawnPowerUp(w, s.env, s.powerUp, kind, t.X, t.Y); err != nil {
				s.logger.Error("spawn power-up", "prefab", s.powerUp, "err", err)
			}
		}
	}
	s.logger.Debug("enemy destroyed", "name", enemy.Name, "score", enemy.Score)
	component.DestroyTree(w, root)
}
