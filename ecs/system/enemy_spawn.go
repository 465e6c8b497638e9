package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/ecs/entity"
)

const spawnMargin = 24

// EnemySpawnSystem drops a random enemy prefab above the top edge whenever
// the spawner's timer runs out.
type EnemySpawnSystem struct {
	env    *entity.Env
	width  float64
	logger *log.Logger
}

func NewEnemySpawnSystem(env *entity.Env, width float64, logger *log.Logger) *EnemySpawnSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &EnemySpawnSystem{env: env, width: width, logger: logger}
}

func (s *EnemySpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.env == nil || s.env.Rand == nil {
		return
	}
	t, _ := now(w)
	ecs.ForEach(w, component.EnemySpawnerComponent.Kind(), func(_ ecs.Entity, sp *component.EnemySpawner) {
		if len(sp.Prefabs) == 0 || t < sp.NextSpawn {
			return
		}
		sp.NextSpawn = t + sp.Interval

		prefab := sp.Prefabs[s.env.Rand.IntN(len(sp.Prefabs))]
		x := spawnMargin + s.env.Rand.Float64()*max(0, s.width-2*spawnMargin)
		e, err := entity.SpawnAt(w, s.env, prefab, x, -spawnMargin)
		if err != nil {
			s.logger.Error("spawn enemy", "prefab", prefab, "err", err)
			return
		}
		sp.Spawned++
		if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
			enemy.BaseX = x
			if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
				v.Y = enemy.Speed
			}
		}
	})
}
