package component

import "github.com/milk9111/shmup/ecs"

type Enemy struct {
	Name              string
	Speed             float64
	Health            float64
	Score             int
	Script            string
	PowerUpDropChance float64
	SpawnedAt         float64
	BaseX             float64
}

var EnemyComponent = ecs.NewComponent[Enemy]()

// EnemySpawner lives on the game-state entity and paces enemy waves.
type EnemySpawner struct {
	Interval  float64
	NextSpawn float64
	Prefabs   []string
	Spawned   int
}

var EnemySpawnerComponent = ecs.NewComponent[EnemySpawner]()
