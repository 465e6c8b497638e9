package component

import "github.com/milk9111/shmup/ecs"

type Score struct {
	Points           int
	EnemiesDestroyed int
}

var ScoreComponent = ecs.NewComponent[Score]()
