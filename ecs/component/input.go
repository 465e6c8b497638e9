package component

import "github.com/milk9111/shmup/ecs"

// Input stores per-frame axis state. Vertical is positive upwards and Fire is
// either 0 or 1.
type Input struct {
	Horizontal float64
	Vertical   float64
	Fire       float64
}

var InputComponent = ecs.NewComponent[Input]()
