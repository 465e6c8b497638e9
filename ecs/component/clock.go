package component

import "github.com/milk9111/shmup/ecs"

// Clock is the singleton frame clock. Now is seconds since the world started.
type Clock struct {
	Now   float64
	Delta float64
	Frame int
}

var ClockComponent = ecs.NewComponent[Clock]()
