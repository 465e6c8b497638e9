package component

import "github.com/milk9111/shmup/ecs"

// TTL destroys its entity after the given number of update ticks.
type TTL struct {
	Frames int
}

var TTLComponent = ecs.NewComponent[TTL]()
