package component

import "github.com/milk9111/shmup/ecs"

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = ecs.NewComponent[RenderLayer]()
