package component

import "github.com/milk9111/shmup/ecs"

// BoundsCheck tracks whether an entity of the given radius is inside the play
// area. KeepOnScreen clamps it back in instead.
type BoundsCheck struct {
	Radius       float64
	KeepOnScreen bool

	IsOnScreen bool
	OffLeft    bool
	OffRight   bool
	OffUp      bool
	OffDown    bool
}

var BoundsCheckComponent = ecs.NewComponent[BoundsCheck]()
