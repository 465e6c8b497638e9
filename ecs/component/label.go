package component

import (
	"image/color"

	"github.com/milk9111/shmup/ecs"
)

// Label draws a short centred string at the entity's transform.
type Label struct {
	Text    string
	Color   color.Color
	Alpha   float64
	OffsetX float64
	OffsetY float64
}

var LabelComponent = ecs.NewComponent[Label]()
