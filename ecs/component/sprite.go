package component

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shmup/ecs"
)

type Sprite struct {
	Image   *ebiten.Image
	OriginX float64
	OriginY float64
	Tint    color.Color
	Alpha   float64
	Hidden  bool
}

var SpriteComponent = ecs.NewComponent[Sprite]()
