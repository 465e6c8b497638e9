package system

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"golang.org/x/image/font/basicfont"
)

var labelFace = text.NewGoXFace(basicfont.Face7x13)

// RenderSystem draws sprites and labels sorted by render layer.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Update is a no-op; drawing happens in Draw.
func (s *RenderSystem) Update(w *ecs.World) {}

func (s *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}

	type item struct {
		e     ecs.Entity
		layer int
		y     float64
	}
	var items []item
	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		if !ecs.Has(w, e, component.SpriteComponent.Kind()) && !ecs.Has(w, e, component.LabelComponent.Kind()) {
			return
		}
		layer := 0
		if rl, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = rl.Index
		}
		items = append(items, item{e: e, layer: layer, y: t.Y})
	})

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer == items[j].layer {
			return items[i].y < items[j].y
		}
		return items[i].layer < items[j].layer
	})

	for _, it := range items {
		t, _ := ecs.Get(w, it.e, component.TransformComponent.Kind())
		if sp, ok := ecs.Get(w, it.e, component.SpriteComponent.Kind()); ok {
			drawSprite(screen, sp, t)
		}
		if label, ok := ecs.Get(w, it.e, component.LabelComponent.Kind()); ok {
			drawLabel(screen, label, t)
		}
	}
}

// SpriteScale folds the transform scale and tilt into a 2D scale. Tilting
// about an axis squashes the image across it.
func SpriteScale(t *component.Transform) (float64, float64) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx * math.Abs(math.Cos(t.TiltY)), sy * math.Abs(math.Cos(t.TiltX))
}

func drawSprite(screen *ebiten.Image, sp *component.Sprite, t *component.Transform) {
	if sp.Hidden || sp.Image == nil || sp.Alpha <= 0 {
		return
	}
	sx, sy := SpriteScale(t)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-sp.OriginX, -sp.OriginY)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(t.Rotation)
	op.GeoM.Translate(t.X, t.Y)
	if sp.Tint != nil {
		op.ColorScale.ScaleWithColor(sp.Tint)
	}
	op.ColorScale.ScaleAlpha(float32(sp.Alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sp.Image, op)
}

func drawLabel(screen *ebiten.Image, label *component.Label, t *component.Transform) {
	if label.Text == "" || label.Alpha <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(t.X+label.OffsetX, t.Y+label.OffsetY)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	if label.Color != nil {
		op.ColorScale.ScaleWithColor(label.Color)
	}
	op.ColorScale.ScaleAlpha(float32(label.Alpha))
	text.Draw(screen, label.Text, labelFace, op)
}
