package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// DebugDraw outlines every collider in the space.
func (s *PhysicsSystem) DebugDraw(screen *ebiten.Image) {
	if s == nil || s.space == nil || screen == nil {
		return
	}
	cp.DrawSpace(s.space, &colliderDrawer{screen: screen, types: s.shapeTypes})
}

type colliderDrawer struct {
	screen *ebiten.Image
	types  map[*cp.Shape]cp.CollisionType
}

func (d *colliderDrawer) line(x0, y0, x1, y1 float64, c cp.FColor) {
	vector.StrokeLine(d.screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, fcolorToRGBA(c), false)
}

func (d *colliderDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	const steps = 20
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / steps)
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev.X, prev.Y, cur.X, cur.Y, fill)
		prev = cur
	}
}

func (d *colliderDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a.X, a.Y, b.X, b.Y, fill)
}

func (d *colliderDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a.X, a.Y, b.X, b.Y, fill)
}

func (d *colliderDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	for i := 0; i < count; i++ {
		a, b := verts[i], verts[(i+1)%count]
		d.line(a.X, a.Y, b.X, b.Y, fill)
	}
}

func (d *colliderDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	l := size / 2
	d.line(pos.X-l, pos.Y, pos.X+l, pos.Y, fill)
	d.line(pos.X, pos.Y-l, pos.X, pos.Y+l, fill)
}

func (d *colliderDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *colliderDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 1}
}

// ShapeColor tints by collision type: hero green, enemies red, shots yellow,
// power-ups cyan.
func (d *colliderDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	switch d.types[shape] {
	case collisionTypeHero:
		return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 1}
	case collisionTypeEnemy:
		return cp.FColor{R: 1, G: 0.3, B: 0.3, A: 1}
	case collisionTypeProjectile:
		return cp.FColor{R: 1, G: 0.85, B: 0.2, A: 1}
	case collisionTypePowerUp:
		return cp.FColor{R: 0.3, G: 0.9, B: 1, A: 1}
	default:
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
}

func (d *colliderDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1}
}

func (d *colliderDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.1, B: 0.1, A: 1}
}

func (d *colliderDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp01 := func(v float32) uint8 {
		return uint8(max(0, min(1, v)) * 255)
	}
	return color.RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}
