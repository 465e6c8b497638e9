package system

import (
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

// BoundsCheckSystem tracks which entities are inside the play area.
type BoundsCheckSystem struct {
	width  float64
	height float64
}

func NewBoundsCheckSystem(width, height float64) *BoundsCheckSystem {
	return &BoundsCheckSystem{width: width, height: height}
}

func (s *BoundsCheckSystem) Update(w *ecs.World) {
	if s == nil {
		return
	}
	ecs.ForEach2(w, component.BoundsCheckComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bc *component.BoundsCheck, t *component.Transform) {
		CheckBounds(bc, t, s.width, s.height)
	})
}

// CheckBounds updates bc for an entity at t. An entity counts as on screen
// while any part of its radius overlaps the area; KeepOnScreen entities are
// instead clamped so the whole radius stays inside.
func CheckBounds(bc *component.BoundsCheck, t *component.Transform, width, height float64) {
	r := bc.Radius
	if bc.KeepOnScreen {
		t.X = clamp(t.X, r, width-r)
		t.Y = clamp(t.Y, r, height-r)
	}
	bc.OffLeft = t.X < -r
	bc.OffRight = t.X > width+r
	bc.OffUp = t.Y < -r
	bc.OffDown = t.Y > height+r
	bc.IsOnScreen = !(bc.OffLeft || bc.OffRight || bc.OffUp || bc.OffDown)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return max(lo, min(v, hi))
}
