package system

import (
	"math"

	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/gameplay"
)

// PowerUpSystem runs each power-up's frame logic and mirrors its visual state
// onto the letter label and the cube child.
type PowerUpSystem struct {
	reload *gameplay.WeaponCatalog
}

func NewPowerUpSystem() *PowerUpSystem {
	return &PowerUpSystem{}
}

// SetCatalog restyles every live power-up on the next update.
func (s *PowerUpSystem) SetCatalog(c *gameplay.WeaponCatalog) {
	if s == nil {
		return
	}
	s.reload = c
}

func (s *PowerUpSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	t, _ := now(w)
	reload := s.reload
	s.reload = nil

	ecs.ForEach(w, component.PowerUpComponent.Kind(), func(e ecs.Entity, pu *component.PowerUp) {
		st := pu.State
		if st == nil {
			return
		}
		if reload != nil {
			st.SetCatalog(reload)
		}

		onScreen := true
		if bc, ok := ecs.Get(w, e, component.BoundsCheckComponent.Kind()); ok {
			onScreen = bc.IsOnScreen
		}
		if !st.OnFrame(t, onScreen) {
			// OnDestroy has already removed the tree.
			return
		}

		if label, ok := ecs.Get(w, e, component.LabelComponent.Kind()); ok {
			label.Text = st.Letter
			label.Color = st.LetterColor
			label.Alpha = st.LetterAlpha
		}
		if sp, ok := ecs.Get(w, pu.Cube, component.SpriteComponent.Kind()); ok {
			sp.Tint = st.CubeColor
			sp.Alpha = st.CubeAlpha
		}
		if ct, ok := ecs.Get(w, pu.Cube, component.TransformComponent.Kind()); ok {
			ct.TiltX = degToRad(st.Spin.X)
			ct.TiltY = degToRad(st.Spin.Y)
			ct.Rotation = degToRad(st.Spin.Z)
		}
	})
}

func degToRad(d float64) float64 {
	return math.Mod(d, 360) * math.Pi / 180
}
