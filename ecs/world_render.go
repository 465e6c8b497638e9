package ecs

import "github.com/hajimehoshi/ebiten/v2"

// Drawer is a system that also renders each frame.
type Drawer interface {
	Draw(w *World, screen *ebiten.Image)
}

// Draw calls every registered Drawer in registration order.
func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	if s == nil || w == nil || screen == nil {
		return
	}
	for _, system := range s.systems {
		if d, ok := system.(Drawer); ok {
			d.Draw(w, screen)
		}
	}
}
