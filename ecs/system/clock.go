package system

import (
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

// ClockSystem advances the world clock by one fixed tick.
type ClockSystem struct {
	delta float64
}

func NewClockSystem(tps int) *ClockSystem {
	if tps <= 0 {
		tps = 60
	}
	return &ClockSystem{delta: 1 / float64(tps)}
}

func (s *ClockSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	c := clock(w)
	if c == nil {
		e := ecs.CreateEntity(w)
		c = &component.Clock{}
		_ = ecs.Add(w, e, component.ClockComponent.Kind(), c)
	}
	c.Delta = s.delta
	c.Now += s.delta
	c.Frame++
}

func clock(w *ecs.World) *component.Clock {
	e, ok := ecs.First(w, component.ClockComponent.Kind())
	if !ok {
		return nil
	}
	c, _ := ecs.Get(w, e, component.ClockComponent.Kind())
	return c
}

func now(w *ecs.World) (float64, float64) {
	c := clock(w)
	if c == nil {
		return 0, 0
	}
	return c.Now, c.Delta
}
