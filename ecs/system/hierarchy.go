package system

import (
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

// HierarchySystem keeps children at their offset from the parent and removes
// orphans.
type HierarchySystem struct{}

func NewHierarchySystem() *HierarchySystem {
	return &HierarchySystem{}
}

func (s *HierarchySystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.ParentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Parent, t *component.Transform) {
		pt, ok := ecs.Get(w, p.Entity, component.TransformComponent.Kind())
		if !ok {
			component.DestroyTree(w, e)
			return
		}
		t.X = pt.X + p.OffsetX
		t.Y = pt.Y + p.OffsetY
	})
}
