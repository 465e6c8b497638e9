package component

import "github.com/milk9111/shmup/ecs"

// Parent attaches an entity to another at a fixed offset. A root is an
// entity without a Parent.
type Parent struct {
	Entity  ecs.Entity
	OffsetX float64
	OffsetY float64
}

var ParentComponent = ecs.NewComponent[Parent]()

type Name struct {
	Value string
}

var NameComponent = ecs.NewComponent[Name]()

// RootOf follows Parent links up to the entity that has none. Dead parents
// end the walk.
func RootOf(w *ecs.World, e ecs.Entity) ecs.Entity {
	for depth := 0; depth < 32; depth++ {
		p, ok := ecs.Get(w, e, ParentComponent.Kind())
		if !ok || !ecs.IsAlive(w, p.Entity) {
			return e
		}
		e = p.Entity
	}
	return e
}

// ChildrenOf returns the direct children of parent.
func ChildrenOf(w *ecs.World, parent ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, ParentComponent.Kind(), func(e ecs.Entity, p *Parent) {
		if p.Entity == parent {
			out = append(out, e)
		}
	})
	return out
}

// DestroyTree destroys e and everything parented under it.
func DestroyTree(w *ecs.World, e ecs.Entity) {
	if !ecs.IsAlive(w, e) {
		return
	}
	for _, child := range ChildrenOf(w, e) {
		DestroyTree(w, child)
	}
	ecs.DestroyEntity(w, e)
}
