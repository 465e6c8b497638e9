package ecs

// IntersectEntities returns slot ids present in every set, iterating the
// smallest one.
func IntersectEntities(sets ...*SparseSet) []entityID {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets {
		if s == nil || s.Len() == 0 {
			return nil
		}
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	var out []entityID
	for _, id := range smallest.ids() {
		inAll := true
		for _, s := range sets {
			if s != smallest && !s.Has(id) {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, id)
		}
	}
	return out
}

// Query returns the live entities carrying every listed component id.
func Query(w *World, ids ...ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(ids))
	for _, id := range ids {
		sets = append(sets, w.store(id, false))
	}
	var out []Entity
	for _, id := range IntersectEntities(sets...) {
		if e, ok := w.entities.handle(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns any live entity carrying the given kind.
func First[T any](w *World, kind ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	for _, id := range w.store(kind.ID(), false).ids() {
		if e, ok := w.entities.handle(id); ok {
			return e, true
		}
	}
	return 0, false
}

// ForEach calls fn for every entity carrying the given kind. Entities destroyed
// by fn are skipped for the rest of the pass.
func ForEach[T any](w *World, kind ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range Query(w, kind.ID()) {
		a, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka ComponentKind[A], kb ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range Query(w, ka.ID(), kb.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka ComponentKind[A], kb ComponentKind[B], kc ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range Query(w, ka.ID(), kb.ID(), kc.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}
