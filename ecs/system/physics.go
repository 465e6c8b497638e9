package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

// Collision types given to shapes so the space only reports the pairs that
// gameplay reacts to.
const (
	collisionTypeDefault cp.CollisionType = iota
	collisionTypeHero
	collisionTypeEnemy
	collisionTypeProjectile
	collisionTypePowerUp
)

// PhysicsSystem mirrors colliders into a zero-gravity Chipmunk space. Every
// shape is a sensor; overlaps surface as contact events on the world queue.
type PhysicsSystem struct {
	space         *cp.Space
	shapeToEntity map[*cp.Shape]ecs.Entity
	shapeTypes    map[*cp.Shape]cp.CollisionType
	bodies        map[ecs.Entity]*component.PhysicsBody
	world         *ecs.World
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	s := &PhysicsSystem{
		space:         space,
		shapeToEntity: map[*cp.Shape]ecs.Entity{},
		shapeTypes:    map[*cp.Shape]cp.CollisionType{},
		bodies:        map[ecs.Entity]*component.PhysicsBody{},
	}
	s.setupHandlers()
	return s
}

// Space exposes the underlying space for debug drawing.
func (s *PhysicsSystem) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.world = w
	_, dt := now(w)

	s.removeDead(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			s.ensureBody(w, e, pb, t)
		}
		pb.Body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		if pb.Driven {
			pb.Body.SetVelocity(0, 0)
			return
		}
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			pb.Body.SetVelocity(v.X, v.Y)
		}
	})

	if dt > 0 {
		s.space.Step(dt)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Driven || pb.Body == nil {
			return
		}
		pos := pb.Body.Position()
		t.X, t.Y = pos.X, pos.Y
	})
}

func (s *PhysicsSystem) ensureBody(w *ecs.World, e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})

	var shape *cp.Shape
	if pb.Radius > 0 {
		shape = cp.NewCircle(body, pb.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, pb.Width, pb.Height, 0)
	}
	shape.SetSensor(true)

	category, mask := uint32(1), uint32(math.MaxUint32)
	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		if layer.Category != 0 {
			category = layer.Category
		}
		if layer.Mask != 0 {
			mask = layer.Mask
		}
	}
	shape.SetFilter(cp.NewShapeFilter(0, uint(category), uint(mask)))
	kind := collisionTypeFor(category)
	shape.SetCollisionType(kind)

	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.shapeToEntity[shape] = e
	s.shapeTypes[shape] = kind
	s.bodies[e] = pb

	pb.Body = body
	pb.Shape = shape
}

func collisionTypeFor(category uint32) cp.CollisionType {
	switch {
	case category&component.LayerHero != 0:
		return collisionTypeHero
	case category&component.LayerEnemy != 0:
		return collisionTypeEnemy
	case category&component.LayerHeroProjectile != 0:
		return collisionTypeProjectile
	case category&component.LayerPowerUp != 0:
		return collisionTypePowerUp
	default:
		return collisionTypeDefault
	}
}

func (s *PhysicsSystem) removeDead(w *ecs.World) {
	for e, pb := range s.bodies {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		s.removeBody(pb)
		delete(s.bodies, e)
	}
}

func (s *PhysicsSystem) removeBody(pb *component.PhysicsBody) {
	if pb == nil {
		return
	}
	if pb.Shape != nil {
		delete(s.shapeToEntity, pb.Shape)
		delete(s.shapeTypes, pb.Shape)
		s.space.RemoveShape(pb.Shape)
	}
	if pb.Body != nil {
		s.space.RemoveBody(pb.Body)
	}
	pb.Body, pb.Shape = nil, nil
}

// Reset drops every body, used when the world is rebuilt.
func (s *PhysicsSystem) Reset() {
	if s == nil {
		return
	}
	for e, pb := range s.bodies {
		s.removeBody(pb)
		delete(s.bodies, e)
	}
}

func (s *PhysicsSystem) setupHandlers() {
	pairs := [][2]cp.CollisionType{
		{collisionTypeHero, collisionTypeEnemy},
		{collisionTypeHero, collisionTypePowerUp},
		{collisionTypeProjectile, collisionTypeEnemy},
	}
	for _, pair := range pairs {
		handler := s.space.NewCollisionHandler(pair[0], pair[1])
		handler.UserData = s
		source := pair[0]
		handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil || sys.world == nil {
				return true
			}
			a, b := arb.Shapes()
			if sys.shapeTypes[a] != source {
				a, b = b, a
			}
			src, okA := sys.shapeToEntity[a]
			other, okB := sys.shapeToEntity[b]
			if !okA || !okB {
				return true
			}
			sys.world.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ecs.ContactEvent{Source: src, Other: other}})
			return true
		}
	}
}
