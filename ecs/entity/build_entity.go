package entity

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/gameplay"
	"github.com/milk9111/shmup/prefabs"
)

// Env carries what component builders need beyond the world itself.
type Env struct {
	Catalog  *gameplay.WeaponCatalog
	Registry *gameplay.HeroRegistry
	Logger   *log.Logger
	Rand     *rand.Rand
}

func (env *Env) logger() *log.Logger {
	if env == nil || env.Logger == nil {
		return log.Default()
	}
	return env.Logger
}

func (env *Env) rng() *rand.Rand {
	if env == nil || env.Rand == nil {
		return rand.New(rand.NewPCG(1, 2))
	}
	return env.Rand
}

func (env *Env) catalog() *gameplay.WeaponCatalog {
	if env == nil || env.Catalog == nil {
		return gameplay.DefaultWeaponCatalog()
	}
	return env.Catalog
}

type buildContext struct {
	PrefabPath string
	Env        *Env
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"hero_tag":        addHeroTag,
	"enemy_tag":       addEnemyTag,
	"projectile_tag":  addProjectileTag,
	"sfx_tag":         addSfxTag,
	"transform":       addTransform,
	"velocity":        addVelocity,
	"input":           addInput,
	"sprite":          addSprite,
	"label":           addLabel,
	"render_layer":    addRenderLayer,
	"audio":           addAudio,
	"ttl":             addTTL,
	"collision_layer": addCollisionLayer,
	"physics_body":    addPhysicsBody,
	"bounds_check":    addBoundsCheck,
	"hero":            addHero,
	"enemy":           addEnemy,
	"projectile":      addProjectile,
	"power_up":        addPowerUp,
}

// Builders later in the list may read components added earlier.
var componentBuildOrder = []string{
	"hero_tag",
	"enemy_tag",
	"projectile_tag",
	"sfx_tag",
	"transform",
	"velocity",
	"input",
	"sprite",
	"label",
	"render_layer",
	"audio",
	"ttl",
	"collision_layer",
	"physics_body",
	"bounds_check",
	"hero",
	"enemy",
	"projectile",
	"power_up",
}

// BuildEntity instantiates a prefab and its children.
func BuildEntity(w *ecs.World, env *Env, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildSpec(w, env, prefabPath, spec)
}

// BuildSpec instantiates an already decoded prefab.
func BuildSpec(w *ecs.World, env *Env, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}
	ctx := &buildContext{PrefabPath: prefabPath, Env: env}

	root, err := buildComponents(w, ctx, spec.Name, spec.Components)
	if err != nil {
		return 0, err
	}

	children := make([]ecs.Entity, 0, len(spec.Children))
	for _, child := range spec.Children {
		e, err := buildComponents(w, ctx, child.Name, child.Components)
		if err != nil {
			component.DestroyTree(w, root)
			return 0, err
		}
		if err := ecs.Add(w, e, component.ParentComponent.Kind(), &component.Parent{
			Entity:  root,
			OffsetX: child.OffsetX,
			OffsetY: child.OffsetY,
		}); err != nil {
			component.DestroyTree(w, root)
			return 0, fmt.Errorf("build entity: %q: attach %q: %w", prefabPath, child.Name, err)
		}
		children = append(children, e)
	}

	if pu, ok := ecs.Get(w, root, component.PowerUpComponent.Kind()); ok && len(children) > 0 {
		pu.Cube = children[0]
	}
	return root, nil
}

func buildComponents(w *ecs.World, ctx *buildContext, name string, components map[string]any) (ecs.Entity, error) {
	prefabPath := ctx.PrefabPath
	e := ecs.CreateEntity(w)
	if name != "" {
		_ = ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name})
	}

	remaining := make(map[string]any, len(components))
	for k, v := range components {
		remaining[k] = v
	}

	build := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := build(name); err != nil {
				ecs.DestroyEntity(w, e)
				return 0, err
			}
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

// Place moves a built entity tree to (x, y), children keeping their offsets.
func Place(w *ecs.World, root ecs.Entity, x, y float64) error {
	if err := SetEntityTransform(w, root, x, y, 0); err != nil {
		return err
	}
	for _, child := range component.ChildrenOf(w, root) {
		p, _ := ecs.Get(w, child, component.ParentComponent.Kind())
		if err := SetEntityTransform(w, child, x+p.OffsetX, y+p.OffsetY, 0); err != nil {
			return err
		}
	}
	return nil
}

func (env *Env) registry() *gameplay.HeroRegistry {
	if env == nil {
		return nil
	}
	return env.Registry
}
