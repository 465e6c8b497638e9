package system

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/prefabs"
)

const enemyDispatchScript = `
if __phase == "update" {
	update(__engine, __state)
}
`

// ScriptLoader returns a script's source by prefab name.
type ScriptLoader func(name string) ([]byte, error)

// EnemySystem steers enemies, optionally through a tengo script, and removes
// them once they leave through the bottom edge.
type EnemySystem struct {
	load      ScriptLoader
	templates map[string]*tengo.Compiled
	runtimes  map[ecs.Entity]*enemyScriptRuntime
	broken    map[string]bool
	random    func() float64
	logger    *log.Logger
}

type enemyScriptRuntime struct {
	script    string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	failed    bool
}

// enemyScriptContext is what a script can see and change for one enemy.
type enemyScriptContext struct {
	Age          float64
	Speed        float64
	X, Y         float64
	HasHero      bool
	HeroX, HeroY float64
	VelX, VelY   float64
	Random       func() float64
}

func NewEnemySystem(load ScriptLoader, random func() float64, logger *log.Logger) *EnemySystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	if logger == nil {
		logger = log.Default()
	}
	return &EnemySystem{
		load:      load,
		templates: map[string]*tengo.Compiled{},
		runtimes:  map[ecs.Entity]*enemyScriptRuntime{},
		broken:    map[string]bool{},
		random:    random,
		logger:    logger,
	}
}

// Invalidate drops the compiled copy of a script so the next frame reloads it.
func (s *EnemySystem) Invalidate(name string) {
	if s == nil {
		return
	}
	clean := strings.TrimPrefix(name, "scripts/")
	delete(s.templates, clean)
	delete(s.broken, clean)
	for e, rt := range s.runtimes {
		if rt.script == clean {
			delete(s.runtimes, e)
		}
	}
}

func (s *EnemySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	t, _ := now(w)

	hasHero := false
	var heroX, heroY float64
	if hero, ok := ecs.First(w, component.HeroTagComponent.Kind()); ok {
		if ht, ok := ecs.Get(w, hero, component.TransformComponent.Kind()); ok {
			hasHero, heroX, heroY = true, ht.X, ht.Y
		}
	}

	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(),
		func(e ecs.Entity, enemy *component.Enemy, tr *component.Transform, v *component.Velocity) {
			if bc, ok := ecs.Get(w, e, component.BoundsCheckComponent.Kind()); ok && bc.OffDown {
				component.DestroyTree(w, e)
				return
			}

			v.X, v.Y = 0, enemy.Speed
			if enemy.Script == "" {
				return
			}
			ctx := &enemyScriptContext{
				Age:     t - enemy.SpawnedAt,
				Speed:   enemy.Speed,
				X:       tr.X,
				Y:       tr.Y,
				HasHero: hasHero,
				HeroX:   heroX,
				HeroY:   heroY,
				VelX:    v.X,
				VelY:    v.Y,
				Random:  s.random,
			}
			if err := s.runScript(e, enemy.Script, ctx); err != nil {
				s.logger.Warn("enemy script", "entity", e, "script", enemy.Script, "err", err)
				return
			}
			v.X, v.Y = ctx.VelX, ctx.VelY
		})

	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}
}

func (s *EnemySystem) runScript(e ecs.Entity, script string, ctx *enemyScriptContext) error {
	rt, err := s.runtime(e, script)
	if err != nil || rt == nil {
		return err
	}
	if rt.failed {
		return nil
	}
	if err := rt.compiled.Set("__phase", "update"); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", buildEnemyScriptEngine(ctx)); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Run(); err != nil {
		// Report once; the enemy falls back to flying straight.
		rt.failed = true
		return err
	}
	return nil
}

func (s *EnemySystem) runtime(e ecs.Entity, script string) (*enemyScriptRuntime, error) {
	clean := strings.TrimPrefix(script, "scripts/")
	if rt, ok := s.runtimes[e]; ok && rt.script == clean {
		return rt, nil
	}
	if s.broken[clean] {
		return nil, nil
	}

	tmpl, ok := s.templates[clean]
	if !ok {
		var err error
		tmpl, err = s.compile(clean)
		if err != nil {
			s.broken[clean] = true
			return nil, fmt.Errorf("compile %s: %w", clean, err)
		}
		s.templates[clean] = tmpl
	}

	rt := &enemyScriptRuntime{
		script:    clean,
		compiled:  tmpl.Clone(),
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.runtimes[e] = rt
	return rt, nil
}

func (s *EnemySystem) compile(name string) (*tengo.Compiled, error) {
	src, err := s.load(name)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + enemyDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func buildEnemyScriptEngine(ctx *enemyScriptContext) *tengo.ImmutableMap {
	float := func(v float64) tengo.Object { return &tengo.Float{Value: v} }
	values := map[string]tengo.Object{}

	values["age"] = &tengo.UserFunction{Name: "age", Value: func(...tengo.Object) (tengo.Object, error) {
		return float(ctx.Age), nil
	}}
	values["speed"] = &tengo.UserFunction{Name: "speed", Value: func(...tengo.Object) (tengo.Object, error) {
		return float(ctx.Speed), nil
	}}
	values["position"] = &tengo.UserFunction{Name: "position", Value: func(...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{float(ctx.X), float(ctx.Y)}}, nil
	}}
	values["has_hero"] = &tengo.UserFunction{Name: "has_hero", Value: func(...tengo.Object) (tengo.Object, error) {
		if ctx.HasHero {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}
	values["hero_position"] = &tengo.UserFunction{Name: "hero_position", Value: func(...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{float(ctx.HeroX), float(ctx.HeroY)}}, nil
	}}
	values["random"] = &tengo.UserFunction{Name: "random", Value: func(...tengo.Object) (tengo.Object, error) {
		if ctx.Random == nil {
			return float(0.5), nil
		}
		return float(ctx.Random()), nil
	}}
	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return nil, tengo.ErrInvalidArgumentType{Name: "velocity", Expected: "float", Found: args[0].TypeName()}
		}
		ctx.VelX, ctx.VelY = x, y
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
