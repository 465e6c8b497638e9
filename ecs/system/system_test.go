package system

import (
	"bytes"
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/ecs/entity"
	"github.com/milk9111/shmup/gameplay"
	"github.com/milk9111/shmup/scores"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func testEnv() *entity.Env {
	return &entity.Env{
		Catalog:  gameplay.DefaultWeaponCatalog(),
		Registry: gameplay.NewHeroRegistry(),
		Logger:   quietLogger(),
		Rand:     rand.New(rand.NewPCG(7, 11)),
	}
}

func tick(w *ecs.World, systems ...ecs.System) {
	ecs.NewScheduler(append([]ecs.System{NewClockSystem(60)}, systems...)...).Update(w)
}

func addHero(t *testing.T, w *ecs.World, env *entity.Env, x, y float64) (ecs.Entity, *gameplay.Hero) {
	t.Helper()
	ship := gameplay.NewHero(gameplay.DefaultHeroConfig(), quietLogger())
	if err := ship.Initialize(env.Registry); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	e := ecs.CreateEntity(w)
	ship.OnDeath = func(*gameplay.Hero) {
		w.Events().Push(ecs.Event{Type: component.EventHeroDied, Data: e})
	}
	_ = ecs.Add(w, e, component.HeroTagComponent.Kind(), &component.HeroTag{})
	_ = ecs.Add(w, e, component.HeroComponent.Kind(), &component.Hero{Ship: ship, Mounts: make([]float64, len(ship.Weapons))})
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
	return e, ship
}

func addEnemy(w *ecs.World, enemy component.Enemy, x, y float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
	_ = ecs.Add(w, e, component.EnemyComponent.Kind(), &enemy)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	_ = ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
	return e
}

func addGameState(w *ecs.World) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.ScoreComponent.Kind(), &component.Score{})
	_ = ecs.Add(w, e, component.EnemySpawnerComponent.Kind(), &component.EnemySpawner{Interval: 1, Prefabs: []string{"enemy_0.yaml"}})
	return e
}

func contact(w *ecs.World, source, other ecs.Entity) {
	w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ecs.ContactEvent{Source: source, Other: other}})
}

func TestCheckBounds(t *testing.T) {
	tests := []struct {
		name     string
		bc       component.BoundsCheck
		x, y     float64
		onScreen bool
		wantX    float64
		wantY    float64
		offDown  bool
		offLeft  bool
	}{
		{name: "inside", bc: component.BoundsCheck{Radius: 10}, x: 50, y: 50, onScreen: true, wantX: 50, wantY: 50},
		{name: "partly over the edge", bc: component.BoundsCheck{Radius: 10}, x: -5, y: 50, onScreen: true, wantX: -5, wantY: 50},
		{name: "off left", bc: component.BoundsCheck{Radius: 10}, x: -11, y: 50, wantX: -11, wantY: 50, offLeft: true},
		{name: "off bottom", bc: component.BoundsCheck{Radius: 10}, x: 50, y: 211, wantX: 50, wantY: 211, offDown: true},
		{name: "clamped", bc: component.BoundsCheck{Radius: 10, KeepOnScreen: true}, x: -40, y: 500, onScreen: true, wantX: 10, wantY: 190},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc := tt.bc
			tr := &component.Transform{X: tt.x, Y: tt.y}
			CheckBounds(&bc, tr, 100, 200)
			if bc.IsOnScreen != tt.onScreen {
				t.Fatalf("IsOnScreen = %v, want %v", bc.IsOnScreen, tt.onScreen)
			}
			if tr.X != tt.wantX || tr.Y != tt.wantY {
				t.Fatalf("position = (%v, %v), want (%v, %v)", tr.X, tr.Y, tt.wantX, tt.wantY)
			}
			if bc.OffDown != tt.offDown || bc.OffLeft != tt.offLeft {
				t.Fatalf("off flags = down %v left %v", bc.OffDown, bc.OffLeft)
			}
		})
	}
}

func TestPickWeighted(t *testing.T) {
	table := []WeaponWeight{
		{Type: gameplay.WeaponBlaster, Weight: 2},
		{Type: gameplay.WeaponSpread, Weight: 0},
		{Type: gameplay.WeaponShield, Weight: 2},
	}
	tests := []struct {
		r    float64
		want gameplay.WeaponType
	}{
		{0, gameplay.WeaponBlaster},
		{0.49, gameplay.WeaponBlaster},
		{0.5, gameplay.WeaponShield},
		{0.999, gameplay.WeaponShield},
	}
	for _, tt := range tests {
		if got := PickWeighted(table, tt.r); got != tt.want {
			t.Errorf("PickWeighted(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
	if got := PickWeighted(nil, 0.3); got != gameplay.WeaponNone {
		t.Errorf("empty table = %v, want none", got)
	}
}

func TestProjectileVelocities(t *testing.T) {
	blaster := gameplay.WeaponDefinition{Type: gameplay.WeaponBlaster, Velocity: 600}
	got := ProjectileVelocities(blaster)
	if len(got) != 1 || got[0].X != 0 || got[0].Y != -600 {
		t.Fatalf("blaster = %v", got)
	}

	spread := ProjectileVelocities(gameplay.WeaponDefinition{Type: gameplay.WeaponSpread, Velocity: 100})
	if len(spread) != 3 {
		t.Fatalf("spread volley = %d, want 3", len(spread))
	}
	for _, v := range spread {
		if math.Abs(v.Len()-100) > 1e-9 {
			t.Fatalf("spread speed = %v", v.Len())
		}
		if v.Y >= 0 {
			t.Fatalf("spread shot not moving up: %v", v)
		}
	}
	if spread[1].X >= 0 || spread[2].X <= 0 {
		t.Fatalf("spread fan = %v", spread)
	}
}

func TestSpriteScaleSquashesOnTilt(t *testing.T) {
	sx, sy := SpriteScale(&component.Transform{TiltY: math.Pi / 3})
	if math.Abs(sx-0.5) > 1e-9 || sy != 1 {
		t.Fatalf("scale = (%v, %v), want (0.5, 1)", sx, sy)
	}
}

func TestHeroSystemMovesShipYDown(t *testing.T) {
	w := ecs.NewWorld()
	env := testEnv()
	e, _ := addHero(t, w, env, 100, 100)
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	in.Horizontal, in.Vertical = 1, 1

	tick(w, NewHeroSystem())

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X <= 100 {
		t.Fatalf("x = %v, want > 100", tr.X)
	}
	if tr.Y >= 100 {
		t.Fatalf("y = %v, want < 100 when pushing up", tr.Y)
	}
	if tr.TiltX == 0 || tr.TiltY == 0 {
		t.Fatalf("tilt not applied: %+v", tr)
	}
}

func TestWeaponSystemSpawnsVolley(t *testing.T) {
	tests := []struct {
		name   string
		weapon gameplay.WeaponType
		want   int
	}{
		{name: "blaster", weapon: gameplay.WeaponBlaster, want: 1},
		{name: "spread", weapon: gameplay.WeaponSpread, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			env := testEnv()
			_, ship := addHero(t, w, env, 100, 300)
			ship.Weapons[0].SetType(tt.weapon)
			weapons := NewWeaponSystem(env, "projectile.yaml", quietLogger())

			tick(w, weapons)
			if ship.SubscriberCount() != len(ship.Weapons) {
				t.Fatalf("subscribers = %d, want %d", ship.SubscriberCount(), len(ship.Weapons))
			}
			ship.Fire()
			tick(w, weapons)

			got := len(ecs.Query(w, component.ProjectileComponent.Kind().ID()))
			if got != tt.want {
				t.Fatalf("projectiles = %d, want %d", got, tt.want)
			}

			// The delay has not elapsed one frame later.
			ship.Fire()
			tick(w, weapons)
			if got := len(ecs.Query(w, component.ProjectileComponent.Kind().ID())); got != tt.want {
				t.Fatalf("projectiles after refire = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHeroCollisionIgnoresDestroyedEnemy(t *testing.T) {
	w := ecs.NewWorld()
	env := testEnv()
	hero, ship := addHero(t, w, env, 100, 100)
	enemy := addEnemy(w, component.Enemy{Health: 1}, 100, 100)
	sys := NewHeroCollisionSystem(&Effects{Env: env, Logger: quietLogger()})

	contact(w, hero, enemy)
	contact(w, hero, enemy)
	sys.Update(w)

	if ship.ShieldLevel() != 0 {
		t.Fatalf("shield = %d, want 0", ship.ShieldLevel())
	}
	if ecs.IsAlive(w, enemy) {
		t.Fatal("enemy should be destroyed")
	}
}

func TestHeroCollisionDeduplicatesSameRoot(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "two shapes of one power-up in a frame",
			run: func(t *testing.T) {
				w := ecs.NewWorld()
				env := testEnv()
				hero, ship := addHero(t, w, env, 100, 100)

				pu := gameplay.NewPowerUp(gameplay.DefaultPowerUpConfig(), env.Catalog, quietLogger())
				pu.Initialize(env.Rand, gameplay.WeaponShield, 0)
				root := ecs.CreateEntity(w)
				_ = ecs.Add(w, root, component.PowerUpComponent.Kind(), &component.PowerUp{State: pu})
				label := ecs.CreateEntity(w)
				_ = ecs.Add(w, label, component.ParentComponent.Kind(), &component.Parent{Entity: root})
				cube := ecs.CreateEntity(w)
				_ = ecs.Add(w, cube, component.ParentComponent.Kind(), &component.Parent{Entity: root})

				contact(w, hero, label)
				contact(w, hero, cube)
				NewHeroCollisionSystem(&Effects{Env: env}).Update(w)

				if !ecs.IsAlive(w, root) {
					t.Fatal("root without a destroy hook should survive")
				}
				if ship.ShieldLevel() != 2 {
					t.Fatalf("shield = %d, want 2", ship.ShieldLevel())
				}
			},
		},
		{
			name: "unknown root twice then an enemy",
			run: func(t *testing.T) {
				w := ecs.NewWorld()
				env := testEnv()
				hero, ship := addHero(t, w, env, 100, 100)
				debris := ecs.CreateEntity(w)
				_ = ecs.Add(w, debris, component.NameComponent.Kind(), &component.Name{Value: "debris"})
				enemy := addEnemy(w, component.Enemy{Health: 1}, 100, 100)
				sys := NewHeroCollisionSystem(&Effects{Env: env, Logger: quietLogger()})

				contact(w, hero, debris)
				contact(w, hero, debris)
				sys.Update(w)
				w.Events().Drain()
				if ship.ShieldLevel() != 1 || !ecs.IsAlive(w, debris) {
					t.Fatalf("unknown contact changed state: shield %d", ship.ShieldLevel())
				}

				contact(w, hero, enemy)
				contact(w, hero, debris)
				sys.Update(w)
				if ship.ShieldLevel() != 0 {
					t.Fatalf("shield = %d, want 0", ship.ShieldLevel())
				}
				if ecs.IsAlive(w, enemy) {
					t.Fatal("enemy should be destroyed")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestHeroCollisionWithPowerUpChild(t *testing.T) {
	w := ecs.NewWorld()
	env := testEnv()
	hero, ship := addHero(t, w, env, 100, 100)

	pu := gameplay.NewPowerUp(gameplay.DefaultPowerUpConfig(), env.Catalog, quietLogger())
	pu.Initialize(env.Rand, gameplay.WeaponShield, 0)
	root := ecs.CreateEntity(w)
	pu.OnDestroy = func(*gameplay.PowerUp) { component.DestroyTree(w, root) }
	_ = ecs.Add(w, root, component.PowerUpComponent.Kind(), &component.PowerUp{State: pu})
	cube := ecs.CreateEntity(w)
	_ = ecs.Add(w, cube, component.ParentComponent.Kind(), &component.Parent{Entity: root})

	contact(w, hero, cube)
	NewHeroCollisionSystem(&Effects{Env: env}).Update(w)

	if ship.ShieldLevel() != 2 {
		t.Fatalf("shield = %d, want 2", ship.ShieldLevel())
	}
	if ecs.IsAlive(w, root) || ecs.IsAlive(w, cube) {
		t.Fatal("power-up tree should be destroyed")
	}
}

func TestProjectileKillsEnemyAndScores(t *testing.T) {
	w := ecs.NewWorld()
	env := testEnv()
	state := addGameState(w)
	enemy := addEnemy(w, component.Enemy{Health: 2, Score: 150}, 50, 50)

	shoot := func() ecs.Entity {
		p := ecs.CreateEntity(w)
		_ = ecs.Add(w, p, component.ProjectileComponent.Kind(), &component.Projectile{Type: gameplay.WeaponBlaster, Damage: 1})
		contact(w, p, enemy)
		return p
	}
	sys := NewProjectileSystem(env, &Effects{Env: env}, "power_up.yaml", nil, quietLogger())

	first := shoot()
	sys.Update(w)
	w.Events().Drain()
	if ecs.IsAlive(w, first) {
		t.Fatal("projectile should be spent")
	}
	if !ecs.IsAlive(w, enemy) {
		t.Fatal("enemy died after one hit")
	}

	shoot()
	sys.Update(w)
	if ecs.IsAlive(w, enemy) {
		t.Fatal("enemy should be destroyed")
	}
	score, _ := ecs.Get(w, state, component.ScoreComponent.Kind())
	if score.Points != 150 || score.EnemiesDestroyed != 1 {
		t.Fatalf("score = %+v", score)
	}
}

type fakeRecorder struct {
	entries []scores.Entry
	err     error
}

func (r *fakeRecorder) Record(e scores.Entry) (int, error) {
	r.entries = append(r.entries, e)
	return 1, r.err
}

func TestHeroDeathEndsRoundOnce(t *testing.T) {
	w := ecs.NewWorld()
	env := testEnv()
	state := addGameState(w)
	score, _ := ecs.Get(w, state, component.ScoreComponent.Kind())
	score.Points = 900
	hero, ship := addHero(t, w, env, 100, 100)
	rec := &fakeRecorder{}
	death := NewHeroDeathSystem(env, &Effects{Env: env}, rec, 2, 42, quietLogger())

	tick(w) // clock entity
	ship.SetShieldLevel(-1)
	ship.SetShieldLevel(-1)
	death.Update(w)

	if ecs.IsAlive(w, hero) {
		t.Fatal("hero entity should be destroyed")
	}
	if env.Registry.Active() != nil {
		t.Fatal("registry should be released")
	}
	if len(rec.entries) != 1 || rec.entries[0].Points != 900 || rec.entries[0].Seed != 42 {
		t.Fatalf("recorded = %+v", rec.entries)
	}
	died, ok := ecs.Get(w, state, component.HeroDiedComponent.Kind())
	if !ok || died.Score != 900 {
		t.Fatalf("HeroDied = %+v, %v", died, ok)
	}
	restart, ok := ecs.Get(w, state, component.RestartRequestComponent.Kind())
	if !ok || math.Abs(restart.At-(died.At+2)) > 1e-9 {
		t.Fatalf("RestartRequest = %+v, %v", restart, ok)
	}
	sp, _ := ecs.Get(w, state, component.EnemySpawnerComponent.Kind())
	if len(sp.Prefabs) != 0 {
		t.Fatal("spawner should stop after death")
	}
}

func TestHeroDeathRecorderErrorIsLogged(t *testing.T) {
	w := ecs.NewWorld()
	env := testEnv()
	addGameState(w)
	_, ship := addHero(t, w, env, 0, 0)
	rec := &fakeRecorder{err: errors.New("disk full")}

	var buf bytes.Buffer
	ship.SetShieldLevel(-1)
	NewHeroDeathSystem(env, nil, rec, 1, 0, log.New(&buf)).Update(w)
	if len(rec.entries) != 1 {
		t.Fatalf("recorded %d entries", len(rec.entries))
	}
	if !strings.Contains(buf.String(), "disk full") {
		t.Fatalf("recorder error not logged: %q", buf.String())
	}
}

func TestEndRoundReportsDeadState(t *testing.T) {
	w := ecs.NewWorld()
	state := addGameState(w)
	sys := NewHeroDeathSystem(nil, nil, nil, 2, 0, quietLogger())

	if err := sys.endRound(w, state, 3, 10); err != nil {
		t.Fatalf("endRound: %v", err)
	}
	req, ok := ecs.Get(w, state, component.RestartRequestComponent.Kind())
	if !ok || req.At != 5 {
		t.Fatalf("restart request = %+v, %v", req, ok)
	}

	ecs.DestroyEntity(w, state)
	if err := sys.endRound(w, state, 3, 10); !errors.Is(err, ecs.ErrEntityNotAlive) {
		t.Fatalf("err = %v, want ErrEntityNotAlive", err)
	}
}

type failingClip struct {
	played bool
}

func (c *failingClip) SetVolume(float64) {}
func (c *failingClip) Rewind() error { return errors.New("not seekable") }
func (c *failingClip) IsPlaying() bool { return false }
func (c *failingClip) Play() { c.played = true }

func TestAudioLogsRewindFailure(t *testing.T) {
	var buf bytes.Buffer
	c := &failingClip{}
	NewAudioSystem(false, log.New(&buf)).play(c, 1, "shoot")

	if c.played {
		t.Fatal("clip should not play after a failed rewind")
	}
	if out := buf.String(); !strings.Contains(out, "shoot") || !strings.Contains(out, "not seekable") {
		t.Fatalf("log = %q", out)
	}
}

func TestEnemyScriptSteersVelocity(t *testing.T) {
	scripts := map[string]string{
		"side.tengo": `
update := func(engine, state) {
	if state.calls == undefined {
		state.calls = 0
	}
	state.calls += 1
	engine.set_velocity(state.calls * 10, engine.speed())
}
`,
		"broken.tengo": `update := func(engine, state) { engine.set_velocity(1) }`,
	}
	load := func(name string) ([]byte, error) {
		src, ok := scripts[name]
		if !ok {
			return nil, errors.New("missing")
		}
		return []byte(src), nil
	}

	w := ecs.NewWorld()
	good := addEnemy(w, component.Enemy{Speed: 80, Script: "side.tengo"}, 10, 10)
	bad := addEnemy(w, component.Enemy{Speed: 50, Script: "broken.tengo"}, 10, 10)
	missing := addEnemy(w, component.Enemy{Speed: 40, Script: "nope.tengo"}, 10, 10)
	sys := NewEnemySystem(load, func() float64 { return 0.5 }, quietLogger())

	tick(w, sys)
	tick(w, sys)

	v, _ := ecs.Get(w, good, component.VelocityComponent.Kind())
	if v.X != 20 || v.Y != 80 {
		t.Fatalf("scripted velocity = %+v, want {20 80}", v)
	}
	v, _ = ecs.Get(w, bad, component.VelocityComponent.Kind())
	if v.X != 0 || v.Y != 50 {
		t.Fatalf("failing script velocity = %+v, want straight down", v)
	}
	v, _ = ecs.Get(w, missing, component.VelocityComponent.Kind())
	if v.X != 0 || v.Y != 40 {
		t.Fatalf("missing script velocity = %+v, want straight down", v)
	}

	// Reloading resets per-entity state.
	sys.Invalidate("scripts/side.tengo")
	tick(w, sys)
	v, _ = ecs.Get(w, good, component.VelocityComponent.Kind())
	if v.X != 10 {
		t.Fatalf("after invalidate vx = %v, want 10", v.X)
	}
}

func TestEnemyLeavesThroughBottom(t *testing.T) {
	w := ecs.NewWorld()
	e := addEnemy(w, component.Enemy{Speed: 10}, 10, 500)
	_ = ecs.Add(w, e, component.BoundsCheckComponent.Kind(), &component.BoundsCheck{Radius: 5})

	tick(w, NewBoundsCheckSystem(100, 100), NewEnemySystem(nil, nil, quietLogger()))
	if ecs.IsAlive(w, e) {
		t.Fatal("enemy below the screen should be removed")
	}
}

func TestTTLDestroysAfterFrames(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: 2})
	sys := NewTTLSystem()

	sys.Update(w)
	if !ecs.IsAlive(w, e) {
		t.Fatal("destroyed too early")
	}
	sys.Update(w)
	if ecs.IsAlive(w, e) {
		t.Fatal("still alive after ttl")
	}
}

func TestHierarchyFollowsParent(t *testing.T) {
	w := ecs.NewWorld()
	parent := ecs.CreateEntity(w)
	_ = ecs.Add(w, parent, component.TransformComponent.Kind(), &component.Transform{X: 10, Y: 20})
	child := ecs.CreateEntity(w)
	_ = ecs.Add(w, child, component.TransformComponent.Kind(), &component.Transform{})
	_ = ecs.Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: parent, OffsetX: 3, OffsetY: -4})

	NewHierarchySystem().Update(w)
	tr, _ := ecs.Get(w, child, component.TransformComponent.Kind())
	if tr.X != 13 || tr.Y != 16 {
		t.Fatalf("child = (%v, %v), want (13, 16)", tr.X, tr.Y)
	}

	ecs.DestroyEntity(w, parent)
	NewHierarchySystem().Update(w)
	if ecs.IsAlive(w, child) {
		t.Fatal("orphan should be removed")
	}
}

func TestInputSystemCopiesPolledState(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
	sys := &InputSystem{poll: func() component.Input { return component.Input{Horizontal: -1, Fire: 1} }}

	sys.Update(w)
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if in.Horizontal != -1 || in.Fire != 1 {
		t.Fatalf("input = %+v", in)
	}
}

func TestHUDLines(t *testing.T) {
	w := ecs.NewWorld()
	env := testEnv()
	state := addGameState(w)
	score, _ := ecs.Get(w, state, component.ScoreComponent.Kind())
	score.Points = 1234
	_, ship := addHero(t, w, env, 0, 0)
	ship.Weapons[1].SetType(gameplay.WeaponBlaster)

	lines := HUDLines(w, env.Catalog)
	want := []string{"SCORE 1234", "SHIELD 1", "WEAPON blaster x2"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
