package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/ecs/entity"
	"github.com/milk9111/shmup/ecs/system"
	"github.com/milk9111/shmup/gameplay"
	"github.com/milk9111/shmup/prefabs"
	"github.com/milk9111/shmup/scores"
	"golang.org/x/image/colornames"
)

// Options are the play command's flags.
type Options struct {
	Seed  uint64
	Debug bool
	Watch bool
	Mute  bool
}

// Game runs one round at a time and rebuilds the world when a round ends.
type Game struct {
	opts    Options
	spec    prefabs.GameSpec
	logger  *log.Logger
	catalog *gameplay.WeaponCatalog
	drops   []system.WeaponWeight

	registry *gameplay.HeroRegistry
	store    *scores.Store
	watcher  *prefabs.Watcher

	env       *entity.Env
	world     *ecs.World
	scheduler *ecs.Scheduler
	state     ecs.Entity
	enemies   *system.EnemySystem
	powerUps  *system.PowerUpSystem
	physics   *system.PhysicsSystem
	hud       *system.HUDSystem
	round     uint64

	paused     bool
	quit       bool
	restartNow bool
	pauseUI    *ebitenui.UI
	overUI     *gameOverUI
}

func NewGame(opts Options, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, err
	}
	catalog, err := prefabs.LoadWeaponCatalog(spec.Weapons)
	if err != nil {
		return nil, err
	}
	drops, err := dropTable(spec.PowerUpFrequency)
	if err != nil {
		return nil, fmt.Errorf("game: power_up_frequency: %w", err)
	}

	g := &Game{
		opts:     opts,
		spec:     spec,
		logger:   logger,
		catalog:  catalog,
		drops:    drops,
		registry: gameplay.NewHeroRegistry(),
		store:    scores.Open("shmup", logger),
	}
	g.pauseUI = newPauseUI(g)
	g.overUI = newGameOverUI(g)

	if opts.Watch {
		dir := prefabs.DiskDir
		w, err := prefabs.NewWatcher(dir, filepath.Join(dir, "scripts"))
		if err != nil {
			logger.Warn("hot reload disabled", "dir", dir, "err", err)
		} else {
			g.watcher = w
			logger.Info("watching prefabs", "dir", dir)
		}
	}

	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func dropTable(rows []prefabs.WeaponWeightSpec) ([]system.WeaponWeight, error) {
	out := make([]system.WeaponWeight, 0, len(rows))
	for _, row := range rows {
		t, err := gameplay.ParseWeaponType(row.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, system.WeaponWeight{Type: t, Weight: row.Weight})
	}
	return out, nil
}

// reset builds a fresh world for the next round.
func (g *Game) reset() error {
	g.round++
	rng := rand.New(rand.NewPCG(g.opts.Seed, g.round))
	env := &entity.Env{
		Catalog:  g.catalog,
		Registry: g.registry,
		Logger:   g.logger,
		Rand:     rng,
	}
	world := ecs.NewWorld()

	if _, err := entity.BuildEntity(world, env, g.spec.Sfx); err != nil {
		return fmt.Errorf("game: build %s: %w", g.spec.Sfx, err)
	}
	if _, err := entity.BuildEntity(world, env, g.spec.Hero); err != nil {
		return fmt.Errorf("game: build %s: %w", g.spec.Hero, err)
	}
	state := ecs.CreateEntity(world)
	_ = ecs.Add(world, state, component.NameComponent.Kind(), &component.Name{Value: "game_state"})
	_ = ecs.Add(world, state, component.ScoreComponent.Kind(), &component.Score{})
	_ = ecs.Add(world, state, component.EnemySpawnerComponent.Kind(), &component.EnemySpawner{
		Interval:  g.spec.SpawnSeconds,
		NextSpawn: g.spec.FirstSpawn,
		Prefabs:   append([]string(nil), g.spec.EnemyPrefabs...),
	})

	fx := &system.Effects{Env: env, Flash: g.spec.Flash, Logger: g.logger}
	width, height := float64(g.spec.Width), float64(g.spec.Height)
	g.enemies = system.NewEnemySystem(nil, rng.Float64, g.logger)
	g.powerUps = system.NewPowerUpSystem()
	g.physics = system.NewPhysicsSystem()
	g.hud = system.NewHUDSystem(g.catalog, g.store.Best)
	g.scheduler = ecs.NewScheduler(
		system.NewClockSystem(g.spec.TPS),
		system.NewInputSystem(),
		system.NewEnemySpawnSystem(env, width, g.logger),
		g.enemies,
		system.NewHeroSystem(),
		system.NewWeaponSystem(env, g.spec.Projectile, g.logger),
		g.powerUps,
		system.NewMovementSystem(),
		g.physics,
		system.NewHierarchySystem(),
		system.NewBoundsCheckSystem(width, height),
		system.NewHeroCollisionSystem(fx),
		system.NewProjectileSystem(env, fx, g.spec.PowerUp, g.drops, g.logger),
		system.NewHeroDeathSystem(env, fx, g.store, g.spec.RestartDelay, g.opts.Seed, g.logger),
		system.NewAudioSystem(g.opts.Mute, g.logger),
		system.NewTTLSystem(),
		system.NewRenderSystem(),
		g.hud,
	)
	g.env = env
	g.world = world
	g.state = state
	g.paused = false
	g.restartNow = false
	g.logger.Debug("round started", "round", g.round, "seed", g.opts.Seed)
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.applyReloads()

	if g.gameOver() {
		g.overUI.Update(g)
		if g.restartDue() {
			return g.reset()
		}
		g.scheduler.Update(g.world)
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) gameOver() bool {
	return ecs.Has(g.world, g.state, component.HeroDiedComponent.Kind())
}

func (g *Game) restartDue() bool {
	if g.restartNow || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	req, ok := ecs.Get(g.world, g.state, component.RestartRequestComponent.Kind())
	return ok && entity.Now(g.world) >= req.At
}

// applyReloads handles files the watcher reported since the last frame.
func (g *Game) applyReloads() {
	for _, name := range g.watcher.Drain() {
		switch {
		case name == g.spec.Weapons:
			catalog, err := prefabs.LoadWeaponCatalog(name)
			if err != nil {
				g.logger.Warn("weapon reload failed, keeping previous catalog", "err", err)
				continue
			}
			g.catalog = catalog
			g.env.Catalog = catalog
			g.powerUps.SetCatalog(catalog)
			g.hud.SetCatalog(catalog)
			g.logger.Info("weapons reloaded", "types", len(catalog.Types()))
		case strings.HasPrefix(name, "scripts/"):
			g.enemies.Invalidate(name)
			g.logger.Info("script reloaded", "script", name)
		case name == "game.yaml":
			g.logger.Info("game.yaml changed; restart to apply")
		default:
			g.logger.Info("prefab reloaded", "prefab", name)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.spec.Background.ColorOr(colornames.Black))
	g.scheduler.Draw(g.world, screen)

	if g.opts.Debug {
		g.physics.DebugDraw(screen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.1f  entities %d  round %d", ebiten.ActualFPS(), len(ecs.Entities(g.world)), g.round), 8, g.spec.Height-20)
	}

	switch {
	case g.gameOver():
		g.overUI.Draw(screen)
	case g.paused:
		vector.FillRect(screen, 0, 0, float32(g.spec.Width), float32(g.spec.Height), color.NRGBA{A: 120}, false)
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.spec.Width, g.spec.Height
}

// Close stops the watcher.
func (g *Game) Close() error {
	if g == nil || g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
