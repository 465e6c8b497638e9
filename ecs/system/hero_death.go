package system

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/ecs/entity"
	"github.com/milk9111/shmup/scores"
)

// ScoreRecorder persists a finished round and returns its 1-based rank, or 0
// when it did not place.
type ScoreRecorder interface {
	Record(e scores.Entry) (int, error)
}

// HeroDeathSystem ends the round when the ship's shield drops below zero.
type HeroDeathSystem struct {
	env          *entity.Env
	fx           *Effects
	recorder     ScoreRecorder
	restartDelay float64
	seed         uint64
	logger       *log.Logger
}

func NewHeroDeathSystem(env *entity.Env, fx *Effects, recorder ScoreRecorder, restartDelay float64, seed uint64, logger *log.Logger) *HeroDeathSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &HeroDeathSystem{env: env, fx: fx, recorder: recorder, restartDelay: restartDelay, seed: seed, logger: logger}
}

func (s *HeroDeathSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Peek() {
		if evt.Type != component.EventHeroDied {
			continue
		}
		e, ok := evt.Data.(ecs.Entity)
		if !ok {
			continue
		}
		s.handle(w, e)
	}
}

func (s *HeroDeathSystem) handle(w *ecs.World, e ecs.Entity) {
	t, _ := now(w)

	if hero, ok := ecs.Get(w, e, component.HeroComponent.Kind()); ok && s.env != nil && s.env.Registry != nil {
		s.env.Registry.Release(hero.Ship)
	}
	s.fx.Explode(w, e)
	playSfx(w, "hero_died")
	component.DestroyTree(w, e)

	state, ok := ecs.First(w, component.ScoreComponent.Kind())
	if !ok {
		return
	}
	if ecs.Has(w, state, component.HeroDiedComponent.Kind()) {
		return
	}
	score, _ := ecs.Get(w, state, component.ScoreComponent.Kind())
	if err := s.endRound(w, state, t, score.Points); err != nil {
		s.logger.Error("end round", "err", err)
	}

	s.logger.Info("hero destroyed", "score", score.Points, "enemies", score.EnemiesDestroyed)
	if s.recorder == nil {
		return
	}
	if _, err := s.recorder.Record(scores.Entry{
		Points:  score.Points,
		Enemies: score.EnemiesDestroyed,
		Seed:    s.seed,
		At:      time.Now(),
	}); err != nil {
		s.logger.Error("record score", "err", err)
	}
}

// endRound marks the game state as over and schedules the restart.
func (s *HeroDeathSystem) endRound(w *ecs.World, state ecs.Entity, t float64, points int) error {
	err := errors.Join(
		ecs.Add(w, state, component.HeroDiedComponent.Kind(), &component.HeroDied{At: t, Score: points}),
		ecs.Add(w, state, component.RestartRequestComponent.Kind(), &component.RestartRequest{At: t + s.restartDelay}),
	)
	if sp, ok := ecs.Get(w, state, component.EnemySpawnerComponent.Kind()); ok {
		sp.Prefabs = nil
	}
	return err
}
