package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/ecs/entity"
)

// Effects spawns the short-lived visuals shared by the collision systems.
type Effects struct {
	Env    *entity.Env
	Flash  string
	Logger *log.Logger
}

func (fx *Effects) logger() *log.Logger {
	if fx == nil || fx.Logger == nil {
		return log.Default()
	}
	return fx.Logger
}

// Explode plays the explosion clip and puts a flash where e stands.
func (fx *Effects) Explode(w *ecs.World, e ecs.Entity) {
	playSfx(w, "explosion")
	if fx == nil || fx.Flash == "" {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if _, err := entity.SpawnAt(w, fx.Env, fx.Flash, t.X, t.Y); err != nil {
		fx.logger().Error("spawn flash", "prefab", fx.Flash, "err", err)
	}
}
