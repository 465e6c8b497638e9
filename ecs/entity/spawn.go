package entity

import (
	"fmt"

	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/gameplay"
)

// SpawnPowerUp builds a power-up prefab of the given type centred on (x, y).
func SpawnPowerUp(w *ecs.World, env *Env, prefab string, t gameplay.WeaponType, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, env, prefab)
	if err != nil {
		return 0, err
	}
	pu, ok := ecs.Get(w, e, component.PowerUpComponent.Kind())
	if !ok {
		component.DestroyTree(w, e)
		return 0, fmt.Errorf("spawn power-up: %q has no power_up component", prefab)
	}
	pu.State.SetType(t)
	if err := Place(w, e, x, y); err != nil {
		component.DestroyTree(w, e)
		return 0, err
	}
	return e, nil
}

// SpawnAt builds any prefab centred on (x, y).
func SpawnAt(w *ecs.World, env *Env, prefab string, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, env, prefab)
	if err != nil {
		return 0, err
	}
	if err := Place(w, e, x, y); err != nil {
		component.DestroyTree(w, e)
		return 0, err
	}
	return e, nil
}
