package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

const stickDeadzone = 0.2

type InputSystem struct {
	poll func() component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{poll: pollDevices}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}
	poll := i.poll
	if poll == nil {
		poll = pollDevices
	}
	state := poll()

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = state
	})
}

func pollDevices() component.Input {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	fire := ebiten.IsKeyPressed(ebiten.KeySpace)

	var in component.Input
	if left {
		in.Horizontal -= 1
	}
	if right {
		in.Horizontal += 1
	}
	if up {
		in.Vertical += 1
	}
	if down {
		in.Vertical -= 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
			ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
			if math.Abs(lx) > stickDeadzone {
				in.Horizontal = lx
			}
			// Stick Y points down.
			if math.Abs(ly) > stickDeadzone {
				in.Vertical = -ly
			}
			fire = fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		}
	}

	if fire {
		in.Fire = 1
	}
	return in
}
