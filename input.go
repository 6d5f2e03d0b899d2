package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/mikkoJakonen/lilja-game/actor"
)

// Input polls devices once per frame and exposes the control sample the
// level consumes, plus the session-only signals (pause, dialogue advance).
type Input struct {
	State actor.InputState

	PausePressed   bool
	AdvancePressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and gamepad.
func (i *Input) Update() {
	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}

	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	firePressed := ebiten.IsKeyPressed(ebiten.KeyJ)

	var fireY float64
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		fireY = -1
	}

	// Gamepad: left stick X, primary button jump, right trigger fire.
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			moveX = -1
		} else if leftX > 0.3 {
			moveX = 1
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			jumpPressed = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight) {
			firePressed = true
		}
	}

	i.State = actor.InputState{
		MoveX:       moveX,
		JumpPressed: jumpPressed,
		FirePressed: firePressed,
		FireDirY:    fireY,
	}
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.AdvancePressed = inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)
}
