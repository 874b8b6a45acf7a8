package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的键盘输入
type InputState struct {
	// MoveX/MoveY 移动方向（未归一化，Simulation 负责归一化）
	MoveX, MoveY float64
	// Choice 本帧按下的升级选项序号，-1 表示没有
	Choice  int
	Restart bool
	Pause   bool
	// ToggleFullscreen F11
	ToggleFullscreen bool
}

var choiceKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

// GetInputState 读取当前帧的输入（WASD / 方向键移动，数字键选择升级）
func GetInputState() InputState {
	state := InputState{Choice: -1}

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		state.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		state.MoveX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		state.MoveY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		state.MoveY++
	}

	for i, key := range choiceKeys {
		if inpututil.IsKeyJustPressed(key) {
			state.Choice = i
			break
		}
	}

	state.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
	state.Pause = inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	state.ToggleFullscreen = inpututil.IsKeyJustPressed(ebiten.KeyF11)
	return state
}
