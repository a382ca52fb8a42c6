package game

import (
	"github.com/decker502/monmon/pkg/render"
)

// Scene represents a simulator screen (overworld, battle, error screen).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene onto the logical canvas.
	Draw(canvas render.Canvas)
}

// ButtonHandler 是一个可选接口，场景实现后可以接收按键事件
type ButtonHandler interface {
	HandleButton(event ButtonEvent)
}

// Enterable 是一个可选接口，场景在每次成为活动场景时被调用 OnEnter()
//
// 进入场景是同步重置：战斗场景在此回到 idle 并清除粒子
type Enterable interface {
	OnEnter()
}
