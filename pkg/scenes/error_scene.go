package scenes

import (
	"image/color"

	"github.com/decker502/monmon/pkg/render"
)

var errorTextColor = color.RGBA{R: 0xff, A: 0xff}

// ErrorScene 素材加载失败时显示的静态画面
type ErrorScene struct {
	Err error
}

// NewErrorScene 创建错误场景
func NewErrorScene(err error) *ErrorScene {
	return &ErrorScene{Err: err}
}

func (s *ErrorScene) Update(deltaTime float64) {}

func (s *ErrorScene) Draw(canvas render.Canvas) {
	canvas.Clear(color.Black)
	canvas.DrawText("Error loading", 40, 100, 12, errorTextColor, render.AlignLeft)
	canvas.DrawText("sprites!", 55, 115, 12, errorTextColor, render.AlignLeft)
}
