// Package render 定义模拟器的绘制接口
//
// 系统和场景只依赖 Canvas 接口绘制，不直接调用 ebiten 的绘图函数。
// 运行时使用 EbitenCanvas，测试中使用 Recorder 记录绘制调用。
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Align 文本水平对齐方式
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Canvas 逻辑分辨率画布（坐标单位为逻辑像素）
type Canvas interface {
	Width() int
	Height() int

	// Clear 用纯色填充整个画布
	Clear(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h, lineWidth float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)

	// DrawImage 以 (x, y) 为左上角、按 scale 等比缩放绘制图片
	DrawImage(img *ebiten.Image, x, y, scale float64)

	// DrawText 绘制单行文本，y 为文本顶部
	DrawText(s string, x, y, size float64, c color.Color, align Align)
}
