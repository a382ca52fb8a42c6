package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Op 绘制操作类型
type Op string

const (
	OpClear      Op = "clear"
	OpFillRect   Op = "fill_rect"
	OpStrokeRect Op = "stroke_rect"
	OpFillCircle Op = "fill_circle"
	OpImage      Op = "image"
	OpText       Op = "text"
)

// Call 一次绘制调用的记录
type Call struct {
	Op    Op
	X, Y  float64
	W, H  float64 // 矩形宽高；圆形时 W 为半径
	Scale float64
	Color color.RGBA
	Image *ebiten.Image
	Text  string
	Align Align
}

// Recorder 记录绘制调用的 Canvas 实现（无头测试和工具使用）
type Recorder struct {
	W, H  int
	Calls []Call
}

// NewRecorder 创建指定逻辑尺寸的记录画布
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Width() int  { return r.W }
func (r *Recorder) Height() int { return r.H }

func (r *Recorder) Clear(c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpClear, Color: toRGBA(c)})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: toRGBA(c)})
}

func (r *Recorder) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpStrokeRect, X: x, Y: y, W: w, H: h, Scale: lineWidth, Color: toRGBA(c)})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpFillCircle, X: cx, Y: cy, W: radius, Color: toRGBA(c)})
}

func (r *Recorder) DrawImage(img *ebiten.Image, x, y, scale float64) {
	r.Calls = append(r.Calls, Call{Op: OpImage, X: x, Y: y, Scale: scale, Image: img})
}

func (r *Recorder) DrawText(s string, x, y, size float64, c color.Color, align Align) {
	r.Calls = append(r.Calls, Call{Op: OpText, X: x, Y: y, Scale: size, Color: toRGBA(c), Text: s, Align: align})
}

// Filter 返回指定类型的全部调用
func (r *Recorder) Filter(op Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Texts 返回按绘制顺序排列的全部文本
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Filter(OpText) {
		out = append(out, c.Text)
	}
	return out
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// toRGBA 转换为非预乘的 RGBA
func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}
