package render

import (
	"bytes"
	"image/color"
	"log"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomonobold"
)

var (
	fontOnce   sync.Once
	fontSource *text.GoTextFaceSource
	faceCache  = map[float64]*text.GoTextFace{}
)

// loadFontSource 加载内置等宽粗体字体（Go Mono Bold）
func loadFontSource() *text.GoTextFaceSource {
	fontOnce.Do(func() {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(gomonobold.TTF))
		if err != nil {
			log.Printf("[Render] Failed to load font: %v", err)
			return
		}
		fontSource = source
	})
	return fontSource
}

// face 返回指定字号的字体，同字号复用
func face(size float64) *text.GoTextFace {
	if f, ok := faceCache[size]; ok {
		return f
	}
	source := loadFontSource()
	if source == nil {
		return nil
	}
	f := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	faceCache[size] = f
	return f
}

// EbitenCanvas 把 Canvas 调用转换为 ebiten 绘制
type EbitenCanvas struct {
	dst *ebiten.Image
}

// NewEbitenCanvas 创建绘制到 dst 上的画布
// dst 通常是 Game.Draw 收到的 screen（尺寸等于 Layout 返回的逻辑分辨率）
func NewEbitenCanvas(dst *ebiten.Image) *EbitenCanvas {
	return &EbitenCanvas{dst: dst}
}

func (c *EbitenCanvas) Width() int  { return c.dst.Bounds().Dx() }
func (c *EbitenCanvas) Height() int { return c.dst.Bounds().Dy() }

func (c *EbitenCanvas) Clear(clr color.Color) {
	c.dst.Fill(clr)
}

func (c *EbitenCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	vector.FillRect(c.dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func (c *EbitenCanvas) StrokeRect(x, y, w, h, lineWidth float64, clr color.Color) {
	vector.StrokeRect(c.dst, float32(x), float32(y), float32(w), float32(h), float32(lineWidth), clr, false)
}

func (c *EbitenCanvas) FillCircle(cx, cy, r float64, clr color.Color) {
	vector.FillCircle(c.dst, float32(cx), float32(cy), float32(r), clr, true)
}

func (c *EbitenCanvas) DrawImage(img *ebiten.Image, x, y, scale float64) {
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	// 像素画按整数坐标绘制，避免采样模糊
	op.GeoM.Translate(math.Floor(x), math.Floor(y))
	op.Filter = ebiten.FilterNearest
	c.dst.DrawImage(img, op)
}

func (c *EbitenCanvas) DrawText(s string, x, y, size float64, clr color.Color, align Align) {
	f := face(size)
	if f == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	switch align {
	case AlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case AlignRight:
		op.PrimaryAlign = text.AlignEnd
	default:
		op.PrimaryAlign = text.AlignStart
	}
	text.Draw(c.dst, s, f, op)
}
