package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/monmon/pkg/config"
)

// Button 逻辑按键
type Button int

const (
	// ButtonDPad 方向键（整个方向盘视为一个按键）
	ButtonDPad Button = iota
	ButtonA
	ButtonB
	// ButtonModeToggle 大地图/战斗模式切换键（仅键盘）
	ButtonModeToggle
)

var allButtons = []Button{ButtonDPad, ButtonA, ButtonB, ButtonModeToggle}

func (b Button) String() string {
	switch b {
	case ButtonDPad:
		return "DPad"
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonModeToggle:
		return "ModeToggle"
	}
	return "Unknown"
}

// ButtonEvent 按下/松开事件
type ButtonEvent struct {
	Button  Button
	Pressed bool // true=按下，false=松开
}

// InputSource 原始输入设备
type InputSource interface {
	IsKeyPressed(key ebiten.Key) bool
	// TouchPositions 返回当前所有触点（逻辑坐标），桌面端鼠标左键也算一个触点
	TouchPositions() []image.Point
}

// EbitenInput 从 ebiten 读取键盘和触摸状态
type EbitenInput struct{}

func (EbitenInput) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (EbitenInput) TouchPositions() []image.Point {
	ids := ebiten.AppendTouchIDs(nil)
	points := make([]image.Point, 0, len(ids))
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		points = append(points, image.Pt(x, y))
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		points = append(points, image.Pt(x, y))
	}
	return points
}

// InputController 把键盘和触摸输入转换成逻辑按键的按下/松开事件
//
// 触屏按横向三等分映射：左 = 方向键，中 = B，右 = A。
// 每帧调用一次 Poll，只在状态变化时产生事件。
type InputController struct {
	bindings    map[Button][]ebiten.Key
	screenWidth int
	pressed     map[Button]bool

	onPress   func(Button)
	onRelease func(Button)
}

// NewInputController 根据按键绑定配置创建输入控制器
//
// 同一个键可以绑定到多个逻辑按键（如空格既是方向键也是 A 键）。
func NewInputController(cfg config.InputConfig, screenWidth int) *InputController {
	return &InputController{
		bindings: map[Button][]ebiten.Key{
			ButtonDPad:       cfg.DPad,
			ButtonA:          cfg.A,
			ButtonB:          cfg.B,
			ButtonModeToggle: cfg.Toggle,
		},
		screenWidth: screenWidth,
		pressed:     make(map[Button]bool),
	}
}

// OnPress 设置按下回调
func (c *InputController) OnPress(fn func(Button)) {
	c.onPress = fn
}

// OnRelease 设置松开回调
func (c *InputController) OnRelease(fn func(Button)) {
	c.onRelease = fn
}

// IsPressed 返回按键当前是否按住
func (c *InputController) IsPressed(b Button) bool {
	return c.pressed[b]
}

// PressedButtons 返回当前按住的按键（按固定顺序）
func (c *InputController) PressedButtons() []Button {
	var out []Button
	for _, b := range allButtons {
		if c.pressed[b] {
			out = append(out, b)
		}
	}
	return out
}

// Poll 读取输入设备，返回本帧的按键事件
func (c *InputController) Poll(src InputSource) []ButtonEvent {
	held := make(map[Button]bool, len(allButtons))

	for button, keys := range c.bindings {
		for _, key := range keys {
			if src.IsKeyPressed(key) {
				held[button] = true
				break
			}
		}
	}

	for _, p := range src.TouchPositions() {
		held[c.touchZone(p.X)] = true
	}

	var events []ButtonEvent
	for _, b := range allButtons {
		if held[b] == c.pressed[b] {
			continue
		}
		c.pressed[b] = held[b]
		events = append(events, ButtonEvent{Button: b, Pressed: held[b]})

		if held[b] && c.onPress != nil {
			c.onPress(b)
		}
		if !held[b] && c.onRelease != nil {
			c.onRelease(b)
		}
	}

	return events
}

// touchZone 触点横坐标所在的三等分区域
func (c *InputController) touchZone(x int) Button {
	third := c.screenWidth / 3
	switch {
	case x < third:
		return ButtonDPad
	case x < 2*third:
		return ButtonB
	}
	return ButtonA
}
