package components

import "math"

// Direction 八方向朝向
type Direction int

// 方向常量，顺序与素材目录的加载顺序一致
const (
	DirectionSouth Direction = iota
	DirectionSouthEast
	DirectionEast
	DirectionNorthEast
	DirectionNorth
	DirectionNorthWest
	DirectionWest
	DirectionSouthWest
)

// AllDirections 全部八个方向
var AllDirections = []Direction{
	DirectionSouth,
	DirectionSouthEast,
	DirectionEast,
	DirectionNorthEast,
	DirectionNorth,
	DirectionNorthWest,
	DirectionWest,
	DirectionSouthWest,
}

var directionNames = [...]string{
	"south",
	"south-east",
	"east",
	"north-east",
	"north",
	"north-west",
	"west",
	"south-west",
}

// String 返回方向名称，同时也是素材子目录名（如 "north-east"）
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Vector 返回方向的单位向量（屏幕坐标系，Y 轴向下）
func (d Direction) Vector() (dx, dy float64) {
	const diag = math.Sqrt2 / 2
	switch d {
	case DirectionNorth:
		return 0, -1
	case DirectionSouth:
		return 0, 1
	case DirectionEast:
		return 1, 0
	case DirectionWest:
		return -1, 0
	case DirectionNorthEast:
		return diag, -diag
	case DirectionNorthWest:
		return -diag, -diag
	case DirectionSouthEast:
		return diag, diag
	case DirectionSouthWest:
		return -diag, diag
	}
	return 0, 0
}

// WanderState AI 行为状态
type WanderState int

const (
	// WanderStateIdle 原地待机
	WanderStateIdle WanderState = iota
	// WanderStateWalking 朝目标点行走
	WanderStateWalking
)

// String 返回状态名称（调试面板显示用）
func (s WanderState) String() string {
	switch s {
	case WanderStateIdle:
		return "idle"
	case WanderStateWalking:
		return "walking"
	}
	return "unknown"
}

// WanderComponent 自主游荡实体的 AI 状态
//
// 不变量：HasTarget 为 true 当且仅当 State == WanderStateWalking
type WanderComponent struct {
	State     WanderState
	Direction Direction

	// 移动目标（仅在行走状态有效）
	HasTarget bool
	TargetX   float64
	TargetY   float64

	// StateTimer 当前状态已持续的时间（秒）
	StateTimer float64
	// NextStateChange 本状态的切换阈值（秒），进入状态时随机决定
	NextStateChange float64

	// Speed 行走速度（像素/秒）
	Speed float64
}

// AnimationSetComponent 按 (状态, 方向) 索引的帧序列集合
type AnimationSetComponent struct {
	Walk map[Direction]*AnimationComponent
	Idle map[Direction]*AnimationComponent
}

// Current 返回指定状态和方向对应的帧序列
func (a *AnimationSetComponent) Current(state WanderState, dir Direction) *AnimationComponent {
	if state == WanderStateWalking {
		return a.Walk[dir]
	}
	return a.Idle[dir]
}
