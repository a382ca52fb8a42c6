package components

import "github.com/hajimehoshi/ebiten/v2"

// AnimationComponent 帧序列播放器
// 按固定帧率在一组图片之间切换，用于大地图上的行走/待机循环动画
//
// 不变量：
//   - 0 <= CurrentFrame < len(Frames)
//   - 0 <= Elapsed < 1/FrameRate
type AnimationComponent struct {
	Frames       []*ebiten.Image // 动画的所有帧图片（调用方保证非空）
	FrameRate    float64         // 播放速度（帧/秒）
	CurrentFrame int             // 当前显示的帧索引(0-based)
	Elapsed      float64         // 当前帧已累计的时间(秒)
	IsPlaying    bool            // 是否正在播放
	IsLooping    bool            // 是否循环播放；非循环动画播完后停在最后一帧
}

// NewAnimationComponent 创建一个默认循环播放的帧序列
func NewAnimationComponent(frames []*ebiten.Image, frameRate float64) *AnimationComponent {
	return &AnimationComponent{
		Frames:    frames,
		FrameRate: frameRate,
		IsPlaying: true,
		IsLooping: true,
	}
}
