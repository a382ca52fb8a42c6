package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/monmon/pkg/components"
)

// AdvanceAnimation 按时间增量推进帧序列
//
// 累计时间每达到一帧时长（1/FrameRate）就前进一帧，单次调用可能前进多帧。
// 循环动画在末尾回到第 0 帧；非循环动画停在最后一帧并停止播放。
// 未播放、只有一帧或帧率无效时不做任何事。
func AdvanceAnimation(anim *components.AnimationComponent, dt float64) {
	if anim == nil || !anim.IsPlaying || len(anim.Frames) <= 1 || anim.FrameRate <= 0 {
		return
	}

	frameDuration := 1 / anim.FrameRate
	anim.Elapsed += dt

	for anim.Elapsed >= frameDuration {
		anim.Elapsed -= frameDuration
		anim.CurrentFrame++

		if anim.CurrentFrame >= len(anim.Frames) {
			if anim.IsLooping {
				anim.CurrentFrame = 0
				continue
			}
			// 非循环：停在最后一帧
			anim.CurrentFrame = len(anim.Frames) - 1
			anim.IsPlaying = false
			anim.Elapsed = 0
			break
		}
	}
}

// ResetAnimation 回到第 0 帧并清空累计时间
func ResetAnimation(anim *components.AnimationComponent) {
	if anim == nil {
		return
	}
	anim.CurrentFrame = 0
	anim.Elapsed = 0
}

// PlayAnimation 继续播放
func PlayAnimation(anim *components.AnimationComponent) {
	if anim != nil {
		anim.IsPlaying = true
	}
}

// PauseAnimation 暂停播放，停留在当前帧
func PauseAnimation(anim *components.AnimationComponent) {
	if anim != nil {
		anim.IsPlaying = false
	}
}

// CurrentFrame 返回当前应绘制的帧图片
func CurrentFrame(anim *components.AnimationComponent) *ebiten.Image {
	if anim == nil || len(anim.Frames) == 0 {
		return nil
	}
	idx := anim.CurrentFrame
	if idx < 0 || idx >= len(anim.Frames) {
		idx = 0
	}
	return anim.Frames[idx]
}
