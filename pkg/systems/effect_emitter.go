package systems

import (
	"github.com/decker502/monmon/pkg/config"
)

// EffectEmitter 在特效持续时间内按 Interval 间隔发射粒子
//
// 第一批粒子在经过一个 Interval 后发射，之后每隔 Interval 一批，
// 直到已播放时间达到 Duration。Interval 为 0 时持续期内每帧都发射。
type EffectEmitter struct {
	particles *ParticleSystem
	x, y      float64
	profile   config.EffectProfile

	elapsed   float64 // 已播放时间（秒）
	sinceLast float64 // 距上次发射的时间（秒）
}

// NewEffectEmitter 创建在 (x, y) 播放 profile 的发射器
func NewEffectEmitter(particles *ParticleSystem, x, y float64, profile config.EffectProfile) *EffectEmitter {
	return &EffectEmitter{
		particles: particles,
		x:         x,
		y:         y,
		profile:   profile,
	}
}

// Update 推进 dt，到达发射间隔时发射 Count 个粒子，返回本帧是否发射
func (e *EffectEmitter) Update(dt float64) bool {
	e.elapsed += dt
	e.sinceLast += dt

	if e.elapsed >= e.profile.Duration || e.sinceLast < e.profile.Interval {
		return false
	}

	e.particles.Emit(e.x, e.y, e.profile.Count, e.profile)
	e.sinceLast = 0
	return true
}

// Elapsed 返回已播放时间
func (e *EffectEmitter) Elapsed() float64 {
	return e.elapsed
}

// Finished 持续时间是否已结束（不再发射）
func (e *EffectEmitter) Finished() bool {
	return e.elapsed >= e.profile.Duration
}

func (e *EffectEmitter) Profile() config.EffectProfile {
	return e.profile
}
