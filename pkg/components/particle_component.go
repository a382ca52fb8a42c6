package components

import "image/color"

// ParticleComponent 单个粒子的运行时状态
//
// 粒子位置由同一实体上的 PositionComponent 保存，
// ParticleSystem 每帧根据速度更新位置，并在 Life <= 0 时销毁实体。
type ParticleComponent struct {
	// Velocity (速度, 像素/秒)
	VelocityX float64
	VelocityY float64

	Color color.RGBA

	// Lifecycle (生命周期, 秒)
	Life    float64 // 剩余寿命
	MaxLife float64 // 初始寿命，用于计算透明度

	// Size 圆点半径（像素）
	Size float64
}

// Alpha 返回与剩余寿命成比例的透明度（0-1）
func (p *ParticleComponent) Alpha() float64 {
	if p.MaxLife <= 0 || p.Life <= 0 {
		return 0
	}
	if p.Life >= p.MaxLife {
		return 1
	}
	return p.Life / p.MaxLife
}
