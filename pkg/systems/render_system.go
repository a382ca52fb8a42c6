package systems

import (
	"image/color"
	"math"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/ecs"
	"github.com/decker502/monmon/pkg/render"
)

// RenderSystem 绘制场景中的实体
//
// 职责范围：
//   - 游荡实体：按 (状态, 方向) 取当前帧，在整数像素坐标绘制
//   - 粒子：实心圆，透明度与剩余寿命成比例
//
// 绘制顺序按实体创建顺序，保证每帧稳定。
type RenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
	}
}

// DrawWanderers 绘制所有游荡实体
func (s *RenderSystem) DrawWanderers(canvas render.Canvas) {
	entities := ecs.GetEntitiesWith3[
		*components.PositionComponent,
		*components.WanderComponent,
		*components.AnimationSetComponent,
	](s.entityManager)

	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		wander, _ := ecs.GetComponent[*components.WanderComponent](s.entityManager, id)
		anims, _ := ecs.GetComponent[*components.AnimationSetComponent](s.entityManager, id)

		frame := CurrentFrame(anims.Current(wander.State, wander.Direction))
		if frame == nil {
			continue
		}
		canvas.DrawImage(frame, math.Floor(pos.X), math.Floor(pos.Y), 1)
	}
}

// DrawParticles 绘制所有粒子
func (s *RenderSystem) DrawParticles(canvas render.Canvas) {
	entities := ecs.GetEntitiesWith2[
		*components.PositionComponent,
		*components.ParticleComponent,
	](s.entityManager)

	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		particle, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)

		alpha := particle.Alpha()
		if alpha <= 0 {
			continue
		}

		clr := color.NRGBA{
			R: particle.Color.R,
			G: particle.Color.G,
			B: particle.Color.B,
			A: uint8(alpha * 255),
		}
		canvas.FillCircle(pos.X, pos.Y, particle.Size, clr)
	}
}
