package systems

import (
	"log"
	"math"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/config"
	"github.com/decker502/monmon/pkg/ecs"
	"github.com/decker502/monmon/pkg/utils"
)

// WanderSystem 大地图自主游荡 AI
//
// 每个实体在 idle / walking 两个状态之间切换：
//   - idle: 计时达到阈值后，按 WalkChance 概率开始行走，否则只换个朝向继续待机
//   - walking: 匀速走向目标点，到达（距离 < ArrivalDistance）或超时后回到 idle
//
// 当前帧序列在每帧开始时按 (状态, 方向) 选出，无论是否发生状态切换都会推进。
type WanderSystem struct {
	entityManager *ecs.EntityManager
	rng           utils.RandomSource
	cfg           config.OverworldConfig

	// 活动区域尺寸（像素）
	boundsWidth  float64
	boundsHeight float64
}

// NewWanderSystem 创建游荡 AI 系统
//
// 参数：
//   - em: 实体管理器
//   - rng: 随机数来源（测试时注入固定序列）
//   - cfg: 大地图 AI 配置
//   - boundsWidth, boundsHeight: 活动区域尺寸
func NewWanderSystem(em *ecs.EntityManager, rng utils.RandomSource, cfg config.OverworldConfig, boundsWidth, boundsHeight float64) *WanderSystem {
	return &WanderSystem{
		entityManager: em,
		rng:           rng,
		cfg:           cfg,
		boundsWidth:   boundsWidth,
		boundsHeight:  boundsHeight,
	}
}

// Spawn 在活动区域中央创建一个朝南待机的游荡实体
func (s *WanderSystem) Spawn(anims *components.AnimationSetComponent) ecs.EntityID {
	id := s.entityManager.CreateEntity()

	s.entityManager.AddComponent(id, &components.PositionComponent{
		X: s.boundsWidth/2 - s.cfg.SpriteSize/2,
		Y: s.boundsHeight/2 - s.cfg.SpriteSize/2,
	})
	s.entityManager.AddComponent(id, &components.WanderComponent{
		State:           components.WanderStateIdle,
		Direction:       components.DirectionSouth,
		NextStateChange: s.randRange(s.cfg.InitialIdle),
		Speed:           s.cfg.Speed,
	})
	s.entityManager.AddComponent(id, anims)

	log.Printf("[WanderSystem] Spawned wanderer %d", id)
	return id
}

// Update 推进所有游荡实体
// 参数：
//   - dt: 时间增量（秒）
func (s *WanderSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith3[
		*components.PositionComponent,
		*components.WanderComponent,
		*components.AnimationSetComponent,
	](s.entityManager)

	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		wander, _ := ecs.GetComponent[*components.WanderComponent](s.entityManager, id)
		anims, _ := ecs.GetComponent[*components.AnimationSetComponent](s.entityManager, id)

		wander.StateTimer += dt
		anim := anims.Current(wander.State, wander.Direction)

		switch wander.State {
		case components.WanderStateWalking:
			s.updateWalking(pos, wander, anims, dt)
		default:
			s.updateIdle(pos, wander)
		}

		AdvanceAnimation(anim, dt)
	}
}

func (s *WanderSystem) updateIdle(pos *components.PositionComponent, wander *components.WanderComponent) {
	if wander.StateTimer < wander.NextStateChange {
		return
	}

	if s.rng.Float64() < s.cfg.WalkChance {
		s.startWalking(pos, wander)
		return
	}

	// 不走动，只换个朝向
	wander.Direction = s.randomDirection()
	wander.StateTimer = 0
	wander.NextStateChange = s.randRange(s.cfg.RerollTime)
}

func (s *WanderSystem) updateWalking(pos *components.PositionComponent, wander *components.WanderComponent, anims *components.AnimationSetComponent, dt float64) {
	if wander.HasTarget {
		dx := wander.TargetX - pos.X
		dy := wander.TargetY - pos.Y
		dist := math.Hypot(dx, dy)

		if dist < s.cfg.ArrivalDistance {
			// 到达目标，对齐到目标点
			pos.X = wander.TargetX
			pos.Y = wander.TargetY
			s.startIdling(wander, anims)
			return
		}

		step := wander.Speed * dt
		if step >= dist {
			pos.X = wander.TargetX
			pos.Y = wander.TargetY
		} else {
			pos.X += dx / dist * step
			pos.Y += dy / dist * step
		}
	}

	// 行走超时
	if wander.StateTimer >= wander.NextStateChange {
		s.startIdling(wander, anims)
	}
}

// startWalking 随机选方向和距离，目标点限制在活动区域内
func (s *WanderSystem) startWalking(pos *components.PositionComponent, wander *components.WanderComponent) {
	wander.State = components.WanderStateWalking
	wander.Direction = s.randomDirection()

	distance := s.randRange(s.cfg.WalkDistance)
	dx, dy := wander.Direction.Vector()

	wander.TargetX = clamp(pos.X+dx*distance, 0, s.boundsWidth-s.cfg.SpriteSize)
	wander.TargetY = clamp(pos.Y+dy*distance, 0, s.boundsHeight-s.cfg.SpriteSize)
	wander.HasTarget = true

	wander.NextStateChange = s.randRange(s.cfg.WalkTimeout)
	wander.StateTimer = 0
}

// startIdling 回到待机，待机动画从第 0 帧开始
func (s *WanderSystem) startIdling(wander *components.WanderComponent, anims *components.AnimationSetComponent) {
	wander.State = components.WanderStateIdle
	wander.HasTarget = false
	wander.TargetX = 0
	wander.TargetY = 0
	wander.NextStateChange = s.randRange(s.cfg.IdleTime)
	wander.StateTimer = 0

	ResetAnimation(anims.Current(components.WanderStateIdle, wander.Direction))
}

func (s *WanderSystem) randomDirection() components.Direction {
	return components.AllDirections[s.rng.Intn(len(components.AllDirections))]
}

func (s *WanderSystem) randRange(r config.Range) float64 {
	return utils.RandRange(s.rng, r.Min, r.Max)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
