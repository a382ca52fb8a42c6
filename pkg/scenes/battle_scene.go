package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/config"
	"github.com/decker502/monmon/pkg/ecs"
	"github.com/decker502/monmon/pkg/game"
	"github.com/decker502/monmon/pkg/render"
	"github.com/decker502/monmon/pkg/systems"
	"github.com/decker502/monmon/pkg/utils"
)

// BattleAssets 战斗场景用到的图片，背景可以为 nil
type BattleAssets struct {
	Background *ebiten.Image
	Attacker   *ebiten.Image
	Defender   *ebiten.Image
}

// BattleScene 战斗演出场景
//
// 按 A 发动技能，演出结束（或尚未开始）时才允许再次攻击或退出。
type BattleScene struct {
	entityManager  *ecs.EntityManager
	particleSystem *systems.ParticleSystem
	phaseSystem    *systems.BattlePhaseSystem
	renderSystem   *systems.BattleRenderSystem

	move config.MoveConfig
}

// NewBattleScene 创建战斗场景
func NewBattleScene(cfg *config.SimulatorConfig, effects *config.EffectTable, assets BattleAssets, rng utils.RandomSource) *BattleScene {
	em := ecs.NewEntityManager()
	width := float64(cfg.Display.Width)
	height := float64(cfg.Display.Height)
	battle := cfg.Battle

	particles := systems.NewParticleSystem(em, rng, battle.Gravity)
	phases := systems.NewBattlePhaseSystem(em, particles, effects, battle, width, height)
	phases.SetCombatants(
		components.Combatant{Name: battle.Attacker.Name, Sprite: assets.Attacker},
		components.Combatant{Name: battle.Defender.Name, Sprite: assets.Defender},
	)

	if assets.Background == nil {
		log.Printf("[BattleScene] No background image, using gradient fallback")
	}

	return &BattleScene{
		entityManager:  em,
		particleSystem: particles,
		phaseSystem:    phases,
		renderSystem:   systems.NewBattleRenderSystem(systems.NewRenderSystem(em), rng, assets.Background, battle.SpriteScale),
		move:           battle.Move,
	}
}

// OnEnter 每次进入战斗都从 idle 开始
func (s *BattleScene) OnEnter() {
	s.phaseSystem.Reset()
	log.Printf("[BattleScene] Entered battle mode")
}

// HandleButton A 键发动技能
func (s *BattleScene) HandleButton(event game.ButtonEvent) {
	if !event.Pressed || event.Button != game.ButtonA {
		return
	}
	if s.phaseSystem.CanStartAttack() {
		s.phaseSystem.StartAttack(s.move.Name, s.move.Effect, s.move.Damage)
	}
}

// Update 推进战斗阶段和粒子
func (s *BattleScene) Update(deltaTime float64) {
	s.phaseSystem.Update(deltaTime)
}

// Draw 绘制当前阶段的画面
func (s *BattleScene) Draw(canvas render.Canvas) {
	s.renderSystem.Draw(canvas, s.phaseSystem.Session())
}

// CanExit 只有 idle 和 done 阶段可以退出战斗
func (s *BattleScene) CanExit() bool {
	return s.phaseSystem.CanStartAttack()
}

// Phase 返回当前阶段
func (s *BattleScene) Phase() components.BattlePhase {
	return s.phaseSystem.Phase()
}

// ParticleCount 返回当前粒子数量
func (s *BattleScene) ParticleCount() int {
	return s.particleSystem.Count()
}
