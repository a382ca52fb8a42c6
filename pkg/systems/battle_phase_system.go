package systems

import (
	"log"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/config"
	"github.com/decker502/monmon/pkg/ecs"
)

// BattlePhaseSystem 战斗演出阶段序列
//
// 阶段顺序：
//
//	idle → show_attacker → attack_text → attack_effect → show_defender → hit_effect → damage_text → done
//
// 每帧最多切换一次阶段，进入新阶段时阶段计时清零。
// attack_effect 阶段在特效时长 + EffectMargin 之后，还要等粒子全部消失才会继续；
// 若超过 MaxEffectWait 仍有粒子，则清除剩余粒子后继续。
type BattlePhaseSystem struct {
	entityManager *ecs.EntityManager
	particles     *ParticleSystem
	effects       *config.EffectTable
	cfg           config.BattleConfig

	// 屏幕尺寸，用于计算特效发射点
	width  float64
	height float64

	// sessionEntity 战斗状态实体ID
	sessionEntity ecs.EntityID

	// emitter attack_effect 阶段的技能粒子发射器，进入该阶段时创建
	emitter *EffectEmitter
}

// NewBattlePhaseSystem 创建战斗阶段系统，并创建处于 idle 阶段的战斗状态实体
//
// 参数：
//   - em: 实体管理器（与粒子系统共用）
//   - particles: 粒子系统
//   - effects: 特效预设表
//   - cfg: 战斗配置
//   - width, height: 屏幕逻辑尺寸
func NewBattlePhaseSystem(em *ecs.EntityManager, particles *ParticleSystem, effects *config.EffectTable, cfg config.BattleConfig, width, height float64) *BattlePhaseSystem {
	s := &BattlePhaseSystem{
		entityManager: em,
		particles:     particles,
		effects:       effects,
		cfg:           cfg,
		width:         width,
		height:        height,
	}

	s.sessionEntity = em.CreateEntity()
	em.AddComponent(s.sessionEntity, &components.BattleSessionComponent{
		Phase: components.BattlePhaseIdle,
	})

	return s
}

// Session 返回战斗状态组件
func (s *BattlePhaseSystem) Session() *components.BattleSessionComponent {
	session, _ := ecs.GetComponent[*components.BattleSessionComponent](s.entityManager, s.sessionEntity)
	return session
}

// SetCombatants 设置攻击方和防守方
func (s *BattlePhaseSystem) SetCombatants(attacker, defender components.Combatant) {
	session := s.Session()
	session.Attacker = attacker
	session.Defender = defender
}

// Phase 返回当前阶段
func (s *BattlePhaseSystem) Phase() components.BattlePhase {
	return s.Session().Phase
}

// IsActive 是否正在演出（非 idle）
func (s *BattlePhaseSystem) IsActive() bool {
	return s.Phase() != components.BattlePhaseIdle
}

// IsDone 演出是否已结束
func (s *BattlePhaseSystem) IsDone() bool {
	return s.Phase() == components.BattlePhaseDone
}

// CanStartAttack 只有 idle 和 done 阶段可以发起新攻击
func (s *BattlePhaseSystem) CanStartAttack() bool {
	p := s.Phase()
	return p == components.BattlePhaseIdle || p == components.BattlePhaseDone
}

// StartAttack 发起攻击，进入 show_attacker 阶段
//
// 未知的特效名称使用默认特效。演出进行中调用时忽略并返回 false。
func (s *BattlePhaseSystem) StartAttack(moveName, effectKey string, damage int) bool {
	if !s.CanStartAttack() {
		log.Printf("[BattlePhaseSystem] Ignored attack %s: phase %s in progress", moveName, s.Phase())
		return false
	}

	if _, ok := s.effects.Lookup(effectKey); !ok {
		log.Printf("[BattlePhaseSystem] Unknown effect %q, falling back to %q", effectKey, s.effects.DefaultKey())
	}

	session := s.Session()
	session.MoveName = moveName
	session.Damage = damage
	session.Effect = s.effects.Resolve(effectKey)
	session.EffectTimer = 0
	s.enterPhase(session, components.BattlePhaseShowAttacker)

	log.Printf("[BattlePhaseSystem] %s used %s (effect=%s, damage=%d)", session.Attacker.Name, moveName, session.Effect.Name, damage)
	return true
}

// Reset 立即回到 idle 并清除所有粒子
func (s *BattlePhaseSystem) Reset() {
	session := s.Session()
	session.Phase = components.BattlePhaseIdle
	session.PhaseTimer = 0
	session.EffectTimer = 0
	s.emitter = nil
	session.Shake = 0
	session.Flash = 0
	s.particles.Clear()
}

// Update 推进阶段序列
// 参数：
//   - dt: 时间增量（秒）
func (s *BattlePhaseSystem) Update(dt float64) {
	session := s.Session()
	timings := s.cfg.Timings

	session.PhaseTimer += dt
	s.particles.Update(dt)

	// 抖动和闪白每帧衰减，与阶段无关
	session.Shake *= s.cfg.DecayFactor
	session.Flash *= s.cfg.DecayFactor

	switch session.Phase {
	case components.BattlePhaseShowAttacker:
		if session.PhaseTimer >= timings.ShowAttacker {
			s.enterPhase(session, components.BattlePhaseAttackText)
		}

	case components.BattlePhaseAttackText:
		if session.PhaseTimer >= timings.AttackText {
			s.enterPhase(session, components.BattlePhaseAttackEffect)
			session.EffectTimer = 0
			s.emitter = NewEffectEmitter(s.particles, s.width/2, s.height/2-20, session.Effect)
		}

	case components.BattlePhaseAttackEffect:
		s.updateAttackEffect(session, dt)

	case components.BattlePhaseShowDefender:
		if session.PhaseTimer >= timings.ShowDefender {
			s.enterPhase(session, components.BattlePhaseHitEffect)

			// 受击爆发 + 抖动 + 闪白
			hit := s.effects.Resolve(s.cfg.HitEffect)
			s.particles.Emit(s.width/2, s.height/2, hit.Count, hit)
			session.Shake = s.cfg.ShakeIntensity
			session.Flash = s.cfg.FlashIntensity
		}

	case components.BattlePhaseHitEffect:
		if session.PhaseTimer >= timings.HitEffect {
			s.enterPhase(session, components.BattlePhaseDamageText)
		}

	case components.BattlePhaseDamageText:
		if session.PhaseTimer >= timings.DamageText {
			s.enterPhase(session, components.BattlePhaseDone)
		}
	}
}

// updateAttackEffect 按间隔发射技能粒子，等待粒子全部消失后进入 show_defender
func (s *BattlePhaseSystem) updateAttackEffect(session *components.BattleSessionComponent, dt float64) {
	effect := session.Effect
	timings := s.cfg.Timings

	s.emitter.Update(dt)
	session.EffectTimer = s.emitter.Elapsed()

	gate := effect.Duration + timings.EffectMargin
	if session.EffectTimer <= gate {
		return
	}

	if s.particles.Active() {
		if timings.MaxEffectWait <= 0 || session.EffectTimer <= gate+timings.MaxEffectWait {
			return
		}
		log.Printf("[BattlePhaseSystem] Effect %s still has %d particles after %.1fs, clearing",
			effect.Name, s.particles.Count(), session.EffectTimer)
		s.particles.Clear()
	}

	s.emitter = nil
	s.enterPhase(session, components.BattlePhaseShowDefender)
}

func (s *BattlePhaseSystem) enterPhase(session *components.BattleSessionComponent, phase components.BattlePhase) {
	log.Printf("[BattlePhaseSystem] Phase %s -> %s", session.Phase, phase)
	session.Phase = phase
	session.PhaseTimer = 0
}
