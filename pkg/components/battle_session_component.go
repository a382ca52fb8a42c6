package components

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/monmon/pkg/config"
)

// BattlePhase 战斗演出阶段
// 阶段严格按声明顺序推进，只有 Reset 才会回到 BattlePhaseIdle
type BattlePhase int

const (
	// BattlePhaseIdle 等待玩家发起攻击
	BattlePhaseIdle BattlePhase = iota
	// BattlePhaseShowAttacker 展示攻击方
	BattlePhaseShowAttacker
	// BattlePhaseAttackText 显示 "X used MOVE!" 文本
	BattlePhaseAttackText
	// BattlePhaseAttackEffect 播放技能粒子特效
	BattlePhaseAttackEffect
	// BattlePhaseShowDefender 切换到防守方
	BattlePhaseShowDefender
	// BattlePhaseHitEffect 受击特效（抖动 + 闪白）
	BattlePhaseHitEffect
	// BattlePhaseDamageText 显示伤害文本
	BattlePhaseDamageText
	// BattlePhaseDone 演出结束，可以再次攻击或退出
	BattlePhaseDone
)

var battlePhaseNames = [...]string{
	"idle",
	"show_attacker",
	"attack_text",
	"attack_effect",
	"show_defender",
	"hit_effect",
	"damage_text",
	"done",
}

// String 返回阶段名称（snake_case）
func (p BattlePhase) String() string {
	if p < 0 || int(p) >= len(battlePhaseNames) {
		return "unknown"
	}
	return battlePhaseNames[p]
}

// Next 返回序列中的下一个阶段，Done 之后保持 Done
func (p BattlePhase) Next() BattlePhase {
	if p >= BattlePhaseDone {
		return BattlePhaseDone
	}
	return p + 1
}

// Combatant 参战单位的展示信息
type Combatant struct {
	Name   string
	Sprite *ebiten.Image
}

// BattleSessionComponent 一场战斗演出的全部状态
type BattleSessionComponent struct {
	Phase       BattlePhase
	PhaseTimer  float64 // 当前阶段已持续时间（秒），进入新阶段时清零
	EffectTimer float64 // 技能特效已持续时间（秒）

	// 当前技能
	Effect   config.EffectProfile
	MoveName string
	Damage   int

	Attacker Combatant
	Defender Combatant

	// 受击反馈强度，每帧按固定系数衰减
	Shake float64 // 抖动幅度（像素）
	Flash float64 // 闪白透明度（0-1）
}

// HPPercent 返回防守方受到伤害后的剩余血量比例
func (b *BattleSessionComponent) HPPercent() float64 {
	p := 1 - float64(b.Damage)/100
	if p < 0 {
		return 0
	}
	return p
}
