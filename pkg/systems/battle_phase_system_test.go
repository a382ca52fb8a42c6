package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/config"
	"github.com/decker502/monmon/pkg/ecs"
	"github.com/decker502/monmon/pkg/utils"
)

const testBattleEffectsYAML = `
default: ember
effects:
  ember:
    colors: ["#FF6600", "#FF9900", "#FFCC00", "#FF3300"]
    speed: 120
    angle: -45
    spread: 60
    life: 0.8
    size: 4
    count: 15
    interval: 0.05
    duration: 0.5
  hit:
    colors: ["#FFFFFF", "#FFFF00", "#FFAA00"]
    speed: 80
    angle: 0
    spread: 360
    life: 0.3
    size: 3
    count: 20
    interval: 0
    duration: 0.1
  sludge:
    colors: ["#884488"]
    speed: 10
    angle: 90
    spread: 10
    life: 100
    size: 3
    count: 5
    interval: 0
    duration: 0.5
`

const battleTick = 0.125

func newTestEffectTable(t *testing.T) *config.EffectTable {
	t.Helper()
	table, err := config.ParseEffectTable([]byte(testBattleEffectsYAML))
	if err != nil {
		t.Fatalf("failed to parse test effects: %v", err)
	}
	return table
}

func newTestBattleSystem(t *testing.T, rng utils.RandomSource, mutate func(*config.BattleConfig)) (*BattlePhaseSystem, *ParticleSystem) {
	t.Helper()
	cfg := config.DefaultSimulatorConfig().Battle
	if mutate != nil {
		mutate(&cfg)
	}
	em := ecs.NewEntityManager()
	particles := NewParticleSystem(em, rng, cfg.Gravity)
	system := NewBattlePhaseSystem(em, particles, newTestEffectTable(t), cfg, 176, 220)
	system.SetCombatants(
		components.Combatant{Name: "CHARMANDER"},
		components.Combatant{Name: "BULBASAUR"},
	)
	return system, particles
}

// tickUntilPhaseChange 以固定步长推进直到阶段变化，返回推进的帧数
func tickUntilPhaseChange(t *testing.T, s *BattlePhaseSystem, dt float64, limit int) int {
	t.Helper()
	start := s.Phase()
	for i := 1; i <= limit; i++ {
		s.Update(dt)
		if s.Phase() != start {
			return i
		}
	}
	t.Fatalf("phase %s did not change within %d ticks", start, limit)
	return 0
}

func TestBattleStartsIdle(t *testing.T) {
	system, _ := newTestBattleSystem(t, &scriptedRandom{}, nil)

	if system.Phase() != components.BattlePhaseIdle {
		t.Errorf("Expected idle, got %s", system.Phase())
	}
	if system.IsActive() || system.IsDone() || !system.CanStartAttack() {
		t.Error("Idle battle should be inactive and ready to attack")
	}

	// idle 阶段 Update 不会推进
	for i := 0; i < 100; i++ {
		system.Update(battleTick)
	}
	if system.Phase() != components.BattlePhaseIdle {
		t.Errorf("Idle battle advanced to %s", system.Phase())
	}
}

// TestBattleEmberScenario 完整的 EMBER 演出时间线
func TestBattleEmberScenario(t *testing.T) {
	system, particles := newTestBattleSystem(t, &scriptedRandom{}, nil)

	if !system.StartAttack("EMBER", "ember", 24) {
		t.Fatal("StartAttack from idle should succeed")
	}
	if system.Phase() != components.BattlePhaseShowAttacker {
		t.Fatalf("Expected show_attacker, got %s", system.Phase())
	}

	// 0.5s 后进入 attack_text
	if n := tickUntilPhaseChange(t, system, battleTick, 100); n != 4 {
		t.Errorf("Expected show_attacker to last 4 ticks, got %d", n)
	}
	if system.Phase() != components.BattlePhaseAttackText {
		t.Fatalf("Expected attack_text, got %s", system.Phase())
	}

	// +1.0s 后进入 attack_effect
	if n := tickUntilPhaseChange(t, system, battleTick, 100); n != 8 {
		t.Errorf("Expected attack_text to last 8 ticks, got %d", n)
	}
	if system.Phase() != components.BattlePhaseAttackEffect {
		t.Fatalf("Expected attack_effect, got %s", system.Phase())
	}

	// 发射阶段：EffectTimer 为 0.125/0.25/0.375 时各发射一次
	for i := 0; i < 4; i++ {
		system.Update(battleTick)
	}
	if got := particles.Count(); got != 45 {
		t.Errorf("Expected 3 bursts of 15 particles, got %d", got)
	}

	// 最后一批粒子寿命 0.56s，在 EffectTimer = 1.0 时全部消失，
	// 但门限要求 EffectTimer > 1.0
	for i := 0; i < 4; i++ {
		system.Update(battleTick)
	}
	if particles.Active() {
		t.Errorf("Expected particles gone at effect time 1.0, %d left", particles.Count())
	}
	if system.Phase() != components.BattlePhaseAttackEffect {
		t.Fatalf("Expected attack_effect at effect time 1.0, got %s", system.Phase())
	}

	system.Update(battleTick)
	if system.Phase() != components.BattlePhaseShowDefender {
		t.Fatalf("Expected show_defender, got %s", system.Phase())
	}

	// 0.3s 后进入 hit_effect，触发受击爆发
	if n := tickUntilPhaseChange(t, system, battleTick, 100); n != 3 {
		t.Errorf("Expected show_defender to last 3 ticks, got %d", n)
	}
	session := system.Session()
	if system.Phase() != components.BattlePhaseHitEffect {
		t.Fatalf("Expected hit_effect, got %s", system.Phase())
	}
	if particles.Count() != 20 {
		t.Errorf("Expected 20 hit particles, got %d", particles.Count())
	}
	if session.Shake != 8 || session.Flash != 1 {
		t.Errorf("Expected shake=8 flash=1, got %f / %f", session.Shake, session.Flash)
	}

	if n := tickUntilPhaseChange(t, system, battleTick, 100); n != 4 {
		t.Errorf("Expected hit_effect to last 4 ticks, got %d", n)
	}
	if system.Phase() != components.BattlePhaseDamageText {
		t.Fatalf("Expected damage_text, got %s", system.Phase())
	}

	if n := tickUntilPhaseChange(t, system, battleTick, 100); n != 12 {
		t.Errorf("Expected damage_text to last 12 ticks, got %d", n)
	}
	if !system.IsDone() || !system.CanStartAttack() {
		t.Errorf("Expected done and ready for another attack, got %s", system.Phase())
	}
	if session.MoveName != "EMBER" || session.Damage != 24 || session.Effect.Name != "ember" {
		t.Errorf("Unexpected session move: %s / %d / %s", session.MoveName, session.Damage, session.Effect.Name)
	}
}

func TestBattleShakeAndFlashDecay(t *testing.T) {
	system, _ := newTestBattleSystem(t, &scriptedRandom{}, nil)
	session := system.Session()
	session.Shake = 8
	session.Flash = 1

	system.Update(battleTick)
	if math.Abs(session.Shake-7.2) > 1e-9 || math.Abs(session.Flash-0.9) > 1e-9 {
		t.Errorf("Expected shake=7.2 flash=0.9, got %f / %f", session.Shake, session.Flash)
	}

	for i := 0; i < 200; i++ {
		system.Update(battleTick)
	}
	if session.Shake > 1e-6 || session.Flash > 1e-6 {
		t.Errorf("Expected decay toward zero, got %f / %f", session.Shake, session.Flash)
	}
}

func TestBattleStartAttackRejectedWhileActive(t *testing.T) {
	system, _ := newTestBattleSystem(t, &scriptedRandom{}, nil)
	system.StartAttack("EMBER", "ember", 24)
	system.Update(battleTick)

	if system.StartAttack("TACKLE", "tackle", 10) {
		t.Error("StartAttack should be rejected while a sequence is running")
	}
	if system.Session().MoveName != "EMBER" {
		t.Errorf("Rejected attack must not change the move, got %s", system.Session().MoveName)
	}
}

func TestBattleUnknownEffectFallsBack(t *testing.T) {
	system, _ := newTestBattleSystem(t, &scriptedRandom{}, nil)

	if !system.StartAttack("SOLARBEAM", "solarbeam", 40) {
		t.Fatal("StartAttack should accept unknown effects")
	}
	if got := system.Session().Effect.Name; got != "ember" {
		t.Errorf("Expected fallback to ember, got %s", got)
	}
}

// TestBattleNeverAdvancesWhileParticlesActive 粒子未消失时不离开 attack_effect
func TestBattleNeverAdvancesWhileParticlesActive(t *testing.T) {
	system, particles := newTestBattleSystem(t, &scriptedRandom{}, func(cfg *config.BattleConfig) {
		cfg.Timings.MaxEffectWait = 0
	})
	system.StartAttack("SLUDGE", "sludge", 10)

	for i := 0; i < 400; i++ {
		system.Update(battleTick)
	}

	if system.Phase() != components.BattlePhaseAttackEffect {
		t.Errorf("Expected to wait in attack_effect, got %s", system.Phase())
	}
	if !particles.Active() {
		t.Error("Long-lived particles should still be active")
	}
}

// TestBattleMaxEffectWaitClearsParticles 超过最长等待时间后清除粒子并继续
func TestBattleMaxEffectWaitClearsParticles(t *testing.T) {
	system, particles := newTestBattleSystem(t, &scriptedRandom{}, nil)
	system.StartAttack("SLUDGE", "sludge", 10)

	// show_attacker + attack_text
	for system.Phase() != components.BattlePhaseAttackEffect {
		system.Update(battleTick)
	}

	ticks := 0
	for system.Phase() == components.BattlePhaseAttackEffect {
		system.Update(battleTick)
		ticks++
		if ticks > 1000 {
			t.Fatal("attack_effect never ended")
		}
	}

	if system.Phase() != components.BattlePhaseShowDefender {
		t.Errorf("Expected show_defender, got %s", system.Phase())
	}
	if particles.Active() {
		t.Error("Particles must be cleared when leaving attack_effect")
	}
	// 0.5 + 0.5 + 3.0 = 4.0s，严格大于后下一帧 (4.125s) 才切换
	if got := system.Session().EffectTimer; got != 4.125 {
		t.Errorf("Expected to leave at effect time 4.125, got %f", got)
	}
}

// TestBattlePhasesNeverSkip 任意 dt 序列下阶段逐个推进，每帧最多切换一次
func TestBattlePhasesNeverSkip(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		r := rand.New(rand.NewSource(seed))
		system, particles := newTestBattleSystem(t, utils.NewRandomSource(seed), nil)
		system.StartAttack("EMBER", "ember", 24)

		visited := []components.BattlePhase{system.Phase()}
		for i := 0; i < 5000 && !system.IsDone(); i++ {
			before := system.Phase()
			beforeActive := particles.Active()
			system.Update(0.001 + r.Float64()*0.1)
			after := system.Phase()

			if after == before {
				continue
			}
			if after != before.Next() {
				t.Fatalf("seed %d: skipped from %s to %s", seed, before, after)
			}
			if before == components.BattlePhaseAttackEffect && particles.Active() {
				t.Fatalf("seed %d: left attack_effect with active particles (before=%v)", seed, beforeActive)
			}
			visited = append(visited, after)
		}

		if !system.IsDone() {
			t.Fatalf("seed %d: sequence did not finish, stuck in %s", seed, system.Phase())
		}
		if len(visited) != 7 {
			t.Errorf("seed %d: expected 7 visited phases, got %v", seed, visited)
		}
	}
}

// TestBattleThresholdCrossedOnce 累计 dt 恰好达到阈值时切换一次
func TestBattleThresholdCrossedOnce(t *testing.T) {
	tests := []struct {
		name  string
		steps []float64
		want  components.BattlePhase
	}{
		{name: "just below", steps: []float64{0.25, 0.125}, want: components.BattlePhaseShowAttacker},
		{name: "exact sum", steps: []float64{0.25, 0.25}, want: components.BattlePhaseAttackText},
		{name: "single large dt", steps: []float64{5.0}, want: components.BattlePhaseAttackText},
		{name: "two large dts", steps: []float64{5.0, 5.0}, want: components.BattlePhaseAttackEffect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, _ := newTestBattleSystem(t, &scriptedRandom{}, nil)
			system.StartAttack("EMBER", "ember", 24)
			for _, dt := range tt.steps {
				system.Update(dt)
			}
			if system.Phase() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, system.Phase())
			}
		})
	}
}

// TestBattleResetFromAnyPhase 任意阶段 Reset 都回到 idle 且没有粒子
func TestBattleResetFromAnyPhase(t *testing.T) {
	for target := components.BattlePhaseIdle; target <= components.BattlePhaseDone; target++ {
		t.Run(target.String(), func(t *testing.T) {
			system, particles := newTestBattleSystem(t, &scriptedRandom{}, nil)
			if target != components.BattlePhaseIdle {
				system.StartAttack("EMBER", "ember", 24)
				for i := 0; i < 1000 && system.Phase() != target; i++ {
					system.Update(battleTick)
				}
				if system.Phase() != target {
					t.Fatalf("could not reach phase %s", target)
				}
			}
			particles.Emit(10, 10, 5, newTestEffectTable(t).Resolve("ember"))

			system.Reset()

			if system.Phase() != components.BattlePhaseIdle {
				t.Errorf("Expected idle after reset, got %s", system.Phase())
			}
			if particles.Count() != 0 {
				t.Errorf("Expected no particles after reset, got %d", particles.Count())
			}
			session := system.Session()
			if session.PhaseTimer != 0 || session.EffectTimer != 0 {
				t.Errorf("Expected timers cleared, got %f / %f", session.PhaseTimer, session.EffectTimer)
			}
		})
	}
}

func TestBattleRestartFromDone(t *testing.T) {
	system, _ := newTestBattleSystem(t, &scriptedRandom{}, nil)
	system.StartAttack("EMBER", "ember", 24)
	for i := 0; i < 1000 && !system.IsDone(); i++ {
		system.Update(battleTick)
	}
	if !system.IsDone() {
		t.Fatal("sequence did not finish")
	}

	if !system.StartAttack("EMBER", "ember", 24) {
		t.Fatal("StartAttack from done should succeed")
	}
	if system.Phase() != components.BattlePhaseShowAttacker {
		t.Errorf("Expected show_attacker, got %s", system.Phase())
	}
}
