package systems

import (
	"image/color"
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/ecs"
	"github.com/decker502/monmon/pkg/render"
)

func newTestBattleRenderer(background *ebiten.Image) (*BattleRenderSystem, *ecs.EntityManager) {
	em := ecs.NewEntityManager()
	return NewBattleRenderSystem(NewRenderSystem(em), &scriptedRandom{fallbackFloat: 0.5}, background, 2), em
}

func newTestSession(phase components.BattlePhase) *components.BattleSessionComponent {
	return &components.BattleSessionComponent{
		Phase:    phase,
		MoveName: "EMBER",
		Damage:   24,
		Attacker: components.Combatant{Name: "CHARMANDER", Sprite: ebiten.NewImage(64, 64)},
		Defender: components.Combatant{Name: "BULBASAUR", Sprite: ebiten.NewImage(64, 64)},
	}
}

func TestBattleRenderTexts(t *testing.T) {
	tests := []struct {
		phase components.BattlePhase
		want  []string
	}{
		{phase: components.BattlePhaseIdle, want: []string{"BATTLE MODE", "Press A to attack, B to exit"}},
		{phase: components.BattlePhaseShowAttacker, want: []string{"CHARMANDER"}},
		{phase: components.BattlePhaseAttackText, want: []string{"CHARMANDER used", "EMBER!"}},
		{phase: components.BattlePhaseAttackEffect, want: []string{"CHARMANDER used", "EMBER!"}},
		{phase: components.BattlePhaseShowDefender, want: []string{"BULBASAUR"}},
		{phase: components.BattlePhaseDamageText, want: []string{"It's super effective!", "BULBASAUR took 24 damage!"}},
		{phase: components.BattlePhaseDone, want: []string{"What will you do?", "A = Attack again, B = Exit"}},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			renderer, _ := newTestBattleRenderer(nil)
			canvas := render.NewRecorder(176, 220)
			renderer.Draw(canvas, newTestSession(tt.phase))

			texts := canvas.Texts()
			for _, want := range tt.want {
				if !slices.Contains(texts, want) {
					t.Errorf("Expected text %q in %v", want, texts)
				}
			}
		})
	}
}

func TestBattleRenderSpritesPerPhase(t *testing.T) {
	tests := []struct {
		phase        components.BattlePhase
		wantAttacker bool
		wantDefender bool
	}{
		{phase: components.BattlePhaseIdle},
		{phase: components.BattlePhaseAttackEffect, wantAttacker: true},
		{phase: components.BattlePhaseHitEffect, wantDefender: true},
		{phase: components.BattlePhaseDone, wantAttacker: true, wantDefender: true},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			renderer, _ := newTestBattleRenderer(nil)
			session := newTestSession(tt.phase)
			canvas := render.NewRecorder(176, 220)
			renderer.Draw(canvas, session)

			var gotAttacker, gotDefender bool
			for _, c := range canvas.Filter(render.OpImage) {
				switch c.Image {
				case session.Attacker.Sprite:
					gotAttacker = true
					// 左下：x=20，y = 220 - 128 - 60
					if c.X != 20 || c.Y != 32 || c.Scale != 2 {
						t.Errorf("Unexpected attacker placement %+v", c)
					}
				case session.Defender.Sprite:
					gotDefender = true
					// 右上：x = 176 - 128 - 20，无抖动时 y=50
					if c.X != 28 || c.Y != 50 {
						t.Errorf("Unexpected defender placement %+v", c)
					}
				}
			}
			if gotAttacker != tt.wantAttacker || gotDefender != tt.wantDefender {
				t.Errorf("attacker=%v defender=%v, want %v/%v", gotAttacker, gotDefender, tt.wantAttacker, tt.wantDefender)
			}
		})
	}
}

func TestBattleRenderBackground(t *testing.T) {
	bg := ebiten.NewImage(241, 111)
	renderer, _ := newTestBattleRenderer(bg)
	canvas := render.NewRecorder(176, 220)
	renderer.Draw(canvas, newTestSession(components.BattlePhaseIdle))

	first := canvas.Calls[0]
	if first.Op != render.OpImage || first.Image != bg {
		t.Fatalf("Expected background drawn first, got %+v", first)
	}
	if want := 176.0 / 241.0; first.Scale != want {
		t.Errorf("Expected background scale %f, got %f", want, first.Scale)
	}

	// 无背景图时使用渐变填充
	renderer, _ = newTestBattleRenderer(nil)
	canvas = render.NewRecorder(176, 220)
	renderer.Draw(canvas, newTestSession(components.BattlePhaseIdle))
	if len(canvas.Filter(render.OpImage)) != 0 {
		t.Error("Expected no image draws without background in idle phase")
	}
	if len(canvas.Filter(render.OpFillRect)) < 55 {
		t.Errorf("Expected gradient bands, got %d rects", len(canvas.Filter(render.OpFillRect)))
	}
}

func TestBattleRenderFlashOverlay(t *testing.T) {
	renderer, _ := newTestBattleRenderer(nil)
	session := newTestSession(components.BattlePhaseHitEffect)
	session.Flash = 1

	canvas := render.NewRecorder(176, 220)
	renderer.Draw(canvas, session)

	last := canvas.Calls[len(canvas.Calls)-1]
	if last.Op != render.OpFillRect || last.W != 176 || last.H != 220 || last.Color.A != 255 {
		t.Errorf("Expected full-screen white flash last, got %+v", last)
	}

	session.Flash = 0.005
	canvas.Reset()
	renderer.Draw(canvas, session)
	last = canvas.Calls[len(canvas.Calls)-1]
	if last.Op == render.OpFillRect && last.W == 176 && last.H == 220 {
		t.Error("Flash below threshold should not be drawn")
	}
}

func TestBattleRenderParticlesOnTop(t *testing.T) {
	renderer, em := newTestBattleRenderer(nil)
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: 88, Y: 90})
	em.AddComponent(id, &components.ParticleComponent{Life: 1, MaxLife: 1, Size: 3})

	canvas := render.NewRecorder(176, 220)
	renderer.Draw(canvas, newTestSession(components.BattlePhaseAttackEffect))

	last := canvas.Calls[len(canvas.Calls)-1]
	if last.Op != render.OpFillCircle {
		t.Errorf("Expected particle drawn last, got %s", last.Op)
	}
}

func TestHPColor(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{percent: 1, want: "high"},
		{percent: 0.76, want: "high"},
		{percent: 0.5, want: "mid"},
		{percent: 0.3, want: "mid"},
		{percent: 0.25, want: "low"},
		{percent: 0, want: "low"},
	}
	names := map[string]color.RGBA{"high": hpHighColor, "mid": hpMidColor, "low": hpLowColor}

	for _, tt := range tests {
		if got := HPColor(tt.percent); got != names[tt.want] {
			t.Errorf("HPColor(%f) = %v, want %s", tt.percent, got, tt.want)
		}
	}
}
