package scenes

import (
	"testing"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/config"
	"github.com/decker502/monmon/pkg/render"
	"github.com/decker502/monmon/pkg/utils"
)

func TestOverworldSceneSpawnsCreatureAtCenter(t *testing.T) {
	cfg := config.DefaultSimulatorConfig()
	scene := NewOverworldScene(cfg, newTestAnimationSet(), utils.NewRandomSource(1))

	info := scene.DebugInfo()
	// 176/2 - 24 = 64, 220/2 - 24 = 86
	if info.X != 64 || info.Y != 86 {
		t.Errorf("Expected creature at (64, 86), got (%d, %d)", info.X, info.Y)
	}
	if info.State != components.WanderStateIdle {
		t.Errorf("Expected idle state, got %s", info.State)
	}
	if info.Direction != components.DirectionSouth {
		t.Errorf("Expected south direction, got %s", info.Direction)
	}
}

func TestOverworldSceneDraw(t *testing.T) {
	cfg := config.DefaultSimulatorConfig()
	scene := NewOverworldScene(cfg, newTestAnimationSet(), utils.NewRandomSource(1))

	canvas := render.NewRecorder(176, 220)
	scene.Draw(canvas)

	if len(canvas.Calls) == 0 || canvas.Calls[0].Op != render.OpClear {
		t.Fatal("Expected background to start with a clear")
	}
	if canvas.Calls[0].Color != grassLight {
		t.Errorf("Expected grass clear color, got %v", canvas.Calls[0].Color)
	}

	// 11 列 x 14 行（最后一行只画一部分），棋盘格一半是深色
	var dark, path, specks int
	for _, call := range canvas.Filter(render.OpFillRect) {
		switch call.Color {
		case grassDark:
			dark++
		case pathColor:
			path++
		case pathSpeck:
			specks++
		}
	}
	if dark != 77 {
		t.Errorf("Expected 77 dark grass tiles, got %d", dark)
	}
	if path != 1 {
		t.Errorf("Expected 1 path rect, got %d", path)
	}
	if specks != pathSpecks {
		t.Errorf("Expected %d path specks, got %d", pathSpecks, specks)
	}

	// 怪兽最后绘制
	images := canvas.Filter(render.OpImage)
	if len(images) != 1 {
		t.Fatalf("Expected 1 creature image, got %d", len(images))
	}
	last := canvas.Calls[len(canvas.Calls)-1]
	if last.Op != render.OpImage {
		t.Errorf("Expected creature drawn last, got op %v", last.Op)
	}
}

func TestOverworldSceneKeepsCreatureOnScreen(t *testing.T) {
	cfg := config.DefaultSimulatorConfig()
	scene := NewOverworldScene(cfg, newTestAnimationSet(), utils.NewRandomSource(7))

	maxX := cfg.Display.Width - int(cfg.Overworld.SpriteSize)
	maxY := cfg.Display.Height - int(cfg.Overworld.SpriteSize)

	walked := false
	for i := 0; i < 3000; i++ {
		scene.Update(1.0 / 60.0)
		info := scene.DebugInfo()
		if info.State == components.WanderStateWalking {
			walked = true
		}
		if info.X < 0 || info.Y < 0 || info.X > maxX || info.Y > maxY {
			t.Fatalf("tick %d: creature left the screen at (%d, %d)", i, info.X, info.Y)
		}
	}
	if !walked {
		t.Error("Expected the creature to start walking within 50 seconds")
	}
}
