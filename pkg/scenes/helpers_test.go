package scenes

import (
	"os"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/config"
)

func newTestFrames(n int) []*ebiten.Image {
	frames := make([]*ebiten.Image, n)
	for i := range frames {
		frames[i] = ebiten.NewImage(48, 48)
	}
	return frames
}

func newTestAnimationSet() *components.AnimationSetComponent {
	set := &components.AnimationSetComponent{
		Walk: make(map[components.Direction]*components.AnimationComponent),
		Idle: make(map[components.Direction]*components.AnimationComponent),
	}
	for _, dir := range components.AllDirections {
		set.Walk[dir] = components.NewAnimationComponent(newTestFrames(6), 8)
		set.Idle[dir] = components.NewAnimationComponent(newTestFrames(4), 4)
	}
	return set
}

// loadShippedEffects 读取随程序发布的特效配置
func loadShippedEffects(t *testing.T) *config.EffectTable {
	t.Helper()
	data, err := os.ReadFile("../../data/effects.yaml")
	if err != nil {
		t.Fatalf("Failed to read effects.yaml: %v", err)
	}
	table, err := config.ParseEffectTable(data)
	if err != nil {
		t.Fatalf("Failed to parse effects.yaml: %v", err)
	}
	return table
}
