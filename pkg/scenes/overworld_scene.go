package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/config"
	"github.com/decker502/monmon/pkg/ecs"
	"github.com/decker502/monmon/pkg/render"
	"github.com/decker502/monmon/pkg/systems"
	"github.com/decker502/monmon/pkg/utils"
)

// 大地图背景
var (
	grassLight = color.RGBA{R: 0x78, G: 0xC8, B: 0x50, A: 0xff}
	grassDark  = color.RGBA{R: 0x68, G: 0xB8, B: 0x40, A: 0xff}
	pathColor  = color.RGBA{R: 0xD8, G: 0xB8, B: 0x98, A: 0xff}
	pathSpeck  = color.RGBA{R: 0xC8, G: 0xA8, B: 0x88, A: 0xff}
)

const (
	grassTileSize = 16
	pathHeight    = 50
	pathSpecks    = 15
)

// OverworldScene 大地图场景：草地背景上一只自主游荡的怪兽
type OverworldScene struct {
	entityManager *ecs.EntityManager
	wanderSystem  *systems.WanderSystem
	renderSystem  *systems.RenderSystem

	creature ecs.EntityID
	width    float64
	height   float64
}

// OverworldDebugInfo 调试面板显示的怪兽状态
type OverworldDebugInfo struct {
	X, Y      int
	Direction components.Direction
	State     components.WanderState
}

// NewOverworldScene 创建大地图场景并在屏幕中央生成怪兽
func NewOverworldScene(cfg *config.SimulatorConfig, anims *components.AnimationSetComponent, rng utils.RandomSource) *OverworldScene {
	em := ecs.NewEntityManager()
	width := float64(cfg.Display.Width)
	height := float64(cfg.Display.Height)

	scene := &OverworldScene{
		entityManager: em,
		wanderSystem:  systems.NewWanderSystem(em, rng, cfg.Overworld, width, height),
		renderSystem:  systems.NewRenderSystem(em),
		width:         width,
		height:        height,
	}
	scene.creature = scene.wanderSystem.Spawn(anims)

	log.Printf("[OverworldScene] Created (%dx%d), creature entity %d", cfg.Display.Width, cfg.Display.Height, scene.creature)
	return scene
}

// Update 推进游荡 AI 和动画
func (s *OverworldScene) Update(deltaTime float64) {
	s.wanderSystem.Update(deltaTime)
}

// Draw 绘制背景和怪兽
func (s *OverworldScene) Draw(canvas render.Canvas) {
	s.drawBackground(canvas)
	s.renderSystem.DrawWanderers(canvas)
}

// drawBackground 草地棋盘格 + 底部土路
func (s *OverworldScene) drawBackground(canvas render.Canvas) {
	canvas.Clear(grassLight)

	for y := 0.0; y < s.height; y += grassTileSize {
		for x := 0.0; x < s.width; x += grassTileSize {
			if (int(x/grassTileSize)+int(y/grassTileSize))%2 == 0 {
				canvas.FillRect(x, y, grassTileSize, grassTileSize, grassDark)
			}
		}
	}

	canvas.FillRect(0, s.height-pathHeight, s.width, pathHeight, pathColor)

	// 土路上的碎石，位置固定
	for i := 0; i < pathSpecks; i++ {
		x := math.Mod(float64(i*37+5), s.width)
		y := s.height - 45 + float64(i%5)*8
		canvas.FillRect(x, y, 3, 2, pathSpeck)
	}
}

// DebugInfo 返回怪兽当前位置、朝向和状态
func (s *OverworldScene) DebugInfo() OverworldDebugInfo {
	info := OverworldDebugInfo{}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.creature); ok {
		info.X = int(math.Floor(pos.X))
		info.Y = int(math.Floor(pos.Y))
	}
	if wander, ok := ecs.GetComponent[*components.WanderComponent](s.entityManager, s.creature); ok {
		info.Direction = wander.Direction
		info.State = wander.State
	}
	return info
}
