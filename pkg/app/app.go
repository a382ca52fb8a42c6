// Package app 提供模拟器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/monmon/pkg/config"
	"github.com/decker502/monmon/pkg/embedded"
	"github.com/decker502/monmon/pkg/game"
	"github.com/decker502/monmon/pkg/render"
	"github.com/decker502/monmon/pkg/scenes"
	"github.com/decker502/monmon/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Debug 在画面左上角显示调试信息
	Debug bool
	// Battle 直接以战斗模式启动
	Battle bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Simulator 模拟器配置，为 nil 时从 data/simulator.yaml 加载
	Simulator *config.SimulatorConfig
}

// App 是模拟器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.SimulatorConfig
	sceneManager *game.SceneManager
	clock        *game.Clock
	input        *game.InputController
	inputSource  game.InputSource

	overworld *scenes.OverworldScene
	battle    *scenes.BattleScene

	debug      bool
	touchHints bool
	verbose    bool
}

// 触屏分区提示条
var (
	touchHintBackground = color.NRGBA{A: 0x60}
	touchHintText       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

const touchHintHeight = 12

// NewApp 创建并初始化模拟器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 任何素材加载失败都会返回错误，调用方可以改用 NewErrorApp 显示错误画面。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	simCfg := cfg.Simulator
	if simCfg == nil {
		loaded, err := config.LoadSimulatorConfig(config.SimulatorConfigPath)
		if err != nil {
			return nil, fmt.Errorf("模拟器配置加载失败: %w", err)
		}
		simCfg = loaded
	}

	effects, err := config.LoadEffectTable(config.EffectsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("特效配置加载失败: %w", err)
	}
	log.Printf("[Config] Loaded %d effects: %s", len(effects.Names()), strings.Join(effects.Names(), ", "))

	input := game.NewInputController(simCfg.Input, simCfg.Display.Width)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[App] Random seed: %d", seed)
	rng := utils.NewRandomSource(seed)

	resourceManager := game.NewResourceManager(embedded.FS())

	overworld, battle, err := loadScenes(resourceManager, simCfg, effects, rng)
	if err != nil {
		return nil, err
	}
	log.Printf("[App] Loaded %d images", resourceManager.CachedImageCount())

	sceneManager := game.NewSceneManager()
	sceneManager.Register(game.SceneOverworld, overworld)
	sceneManager.Register(game.SceneBattle, battle)

	start := game.SceneOverworld
	if cfg.Battle {
		start = game.SceneBattle
	}
	if err := sceneManager.SwitchTo(start); err != nil {
		return nil, err
	}

	return &App{
		cfg:          simCfg,
		sceneManager: sceneManager,
		clock:        game.NewClock(simCfg.Loop.MaxDeltaTime),
		input:        input,
		inputSource:  game.EbitenInput{},
		overworld:    overworld,
		battle:       battle,
		debug:        cfg.Debug,
		touchHints:   utils.IsMobile(),
		verbose:      cfg.Verbose,
	}, nil
}

// loadScenes 加载全部素材并创建大地图和战斗场景
func loadScenes(rm *game.ResourceManager, cfg *config.SimulatorConfig, effects *config.EffectTable, rng utils.RandomSource) (*scenes.OverworldScene, *scenes.BattleScene, error) {
	anims, err := game.LoadAnimationSet(rm, cfg.Overworld.WalkAnimation, cfg.Overworld.IdleAnimation)
	if err != nil {
		return nil, nil, fmt.Errorf("大地图精灵加载失败: %w", err)
	}

	attacker, err := rm.LoadImage(cfg.Battle.Attacker.Sprite)
	if err != nil {
		return nil, nil, fmt.Errorf("战斗精灵加载失败: %w", err)
	}
	defender, err := rm.LoadImage(cfg.Battle.Defender.Sprite)
	if err != nil {
		return nil, nil, fmt.Errorf("战斗精灵加载失败: %w", err)
	}

	// 背景图缺失时使用渐变背景
	background, err := rm.LoadImage(cfg.Battle.Background)
	if err != nil {
		log.Printf("[App] Battle background unavailable: %v", err)
		background = nil
	}

	overworld := scenes.NewOverworldScene(cfg, anims, rng)
	battle := scenes.NewBattleScene(cfg, effects, scenes.BattleAssets{
		Background: background,
		Attacker:   attacker,
		Defender:   defender,
	}, rng)
	return overworld, battle, nil
}

// NewErrorApp 创建只显示错误画面的应用
func NewErrorApp(err error) *App {
	log.Printf("[App] Failed to start: %v", err)

	sceneManager := game.NewSceneManager()
	sceneManager.Register(game.SceneError, scenes.NewErrorScene(err))
	_ = sceneManager.SwitchTo(game.SceneError)

	cfg := config.DefaultSimulatorConfig()
	return &App{
		cfg:          cfg,
		sceneManager: sceneManager,
		clock:        game.NewClock(cfg.Loop.MaxDeltaTime),
	}
}

// Update 更新模拟器逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.step(a.clock.Tick())
	return nil
}

// step 处理输入并推进当前场景
func (a *App) step(dt float64) {
	if a.input != nil {
		for _, event := range a.input.Poll(a.inputSource) {
			a.handleButton(event)
		}
	}
	a.sceneManager.Update(dt)
}

// handleButton 模式切换键和 B 键切换大地图/战斗，其余事件交给当前场景
func (a *App) handleButton(event game.ButtonEvent) {
	if event.Pressed && (event.Button == game.ButtonModeToggle || event.Button == game.ButtonB) {
		a.toggleMode()
		return
	}
	a.sceneManager.HandleButton(event)
}

func (a *App) toggleMode() {
	switch a.sceneManager.CurrentName() {
	case game.SceneOverworld:
		a.switchScene(game.SceneBattle)
	case game.SceneBattle:
		// 演出进行中不能退出
		if a.battle.CanExit() {
			a.switchScene(game.SceneOverworld)
		} else {
			log.Printf("[App] Cannot leave battle during %s", a.battle.Phase())
		}
	}
}

func (a *App) switchScene(name string) {
	if err := a.sceneManager.SwitchTo(name); err != nil {
		log.Printf("[App] %v", err)
	}
}

// Mode 返回当前模式名称
func (a *App) Mode() string {
	return a.sceneManager.CurrentName()
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	canvas := render.NewEbitenCanvas(screen)
	a.sceneManager.Draw(canvas)

	if a.touchHints {
		a.drawTouchHints(canvas)
	}
	if a.debug {
		ebitenutil.DebugPrintAt(screen, a.DebugText(), 2, 2)
	}
}

// drawTouchHints 在屏幕底部标出触屏的三个分区
func (a *App) drawTouchHints(canvas render.Canvas) {
	w := float64(canvas.Width())
	h := float64(canvas.Height())
	third := float64(canvas.Width() / 3)
	y := h - touchHintHeight

	canvas.FillRect(0, y, w, touchHintHeight, touchHintBackground)
	canvas.FillRect(third, y, 1, touchHintHeight, touchHintText)
	canvas.FillRect(2*third, y, 1, touchHintHeight, touchHintText)

	canvas.DrawText("D-PAD", third/2, y+2, 8, touchHintText, render.AlignCenter)
	canvas.DrawText("B", third*1.5, y+2, 8, touchHintText, render.AlignCenter)
	canvas.DrawText("A", (2*third+w)/2, y+2, 8, touchHintText, render.AlignCenter)
}

// DebugText 返回调试面板内容
func (a *App) DebugText() string {
	var b strings.Builder

	switch a.sceneManager.CurrentName() {
	case game.SceneBattle:
		fmt.Fprintf(&b, "Mode: BATTLE\nPhase: %s\n", a.battle.Phase())
	case game.SceneOverworld:
		info := a.overworld.DebugInfo()
		fmt.Fprintf(&b, "Mode: Overworld\nPosition: (%d, %d)\nDirection: %s\nState: %s\n", info.X, info.Y, info.Direction, info.State)
	default:
		fmt.Fprintf(&b, "Mode: %s\n", a.sceneManager.CurrentName())
	}

	pressed := "none"
	if a.input != nil {
		if buttons := a.input.PressedButtons(); len(buttons) > 0 {
			names := make([]string, len(buttons))
			for i, btn := range buttons {
				names[i] = strings.ToUpper(btn.String())
			}
			pressed = strings.Join(names, ", ")
		}
	}
	fmt.Fprintf(&b, "Pressed: %s", pressed)
	return b.String()
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 像素画使用最近邻缩放，全屏时两侧填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（176x220）
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Display.Width, a.cfg.Display.Height
}

// SimulatorConfig 返回生效的模拟器配置
func (a *App) SimulatorConfig() *config.SimulatorConfig {
	return a.cfg
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
