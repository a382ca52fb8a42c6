// Package main provides an effect profile viewer for tuning data/effects.yaml.
//
// Usage:
//
//	go run ./cmd/effects [flags]
//
// Flags:
//
//	--root <dir>       Project root containing data/ (default ".")
//	--effect <name>    Start with specific effect (e.g., --effect=hit)
//	--auto-play        Automatically cycle through effects every 2 seconds
//	--seed <n>         Random seed (0 = time based)
//
// Controls:
//
//	Mouse Click       - Play the effect at cursor position
//	Left/Right Arrow  - Switch to previous/next effect
//	Space             - Play the effect at the battle emission point
//	R                 - Reload data/effects.yaml
//	C                 - Clear all particles
//	P                 - Toggle pause
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/monmon/pkg/config"
	"github.com/decker502/monmon/pkg/ecs"
	"github.com/decker502/monmon/pkg/embedded"
	"github.com/decker502/monmon/pkg/game"
	"github.com/decker502/monmon/pkg/render"
	"github.com/decker502/monmon/pkg/systems"
	"github.com/decker502/monmon/pkg/utils"
)

const (
	screenWidth  = 176
	screenHeight = 220
	windowScale  = 3
)

var (
	rootFlag     = flag.String("root", ".", "Project root containing data/")
	effectFlag   = flag.String("effect", "", "Start with specific effect name")
	autoPlayFlag = flag.Bool("auto-play", false, "Auto cycle through effects every 2 seconds")
	seedFlag     = flag.Int64("seed", 0, "Random seed (0 = time based)")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit requested")

var viewerBackground = color.RGBA{R: 25, G: 25, B: 38, A: 255}

// EffectViewerGame implements ebiten.Game for the effect viewer
type EffectViewerGame struct {
	entityManager  *ecs.EntityManager
	particleSystem *systems.ParticleSystem
	renderSystem   *systems.RenderSystem
	clock          *game.Clock

	effects      *config.EffectTable
	names        []string
	currentIndex int
	emitters     []*systems.EffectEmitter

	autoPlay    bool
	autoElapsed float64
	paused      bool

	statusMessage string
}

// NewEffectViewerGame creates a new effect viewer instance
func NewEffectViewerGame(seed int64) (*EffectViewerGame, error) {
	effects, err := config.LoadEffectTable(config.EffectsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load effects: %w", err)
	}

	simCfg, err := config.LoadSimulatorConfig(config.SimulatorConfigPath)
	if err != nil {
		log.Printf("Warning: %v (using default gravity)", err)
		simCfg = config.DefaultSimulatorConfig()
	}

	em := ecs.NewEntityManager()
	g := &EffectViewerGame{
		entityManager:  em,
		particleSystem: systems.NewParticleSystem(em, utils.NewRandomSource(seed), simCfg.Battle.Gravity),
		renderSystem:   systems.NewRenderSystem(em),
		clock:          game.NewClock(simCfg.Loop.MaxDeltaTime),
		autoPlay:       *autoPlayFlag,
	}
	g.setEffects(effects)

	if i := slices.Index(g.names, *effectFlag); i >= 0 {
		g.currentIndex = i
	}

	log.Printf("Effect Viewer initialized: %d effects", len(g.names))
	g.playCurrent(screenWidth/2, screenHeight/2-20)
	return g, nil
}

func (g *EffectViewerGame) setEffects(effects *config.EffectTable) {
	g.effects = effects
	g.names = effects.Names()
	if g.currentIndex >= len(g.names) {
		g.currentIndex = 0
	}
}

// Update updates the viewer state
func (g *EffectViewerGame) Update() error {
	dt := g.clock.Tick()

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		if g.paused {
			g.statusMessage = "PAUSED"
		} else {
			g.statusMessage = "Resumed"
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.switchEffect(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.switchEffect(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.playCurrent(screenWidth/2, screenHeight/2-20)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.playCurrent(float64(x), float64(y))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.particleSystem.Clear()
		g.emitters = nil
		g.statusMessage = "Cleared"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}

	if g.paused {
		return nil
	}

	if g.autoPlay {
		g.autoElapsed += dt
		if g.autoElapsed >= 2 {
			g.autoElapsed = 0
			g.switchEffect(1)
		}
	}

	g.updateEmissions(dt)
	g.particleSystem.Update(dt)
	return nil
}

// updateEmissions 推进正在播放的特效，节奏与战斗中的 attack_effect 阶段相同
func (g *EffectViewerGame) updateEmissions(dt float64) {
	active := g.emitters[:0]
	for _, e := range g.emitters {
		e.Update(dt)
		if !e.Finished() {
			active = append(active, e)
		}
	}
	g.emitters = active
}

func (g *EffectViewerGame) switchEffect(delta int) {
	if len(g.names) == 0 {
		return
	}
	g.currentIndex = (g.currentIndex + delta + len(g.names)) % len(g.names)
	g.playCurrent(screenWidth/2, screenHeight/2-20)
}

func (g *EffectViewerGame) playCurrent(x, y float64) {
	if len(g.names) == 0 {
		g.statusMessage = "No effects"
		return
	}
	name := g.names[g.currentIndex]
	profile := g.effects.Resolve(name)
	if profile.Interval > 0 {
		g.emitters = append(g.emitters, systems.NewEffectEmitter(g.particleSystem, x, y, profile))
	} else {
		// interval 为 0 的特效（如 hit）与战斗中的受击爆发一样只发射一批
		g.particleSystem.Emit(x, y, profile.Count, profile)
	}

	log.Printf("Playing effect: %s at (%.0f, %.0f)", name, x, y)
	g.statusMessage = fmt.Sprintf("Played: %s", name)
}

func (g *EffectViewerGame) reload() {
	effects, err := config.LoadEffectTable(config.EffectsConfigPath)
	if err != nil {
		log.Printf("Reload failed: %v", err)
		g.statusMessage = "Reload failed"
		return
	}
	g.setEffects(effects)
	g.statusMessage = fmt.Sprintf("Reloaded %d effects", len(g.names))
}

// Draw renders the viewer
func (g *EffectViewerGame) Draw(screen *ebiten.Image) {
	canvas := render.NewEbitenCanvas(screen)
	canvas.Clear(viewerBackground)
	g.renderSystem.DrawParticles(canvas)
	g.drawUI(screen)
}

func (g *EffectViewerGame) drawUI(screen *ebiten.Image) {
	if len(g.names) == 0 {
		ebitenutil.DebugPrintAt(screen, "No effects", 4, 4)
		return
	}

	profile := g.effects.Resolve(g.names[g.currentIndex])
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d/%d %s", g.currentIndex+1, len(g.names), profile.Name), 4, 4)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("n=%d int=%.2f dur=%.2f", profile.Count, profile.Interval, profile.Duration), 4, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Particles: %d", g.particleSystem.Count()), 4, 36)

	if g.statusMessage != "" {
		ebitenutil.DebugPrintAt(screen, g.statusMessage, 4, screenHeight-36)
	}
	ebitenutil.DebugPrintAt(screen, "<-/-> Space C R P Q", 4, screenHeight-20)
}

// Layout returns the viewer's logical screen size
func (g *EffectViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Warning: %v", err)
	}

	// 直接读取磁盘上的配置，便于修改后按 R 重新加载
	root := os.DirFS(*rootFlag)
	embedded.Init(root, root)

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	viewer, err := NewEffectViewerGame(seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start effect viewer: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(screenWidth*windowScale, screenHeight*windowScale)
	ebiten.SetWindowTitle("Mon-Mon Effect Viewer")

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
