package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/monmon/pkg/app"
	"github.com/decker502/monmon/pkg/config"
	"github.com/decker502/monmon/pkg/embedded"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
	scaleFlag   = flag.Int("scale", 0, "Window scale factor (0 = use config)")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	battleFlag  = flag.Bool("battle", false, "Start directly in battle mode")
	debugFlag   = flag.Bool("debug", false, "Show debug overlay")
)

func main() {
	flag.Parse()

	// .env 可选，不存在时忽略
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("[Main] %v", err)
	}
	env, err := config.ReadEnvOverrides()
	if err != nil {
		log.Fatalf("环境变量无效: %v", err)
	}

	// 初始化嵌入资源
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	cfg := app.Config{
		Verbose: *verboseFlag || env.Verbose,
		Debug:   *debugFlag || env.Debug,
		Battle:  *battleFlag,
		Seed:    *seedFlag,
	}
	if cfg.Seed == 0 {
		cfg.Seed = env.Seed
	}

	simCfg, err := config.LoadSimulatorConfig(config.SimulatorConfigPath)
	if err != nil {
		log.Fatalf("模拟器配置加载失败: %v", err)
	}
	env.Apply(simCfg)
	if *scaleFlag > 0 {
		simCfg.Display.WindowScale = *scaleFlag
	}
	cfg.Simulator = simCfg

	ebiten.SetWindowSize(simCfg.Display.Width*simCfg.Display.WindowScale, simCfg.Display.Height*simCfg.Display.WindowScale)
	ebiten.SetWindowTitle(simCfg.Display.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	var game ebiten.Game
	gameApp, err := app.NewApp(cfg)
	if err != nil {
		game = app.NewErrorApp(err)
	} else {
		game = gameApp
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
