// validate_config 检查 data/ 下的 YAML 配置以及其引用的素材文件
//
// 用法：
//
//	go run ./cmd/validate_config [--root .]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/config"
	"github.com/decker502/monmon/pkg/game"
)

var rootFlag = flag.String("root", ".", "Project root containing data/ and assets/")

func main() {
	flag.Parse()

	failed := false

	simCfg, err := loadSimulatorConfig(filepath.Join(*rootFlag, config.SimulatorConfigPath))
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ %s 格式正确 (%dx%d)\n", config.SimulatorConfigPath, simCfg.Display.Width, simCfg.Display.Height)

	effects, err := loadEffectTable(filepath.Join(*rootFlag, config.EffectsConfigPath))
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ %s 格式正确，特效数量: %d (默认 %s)\n", config.EffectsConfigPath, len(effects.Names()), effects.DefaultKey())

	// 战斗中引用的特效必须存在
	for _, key := range []string{simCfg.Battle.Move.Effect, simCfg.Battle.HitEffect} {
		if _, ok := effects.Lookup(key); !ok {
			fmt.Printf("❌ 特效 %q 未定义（将回退到 %s）\n", key, effects.DefaultKey())
			failed = true
		}
	}

	missing := 0
	for _, path := range spritePaths(simCfg) {
		if _, err := os.Stat(filepath.Join(*rootFlag, path)); err != nil {
			fmt.Printf("❌ 缺少素材: %s\n", path)
			missing++
		}
	}
	if missing == 0 {
		fmt.Printf("✅ 所有素材文件都存在\n")
	} else {
		fmt.Printf("❌ 有 %d 个素材文件缺失\n", missing)
		failed = true
	}

	if failed {
		os.Exit(1)
	}
}

func loadSimulatorConfig(path string) (*config.SimulatorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}
	return config.ParseSimulatorConfig(data)
}

func loadEffectTable(path string) (*config.EffectTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}
	return config.ParseEffectTable(data)
}

// spritePaths 列出配置引用的全部图片（战斗背景缺失时有渐变兜底，也一并检查）
func spritePaths(cfg *config.SimulatorConfig) []string {
	var paths []string
	for _, src := range []config.AnimationSource{cfg.Overworld.WalkAnimation, cfg.Overworld.IdleAnimation} {
		for _, dir := range components.AllDirections {
			for i := 0; i < src.Frames; i++ {
				paths = append(paths, game.FramePath(src.Dir, dir, i))
			}
		}
	}
	return append(paths, cfg.Battle.Background, cfg.Battle.Attacker.Sprite, cfg.Battle.Defender.Sprite)
}
