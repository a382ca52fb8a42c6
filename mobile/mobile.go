//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 使用 Makefile 构建：
//
//	make build-android    # Android
//	make build-ios        # iOS (仅 macOS)
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/monmon/pkg/app"
	"github.com/decker502/monmon/pkg/embedded"
)

func init() {
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	// 移动端只有触屏：左 1/3 方向键，中间 B，右侧 A
	var game ebiten.Game
	gameApp, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Printf("模拟器初始化失败: %v", err)
		game = app.NewErrorApp(err)
	} else {
		game = gameApp
	}

	mobile.SetGame(game)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
