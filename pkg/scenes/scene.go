// Package scenes 实现模拟器的各个场景
//
// 每个场景拥有自己的 EntityManager 和系统，由 game.SceneManager 切换。
package scenes

import (
	"github.com/decker502/monmon/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene
