package game

import (
	"fmt"
	"log"
	"sort"

	"github.com/decker502/monmon/pkg/render"
)

// 场景名称
const (
	SceneOverworld = "overworld"
	SceneBattle    = "battle"
	SceneError     = "error"
)

// SceneManager manages the simulator's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	scenes       map[string]Scene
	currentName  string
	currentScene Scene
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		scenes: make(map[string]Scene),
	}
}

// Register 注册一个命名场景
func (sm *SceneManager) Register(name string, scene Scene) {
	sm.scenes[name] = scene
}

// SwitchTo changes the active scene to the scene registered under name.
// If the scene implements Enterable, its OnEnter is called before the next Update.
func (sm *SceneManager) SwitchTo(name string) error {
	scene, ok := sm.scenes[name]
	if !ok {
		return fmt.Errorf("scene %q not registered (have %v)", name, sm.Names())
	}

	log.Printf("[SceneManager] Switch scene: %q -> %q", sm.currentName, name)
	sm.currentName = name
	sm.currentScene = scene

	if e, ok := scene.(Enterable); ok {
		e.OnEnter()
	}
	return nil
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前活动场景的名称
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Names 返回已注册的场景名称（排序）
func (sm *SceneManager) Names() []string {
	names := make([]string, 0, len(sm.scenes))
	for name := range sm.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HandleButton 把按键事件转发给当前场景（如果场景接收按键）
func (sm *SceneManager) HandleButton(event ButtonEvent) {
	if h, ok := sm.currentScene.(ButtonHandler); ok {
		h.HandleButton(event)
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene onto the canvas.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(canvas render.Canvas) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(canvas)
	}
}
