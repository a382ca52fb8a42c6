package game

import (
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io/fs"
	"log"
	"path"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/config"
)

// ImageLoader 按路径加载图片
type ImageLoader interface {
	LoadImage(path string) (*ebiten.Image, error)
}

// ResourceManager is responsible for loading and caching image assets.
// Images are decoded once and reused for the lifetime of the manager.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All assets are loaded in the main
// goroutine before the game loop starts, so no synchronization is needed.
//
// Usage:
//
//	rm := NewResourceManager(embedded.FS())
//	img, err := rm.LoadImage("assets/sprites/battle/grass_battlefield.png")
//	if err != nil {
//	    log.Printf("Failed to load image: %v", err)
//	}
type ResourceManager struct {
	fsys       fs.FS
	imageCache map[string]*ebiten.Image // Cache for loaded images: path -> Image
}

// NewResourceManager creates a ResourceManager reading from fsys.
// Paths passed to LoadImage are relative to the root of fsys.
func NewResourceManager(fsys fs.FS) *ResourceManager {
	return &ResourceManager{
		fsys:       fsys,
		imageCache: make(map[string]*ebiten.Image),
	}
}

// LoadImage loads an image from the file system and caches it.
// If the image has already been loaded, it returns the cached version.
//
// Parameters:
//   - path: The file path of the image resource (e.g., "assets/sprites/battle/attacker_back.png")
//
// Returns:
//   - A pointer to the loaded ebiten.Image
//   - An error if the file cannot be opened or decoded
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	file, err := rm.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg

	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache.
// If the image has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// CachedImageCount 返回已缓存的图片数量
func (rm *ResourceManager) CachedImageCount() int {
	return len(rm.imageCache)
}

// FramePath 返回帧序列中第 index 帧的路径
// 格式: {dir}/{direction}/frame_000.png
func FramePath(dir string, direction components.Direction, index int) string {
	return path.Join(dir, direction.String(), fmt.Sprintf("frame_%03d.png", index))
}

// LoadFrames 加载一个方向的帧序列
func LoadFrames(loader ImageLoader, src config.AnimationSource, direction components.Direction) ([]*ebiten.Image, error) {
	frames := make([]*ebiten.Image, 0, src.Frames)
	for i := 0; i < src.Frames; i++ {
		img, err := loader.LoadImage(FramePath(src.Dir, direction, i))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s frames: %w", direction, err)
		}
		frames = append(frames, img)
	}
	return frames, nil
}

// LoadAnimationSet 加载全部 8 个方向的行走和待机帧序列
func LoadAnimationSet(loader ImageLoader, walk, idle config.AnimationSource) (*components.AnimationSetComponent, error) {
	set := &components.AnimationSetComponent{
		Walk: make(map[components.Direction]*components.AnimationComponent, len(components.AllDirections)),
		Idle: make(map[components.Direction]*components.AnimationComponent, len(components.AllDirections)),
	}

	for _, dir := range components.AllDirections {
		walkFrames, err := LoadFrames(loader, walk, dir)
		if err != nil {
			return nil, fmt.Errorf("walk animation: %w", err)
		}
		idleFrames, err := LoadFrames(loader, idle, dir)
		if err != nil {
			return nil, fmt.Errorf("idle animation: %w", err)
		}
		set.Walk[dir] = components.NewAnimationComponent(walkFrames, walk.FrameRate)
		set.Idle[dir] = components.NewAnimationComponent(idleFrames, idle.FrameRate)
	}

	log.Printf("[ResourceManager] Loaded animation set: %d directions, walk=%d frames, idle=%d frames",
		len(components.AllDirections), walk.Frames, idle.Frames)
	return set, nil
}
