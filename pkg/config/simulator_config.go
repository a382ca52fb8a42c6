package config

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/monmon/pkg/embedded"
)

// 配置文件位置
const (
	SimulatorConfigPath = "data/simulator.yaml"
	EffectsConfigPath   = "data/effects.yaml"
)

// SimulatorConfig 模拟器总配置
//
// 配置文件位置: data/simulator.yaml
// 文件中缺失的字段保留 DefaultSimulatorConfig() 中的默认值
type SimulatorConfig struct {
	Display   DisplayConfig   `yaml:"display"`
	Loop      LoopConfig      `yaml:"loop"`
	Overworld OverworldConfig `yaml:"overworld"`
	Battle    BattleConfig    `yaml:"battle"`
	Input     InputConfig     `yaml:"input"`
}

// DisplayConfig 屏幕配置
type DisplayConfig struct {
	// Width/Height 逻辑分辨率（ILI9225 屏幕为 176x220）
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// WindowScale 桌面窗口放大倍数
	WindowScale int    `yaml:"windowScale"`
	Title       string `yaml:"title"`
}

// LoopConfig 主循环配置
type LoopConfig struct {
	// MaxDeltaTime 单帧时间增量上限（秒），防止窗口卡顿后状态机跳变
	MaxDeltaTime float64 `yaml:"maxDeltaTime"`
}

// Range 闭开区间 [Min, Max)
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// AnimationSource 帧序列素材位置
// 帧路径格式: {Dir}/{direction}/frame_000.png
type AnimationSource struct {
	Dir       string  `yaml:"dir"`
	Frames    int     `yaml:"frames"`
	FrameRate float64 `yaml:"frameRate"`
}

// OverworldConfig 大地图游荡 AI 配置
type OverworldConfig struct {
	SpriteSize      float64 `yaml:"spriteSize"`
	Speed           float64 `yaml:"speed"`
	ArrivalDistance float64 `yaml:"arrivalDistance"`
	// WalkChance 待机计时结束时开始行走的概率
	WalkChance float64 `yaml:"walkChance"`

	InitialIdle  Range `yaml:"initialIdle"`
	IdleTime     Range `yaml:"idleTime"`
	RerollTime   Range `yaml:"rerollTime"`
	WalkTimeout  Range `yaml:"walkTimeout"`
	WalkDistance Range `yaml:"walkDistance"`

	WalkAnimation AnimationSource `yaml:"walkAnimation"`
	IdleAnimation AnimationSource `yaml:"idleAnimation"`
}

// CombatantConfig 参战单位配置
type CombatantConfig struct {
	Name   string `yaml:"name"`
	Sprite string `yaml:"sprite"`
}

// MoveConfig 按 A 键发动的技能
type MoveConfig struct {
	Name   string `yaml:"name"`
	Effect string `yaml:"effect"`
	Damage int    `yaml:"damage"`
}

// PhaseTimings 战斗各阶段时长（秒）
type PhaseTimings struct {
	ShowAttacker float64 `yaml:"showAttacker"`
	AttackText   float64 `yaml:"attackText"`
	// EffectMargin 特效持续时间结束后额外等待的时间
	EffectMargin float64 `yaml:"effectMargin"`
	// MaxEffectWait 超过 duration+margin 后仍有粒子时的最长等待，0 表示无限等待
	MaxEffectWait float64 `yaml:"maxEffectWait"`
	ShowDefender  float64 `yaml:"showDefender"`
	HitEffect     float64 `yaml:"hitEffect"`
	DamageText    float64 `yaml:"damageText"`
}

// BattleConfig 战斗演出配置
type BattleConfig struct {
	Background  string          `yaml:"background"`
	Attacker    CombatantConfig `yaml:"attacker"`
	Defender    CombatantConfig `yaml:"defender"`
	Move        MoveConfig      `yaml:"move"`
	HitEffect   string          `yaml:"hitEffect"`
	SpriteScale float64         `yaml:"spriteScale"`
	Timings     PhaseTimings    `yaml:"timings"`

	ShakeIntensity float64 `yaml:"shakeIntensity"`
	FlashIntensity float64 `yaml:"flashIntensity"`
	// DecayFactor 抖动/闪白每帧的衰减系数
	DecayFactor float64 `yaml:"decayFactor"`
	// Gravity 粒子竖直方向加速度（像素/秒²）
	Gravity float64 `yaml:"gravity"`
}

// InputConfig 按键绑定
//
// 键名使用 Ebitengine 的命名（不区分大小写），如 "X"、"ArrowUp"、"Digit6"，
// 由 ebiten.Key 的 UnmarshalText 解析，未知键名在加载时报错。
type InputConfig struct {
	DPad   []ebiten.Key `yaml:"dpad"`
	A      []ebiten.Key `yaml:"a"`
	B      []ebiten.Key `yaml:"b"`
	Toggle []ebiten.Key `yaml:"toggle"`
}

// DefaultSimulatorConfig 返回内置默认配置
func DefaultSimulatorConfig() *SimulatorConfig {
	return &SimulatorConfig{
		Display: DisplayConfig{
			Width:       176,
			Height:      220,
			WindowScale: 3,
			Title:       "Mon-Mon Simulator",
		},
		Loop: LoopConfig{
			MaxDeltaTime: 0.1,
		},
		Overworld: OverworldConfig{
			SpriteSize:      48,
			Speed:           30,
			ArrivalDistance: 2,
			WalkChance:      0.7,
			InitialIdle:     Range{Min: 1, Max: 3},
			IdleTime:        Range{Min: 1, Max: 4},
			RerollTime:      Range{Min: 1, Max: 3},
			WalkTimeout:     Range{Min: 2, Max: 5},
			WalkDistance:    Range{Min: 20, Max: 80},
			WalkAnimation: AnimationSource{
				Dir:       "assets/sprites/creature/walk",
				Frames:    6,
				FrameRate: 8,
			},
			IdleAnimation: AnimationSource{
				Dir:       "assets/sprites/creature/breathing-idle",
				Frames:    4,
				FrameRate: 4,
			},
		},
		Battle: BattleConfig{
			Background: "assets/sprites/battle/grass_battlefield.png",
			Attacker: CombatantConfig{
				Name:   "CHARMANDER",
				Sprite: "assets/sprites/battle/attacker_back.png",
			},
			Defender: CombatantConfig{
				Name:   "BULBASAUR",
				Sprite: "assets/sprites/battle/defender_front.png",
			},
			Move:        MoveConfig{Name: "EMBER", Effect: "ember", Damage: 24},
			HitEffect:   "hit",
			SpriteScale: 2,
			Timings: PhaseTimings{
				ShowAttacker:  0.5,
				AttackText:    1.0,
				EffectMargin:  0.5,
				MaxEffectWait: 3.0,
				ShowDefender:  0.3,
				HitEffect:     0.5,
				DamageText:    1.5,
			},
			ShakeIntensity: 8,
			FlashIntensity: 1,
			DecayFactor:    0.9,
			Gravity:        50,
		},
		Input: InputConfig{
			DPad:   []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight},
			A:      []ebiten.Key{ebiten.KeyX, ebiten.KeyA, ebiten.KeySpace},
			B:      []ebiten.Key{ebiten.KeyZ, ebiten.KeyB},
			Toggle: []ebiten.Key{ebiten.KeyDigit6},
		},
	}
}

// ParseSimulatorConfig 在默认配置之上解析 YAML 内容
func ParseSimulatorConfig(data []byte) (*SimulatorConfig, error) {
	cfg := DefaultSimulatorConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse simulator config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulator config: %w", err)
	}

	return cfg, nil
}

// LoadSimulatorConfig 从嵌入资源加载模拟器配置
//
// 参数:
//   - path: 配置文件路径（如 "data/simulator.yaml"）
func LoadSimulatorConfig(path string) (*SimulatorConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulator config %s: %w", path, err)
	}
	return ParseSimulatorConfig(data)
}

// Validate 验证配置有效性
func (c *SimulatorConfig) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.WindowScale <= 0 {
		return fmt.Errorf("display windowScale must be positive, got %d", c.Display.WindowScale)
	}
	if c.Loop.MaxDeltaTime <= 0 {
		return errors.New("loop maxDeltaTime must be positive")
	}

	ow := c.Overworld
	if ow.SpriteSize <= 0 || ow.SpriteSize > float64(c.Display.Width) || ow.SpriteSize > float64(c.Display.Height) {
		return fmt.Errorf("overworld spriteSize %.0f does not fit the display", ow.SpriteSize)
	}
	if ow.Speed <= 0 {
		return fmt.Errorf("overworld speed must be positive, got %f", ow.Speed)
	}
	if ow.WalkChance < 0 || ow.WalkChance > 1 {
		return fmt.Errorf("overworld walkChance must be in [0, 1], got %f", ow.WalkChance)
	}
	ranges := map[string]Range{
		"initialIdle":  ow.InitialIdle,
		"idleTime":     ow.IdleTime,
		"rerollTime":   ow.RerollTime,
		"walkTimeout":  ow.WalkTimeout,
		"walkDistance": ow.WalkDistance,
	}
	for name, r := range ranges {
		if r.Min < 0 || r.Min > r.Max {
			return fmt.Errorf("overworld %s range invalid: min=%f max=%f", name, r.Min, r.Max)
		}
	}
	for name, src := range map[string]AnimationSource{"walkAnimation": ow.WalkAnimation, "idleAnimation": ow.IdleAnimation} {
		if src.Dir == "" || src.Frames <= 0 || src.FrameRate <= 0 {
			return fmt.Errorf("overworld %s must have dir, frames > 0 and frameRate > 0", name)
		}
	}

	b := c.Battle
	if b.Move.Name == "" || b.Move.Effect == "" {
		return errors.New("battle move must have a name and an effect")
	}
	if b.DecayFactor < 0 || b.DecayFactor >= 1 {
		return fmt.Errorf("battle decayFactor must be in [0, 1), got %f", b.DecayFactor)
	}
	if b.SpriteScale <= 0 {
		return fmt.Errorf("battle spriteScale must be positive, got %f", b.SpriteScale)
	}
	if b.Timings.MaxEffectWait < 0 {
		return fmt.Errorf("battle maxEffectWait must not be negative, got %f", b.Timings.MaxEffectWait)
	}

	if len(c.Input.A) == 0 || len(c.Input.B) == 0 {
		return errors.New("input bindings for A and B must not be empty")
	}

	return nil
}
