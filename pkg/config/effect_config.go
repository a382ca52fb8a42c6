package config

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/decker502/monmon/pkg/embedded"
)

// EffectProfile 粒子特效预设（只读配置数据）
//
// 角度单位为弧度，屏幕坐标系 Y 轴向下（-π/4 指向右上方）
type EffectProfile struct {
	Name     string
	Colors   []color.RGBA
	Angle    float64 // 发射中心角（弧度）
	Spread   float64 // 发射扇形张角（弧度）
	Speed    float64 // 最大初速度（像素/秒）
	Life     float64 // 最大寿命（秒）
	Size     float64 // 最大半径（像素）
	Count    int     // 每次爆发的粒子数
	Interval float64 // 爆发间隔（秒），0 表示每帧爆发
	Duration float64 // 特效总时长（秒）
}

// effectProfileFile YAML 中的特效描述，角度使用角度制，颜色使用 #RRGGBB
type effectProfileFile struct {
	Colors   []string `yaml:"colors"`
	Angle    float64  `yaml:"angle"`
	Spread   float64  `yaml:"spread"`
	Speed    float64  `yaml:"speed"`
	Life     float64  `yaml:"life"`
	Size     float64  `yaml:"size"`
	Count    int      `yaml:"count"`
	Interval float64  `yaml:"interval"`
	Duration float64  `yaml:"duration"`
}

type effectTableFile struct {
	Default string                       `yaml:"default"`
	Effects map[string]effectProfileFile `yaml:"effects"`
}

// EffectTable 特效预设表
// 加载后不再修改；查询返回副本，调用方修改不会影响表内数据
type EffectTable struct {
	profiles   map[string]EffectProfile
	defaultKey string
}

// ParseEffectTable 解析 YAML 格式的特效表
func ParseEffectTable(data []byte) (*EffectTable, error) {
	var file effectTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse effect table: %w", err)
	}

	if len(file.Effects) == 0 {
		return nil, fmt.Errorf("effect table has no effects")
	}

	table := &EffectTable{
		profiles:   make(map[string]EffectProfile, len(file.Effects)),
		defaultKey: file.Default,
	}

	for name, raw := range file.Effects {
		profile, err := raw.toProfile(name)
		if err != nil {
			return nil, fmt.Errorf("effect %q: %w", name, err)
		}
		table.profiles[name] = profile
	}

	if _, ok := table.profiles[table.defaultKey]; !ok {
		return nil, fmt.Errorf("default effect %q not defined", table.defaultKey)
	}

	return table, nil
}

// LoadEffectTable 从嵌入资源加载特效表
func LoadEffectTable(path string) (*EffectTable, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effect table %s: %w", path, err)
	}
	return ParseEffectTable(data)
}

func (f effectProfileFile) toProfile(name string) (EffectProfile, error) {
	if len(f.Colors) == 0 {
		return EffectProfile{}, fmt.Errorf("colors must not be empty")
	}
	if f.Count <= 0 {
		return EffectProfile{}, fmt.Errorf("count must be positive, got %d", f.Count)
	}
	if f.Life <= 0 || f.Size <= 0 || f.Speed < 0 {
		return EffectProfile{}, fmt.Errorf("life and size must be positive and speed non-negative")
	}
	if f.Interval < 0 || f.Duration < 0 {
		return EffectProfile{}, fmt.Errorf("interval and duration must not be negative")
	}

	colors := make([]color.RGBA, 0, len(f.Colors))
	for _, s := range f.Colors {
		c, err := ParseHexColor(s)
		if err != nil {
			return EffectProfile{}, err
		}
		colors = append(colors, c)
	}

	return EffectProfile{
		Name:     name,
		Colors:   colors,
		Angle:    f.Angle * math.Pi / 180,
		Spread:   f.Spread * math.Pi / 180,
		Speed:    f.Speed,
		Life:     f.Life,
		Size:     f.Size,
		Count:    f.Count,
		Interval: f.Interval,
		Duration: f.Duration,
	}, nil
}

// Lookup 按名称查询特效
func (t *EffectTable) Lookup(key string) (EffectProfile, bool) {
	p, ok := t.profiles[key]
	if !ok {
		return EffectProfile{}, false
	}
	p.Colors = slices.Clone(p.Colors)
	return p, true
}

// Resolve 按名称查询特效，未知名称回退到默认特效
func (t *EffectTable) Resolve(key string) EffectProfile {
	if p, ok := t.Lookup(key); ok {
		return p
	}
	p, _ := t.Lookup(t.defaultKey)
	return p
}

// DefaultKey 返回默认特效名称
func (t *EffectTable) DefaultKey() string {
	return t.defaultKey
}

// Names 返回全部特效名称（按字母排序）
func (t *EffectTable) Names() []string {
	names := make([]string, 0, len(t.profiles))
	for name := range t.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseHexColor 解析 "#RRGGBB" 或 "#RGB" 格式的颜色，"#" 可省略
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
