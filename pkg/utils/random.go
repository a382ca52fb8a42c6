package utils

import (
	"math/rand"
	"time"
)

// RandomSource 随机数来源接口
//
// AI 行为、粒子发射和受击抖动都通过此接口取随机数，
// 测试中可以注入固定序列来覆盖特定分支（如 0.7 步行概率的两侧）。
// *rand.Rand 直接满足此接口。
type RandomSource interface {
	// Float64 返回 [0, 1) 内均匀分布的随机数
	Float64() float64
	// Intn 返回 [0, n) 内均匀分布的随机整数
	Intn(n int) int
}

// NewRandomSource 创建随机数来源
// seed 为 0 时使用当前时间作为种子
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandRange 返回 [min, max) 内均匀分布的随机数
func RandRange(r RandomSource, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// RandSpread 返回 [-spread/2, spread/2) 内均匀分布的偏移量
func RandSpread(r RandomSource, spread float64) float64 {
	return (r.Float64() - 0.5) * spread
}
