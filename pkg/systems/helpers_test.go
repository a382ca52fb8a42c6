package systems

// scriptedRandom 按脚本顺序返回随机数；脚本用完后返回 fallback 值
type scriptedRandom struct {
	floats []float64
	ints   []int

	fallbackFloat float64
	fallbackInt   int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return r.fallbackFloat
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRandom) Intn(n int) int {
	v := r.fallbackInt
	if len(r.ints) > 0 {
		v = r.ints[0]
		r.ints = r.ints[1:]
	}
	return v % n
}
