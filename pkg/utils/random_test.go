package utils

import "testing"

// fixedSource 按顺序返回预设值的随机数来源
type fixedSource struct {
	floats []float64
	ints   []int
}

func (f *fixedSource) Float64() float64 {
	v := f.floats[0]
	f.floats = f.floats[1:]
	return v
}

func (f *fixedSource) Intn(n int) int {
	v := f.ints[0] % n
	f.ints = f.ints[1:]
	return v
}

func TestRandRange(t *testing.T) {
	tests := []struct {
		name     string
		draw     float64
		min, max float64
		want     float64
	}{
		{name: "lower bound", draw: 0, min: 1, max: 4, want: 1},
		{name: "midpoint", draw: 0.5, min: 20, max: 80, want: 50},
		{name: "near upper bound", draw: 0.75, min: 2, max: 6, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fixedSource{floats: []float64{tt.draw}}
			if got := RandRange(src, tt.min, tt.max); got != tt.want {
				t.Errorf("RandRange() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRandSpread(t *testing.T) {
	src := &fixedSource{floats: []float64{0, 0.5, 0.75}}

	if got := RandSpread(src, 2); got != -1 {
		t.Errorf("Expected -1, got %f", got)
	}
	if got := RandSpread(src, 2); got != 0 {
		t.Errorf("Expected 0, got %f", got)
	}
	if got := RandSpread(src, 2); got != 0.5 {
		t.Errorf("Expected 0.5, got %f", got)
	}
}

func TestNewRandomSourceDeterministic(t *testing.T) {
	a := NewRandomSource(42)
	b := NewRandomSource(42)

	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("Sources with the same seed should produce the same sequence")
		}
	}

	r := NewRandomSource(0)
	for i := 0; i < 100; i++ {
		v := r.Intn(8)
		if v < 0 || v >= 8 {
			t.Fatalf("Intn(8) out of range: %d", v)
		}
	}
}
