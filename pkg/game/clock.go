package game

import "time"

// Clock 计算相邻两帧之间的时间增量
//
// 第一次 Tick 返回 0；之后的增量被限制在 maxDelta 以内，
// 避免窗口拖动或断点调试后状态机一次跳过多个阶段。
type Clock struct {
	now      func() time.Time
	last     time.Time
	started  bool
	maxDelta float64
}

// NewClock 创建使用系统时间的时钟
func NewClock(maxDelta float64) *Clock {
	return NewClockWithSource(time.Now, maxDelta)
}

// NewClockWithSource 创建使用指定时间源的时钟（测试用）
func NewClockWithSource(now func() time.Time, maxDelta float64) *Clock {
	return &Clock{now: now, maxDelta: maxDelta}
}

// Tick 返回距上次调用经过的秒数
func (c *Clock) Tick() float64 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}

	dt := t.Sub(c.last).Seconds()
	c.last = t

	if dt < 0 {
		return 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		return c.maxDelta
	}
	return dt
}

// Reset 下一次 Tick 重新从 0 开始
func (c *Clock) Reset() {
	c.started = false
}
