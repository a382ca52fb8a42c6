package components

// PositionComponent 存储实体的屏幕坐标（像素，左上角为原点）
type PositionComponent struct {
	X float64
	Y float64
}
