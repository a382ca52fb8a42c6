//go:build mobile

package utils

// IsMobile 移动端构建（-tags mobile）恒为 true，用于显示触屏分区提示
func IsMobile() bool {
	return true
}
