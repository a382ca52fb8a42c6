//go:build !mobile

// 桌面端构建时 mobile 包只剩这个占位函数，
// 绑定入口和资源嵌入在 -tags mobile 下才参与编译（见 mobile.go / embed.go）。
package mobile

// Dummy 占位导出函数，保证 go build ./... 和 go vet ./... 在桌面端通过
func Dummy() {}
