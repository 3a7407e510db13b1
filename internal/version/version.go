/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package version

import "fmt"

// 通过 -ldflags -X 在构建期注入：
//
//	go build -ldflags="-X 'uniconv/internal/version.Version=v1.0.0' ..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// GetAbout 返回用于 about 命令的版本摘要。
func GetAbout() string {
	return fmt.Sprintf("UniConv %s\n文本文件编码检测与转换工具\ncommit: %s\nbuilt:  %s",
		Version, Commit, BuildDate)
}
