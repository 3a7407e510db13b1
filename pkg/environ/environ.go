/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package environ

import (
	"errors"
	"strings"

	"uniconv/pkg/charset"
)

// 本包负责在进程启动时探测宿主环境的本地（native/ANSI）编码。
// Windows 上读取活动 ANSI 代码页，其余平台解析 POSIX locale 环境变量。
// 结果应通过 charset.SetLocal 注入一次，运行中不再查询宿主环境。

// ErrNativeUnknown 表示未能从宿主环境确定本地编码，调用方可回退 UTF-8。
var ErrNativeUnknown = errors.New("无法确定本地编码")

// Native 解析宿主环境的本地编码。
// 失败时返回 (charset.UTF8, ErrNativeUnknown)，调用方可直接使用该回退值。
func Native() (charset.Encoding, error) {
	return nativeEncoding()
}

// parseLocale 从 POSIX locale 字符串（如 "zh_CN.GB2312@stroke"）中提取
// charset 部分并规范化。无 charset 后缀的 "C"/"POSIX" 视作 ASCII，
// 归入 UTF-8。
func parseLocale(locale string) (charset.Encoding, bool) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return "", false
	}
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	i := strings.IndexByte(locale, '.')
	if i < 0 {
		if locale == "C" || locale == "POSIX" {
			return charset.UTF8, true
		}
		return "", false
	}
	enc, err := charset.Parse(locale[i+1:])
	if err != nil || enc == charset.Local {
		return "", false
	}
	return enc, true
}
