/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
//go:build windows

package environ

import (
	"fmt"

	"golang.org/x/sys/windows"

	"uniconv/pkg/charset"
)

// codePageEncodings 将常见的 Windows ANSI 代码页映射到支持的编码。
// GB18030 (54936) 归入 GBK——常用区间一致，超出部分由替换策略兜底。
var codePageEncodings = map[uint32]charset.Encoding{
	936:   charset.GBK,
	20936: charset.GB2312,
	54936: charset.GBK,
	65001: charset.UTF8,
	1200:  charset.UTF16LE,
	1201:  charset.UTF16BE,
}

// nativeEncoding 读取进程的活动 ANSI 代码页并映射为支持的编码。
func nativeEncoding() (charset.Encoding, error) {
	acp := windows.GetACP()
	if enc, ok := codePageEncodings[acp]; ok {
		return enc, nil
	}
	return charset.UTF8, fmt.Errorf("%w: 代码页 %d 不在支持族内", ErrNativeUnknown, acp)
}
