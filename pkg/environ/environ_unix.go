/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
//go:build !windows

package environ

import (
	"os"

	"uniconv/pkg/charset"
)

// nativeEncoding 依次解析 LC_ALL / LC_CTYPE / LANG，取第一个可识别的 charset。
func nativeEncoding() (charset.Encoding, error) {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if enc, ok := parseLocale(os.Getenv(key)); ok {
			return enc, nil
		}
	}
	return charset.UTF8, ErrNativeUnknown
}
