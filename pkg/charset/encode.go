/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import (
	"fmt"
	"unicode/utf8"
)

// DefaultReplacement 是有损编码目标的默认占位字节序列（'?'）。
var DefaultReplacement = []byte{'?'}

// EncodeResult 携带编码输出与不可表示字符的计数。
// 面向 GBK 族的调用方应检查 Unrepresentable——emoji 与大量符号
// 在 GBK 中没有映射，该损耗是有意为之的设计。
type EncodeResult struct {
	Bytes           []byte
	Unrepresentable int
}

// EncodeOptions 调整编码行为。零值等价于默认值。
type EncodeOptions struct {
	// Replacement 覆盖不可表示字符的占位字节序列，默认 DefaultReplacement。
	Replacement []byte
}

// Encode 把规范文本按目标编码重新编码。
// UTF-8/UTF-16LE/BE 目标对任意标量值都有精确表示，不会发生替换；
// GBK/GB2312 目标对映射范围外的字符写入占位序列并计数。
// BOM 写入由 policy 决定：UTF-16 族在 BOMConventional 下写入 2 字节 BOM，
// UTF-8 仅在 BOMAlways 下写入（UTF-8 BOM 不是多数工具链的惯例）。
func Encode(text string, enc Encoding, policy BOMPolicy) (EncodeResult, error) {
	return EncodeWith(text, enc, policy, EncodeOptions{})
}

// EncodeWith 同 Encode，但允许调整编码参数。
func EncodeWith(text string, enc Encoding, policy BOMPolicy, opt EncodeOptions) (EncodeResult, error) {
	resolved, err := resolve(enc)
	if err != nil {
		return EncodeResult{}, err
	}
	c := codecs[resolved]

	replacement := opt.Replacement
	if len(replacement) == 0 {
		replacement = DefaultReplacement
	}

	out := make([]byte, 0, len(text)+4)
	if c.bom != nil && (policy == BOMAlways || (policy == BOMConventional && c.bomConventional)) {
		out = append(out, c.bom...)
	}

	switch resolved {
	case UTF8:
		out = append(out, text...)
		return EncodeResult{Bytes: out}, nil
	case UTF16LE:
		return EncodeResult{Bytes: encodeUTF16(out, text, true)}, nil
	case UTF16BE:
		return EncodeResult{Bytes: encodeUTF16(out, text, false)}, nil
	case GBK, GB2312:
		out, unrep := encodeDoubleByte(out, text, c, replacement)
		return EncodeResult{Bytes: out, Unrepresentable: unrep}, nil
	}
	return EncodeResult{}, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, enc)
}

// encodeUTF16 把规范文本编码为 UTF-16 字节流。BMP 内的标量值写一个码元，
// 其余拆为高低代理对。规范文本中不存在孤立代理，因此不会失败。
func encodeUTF16(out []byte, text string, littleEndian bool) []byte {
	appendUnit := func(u uint16) {
		if littleEndian {
			out = append(out, byte(u), byte(u>>8))
		} else {
			out = append(out, byte(u>>8), byte(u))
		}
	}
	for _, r := range text {
		if r <= 0xFFFF {
			appendUnit(uint16(r))
			continue
		}
		v := uint32(r) - 0x10000
		appendUnit(uint16(0xD800 + (v >> 10)))
		appendUnit(uint16(0xDC00 + (v & 0x3FF)))
	}
	return out
}

// encodeDoubleByte 把规范文本编码为 GBK 族双字节流。ASCII 直接写入；
// 其余字符逐个送入查表编码器，映射不存在（emoji、多数符号）或产出的
// 字节对超出该编码的 lead/trail 范围（GBK 有而 GB2312 没有的字符）时
// 写入占位序列并计数。
func encodeDoubleByte(out []byte, text string, c *codec, replacement []byte) ([]byte, int) {
	enc := c.newEncoder()
	unrep := 0
	var src [utf8.UTFMax]byte
	var dst [4]byte

	for _, r := range text {
		if r < 0x80 {
			out = append(out, byte(r))
			continue
		}
		n := utf8.EncodeRune(src[:], r)
		enc.Reset()
		nDst, _, err := enc.Transform(dst[:], src[:n], true)
		if err != nil || nDst == 0 {
			out = append(out, replacement...)
			unrep++
			continue
		}
		if nDst == 1 && dst[0] >= 0x80 && c.leadLo > 0x81 {
			// 0x80（€）是 CP936 的单字节扩展，GB2312 中不存在
			out = append(out, replacement...)
			unrep++
			continue
		}
		if nDst == 2 {
			lead, trail := dst[0], dst[1]
			if lead < c.leadLo || lead > c.leadHi || !c.trailValid(trail) {
				// GBK 查表成功但落在本编码（GB2312 子集）范围之外
				out = append(out, replacement...)
				unrep++
				continue
			}
		}
		out = append(out, dst[:nDst]...)
	}
	return out, unrep
}
