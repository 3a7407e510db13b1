/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import (
	"fmt"
	"unicode/utf8"
)

// DecodeResult 携带解码出的规范文本与替换次数。
// Substitutions > 0 表示输入存在非法序列，是否视为错误由调用方决定。
type DecodeResult struct {
	Text          string
	Substitutions int
}

// Decode 把字节缓冲按给定编码解码为规范文本（合法 UTF-8 字符串）。
// 输入应已去除 BOM（管线负责剥离）。解码永不失败：非法序列被替换为
// U+FFFD 并计数；唯一的错误是编码本身不受支持。
func Decode(data []byte, enc Encoding) (DecodeResult, error) {
	resolved, err := resolve(enc)
	if err != nil {
		return DecodeResult{}, err
	}
	switch resolved {
	case UTF8:
		text, subs := decodeUTF8(data)
		return DecodeResult{Text: text, Substitutions: subs}, nil
	case UTF16LE:
		text, subs := decodeUTF16(data, true)
		return DecodeResult{Text: text, Substitutions: subs}, nil
	case UTF16BE:
		text, subs := decodeUTF16(data, false)
		return DecodeResult{Text: text, Substitutions: subs}, nil
	case GBK, GB2312:
		text, subs := decodeDoubleByte(data, codecs[resolved])
		return DecodeResult{Text: text, Substitutions: subs}, nil
	}
	return DecodeResult{}, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, enc)
}

// decodeUTF8 做容错 UTF-8 解码：每个“最大非法子序列”只产生一个 U+FFFD，
// 而不是逐字节替换，避免一处损坏放大成一串替换符。
func decodeUTF8(data []byte) (string, int) {
	if utf8.Valid(data) {
		// 快速路径：合法输入直接拷贝
		return string(data), 0
	}
	out := make([]byte, 0, len(data))
	subs := 0
	i := 0
	for i < len(data) {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			// 非法起始字节：连同其后跟随的连续字节一起视为一个非法子序列
			i++
			for i < len(data) && data[i]&0xC0 == 0x80 {
				i++
			}
			out = utf8.AppendRune(out, utf8.RuneError)
			subs++
			continue
		}
		out = append(out, data[i:i+size]...)
		i += size
	}
	return string(out), subs
}

// decodeUTF16 将 UTF-16 (LE 或 BE) 字节流解码为规范文本。
// 合法的高低代理对合成一个标量值；孤立代理与末尾的残缺码元替换为 U+FFFD。
func decodeUTF16(data []byte, littleEndian bool) (string, int) {
	out := make([]byte, 0, (len(data)/2)*3)
	subs := 0

	// 奇数长度：最后一个字节不足一个码元，替换并计数
	oddTail := len(data)%2 == 1
	if oddTail {
		data = data[:len(data)-1]
	}

	for i := 0; i < len(data); i += 2 {
		var u1 uint16
		if littleEndian {
			u1 = uint16(data[i]) | uint16(data[i+1])<<8
		} else {
			u1 = uint16(data[i])<<8 | uint16(data[i+1])
		}

		if u1 >= 0xD800 && u1 <= 0xDBFF { // high surrogate
			if i+3 >= len(data) { // 不足以组成对
				out = utf8.AppendRune(out, utf8.RuneError)
				subs++
				continue
			}
			var u2 uint16
			if littleEndian {
				u2 = uint16(data[i+2]) | uint16(data[i+3])<<8
			} else {
				u2 = uint16(data[i+2])<<8 | uint16(data[i+3])
			}
			if u2 < 0xDC00 || u2 > 0xDFFF { // 非法低代理
				out = utf8.AppendRune(out, utf8.RuneError)
				subs++
				continue
			}
			cp := 0x10000 + ((uint32(u1) - 0xD800) << 10) + (uint32(u2) - 0xDC00)
			out = utf8.AppendRune(out, rune(cp))
			i += 2
			continue
		}
		if u1 >= 0xDC00 && u1 <= 0xDFFF { // 孤立低代理
			out = utf8.AppendRune(out, utf8.RuneError)
			subs++
			continue
		}
		out = utf8.AppendRune(out, rune(u1))
	}
	if oddTail {
		out = utf8.AppendRune(out, utf8.RuneError)
		subs++
	}
	return string(out), subs
}

// decodeDoubleByte 解码 GBK 族双字节编码。单字节 < 0x80 直接映射为 ASCII；
// 首字节落在编码的 lead 范围时连同一个尾字节送入查表转换器。
// 未定义的 (lead, trail) 对替换为 U+FFFD 且两个字节都被消费，
// 不做中途重新同步。
func decodeDoubleByte(data []byte, c *codec) (string, int) {
	dec := c.newDecoder()
	out := make([]byte, 0, len(data)+len(data)/2)
	subs := 0
	var dst [utf8.UTFMax]byte

	i := 0
	for i < len(data) {
		b := data[i]
		if b < 0x80 {
			out = append(out, b)
			i++
			continue
		}
		if b < c.leadLo || b > c.leadHi || i+1 >= len(data) || !c.trailValid(data[i+1]) {
			out = utf8.AppendRune(out, utf8.RuneError)
			subs++
			if i+1 < len(data) {
				i += 2
			} else {
				i++
			}
			continue
		}
		dec.Reset()
		nDst, _, err := dec.Transform(dst[:], data[i:i+2], true)
		if r, _ := utf8.DecodeRune(dst[:nDst]); err != nil || nDst == 0 || r == utf8.RuneError {
			// 结构合法但映射表中不存在的码位
			out = utf8.AppendRune(out, utf8.RuneError)
			subs++
		} else {
			out = append(out, dst[:nDst]...)
		}
		i += 2
	}
	return string(out), subs
}
