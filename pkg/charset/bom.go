/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import "bytes"

// BOMMatch 描述一次成功的 BOM 嗅探：命中的编码与 BOM 字节长度，
// 解码方据此跳过前缀。
type BOMMatch struct {
	Encoding Encoding
	Len      int
}

// bomMarks 按前缀长度降序排列，保证最长匹配优先
// （EF BB BF 必须先于 FE FF / FF FE 检查）。
var bomMarks = []struct {
	bom []byte
	enc Encoding
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

// SniffBOM 检查缓冲前缀是否为已知 BOM，返回最长匹配。
// 纯函数，最多检查前 4 个字节，不修改输入。
//
// 已知局限：UTF-32LE 的 BOM（FF FE 00 00）会被识别为 UTF-16LE 的 BOM，
// 因为 UTF-32 不在支持族内，这里不对第 3/4 字节做区分。
func SniffBOM(data []byte) (BOMMatch, bool) {
	for _, m := range bomMarks {
		if bytes.HasPrefix(data, m.bom) {
			return BOMMatch{Encoding: m.enc, Len: len(m.bom)}, true
		}
	}
	return BOMMatch{}, false
}

// stripBOM 去掉 data 前缀中属于 enc 自身约定的 BOM（若存在），返回剩余部分。
// 返回的切片与 data 共享底层存储，调用方不得修改。
func stripBOM(data []byte, enc Encoding) []byte {
	c, ok := codecs[enc]
	if !ok || c.bom == nil {
		return data
	}
	if bytes.HasPrefix(data, c.bom) {
		return data[len(c.bom):]
	}
	return data
}
