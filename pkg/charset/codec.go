/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// codec 描述一种编码的静态特征：BOM 约定、双字节首/尾字节范围，
// 以及（对 GBK 族）基于 x/text 的查表转换器构造函数。
// UTF 族的解码/编码由 decode.go / encode.go 直接实现，不走转换器。
type codec struct {
	bom             []byte // 该编码定义的 BOM 字节序列；nil 表示无 BOM 定义
	bomConventional bool   // 惯例上是否应写入 BOM（BOMConventional 策略据此判断）

	// GBK 族双字节范围；leadLo == 0 表示非双字节编码。
	leadLo, leadHi byte
	trailValid     func(byte) bool

	newDecoder func() *encoding.Decoder
	newEncoder func() *encoding.Encoder
}

// GB2312 是 GBK 的子集，没有独立的 x/text 转换器；两者共用 GBK 查表，
// 但各自按自己的首/尾字节范围做结构校验（fb2c 等工具也采用该别名策略）。
var codecs = map[Encoding]*codec{
	UTF8: {
		bom:             []byte{0xEF, 0xBB, 0xBF},
		bomConventional: false, // UTF-8 BOM 在多数工具链中不是惯例，仅显式要求时写入
	},
	UTF16LE: {
		bom:             []byte{0xFF, 0xFE},
		bomConventional: true,
	},
	UTF16BE: {
		bom:             []byte{0xFE, 0xFF},
		bomConventional: true,
	},
	GBK: {
		leadLo: 0x81, leadHi: 0xFE,
		trailValid: func(b byte) bool { return b >= 0x40 && b <= 0xFE && b != 0x7F },
		newDecoder: simplifiedchinese.GBK.NewDecoder,
		newEncoder: simplifiedchinese.GBK.NewEncoder,
	},
	GB2312: {
		leadLo: 0xA1, leadHi: 0xF7,
		trailValid: func(b byte) bool { return b >= 0xA1 && b <= 0xFE },
		newDecoder: simplifiedchinese.GBK.NewDecoder,
		newEncoder: simplifiedchinese.GBK.NewEncoder,
	},
}

// isDoubleByte 报告 enc 是否为 GBK 族双字节编码。
func (c *codec) isDoubleByte() bool { return c.leadLo != 0 }
