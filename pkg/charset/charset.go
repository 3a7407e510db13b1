/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import (
	"errors"
	"fmt"
	"strings"
)

// 本包实现 UniConv 的编码引擎：对字节缓冲做 BOM 嗅探与启发式编码检测，
// 解码为规范文本（合法 UTF-8 标量值序列），再按目标编码与 BOM 策略重新编码。
// 设计目标：
//   * 纯函数式：输入缓冲不被修改，任何转换都产生新切片，可被并发调用方安全使用；
//   * 失败不中断：非法字节序列与不可表示字符以替换计数返回，绝不中途放弃；
//   * 检测结果携带置信度，低置信度由调用方决定是否告警或拒绝；
//   * 引擎自身不做任何 I/O，也不输出日志。
//
// 支持的编码族：UTF-8（可带 BOM）、UTF-16LE/BE（可带 BOM）、GBK/GB2312，
// 以及一个由宿主环境在启动时一次性解析的 local 编码。UTF-32 不在支持范围内。

// Encoding 标识一种支持的文本编码。
type Encoding string

// Supported encodings 标识字符串常量。
const (
	UTF8    Encoding = "utf-8"
	UTF16LE Encoding = "utf-16-le"
	UTF16BE Encoding = "utf-16-be"
	GBK     Encoding = "gbk"
	GB2312  Encoding = "gb2312"
	// Local 表示进程的本地编码，启动时通过 SetLocal 解析为上述之一。
	Local Encoding = "local"
)

// Confidence 表示启发式检测的自评置信度。
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceHigh
)

func (c Confidence) String() string {
	if c == ConfidenceHigh {
		return "high"
	}
	return "low"
}

// BOMPolicy 控制编码输出时的 BOM 写入行为。
type BOMPolicy int

const (
	// BOMOmit 从不写入 BOM。
	BOMOmit BOMPolicy = iota
	// BOMConventional 仅当目标编码的惯例要求 BOM 时写入（UTF-16LE/BE 写入，
	// UTF-8 与 GBK 族不写入）。
	BOMConventional
	// BOMAlways 只要目标编码定义了 BOM 就写入（UTF-8 也会带 BOM）。
	BOMAlways
)

// 哨兵错误（Sentinel Errors），调用方可使用 errors.Is 进行判定：
var (
	// ErrEmptyInput 表示输入缓冲为空，转换无法进行。
	ErrEmptyInput = errors.New("输入为空")
	// ErrUnsupportedEncoding 表示请求的源/目标编码不在支持族内。
	ErrUnsupportedEncoding = errors.New("不支持的编码")
	// ErrAmbiguousDetection 表示启发式检测置信度低且调用方要求严格模式。
	// 调用方可显式指定源编码后重试。
	ErrAmbiguousDetection = errors.New("编码检测结果不确定")
)

// localEncoding 是 Local 的解析结果。进程启动时由 SetLocal 注入一次，
// 之后只读；转换过程中不再查询宿主环境。
var localEncoding = UTF8

// SetLocal 注入 Local 编码的解析结果，应在进程启动时调用一次。
// enc 自身为 Local 或不受支持时返回 ErrUnsupportedEncoding。
func SetLocal(enc Encoding) error {
	if enc == Local {
		return fmt.Errorf("%w: local 不能解析为自身", ErrUnsupportedEncoding)
	}
	if _, ok := codecs[enc]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedEncoding, enc)
	}
	localEncoding = enc
	return nil
}

// LocalEncoding 返回当前 Local 的解析结果。
func LocalEncoding() Encoding { return localEncoding }

// Parse 将外部输入的编码名称规范化为 Encoding。
// 兼容常见别名（utf8、utf-16le、unicode 等），无法识别时返回 ErrUnsupportedEncoding。
func Parse(name string) (Encoding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	switch n {
	case "utf-8", "utf8", "ascii":
		return UTF8, nil
	case "utf-8-sig", "utf-8-bom", "utf8-bom":
		return UTF8, nil
	case "utf-16-le", "utf-16le", "utf16le", "utf16-le", "unicode":
		return UTF16LE, nil
	case "utf-16-be", "utf-16be", "utf16be", "utf16-be":
		return UTF16BE, nil
	case "gbk", "cp936", "936":
		return GBK, nil
	case "gb2312", "gb-2312", "euc-cn":
		return GB2312, nil
	case "local", "native", "ansi":
		return Local, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
}

// resolve 将 enc 解析为具体编码（Local 展开为注入值）并校验其受支持。
func resolve(enc Encoding) (Encoding, error) {
	if enc == Local {
		enc = localEncoding
	}
	if _, ok := codecs[enc]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedEncoding, enc)
	}
	return enc, nil
}
