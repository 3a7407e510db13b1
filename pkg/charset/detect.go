/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import "unicode/utf8"

// DefaultUTF16Threshold 是无 BOM UTF-16 判定的默认门槛：
// 常见文本范围内的码元占比不低于该值才接受该字节序解释。
const DefaultUTF16Threshold = 0.90

// DetectResult 是编码检测的输出。BOMLen > 0 表示由 BOM 直接判定，
// 解码前应跳过该长度的前缀。
type DetectResult struct {
	Encoding   Encoding
	Confidence Confidence
	BOMLen     int
}

// DetectOptions 调整启发式检测的参数。零值等价于默认值。
type DetectOptions struct {
	// UTF16Threshold 覆盖 DefaultUTF16Threshold，须位于 (0,1]。
	UTF16Threshold float64
}

// Detect 检测字节缓冲的编码：先做 BOM 嗅探，无 BOM 时进入启发式判定。
// 启发式顺序：严格 UTF-8 校验 → UTF-16LE/BE 码元合理性评分 → GBK 双字节
// 结构校验。全部失败时兜底返回 GBK 并标记低置信度——检测永远有结果，
// 低置信度由调用方决定如何处置（告警或在严格模式下拒绝）。
func Detect(data []byte) DetectResult {
	return DetectWith(data, DetectOptions{})
}

// DetectWith 同 Detect，但允许调整检测参数。
func DetectWith(data []byte, opt DetectOptions) DetectResult {
	if len(data) == 0 {
		// 空缓冲视作 UTF-8，但置信度为低；转换管线会在此之前拦截空输入。
		return DetectResult{Encoding: UTF8, Confidence: ConfidenceLow}
	}

	// 1. BOM 直接判定
	if m, ok := SniffBOM(data); ok {
		return DetectResult{Encoding: m.Encoding, Confidence: ConfidenceHigh, BOMLen: m.Len}
	}

	threshold := opt.UTF16Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultUTF16Threshold
	}

	// 2. 严格 UTF-8 校验（容忍末尾截断的多字节序列）
	if validUTF8OrTruncated(data) {
		return DetectResult{Encoding: UTF8, Confidence: ConfidenceHigh}
	}

	// 3. 无 BOM UTF-16：双向评分，取达标且更高的一侧
	leScore, leOK := evaluateUTF16(data, true, threshold)
	beScore, beOK := evaluateUTF16(data, false, threshold)
	switch {
	case leOK && beOK:
		// 两侧都达标说明文本对字节序不敏感（如大量 NUL 对称），择高但降级置信度。
		if leScore >= beScore {
			return DetectResult{Encoding: UTF16LE, Confidence: ConfidenceLow}
		}
		return DetectResult{Encoding: UTF16BE, Confidence: ConfidenceLow}
	case leOK:
		return DetectResult{Encoding: UTF16LE, Confidence: ConfidenceHigh}
	case beOK:
		return DetectResult{Encoding: UTF16BE, Confidence: ConfidenceHigh}
	}

	// 4. GBK 双字节结构校验；失败也兜底 GBK，只是置信度降为低
	if validGBKStructure(data) {
		return DetectResult{Encoding: GBK, Confidence: ConfidenceHigh}
	}
	return DetectResult{Encoding: GBK, Confidence: ConfidenceLow}
}

// validUTF8OrTruncated 校验字节序列是否为严格的 UTF-8，
// 但允许最后一个多字节序列被截断（常见于按块读取的文件尾部）。
func validUTF8OrTruncated(data []byte) bool {
	i := 0
	for i < len(data) {
		b := data[i]
		if b < 0x80 {
			i++
			continue
		}
		var need int
		switch {
		case b&0xE0 == 0xC0:
			need = 1
			if b < 0xC2 { // overlong
				return false
			}
		case b&0xF0 == 0xE0:
			need = 2
		case b&0xF8 == 0xF0:
			need = 3
			if b > 0xF4 {
				return false
			}
		default:
			return false
		}
		if i+need >= len(data) { // 末尾截断：接受
			return true
		}
		for j := 1; j <= need; j++ {
			if data[i+j]&0xC0 != 0x80 {
				return false
			}
		}
		// overlong / 代理区 / 超范围通过实际解码兜底检查
		r, size := utf8.DecodeRune(data[i : i+need+1])
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if r >= 0xD800 && r <= 0xDFFF {
			return false
		}
		i += need + 1
	}
	return true
}

// evaluateUTF16 以给定字节序把缓冲解释为 UTF-16 码元序列并评分。
// 评分口径：常见文本范围（Basic Latin 可打印与空白、CJK 基本区与扩展 A、
// 合法代理对）内的码元占比。孤立代理直接判不合格。
// 返回 (占比, 是否达标)；字节长度为奇数或过短时直接不达标。
func evaluateUTF16(data []byte, littleEndian bool, threshold float64) (float64, bool) {
	if len(data) < 4 || len(data)%2 != 0 {
		return 0, false
	}
	total := 0
	good := 0
	for i := 0; i+1 < len(data); i += 2 {
		var u uint16
		if littleEndian {
			u = uint16(data[i]) | uint16(data[i+1])<<8
		} else {
			u = uint16(data[i])<<8 | uint16(data[i+1])
		}
		total++
		switch {
		case u >= 0xD800 && u <= 0xDBFF: // high surrogate
			if i+3 >= len(data) {
				return 0, false
			}
			var u2 uint16
			if littleEndian {
				u2 = uint16(data[i+2]) | uint16(data[i+3])<<8
			} else {
				u2 = uint16(data[i+2])<<8 | uint16(data[i+3])
			}
			if u2 < 0xDC00 || u2 > 0xDFFF {
				return 0, false
			}
			good++ // 合法代理对整体记一个好码元
			i += 2
		case u >= 0xDC00 && u <= 0xDFFF: // 孤立低代理
			return 0, false
		case u == 0x0009 || u == 0x000A || u == 0x000D:
			good++
		case u >= 0x0020 && u <= 0x007E: // Basic Latin 可打印
			good++
		case (u >= 0x4E00 && u <= 0x9FFF) || (u >= 0x3400 && u <= 0x4DBF): // CJK
			good++
		case u >= 0x3000 && u <= 0x303F: // CJK 标点
			good++
		case u >= 0xFF00 && u <= 0xFFEF: // 全半角形式
			good++
		}
	}
	if total == 0 {
		return 0, false
	}
	ratio := float64(good) / float64(total)
	return ratio, ratio >= threshold
}

// validGBKStructure 校验每个 >= 0x80 的字节都与后继字节构成合法的
// GBK (lead, trail) 对。只做结构校验，不查映射表是否真有该码位。
func validGBKStructure(data []byte) bool {
	c := codecs[GBK]
	sawPair := false
	i := 0
	for i < len(data) {
		b := data[i]
		if b < 0x80 {
			i++
			continue
		}
		if b < c.leadLo || b > c.leadHi || i+1 >= len(data) || !c.trailValid(data[i+1]) {
			return false
		}
		sawPair = true
		i += 2
	}
	return sawPair
}
