/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import "fmt"

// ConversionRequest 描述一次完整的编码转换。由调用方构造、一次性消费，
// 引擎不持有其引用。
type ConversionRequest struct {
	// Source 是待转换的原始字节，不会被修改。
	Source []byte
	// From 为空时自动检测源编码。
	From Encoding
	// To 是目标编码，可为 Local。
	To Encoding
	// BOM 控制输出端的 BOM 写入策略。
	BOM BOMPolicy
	// Strict 为 true 时，低置信度的自动检测结果会以
	// ErrAmbiguousDetection 拒绝，而不是继续转换。
	Strict bool
	// Replacement 覆盖有损目标的占位字节序列，空值表示默认 '?'。
	Replacement []byte
}

// ConversionResult 是一次转换的产物，所有权移交调用方。
type ConversionResult struct {
	// Output 是目标编码下的输出字节。
	Output []byte
	// From 是实际使用的源编码（声明值或检测值，Local 已展开）。
	From Encoding
	// Confidence 是源编码的判定置信度；显式声明视为高。
	Confidence Confidence
	// Substitutions 是解码阶段替换的非法序列个数。
	Substitutions int
	// Unrepresentable 是编码阶段无法表示、写入占位序列的字符个数。
	Unrepresentable int
}

// Convert 执行完整转换管线：嗅探 →（必要时）检测 → 解码 → 编码。
// 硬性失败只有三种：空输入、不支持的编码、严格模式下的低置信度检测；
// 其余异常（非法序列、不可表示字符）均以计数形式出现在结果中。
func Convert(req ConversionRequest) (*ConversionResult, error) {
	if len(req.Source) == 0 {
		return nil, ErrEmptyInput
	}
	to, err := resolve(req.To)
	if err != nil {
		return nil, fmt.Errorf("目标编码无效: %w", err)
	}

	data := req.Source
	var from Encoding
	confidence := ConfidenceHigh

	if req.From != "" {
		// 调用方已声明源编码：只剥离该编码自身约定的 BOM
		from, err = resolve(req.From)
		if err != nil {
			return nil, fmt.Errorf("源编码无效: %w", err)
		}
		data = stripBOM(data, from)
	} else {
		det := Detect(data)
		if det.Confidence == ConfidenceLow && req.Strict {
			return nil, fmt.Errorf("%w: 猜测为 %s，请显式指定源编码", ErrAmbiguousDetection, det.Encoding)
		}
		from, confidence = det.Encoding, det.Confidence
		data = data[det.BOMLen:]
	}

	decoded, err := Decode(data, from)
	if err != nil {
		return nil, err
	}
	encoded, err := EncodeWith(decoded.Text, to, req.BOM, EncodeOptions{Replacement: req.Replacement})
	if err != nil {
		return nil, err
	}

	return &ConversionResult{
		Output:          encoded.Bytes,
		From:            from,
		Confidence:      confidence,
		Substitutions:   decoded.Substitutions,
		Unrepresentable: encoded.Unrepresentable,
	}, nil
}
