/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package transcode

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// renderNameTemplate 负责将名称模板中的占位符替换为实际值。
// 支持占位符:
//
//	{name}              源文件的基础名称（不含扩展）
//	{encoding}          目标编码标识（如 utf-8）
//	{index[:offset]}    当前序号，offset 的位数决定补零宽度（如 {index:001}）
//	{count}             本次任务处理的总文件数
//	{date[:layout]}     日期 (默认 20060102, 可指定 Go time layout)
//
// :lower|upper 可用于所有占位符，表示转换结果的大小写。
func renderNameTemplate(tmpl, baseName, encoding string, index, count int) string {
	var out strings.Builder
	for len(tmpl) > 0 {
		start := strings.IndexByte(tmpl, '{')
		if start == -1 {
			out.WriteString(tmpl)
			break
		}
		out.WriteString(tmpl[:start])
		tmpl = tmpl[start+1:]
		end := strings.IndexByte(tmpl, '}')
		if end == -1 { // 无闭合，原样输出剩余
			out.WriteString("{" + tmpl)
			break
		}
		token := tmpl[:end]
		tmpl = tmpl[end+1:]
		out.WriteString(resolveToken(token, baseName, encoding, index, count))
	}
	return out.String()
}

func resolveToken(token, baseName, encoding string, index, count int) string {
	parts := strings.Split(token, ":")
	name := strings.ToLower(parts[0])
	if name == "" {
		return "{" + token + "}"
	}

	rawArgs := parts[1:]
	caseTransform := ""
	filtered := rawArgs[:0]
	for _, a := range rawArgs {
		la := strings.ToLower(a)
		if la == "lower" || la == "upper" {
			caseTransform = la
			continue
		}
		filtered = append(filtered, a)
	}
	firstArg := ""
	if len(filtered) > 0 {
		firstArg = filtered[0]
	}

	var result string
	switch name {
	case "name":
		result = baseName
	case "encoding":
		result = encoding
	case "index":
		width := len(firstArg)
		offset := 0
		if firstArg != "" {
			if v, err := strconv.Atoi(firstArg); err == nil {
				offset = v
			}
		}
		result = fmt.Sprintf("%0*d", width, index+offset)
	case "count":
		result = strconv.Itoa(count)
	case "date":
		layout := "20060102"
		if firstArg != "" {
			layout = firstArg
		}
		result = time.Now().Format(layout)
	default:
		// 未知 token 原样返回
		return "{" + token + "}"
	}

	switch caseTransform {
	case "lower":
		result = strings.ToLower(result)
	case "upper":
		result = strings.ToUpper(result)
	}
	return result
}
