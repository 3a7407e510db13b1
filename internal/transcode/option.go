/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package transcode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"uniconv/pkg/charset"
	"uniconv/pkg/logger"
	"uniconv/pkg/pathx"
)

// RecordFileName 是输出目录下记录已转换哈希的文件名。
const RecordFileName = ".converted"

// DefaultNameTemplate 是输出文件名的默认模板。
const DefaultNameTemplate = "{name}_{encoding}"

// TranscodeConfig 汇集了从命令行接收到的所有转换参数。
type TranscodeConfig struct {
	InputPaths   []string
	Depth        int
	Source       string // 显式声明的源编码；空值表示自动检测
	Target       string // 目标编码名
	BOMMode      string // auto | omit | always
	OutputDir    string
	NameTemplate string
	Strict       bool
	DryRun       bool
	Overwrite    bool
	ForceRefresh bool

	// 派生
	SourceEncoding charset.Encoding // "" = 自动检测
	TargetEncoding charset.Encoding
	BOMPolicy      charset.BOMPolicy
}

// Verify validates and normalizes the transcode configuration.
func (c *TranscodeConfig) Verify() error {
	// 1. 验证输入路径
	if len(c.InputPaths) == 0 {
		return errors.New("至少提供一个输入文件或目录")
	}
	for i, input := range c.InputPaths {
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			return fmt.Errorf("第 %d 个输入为空", i+1)
		}
		c.InputPaths[i] = trimmed
	}

	// 2. 验证递归深度
	if c.Depth < -1 {
		return errors.New("depth 不能小于 -1")
	}

	// 3. 解析源/目标编码
	if src := strings.TrimSpace(c.Source); src != "" {
		enc, err := charset.Parse(src)
		if err != nil {
			return fmt.Errorf("源编码无效: %w", err)
		}
		c.SourceEncoding = enc
	}
	target := strings.TrimSpace(c.Target)
	if target == "" {
		target = string(charset.UTF8)
	}
	enc, err := charset.Parse(target)
	if err != nil {
		return fmt.Errorf("目标编码无效: %w", err)
	}
	c.TargetEncoding = enc

	// 4. BOM 策略
	switch strings.ToLower(strings.TrimSpace(c.BOMMode)) {
	case "", "auto":
		c.BOMPolicy = charset.BOMConventional
	case "omit", "none":
		c.BOMPolicy = charset.BOMOmit
	case "always":
		c.BOMPolicy = charset.BOMAlways
	default:
		return fmt.Errorf("无效的 BOM 模式: %s（可选 auto|omit|always）", c.BOMMode)
	}

	// 5. 验证并规范化输出目录
	outputDir := strings.TrimSpace(c.OutputDir)
	if outputDir == "" {
		outputDir = "output"
		logger.Log().Debug("未指定输出目录，使用默认值", "dir", outputDir)
	}
	resolved, err := pathx.Resolve(outputDir)
	if err != nil {
		return fmt.Errorf("无法解析输出目录 '%s': %w", outputDir, err)
	}
	c.OutputDir = resolved

	// 6. 验证名称模板
	tmpl := strings.TrimSpace(c.NameTemplate)
	if tmpl == "" {
		tmpl = DefaultNameTemplate
	} else if stem, err := pathx.Stem(tmpl); err == nil {
		// 模板里混入扩展名时剥掉，扩展统一由写出端追加
		tmpl = stem
	}
	c.NameTemplate = tmpl
	return nil
}

// Prepare 创建输出目录与历史记录所需的环境。DryRun 模式不做任何写入。
func (c *TranscodeConfig) Prepare() error {
	if c.DryRun {
		logger.Log().Debug("已启用 --dry-run 模式, 将不会写入文件")
		return nil
	}
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	return nil
}

// RecordFilePath 返回已转换哈希记录文件的完整路径。
func (c *TranscodeConfig) RecordFilePath() string {
	return filepath.Join(c.OutputDir, RecordFileName)
}
