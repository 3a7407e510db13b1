/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package transcode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"uniconv/internal/process"
	"uniconv/pkg/charset"
	"uniconv/pkg/logger"
	"uniconv/pkg/pathx"
)

var filterExtensions = []string{".txt"}

// ErrNoInputFiles 表示未找到任何可用于转换的输入文件。
var ErrNoInputFiles = errors.New("未找到可转换的输入文件")

// fileCache 缓存单个输入文件的内容与内容哈希。
type fileCache struct {
	Path    string
	Content []byte
	Hash    string
}

// Transcoder 是负责执行整个批量转换流程的协调器。
type Transcoder struct {
	Config    TranscodeConfig
	History   *process.History
	usedNames map[string]struct{}
}

// NewTranscoder 创建一个新的转换器实例。
func NewTranscoder(config TranscodeConfig) (*Transcoder, error) {
	if err := config.Verify(); err != nil {
		return nil, fmt.Errorf("参数验证失败: %w", err)
	}
	if err := config.Prepare(); err != nil {
		return nil, fmt.Errorf("环境配置失败: %w", err)
	}

	recordFile := ""
	if !config.DryRun {
		recordFile = config.RecordFilePath()
	}
	history, err := process.NewHistory(recordFile)
	if err != nil {
		return nil, fmt.Errorf("无法初始化转换历史: %w", err)
	}
	return &Transcoder{
		Config:    config,
		History:   history,
		usedNames: make(map[string]struct{}),
	}, nil
}

// Execute 执行批量转换：收集 → 读取去重 → 逐个转换写出。
func (t *Transcoder) Execute() error {
	cfg := t.Config
	logger.Log().Info("开始转换任务",
		"target", cfg.TargetEncoding, "strict", cfg.Strict, "preview", cfg.DryRun)

	// 1. 收集所有源文件
	sourceFiles, err := pathx.CollectFiles(cfg.InputPaths, cfg.Depth, filterExtensions, true)
	if err != nil {
		return fmt.Errorf("收集文件失败: %w", err)
	}
	if len(sourceFiles) == 0 {
		return ErrNoInputFiles
	}

	// 2. 读取文件，计算哈希，历史与会话内去重（ForceRefresh 可强制重新处理）
	caches, skipped, err := t.collect(sourceFiles)
	if err != nil {
		return err
	}
	logger.Log().Info("文件收集完成",
		"total", len(sourceFiles), "pending", len(caches), "skipped", skipped)
	if len(caches) == 0 {
		return ErrNoInputFiles
	}

	// 3. 逐个转换
	var converted, failed int
	for i, fc := range caches {
		outPath, err := t.convertOne(fc, i, len(caches))
		if err != nil {
			logger.Log().Error("文件转换失败", "path", fc.Path, "error", err)
			failed++
			continue
		}
		if outPath != "" {
			converted++
		}
	}

	logger.Log().Info("转换任务完成", "success", converted, "failed", failed, "skipped", skipped)
	if converted == 0 && failed > 0 {
		return fmt.Errorf("全部 %d 个文件转换失败", failed)
	}
	return nil
}

// collect 读取源文件并按历史记录与会话内哈希去重。
func (t *Transcoder) collect(sourceFiles []string) ([]fileCache, int, error) {
	cfg := t.Config
	caches := make([]fileCache, 0, len(sourceFiles))
	seen := make(map[string]struct{}, len(sourceFiles))
	skipped := 0

	for _, file := range sourceFiles {
		content, hash, err := pathx.ReadFile(file)
		if err != nil {
			return nil, 0, fmt.Errorf("读取文件 %s 失败: %w", file, err)
		}
		if !cfg.DryRun {
			isNew, herr := t.History.CheckAndRecord(hash)
			if herr != nil {
				return nil, 0, fmt.Errorf("检查文件 %s 的历史记录失败: %w", file, herr)
			}
			if !isNew && !cfg.ForceRefresh {
				logger.Log().Warn("跳过已转换文件", "path", file)
				skipped++
				continue
			}
		}
		if _, exists := seen[hash]; exists {
			logger.Log().Warn("跳过重复文件", "path", file)
			skipped++
			continue
		}
		seen[hash] = struct{}{}
		caches = append(caches, fileCache{Path: file, Content: content, Hash: hash})
	}
	return caches, skipped, nil
}

// convertOne 转换单个文件并写出。返回写出的路径；DryRun 模式返回空串。
func (t *Transcoder) convertOne(fc fileCache, index, count int) (string, error) {
	cfg := t.Config
	logger.Log().Debug("正在转换文件", "path", fc.Path, "size", len(fc.Content))

	res, err := charset.Convert(charset.ConversionRequest{
		Source: fc.Content,
		From:   cfg.SourceEncoding,
		To:     cfg.TargetEncoding,
		BOM:    cfg.BOMPolicy,
		Strict: cfg.Strict,
	})
	if err != nil {
		return "", fmt.Errorf("编码转换失败: %w", err)
	}

	if res.Confidence == charset.ConfidenceLow {
		logger.Log().Warn("源编码检测置信度低，结果可能不准确",
			"path", fc.Path, "guessed", res.From)
	}
	if res.Substitutions > 0 {
		logger.Log().Warn("输入含非法字节序列，已替换",
			"path", fc.Path, "count", res.Substitutions)
	}
	if res.Unrepresentable > 0 {
		logger.Log().Warn("部分字符在目标编码中不可表示，已写入占位符",
			"path", fc.Path, "count", res.Unrepresentable, "target", cfg.TargetEncoding)
	}

	outPath := t.outputPath(fc.Path, index, count)
	if cfg.DryRun {
		logger.Log().Info("预览",
			"source", fc.Path, "from", res.From, "to", cfg.TargetEncoding, "output", outPath)
		return "", nil
	}

	if !cfg.Overwrite {
		if exists, _ := pathx.Exists(outPath); exists {
			return "", fmt.Errorf("目标文件已存在（使用 --overwrite 覆盖）: %s", outPath)
		}
	}
	if err := os.WriteFile(outPath, res.Output, 0o644); err != nil {
		return "", fmt.Errorf("写出文件失败: %w", err)
	}
	logger.Log().Info("转换完成",
		"source", fc.Path, "from", res.From, "output", outPath, "bytes", len(res.Output))
	return outPath, nil
}

// outputPath 渲染输出文件名并保证会话内唯一。
func (t *Transcoder) outputPath(sourcePath string, index, count int) string {
	stem, err := pathx.Stem(sourcePath)
	if err != nil {
		stem = "unnamed"
	}
	name := renderNameTemplate(t.Config.NameTemplate, stem, string(t.Config.TargetEncoding), index+1, count)
	if name == "" {
		name = stem
	}

	unique := name
	for i := 1; ; i++ {
		if _, taken := t.usedNames[unique]; !taken {
			break
		}
		unique = fmt.Sprintf("%s_%d", name, i)
	}
	t.usedNames[unique] = struct{}{}
	return filepath.Join(t.Config.OutputDir, unique+".txt")
}
