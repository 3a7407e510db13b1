/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package transcode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = "测试文本Hello World 123"

// sampleGBK 是 sampleText 的 GBK 编码。
var sampleGBK = append(
	[]byte{0xB2, 0xE2, 0xCA, 0xD4, 0xCE, 0xC4, 0xB1, 0xBE},
	[]byte("Hello World 123")...,
)

func writeInput(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestConfigVerify(t *testing.T) {
	t.Run("缺少输入", func(t *testing.T) {
		cfg := TranscodeConfig{}
		require.Error(t, cfg.Verify())
	})

	t.Run("非法深度", func(t *testing.T) {
		cfg := TranscodeConfig{InputPaths: []string{"a"}, Depth: -2}
		require.Error(t, cfg.Verify())
	})

	t.Run("非法目标编码", func(t *testing.T) {
		cfg := TranscodeConfig{InputPaths: []string{"a"}, Target: "latin-1"}
		require.Error(t, cfg.Verify())
	})

	t.Run("非法 BOM 模式", func(t *testing.T) {
		cfg := TranscodeConfig{InputPaths: []string{"a"}, BOMMode: "maybe"}
		require.Error(t, cfg.Verify())
	})

	t.Run("默认值补全", func(t *testing.T) {
		cfg := TranscodeConfig{InputPaths: []string{" a "}, DryRun: true}
		require.NoError(t, cfg.Verify())
		assert.Equal(t, "a", cfg.InputPaths[0])
		assert.Equal(t, "utf-8", string(cfg.TargetEncoding))
		assert.Equal(t, DefaultNameTemplate, cfg.NameTemplate)
		assert.NotEmpty(t, cfg.OutputDir)
	})
}

func TestTranscoderExecute(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeInput(t, inDir, "input_gbk.txt", sampleGBK)

	tr, err := NewTranscoder(TranscodeConfig{
		InputPaths: []string{inDir},
		Depth:      -1,
		Target:     "utf-8",
		OutputDir:  outDir,
	})
	require.NoError(t, err)
	require.NoError(t, tr.Execute())

	out, err := os.ReadFile(filepath.Join(outDir, "input_gbk_utf-8.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte(sampleText), out)

	// 第二次运行：同一内容被历史记录跳过
	tr2, err := NewTranscoder(TranscodeConfig{
		InputPaths: []string{inDir},
		Depth:      -1,
		Target:     "utf-8",
		OutputDir:  outDir,
	})
	require.NoError(t, err)
	require.ErrorIs(t, tr2.Execute(), ErrNoInputFiles)
}

func TestTranscoderBOMAlways(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeInput(t, inDir, "a.txt", []byte("Hello"))

	tr, err := NewTranscoder(TranscodeConfig{
		InputPaths: []string{inDir},
		Depth:      -1,
		Target:     "utf-8",
		BOMMode:    "always",
		OutputDir:  outDir,
	})
	require.NoError(t, err)
	require.NoError(t, tr.Execute())

	out, err := os.ReadFile(filepath.Join(outDir, "a_utf-8.txt"))
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0xEF, 0xBB, 0xBF}, []byte("Hello")...), out)
}

func TestTranscoderDryRun(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeInput(t, inDir, "a.txt", sampleGBK)

	tr, err := NewTranscoder(TranscodeConfig{
		InputPaths: []string{inDir},
		Depth:      -1,
		OutputDir:  outDir,
		DryRun:     true,
	})
	require.NoError(t, err)
	require.NoError(t, tr.Execute())

	// 预览模式不创建输出目录，也不记录历史
	_, err = os.Stat(outDir)
	assert.True(t, os.IsNotExist(err))
}

func TestTranscoderOverwrite(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeInput(t, inDir, "a.txt", []byte("one"))
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	existing := filepath.Join(outDir, "a_utf-8.txt")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

	t.Run("默认拒绝覆盖", func(t *testing.T) {
		tr, err := NewTranscoder(TranscodeConfig{
			InputPaths: []string{inDir},
			Depth:      -1,
			OutputDir:  outDir,
		})
		require.NoError(t, err)
		require.Error(t, tr.Execute())
		out, _ := os.ReadFile(existing)
		assert.Equal(t, []byte("old"), out)
	})

	t.Run("显式允许覆盖", func(t *testing.T) {
		tr, err := NewTranscoder(TranscodeConfig{
			InputPaths:   []string{inDir},
			Depth:        -1,
			OutputDir:    outDir,
			Overwrite:    true,
			ForceRefresh: true,
		})
		require.NoError(t, err)
		require.NoError(t, tr.Execute())
		out, _ := os.ReadFile(existing)
		assert.Equal(t, []byte("one"), out)
	})
}

func TestTranscoderDeduplicatesContent(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeInput(t, inDir, "a.txt", sampleGBK)
	writeInput(t, inDir, "b.txt", sampleGBK) // 内容相同

	tr, err := NewTranscoder(TranscodeConfig{
		InputPaths: []string{inDir},
		Depth:      -1,
		OutputDir:  outDir,
	})
	require.NoError(t, err)
	require.NoError(t, tr.Execute())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	var written int
	for _, e := range entries {
		if e.Name() != RecordFileName {
			written++
		}
	}
	assert.Equal(t, 1, written)
}
