/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"uniconv/internal/transcode"
	"uniconv/pkg/logger"
)

// 命令行参数变量
var (
	convertInputPaths   []string
	convertDepth        int
	convertSource       string
	convertTarget       string
	convertBOMMode      string
	convertOutputDir    string
	convertNameTemplate string
	convertStrict       bool
	convertDryRun       bool
	convertOverwrite    bool
	convertForceRefresh bool
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert text files to a target encoding",
	Long: `检测输入文件的编码并转换为目标编码，支持目录递归、输出名称模板与 BOM 策略控制。

支持的编码: utf-8 | utf-16-le | utf-16-be | gbk | gb2312 | local
  local 在启动时解析为宿主环境的本地编码（Windows 为活动代码页，其余平台读取 LANG 等变量）。

BOM 策略 (--bom):
  * auto:   按目标编码的惯例（UTF-16 写入 BOM，UTF-8/GBK 不写入）。
  * omit:   从不写入 BOM。
  * always: 目标编码定义了 BOM 就写入（UTF-8 也会带 BOM）。

名称模板占位符:
  * {name}: 源文件基础名称。
  * {encoding}: 目标编码标识。
  * {index[:offset]}: 当前处理文件的序号，offset 的位数决定补零宽度 (如 {index:001})。
  * {count}: 本次任务处理的总文件数。
  * {date[:layout]}: 当前日期，支持用 :layout 指定 Go 时间格式 (默认 20060102)。

所有占位符都支持 :lower / :upper 修饰符。

示例:
  # 把 data 目录下的 TXT 递归转换为 UTF-8
  uniconv convert -i data -o out -t utf-8

  # GBK 输出且显式声明源编码，跳过自动检测
  uniconv convert -i a.txt --from utf-16-le -t gbk -o out

  # 严格模式：检测置信度低即失败，而不是带着猜测继续
  uniconv convert -i legacy -t utf-8 --strict --dry-run
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transcoder, err := transcode.NewTranscoder(transcode.TranscodeConfig{
			InputPaths:   convertInputPaths,
			Depth:        convertDepth,
			Source:       convertSource,
			Target:       convertTarget,
			BOMMode:      convertBOMMode,
			OutputDir:    convertOutputDir,
			NameTemplate: convertNameTemplate,
			Strict:       convertStrict,
			DryRun:       convertDryRun,
			Overwrite:    convertOverwrite,
			ForceRefresh: convertForceRefresh,
		})
		if err != nil {
			logger.Log().Error("创建转换器失败", "error", err)
			return fmt.Errorf("创建转换器失败: %w", err)
		}
		logger.Log().Debug("开始执行转换器")
		return transcoder.Execute()
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringArrayVarP(&convertInputPaths, "input", "i", nil, "输入文件或目录，可重复指定")
	convertCmd.Flags().IntVar(&convertDepth, "depth", -1, "递归深度：0=仅当前目录，正数=最大层级，-1=无限")
	convertCmd.Flags().StringVar(&convertSource, "from", "", "显式声明源编码，跳过自动检测")
	convertCmd.Flags().StringVarP(&convertTarget, "to", "t", "utf-8", "目标编码")
	convertCmd.Flags().StringVar(&convertBOMMode, "bom", "auto", "BOM 策略：auto|omit|always")
	convertCmd.Flags().StringVarP(&convertOutputDir, "output", "o", "", "输出目录")
	convertCmd.Flags().StringVar(&convertNameTemplate, "name", "", "输出名模板，支持占位符 {name}{encoding}{index}{count}{date}")
	convertCmd.Flags().BoolVar(&convertStrict, "strict", false, "检测置信度低时报错而不是继续")
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "仅预览转换计划，不执行写入")
	convertCmd.Flags().BoolVar(&convertOverwrite, "overwrite", false, "允许覆盖已存在的目标文件")
	convertCmd.Flags().BoolVar(&convertForceRefresh, "force-refresh", false, "强制重新转换，忽视历史记录中已存在的条目")

	_ = convertCmd.MarkFlagRequired("input")
}
