/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"uniconv/pkg/charset"
	"uniconv/pkg/logger"
	"uniconv/pkg/pathx"
)

var (
	detectDepth  int
	detectAllExt bool
)

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect [input-paths...]",
	Short: "Detect text file encodings",
	Long: `检测输入文件的编码并逐行打印结果，不做任何转换。

输出列: 编码 置信度 BOM 路径。低置信度表示启发式无法可靠区分，
转换前建议用 convert --from 显式声明源编码。`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exts := []string{".txt"}
		if detectAllExt {
			exts = nil
		}
		files, err := pathx.CollectFiles(args, detectDepth, exts, true)
		if err != nil {
			return fmt.Errorf("收集文件失败: %w", err)
		}
		if len(files) == 0 {
			logger.Log().Warn("未找到可检测的文件")
			return nil
		}

		for _, file := range files {
			content, _, err := pathx.ReadFile(file)
			if err != nil {
				logger.Log().Error("读取文件失败", "path", file, "error", err)
				continue
			}
			det := charset.Detect(content)
			bom := "-"
			if det.BOMLen > 0 {
				bom = fmt.Sprintf("bom(%d)", det.BOMLen)
			}
			// 检测结果走 stdout，便于脚本消费；日志只走 stderr
			fmt.Printf("%-10s %-5s %-7s %s\n", det.Encoding, det.Confidence, bom, file)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().IntVar(&detectDepth, "depth", -1, "递归深度：0=仅当前目录，正数=最大层级，-1=无限")
	detectCmd.Flags().BoolVar(&detectAllExt, "all", false, "不限扩展名，检测所有文件")
}
