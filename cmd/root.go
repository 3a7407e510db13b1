/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"uniconv/internal/transcode"
	"uniconv/internal/version"
	"uniconv/pkg/charset"
	"uniconv/pkg/environ"
	"uniconv/pkg/logger"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "uniconv [input-paths...]",
	Short:   "文本文件编码检测与转换工具",
	Long:    "UniConv 检测文本文件的编码（UTF-8/UTF-16LE/BE/GBK/GB2312/本地编码）并转换为指定的目标编码。直接传入文件或目录即以默认配置（目标 UTF-8）快速转换；细粒度控制见 convert 子命令。",
	Args:    cobra.MinimumNArgs(1),
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
		initLocalEncoding()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Log().Info("正在以默认配置快速转换...")
		// 扫描并显示文件摘要
		logger.Log().Info("输入扫描完成", "总计", len(args))
		for i, path := range args {
			info, err := os.Stat(path)
			var pathType string
			if err != nil {
				pathType = " (无法访问)"
			} else if info.IsDir() {
				pathType = " (文件夹)"
			} else if strings.HasSuffix(strings.ToLower(path), ".txt") {
				pathType = " (TXT 文件)"
			} else {
				pathType = " (其他文件)"
			}
			logger.Log().Info(fmt.Sprintf("  %d. %s%s", i+1, path, pathType))
		}

		transcoder, err := transcode.NewTranscoder(transcode.TranscodeConfig{
			InputPaths: args,
			Depth:      0,
			Target:     string(charset.UTF8),
			OutputDir:  "output",
		})
		if err != nil {
			return fmt.Errorf("创建转换器失败: %w", err)
		}

		logger.Log().Debug("开始执行转换器")
		if execErr := transcoder.Execute(); execErr != nil {
			logger.Log().Error("转换失败", "error", execErr)
			return execErr
		}
		logger.Log().Info("转换成功完成！")
		return nil
	},
}

// initLocalEncoding 在启动时解析宿主环境的本地编码并注入引擎，
// 此后 local 目标/源编码均使用该值，运行中不再查询环境。
func initLocalEncoding() {
	native, err := environ.Native()
	if err != nil {
		if errors.Is(err, environ.ErrNativeUnknown) {
			logger.Log().Debug("本地编码未知，回退 UTF-8", "error", err)
		}
	}
	if serr := charset.SetLocal(native); serr != nil {
		logger.Log().Warn("注入本地编码失败", "encoding", native, "error", serr)
	} else {
		logger.Log().Debug("本地编码已解析", "encoding", native)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.MousetrapHelpText = ""
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log levels (debug, info, warn, error)")
}
