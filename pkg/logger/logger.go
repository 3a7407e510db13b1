/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

var (
	log  *slog.Logger
	once sync.Once
)

const timeFormat = "2006-01-02 15:04:05.000"

// Init 根据级别初始化全局日志，输出到 stderr（stdout 留给检测结果等程序输出）。
// level: debug|info|warn|error
func Init(level string) {
	lvl := slog.LevelInfo
	name := strings.ToLower(strings.TrimSpace(level))

	switch name {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		AddSource:  name == "debug",
		Level:      lvl,
		NoColor:    !colorSupported(),
		TimeFormat: timeFormat,
	})

	log = slog.New(handler)
}

// colorSupported 判断 stderr 是否为支持彩色输出的终端。
func colorSupported() bool {
	fd := os.Stderr.Fd()
	if fd > uintptr(^uint(0)>>1) {
		return false
	}
	return term.IsTerminal(int(fd))
}

// ensure 初始化默认 logger（仅在第一次访问且未手动 Init 时）。
func ensure() {
	once.Do(func() {
		if log == nil {
			Init("info")
		}
	})
}

// Log 返回全局 logger。
func Log() *slog.Logger {
	ensure()
	return log
}

// Helper wrappers
func Debug(msg string, args ...any) { Log().Debug(msg, args...) }
func Info(msg string, args ...any)  { Log().Info(msg, args...) }
func Warn(msg string, args ...any)  { Log().Warn(msg, args...) }
func Error(msg string, args ...any) { Log().Error(msg, args...) }
