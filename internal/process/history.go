/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package process

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"uniconv/pkg/logger"
)

// History 记录已转换文件的内容哈希，跨运行避免重复转换同一份输入。
type History struct {
	recordFile string
	seen       map[string]struct{}
	mu         sync.RWMutex
}

// NewHistory 创建 History 并尝试加载既有记录。
// recordFile 为空时仅做会话内去重。
func NewHistory(recordFile string) (*History, error) {
	h := &History{
		recordFile: recordFile,
		seen:       make(map[string]struct{}),
	}
	if recordFile == "" {
		return h, nil
	}
	if err := h.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	logger.Log().Debug("转换历史初始化完成", "file", recordFile, "count", len(h.seen))
	return h, nil
}

// CheckAndRecord 原子地检查哈希是否已转换过，未出现过则记录。
// 返回 true 表示新哈希，对应文件应当转换；false 表示应跳过。
func (h *History) CheckAndRecord(hash string) (bool, error) {
	if hash == "" {
		return false, nil
	}

	h.mu.RLock()
	_, exists := h.seen[hash]
	h.mu.RUnlock()
	if exists {
		return false, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// 双重检查：读锁与写锁之间可能有其它 goroutine 写入了同一哈希
	if _, exists := h.seen[hash]; exists {
		return false, nil
	}

	if h.recordFile != "" {
		f, err := os.OpenFile(h.recordFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return false, fmt.Errorf("无法打开 %s 进行写入: %w", h.recordFile, err)
		}
		defer f.Close()
		if _, err := f.WriteString(hash + "\n"); err != nil {
			return false, fmt.Errorf("无法写入 %s: %w", h.recordFile, err)
		}
	}

	h.seen[hash] = struct{}{}
	return true, nil
}

// load 从记录文件中加载既有哈希。
func (h *History) load() error {
	file, err := os.Open(h.recordFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("无法打开 %s: %w", h.recordFile, err)
	}
	defer file.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if hash := scanner.Text(); hash != "" {
			h.seen[hash] = struct{}{}
		}
	}
	return scanner.Err()
}
