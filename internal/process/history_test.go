/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package process

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCheckAndRecord(t *testing.T) {
	record := filepath.Join(t.TempDir(), ".converted")

	h, err := NewHistory(record)
	require.NoError(t, err)

	isNew, err := h.CheckAndRecord("abc")
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = h.CheckAndRecord("abc")
	require.NoError(t, err)
	assert.False(t, isNew)

	// 空哈希永远视作已存在
	isNew, err = h.CheckAndRecord("")
	require.NoError(t, err)
	assert.False(t, isNew)

	// 重新加载：记录跨实例存活
	h2, err := NewHistory(record)
	require.NoError(t, err)
	isNew, err = h2.CheckAndRecord("abc")
	require.NoError(t, err)
	assert.False(t, isNew)
}

func TestHistoryWithoutFile(t *testing.T) {
	h, err := NewHistory("")
	require.NoError(t, err)

	isNew, err := h.CheckAndRecord("x")
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = h.CheckAndRecord("x")
	require.NoError(t, err)
	assert.False(t, isNew)
}

func TestHistoryConcurrent(t *testing.T) {
	h, err := NewHistory("")
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	newCount := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			isNew, err := h.CheckAndRecord("same")
			assert.NoError(t, err)
			if isNew {
				mu.Lock()
				newCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, newCount)
}
