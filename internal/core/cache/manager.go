package cache

import (
	"context"
	"sync/atomic"

	"recipe-ranker/internal/infrastructure/config"
	"recipe-ranker/internal/pkg/common"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// Manager 記憶體快取，使用有存活時間的 LRU
type Manager struct {
	maxSize int
	lru     *expirable.LRU[string, []byte]
	stats   cacheStats
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewManager 創建新的緩存管理器
func NewManager(cfg *config.CacheConfig) *Manager {
	m := &Manager{maxSize: cfg.MaxSize}
	m.lru = expirable.NewLRU[string, []byte](cfg.MaxSize, func(string, []byte) {
		m.stats.evictions.Add(1)
	}, cfg.TTL)

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.MaxSize),
		zap.Duration("存活時間", cfg.TTL),
	)
	return m
}

// Get 獲取緩存值
func (m *Manager) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := m.lru.Get(key); ok {
		m.stats.hits.Add(1)
		common.LogDebug("快取命中", zap.String("鍵", key))
		return value, nil
	}
	m.stats.misses.Add(1)
	common.LogDebug("快取未命中", zap.String("鍵", key))
	return nil, common.ErrCacheMiss
}

// Set 設置緩存值
func (m *Manager) Set(ctx context.Context, key string, value []byte) error {
	m.lru.Add(key, append([]byte(nil), value...))
	return nil
}

// Len 目前的項目數
func (m *Manager) Len() int {
	return m.lru.Len()
}

// Stats 獲取緩存統計信息
func (m *Manager) Stats() map[string]interface{} {
	hits, misses := m.stats.hits.Load(), m.stats.misses.Load()
	ratio := 0.0
	if hits+misses > 0 {
		ratio = float64(hits) / float64(hits+misses)
	}
	return map[string]interface{}{
		"backend":   config.CacheBackendMemory,
		"size":      m.lru.Len(),
		"max_size":  m.maxSize,
		"hits":      hits,
		"misses":    misses,
		"evictions": m.stats.evictions.Load(),
		"hit_ratio": ratio,
	}
}

// Close 關閉緩存管理器
func (m *Manager) Close() error {
	m.lru.Purge()
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits.Load()),
		zap.Int64("未命中次數", m.stats.misses.Load()),
		zap.Int64("淘汰次數", m.stats.evictions.Load()),
	)
	return nil
}
