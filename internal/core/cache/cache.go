package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"recipe-ranker/internal/infrastructure/config"
	"recipe-ranker/internal/pkg/common"
)

// Store 快取介面，找不到時回傳 common.ErrCacheMiss
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Stats() map[string]interface{}
	Close() error
}

// New 依設定建立快取，未啟用時回傳 Disabled
func New(cfg *config.CacheConfig) (Store, error) {
	if cfg == nil || !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return Disabled{}, nil
	}

	switch cfg.Backend {
	case config.CacheBackendRedis:
		return NewRedisStore(cfg)
	case config.CacheBackendMemory, "":
		return NewManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Key 生成快取鍵，格式為 namespace:sha256(parts)
func Key(namespace string, parts ...string) string {
	return namespace + ":" + common.HashString(strings.Join(parts, "\x1f"))
}

// GetJSON 讀取並解析 JSON 快取
func GetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := common.ParseJSONBytes(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal cache: %w", err)
	}
	return nil
}

// SetJSON 序列化後寫入快取
func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.Set(ctx, key, data)
}

// Disabled 關閉快取時使用的空實作
type Disabled struct{}

// Get 永遠回傳 common.ErrCacheDisabled
func (Disabled) Get(context.Context, string) ([]byte, error) {
	return nil, common.ErrCacheDisabled
}

// Set 不做任何事
func (Disabled) Set(context.Context, string, []byte) error {
	return nil
}

// Stats 回傳停用狀態
func (Disabled) Stats() map[string]interface{} {
	return map[string]interface{}{"enabled": false}
}

// Close 不做任何事
func (Disabled) Close() error {
	return nil
}
