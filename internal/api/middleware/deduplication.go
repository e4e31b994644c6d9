package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"recipe-ranker/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	defaultDedupWindow = time.Second
	dedupCacheSize     = 10000
)

// Deduplication 請求去重中間件
// 同一路徑、同一內容的 POST 請求在 window 內只處理一次
func Deduplication(window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = defaultDedupWindow
	}
	seen := expirable.NewLRU[string, struct{}](dedupCacheSize, nil, window)

	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			common.LogWarn("Failed to read request body", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrInvalidRequest.Response(false))
			return
		}
		// 恢復請求體
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		// 生成請求指紋
		fingerprint := c.ClientIP() + ":" + c.Request.URL.Path + ":" + common.HashString(string(body))

		if _, ok := seen.Get(fingerprint); ok {
			common.LogInfo("Duplicate request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrTooManyRequests.Response(false))
			return
		}
		seen.Add(fingerprint, struct{}{})

		c.Next()
	}
}
