package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipe-ranker/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, body)
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Refills(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2, time.Second, func() time.Time { return now })

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())

	// 半個 window 補回一個令牌
	now = now.Add(500 * time.Millisecond)
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())

	// 分段補充也會累積
	now = now.Add(250 * time.Millisecond)
	assert.False(t, rl.Allow())
	now = now.Add(250 * time.Millisecond)
	assert.True(t, rl.Allow())
}

func TestRateLimit_Middleware(t *testing.T) {
	r := newTestRouter(RateLimit(1, time.Minute))

	assert.Equal(t, http.StatusOK, post(r, `{"a":1}`).Code)
	w := post(r, `{"a":2}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	var resp common.ErrorResponse
	require.NoError(t, common.ParseJSONBytes(w.Body.Bytes(), &resp))
	assert.Equal(t, common.ErrCodeTooManyRequests, resp.Code)
}

func TestDeduplication(t *testing.T) {
	r := newTestRouter(Deduplication(time.Minute))

	first := post(r, `{"pantry":[]}`)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, `{"pantry":[]}`, first.Body.String())

	assert.Equal(t, http.StatusTooManyRequests, post(r, `{"pantry":[]}`).Code)
	assert.Equal(t, http.StatusOK, post(r, `{"pantry":[1]}`).Code)
}

func TestBodySizeLimit(t *testing.T) {
	r := newTestRouter(BodySizeLimit(16))

	assert.Equal(t, http.StatusOK, post(r, `{"a":1}`).Code)

	w := post(r, `{"a":"this body is far too long"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), ErrCodeBodyTooLarge)
}

func TestRecovery(t *testing.T) {
	r := newTestRouter(Recovery(), Logger())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), common.ErrCodeInternalError)
}
