package engine

import (
	"context"
	"errors"
	"net/http"

	"recipe-ranker/internal/core/rank"
	"recipe-ranker/internal/core/recipe"
	"recipe-ranker/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MatchRequest 食譜比對請求
type MatchRequest struct {
	Recipe *common.Recipe      `json:"recipe" binding:"required"`
	Pantry []common.PantryItem `json:"pantry" binding:"required"`
}

// ScoreRequest 食譜評分請求，pantry 可省略
type ScoreRequest struct {
	Recipe  *common.Recipe                `json:"recipe" binding:"required"`
	Profile *common.UserPreferenceProfile `json:"profile" binding:"required"`
	Pantry  []common.PantryItem           `json:"pantry,omitempty"`
}

// WasteRiskRequest 單一庫存項目的浪費風險請求
type WasteRiskRequest struct {
	Item *common.PantryItem `json:"item" binding:"required"`
}

// PantryRiskRequest 整個庫存的浪費風險請求
type PantryRiskRequest struct {
	Pantry []common.PantryItem `json:"pantry" binding:"required"`
}

// RankRequest 排序請求
type RankRequest struct {
	Candidates []rank.Candidate `json:"candidates" binding:"required"`
}

// Handler 引擎 API 處理器
type Handler struct {
	engine *recipe.Engine
	debug  bool
}

// NewHandler 創建引擎 API 處理器
func NewHandler(engine *recipe.Engine, debug bool) *Handler {
	return &Handler{engine: engine, debug: debug}
}

// Register 註冊路由
func (h *Handler) Register(group *gin.RouterGroup, recommend ...gin.HandlerFunc) {
	group.POST("/match", h.HandleMatch)
	group.POST("/score", h.HandleScore)
	group.POST("/waste-risk", h.HandleWasteRisk)
	group.POST("/pantry/risk", h.HandlePantryRisk)
	group.POST("/rank", h.HandleRank)
	group.POST("/recommend", append(recommend, h.HandleRecommend)...)
}

// HandleMatch 比對食譜與庫存
func (h *Handler) HandleMatch(c *gin.Context) {
	var req MatchRequest
	if !h.bind(c, &req) {
		return
	}

	summary, err := h.engine.MatchRecipe(req.Recipe, req.Pantry)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// HandleScore 計算偏好與安全分數
func (h *Handler) HandleScore(c *gin.Context) {
	var req ScoreRequest
	if !h.bind(c, &req) {
		return
	}

	breakdown, err := h.engine.ScoreRecipe(req.Recipe, req.Profile, req.Pantry)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// HandleWasteRisk 評估單一庫存項目
func (h *Handler) HandleWasteRisk(c *gin.Context) {
	var req WasteRiskRequest
	if !h.bind(c, &req) {
		return
	}

	risk, err := h.engine.AssessWasteRisk(req.Item)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, risk)
}

// HandlePantryRisk 依浪費風險排序庫存
func (h *Handler) HandlePantryRisk(c *gin.Context) {
	var req PantryRiskRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.engine.PrioritizePantry(req.Pantry)})
}

// HandleRank 排序已評估的候選食譜
func (h *Handler) HandleRank(c *gin.Context) {
	var req RankRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": h.engine.RankRecipes(req.Candidates)})
}

// HandleRecommend 執行完整推薦流程
func (h *Handler) HandleRecommend(c *gin.Context) {
	var req recipe.RecommendRequest
	if !h.bind(c, &req) {
		return
	}

	common.LogInfo("開始處理推薦請求",
		zap.String("request_id", h.requestID(c)),
		zap.Int("pantry", len(req.Pantry)),
		zap.Int("candidates", len(req.Candidates)),
		zap.Bool("use_recipe_source", req.UseRecipeSource),
	)

	resp, err := h.engine.Recommend(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", h.requestID(c)),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusBadRequest, common.ErrInvalidRequest.Wrap(err).Response(h.debug))
		return false
	}
	return true
}

// writeError 將錯誤對應到 API 錯誤碼
func (h *Handler) writeError(c *gin.Context, err error) {
	var apiErr *common.CustomError
	switch {
	case common.IsValidationError(err):
		apiErr = common.ErrInvalidRequest.Wrap(err)
	case errors.Is(err, recipe.ErrRecipeSource):
		apiErr = common.ErrRecipeSource.Wrap(err)
	case errors.Is(err, context.DeadlineExceeded):
		apiErr = common.ErrRequestTimeout.Wrap(err)
	case errors.Is(err, context.Canceled):
		apiErr = common.ErrServiceUnavailable.Wrap(err)
	default:
		apiErr = common.ErrInternalError.Wrap(err)
	}

	common.LogError("請求處理失敗",
		zap.Error(err),
		zap.String("code", apiErr.Code),
		zap.String("request_id", h.requestID(c)),
		zap.String("path", c.Request.URL.Path),
	)
	_ = c.Error(err)
	c.JSON(apiErr.Status, apiErr.Response(h.debug))
}

func (h *Handler) requestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	id := common.GenerateUUID()
	c.Header("X-Request-ID", id)
	return id
}
