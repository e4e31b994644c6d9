package recipe

import (
	"context"
	"time"

	"recipe-ranker/internal/core/rank"
	"recipe-ranker/internal/pkg/common"
)

// Source 外部食譜搜尋服務
type Source interface {
	Enabled() bool
	FindByIngredients(ctx context.Context, names []string, limit int) ([]common.Recipe, error)
}

// RecommendRequest 推薦流程的輸入
type RecommendRequest struct {
	Pantry          []common.PantryItem          `json:"pantry" binding:"required"`
	Profile         common.UserPreferenceProfile `json:"profile"`
	Candidates      []common.Recipe              `json:"candidates"`
	LikedRecipeIDs  []string                     `json:"liked_recipe_ids,omitempty"`
	UseRecipeSource bool                         `json:"use_recipe_source"`
	Limit           int                          `json:"limit" binding:"gte=0"`
}

// RecommendResponse 推薦流程的輸出
type RecommendResponse struct {
	Recipes        []rank.RankedRecipe `json:"recipes"`
	TotalEvaluated int                 `json:"total_evaluated"`
	VetoedCount    int                 `json:"vetoed_count"`
	SourceCount    int                 `json:"source_count"`
	Cached         bool                `json:"cached"`
	GeneratedAt    time.Time           `json:"generated_at"`
}
