package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-ranker/internal/core/cache"
	"recipe-ranker/internal/core/match"
	"recipe-ranker/internal/core/rank"
	"recipe-ranker/internal/core/score"
	"recipe-ranker/internal/metrics"
	"recipe-ranker/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const recommendCacheNamespace = "recommend"

// ErrRecipeSource 外部食譜搜尋失敗且沒有其他候選食譜
var ErrRecipeSource = errors.New("recipe source failed")

// Recommend 執行完整流程：取得候選 → 比對 → 浪費風險 → 評分 → 排序 → 截斷
// 各食譜之間互不相依，以 errgroup 限制並行數；結果與依序執行相同
func (e *Engine) Recommend(ctx context.Context, req *RecommendRequest) (*RecommendResponse, error) {
	if req == nil {
		return nil, common.NewValidationError("request is required")
	}
	if req.Limit < 0 {
		return nil, common.NewValidationError("limit must not be negative")
	}

	start := time.Now()
	defer func() {
		metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	}()

	key, err := e.recommendKey(req)
	if err != nil {
		return nil, err
	}

	var cached RecommendResponse
	switch err := cache.GetJSON(ctx, e.cache, key, &cached); {
	case err == nil:
		metrics.RecommendCache.WithLabelValues("hit").Inc()
		common.LogCacheHit(recommendCacheNamespace)
		cached.Cached = true
		return &cached, nil
	case errors.Is(err, common.ErrCacheDisabled):
	case errors.Is(err, common.ErrCacheMiss):
		metrics.RecommendCache.WithLabelValues("miss").Inc()
		common.LogCacheMiss(recommendCacheNamespace)
	default:
		metrics.RecommendCache.WithLabelValues("error").Inc()
		common.LogWarn("讀取推薦快取失敗", zap.Error(err))
	}

	candidates := append([]common.Recipe(nil), req.Candidates...)
	sourceCount := 0
	if req.UseRecipeSource && e.source != nil && e.source.Enabled() {
		found, err := e.source.FindByIngredients(ctx, common.PantryNames(req.Pantry), 0)
		if err != nil {
			metrics.RecipeSourceRequests.WithLabelValues("error").Inc()
			if len(candidates) == 0 {
				return nil, fmt.Errorf("%w: %v", ErrRecipeSource, err)
			}
			common.LogWarn("外部食譜搜尋失敗，僅使用提供的候選食譜", zap.Error(err))
		} else {
			metrics.RecipeSourceRequests.WithLabelValues("ok").Inc()
			sourceCount = len(found)
			candidates = append(candidates, found...)
		}
	}

	evaluated, err := e.evaluate(ctx, candidates, req)
	if err != nil {
		return nil, err
	}

	ranked := rank.Rank(evaluated)
	vetoed := 0
	for _, c := range ranked {
		if c.Breakdown.IsVetoed {
			vetoed++
		}
	}

	resp := &RecommendResponse{
		Recipes:        ranked,
		TotalEvaluated: len(ranked),
		VetoedCount:    vetoed,
		SourceCount:    sourceCount,
		GeneratedAt:    e.clock(),
	}
	if req.Limit > 0 && len(resp.Recipes) > req.Limit {
		resp.Recipes = resp.Recipes[:req.Limit]
	}

	if err := cache.SetJSON(ctx, e.cache, key, resp); err != nil {
		common.LogWarn("寫入推薦快取失敗", zap.Error(err))
	}

	common.LogInfo("推薦完成",
		zap.Int("candidates", len(candidates)),
		zap.Int("source", sourceCount),
		zap.Int("vetoed", vetoed),
		zap.Int("returned", len(resp.Recipes)),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

// evaluate 並行比對與評分，結果依輸入順序存放
func (e *Engine) evaluate(ctx context.Context, recipes []common.Recipe, req *RecommendRequest) ([]rank.Candidate, error) {
	pantry := e.matcher.Prepare(req.Pantry)

	liked := make(map[string]bool, len(req.LikedRecipeIDs))
	for _, id := range req.LikedRecipeIDs {
		liked[id] = true
	}

	out := make([]rank.Candidate, len(recipes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, r := range recipes {
		i, r := i, r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = e.evaluateOne(r, pantry, req.Profile, liked[r.ID])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to evaluate candidates: %w", err)
	}
	return out, nil
}

func (e *Engine) evaluateOne(r common.Recipe, pantry *match.Pantry, profile common.UserPreferenceProfile, liked bool) rank.Candidate {
	summary := e.matcher.MatchRecipe(r, pantry)
	recordOutcomes(summary)

	breakdown := e.scorer.Score(r, profile, score.UsesExpiringItem(summary, e.prioritizer))
	if breakdown.IsVetoed {
		metrics.RecipesVetoed.Inc()
	}

	common.LogDebug("食譜評估完成",
		zap.String("recipe_id", r.ID),
		zap.Float64("match_score", summary.MatchScore),
		zap.Float64("total", breakdown.Total),
		zap.Bool("vetoed", breakdown.IsVetoed),
		zap.Strings("missing", summary.MissingNames()),
	)

	return rank.Candidate{
		Recipe:       r,
		Summary:      summary,
		Breakdown:    breakdown,
		Liked:        liked,
		UsesExpiring: rank.UsesAtRiskItem(summary, e.prioritizer),
	}
}

// recommendKey 以請求內容與當天日期產生快取鍵，跨日後到期天數會改變
func (e *Engine) recommendKey(req *RecommendRequest) (string, error) {
	body, err := common.ToJSON(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}
	return cache.Key(recommendCacheNamespace, body, e.clock().Format("2006-01-02")), nil
}
