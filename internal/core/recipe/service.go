package recipe

import (
	"time"

	"recipe-ranker/internal/core/cache"
	"recipe-ranker/internal/core/catalog"
	"recipe-ranker/internal/core/ingredient"
	"recipe-ranker/internal/core/match"
	"recipe-ranker/internal/core/rank"
	"recipe-ranker/internal/core/score"
	"recipe-ranker/internal/core/waste"
	"recipe-ranker/internal/metrics"
	"recipe-ranker/internal/pkg/common"
)

// DefaultWorkers 預設的並行評估數
const DefaultWorkers = 4

// Option 設定 Engine
type Option func(*Engine)

// WithCache 設定推薦結果的快取
func WithCache(store cache.Store) Option {
	return func(e *Engine) {
		if store != nil {
			e.cache = store
		}
	}
}

// WithSource 設定外部食譜搜尋服務
func WithSource(src Source) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithWorkers 設定並行評估的上限
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithClock 注入時鐘，影響到期天數與快取日期
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.clock = now
		}
	}
}

// Engine 食譜相容性與排序引擎
// 所有查詢表在建立時固定，之後可被多個 goroutine 同時使用
type Engine struct {
	catalog     *catalog.Catalog
	normalizer  *ingredient.Normalizer
	classifier  *ingredient.Classifier
	parser      *ingredient.Parser
	matcher     *match.Matcher
	scorer      *score.Scorer
	prioritizer *waste.Prioritizer

	cache   cache.Store
	source  Source
	workers int
	clock   func() time.Time
}

// NewEngine 創建新的引擎
func NewEngine(cat *catalog.Catalog, opts ...Option) (*Engine, error) {
	if cat == nil {
		return nil, common.NewValidationError("catalog is required")
	}

	e := &Engine{
		catalog: cat,
		cache:   cache.Disabled{},
		workers: DefaultWorkers,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		return nil, common.NewValidationError("workers must be positive")
	}

	e.normalizer = ingredient.NewNormalizer(cat)
	e.classifier = ingredient.NewClassifier(cat, e.normalizer)
	e.parser = ingredient.NewParser(cat)
	e.matcher = match.NewMatcher(cat, e.normalizer, e.classifier)
	e.scorer = score.NewScorer(cat, e.matcher, e.normalizer, e.classifier)
	e.prioritizer = waste.NewPrioritizer(cat, waste.WithClock(e.clock))

	return e, nil
}

// NormalizeName 正規化食材名稱
func (e *Engine) NormalizeName(text string) string {
	return e.normalizer.Normalize(text)
}

// Classify 將食材名稱分類
func (e *Engine) Classify(text string) common.Category {
	return e.classifier.Classify(e.normalizer.Normalize(text))
}

// ParseIngredient 解析食材文字
func (e *Engine) ParseIngredient(raw string) common.RecipeIngredient {
	return e.parser.ParseLine(raw)
}

// MatchRecipe 比對食譜與庫存
func (e *Engine) MatchRecipe(recipe *common.Recipe, pantry []common.PantryItem) (match.RecipeMatchSummary, error) {
	if recipe == nil {
		return match.RecipeMatchSummary{}, common.NewValidationError("recipe is required")
	}
	summary := e.matcher.MatchRecipe(*recipe, e.matcher.Prepare(pantry))
	recordOutcomes(summary)
	return summary, nil
}

// ScoreRecipe 計算偏好與安全分數
// 提供庫存時才會判斷「使用即將過期食材」因子
func (e *Engine) ScoreRecipe(recipe *common.Recipe, profile *common.UserPreferenceProfile, pantry []common.PantryItem) (score.ScoreBreakdown, error) {
	if recipe == nil {
		return score.ScoreBreakdown{}, common.NewValidationError("recipe is required")
	}
	if profile == nil {
		return score.ScoreBreakdown{}, common.NewValidationError("profile is required")
	}

	usesExpiring := false
	if len(pantry) > 0 {
		summary := e.matcher.MatchRecipe(*recipe, e.matcher.Prepare(pantry))
		usesExpiring = score.UsesExpiringItem(summary, e.prioritizer)
	}

	breakdown := e.scorer.Score(*recipe, *profile, usesExpiring)
	if breakdown.IsVetoed {
		metrics.RecipesVetoed.Inc()
	}
	return breakdown, nil
}

// AssessWasteRisk 評估單一庫存項目的浪費風險
// 未分類或分類無法辨識的項目會先以名稱分類
func (e *Engine) AssessWasteRisk(item *common.PantryItem) (waste.WasteRiskScore, error) {
	if item == nil {
		return waste.WasteRiskScore{}, common.NewValidationError("pantry item is required")
	}
	risk := e.prioritizer.Assess(e.matcher.Prepare([]common.PantryItem{*item}).Items()[0])
	metrics.WasteAssessments.WithLabelValues(string(risk.RiskCategory)).Inc()
	return risk, nil
}

// PrioritizePantry 依浪費風險排序整個庫存
func (e *Engine) PrioritizePantry(pantry []common.PantryItem) []waste.PantryRisk {
	out := e.prioritizer.Prioritize(e.matcher.Prepare(pantry).Items())
	for i := range out {
		// 回傳呼叫端原本的項目
		out[i].Item = pantry[out[i].Index]
		metrics.WasteAssessments.WithLabelValues(string(out[i].Risk.RiskCategory)).Inc()
	}
	return out
}

// RankRecipes 排序已評估的候選食譜
func (e *Engine) RankRecipes(candidates []rank.Candidate) []rank.RankedRecipe {
	return rank.Rank(candidates)
}

func recordOutcomes(summary match.RecipeMatchSummary) {
	for _, o := range summary.Outcomes {
		metrics.MatchOutcomes.WithLabelValues(string(o.Kind)).Inc()
	}
}
