package score

import (
	"strings"

	"recipe-ranker/internal/core/catalog"
	"recipe-ranker/internal/core/ingredient"
	"recipe-ranker/internal/core/match"
	"recipe-ranker/internal/core/waste"
	"recipe-ranker/internal/pkg/common"
)

// FactorName 評分因子名稱
type FactorName string

const (
	FactorFavoriteIngredient FactorName = "favorite_ingredient"
	FactorPreferredCuisine   FactorName = "preferred_cuisine"
	FactorDietaryMatch       FactorName = "dietary_match"
	FactorCookingTimeFits    FactorName = "cooking_time_fits"
	FactorUsesExpiringItem   FactorName = "uses_expiring_item"
	FactorDislikedCuisine    FactorName = "disliked_cuisine"
	FactorDislikedIngredient FactorName = "disliked_ingredient"
	FactorTooComplex         FactorName = "too_complex"
	FactorAllergen           FactorName = "allergen"
)

// Factor 單一因子的權重與是否觸發
type Factor struct {
	Name      FactorName `json:"name"`
	Weight    float64    `json:"weight"`
	Triggered bool       `json:"triggered"`
}

// ScoreBreakdown 偏好與安全評分結果
// IsVetoed 時 Total 固定為最低值
type ScoreBreakdown struct {
	Factors  []Factor `json:"factors"`
	Total    float64  `json:"total"`
	IsVetoed bool     `json:"is_vetoed"`
}

// Triggered 查詢某個因子是否觸發
func (b ScoreBreakdown) Triggered(name FactorName) bool {
	for _, f := range b.Factors {
		if f.Name == name {
			return f.Triggered
		}
	}
	return false
}

// Scorer 偏好與安全評分器
type Scorer struct {
	table      []Factor
	minTotal   float64
	matcher    *match.Matcher
	normalizer *ingredient.Normalizer
	classifier *ingredient.Classifier
}

// NewScorer 依查詢表的權重建立評分器
func NewScorer(cat *catalog.Catalog, matcher *match.Matcher, normalizer *ingredient.Normalizer, classifier *ingredient.Classifier) *Scorer {
	w := cat.Weights
	s := &Scorer{
		table: []Factor{
			{Name: FactorFavoriteIngredient, Weight: w.FavoriteIngredient},
			{Name: FactorPreferredCuisine, Weight: w.PreferredCuisine},
			{Name: FactorDietaryMatch, Weight: w.DietaryMatch},
			{Name: FactorCookingTimeFits, Weight: w.CookingTimeFits},
			{Name: FactorUsesExpiringItem, Weight: w.UsesExpiringItem},
			{Name: FactorDislikedCuisine, Weight: w.DislikedCuisine},
			{Name: FactorDislikedIngredient, Weight: w.DislikedIngredient},
			{Name: FactorTooComplex, Weight: w.TooComplex},
			{Name: FactorAllergen, Weight: w.Allergen},
		},
		matcher:    matcher,
		normalizer: normalizer,
		classifier: classifier,
	}
	for _, f := range s.table {
		if f.Weight < 0 {
			s.minTotal += f.Weight
		}
	}
	return s
}

// MinTotal 所有負向權重的總和，也就是否決時的分數
func (s *Scorer) MinTotal() float64 {
	return s.minTotal
}

type recipeIngredient struct {
	name     string
	tokens   []string
	category common.Category
}

// Score 計算食譜對使用者的偏好與安全分數
// usesExpiring 由呼叫端依比對結果與浪費風險判斷（見 UsesExpiringItem）
func (s *Scorer) Score(recipe common.Recipe, profile common.UserPreferenceProfile, usesExpiring bool) ScoreBreakdown {
	ingredients := make([]recipeIngredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		name := s.matcher.NormalizeIngredient(ing)
		tokens := ingredient.Tokens(name)
		if len(tokens) == 0 {
			continue
		}
		ingredients = append(ingredients, recipeIngredient{
			name:     name,
			tokens:   tokens,
			category: s.classifier.ClassifyTokens(tokens),
		})
	}

	cuisines := splitCuisines(recipe.Cuisine)
	maxMinutes := 0
	if profile.MaxCookingMinutes != nil && *profile.MaxCookingMinutes > 0 {
		maxMinutes = *profile.MaxCookingMinutes
	}
	minutes := recipe.ReadyInMinutes

	triggers := map[FactorName]bool{
		FactorFavoriteIngredient: s.anyContains(ingredients, profile.FavoriteIngredients),
		FactorPreferredCuisine:   intersects(cuisines, profile.PreferredCuisines),
		FactorDietaryMatch:       satisfiesDiet(recipe.DietaryTags, profile.DietaryTags),
		FactorCookingTimeFits:    maxMinutes > 0 && minutes > 0 && minutes <= maxMinutes,
		FactorUsesExpiringItem:   usesExpiring,
		FactorDislikedCuisine:    intersects(cuisines, profile.DislikedCuisines),
		FactorDislikedIngredient: s.anyContains(ingredients, profile.DislikedIngredients),
		FactorTooComplex:         maxMinutes > 0 && minutes > 2*maxMinutes,
		FactorAllergen:           s.hasAllergen(ingredients, profile.Allergens),
	}

	out := ScoreBreakdown{Factors: make([]Factor, len(s.table))}
	for i, f := range s.table {
		f.Triggered = triggers[f.Name]
		if f.Triggered {
			out.Total += f.Weight
		}
		out.Factors[i] = f
	}

	if triggers[FactorAllergen] {
		out.IsVetoed = true
		out.Total = s.minTotal
	}
	return out
}

// anyContains 任一食材以完整單字包含清單中的名稱
func (s *Scorer) anyContains(ingredients []recipeIngredient, names []string) bool {
	for _, name := range names {
		needle := ingredient.Tokens(s.normalizer.Normalize(name))
		if len(needle) == 0 {
			continue
		}
		for _, ing := range ingredients {
			if ingredient.ContainsPhrase(ing.tokens, needle) {
				return true
			}
		}
	}
	return false
}

// hasAllergen 過敏原可以是食材名稱，也可以是分類名稱（例如 "dairy"）
// 名稱以子字串比對，"nut" 也會命中 "walnut"
func (s *Scorer) hasAllergen(ingredients []recipeIngredient, allergens []string) bool {
	for _, allergen := range allergens {
		needle := s.normalizer.Normalize(allergen)
		if needle == "" {
			continue
		}
		key := common.Category(strings.ToLower(strings.TrimSpace(allergen)))
		for _, ing := range ingredients {
			if strings.Contains(ing.name, needle) {
				return true
			}
			if key != common.CategoryOther && ing.category == key {
				return true
			}
		}
	}
	return false
}

// UsesExpiringItem 食譜是否用到（Exact 比對）浪費風險為 high 或 very_high 的庫存
func UsesExpiringItem(summary match.RecipeMatchSummary, prioritizer *waste.Prioritizer) bool {
	for _, item := range summary.ExactItems() {
		if prioritizer.Assess(item).RiskCategory.IsUrgent() {
			return true
		}
	}
	return false
}

func canonicalTag(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func splitCuisines(cuisine string) []string {
	var out []string
	for _, c := range strings.Split(cuisine, ",") {
		if c = canonicalTag(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func intersects(cuisines []string, wanted []string) bool {
	for _, w := range wanted {
		w = canonicalTag(w)
		for _, c := range cuisines {
			if w != "" && c == w {
				return true
			}
		}
	}
	return false
}

// satisfiesDiet 需要至少一個飲食標籤，且食譜涵蓋全部標籤
func satisfiesDiet(recipeTags, required []string) bool {
	have := make(map[string]struct{}, len(recipeTags))
	for _, t := range recipeTags {
		have[canonicalTag(t)] = struct{}{}
	}
	count := 0
	for _, r := range required {
		r = canonicalTag(r)
		if r == "" {
			continue
		}
		if _, ok := have[r]; !ok {
			return false
		}
		count++
	}
	return count > 0
}
