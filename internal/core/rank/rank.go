package rank

import (
	"sort"

	"recipe-ranker/internal/core/match"
	"recipe-ranker/internal/core/score"
	"recipe-ranker/internal/core/waste"
	"recipe-ranker/internal/pkg/common"
)

// Candidate 排序的輸入：食譜與其比對、評分結果
// Liked 由收藏食譜服務提供
// UsesExpiring 表示任一比對到的庫存（不限 Exact）浪費風險為 high 以上，見 UsesAtRiskItem
type Candidate struct {
	Recipe       common.Recipe            `json:"recipe"`
	Summary      match.RecipeMatchSummary `json:"summary"`
	Breakdown    score.ScoreBreakdown     `json:"breakdown"`
	Liked        bool                     `json:"liked"`
	UsesExpiring bool                     `json:"uses_expiring"`
}

// RankedRecipe 排序後的結果
type RankedRecipe struct {
	Position   int `json:"position"`
	InputIndex int `json:"input_index"`
	Candidate
}

// Rank 依多重鍵排序候選食譜，不修改輸入
//  1. 未被否決者優先
//  2. 總分高者優先
//  3. 使用者收藏的食譜優先
//  4. 用到即將過期食材者優先
//  5. 沒有缺少食材者優先
//  6. 比對分數高者優先
//  7. 缺少食材數少者優先
//
// 全部相同時保持輸入順序
func Rank(candidates []Candidate) []RankedRecipe {
	out := make([]RankedRecipe, len(candidates))
	for i, c := range candidates {
		out[i] = RankedRecipe{InputIndex: i, Candidate: c}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i].Candidate, out[j].Candidate)
	})

	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

// Less 回報 a 是否應排在 b 之前
func Less(a, b Candidate) bool {
	if a.Breakdown.IsVetoed != b.Breakdown.IsVetoed {
		return !a.Breakdown.IsVetoed
	}
	if a.Breakdown.Total != b.Breakdown.Total {
		return a.Breakdown.Total > b.Breakdown.Total
	}
	if a.Liked != b.Liked {
		return a.Liked
	}
	if a.UsesExpiring != b.UsesExpiring {
		return a.UsesExpiring
	}
	aPerfect, bPerfect := a.Summary.MissingCount == 0, b.Summary.MissingCount == 0
	if aPerfect != bPerfect {
		return aPerfect
	}
	if a.Summary.MatchScore != b.Summary.MatchScore {
		return a.Summary.MatchScore > b.Summary.MatchScore
	}
	return a.Summary.MissingCount < b.Summary.MissingCount
}

// UsesAtRiskItem 食譜是否用到浪費風險為 high 或 very_high 的庫存
// 與評分因子不同，Category 與 Substitution 比對到的庫存也算
func UsesAtRiskItem(summary match.RecipeMatchSummary, prioritizer *waste.Prioritizer) bool {
	for _, o := range summary.Outcomes {
		if o.Item == nil {
			continue
		}
		if prioritizer.Assess(*o.Item).RiskCategory.IsUrgent() {
			return true
		}
	}
	return false
}

// Recipes 取出排序後的食譜
func Recipes(ranked []RankedRecipe) []common.Recipe {
	out := make([]common.Recipe, len(ranked))
	for i, r := range ranked {
		out[i] = r.Recipe
	}
	return out
}
