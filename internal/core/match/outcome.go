package match

import (
	"recipe-ranker/internal/pkg/common"
)

// Kind 比對結果的種類，依優先順序由高到低為 Exact、Category、Substitution、Missing
type Kind string

const (
	KindExact        Kind = "exact"
	KindCategory     Kind = "category"
	KindSubstitution Kind = "substitution"
	KindMissing      Kind = "missing"
)

// 各種類的信心值
const (
	ConfidenceExact        = 1.0
	ConfidenceCategory     = 0.6
	ConfidenceSubstitution = 0.4
	ConfidenceMissing      = 0.0
)

// MatchOutcome 單一食譜食材的比對結果
// 只能透過 exact/categoryMatch/substitution/missing 建構，Missing 一定沒有庫存參照
type MatchOutcome struct {
	Ingredient             common.RecipeIngredient `json:"ingredient"`
	NormalizedName         string                  `json:"normalized_name"`
	Kind                   Kind                    `json:"kind"`
	Confidence             float64                 `json:"confidence"`
	Item                   *common.PantryItem      `json:"pantry_item,omitempty"`
	PantryIndex            int                     `json:"pantry_index"`
	SubstitutionSuggestion string                  `json:"substitution_suggestion,omitempty"`
}

func exact(ing common.RecipeIngredient, name string, e *pantryEntry) MatchOutcome {
	return MatchOutcome{
		Ingredient:     ing,
		NormalizedName: name,
		Kind:           KindExact,
		Confidence:     ConfidenceExact,
		Item:           &e.item,
		PantryIndex:    e.index,
	}
}

func categoryMatch(ing common.RecipeIngredient, name string, e *pantryEntry) MatchOutcome {
	return MatchOutcome{
		Ingredient:     ing,
		NormalizedName: name,
		Kind:           KindCategory,
		Confidence:     ConfidenceCategory,
		Item:           &e.item,
		PantryIndex:    e.index,
	}
}

func substitution(ing common.RecipeIngredient, name string, e *pantryEntry, suggestion string) MatchOutcome {
	return MatchOutcome{
		Ingredient:             ing,
		NormalizedName:         name,
		Kind:                   KindSubstitution,
		Confidence:             ConfidenceSubstitution,
		Item:                   &e.item,
		PantryIndex:            e.index,
		SubstitutionSuggestion: suggestion,
	}
}

func missing(ing common.RecipeIngredient, name string) MatchOutcome {
	return MatchOutcome{
		Ingredient:     ing,
		NormalizedName: name,
		Kind:           KindMissing,
		Confidence:     ConfidenceMissing,
		PantryIndex:    -1,
	}
}

// Available 是否在庫存中找到（含分類與替代品）
func (o MatchOutcome) Available() bool {
	switch o.Kind {
	case KindExact, KindCategory, KindSubstitution:
		return true
	case KindMissing:
		return false
	default:
		return false
	}
}

// RecipeMatchSummary 單一食譜的比對彙總
// AvailableCount + MissingCount == TotalCount
type RecipeMatchSummary struct {
	RecipeID       string         `json:"recipe_id,omitempty"`
	AvailableCount int            `json:"available_count"`
	MissingCount   int            `json:"missing_count"`
	TotalCount     int            `json:"total_count"`
	MatchScore     float64        `json:"match_score"`
	Outcomes       []MatchOutcome `json:"outcomes"`
}

// NewSummary 依比對結果建立彙總
// 沒有任何食材的食譜視為完全滿足，MatchScore 為 1.0
func NewSummary(recipeID string, outcomes []MatchOutcome) RecipeMatchSummary {
	s := RecipeMatchSummary{
		RecipeID:   recipeID,
		TotalCount: len(outcomes),
		Outcomes:   outcomes,
	}
	if s.Outcomes == nil {
		s.Outcomes = []MatchOutcome{}
	}
	for _, o := range outcomes {
		if o.Available() {
			s.AvailableCount++
		} else {
			s.MissingCount++
		}
	}
	if s.TotalCount == 0 {
		s.MatchScore = 1.0
	} else {
		s.MatchScore = float64(s.AvailableCount) / float64(s.TotalCount)
	}
	return s
}

// ExactItems 回傳 Exact 比對到的庫存項目
func (s RecipeMatchSummary) ExactItems() []common.PantryItem {
	var items []common.PantryItem
	for _, o := range s.Outcomes {
		if o.Kind == KindExact && o.Item != nil {
			items = append(items, *o.Item)
		}
	}
	return items
}

// MissingNames 回傳缺少的食材名稱
func (s RecipeMatchSummary) MissingNames() []string {
	var names []string
	for _, o := range s.Outcomes {
		if o.Kind == KindMissing {
			names = append(names, o.Ingredient.Name())
		}
	}
	return names
}
