package ingredient

import (
	"recipe-ranker/internal/core/catalog"
	"recipe-ranker/internal/pkg/common"
)

type categoryRule struct {
	category common.Category
	keywords [][]string
}

// Classifier 食材分類器
// 依表格順序比對關鍵字，第一個命中的分類勝出
type Classifier struct {
	rules []categoryRule
}

// NewClassifier 依查詢表建立分類器，關鍵字會先經過同一個正規化器
func NewClassifier(cat *catalog.Catalog, normalizer *Normalizer) *Classifier {
	c := &Classifier{rules: make([]categoryRule, 0, len(cat.Categories))}
	for _, rule := range cat.Categories {
		r := categoryRule{category: rule.Category}
		for _, kw := range rule.Keywords {
			if toks := Tokens(normalizer.Normalize(kw)); len(toks) > 0 {
				r.keywords = append(r.keywords, toks)
			}
		}
		c.rules = append(c.rules, r)
	}
	return c
}

// Classify 將正規化名稱對應到一個分類，找不到時回傳 other
func (c *Classifier) Classify(normalizedName string) common.Category {
	return c.ClassifyTokens(Tokens(normalizedName))
}

// ClassifyTokens 與 Classify 相同，但接受已切好的單字
func (c *Classifier) ClassifyTokens(tokens []string) common.Category {
	if len(tokens) == 0 {
		return common.CategoryOther
	}
	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if ContainsPhrase(tokens, kw) {
				return rule.category
			}
		}
	}
	return common.CategoryOther
}
