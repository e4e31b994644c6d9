package match

import (
	"sort"
	"strings"

	"recipe-ranker/internal/core/catalog"
	"recipe-ranker/internal/core/ingredient"
	"recipe-ranker/internal/core/waste"
	"recipe-ranker/internal/pkg/common"

	"go.uber.org/zap"
)

type pantryEntry struct {
	item     common.PantryItem
	index    int
	name     string
	tokens   []string
	category common.Category
}

// Pantry 已正規化的庫存索引，可重複用於多個食譜
type Pantry struct {
	entries []pantryEntry
}

// Len 庫存項目數
func (p *Pantry) Len() int {
	return len(p.entries)
}

// Items 回傳索引內的庫存項目（已補上正規化名稱與分類）
func (p *Pantry) Items() []common.PantryItem {
	items := make([]common.PantryItem, len(p.entries))
	for i := range p.entries {
		items[i] = p.entries[i].item
	}
	return items
}

// Matcher 食材比對器
type Matcher struct {
	normalizer    *ingredient.Normalizer
	classifier    *ingredient.Classifier
	parser        *ingredient.Parser
	substitutions map[string][]string
	subKeys       []string
}

// NewMatcher 依查詢表建立比對器，替代品表的鍵與值都會先正規化
func NewMatcher(cat *catalog.Catalog, normalizer *ingredient.Normalizer, classifier *ingredient.Classifier) *Matcher {
	m := &Matcher{
		normalizer:    normalizer,
		classifier:    classifier,
		parser:        ingredient.NewParser(cat),
		substitutions: make(map[string][]string, len(cat.Substitutions)),
	}
	for key, subs := range cat.Substitutions {
		nk := normalizer.Normalize(key)
		if nk == "" {
			continue
		}
		for _, s := range subs {
			ns := normalizer.Normalize(s)
			if ns == "" {
				continue
			}
			m.substitutions[nk] = append(m.substitutions[nk], ns)
		}
	}
	for k := range m.substitutions {
		m.subKeys = append(m.subKeys, k)
	}
	// 較長的鍵優先，確保 "brown sugar" 先於 "sugar"
	sort.Slice(m.subKeys, func(i, j int) bool {
		a, b := m.subKeys[i], m.subKeys[j]
		if len(ingredient.Tokens(a)) != len(ingredient.Tokens(b)) {
			return len(ingredient.Tokens(a)) > len(ingredient.Tokens(b))
		}
		return a < b
	})
	return m
}

// Prepare 建立庫存索引，複製呼叫端的資料，不會修改原始項目
// 呼叫端的分類會先轉為標準分類，無法辨識時以名稱重新分類
func (m *Matcher) Prepare(items []common.PantryItem) *Pantry {
	p := &Pantry{entries: make([]pantryEntry, 0, len(items))}
	for i, item := range items {
		source := item.NormalizedName
		if strings.TrimSpace(source) == "" {
			source = item.Name
		}
		normalized := m.normalizer.Normalize(source)
		tokens := ingredient.Tokens(normalized)

		category, ok := common.ParseCategory(string(item.Category))
		if !ok {
			category = m.classifier.ClassifyTokens(tokens)
		}

		item.NormalizedName = normalized
		item.Category = category
		p.entries = append(p.entries, pantryEntry{
			item:     item,
			index:    i,
			name:     normalized,
			tokens:   tokens,
			category: category,
		})
	}
	return p
}

// NormalizeIngredient 取得食譜食材的正規化名稱
// 沒有解析名稱時先從原始文字去掉數量與單位
func (m *Matcher) NormalizeIngredient(ing common.RecipeIngredient) string {
	name := ing.ParsedName
	if strings.TrimSpace(name) == "" {
		name = m.parser.ParseLine(ing.RawText).ParsedName
	}
	return m.normalizer.Normalize(name)
}

// Match 依 Exact → Category → Substitution → Missing 的順序比對單一食材
// Exact 為正規化名稱的雙向子字串比對，Category 需要有完整相同的單字
func (m *Matcher) Match(ing common.RecipeIngredient, pantry *Pantry) MatchOutcome {
	name := m.NormalizeIngredient(ing)
	tokens := ingredient.Tokens(name)
	if len(tokens) == 0 || pantry == nil || len(pantry.entries) == 0 {
		return missing(ing, name)
	}

	if e := pantry.soonest(func(e *pantryEntry) bool {
		return ingredient.ContainsEither(name, e.name)
	}); e != nil {
		return exact(ing, name, e)
	}

	if category := m.classifier.ClassifyTokens(tokens); category != common.CategoryOther {
		if e := pantry.soonest(func(e *pantryEntry) bool {
			return e.category == category && ingredient.SharesToken(tokens, e.tokens)
		}); e != nil {
			return categoryMatch(ing, name, e)
		}
	}

	for _, sub := range m.substitutesFor(tokens, name) {
		if e := pantry.soonest(func(e *pantryEntry) bool {
			return ingredient.ContainsEither(sub, e.name)
		}); e != nil {
			return substitution(ing, name, e, sub)
		}
	}

	return missing(ing, name)
}

// MatchRecipe 比對食譜的所有食材並彙總
func (m *Matcher) MatchRecipe(recipe common.Recipe, pantry *Pantry) RecipeMatchSummary {
	outcomes := make([]MatchOutcome, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		outcomes = append(outcomes, m.Match(ing, pantry))
	}
	summary := NewSummary(recipe.ID, outcomes)

	common.LogDebug("食譜比對完成",
		zap.String("recipe_id", recipe.ID),
		zap.Int("available", summary.AvailableCount),
		zap.Strings("missing", summary.MissingNames()),
	)
	return summary
}

// substitutesFor 先以完整名稱查表，找不到時再找名稱中包含的鍵
func (m *Matcher) substitutesFor(tokens []string, name string) []string {
	if subs, ok := m.substitutions[name]; ok {
		return subs
	}
	for _, key := range m.subKeys {
		if ingredient.ContainsPhrase(tokens, ingredient.Tokens(key)) {
			return m.substitutions[key]
		}
	}
	return nil
}

// soonest 在符合條件的項目中挑最早到期者，無到期日排最後，同日保持輸入順序
func (p *Pantry) soonest(pred func(*pantryEntry) bool) *pantryEntry {
	var best *pantryEntry
	for i := range p.entries {
		e := &p.entries[i]
		if !pred(e) {
			continue
		}
		if best == nil || waste.ExpiresBefore(e.item.ExpiryDate, best.item.ExpiryDate) {
			best = e
		}
	}
	return best
}
