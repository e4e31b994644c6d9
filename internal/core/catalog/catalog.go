package catalog

import (
	"recipe-ranker/internal/pkg/common"
)

// CategoryRule 分類與關鍵字的對應，依表格順序比對
type CategoryRule struct {
	Category common.Category `mapstructure:"category" json:"category"`
	Keywords []string        `mapstructure:"keywords" json:"keywords"`
}

// FactorWeights 偏好與安全評分的權重表
type FactorWeights struct {
	FavoriteIngredient float64 `mapstructure:"favorite_ingredient" json:"favorite_ingredient"`
	PreferredCuisine   float64 `mapstructure:"preferred_cuisine" json:"preferred_cuisine"`
	DietaryMatch       float64 `mapstructure:"dietary_match" json:"dietary_match"`
	CookingTimeFits    float64 `mapstructure:"cooking_time_fits" json:"cooking_time_fits"`
	UsesExpiringItem   float64 `mapstructure:"uses_expiring_item" json:"uses_expiring_item"`
	DislikedCuisine    float64 `mapstructure:"disliked_cuisine" json:"disliked_cuisine"`
	DislikedIngredient float64 `mapstructure:"disliked_ingredient" json:"disliked_ingredient"`
	TooComplex         float64 `mapstructure:"too_complex" json:"too_complex"`
	Allergen           float64 `mapstructure:"allergen" json:"allergen"`
}

// Catalog 引擎使用的靜態查詢表
// 於程序啟動時載入一次，之後明確傳入各元件，不以全域狀態存取
type Catalog struct {
	Modifiers        []string                    `mapstructure:"modifiers" json:"modifiers"`
	PackagingWords   []string                    `mapstructure:"packaging_words" json:"packaging_words"`
	Irregulars       map[string]string           `mapstructure:"irregulars" json:"irregulars"`
	PluralExceptions []string                    `mapstructure:"plural_exceptions" json:"plural_exceptions"`
	Units            map[string]string           `mapstructure:"units" json:"units"`
	Categories       []CategoryRule              `mapstructure:"categories" json:"categories"`
	Substitutions    map[string][]string         `mapstructure:"substitutions" json:"substitutions"`
	LossRates        map[common.Category]float64 `mapstructure:"loss_rates" json:"loss_rates"`
	DefaultLossRate  float64                     `mapstructure:"default_loss_rate" json:"default_loss_rate"`
	Weights          FactorWeights               `mapstructure:"weights" json:"weights"`
}

// LossRate 取得分類的中位損耗率，未知分類回傳預設值
func (c *Catalog) LossRate(category common.Category) float64 {
	if rate, ok := c.LossRates[category]; ok {
		return rate
	}
	return c.DefaultLossRate
}

// Clone 深拷貝，讓測試可以安全地替換表格內容
func (c *Catalog) Clone() *Catalog {
	out := *c
	out.Modifiers = append([]string(nil), c.Modifiers...)
	out.PackagingWords = append([]string(nil), c.PackagingWords...)
	out.PluralExceptions = append([]string(nil), c.PluralExceptions...)

	out.Irregulars = make(map[string]string, len(c.Irregulars))
	for k, v := range c.Irregulars {
		out.Irregulars[k] = v
	}
	out.Units = make(map[string]string, len(c.Units))
	for k, v := range c.Units {
		out.Units[k] = v
	}

	out.Categories = make([]CategoryRule, len(c.Categories))
	for i, rule := range c.Categories {
		out.Categories[i] = CategoryRule{
			Category: rule.Category,
			Keywords: append([]string(nil), rule.Keywords...),
		}
	}

	out.Substitutions = make(map[string][]string, len(c.Substitutions))
	for k, v := range c.Substitutions {
		out.Substitutions[k] = append([]string(nil), v...)
	}
	out.LossRates = make(map[common.Category]float64, len(c.LossRates))
	for k, v := range c.LossRates {
		out.LossRates[k] = v
	}
	return &out
}
