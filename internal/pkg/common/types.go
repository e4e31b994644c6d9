package common

import (
	"strings"
	"time"
)

// Category 食材分類
type Category string

const (
	CategoryProduce    Category = "produce"
	CategoryDairy      Category = "dairy"
	CategoryMeat       Category = "meat_seafood"
	CategoryGrains     Category = "grains_pasta"
	CategoryBakery     Category = "bakery"
	CategoryCondiments Category = "condiments"
	CategorySpices     Category = "spices"
	CategoryCanned     Category = "canned"
	CategoryFrozen     Category = "frozen"
	CategorySnacks     Category = "snacks"
	CategoryBeverages  Category = "beverages"
	CategoryOther      Category = "other"
)

// categoryAliases 呼叫端常見的分類寫法
var categoryAliases = map[string]Category{
	"produce":      CategoryProduce,
	"fruit":        CategoryProduce,
	"fruits":       CategoryProduce,
	"vegetable":    CategoryProduce,
	"vegetables":   CategoryProduce,
	"dairy":        CategoryDairy,
	"dairy_eggs":   CategoryDairy,
	"eggs":         CategoryDairy,
	"meat_seafood": CategoryMeat,
	"meat":         CategoryMeat,
	"seafood":      CategoryMeat,
	"fish":         CategoryMeat,
	"poultry":      CategoryMeat,
	"grains_pasta": CategoryGrains,
	"grains":       CategoryGrains,
	"grain":        CategoryGrains,
	"pasta":        CategoryGrains,
	"bakery":       CategoryBakery,
	"bread":        CategoryBakery,
	"baked_goods":  CategoryBakery,
	"condiments":   CategoryCondiments,
	"condiment":    CategoryCondiments,
	"sauces":       CategoryCondiments,
	"spices":       CategorySpices,
	"spice":        CategorySpices,
	"herbs_spices": CategorySpices,
	"canned":       CategoryCanned,
	"canned_goods": CategoryCanned,
	"frozen":       CategoryFrozen,
	"frozen_foods": CategoryFrozen,
	"snacks":       CategorySnacks,
	"snack":        CategorySnacks,
	"beverages":    CategoryBeverages,
	"beverage":     CategoryBeverages,
	"drinks":       CategoryBeverages,
	"other":        CategoryOther,
}

// ParseCategory 將呼叫端提供的分類字串轉為標準分類
// 忽略大小寫，空白、"-"、"&" 視為底線；無法辨識時回傳 false
func ParseCategory(s string) (Category, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("&", " ", "-", " ", "/", " ", "_", " ", ",", " ").Replace(key)
	key = strings.Join(strings.Fields(strings.ReplaceAll(key, " and ", " ")), "_")
	if key == "" {
		return "", false
	}
	c, ok := categoryAliases[key]
	return c, ok
}

// Quantity 數量與單位
type Quantity struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// PantryItem 食材庫存項目（由呼叫端持有，引擎只讀不寫）
type PantryItem struct {
	ID             string     `json:"id,omitempty"`
	Name           string     `json:"name"`
	NormalizedName string     `json:"normalized_name,omitempty"`
	Category       Category   `json:"category,omitempty"`
	Quantity       Quantity   `json:"quantity"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
}

// RecipeIngredient 食譜中的單一食材
type RecipeIngredient struct {
	RawText        string  `json:"raw_text"`
	ParsedName     string  `json:"parsed_name,omitempty"`
	ParsedQuantity float64 `json:"parsed_quantity"`
	ParsedUnit     string  `json:"parsed_unit,omitempty"`
}

// Name 回傳用於比對的食材名稱，優先使用解析後的名稱
func (ri RecipeIngredient) Name() string {
	if strings.TrimSpace(ri.ParsedName) != "" {
		return ri.ParsedName
	}
	return ri.RawText
}

// Recipe 候選食譜
type Recipe struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Ingredients    []RecipeIngredient `json:"ingredients"`
	Cuisine        string             `json:"cuisine,omitempty"`
	DietaryTags    []string           `json:"dietary_tags,omitempty"`
	ReadyInMinutes int                `json:"ready_in_minutes,omitempty"` // 0 表示未知
	SourceURL      string             `json:"source_url,omitempty"`
}

// UserPreferenceProfile 使用者偏好設定，缺少的欄位視為無限制
type UserPreferenceProfile struct {
	FavoriteIngredients []string `json:"favorite_ingredients,omitempty"`
	DislikedIngredients []string `json:"disliked_ingredients,omitempty"`
	Allergens           []string `json:"allergens,omitempty"`
	PreferredCuisines   []string `json:"preferred_cuisines,omitempty"`
	DislikedCuisines    []string `json:"disliked_cuisines,omitempty"`
	DietaryTags         []string `json:"dietary_tags,omitempty"`
	MaxCookingMinutes   *int     `json:"max_cooking_minutes,omitempty"`
}

// PantryNames 取出庫存食材名稱
func PantryNames(pantry []PantryItem) []string {
	names := make([]string, 0, len(pantry))
	for _, item := range pantry {
		if name := strings.TrimSpace(item.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
