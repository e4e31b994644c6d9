package catalog

import (
	"fmt"
	"strings"

	"recipe-ranker/internal/pkg/common"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Load 從 JSON/YAML 檔載入查詢表並覆蓋在內建表格之上
// path 為空時直接回傳 Default()
func Load(path string) (*Catalog, error) {
	cat := Default()
	if strings.TrimSpace(path) == "" {
		return cat, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	// 分類表為有序清單，檔案中有提供時整份替換
	if v.IsSet("categories") {
		cat.Categories = nil
	}
	if err := v.Unmarshal(cat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	if err := validate(cat); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	common.LogInfo("查詢表已載入",
		zap.String("path", path),
		zap.Int("categories", len(cat.Categories)),
		zap.Int("substitutions", len(cat.Substitutions)),
	)
	return cat, nil
}

// validate 驗證查詢表
func validate(cat *Catalog) error {
	if len(cat.Categories) == 0 {
		return fmt.Errorf("categories must not be empty")
	}
	for i, rule := range cat.Categories {
		if rule.Category == "" {
			return fmt.Errorf("category rule %d has no category", i)
		}
		if rule.Category == common.CategoryOther {
			return fmt.Errorf("category %q is the fallback and cannot have keywords", rule.Category)
		}
	}
	for category, rate := range cat.LossRates {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("loss rate for %q must be within [0,1]", category)
		}
	}
	if cat.DefaultLossRate < 0 || cat.DefaultLossRate > 1 {
		return fmt.Errorf("default loss rate must be within [0,1]")
	}
	if cat.Weights.Allergen >= 0 {
		return fmt.Errorf("allergen weight must be negative")
	}
	return nil
}
