package waste

import (
	"math"
	"time"

	"recipe-ranker/internal/core/catalog"
	"recipe-ranker/internal/pkg/common"
)

// RiskCategory 浪費風險等級
type RiskCategory string

const (
	RiskVeryHigh RiskCategory = "very_high"
	RiskHigh     RiskCategory = "high"
	RiskMedium   RiskCategory = "medium"
	RiskLow      RiskCategory = "low"
)

// IsUrgent 是否為 high 或 very_high
func (c RiskCategory) IsUrgent() bool {
	return c == RiskVeryHigh || c == RiskHigh
}

// 時間風險分段
const (
	timeRiskExpired  = 1.0
	timeRiskVerySoon = 0.6
	timeRiskThisWeek = 0.3
	timeRiskLater    = 0.1
)

// DefaultStorageMultiplier 沒有儲存條件資料時的倍率
const DefaultStorageMultiplier = 1.0

// WasteRiskScore 單一庫存項目的浪費風險
type WasteRiskScore struct {
	Category          common.Category `json:"item_category"`
	BaseLossRate      float64         `json:"base_loss_rate"`
	StorageMultiplier float64         `json:"storage_multiplier"`
	HasExpiry         bool            `json:"has_expiry"`
	DaysUntilExpiry   int             `json:"days_until_expiry"`
	TimeRisk          float64         `json:"time_risk"`
	Score             float64         `json:"score"`
	RiskCategory      RiskCategory    `json:"category"`
}

// Option 設定 Prioritizer
type Option func(*Prioritizer)

// WithClock 注入時鐘，測試時用來固定「今天」
func WithClock(now func() time.Time) Option {
	return func(p *Prioritizer) {
		if now != nil {
			p.now = now
		}
	}
}

// Prioritizer 浪費風險評估器
type Prioritizer struct {
	catalog *catalog.Catalog
	now     func() time.Time
}

// NewPrioritizer 創建新的浪費風險評估器
func NewPrioritizer(cat *catalog.Catalog, opts ...Option) *Prioritizer {
	p := &Prioritizer{catalog: cat, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Now 回傳評估器使用的目前時間
func (p *Prioritizer) Now() time.Time {
	return p.now()
}

// Assess 評估庫存項目的浪費風險
// 項目本身不會被修改；分類先轉為標準分類，無法辨識時以 other 計算
func (p *Prioritizer) Assess(item common.PantryItem) WasteRiskScore {
	category, ok := common.ParseCategory(string(item.Category))
	if !ok {
		category = common.CategoryOther
	}

	if item.ExpiryDate == nil {
		out := p.score(category, timeRiskLater)
		out.HasExpiry = false
		return out
	}

	return p.AssessDays(category, DaysUntil(p.now(), *item.ExpiryDate))
}

// AssessDays 以分類與剩餘天數計算風險，負數天數視為 0
func (p *Prioritizer) AssessDays(category common.Category, days int) WasteRiskScore {
	if days < 0 {
		days = 0
	}
	out := p.score(category, TimeRisk(days))
	out.HasExpiry = true
	out.DaysUntilExpiry = days
	return out
}

func (p *Prioritizer) score(category common.Category, timeRisk float64) WasteRiskScore {
	base := p.catalog.LossRate(category)
	raw := base*100*DefaultStorageMultiplier + timeRisk*50
	score := math.Max(0, math.Min(100, raw))

	return WasteRiskScore{
		Category:          category,
		BaseLossRate:      base,
		StorageMultiplier: DefaultStorageMultiplier,
		TimeRisk:          timeRisk,
		Score:             score,
		RiskCategory:      Categorize(score),
	}
}

// TimeRisk 依剩餘天數回傳時間風險
func TimeRisk(days int) float64 {
	switch {
	case days <= 0:
		return timeRiskExpired
	case days <= 2:
		return timeRiskVerySoon
	case days <= 7:
		return timeRiskThisWeek
	default:
		return timeRiskLater
	}
}

// Categorize 將分數對應到風險等級
func Categorize(score float64) RiskCategory {
	switch {
	case score >= 75:
		return RiskVeryHigh
	case score >= 50:
		return RiskHigh
	case score >= 25:
		return RiskMedium
	default:
		return RiskLow
	}
}

// DaysUntil 以日曆天計算 now 到 expiry 的天數（以 now 的時區為準）
func DaysUntil(now, expiry time.Time) int {
	loc := now.Location()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := expiry.In(loc).Date()
	start := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
