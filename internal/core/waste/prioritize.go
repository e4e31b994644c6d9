package waste

import (
	"sort"
	"time"

	"recipe-ranker/internal/pkg/common"
)

// PantryRisk 庫存項目與其風險
type PantryRisk struct {
	Index int               `json:"index"`
	Item  common.PantryItem `json:"item"`
	Risk  WasteRiskScore    `json:"risk"`
}

// Prioritize 評估整個庫存並依急迫程度排序
// 分數高者優先，其次為較早到期者（無到期日排最後），最後保持輸入順序
func (p *Prioritizer) Prioritize(pantry []common.PantryItem) []PantryRisk {
	out := make([]PantryRisk, len(pantry))
	for i, item := range pantry {
		out[i] = PantryRisk{Index: i, Item: item, Risk: p.Assess(item)}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Risk.Score != b.Risk.Score {
			return a.Risk.Score > b.Risk.Score
		}
		return ExpiresBefore(a.Item.ExpiryDate, b.Item.ExpiryDate)
	})
	return out
}

// ExpiresBefore 比較兩個到期日，nil 視為最晚
func ExpiresBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
