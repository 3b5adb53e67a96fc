package ledger

import "carboncampus/internal/model"

// Kind 負碳記錄類型
type Kind string

const (
	KindSelfUse  Kind = "self_use"  // 再生能源(自發自用)
	KindSold     Kind = "sold"      // 再生能源(售電予廠商)
	KindTreeSink Kind = "tree_sink" // 樹木碳匯
)

// Valid 判斷是否為已知類型
func (k Kind) Valid() bool {
	return k == KindSelfUse || k == KindSold || k == KindTreeSink
}

// Row 一條負碳記錄
// 與排放類別不同，這裡的類別是開放詞表：行可自由增刪改
type Row struct {
	ID       string  `json:"id"`
	Kind     Kind    `json:"kind"`
	Category string  `json:"category"` // 如 太陽能光電 / 風力發電 / 針葉樹
	Quantity float64 `json:"quantity"` // 發電度數(kWh) 或 固碳當量(kgCO2e)
	Unit     string  `json:"unit,omitempty"`
}

// Tonnage 單行減碳量 (tCO2e/年)
// 發電類：度數 × 電力排放係數 / 1000；樹木碳匯：固碳當量 / 1000
func (r Row) Tonnage(electricityFactor float64) float64 {
	switch r.Kind {
	case KindSelfUse, KindSold:
		return r.Quantity * electricityFactor / 1000
	case KindTreeSink:
		return r.Quantity / 1000
	default:
		return 0
	}
}

// Total 全部行的減碳量合計 (tCO2e/年)
func Total(rows []Row, electricityFactor float64) float64 {
	var sum float64
	for _, r := range rows {
		sum += r.Tonnage(electricityFactor)
	}
	return sum
}

// validateRow 校驗行數據：類型已知且數量為有限非負數
func validateRow(kind Kind, quantity float64) error {
	if !kind.Valid() {
		return model.ErrValidation
	}
	return model.ValidateAmount(quantity)
}
