package model

// Months 十二個月份的規範名稱（輸入鍵、顯示與導出行序均以此為準）
var Months = []string{
	"一月", "二月", "三月", "四月", "五月", "六月",
	"七月", "八月", "九月", "十月", "十一月", "十二月",
}

// IsMonth 判斷是否為規範月份名
func IsMonth(name string) bool {
	for _, m := range Months {
		if m == name {
			return true
		}
	}
	return false
}

// MonthlySeries 按月用量（外購電力/外購水力），鍵為規範月份名
type MonthlySeries map[string]float64

// NewMonthlySeries 以統一初值構造 12 個月的用量序列
func NewMonthlySeries(initial float64) MonthlySeries {
	s := make(MonthlySeries, len(Months))
	for _, m := range Months {
		s[m] = initial
	}
	return s
}

// Sum 全年用量合計
func (s MonthlySeries) Sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// Clone 深拷貝
func (s MonthlySeries) Clone() MonthlySeries {
	out := make(MonthlySeries, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
