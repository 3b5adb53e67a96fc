package catalog

import "carboncampus/internal/model"

// FuelDefault 固定源/移動源預設行項
type FuelDefault struct {
	Key    string
	Record model.FuelRecord
}

// HeadcountDefault 汙水預設行項
type HeadcountDefault struct {
	Key    string
	Record model.HeadcountRecord
}

// SuppressantDefault 滅火器預設行項
type SuppressantDefault struct {
	Key    string
	Record model.SuppressantRecord
}

// RefrigerantDefault 冷媒預設行項
type RefrigerantDefault struct {
	Key    string
	Record model.RefrigerantRecord
}

// CommuteDefault 員工通勤預設行項
type CommuteDefault struct {
	Key    string
	Record model.CommuteRecord
}

// Entry 一個方法學版本的完整係數表
// 純數據，進程啟動時構造一次，運行期不可變；
// 切換版本即整體換用另一個 Entry，引擎不需要任何改動
type Entry struct {
	Version string // 版本標識，如 AR5/AR6

	CH4GWP            float64            // 汙水甲烷換算用 GWP
	ElectricityFactor float64            // 電力排放係數 (kgCO2e/度)
	WaterFactors      map[string]float64 // 供水單位 → 水排放係數 (kgCO2e/度)
	WaterUtilityOrder []string           // 供水單位顯示順序

	DefaultWaterUtility string // 預設供水單位
	DefaultSepticInUse  bool   // 預設是否使用化糞池

	Stationary  []FuelDefault
	Mobile      []FuelDefault
	Wastewater  []HeadcountDefault
	Suppressant []SuppressantDefault
	Refrigerant []RefrigerantDefault
	Commute     []CommuteDefault

	ElectricityDefault float64 // 每月用電預設值(度)
	WaterDefault       float64 // 每月用水預設值(度)
}

// WaterFactor 查供水單位的排放係數
func (e *Entry) WaterFactor(utility string) (float64, bool) {
	f, ok := e.WaterFactors[utility]
	return f, ok
}

// WaterUtilities 按顯示順序返回供水單位列表
func (e *Entry) WaterUtilities() []string {
	out := make([]string, len(e.WaterUtilityOrder))
	copy(out, e.WaterUtilityOrder)
	return out
}
