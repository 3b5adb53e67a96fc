package model

import "math"

// Totals 一次計算產出的全部排放合計（單位 tCO2e）
// 永遠由完整的活動數據快照整體重算，不做增量更新
type Totals struct {
	Stationary  float64 `json:"stationary"`  // 固定源
	Mobile      float64 `json:"mobile"`      // 移動源
	Wastewater  float64 `json:"wastewater"`  // 汙水
	Suppressant float64 `json:"suppressant"` // 滅火器
	Refrigerant float64 `json:"refrigerant"` // 冷媒
	Commute     float64 `json:"commute"`     // 員工通勤
	Electricity float64 `json:"electricity"` // 外購電力
	Water       float64 `json:"water"`       // 外購水力

	Scope1 float64 `json:"scope1"` // 固定源+移動源+汙水+滅火器+冷媒
	Scope2 float64 `json:"scope2"` // 外購電力
	Scope3 float64 `json:"scope3"` // 員工通勤+外購水力
	Grand  float64 `json:"grandTotal"`
}

// ByCategory 返回各類別小計
func (t Totals) ByCategory() map[Category]float64 {
	return map[Category]float64{
		CategoryStationary:  t.Stationary,
		CategoryMobile:      t.Mobile,
		CategoryWastewater:  t.Wastewater,
		CategorySuppressant: t.Suppressant,
		CategoryRefrigerant: t.Refrigerant,
		CategoryCommute:     t.Commute,
		CategoryElectricity: t.Electricity,
		CategoryWater:       t.Water,
	}
}

// Reconciles 校驗對賬不變量：總量 = 三範疇之和 = 八類別之和
func (t Totals) Reconciles() bool {
	const eps = 1e-9
	scopeSum := t.Scope1 + t.Scope2 + t.Scope3
	catSum := t.Stationary + t.Mobile + t.Wastewater + t.Suppressant +
		t.Refrigerant + t.Commute + t.Electricity + t.Water
	return math.Abs(t.Grand-scopeSum) < eps && math.Abs(t.Grand-catSum) < eps
}
