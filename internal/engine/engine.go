package engine

import (
	"errors"
	"fmt"

	"carboncampus/internal/catalog"
	"carboncampus/internal/inventory"
	"carboncampus/internal/model"
)

// ErrUnknownUtility 供水單位不在係數表的水係數表中
var ErrUnknownUtility = errors.New("unknown water utility")

// Compute 由活動數據快照與係數表計算全部排放合計
// 純函數：不讀寫任何外部狀態；對格式良好的快照唯一的失敗
// 是供水單位查不到係數
//
// 單位約定沿用係數表：固定源/移動源/汙水的係數已折算為 tCO2e/使用單位，
// 直接相乘即為公噸；滅火器 GWP、冷媒 GWP、通勤與電水係數以 kg 計，除以 1000
func Compute(snap *inventory.Snapshot, entry *catalog.Entry) (model.Totals, error) {
	var t model.Totals

	for _, l := range snap.Stationary {
		t.Stationary += FuelEmission(l.Record)
	}
	for _, l := range snap.Mobile {
		t.Mobile += FuelEmission(l.Record)
	}
	if snap.SepticInUse {
		for _, l := range snap.Wastewater {
			t.Wastewater += WastewaterEmission(l.Record, entry.CH4GWP)
		}
	}
	for _, l := range snap.Suppressant {
		t.Suppressant += SuppressantEmission(l.Record)
	}
	for _, l := range snap.Refrigerant {
		t.Refrigerant += RefrigerantEmission(l.Record)
	}
	for _, l := range snap.Commute {
		t.Commute += CommuteEmission(l.Record)
	}

	t.Electricity = MonthlyEmission(snap.Electricity.Sum(), entry.ElectricityFactor)

	waterFactor, ok := entry.WaterFactor(snap.WaterUtility)
	if !ok {
		return model.Totals{}, fmt.Errorf("%w: %s", ErrUnknownUtility, snap.WaterUtility)
	}
	t.Water = MonthlyEmission(snap.Water.Sum(), waterFactor)

	t.Scope1 = t.Stationary + t.Mobile + t.Wastewater + t.Suppressant + t.Refrigerant
	t.Scope2 = t.Electricity
	t.Scope3 = t.Commute + t.Water
	t.Grand = t.Scope1 + t.Scope2 + t.Scope3

	return t, nil
}

// FuelEmission 固定源/移動源單行排放量 (tCO2e)
func FuelEmission(r model.FuelRecord) float64 {
	return r.Usage * r.Factor
}

// WastewaterEmission 汙水單行排放量 (tCO2e)
func WastewaterEmission(r model.HeadcountRecord, ch4GWP float64) float64 {
	return r.Count * r.Factor * ch4GWP
}

// SuppressantEmission 滅火器單行排放量 (tCO2e)
// GWP 與係數皆缺失時按 0 計（寬鬆回退，不報錯）
func SuppressantEmission(r model.SuppressantRecord) float64 {
	if r.GWP != nil {
		return r.Usage * *r.GWP / 1000
	}
	if r.Factor != nil {
		return r.Usage * *r.Factor
	}
	return 0
}

// RefrigerantEmission 冷媒單行排放量 (tCO2e)
func RefrigerantEmission(r model.RefrigerantRecord) float64 {
	return r.Usage * r.GWP / 1000
}

// CommuteEmission 員工通勤單行排放量 (tCO2e)
func CommuteEmission(r model.CommuteRecord) float64 {
	return r.Distance * r.Factor / 1000
}

// MonthlyEmission 按月類別的合計排放量 (tCO2e)：全年用量 × 係數(kg) / 1000
func MonthlyEmission(totalUsage, factor float64) float64 {
	return totalUsage * factor / 1000
}
