package model

import (
	"errors"
	"math"
)

// ErrValidation 數值校驗錯誤：非數值、NaN/Inf 或負數
var ErrValidation = errors.New("invalid numeric value")

// ValidateAmount 校驗活動數據數值：必須為有限且非負的數
// 盤查中的物理量（使用量、距離、人數、度數）不存在合法的負值場景
func ValidateAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrValidation
	}
	if v < 0 {
		return ErrValidation
	}
	return nil
}

// FuelRecord 係數型活動記錄（固定源/移動源）
// 排放量 = 使用量 × 排放係數，係數單位已折算為 tCO2e/使用單位
type FuelRecord struct {
	Usage       float64 `json:"usage"`                 // 使用量
	Unit        string  `json:"unit"`                  // 單位
	Factor      float64 `json:"factor"`                // 排放係數
	DisplayName string  `json:"displayName,omitempty"` // 顯示名（僅當與鍵不同時設置，如移動源潤滑油）
}

// Label 返回顯示名，未設置時退回鍵名
func (r *FuelRecord) Label(key string) string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return key
}

// HeadcountRecord 汙水人員記錄
// 排放量 = 人數 × 排放係數(CH4) × CH4 GWP，僅在使用化糞池時計入
type HeadcountRecord struct {
	Count  float64 `json:"count"`  // 人數
	Factor float64 `json:"factor"` // 排放係數(CH4)
}

// SuppressantRecord 滅火器記錄
// GWP 與排放係數二者恰有其一非空：有 GWP 時排放量 = 使用量 × GWP / 1000，
// 否則排放量 = 使用量 × 係數；二者皆空視為 0（寬鬆回退）
type SuppressantRecord struct {
	Usage  float64  `json:"usage"`  // 每年填充/使用量(公斤/年)
	GWP    *float64 `json:"gwp"`    // GWP係數
	Factor *float64 `json:"factor"` // 排放係數
}

// NewSuppressantGWP 構造 GWP 型滅火器記錄
func NewSuppressantGWP(usage, gwp float64) SuppressantRecord {
	return SuppressantRecord{Usage: usage, GWP: &gwp}
}

// NewSuppressantFactor 構造係數型滅火器記錄
func NewSuppressantFactor(usage, factor float64) SuppressantRecord {
	return SuppressantRecord{Usage: usage, Factor: &factor}
}

// Clone 深拷貝（指針字段獨立）
func (r SuppressantRecord) Clone() SuppressantRecord {
	out := SuppressantRecord{Usage: r.Usage}
	if r.GWP != nil {
		v := *r.GWP
		out.GWP = &v
	}
	if r.Factor != nil {
		v := *r.Factor
		out.Factor = &v
	}
	return out
}

// RefrigerantRecord 冷媒記錄
// 排放量 = 每年填充量 × GWP / 1000
type RefrigerantRecord struct {
	Usage float64 `json:"usage"` // 每年填充量(公斤/年)
	GWP   float64 `json:"gwp"`   // GWP係數
}

// CommuteRecord 員工通勤記錄
// 排放量 = 總通勤距離 × 排放係數 / 1000
type CommuteRecord struct {
	Distance float64 `json:"distance"` // 總通勤距離(公里/年)
	Factor   float64 `json:"factor"`   // 排放係數(KgCO2e/pkm)
}
