package inventory

import "carboncampus/internal/model"

// FuelLine 快照中的固定源/移動源行項
type FuelLine struct {
	Key    string           `json:"key"`
	Record model.FuelRecord `json:"record"`
}

// HeadcountLine 快照中的汙水行項
type HeadcountLine struct {
	Key    string                `json:"key"`
	Record model.HeadcountRecord `json:"record"`
}

// SuppressantLine 快照中的滅火器行項
type SuppressantLine struct {
	Key    string                  `json:"key"`
	Record model.SuppressantRecord `json:"record"`
}

// RefrigerantLine 快照中的冷媒行項
type RefrigerantLine struct {
	Key    string                  `json:"key"`
	Record model.RefrigerantRecord `json:"record"`
}

// CommuteLine 快照中的員工通勤行項
type CommuteLine struct {
	Key    string              `json:"key"`
	Record model.CommuteRecord `json:"record"`
}

// Snapshot 活動數據的深拷貝快照
// 引擎與導出器只消費快照，保證一次計算/導出讀到的是同一份完整狀態
type Snapshot struct {
	Version string `json:"version"`
	Year    int    `json:"year"`

	Stationary  []FuelLine        `json:"stationary"`
	Mobile      []FuelLine        `json:"mobile"`
	Wastewater  []HeadcountLine   `json:"wastewater"`
	Suppressant []SuppressantLine `json:"suppressant"`
	Refrigerant []RefrigerantLine `json:"refrigerant"`
	Commute     []CommuteLine     `json:"commute"`

	Electricity model.MonthlySeries `json:"electricity"`
	Water       model.MonthlySeries `json:"water"`

	SepticInUse  bool   `json:"septicInUse"`
	WaterUtility string `json:"waterUtility"`
}

// Snapshot 生成當前狀態的深拷貝
func (s *ActivityStore) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		Version:      s.version,
		Year:         s.year,
		Electricity:  s.electricity.Clone(),
		Water:        s.water.Clone(),
		SepticInUse:  s.septicInUse,
		WaterUtility: s.waterUtility,
	}

	for _, k := range s.stationaryOrder {
		snap.Stationary = append(snap.Stationary, FuelLine{Key: k, Record: *s.stationary[k]})
	}
	for _, k := range s.mobileOrder {
		snap.Mobile = append(snap.Mobile, FuelLine{Key: k, Record: *s.mobile[k]})
	}
	for _, k := range s.wastewaterOrder {
		snap.Wastewater = append(snap.Wastewater, HeadcountLine{Key: k, Record: *s.wastewater[k]})
	}
	for _, k := range s.suppressantOrder {
		snap.Suppressant = append(snap.Suppressant, SuppressantLine{Key: k, Record: s.suppressant[k].Clone()})
	}
	for _, k := range s.refrigerantOrder {
		snap.Refrigerant = append(snap.Refrigerant, RefrigerantLine{Key: k, Record: *s.refrigerant[k]})
	}
	for _, k := range s.commuteOrder {
		snap.Commute = append(snap.Commute, CommuteLine{Key: k, Record: *s.commute[k]})
	}

	return snap
}

// FuelKeyByLabel 在固定源/移動源行項中按顯示名（或鍵名）查鍵
// 找不到返回空串（導入時未知行項靜默跳過）
func (snap *Snapshot) FuelKeyByLabel(cat model.Category, label string) string {
	var lines []FuelLine
	switch cat {
	case model.CategoryStationary:
		lines = snap.Stationary
	case model.CategoryMobile:
		lines = snap.Mobile
	default:
		return ""
	}
	for _, l := range lines {
		if l.Record.Label(l.Key) == label || l.Key == label {
			return l.Key
		}
	}
	return ""
}

// HasKey 判斷快照中某類別是否存在指定行項鍵
func (snap *Snapshot) HasKey(cat model.Category, key string) bool {
	switch cat {
	case model.CategoryStationary:
		return snap.FuelKeyByLabel(cat, key) != ""
	case model.CategoryMobile:
		return snap.FuelKeyByLabel(cat, key) != ""
	case model.CategoryWastewater:
		for _, l := range snap.Wastewater {
			if l.Key == key {
				return true
			}
		}
	case model.CategorySuppressant:
		for _, l := range snap.Suppressant {
			if l.Key == key {
				return true
			}
		}
	case model.CategoryRefrigerant:
		for _, l := range snap.Refrigerant {
			if l.Key == key {
				return true
			}
		}
	case model.CategoryCommute:
		for _, l := range snap.Commute {
			if l.Key == key {
				return true
			}
		}
	}
	return false
}
