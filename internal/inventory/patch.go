package inventory

import (
	"fmt"

	"carboncampus/internal/model"
)

// ItemPatch 一條行項數值更新
type ItemPatch struct {
	Category model.Category `json:"category"`
	Key      string         `json:"key"`
	Value    float64        `json:"value"`
}

// MonthPatch 一條按月用量更新
type MonthPatch struct {
	Category model.Category `json:"category"`
	Month    string         `json:"month"`
	Value    float64        `json:"value"`
}

// ImportPatch 一次導入暫存的全部更新
// 導入器先完整解析並校驗整個文件，再整體應用；任何一步失敗都不落任何更新
type ImportPatch struct {
	Items   []ItemPatch  `json:"items"`
	Monthly []MonthPatch `json:"monthly"`

	SepticInUse bool `json:"septicInUse"`
	// WaterUtility 非空時更新供水單位（來自水力表的批註，僅在係數表認得時設置）
	WaterUtility string `json:"waterUtility,omitempty"`

	SheetsSeen []string `json:"sheetsSeen"`
}

// ApplyImport 原子應用一次導入
// 先在鎖內校驗全部更新（鍵存在、數值合法），再統一寫入；
// 校驗失敗時存儲保持導入前的狀態不變
func (s *ActivityStore) ApplyImport(p *ImportPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range p.Items {
		if err := model.ValidateAmount(it.Value); err != nil {
			return fmt.Errorf("%w: %s/%s = %v", err, it.Category, it.Key, it.Value)
		}
		if !s.hasKeyLocked(it.Category, it.Key) {
			return fmt.Errorf("%w: %s/%s", ErrUnknownKey, it.Category, it.Key)
		}
	}
	for _, mp := range p.Monthly {
		if err := model.ValidateAmount(mp.Value); err != nil {
			return fmt.Errorf("%w: %s/%s = %v", err, mp.Category, mp.Month, mp.Value)
		}
		if !model.IsMonth(mp.Month) {
			return fmt.Errorf("%w: 非法月份 %s", ErrUnknownKey, mp.Month)
		}
		if mp.Category != model.CategoryElectricity && mp.Category != model.CategoryWater {
			return fmt.Errorf("%w: %s 不是按月類別", ErrUnknownKey, mp.Category)
		}
	}

	for _, it := range p.Items {
		if err := s.updateLocked(it.Category, it.Key, it.Value); err != nil {
			return err
		}
	}
	for _, mp := range p.Monthly {
		if err := s.setMonthlyLocked(mp.Category, mp.Month, mp.Value); err != nil {
			return err
		}
	}

	s.septicInUse = p.SepticInUse
	if p.WaterUtility != "" {
		s.waterUtility = p.WaterUtility
	}

	return nil
}

func (s *ActivityStore) hasKeyLocked(cat model.Category, key string) bool {
	switch cat {
	case model.CategoryStationary:
		_, ok := s.stationary[key]
		return ok
	case model.CategoryMobile:
		_, ok := s.mobile[key]
		return ok
	case model.CategoryWastewater:
		_, ok := s.wastewater[key]
		return ok
	case model.CategorySuppressant:
		_, ok := s.suppressant[key]
		return ok
	case model.CategoryRefrigerant:
		_, ok := s.refrigerant[key]
		return ok
	case model.CategoryCommute:
		_, ok := s.commute[key]
		return ok
	}
	return false
}
