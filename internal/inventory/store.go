package inventory

import (
	"errors"
	"fmt"
	"sync"

	"carboncampus/internal/catalog"
	"carboncampus/internal/model"
)

// ErrUnknownKey 編輯目標不存在：未知類別、未知行項或未知月份
var ErrUnknownKey = errors.New("unknown line item key")

// ActivityStore 單一方法學版本的活動數據存儲
// 行項集合由係數表固定，運行期只改數值，不增刪行項
type ActivityStore struct {
	mu sync.RWMutex

	version     string
	year        int
	initialized bool

	stationary       map[string]*model.FuelRecord
	stationaryOrder  []string
	mobile           map[string]*model.FuelRecord
	mobileOrder      []string
	wastewater       map[string]*model.HeadcountRecord
	wastewaterOrder  []string
	suppressant      map[string]*model.SuppressantRecord
	suppressantOrder []string
	refrigerant      map[string]*model.RefrigerantRecord
	refrigerantOrder []string
	commute          map[string]*model.CommuteRecord
	commuteOrder     []string

	electricity model.MonthlySeries
	water       model.MonthlySeries

	septicInUse  bool
	waterUtility string
}

// NewActivityStore 創建指定版本的空存儲（使用前需 Initialize）
func NewActivityStore(version string) *ActivityStore {
	return &ActivityStore{
		version:     version,
		stationary:  make(map[string]*model.FuelRecord),
		mobile:      make(map[string]*model.FuelRecord),
		wastewater:  make(map[string]*model.HeadcountRecord),
		suppressant: make(map[string]*model.SuppressantRecord),
		refrigerant: make(map[string]*model.RefrigerantRecord),
		commute:     make(map[string]*model.CommuteRecord),
		electricity: model.MonthlySeries{},
		water:       model.MonthlySeries{},
	}
}

// Version 返回綁定的方法學版本
func (s *ActivityStore) Version() string {
	return s.version
}

// Initialize 按係數表補齊缺失的行項與預設設置
// 冪等：已存在的行項與已設置的標量一律不覆蓋，重複調用無額外效果
func (s *ActivityStore) Initialize(entry *catalog.Entry, year int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range entry.Stationary {
		if _, ok := s.stationary[d.Key]; !ok {
			rec := d.Record
			s.stationary[d.Key] = &rec
			s.stationaryOrder = append(s.stationaryOrder, d.Key)
		}
	}
	for _, d := range entry.Mobile {
		if _, ok := s.mobile[d.Key]; !ok {
			rec := d.Record
			s.mobile[d.Key] = &rec
			s.mobileOrder = append(s.mobileOrder, d.Key)
		}
	}
	for _, d := range entry.Wastewater {
		if _, ok := s.wastewater[d.Key]; !ok {
			rec := d.Record
			s.wastewater[d.Key] = &rec
			s.wastewaterOrder = append(s.wastewaterOrder, d.Key)
		}
	}
	for _, d := range entry.Suppressant {
		if _, ok := s.suppressant[d.Key]; !ok {
			rec := d.Record.Clone()
			s.suppressant[d.Key] = &rec
			s.suppressantOrder = append(s.suppressantOrder, d.Key)
		}
	}
	for _, d := range entry.Refrigerant {
		if _, ok := s.refrigerant[d.Key]; !ok {
			rec := d.Record
			s.refrigerant[d.Key] = &rec
			s.refrigerantOrder = append(s.refrigerantOrder, d.Key)
		}
	}
	for _, d := range entry.Commute {
		if _, ok := s.commute[d.Key]; !ok {
			rec := d.Record
			s.commute[d.Key] = &rec
			s.commuteOrder = append(s.commuteOrder, d.Key)
		}
	}

	for _, m := range model.Months {
		if _, ok := s.electricity[m]; !ok {
			s.electricity[m] = entry.ElectricityDefault
		}
		if _, ok := s.water[m]; !ok {
			s.water[m] = entry.WaterDefault
		}
	}

	if !s.initialized {
		s.septicInUse = entry.DefaultSepticInUse
		s.waterUtility = entry.DefaultWaterUtility
		s.year = year
		s.initialized = true
	}
}

// Update 更新某行項的可編輯數值（使用量/人數/填充量/距離）
// 係數與 GWP 歸係數表所有，不提供修改入口
func (s *ActivityStore) Update(cat model.Category, key string, value float64) error {
	if err := model.ValidateAmount(value); err != nil {
		return fmt.Errorf("%w: %s/%s = %v", err, cat, key, value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(cat, key, value)
}

func (s *ActivityStore) updateLocked(cat model.Category, key string, value float64) error {
	switch cat {
	case model.CategoryStationary:
		if rec, ok := s.stationary[key]; ok {
			rec.Usage = value
			return nil
		}
	case model.CategoryMobile:
		if rec, ok := s.mobile[key]; ok {
			rec.Usage = value
			return nil
		}
	case model.CategoryWastewater:
		if rec, ok := s.wastewater[key]; ok {
			rec.Count = value
			return nil
		}
	case model.CategorySuppressant:
		if rec, ok := s.suppressant[key]; ok {
			rec.Usage = value
			return nil
		}
	case model.CategoryRefrigerant:
		if rec, ok := s.refrigerant[key]; ok {
			rec.Usage = value
			return nil
		}
	case model.CategoryCommute:
		if rec, ok := s.commute[key]; ok {
			rec.Distance = value
			return nil
		}
	}
	return fmt.Errorf("%w: %s/%s", ErrUnknownKey, cat, key)
}

// SetMonthly 更新外購電力/外購水力的某月用量
func (s *ActivityStore) SetMonthly(cat model.Category, month string, value float64) error {
	if err := model.ValidateAmount(value); err != nil {
		return fmt.Errorf("%w: %s/%s = %v", err, cat, month, value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setMonthlyLocked(cat, month, value)
}

func (s *ActivityStore) setMonthlyLocked(cat model.Category, month string, value float64) error {
	if !model.IsMonth(month) {
		return fmt.Errorf("%w: 非法月份 %s", ErrUnknownKey, month)
	}
	switch cat {
	case model.CategoryElectricity:
		s.electricity[month] = value
		return nil
	case model.CategoryWater:
		s.water[month] = value
		return nil
	}
	return fmt.Errorf("%w: %s 不是按月類別", ErrUnknownKey, cat)
}

// SetSepticInUse 設置是否使用化糞池（汙水排放僅在使用時計入）
func (s *ActivityStore) SetSepticInUse(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.septicInUse = v
}

// SetWaterUtility 設置供水單位（係數在計算時查表）
func (s *ActivityStore) SetWaterUtility(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waterUtility = name
}

// SetYear 設置盤查年度
func (s *ActivityStore) SetYear(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.year = year
}
