package catalog

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"carboncampus/internal/model"
)

// 係數表文件：TOML 格式，允許在不改代碼的情況下追加或替換方法學版本。
// 每個 [[version]] 可以從既有版本出發（base）只覆蓋標量係數，
// 也可以給出完整的行項清單整體替換對應類別。

type fileDoc struct {
	Versions []fileVersion `toml:"version"`
}

type fileVersion struct {
	ID   string `toml:"id"`
	Base string `toml:"base"`

	CH4GWP              *float64 `toml:"ch4_gwp"`
	ElectricityFactor   *float64 `toml:"electricity_factor"`
	DefaultWaterUtility *string  `toml:"default_water_utility"`
	SepticDefault       *bool    `toml:"septic_default"`

	WaterFactors []fileWaterFactor `toml:"water_factor"`

	Stationary  []fileFuel        `toml:"stationary"`
	Mobile      []fileFuel        `toml:"mobile"`
	Wastewater  []fileHeadcount   `toml:"wastewater"`
	Suppressant []fileSuppressant `toml:"suppressant"`
	Refrigerant []fileRefrigerant `toml:"refrigerant"`
	Commute     []fileCommute     `toml:"commute"`
}

type fileWaterFactor struct {
	Name   string  `toml:"name"`
	Factor float64 `toml:"factor"`
}

type fileFuel struct {
	Key         string  `toml:"key"`
	Usage       float64 `toml:"usage"`
	Unit        string  `toml:"unit"`
	Factor      float64 `toml:"factor"`
	DisplayName string  `toml:"display_name"`
}

type fileHeadcount struct {
	Key    string  `toml:"key"`
	Count  float64 `toml:"count"`
	Factor float64 `toml:"factor"`
}

type fileSuppressant struct {
	Key    string   `toml:"key"`
	Usage  float64  `toml:"usage"`
	GWP    *float64 `toml:"gwp"`
	Factor *float64 `toml:"factor"`
}

type fileRefrigerant struct {
	Key   string  `toml:"key"`
	Usage float64 `toml:"usage"`
	GWP   float64 `toml:"gwp"`
}

type fileCommute struct {
	Key      string  `toml:"key"`
	Distance float64 `toml:"distance"`
	Factor   float64 `toml:"factor"`
}

// LoadFile 從 TOML 係數表文件追加版本
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("讀取係數表文件失敗: %w", err)
	}

	var doc fileDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("解析係數表文件失敗: %w", err)
	}

	for _, fv := range doc.Versions {
		if fv.ID == "" {
			return fmt.Errorf("係數表文件中存在缺少 id 的版本定義")
		}
		entry, err := c.buildEntry(fv)
		if err != nil {
			return err
		}
		c.Register(entry)
	}

	return nil
}

func (c *Catalog) buildEntry(fv fileVersion) (*Entry, error) {
	var entry *Entry
	if fv.Base != "" {
		base, err := c.Get(fv.Base)
		if err != nil {
			return nil, fmt.Errorf("版本 %s 的 base 無效: %w", fv.ID, err)
		}
		entry = cloneEntry(base)
	} else {
		// 無 base 時從內建預設表出發，保證行項集合完整
		entry = builtinEntry(fv.ID)
	}
	entry.Version = fv.ID

	if fv.CH4GWP != nil {
		entry.CH4GWP = *fv.CH4GWP
	}
	if fv.ElectricityFactor != nil {
		entry.ElectricityFactor = *fv.ElectricityFactor
	}
	if fv.DefaultWaterUtility != nil {
		entry.DefaultWaterUtility = *fv.DefaultWaterUtility
	}
	if fv.SepticDefault != nil {
		entry.DefaultSepticInUse = *fv.SepticDefault
	}

	if len(fv.WaterFactors) > 0 {
		entry.WaterFactors = make(map[string]float64, len(fv.WaterFactors))
		entry.WaterUtilityOrder = entry.WaterUtilityOrder[:0]
		for _, wf := range fv.WaterFactors {
			entry.WaterFactors[wf.Name] = wf.Factor
			entry.WaterUtilityOrder = append(entry.WaterUtilityOrder, wf.Name)
		}
		if _, ok := entry.WaterFactors[entry.DefaultWaterUtility]; !ok && len(fv.WaterFactors) > 0 {
			entry.DefaultWaterUtility = fv.WaterFactors[0].Name
		}
	}

	if len(fv.Stationary) > 0 {
		entry.Stationary = toFuelDefaults(fv.Stationary)
	}
	if len(fv.Mobile) > 0 {
		entry.Mobile = toFuelDefaults(fv.Mobile)
	}
	if len(fv.Wastewater) > 0 {
		items := make([]HeadcountDefault, 0, len(fv.Wastewater))
		for _, it := range fv.Wastewater {
			items = append(items, HeadcountDefault{Key: it.Key, Record: model.HeadcountRecord{Count: it.Count, Factor: it.Factor}})
		}
		entry.Wastewater = items
	}
	if len(fv.Suppressant) > 0 {
		items := make([]SuppressantDefault, 0, len(fv.Suppressant))
		for _, it := range fv.Suppressant {
			if (it.GWP == nil) == (it.Factor == nil) {
				return nil, fmt.Errorf("版本 %s 滅火器行項 %s 必須恰好設置 gwp 或 factor 之一", fv.ID, it.Key)
			}
			rec := model.SuppressantRecord{Usage: it.Usage, GWP: it.GWP, Factor: it.Factor}
			items = append(items, SuppressantDefault{Key: it.Key, Record: rec.Clone()})
		}
		entry.Suppressant = items
	}
	if len(fv.Refrigerant) > 0 {
		items := make([]RefrigerantDefault, 0, len(fv.Refrigerant))
		for _, it := range fv.Refrigerant {
			items = append(items, RefrigerantDefault{Key: it.Key, Record: model.RefrigerantRecord{Usage: it.Usage, GWP: it.GWP}})
		}
		entry.Refrigerant = items
	}
	if len(fv.Commute) > 0 {
		items := make([]CommuteDefault, 0, len(fv.Commute))
		for _, it := range fv.Commute {
			items = append(items, CommuteDefault{Key: it.Key, Record: model.CommuteRecord{Distance: it.Distance, Factor: it.Factor}})
		}
		entry.Commute = items
	}

	return entry, nil
}

func toFuelDefaults(items []fileFuel) []FuelDefault {
	out := make([]FuelDefault, 0, len(items))
	for _, it := range items {
		out = append(out, FuelDefault{
			Key: it.Key,
			Record: model.FuelRecord{
				Usage:       it.Usage,
				Unit:        it.Unit,
				Factor:      it.Factor,
				DisplayName: it.DisplayName,
			},
		})
	}
	return out
}

func cloneEntry(e *Entry) *Entry {
	out := &Entry{
		Version:             e.Version,
		CH4GWP:              e.CH4GWP,
		ElectricityFactor:   e.ElectricityFactor,
		DefaultWaterUtility: e.DefaultWaterUtility,
		DefaultSepticInUse:  e.DefaultSepticInUse,
		ElectricityDefault:  e.ElectricityDefault,
		WaterDefault:        e.WaterDefault,
	}

	out.WaterFactors = make(map[string]float64, len(e.WaterFactors))
	for k, v := range e.WaterFactors {
		out.WaterFactors[k] = v
	}
	out.WaterUtilityOrder = append([]string(nil), e.WaterUtilityOrder...)

	out.Stationary = append([]FuelDefault(nil), e.Stationary...)
	out.Mobile = append([]FuelDefault(nil), e.Mobile...)
	out.Wastewater = append([]HeadcountDefault(nil), e.Wastewater...)
	out.Refrigerant = append([]RefrigerantDefault(nil), e.Refrigerant...)
	out.Commute = append([]CommuteDefault(nil), e.Commute...)

	out.Suppressant = make([]SuppressantDefault, 0, len(e.Suppressant))
	for _, it := range e.Suppressant {
		out.Suppressant = append(out.Suppressant, SuppressantDefault{Key: it.Key, Record: it.Record.Clone()})
	}

	return out
}
