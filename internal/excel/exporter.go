package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"carboncampus/internal/catalog"
	"carboncampus/internal/engine"
	"carboncampus/internal/inventory"
	"carboncampus/internal/model"
)

// Export 將活動數據快照序列化為多表 Excel 文件
//
// 每個類別一張表；每行的排放量列按引擎同一套公式就地重算
// （不抄外部傳入的合計），保證單表自洽。
// 汙水表僅在使用化糞池時產出，導入側以表的有無還原該開關。
func Export(snap *inventory.Snapshot, entry *catalog.Entry) (*excelize.File, error) {
	waterFactor, ok := entry.WaterFactor(snap.WaterUtility)
	if !ok {
		return nil, fmt.Errorf("%w: %s", engine.ErrUnknownUtility, snap.WaterUtility)
	}

	f := excelize.NewFile()

	first := true
	addSheet := func(name string) error {
		if first {
			first = false
			return f.SetSheetName("Sheet1", name)
		}
		_, err := f.NewSheet(name)
		return err
	}

	// 固定源
	if err := addSheet(model.CategoryStationary.SheetName()); err != nil {
		return nil, err
	}
	if err := writeFuelSheet(f, model.CategoryStationary.SheetName(), snap.Stationary); err != nil {
		return nil, err
	}

	// 移動源
	if err := addSheet(model.CategoryMobile.SheetName()); err != nil {
		return nil, err
	}
	if err := writeFuelSheet(f, model.CategoryMobile.SheetName(), snap.Mobile); err != nil {
		return nil, err
	}

	// 汙水（僅在使用化糞池時導出）
	if snap.SepticInUse {
		sheet := model.CategoryWastewater.SheetName()
		if err := addSheet(sheet); err != nil {
			return nil, err
		}
		if err := writeHeaderRow(f, sheet, colHeadLabel, colHeadCount, colCH4Factor, colEmission); err != nil {
			return nil, err
		}
		for i, l := range snap.Wastewater {
			row := i + 2
			emission := engine.WastewaterEmission(l.Record, entry.CH4GWP)
			if err := writeRow(f, sheet, row, l.Key, l.Record.Count, l.Record.Factor, emission); err != nil {
				return nil, err
			}
		}
	}

	// 滅火器
	{
		sheet := model.CategorySuppressant.SheetName()
		if err := addSheet(sheet); err != nil {
			return nil, err
		}
		if err := writeHeaderRow(f, sheet, colSuppLabel, colSuppUsage, colGWP, colFactor, colEmission); err != nil {
			return nil, err
		}
		for i, l := range snap.Suppressant {
			row := i + 2
			if err := setCell(f, sheet, "A", row, l.Key); err != nil {
				return nil, err
			}
			if err := setCell(f, sheet, "B", row, l.Record.Usage); err != nil {
				return nil, err
			}
			// GWP/係數恰有其一，空者留白
			if l.Record.GWP != nil {
				if err := setCell(f, sheet, "C", row, *l.Record.GWP); err != nil {
					return nil, err
				}
			}
			if l.Record.Factor != nil {
				if err := setCell(f, sheet, "D", row, *l.Record.Factor); err != nil {
					return nil, err
				}
			}
			if err := setCell(f, sheet, "E", row, engine.SuppressantEmission(l.Record)); err != nil {
				return nil, err
			}
		}
	}

	// 冷媒
	{
		sheet := model.CategoryRefrigerant.SheetName()
		if err := addSheet(sheet); err != nil {
			return nil, err
		}
		if err := writeHeaderRow(f, sheet, colRefLabel, colRefUsage, colGWP, colEmission); err != nil {
			return nil, err
		}
		for i, l := range snap.Refrigerant {
			row := i + 2
			emission := engine.RefrigerantEmission(l.Record)
			if err := writeRow(f, sheet, row, l.Key, l.Record.Usage, l.Record.GWP, emission); err != nil {
				return nil, err
			}
		}
	}

	// 員工通勤
	{
		sheet := model.CategoryCommute.SheetName()
		if err := addSheet(sheet); err != nil {
			return nil, err
		}
		if err := writeHeaderRow(f, sheet, colCommuteLabel, colDistance, colCommuteFactor, colEmission); err != nil {
			return nil, err
		}
		for i, l := range snap.Commute {
			row := i + 2
			emission := engine.CommuteEmission(l.Record)
			if err := writeRow(f, sheet, row, l.Key, l.Record.Distance, l.Record.Factor, emission); err != nil {
				return nil, err
			}
		}
	}

	// 外購電力
	{
		sheet := model.CategoryElectricity.SheetName()
		if err := addSheet(sheet); err != nil {
			return nil, err
		}
		if err := writeHeaderRow(f, sheet, colMonth, colElecUsage, colEmission); err != nil {
			return nil, err
		}
		for i, m := range model.Months {
			row := i + 2
			usage := snap.Electricity[m]
			emission := engine.MonthlyEmission(usage, entry.ElectricityFactor)
			if err := writeRow(f, sheet, row, m, usage, emission); err != nil {
				return nil, err
			}
		}
	}

	// 外購水力
	{
		sheet := model.CategoryWater.SheetName()
		if err := addSheet(sheet); err != nil {
			return nil, err
		}
		if err := writeHeaderRow(f, sheet, colMonth, colWaterUsage, colEmission); err != nil {
			return nil, err
		}
		for i, m := range model.Months {
			row := i + 2
			usage := snap.Water[m]
			emission := engine.MonthlyEmission(usage, waterFactor)
			if err := writeRow(f, sheet, row, m, usage, emission); err != nil {
				return nil, err
			}
		}
		// 帶外批註：所選供水單位及其係數
		if err := f.SetCellValue(sheet, cellWaterUtility, prefixWaterUtility+snap.WaterUtility); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cellWaterFactor, fmt.Sprintf("%s%v", prefixWaterFactor, waterFactor)); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Filename 導出文件名：<版本>_GHG盤查資料_<年度>.xlsx
func Filename(version string, year int) string {
	return fmt.Sprintf("%s_GHG盤查資料_%d.xlsx", version, year)
}

func writeFuelSheet(f *excelize.File, sheet string, lines []inventory.FuelLine) error {
	if err := writeHeaderRow(f, sheet, colFuelLabel, colUsage, colUnit, colFactor, colEmission); err != nil {
		return err
	}
	for i, l := range lines {
		row := i + 2
		emission := engine.FuelEmission(l.Record)
		if err := writeRow(f, sheet, row, l.Record.Label(l.Key), l.Record.Usage, l.Record.Unit, l.Record.Factor, emission); err != nil {
			return err
		}
	}
	return nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers ...interface{}) error {
	return writeRow(f, sheet, 1, headers...)
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for i, v := range values {
		col := string(rune('A' + i))
		if err := setCell(f, sheet, col, row, v); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet, col string, row int, value interface{}) error {
	return f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), value)
}
