package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"carboncampus/internal/catalog"
	"carboncampus/internal/inventory"
	"carboncampus/internal/model"
)

// ParseError 導入文件格式錯誤：容器不可讀，或已識別表缺少必需列/含非法數值
// 解析階段報出此錯誤時，存儲尚未發生任何變更
type ParseError struct {
	Sheet string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("導入文件解析失敗: %s", e.Msg)
	}
	return fmt.Sprintf("導入文件解析失敗 [%s]: %s", e.Sheet, e.Msg)
}

// Import 解析導入文件，產出待應用的更新集
//
// 只認導出契約中的表名；未識別的表與未識別的行項標籤靜默跳過
// （向前/向後兼容）。已識別的表缺少必需列、或數值列含非數值/負值，
// 整個文件判為格式錯誤，不產出任何更新。
// 行項只回填使用量/人數/距離/度數；係數與 GWP 一律以係數表為準。
// 汙水表缺席視為未使用化糞池。
func Import(r io.Reader, snap *inventory.Snapshot, entry *catalog.Entry) (*inventory.ImportPatch, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Msg: fmt.Sprintf("無法開啟工作簿: %v", err)}
	}
	defer f.Close()

	patch := &inventory.ImportPatch{}
	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}

	// 固定源 / 移動源
	for _, cat := range []model.Category{model.CategoryStationary, model.CategoryMobile} {
		sheet := cat.SheetName()
		if !present[sheet] {
			continue
		}
		patch.SheetsSeen = append(patch.SheetsSeen, sheet)
		if err := importLabelSheet(f, sheet, colFuelLabel, colUsage, func(label string, value float64) {
			if key := snap.FuelKeyByLabel(cat, label); key != "" {
				patch.Items = append(patch.Items, inventory.ItemPatch{Category: cat, Key: key, Value: value})
			}
		}); err != nil {
			return nil, err
		}
	}

	// 汙水：表的有無即化糞池開關
	{
		sheet := model.CategoryWastewater.SheetName()
		patch.SepticInUse = present[sheet]
		if present[sheet] {
			patch.SheetsSeen = append(patch.SheetsSeen, sheet)
			if err := importLabelSheet(f, sheet, colHeadLabel, colHeadCount, func(label string, value float64) {
				if snap.HasKey(model.CategoryWastewater, label) {
					patch.Items = append(patch.Items, inventory.ItemPatch{Category: model.CategoryWastewater, Key: label, Value: value})
				}
			}); err != nil {
				return nil, err
			}
		}
	}

	// 滅火器
	if sheet := model.CategorySuppressant.SheetName(); present[sheet] {
		patch.SheetsSeen = append(patch.SheetsSeen, sheet)
		if err := importLabelSheet(f, sheet, colSuppLabel, colSuppUsage, func(label string, value float64) {
			if snap.HasKey(model.CategorySuppressant, label) {
				patch.Items = append(patch.Items, inventory.ItemPatch{Category: model.CategorySuppressant, Key: label, Value: value})
			}
		}); err != nil {
			return nil, err
		}
	}

	// 冷媒
	if sheet := model.CategoryRefrigerant.SheetName(); present[sheet] {
		patch.SheetsSeen = append(patch.SheetsSeen, sheet)
		if err := importLabelSheet(f, sheet, colRefLabel, colRefUsage, func(label string, value float64) {
			if snap.HasKey(model.CategoryRefrigerant, label) {
				patch.Items = append(patch.Items, inventory.ItemPatch{Category: model.CategoryRefrigerant, Key: label, Value: value})
			}
		}); err != nil {
			return nil, err
		}
	}

	// 員工通勤
	if sheet := model.CategoryCommute.SheetName(); present[sheet] {
		patch.SheetsSeen = append(patch.SheetsSeen, sheet)
		if err := importLabelSheet(f, sheet, colCommuteLabel, colDistance, func(label string, value float64) {
			if snap.HasKey(model.CategoryCommute, label) {
				patch.Items = append(patch.Items, inventory.ItemPatch{Category: model.CategoryCommute, Key: label, Value: value})
			}
		}); err != nil {
			return nil, err
		}
	}

	// 外購電力 / 外購水力
	monthly := []struct {
		cat      model.Category
		usageCol string
	}{
		{model.CategoryElectricity, colElecUsage},
		{model.CategoryWater, colWaterUsage},
	}
	for _, m := range monthly {
		sheet := m.cat.SheetName()
		if !present[sheet] {
			continue
		}
		patch.SheetsSeen = append(patch.SheetsSeen, sheet)
		if err := importLabelSheet(f, sheet, colMonth, m.usageCol, func(label string, value float64) {
			if model.IsMonth(label) {
				patch.Monthly = append(patch.Monthly, inventory.MonthPatch{Category: m.cat, Month: label, Value: value})
			}
		}); err != nil {
			return nil, err
		}
	}

	// 水力表批註：供水單位在係數表中認得時一併還原，否則跳過
	if sheet := model.CategoryWater.SheetName(); present[sheet] {
		if raw, err := f.GetCellValue(sheet, cellWaterUtility); err == nil {
			name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), strings.TrimSpace(prefixWaterUtility)))
			if _, ok := entry.WaterFactor(name); ok {
				patch.WaterUtility = name
			}
		}
	}

	return patch, nil
}

// importLabelSheet 解析"標籤列 + 數值列"形制的表
// 標籤為空的行跳過；數值為空的行跳過；數值非法則整檔報錯
func importLabelSheet(f *excelize.File, sheet, labelCol, valueCol string, emit func(label string, value float64)) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return &ParseError{Sheet: sheet, Msg: fmt.Sprintf("讀取失敗: %v", err)}
	}
	if len(rows) == 0 {
		return &ParseError{Sheet: sheet, Msg: "缺少表頭行"}
	}

	header := rows[0]
	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}

	labelIdx, ok := colIndex[labelCol]
	if !ok {
		return &ParseError{Sheet: sheet, Msg: fmt.Sprintf("缺少必需列 %s", labelCol)}
	}
	valueIdx, ok := colIndex[valueCol]
	if !ok {
		return &ParseError{Sheet: sheet, Msg: fmt.Sprintf("缺少必需列 %s", valueCol)}
	}

	for i, row := range rows[1:] {
		label := cellAt(row, labelIdx)
		if label == "" {
			continue
		}
		raw := cellAt(row, valueIdx)
		if raw == "" {
			continue
		}
		value, err := parseAmount(raw)
		if err != nil {
			return &ParseError{Sheet: sheet, Msg: fmt.Sprintf("第 %d 行 %s 非法: %q", i+2, valueCol, raw)}
		}
		emit(label, value)
	}

	return nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseAmount 解析數值單元格：允許千分位分隔符，拒絕非數值與負數
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if err := model.ValidateAmount(v); err != nil {
		return 0, err
	}
	return v, nil
}
