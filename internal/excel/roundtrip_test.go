package excel

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"carboncampus/internal/catalog"
	"carboncampus/internal/inventory"
	"carboncampus/internal/model"
)

func testStore(t *testing.T, version string) (*inventory.ActivityStore, *catalog.Entry) {
	t.Helper()
	entry, err := catalog.New().Get(version)
	if err != nil {
		t.Fatalf("catalog get: %v", err)
	}
	s := inventory.NewActivityStore(version)
	s.Initialize(entry, 2025)
	return s, entry
}

func exportBytes(t *testing.T, snap *inventory.Snapshot, entry *catalog.Entry) []byte {
	t.Helper()
	f, err := Export(snap, entry)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write buffer: %v", err)
	}
	return buf.Bytes()
}

func TestRoundtrip_RestoresEdits(t *testing.T) {
	src, entry := testStore(t, "AR6")

	if err := src.Update(model.CategoryStationary, "汽油", 321); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := src.Update(model.CategoryMobile, "潤滑油_mobile", 55); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := src.Update(model.CategoryRefrigerant, "R410A", 3); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := src.SetMonthly(model.CategoryElectricity, "七月", 23456); err != nil {
		t.Fatalf("set monthly: %v", err)
	}
	src.SetWaterUtility("臺北自來水營業事業處")

	data := exportBytes(t, src.Snapshot(), entry)

	// 導入到一個全新的預設存儲
	dst, _ := testStore(t, "AR6")
	patch, err := Import(bytes.NewReader(data), dst.Snapshot(), entry)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := dst.ApplyImport(patch); err != nil {
		t.Fatalf("apply: %v", err)
	}

	snap := dst.Snapshot()
	for _, l := range snap.Stationary {
		if l.Key == "汽油" && l.Record.Usage != 321 {
			t.Fatalf("汽油 usage not restored: %v", l.Record.Usage)
		}
	}
	// 顯示名導出的移動源行項按鍵名回填
	for _, l := range snap.Mobile {
		if l.Key == "潤滑油_mobile" && l.Record.Usage != 55 {
			t.Fatalf("潤滑油_mobile usage not restored: %v", l.Record.Usage)
		}
	}
	for _, l := range snap.Refrigerant {
		if l.Key == "R410A" && l.Record.Usage != 3 {
			t.Fatalf("R410A usage not restored: %v", l.Record.Usage)
		}
	}
	if snap.Electricity["七月"] != 23456 {
		t.Fatalf("七月 electricity not restored: %v", snap.Electricity["七月"])
	}
	if snap.WaterUtility != "臺北自來水營業事業處" {
		t.Fatalf("water utility not restored: %s", snap.WaterUtility)
	}
	if !snap.SepticInUse {
		t.Fatal("septic flag not restored from sheet presence")
	}
}

func TestRoundtrip_SepticOffOmitsSheet(t *testing.T) {
	src, entry := testStore(t, "AR6")
	src.SetSepticInUse(false)

	data := exportBytes(t, src.Snapshot(), entry)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	defer f.Close()
	for _, name := range f.GetSheetList() {
		if name == model.CategoryWastewater.SheetName() {
			t.Fatal("汙水 sheet exported despite septic off")
		}
	}

	// 回導：表缺席 → 化糞池關閉
	dst, _ := testStore(t, "AR6")
	patch, err := Import(bytes.NewReader(data), dst.Snapshot(), entry)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if patch.SepticInUse {
		t.Fatal("missing 汙水 sheet should turn septic off")
	}
}

func TestExport_UnknownUtility(t *testing.T) {
	src, entry := testStore(t, "AR6")
	snap := src.Snapshot()
	snap.WaterUtility = "不存在的單位"

	if _, err := Export(snap, entry); err == nil {
		t.Fatal("expected error for unknown water utility")
	}
}

func TestImport_MissingColumn(t *testing.T) {
	_, entry := testStore(t, "AR6")

	f := excelize.NewFile()
	sheet := model.CategoryStationary.SheetName()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	// 缺少使用量列
	f.SetCellValue(sheet, "A1", "燃料類別")
	f.SetCellValue(sheet, "A2", "汽油")
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write buffer: %v", err)
	}

	dst, _ := testStore(t, "AR6")
	_, err = Import(bytes.NewReader(buf.Bytes()), dst.Snapshot(), entry)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestImport_InvalidNumber(t *testing.T) {
	_, entry := testStore(t, "AR6")

	f := excelize.NewFile()
	sheet := model.CategoryStationary.SheetName()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	f.SetCellValue(sheet, "A1", "燃料類別")
	f.SetCellValue(sheet, "B1", "使用量")
	f.SetCellValue(sheet, "A2", "汽油")
	f.SetCellValue(sheet, "B2", "不是數字")
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write buffer: %v", err)
	}

	dst, _ := testStore(t, "AR6")
	_, err = Import(bytes.NewReader(buf.Bytes()), dst.Snapshot(), entry)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestImport_UnknownRowsSkipped(t *testing.T) {
	_, entry := testStore(t, "AR6")

	f := excelize.NewFile()
	sheet := model.CategoryStationary.SheetName()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	f.SetCellValue(sheet, "A1", "燃料類別")
	f.SetCellValue(sheet, "B1", "使用量")
	f.SetCellValue(sheet, "A2", "汽油")
	f.SetCellValue(sheet, "B2", 200)
	f.SetCellValue(sheet, "A3", "未知燃料")
	f.SetCellValue(sheet, "B3", 999)
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write buffer: %v", err)
	}

	dst, _ := testStore(t, "AR6")
	patch, err := Import(bytes.NewReader(buf.Bytes()), dst.Snapshot(), entry)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if len(patch.Items) != 1 {
		t.Fatalf("unknown row should be skipped, got %d items", len(patch.Items))
	}
	if patch.Items[0].Key != "汽油" || patch.Items[0].Value != 200 {
		t.Fatalf("unexpected patch item: %+v", patch.Items[0])
	}
}

func TestFilename(t *testing.T) {
	got := Filename("AR6", 2025)
	if got != "AR6_GHG盤查資料_2025.xlsx" {
		t.Fatalf("unexpected filename: %s", got)
	}
}
