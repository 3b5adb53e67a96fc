package catalog

import "carboncampus/internal/model"

// 內建版本的預設活動數據與係數。
// AR5/AR6 的初始表目前一致（依盤查辦公室提供的基準），
// 差異版本通過係數表文件追加，見 LoadFile。

func builtinEntry(version string) *Entry {
	return &Entry{
		Version: version,

		CH4GWP:            28,
		ElectricityFactor: 0.474,
		WaterFactors: map[string]float64{
			"台灣自來水營業事業處": 0.1872,
			"臺北自來水營業事業處": 0.0666,
		},
		WaterUtilityOrder:   []string{"台灣自來水營業事業處", "臺北自來水營業事業處"},
		DefaultWaterUtility: "台灣自來水營業事業處",
		DefaultSepticInUse:  true,

		Stationary: []FuelDefault{
			{Key: "燃料油", Record: model.FuelRecord{Usage: 100, Unit: "公升/年", Factor: 0.002567}},
			{Key: "天然氣(NG)", Record: model.FuelRecord{Usage: 100, Unit: "度/年", Factor: 0.001881}},
			{Key: "液化石油氣(LPG)", Record: model.FuelRecord{Usage: 100, Unit: "公升/年", Factor: 0.001754}},
			{Key: "汽油", Record: model.FuelRecord{Usage: 100, Unit: "公升/年", Factor: 0.002271}},
			{Key: "柴油", Record: model.FuelRecord{Usage: 100, Unit: "公升/年", Factor: 0.002615}},
			{Key: "潤滑油", Record: model.FuelRecord{Usage: 100, Unit: "公升/年", Factor: 0.002956}},
		},
		Mobile: []FuelDefault{
			{Key: "車用汽油", Record: model.FuelRecord{Usage: 100, Unit: "公升/年", Factor: 0.002298}},
			{Key: "車用柴油", Record: model.FuelRecord{Usage: 100, Unit: "公升/年", Factor: 0.002722}},
			{Key: "煤油", Record: model.FuelRecord{Usage: 100, Unit: "公升/年", Factor: 0.002567}},
			{Key: "潤滑油_mobile", Record: model.FuelRecord{Usage: 100, Unit: "公升/年", Factor: 0.002956, DisplayName: "潤滑油"}},
			{Key: "液化石油氣(LPG)_mobile", Record: model.FuelRecord{Usage: 100, Unit: "公升/年", Factor: 0.001803, DisplayName: "液化石油氣(LPG)"}},
			{Key: "液化天然氣(LNG)", Record: model.FuelRecord{Usage: 100, Unit: "度/年", Factor: 0.002241}},
		},
		Wastewater: []HeadcountDefault{
			{Key: "平日日間使用學生", Record: model.HeadcountRecord{Count: 100, Factor: 0.0021}},
			{Key: "平日夜間使用學生", Record: model.HeadcountRecord{Count: 10, Factor: 0.0005}},
			{Key: "假日使用學生", Record: model.HeadcountRecord{Count: 0, Factor: 0.0}},
			{Key: "住宿人員", Record: model.HeadcountRecord{Count: 0, Factor: 0.0}},
			{Key: "平日日間使用員工", Record: model.HeadcountRecord{Count: 50, Factor: 0.0021}},
			{Key: "平日夜間使用員工", Record: model.HeadcountRecord{Count: 5, Factor: 0.0005}},
			{Key: "假日使用員工", Record: model.HeadcountRecord{Count: 0, Factor: 0.0}},
		},
		Suppressant: []SuppressantDefault{
			{Key: "二氧化碳滅火器", Record: model.NewSuppressantGWP(1, 1)},
			{Key: "FM-200", Record: model.NewSuppressantGWP(1, 3350)},
			{Key: "BC型乾粉滅火器", Record: model.NewSuppressantFactor(1, 0.0003)},
			{Key: "KBC型乾粉滅火器", Record: model.NewSuppressantFactor(1, 0.0002)},
		},
		Refrigerant: []RefrigerantDefault{
			{Key: "HFC-23/R-23", Record: model.RefrigerantRecord{Usage: 0.5, GWP: 12400}},
			{Key: "HFC-32/R-32", Record: model.RefrigerantRecord{Usage: 0.1, GWP: 677}},
			{Key: "HFC-41", Record: model.RefrigerantRecord{Usage: 0, GWP: 116}},
			{Key: "HFC-134", Record: model.RefrigerantRecord{Usage: 0, GWP: 1120}},
			{Key: "HFC-134a/R-134a", Record: model.RefrigerantRecord{Usage: 0, GWP: 1300}},
			{Key: "HFC-143", Record: model.RefrigerantRecord{Usage: 0, GWP: 328}},
			{Key: "HFC-143a/R-143a", Record: model.RefrigerantRecord{Usage: 0, GWP: 4800}},
			{Key: "HFC-152", Record: model.RefrigerantRecord{Usage: 0, GWP: 16}},
			{Key: "HFC-152a/R-152a", Record: model.RefrigerantRecord{Usage: 0, GWP: 138}},
			{Key: "R401a", Record: model.RefrigerantRecord{Usage: 0, GWP: 1130}},
			{Key: "R401B", Record: model.RefrigerantRecord{Usage: 0, GWP: 1236}},
			{Key: "R404A", Record: model.RefrigerantRecord{Usage: 0.5, GWP: 3943}},
			{Key: "R407A", Record: model.RefrigerantRecord{Usage: 0, GWP: 1923}},
			{Key: "R407B", Record: model.RefrigerantRecord{Usage: 0, GWP: 2547}},
			{Key: "R407C", Record: model.RefrigerantRecord{Usage: 0, GWP: 1624}},
			{Key: "R408A", Record: model.RefrigerantRecord{Usage: 0, GWP: 3257}},
			{Key: "R410A", Record: model.RefrigerantRecord{Usage: 0, GWP: 1924}},
			{Key: "R413A", Record: model.RefrigerantRecord{Usage: 0, GWP: 1945}},
			{Key: "R417A", Record: model.RefrigerantRecord{Usage: 0, GWP: 2127}},
			{Key: "R507A", Record: model.RefrigerantRecord{Usage: 0, GWP: 3985}},
		},
		Commute: []CommuteDefault{
			{Key: "汽車-汽油", Record: model.CommuteRecord{Distance: 100, Factor: 0.104}},
			{Key: "汽車-電動車", Record: model.CommuteRecord{Distance: 100, Factor: 0.04}},
			{Key: "機車-一般機車", Record: model.CommuteRecord{Distance: 100, Factor: 0.079}},
			{Key: "機車-電動機車", Record: model.CommuteRecord{Distance: 100, Factor: 0.017}},
			{Key: "公車/客運", Record: model.CommuteRecord{Distance: 100, Factor: 0.078}},
			{Key: "捷運", Record: model.CommuteRecord{Distance: 100, Factor: 0.04}},
			{Key: "火車", Record: model.CommuteRecord{Distance: 0, Factor: 0.04}},
			{Key: "高鐵", Record: model.CommuteRecord{Distance: 0, Factor: 0.028}},
		},

		ElectricityDefault: 10000,
		WaterDefault:       100,
	}
}
