package excel

// 導出/導入共用的表頭契約。
// 列名與工作表名即為導出文件與再導入之間的線格式，保持穩定以保證往返兼容。

const (
	colEmission = "排放量(tCO2e)"

	colFuelLabel = "燃料類別"
	colUsage     = "使用量"
	colUnit      = "單位"
	colFactor    = "排放係數"

	colHeadLabel  = "人員類別"
	colHeadCount  = "人數"
	colCH4Factor  = "排放係數(CH4)"

	colSuppLabel = "類別"
	colSuppUsage = "每年填充/使用量(公斤/年)"
	colGWP       = "GWP係數"

	colRefLabel = "冷媒種類"
	colRefUsage = "每年填充量(公斤/年)"

	colCommuteLabel  = "交通工具"
	colDistance      = "總通勤距離(公里/年)"
	colCommuteFactor = "排放係數(KgCO2e/pkm)"

	colMonth      = "月份"
	colElecUsage  = "用電量(度)"
	colWaterUsage = "用水量(度)"
)

// 水力表的帶外批註單元格（E1/E2）
const (
	cellWaterUtility   = "E1"
	cellWaterFactor    = "E2"
	prefixWaterUtility = "供水單位: "
	prefixWaterFactor  = "排放係數: "
)
