package model

// Category 排放類別
type Category string

const (
	CategoryStationary  Category = "stationary"  // 固定源
	CategoryMobile      Category = "mobile"      // 移動源
	CategoryWastewater  Category = "wastewater"  // 汙水
	CategorySuppressant Category = "suppressant" // 滅火器
	CategoryRefrigerant Category = "refrigerant" // 冷媒
	CategoryCommute     Category = "commute"     // 員工通勤
	CategoryElectricity Category = "electricity" // 外購電力
	CategoryWater       Category = "water"       // 外購水力
)

// AllCategories 按固定順序返回全部類別（顯示與導出順序）
func AllCategories() []Category {
	return []Category{
		CategoryStationary,
		CategoryMobile,
		CategoryWastewater,
		CategorySuppressant,
		CategoryRefrigerant,
		CategoryCommute,
		CategoryElectricity,
		CategoryWater,
	}
}

// SheetName 返回類別對應的工作表名（導出/導入的契約，不可變更）
func (c Category) SheetName() string {
	switch c {
	case CategoryStationary:
		return "固定源"
	case CategoryMobile:
		return "移動源"
	case CategoryWastewater:
		return "汙水"
	case CategorySuppressant:
		return "滅火器"
	case CategoryRefrigerant:
		return "冷媒"
	case CategoryCommute:
		return "員工通勤"
	case CategoryElectricity:
		return "外購電力"
	case CategoryWater:
		return "外購水力"
	default:
		return string(c)
	}
}

// Valid 判斷是否為已知類別
func (c Category) Valid() bool {
	switch c {
	case CategoryStationary, CategoryMobile, CategoryWastewater,
		CategorySuppressant, CategoryRefrigerant, CategoryCommute,
		CategoryElectricity, CategoryWater:
		return true
	}
	return false
}
