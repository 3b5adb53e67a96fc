package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carboncampus/internal/catalog"
	"carboncampus/internal/engine"
	"carboncampus/internal/inventory"
	"carboncampus/internal/model"
)

// lineView 行項視圖：原始記錄 + 按當前數值重算的單行排放量
type lineView struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Emission float64 `json:"emission"`

	Unit   string   `json:"unit,omitempty"`
	Factor *float64 `json:"factor,omitempty"`
	GWP    *float64 `json:"gwp,omitempty"`
}

type monthlyView struct {
	Months map[string]float64 `json:"months"`
	Total  float64            `json:"total"`
	Factor float64            `json:"factor"`
}

type inventoryView struct {
	Version string `json:"version"`
	Year    int    `json:"year"`

	Stationary  []lineView `json:"stationary"`
	Mobile      []lineView `json:"mobile"`
	Wastewater  []lineView `json:"wastewater"`
	Suppressant []lineView `json:"suppressant"`
	Refrigerant []lineView `json:"refrigerant"`
	Commute     []lineView `json:"commute"`

	Electricity monthlyView `json:"electricity"`
	Water       monthlyView `json:"water"`

	SepticInUse    bool     `json:"septicInUse"`
	WaterUtility   string   `json:"waterUtility"`
	WaterUtilities []string `json:"waterUtilities"`
}

func buildInventoryView(snap *inventory.Snapshot, entry *catalog.Entry) inventoryView {
	view := inventoryView{
		Version:        snap.Version,
		Year:           snap.Year,
		SepticInUse:    snap.SepticInUse,
		WaterUtility:   snap.WaterUtility,
		WaterUtilities: entry.WaterUtilities(),
	}

	for _, l := range snap.Stationary {
		f := l.Record.Factor
		view.Stationary = append(view.Stationary, lineView{
			Key: l.Key, Label: l.Record.Label(l.Key), Value: l.Record.Usage,
			Emission: engine.FuelEmission(l.Record), Unit: l.Record.Unit, Factor: &f,
		})
	}
	for _, l := range snap.Mobile {
		f := l.Record.Factor
		view.Mobile = append(view.Mobile, lineView{
			Key: l.Key, Label: l.Record.Label(l.Key), Value: l.Record.Usage,
			Emission: engine.FuelEmission(l.Record), Unit: l.Record.Unit, Factor: &f,
		})
	}
	for _, l := range snap.Wastewater {
		f := l.Record.Factor
		view.Wastewater = append(view.Wastewater, lineView{
			Key: l.Key, Label: l.Key, Value: l.Record.Count,
			Emission: engine.WastewaterEmission(l.Record, entry.CH4GWP), Factor: &f,
		})
	}
	for _, l := range snap.Suppressant {
		view.Suppressant = append(view.Suppressant, lineView{
			Key: l.Key, Label: l.Key, Value: l.Record.Usage,
			Emission: engine.SuppressantEmission(l.Record),
			GWP:      l.Record.GWP, Factor: l.Record.Factor,
		})
	}
	for _, l := range snap.Refrigerant {
		g := l.Record.GWP
		view.Refrigerant = append(view.Refrigerant, lineView{
			Key: l.Key, Label: l.Key, Value: l.Record.Usage,
			Emission: engine.RefrigerantEmission(l.Record), GWP: &g,
		})
	}
	for _, l := range snap.Commute {
		f := l.Record.Factor
		view.Commute = append(view.Commute, lineView{
			Key: l.Key, Label: l.Key, Value: l.Record.Distance,
			Emission: engine.CommuteEmission(l.Record), Factor: &f,
		})
	}

	view.Electricity = monthlyView{
		Months: snap.Electricity,
		Total:  snap.Electricity.Sum(),
		Factor: entry.ElectricityFactor,
	}
	waterFactor, _ := entry.WaterFactor(snap.WaterUtility)
	view.Water = monthlyView{
		Months: snap.Water,
		Total:  snap.Water.Sum(),
		Factor: waterFactor,
	}

	return view
}

// GetInventory 查詢當前會話某版本的全部活動數據（含逐行排放量）
// GET /api/inventory/:version
func (h *Handler) GetInventory(c *gin.Context) {
	store, entry, ok := h.resolve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, buildInventoryView(store.Snapshot(), entry))
}

type updateItemRequest struct {
	Category string  `json:"category" binding:"required"`
	Key      string  `json:"key" binding:"required"`
	Value    float64 `json:"value"`
}

// UpdateItem 更新單個行項的可編輯數值
// PATCH /api/inventory/:version/items
func (h *Handler) UpdateItem(c *gin.Context) {
	store, entry, ok := h.resolve(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "請求格式錯誤: " + err.Error()})
		return
	}

	if err := store.Update(model.Category(req.Category), req.Key, req.Value); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildInventoryView(store.Snapshot(), entry))
}

type updateMonthlyRequest struct {
	Category string  `json:"category" binding:"required"`
	Month    string  `json:"month" binding:"required"`
	Value    float64 `json:"value"`
}

// UpdateMonthly 更新外購電力/外購水力的某月用量
// PATCH /api/inventory/:version/monthly
func (h *Handler) UpdateMonthly(c *gin.Context) {
	store, entry, ok := h.resolve(c)
	if !ok {
		return
	}

	var req updateMonthlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "請求格式錯誤: " + err.Error()})
		return
	}

	if err := store.SetMonthly(model.Category(req.Category), req.Month, req.Value); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildInventoryView(store.Snapshot(), entry))
}

type updateSettingsRequest struct {
	SepticInUse  *bool   `json:"septicInUse"`
	WaterUtility *string `json:"waterUtility"`
	Year         *int    `json:"year"`
}

// UpdateSettings 更新盤查設置：化糞池開關 / 供水單位 / 年度
// 只應用請求中出現的字段
// PUT /api/inventory/:version/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	store, entry, ok := h.resolve(c)
	if !ok {
		return
	}

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "請求格式錯誤: " + err.Error()})
		return
	}

	if req.WaterUtility != nil {
		if _, known := entry.WaterFactor(*req.WaterUtility); !known {
			c.JSON(http.StatusBadRequest, gin.H{"error": "未知供水單位: " + *req.WaterUtility})
			return
		}
		store.SetWaterUtility(*req.WaterUtility)
	}
	if req.SepticInUse != nil {
		store.SetSepticInUse(*req.SepticInUse)
	}
	if req.Year != nil {
		store.SetYear(*req.Year)
	}

	c.JSON(http.StatusOK, buildInventoryView(store.Snapshot(), entry))
}

// Calculate 計算全部類別的排放合計與範疇匯總
// POST /api/inventory/:version/calculate
func (h *Handler) Calculate(c *gin.Context) {
	store, entry, ok := h.resolve(c)
	if !ok {
		return
	}

	snap := store.Snapshot()
	totals, err := engine.Compute(snap, entry)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{
		"version": snap.Version,
		"year":    snap.Year,
		"totals":  totals,
	}

	// 負碳記錄合計與淨排放（發電減碳按當前版本的電力係數折算）
	if h.ledger != nil {
		rows, err := h.ledger.List()
		if err == nil {
			offset := ledgerTotal(rows, entry.ElectricityFactor)
			resp["offset"] = offset
			resp["net"] = totals.Grand - offset
		}
	}

	c.JSON(http.StatusOK, resp)
}
