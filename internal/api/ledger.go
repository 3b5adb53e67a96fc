package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carboncampus/internal/ledger"
)

// ledgerTotal 負碳記錄合計 (tCO2e/年)
func ledgerTotal(rows []ledger.Row, electricityFactor float64) float64 {
	return ledger.Total(rows, electricityFactor)
}

// electricityFactorFor 取指定版本（缺省為默認版本）的電力排放係數
// 負碳記錄裡發電類行的減碳量按此係數折算
func (h *Handler) electricityFactorFor(version string) (float64, error) {
	if version == "" {
		versions := h.catalog.Versions()
		if len(versions) > 0 {
			version = versions[0]
		}
	}
	entry, err := h.catalog.Get(version)
	if err != nil {
		return 0, err
	}
	return entry.ElectricityFactor, nil
}

// ListLedger 列出全部負碳記錄及合計
// GET /api/ledger?version=AR6
func (h *Handler) ListLedger(c *gin.Context) {
	factor, err := h.electricityFactorFor(c.Query("version"))
	if err != nil {
		writeError(c, err)
		return
	}

	rows, err := h.ledger.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type rowView struct {
		ledger.Row
		Tonnage float64 `json:"tonnage"`
	}
	views := make([]rowView, 0, len(rows))
	for _, r := range rows {
		views = append(views, rowView{Row: r, Tonnage: r.Tonnage(factor)})
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":  views,
		"total": ledger.Total(rows, factor),
	})
}

type addLedgerRequest struct {
	Kind     string  `json:"kind" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// AddLedgerRow 新增一條負碳記錄
// POST /api/ledger
func (h *Handler) AddLedgerRow(c *gin.Context) {
	var req addLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "請求格式錯誤: " + err.Error()})
		return
	}

	row, err := h.ledger.Add(ledger.Kind(req.Kind), req.Category, req.Quantity, req.Unit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

type updateLedgerRequest struct {
	Quantity *float64 `json:"quantity"`
	Category *string  `json:"category"`
}

// UpdateLedgerRow 更新負碳記錄的數量/類別名稱
// PATCH /api/ledger/:id
func (h *Handler) UpdateLedgerRow(c *gin.Context) {
	var req updateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "請求格式錯誤: " + err.Error()})
		return
	}

	id := c.Param("id")
	if req.Quantity != nil {
		if err := h.ledger.UpdateQuantity(id, *req.Quantity); err != nil {
			writeError(c, err)
			return
		}
	}
	if req.Category != nil {
		if err := h.ledger.UpdateCategory(id, *req.Category); err != nil {
			writeError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "已更新"})
}

// DeleteLedgerRow 刪除一條負碳記錄
// DELETE /api/ledger/:id
func (h *Handler) DeleteLedgerRow(c *gin.Context) {
	if err := h.ledger.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已刪除"})
}
