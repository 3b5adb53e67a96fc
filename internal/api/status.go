package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetStatus 系統狀態
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"name":     "carboncampus",
		"versions": h.catalog.Versions(),
		"time":     time.Now().Format(time.RFC3339),
	})
}

// ListVersions 可用的係數版本列表
// GET /api/versions
func (h *Handler) ListVersions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"versions": h.catalog.Versions()})
}

// defaultYear 新存儲的預設盤查年度
func defaultYear() int {
	return time.Now().Year()
}
