package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carboncampus/internal/catalog"
	"carboncampus/internal/config"
	"carboncampus/internal/engine"
	"carboncampus/internal/excel"
	"carboncampus/internal/inventory"
	"carboncampus/internal/ledger"
	"carboncampus/internal/model"
)

// Handler API 處理器
// 每個登入會話各持一套按版本隔離的活動數據存儲；負碳記錄全校共享
type Handler struct {
	cfg      *config.AppConfig
	catalog  *catalog.Catalog
	sessions *sessionRegistry
	ledger   *ledger.Store
}

// NewHandler 創建 API 處理器
func NewHandler(cfg *config.AppConfig, cat *catalog.Catalog, ledgerStore *ledger.Store) *Handler {
	return &Handler{
		cfg:      cfg,
		catalog:  cat,
		sessions: newSessionRegistry(),
		ledger:   ledgerStore,
	}
}

// RegisterRoutes 註冊 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系統狀態與版本列表（無需登入）
	router.GET("/status", h.GetStatus)
	router.GET("/versions", h.ListVersions)

	// 登入 / 登出
	router.POST("/login", h.Login)
	router.POST("/logout", h.RequireSession(), h.Logout)

	// 活動數據（按係數版本隔離）
	inv := router.Group("/inventory/:version", h.RequireSession())
	{
		inv.GET("", h.GetInventory)
		inv.PATCH("/items", h.UpdateItem)
		inv.PATCH("/monthly", h.UpdateMonthly)
		inv.PUT("/settings", h.UpdateSettings)
		inv.POST("/calculate", h.Calculate)
		inv.GET("/export", h.ExportWorkbook)
		inv.POST("/import", h.ImportWorkbook)
	}

	// 負碳記錄
	led := router.Group("/ledger", h.RequireSession())
	{
		led.GET("", h.ListLedger)
		led.POST("", h.AddLedgerRow)
		led.PATCH("/:id", h.UpdateLedgerRow)
		led.DELETE("/:id", h.DeleteLedgerRow)
	}
}

// resolve 按版本取出當前會話的活動數據存儲與對應係數表
// 存儲首次使用時以係數表預設值初始化
func (h *Handler) resolve(c *gin.Context) (*inventory.ActivityStore, *catalog.Entry, bool) {
	version := c.Param("version")
	entry, err := h.catalog.Get(version)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	sess := currentSession(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登入"})
		return nil, nil, false
	}

	store := sess.Store(version)
	store.Initialize(entry, defaultYear())
	return store, entry, true
}

// writeError 把領域錯誤映射到 HTTP 狀態碼
func writeError(c *gin.Context, err error) {
	var parseErr *excel.ParseError
	switch {
	case errors.Is(err, catalog.ErrUnknownVersion),
		errors.Is(err, inventory.ErrUnknownKey),
		errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, engine.ErrUnknownUtility),
		errors.As(err, &parseErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
