package server

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"carboncampus/internal/api"
	"carboncampus/internal/catalog"
	"carboncampus/internal/config"
	"carboncampus/internal/ledger"
)

// Server HTTP 服務器
type Server struct {
	router *gin.Engine
	ledger *ledger.Store
	api    *api.Handler
}

// NewServer 創建服務器
// 依次裝配：係數表（內建版本 + 可選外部係數文件）、負碳記錄庫、API 處理器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	cat := catalog.New()
	if cfg.Catalog.File != "" {
		if err := cat.LoadFile(cfg.Catalog.File); err != nil {
			log.Printf("係數文件加載失敗，僅使用內建版本: %v", err)
		}
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "carboncampus.db")

	ledgerStore, err := ledger.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	handler := api.NewHandler(cfg, cat, ledgerStore)

	s := &Server{
		router: gin.Default(),
		ledger: ledgerStore,
		api:    handler,
	}

	s.setupRoutes()

	return s
}

// setupRoutes 設置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Session-Token")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 路由
	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	// 根路徑給出簡單指引
	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name": "carboncampus",
			"api":  "/api",
		})
	})
}

// Run 啟動服務器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 釋放持久化資源
func (s *Server) Close() error {
	if s.ledger != nil {
		return s.ledger.Close()
	}
	return nil
}

// Router 獲取路由（用於測試）
func (s *Server) Router() *gin.Engine {
	return s.router
}
