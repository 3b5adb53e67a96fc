package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"carboncampus/internal/config"
	"carboncampus/internal/server"
	"carboncampus/internal/util"
)

var (
	port    = flag.Int("port", 0, "服務端口 (config.toml 優先；僅當未顯式配置 port 時生效)")
	devMode = flag.Bool("dev", false, "開發模式")
	dataDir = flag.String("dataDir", "", "數據目錄 (覆蓋配置文件)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  CarbonCampus - 校園溫室氣體盤查工具")
	fmt.Println("==========================================")

	// 加載配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加載配置失敗，使用默認配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行參數覆蓋配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	// 確保數據目錄存在
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("創建數據目錄失敗: %v", err)
	} else {
		fmt.Printf("數據目錄: %s\n", dataDir)
	}

	// 創建服務器
	srv := server.NewServer(cfg)

	// 構建地址
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	// 啟動服務器
	go func() {
		fmt.Printf("服務啟動中，監聽端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服務啟動失敗: %v", err)
		}
	}()

	// 打開瀏覽器
	if !cfg.Server.DevMode {
		fmt.Printf("正在打開瀏覽器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("無法自動打開瀏覽器，請手動訪問: %s\n", url)
		}
	} else {
		fmt.Printf("開發模式: 請訪問 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服務...")

	// 等待信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在關閉服務...")
	if err := srv.Close(); err != nil {
		log.Printf("退出前釋放資源失敗: %v", err)
	}
}
