package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 應用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Auth    AuthConfig    `toml:"auth"`
	Catalog CatalogConfig `toml:"catalog"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 數據配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// AuthConfig 登入帳號配置：帳號 → 密碼
type AuthConfig struct {
	Users map[string]string `toml:"users"`
}

// CatalogConfig 係數表配置
// File 指向外部 TOML 係數文件（可選），用於疊加內建版本之外的係數版本
type CatalogConfig struct {
	File string `toml:"file"`
}

// LoadConfigInfo 配置加載元信息
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 默認配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    23210,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Auth: AuthConfig{
			Users: map[string]string{
				"Elvis": "0000",
				"Nutc1": "0001",
				"Nutc2": "0002",
				"Nutc3": "0003",
			},
		},
		Catalog: CatalogConfig{
			File: "",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 獲取可執行文件所在目錄
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 從 config.toml 加載配置並返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 無法獲取可執行文件目錄，使用當前目錄
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默認配置
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	// 配置文件給了空帳號表時回退到內建帳號，避免鎖死
	if len(config.Auth.Users) == 0 {
		config.Auth.Users = DefaultConfig().Auth.Users
	}

	// 環境變量覆蓋（用於本地運行 / 測試）
	if v := os.Getenv("CARBONCAMPUS_CATALOG_FILE"); v != "" {
		config.Catalog.File = v
	}

	return config, info, nil
}

// LoadConfig 從 config.toml 加載配置
// 配置文件位於可執行文件同目錄下
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir 確保數據目錄存在
// 數據目錄位於可執行文件同目錄下
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	// 創建子目錄
	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// GetDataPath 獲取數據文件路徑
func GetDataPath(config *AppConfig, subdir, filename string) string {
	exeDir, _ := GetExeDir()
	if exeDir == "" {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir, subdir, filename)
}
