package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownVersion 請求了未註冊的方法學版本
var ErrUnknownVersion = errors.New("unknown methodology version")

// Catalog 按方法學版本組織的係數表登記處
// 啟動時構造一次；Get 返回的 Entry 為只讀共享數據
type Catalog struct {
	entries map[string]*Entry
	order   []string
}

// New 創建係數表，內建 AR5/AR6 兩個版本
func New() *Catalog {
	c := &Catalog{entries: make(map[string]*Entry)}
	c.Register(builtinEntry("AR5"))
	c.Register(builtinEntry("AR6"))
	return c
}

// Register 註冊或整體替換一個版本
func (c *Catalog) Register(e *Entry) {
	if _, exists := c.entries[e.Version]; !exists {
		c.order = append(c.order, e.Version)
	}
	c.entries[e.Version] = e
}

// Get 取指定版本的係數表
func (c *Catalog) Get(version string) (*Entry, error) {
	e, ok := c.entries[version]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVersion, version)
	}
	return e, nil
}

// Versions 按註冊順序返回全部版本標識
func (c *Catalog) Versions() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
