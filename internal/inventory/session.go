package inventory

import (
	"sync"
	"time"
)

// Session 一個登入會話擁有的全部盤查狀態
// 每個方法學版本一個獨立的 ActivityStore：切換版本只是換一個存儲讀寫，
// 另一版本的在編數據不受影響（兩套數據並存，登出時一併銷毀）
type Session struct {
	mu sync.Mutex

	Username  string
	CreatedAt time.Time

	stores map[string]*ActivityStore
}

// NewSession 創建會話
func NewSession(username string) *Session {
	return &Session{
		Username:  username,
		CreatedAt: time.Now(),
		stores:    make(map[string]*ActivityStore),
	}
}

// Store 取指定版本的活動數據存儲，首次訪問時創建
// 調用方負責用對應版本的係數表 Initialize
func (s *Session) Store(version string) *ActivityStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.stores[version]
	if !ok {
		store = NewActivityStore(version)
		s.stores[version] = store
	}
	return store
}

// Versions 返回會話中已建立存儲的版本列表
func (s *Session) Versions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.stores))
	for v := range s.stores {
		out = append(out, v)
	}
	return out
}
