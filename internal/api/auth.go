package api

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carboncampus/internal/inventory"
)

const sessionHeader = "X-Session-Token"

const sessionKey = "carboncampus.session"

// sessionRegistry 登入會話註冊表：令牌 → 會話
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*inventory.Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*inventory.Session)}
}

func (r *sessionRegistry) create(username string) (string, *inventory.Session) {
	token := uuid.New().String()
	sess := inventory.NewSession(username)

	r.mu.Lock()
	r.sessions[token] = sess
	r.mu.Unlock()

	return token, sess
}

func (r *sessionRegistry) lookup(token string) *inventory.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[token]
}

func (r *sessionRegistry) remove(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 帳號密碼登入，簽發會話令牌
// POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "請求格式錯誤: " + err.Error()})
		return
	}

	want, ok := h.cfg.Auth.Users[req.Username]
	if !ok || want != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "帳號或密碼錯誤"})
		return
	}

	token, sess := h.sessions.create(req.Username)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": sess.Username,
	})
}

// Logout 註銷當前會話，其下全部活動數據隨之丟棄
// POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.remove(sessionToken(c))
	c.JSON(http.StatusOK, gin.H{"message": "已登出"})
}

// RequireSession 會話校驗中間件
// 令牌取自 X-Session-Token 頭；下載鏈接等場景可用 token 查詢參數代替
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "缺少會話令牌"})
			return
		}
		sess := h.sessions.lookup(token)
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "會話不存在或已過期"})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(sessionHeader)); token != "" {
		return token
	}
	return strings.TrimSpace(c.Query("token"))
}

func currentSession(c *gin.Context) *inventory.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*inventory.Session)
	return sess
}
