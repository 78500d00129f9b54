package client

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Credentials 登录凭证
type Credentials struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	CaptchaID string `json:"captcha_id,omitempty"`
	Captcha   string `json:"captcha,omitempty"`
}

// UserInfo 登录用户信息
type UserInfo struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Nickname string   `json:"nickname"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	IsAdmin  bool     `json:"is_admin"`
}

// Session 登录会话。令牌写入 TokenStore，进程重启后可恢复；
// 用户信息只保留在内存中，每次启动通过 FetchUserInfo 重新拉取。
type Session struct {
	mu    sync.RWMutex
	store TokenStore
	state *SessionState
	user  *UserInfo
}

func newSession(store TokenStore) *Session {
	return &Session{store: store}
}

// restore 从存储中恢复令牌
func (s *Session) restore() error {
	state, err := s.store.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// Token 当前令牌，未登录时为空串
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return ""
	}
	return s.state.Token
}

// IsAuthenticated 是否已登录且令牌未过期
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil || s.state.Token == "" {
		return false
	}
	if !s.state.ExpiresAt.IsZero() && time.Now().After(s.state.ExpiresAt) {
		return false
	}
	return true
}

// User 当前用户信息。令牌恢复后、用户信息拉取前为 nil。
func (s *Session) User() *UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Roles 当前用户角色名列表
func (s *Session) Roles() []string {
	user := s.User()
	if user == nil {
		return nil
	}
	return user.Roles
}

func (s *Session) set(state *SessionState, user *UserInfo) error {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.mu.Unlock()
	return s.store.Save(state)
}

func (s *Session) setUser(user *UserInfo) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

func (s *Session) clear() {
	s.mu.Lock()
	s.state = nil
	s.user = nil
	s.mu.Unlock()
	_ = s.store.Clear()
}

// loginData 登录接口返回
type loginData struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *UserInfo `json:"user"`
	Roles     []string  `json:"roles"`
	IsAdmin   bool      `json:"is_admin"`
}

// userInfoData 用户信息接口返回
type userInfoData struct {
	User    *UserInfo `json:"user"`
	Roles   []string  `json:"roles"`
	IsAdmin bool      `json:"is_admin"`
}

// Login 登录并持久化令牌。用户信息只保留在内存中。
func (c *Client) Login(ctx context.Context, creds Credentials) (*UserInfo, error) {
	var data loginData
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, creds, &data); err != nil {
		return nil, err
	}

	user := data.User
	if user == nil {
		user = &UserInfo{}
	}
	user.Roles = data.Roles
	user.IsAdmin = data.IsAdmin

	state := &SessionState{
		Token:     data.Token,
		ExpiresAt: data.ExpiresAt,
	}
	if err := c.session.set(state, user); err != nil {
		c.logger.Warnw("session_persist_failed", "error", err)
	}
	return user, nil
}

// Logout 退出登录。服务端调用失败也会清除本地会话。
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	c.session.clear()
	return err
}

// FetchUserInfo 拉取当前用户信息并刷新内存中的会话。
// 任何失败都会清除本地会话，不保留已认证但无用户信息的中间状态。
func (c *Client) FetchUserInfo(ctx context.Context) (*UserInfo, error) {
	var data userInfoData
	if err := c.do(ctx, http.MethodGet, "/api/auth/userinfo", nil, nil, &data); err != nil {
		c.session.clear()
		return nil, err
	}

	user := data.User
	if user == nil {
		user = &UserInfo{}
	}
	user.Roles = data.Roles
	user.IsAdmin = data.IsAdmin

	c.session.setUser(user)
	return user, nil
}
