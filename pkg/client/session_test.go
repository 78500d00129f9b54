package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newLoginServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"code": 400, "msg": "参数错误"})
			return
		}
		if creds.Password != "Secret123" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"code": 401, "msg": "用户名或密码错误"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"code": 0,
			"msg":  "success",
			"data": map[string]interface{}{
				"token":      "test-token",
				"expires_at": time.Now().Add(time.Hour).Format(time.RFC3339),
				"user":       map[string]interface{}{"id": 1, "username": creds.Username, "nickname": "测试用户"},
				"roles":      []string{"STUDENT"},
				"is_admin":   false,
			},
		})
	})
	mux.HandleFunc("/api/auth/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"code": 401, "msg": "请先登录"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"code": 0,
			"msg":  "success",
			"data": map[string]interface{}{
				"user":     map[string]interface{}{"id": 1, "username": "alice", "nickname": "改名后的昵称"},
				"roles":    []string{"STUDENT", "MONITOR"},
				"is_admin": false,
			},
		})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"code": 0, "msg": "success"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginStoresSession(t *testing.T) {
	server := newLoginServer(t)
	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}

	user, err := c.Login(context.Background(), Credentials{Username: "alice", Password: "Secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("username want alice got %s", user.Username)
	}
	if !c.Session().IsAuthenticated() {
		t.Fatalf("session should be authenticated after login")
	}
	if c.Session().Token() != "test-token" {
		t.Fatalf("token want test-token got %q", c.Session().Token())
	}
	if roles := c.Session().Roles(); len(roles) != 1 || roles[0] != "STUDENT" {
		t.Fatalf("roles mismatch: %v", roles)
	}
}

func TestLoginFailureReturnsAPIError(t *testing.T) {
	server := newLoginServer(t)
	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}

	_, err = c.Login(context.Background(), Credentials{Username: "alice", Password: "wrong"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError got %v", err)
	}
	if apiErr.Code != 401 || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("error mismatch: %+v", apiErr)
	}
	if c.Session().IsAuthenticated() {
		t.Fatalf("failed login should not create a session")
	}
}

func TestSessionRestoredAcrossClients(t *testing.T) {
	server := newLoginServer(t)
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileTokenStore(path)
	if err != nil {
		t.Fatalf("new file store failed: %v", err)
	}

	c1, err := New(server.URL, WithTokenStore(store))
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if _, err := c1.Login(context.Background(), Credentials{Username: "alice", Password: "Secret123"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// 快照只持久化令牌，不落盘用户信息
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read session file failed: %v", err)
	}
	if strings.Contains(string(raw), "alice") || strings.Contains(string(raw), "username") {
		t.Fatalf("profile should not be persisted, got %s", raw)
	}

	// 新的客户端实例恢复令牌，用户信息需重新拉取
	store2, err := NewFileTokenStore(path)
	if err != nil {
		t.Fatalf("reopen file store failed: %v", err)
	}
	c2, err := New(server.URL, WithTokenStore(store2))
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if !c2.Session().IsAuthenticated() {
		t.Fatalf("restored session should be authenticated")
	}
	if c2.Session().Token() != "test-token" {
		t.Fatalf("restored token want test-token got %q", c2.Session().Token())
	}
	if user := c2.Session().User(); user != nil {
		t.Fatalf("user should be nil before fetch, got %+v", user)
	}
	if _, err := c2.FetchUserInfo(context.Background()); err != nil {
		t.Fatalf("fetch userinfo failed: %v", err)
	}
	if user := c2.Session().User(); user == nil || user.Username != "alice" {
		t.Fatalf("fetched user mismatch: %+v", user)
	}
}

func TestFetchUserInfoRefreshesSession(t *testing.T) {
	server := newLoginServer(t)
	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if _, err := c.Login(context.Background(), Credentials{Username: "alice", Password: "Secret123"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user, err := c.FetchUserInfo(context.Background())
	if err != nil {
		t.Fatalf("fetch userinfo failed: %v", err)
	}
	if user.Nickname != "改名后的昵称" {
		t.Fatalf("nickname want 改名后的昵称 got %s", user.Nickname)
	}
	if stored := c.Session().User(); stored == nil || stored.Nickname != "改名后的昵称" {
		t.Fatalf("session user should be refreshed, got %+v", stored)
	}
	if roles := c.Session().Roles(); len(roles) != 2 {
		t.Fatalf("roles want 2 got %v", roles)
	}
}

func TestFetchUserInfoFailureClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"code": 500, "msg": "系统错误"})
	}))
	t.Cleanup(server.Close)

	store := NewMemoryTokenStore()
	if err := store.Save(&SessionState{Token: "test-token", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("seed store failed: %v", err)
	}
	c, err := New(server.URL, WithTokenStore(store))
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if !c.Session().IsAuthenticated() {
		t.Fatalf("seeded session should start authenticated")
	}

	// 非 401 失败同样登出，不保留无用户信息的已认证状态
	if _, err := c.FetchUserInfo(context.Background()); err == nil {
		t.Fatalf("server error should surface")
	}
	if c.Session().IsAuthenticated() {
		t.Fatalf("session should be cleared after fetch failure")
	}
	if state, _ := store.Load(); state != nil {
		t.Fatalf("store should be cleared, got %+v", state)
	}
}

func TestUnauthorizedResponseClearsSession(t *testing.T) {
	server := newLoginServer(t)
	store := NewMemoryTokenStore()
	if err := store.Save(&SessionState{Token: "stale-token", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("seed store failed: %v", err)
	}
	c, err := New(server.URL, WithTokenStore(store))
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if !c.Session().IsAuthenticated() {
		t.Fatalf("seeded session should start authenticated")
	}

	if _, err := c.FetchUserInfo(context.Background()); err == nil {
		t.Fatalf("stale token should be rejected")
	}
	if c.Session().IsAuthenticated() {
		t.Fatalf("401 response should clear the local session")
	}
	if state, _ := store.Load(); state != nil {
		t.Fatalf("store should be cleared, got %+v", state)
	}
}

func TestLogoutClearsSessionEvenOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"code": 500, "msg": "系统错误"})
	}))
	t.Cleanup(server.Close)

	store := NewMemoryTokenStore()
	if err := store.Save(&SessionState{Token: "test-token", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("seed store failed: %v", err)
	}
	c, err := New(server.URL, WithTokenStore(store))
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}

	if err := c.Logout(context.Background()); err == nil {
		t.Fatalf("server error should surface")
	}
	if c.Session().IsAuthenticated() {
		t.Fatalf("logout should clear the local session regardless of server result")
	}
}
