package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newJSONContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestKeyByIPAndJSONFieldUsesUsername(t *testing.T) {
	c := newJSONContext(t, `{"username":"  Alice  ","password":"x"}`)

	key := KeyByIPAndJSONField("username")(c)
	if !strings.HasPrefix(key, "alice|") {
		t.Fatalf("key should start with normalized username, got %q", key)
	}

	// body 读取后要能被后续 handler 再次读取
	var payload struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		t.Fatalf("body should be replayable: %v", err)
	}
	if payload.Username != "  Alice  " {
		t.Fatalf("body content changed: %q", payload.Username)
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "invalid json", body: "not-json"},
		{name: "missing field", body: `{"password":"x"}`},
		{name: "non string field", body: `{"username":123}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newJSONContext(t, tc.body)
			key := KeyByIPAndJSONField("username")(c)
			if key != c.ClientIP() {
				t.Fatalf("key should fall back to client ip, got %q", key)
			}
		})
	}
}

func TestRateLimitMiddlewareDisabledWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/ping", RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d should pass without redis, got %d", i, w.Code)
		}
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		value interface{}
		want  int64
		ok    bool
	}{
		{value: int64(7), want: 7, ok: true},
		{value: 7, want: 7, ok: true},
		{value: float64(7.9), want: 7, ok: true},
		{value: uint32(7), want: 7, ok: true},
		{value: "7", want: 0, ok: false},
		{value: nil, want: 0, ok: false},
	}
	for _, tc := range cases {
		got, ok := toInt64(tc.value)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("toInt64(%v) = (%d, %v), want (%d, %v)", tc.value, got, ok, tc.want, tc.ok)
		}
	}
}
