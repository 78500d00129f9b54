// Package client 是学校信息系统的 Go SDK，
// 封装登录会话、路由守卫、REST 调用与 WebSocket 通知订阅。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// APIError 服务端返回的业务错误
type APIError struct {
	Code    int
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: code=%d status=%d message=%s", e.Code, e.Status, e.Message)
}

// envelope 服务端统一响应结构
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// pageEnvelope 分页响应结构
type pageEnvelope struct {
	Code       int             `json:"code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// Client API 客户端，持有会话状态
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	session *Session
	logger  *zap.SugaredLogger
}

// Option 客户端配置项
type Option func(*Client)

// WithHTTPClient 自定义底层 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTokenStore 自定义会话持久化存储
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) {
		if store != nil {
			c.store = store
		}
	}
}

// WithLogger 自定义日志
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New 创建客户端。会话状态从 store 中恢复，进程重启后仍然有效。
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		store:   NewMemoryTokenStore(),
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.session = newSession(c.store)
	if err := c.session.restore(); err != nil {
		c.logger.Warnw("session_restore_failed", "error", err)
	}
	return c, nil
}

// Session 当前会话
func (c *Client) Session() *Session {
	return c.session
}

// BaseURL 服务端地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do 发起请求并解包统一响应。非零业务码转为 *APIError，
// HTTP 401 时清除本地会话。
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	_, err := c.doPage(ctx, method, path, query, body, out)
	return err
}

// doPage 同 do，额外返回分页信息
func (c *Client) doPage(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) (*Pagination, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// 令牌失效，本地会话同步失效
	if resp.StatusCode == http.StatusUnauthorized {
		c.session.clear()
	}

	var env pageEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if env.Code != 0 {
		return nil, &APIError{Code: env.Code, Message: env.Msg, Status: resp.StatusCode}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return &env.Pagination, nil
}

// download 下载二进制内容（Excel 导出等）
func (c *Client) download(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.clear()
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Code: resp.StatusCode, Message: resp.Status, Status: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
