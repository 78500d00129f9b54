package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SessionState 持久化的会话快照。
// 只包含令牌与过期时间，用户信息每次启动重新拉取。
type SessionState struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenStore 会话持久化接口
type TokenStore interface {
	Load() (*SessionState, error)
	Save(state *SessionState) error
	Clear() error
}

// FileTokenStore 基于 JSON 文件的会话存储，进程重启后会话仍然有效
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

// NewFileTokenStore 创建文件存储。path 为空时使用 ~/.sms/session.json。
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".sms", "session.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return &FileTokenStore{path: path}, nil
}

// Load 读取会话快照，文件不存在时返回 (nil, nil)
func (s *FileTokenStore) Load() (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save 写入会话快照
func (s *FileTokenStore) Save(state *SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear 删除会话快照
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryTokenStore 进程内会话存储，测试与一次性脚本用
type MemoryTokenStore struct {
	mu    sync.Mutex
	state *SessionState
}

// NewMemoryTokenStore 创建内存存储
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Load 读取会话快照
func (s *MemoryTokenStore) Load() (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, nil
}

// Save 写入会话快照
func (s *MemoryTokenStore) Save(state *SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return nil
}

// Clear 删除会话快照
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
	return nil
}
