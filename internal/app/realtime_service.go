package app

import (
	"context"
	"errors"

	"github.com/sms-next/internal/realtime"
)

// RealtimeService WebSocket 通知中心的运行封装
type RealtimeService struct {
	name string
	hub  *realtime.Hub
}

// NewRealtimeService 创建通知中心服务
func NewRealtimeService(hub *realtime.Hub) *RealtimeService {
	return &RealtimeService{name: "realtime", hub: hub}
}

// Name 服务名称
func (s *RealtimeService) Name() string {
	if s == nil || s.name == "" {
		return "realtime"
	}
	return s.name
}

// Start 运行分发循环，ctx 结束时关闭全部连接
func (s *RealtimeService) Start(ctx context.Context) error {
	if s == nil || s.hub == nil {
		return errors.New("realtime hub not initialized")
	}
	s.hub.Run(ctx)
	return nil
}

// Stop 连接关闭由 Run 的 ctx 退出路径处理
func (s *RealtimeService) Stop(ctx context.Context) error {
	return nil
}
