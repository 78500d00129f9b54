package service

import (
	"context"

	"github.com/sms-next/internal/logger"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/mq"
	"github.com/sms-next/internal/realtime"
	"github.com/sms-next/internal/repository"
)

// NotificationService 通知服务。
// 创建后优先经 RabbitMQ 异步推送，队列不可用时直接走 WebSocket。
type NotificationService struct {
	repo      repository.NotificationRepository
	publisher *mq.NotificationPublisher
	hub       *realtime.Hub
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo repository.NotificationRepository, publisher *mq.NotificationPublisher, hub *realtime.Hub) *NotificationService {
	return &NotificationService{repo: repo, publisher: publisher, hub: hub}
}

// NotificationCreateInput 创建通知请求
type NotificationCreateInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Type    string `json:"type"`
	UserID  *uint  `json:"user_id"` // 为空则广播
}

// Create 创建并分发通知
func (s *NotificationService) Create(ctx context.Context, input NotificationCreateInput) (*models.Notification, error) {
	notificationType := input.Type
	if notificationType == "" {
		notificationType = "SYSTEM"
	}
	notification := &models.Notification{
		Title:   input.Title,
		Content: input.Content,
		Type:    notificationType,
		UserID:  input.UserID,
	}
	if err := s.repo.Create(notification); err != nil {
		return nil, err
	}

	s.dispatch(ctx, notification)
	return notification, nil
}

// dispatch 分发通知：先尝试队列，失败或未启用时直推
func (s *NotificationService) dispatch(ctx context.Context, notification *models.Notification) {
	if s.publisher.Enabled() {
		err := s.publisher.PublishCreated(ctx, notification.ID)
		if err == nil {
			return
		}
		logger.Warnw("notification_publish_failed_fallback_direct",
			"notification_id", notification.ID,
			"error", err,
		)
	}

	payload := realtime.NotificationPayload{
		ID:        notification.ID,
		Type:      notification.Type,
		Title:     notification.Title,
		Content:   notification.Content,
		Timestamp: notification.CreatedAt,
	}
	if notification.IsBroadcast() {
		s.hub.Broadcast(payload)
	} else {
		s.hub.PushToUser(*notification.UserID, payload)
	}
}

// List 查询通知
func (s *NotificationService) List(filter repository.NotificationListFilter) ([]models.Notification, int64, error) {
	return s.repo.List(filter)
}

// MarkRead 标记已读
func (s *NotificationService) MarkRead(id uint) error {
	notification, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotFound
	}
	return s.repo.MarkRead(id)
}

// UnreadCount 未读数
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.repo.UnreadCount(userID)
}

// Delete 删除通知
func (s *NotificationService) Delete(id uint) error {
	notification, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
