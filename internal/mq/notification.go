package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/logger"
	"github.com/sms-next/internal/realtime"
	"github.com/sms-next/internal/repository"
)

// NotificationEvent 通知创建事件。
// 只携带主键，消费端回表取内容，避免队列里存正文。
type NotificationEvent struct {
	NotificationID uint `json:"notification_id"`
}

// NotificationPublisher 通知事件发布方
type NotificationPublisher struct {
	broker *Broker
}

// NewNotificationPublisher 创建通知发布方
func NewNotificationPublisher(broker *Broker) *NotificationPublisher {
	return &NotificationPublisher{broker: broker}
}

// Enabled 是否可用
func (p *NotificationPublisher) Enabled() bool {
	return p != nil && p.broker.Enabled()
}

// PublishCreated 发布通知创建事件
func (p *NotificationPublisher) PublishCreated(ctx context.Context, notificationID uint) error {
	body, err := json.Marshal(NotificationEvent{NotificationID: notificationID})
	if err != nil {
		return err
	}
	return p.broker.Publish(ctx,
		constants.MQNotificationExchange,
		constants.MQNotificationQueue,
		constants.MQNotificationRouting,
		body,
	)
}

// NotificationConsumer 通知事件消费方：回表加载通知并经 WebSocket 推送
type NotificationConsumer struct {
	broker *Broker
	repo   repository.NotificationRepository
	hub    *realtime.Hub
}

// NewNotificationConsumer 创建通知消费方
func NewNotificationConsumer(broker *Broker, repo repository.NotificationRepository, hub *realtime.Hub) *NotificationConsumer {
	return &NotificationConsumer{broker: broker, repo: repo, hub: hub}
}

// Start 启动消费
func (c *NotificationConsumer) Start() error {
	return c.broker.Consume(
		constants.MQNotificationExchange,
		constants.MQNotificationQueue,
		constants.MQNotificationRouting,
		c.handle,
	)
}

func (c *NotificationConsumer) handle(body []byte) error {
	var event NotificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode notification event failed: %w", err)
	}

	notification, err := c.repo.GetByID(event.NotificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		logger.Warnw("notification_event_missing_row", "notification_id", event.NotificationID)
		return nil
	}

	payload := realtime.NotificationPayload{
		ID:        notification.ID,
		Type:      notification.Type,
		Title:     notification.Title,
		Content:   notification.Content,
		Timestamp: notification.CreatedAt,
	}
	if notification.IsBroadcast() {
		c.hub.Broadcast(payload)
	} else {
		c.hub.PushToUser(*notification.UserID, payload)
	}
	logger.Infow("notification_pushed",
		"notification_id", notification.ID,
		"broadcast", notification.IsBroadcast(),
	)
	return nil
}
