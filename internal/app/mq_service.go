package app

import (
	"context"
	"errors"

	"github.com/sms-next/internal/mq"
)

// MQConsumerService 通知队列消费服务
type MQConsumerService struct {
	name     string
	broker   *mq.Broker
	consumer *mq.NotificationConsumer
}

// NewMQConsumerService 创建通知消费服务
func NewMQConsumerService(broker *mq.Broker, consumer *mq.NotificationConsumer) *MQConsumerService {
	return &MQConsumerService{name: "mq-consumer", broker: broker, consumer: consumer}
}

// Name 服务名称
func (s *MQConsumerService) Name() string {
	if s == nil || s.name == "" {
		return "mq-consumer"
	}
	return s.name
}

// Start 注册消费者并阻塞到 ctx 结束
func (s *MQConsumerService) Start(ctx context.Context) error {
	if s == nil || s.consumer == nil {
		return errors.New("mq consumer not initialized")
	}
	if err := s.consumer.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// Stop 关闭 broker 连接
func (s *MQConsumerService) Stop(ctx context.Context) error {
	if s == nil || s.broker == nil {
		return nil
	}
	return s.broker.Close()
}
