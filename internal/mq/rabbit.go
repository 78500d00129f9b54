package mq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sms-next/internal/config"
	"github.com/sms-next/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Broker RabbitMQ 连接封装
type Broker struct {
	conn    *amqp.Connection
	enabled bool
	mu      sync.Mutex
}

// NewBroker 连接 RabbitMQ。未启用时返回空壳实例，调用方按 Enabled 降级。
func NewBroker(cfg *config.MQConfig) (*Broker, error) {
	if cfg == nil || !cfg.Enabled {
		return &Broker{enabled: false}, nil
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial failed: %w", err)
	}
	return &Broker{conn: conn, enabled: true}, nil
}

// Enabled 消息队列是否可用
func (b *Broker) Enabled() bool {
	return b != nil && b.enabled && b.conn != nil && !b.conn.IsClosed()
}

func (b *Broker) declare(ch *amqp.Channel, exchange, queue, routingKey string) error {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange failed: %w", err)
	}
	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}
	if err := ch.QueueBind(q.Name, routingKey, exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue failed: %w", err)
	}
	return nil
}

// Publish 以 confirm 模式发布持久化消息
func (b *Broker) Publish(ctx context.Context, exchange, queue, routingKey string, body []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.Enabled() {
		return fmt.Errorf("rabbitmq connection is not available")
	}

	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel failed: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := b.declare(ch, exchange, queue, routingKey); err != nil {
		return err
	}

	if err := ch.Confirm(false); err != nil {
		return fmt.Errorf("confirm mode failed: %w", err)
	}
	confirms := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	publishCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	err = ch.PublishWithContext(
		publishCtx,
		exchange,
		routingKey,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	select {
	case confirmed, ok := <-confirms:
		if !ok {
			return fmt.Errorf("confirmation channel closed")
		}
		if !confirmed.Ack {
			return fmt.Errorf("publish not confirmed")
		}
	case <-publishCtx.Done():
		return fmt.Errorf("publish confirmation timed out")
	}

	return nil
}

// Consume 消费队列，handler 返回错误时只记录不重投，随后手动 ack
func (b *Broker) Consume(exchange, queue, routingKey string, handler func([]byte) error) error {
	if !b.Enabled() {
		return fmt.Errorf("rabbitmq connection is not available")
	}

	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel failed: %w", err)
	}

	if err := b.declare(ch, exchange, queue, routingKey); err != nil {
		_ = ch.Close()
		return err
	}

	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		return fmt.Errorf("set qos failed: %w", err)
	}

	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("register consumer failed: %w", err)
	}

	go func() {
		defer func() { _ = ch.Close() }()
		for d := range msgs {
			if err := handler(d.Body); err != nil {
				// 不 nack，避免坏消息无限重投
				logger.Warnw("mq_handler_failed", "queue", queue, "error", err)
			}
			if err := d.Ack(false); err != nil {
				return
			}
		}
	}()

	return nil
}

// Close 关闭连接
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b == nil || b.conn == nil || b.conn.IsClosed() {
		return nil
	}
	return b.conn.Close()
}
