package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// 与服务端约定的帧类型与目的地
const (
	frameTypeSubscribe = "subscribe"
	frameTypeMessage   = "message"
	frameTypePing      = "ping"

	DestinationUserQueue      = "/user/queue/notifications"
	DestinationBroadcastTopic = "/topic/notifications"
)

const (
	defaultRetryDelay = 5000 * time.Millisecond
	defaultHeartbeat  = 4000 * time.Millisecond
)

// Notification 推送到订阅方的通知
type Notification struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationHandler 通知回调
type NotificationHandler func(destination string, n Notification)

// SubscriberConfig 订阅器配置
type SubscriberConfig struct {
	RetryDelay time.Duration // 断线重连间隔，默认 5s
	Heartbeat  time.Duration // 心跳间隔，默认 4s
}

func (cfg SubscriberConfig) normalize() SubscriberConfig {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = defaultHeartbeat
	}
	return cfg
}

type wsFrame struct {
	Type        string          `json:"type"`
	Destination string          `json:"destination,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// Subscriber WebSocket 通知订阅器。
// 连接携带会话令牌，断线后按 RetryDelay 自动重连，直到 Close 或 ctx 结束。
type Subscriber struct {
	client  *Client
	cfg     SubscriberConfig
	handler NotificationHandler
	logger  *zap.SugaredLogger

	mu     sync.Mutex
	conn   *websocket.Conn
	done   chan struct{}
	closed sync.Once
}

// NewSubscriber 创建订阅器
func NewSubscriber(c *Client, cfg SubscriberConfig, handler NotificationHandler) *Subscriber {
	return &Subscriber{
		client:  c,
		cfg:     cfg.normalize(),
		handler: handler,
		logger:  c.logger,
		done:    make(chan struct{}),
	}
}

// Close 停止订阅并关闭当前连接
func (s *Subscriber) Close() {
	s.closed.Do(func() {
		close(s.done)
		s.mu.Lock()
		if s.conn != nil {
			_ = s.conn.Close()
		}
		s.mu.Unlock()
	})
}

// Run 运行订阅循环，阻塞到 Close 或 ctx 结束
func (s *Subscriber) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		default:
		}

		if err := s.connectAndServe(ctx); err != nil {
			s.logger.Warnw("subscriber_disconnected", "error", err, "retry_in", s.cfg.RetryDelay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case <-time.After(s.cfg.RetryDelay):
		}
	}
}

func (s *Subscriber) wsURL() (string, error) {
	u, err := url.Parse(s.client.baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	query := u.Query()
	query.Set("token", s.client.session.Token())
	u.RawQuery = query.Encode()
	return u.String(), nil
}

func (s *Subscriber) connectAndServe(ctx context.Context) error {
	endpoint, err := s.wsURL()
	if err != nil {
		return err
	}

	dialer := websocket.Dialer{HandshakeTimeout: defaultTimeout}
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()
		conn.Close()
	}()

	// 订阅个人队列与广播主题
	for _, destination := range []string{DestinationUserQueue, DestinationBroadcastTopic} {
		if err := s.writeFrame(conn, wsFrame{Type: frameTypeSubscribe, Destination: destination}); err != nil {
			return err
		}
	}
	s.logger.Infow("subscriber_connected", "url", endpoint)

	stopHeartbeat := make(chan struct{})
	defer close(stopHeartbeat)
	go s.heartbeatLoop(conn, stopHeartbeat)

	return s.readLoop(conn)
}

func (s *Subscriber) heartbeatLoop(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.Heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.writeFrame(conn, wsFrame{Type: frameTypePing}); err != nil {
				return
			}
		}
	}
}

func (s *Subscriber) writeFrame(conn *websocket.Conn, frame wsFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(defaultTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// readLoop 读取推送帧。格式非法的载荷记录后丢弃，不中断连接。
func (s *Subscriber) readLoop(conn *websocket.Conn) error {
	for {
		select {
		case <-s.done:
			return nil
		default:
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var frame wsFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.logger.Warnw("subscriber_malformed_frame", "error", err)
			continue
		}
		if frame.Type != frameTypeMessage {
			continue
		}

		var notification Notification
		if err := json.Unmarshal(frame.Payload, &notification); err != nil {
			s.logger.Warnw("subscriber_malformed_payload",
				"destination", frame.Destination,
				"error", err,
			)
			continue
		}
		if s.handler != nil {
			s.handler(frame.Destination, notification)
		}
	}
}
