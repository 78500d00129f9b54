package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sms-next/internal/config"
	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/logger"

	"github.com/gorilla/websocket"
)

const maxMessageSize = 64 * 1024

// Client 单条 WebSocket 连接
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	userID   uint
	username string

	writeWait  time.Duration
	pongWait   time.Duration
	pingPeriod time.Duration

	subMu         sync.RWMutex
	subscriptions map[string]bool
}

// NewClient 创建连接对象
func NewClient(hub *Hub, conn *websocket.Conn, userID uint, username string, cfg config.RealtimeConfig) *Client {
	writeWait := time.Duration(cfg.WriteWaitSeconds) * time.Second
	if writeWait <= 0 {
		writeWait = 10 * time.Second
	}
	pongWait := time.Duration(cfg.PongWaitSeconds) * time.Second
	if pongWait <= 0 {
		pongWait = 60 * time.Second
	}
	bufferSize := cfg.SendBufferSize
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &Client{
		hub:           hub,
		conn:          conn,
		send:          make(chan []byte, bufferSize),
		userID:        userID,
		username:      username,
		writeWait:     writeWait,
		pongWait:      pongWait,
		pingPeriod:    pongWait * 9 / 10,
		subscriptions: make(map[string]bool),
	}
}

// Register 向 hub 注册本连接
func (c *Client) Register() {
	c.hub.register <- c
}

// ReadPump 读循环：处理订阅与心跳帧，连接断开时注销
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logger.Warnw("realtime_read_failed", "user_id", c.userID, "error", err)
			}
			break
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			// 非法帧只记录，不中断连接
			logger.Warnw("realtime_invalid_frame", "user_id", c.userID, "error", err)
			continue
		}
		c.handleFrame(&frame)
	}
}

// WritePump 写循环：下发推送并周期性发 ping
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warnw("realtime_write_failed", "user_id", c.userID, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleFrame(frame *Frame) {
	switch frame.Type {
	case constants.FrameTypeSubscribe:
		if frame.Destination == constants.DestinationUserQueue || frame.Destination == constants.DestinationBroadcastTopic {
			c.subMu.Lock()
			c.subscriptions[frame.Destination] = true
			c.subMu.Unlock()
			logger.Debugw("realtime_subscribed", "user_id", c.userID, "destination", frame.Destination)
		} else {
			logger.Warnw("realtime_unknown_destination", "user_id", c.userID, "destination", frame.Destination)
		}

	case constants.FrameTypePing:
		data, _ := json.Marshal(NewPongFrame())
		c.enqueue(data)

	default:
		logger.Debugw("realtime_frame_ignored", "user_id", c.userID, "type", frame.Type)
	}
}

func (c *Client) subscribed(destination string) bool {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return c.subscriptions[destination]
}

// enqueue 非阻塞投递，缓冲满时丢弃
func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		logger.Warnw("realtime_send_buffer_full", "user_id", c.userID)
	}
}
