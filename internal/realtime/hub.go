package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/logger"
)

// Hub 维护全部在线连接，按用户分组推送
type Hub struct {
	clients    map[*Client]bool
	byUser     map[uint]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub 创建推送中心
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byUser:     make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run 运行注册/注销循环，直到 ctx 取消
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if h.byUser[client.userID] == nil {
				h.byUser[client.userID] = make(map[*Client]bool)
			}
			h.byUser[client.userID][client] = true
			h.mu.Unlock()
			logger.Infow("realtime_client_registered", "user_id", client.userID, "username", client.username)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				if peers, ok := h.byUser[client.userID]; ok {
					delete(peers, client)
					if len(peers) == 0 {
						delete(h.byUser, client.userID)
					}
				}
				close(client.send)
			}
			h.mu.Unlock()
			logger.Infow("realtime_client_unregistered", "user_id", client.userID)

		case <-ticker.C:
			h.mu.RLock()
			count := len(h.clients)
			h.mu.RUnlock()
			logger.Debugw("realtime_hub_stats", "clients", count)
		}
	}
}

// PushToUser 推送私信通知到某用户的所有订阅连接
func (h *Hub) PushToUser(userID uint, payload NotificationPayload) {
	data, err := json.Marshal(NewMessageFrame(constants.DestinationUserQueue, payload))
	if err != nil {
		logger.Errorw("realtime_marshal_failed", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.byUser[userID] {
		if !client.subscribed(constants.DestinationUserQueue) {
			continue
		}
		client.enqueue(data)
	}
}

// Broadcast 推送广播通知到全部订阅连接
func (h *Hub) Broadcast(payload NotificationPayload) {
	data, err := json.Marshal(NewMessageFrame(constants.DestinationBroadcastTopic, payload))
	if err != nil {
		logger.Errorw("realtime_marshal_failed", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if !client.subscribed(constants.DestinationBroadcastTopic) {
			continue
		}
		client.enqueue(data)
	}
}

// OnlineCount 在线连接数
func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.byUser = make(map[uint]map[*Client]bool)
}
