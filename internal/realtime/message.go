package realtime

import (
	"time"

	"github.com/sms-next/internal/constants"
)

// NotificationPayload 推送给前端的通知载荷
type NotificationPayload struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Frame WebSocket 帧。客户端发送 subscribe/ping，服务端推送 message/pong。
type Frame struct {
	Type        string               `json:"type"`
	Destination string               `json:"destination,omitempty"`
	Payload     *NotificationPayload `json:"payload,omitempty"`
}

// NewMessageFrame 构建推送帧
func NewMessageFrame(destination string, payload NotificationPayload) *Frame {
	return &Frame{
		Type:        constants.FrameTypeMessage,
		Destination: destination,
		Payload:     &payload,
	}
}

// NewPongFrame 构建 pong 帧
func NewPongFrame() *Frame {
	return &Frame{Type: constants.FrameTypePong}
}
