package portal

import (
	"net/http"

	"github.com/sms-next/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// 握手前已经过 JWT 鉴权，Origin 不再单独校验
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS 升级为 WebSocket 连接并接入通知中心
func (h *Handler) ServeWS(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	username := ""
	if value, exists := c.Get("username"); exists {
		if name, ok := value.(string); ok {
			username = name
		}
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		requestLog(c).Warnw("ws_upgrade_failed", "user_id", userID, "error", err)
		return
	}

	client := realtime.NewClient(h.Hub, conn, userID, username, h.Config.Realtime)
	client.Register()
	requestLog(c).Infow("ws_connected", "user_id", userID, "username", username)

	go client.WritePump()
	go client.ReadPump()
}
