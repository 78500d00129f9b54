package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sms-next/internal/config"
	"github.com/sms-next/internal/constants"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestClient 建立一条测试连接并完成订阅
func dialTestClient(t *testing.T, hub *Hub, userID uint, destinations []string) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		client := NewClient(hub, conn, userID, "tester", config.RealtimeConfig{})
		client.Register()
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	for _, destination := range destinations {
		frame := Frame{Type: constants.FrameTypeSubscribe, Destination: destination}
		data, _ := json.Marshal(frame)
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}
	}

	// 等待注册与订阅帧生效
	deadline := time.Now().Add(2 * time.Second)
	for hub.OnlineCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) *Frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message failed: %v", err)
	}
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("unmarshal frame failed: %v", err)
	}
	return &frame
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialTestClient(t, hub, 1, []string{constants.DestinationBroadcastTopic})

	hub.Broadcast(NotificationPayload{ID: 1, Type: "SYSTEM", Title: "停课通知", Content: "周五全天停课"})

	frame := readFrame(t, conn)
	if frame.Type != constants.FrameTypeMessage {
		t.Fatalf("frame type want message got %s", frame.Type)
	}
	if frame.Destination != constants.DestinationBroadcastTopic {
		t.Fatalf("destination want %s got %s", constants.DestinationBroadcastTopic, frame.Destination)
	}
	if frame.Payload == nil || frame.Payload.Title != "停课通知" {
		t.Fatalf("payload mismatch: %+v", frame.Payload)
	}
}

func TestHubPushToUser(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	target := dialTestClient(t, hub, 7, []string{constants.DestinationUserQueue})
	other := dialTestClient(t, hub, 8, []string{constants.DestinationUserQueue})

	hub.PushToUser(7, NotificationPayload{ID: 2, Type: "SYSTEM", Title: "补考通知", Content: "请注意补考安排"})

	frame := readFrame(t, target)
	if frame.Destination != constants.DestinationUserQueue {
		t.Fatalf("destination want %s got %s", constants.DestinationUserQueue, frame.Destination)
	}
	if frame.Payload == nil || frame.Payload.ID != 2 {
		t.Fatalf("payload mismatch: %+v", frame.Payload)
	}

	// 其他用户不应收到私信
	_ = other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Fatalf("other user should not receive the message")
	}
}

func TestHubIgnoresUnsubscribedClient(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialTestClient(t, hub, 9, nil)

	hub.Broadcast(NotificationPayload{ID: 3, Title: "无人订阅"})

	_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("unsubscribed client should not receive broadcasts")
	}
}

func TestClientPingPong(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialTestClient(t, hub, 10, nil)

	data, _ := json.Marshal(Frame{Type: constants.FrameTypePing})
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("write ping failed: %v", err)
	}

	frame := readFrame(t, conn)
	if frame.Type != constants.FrameTypePong {
		t.Fatalf("frame type want pong got %s", frame.Type)
	}
}
