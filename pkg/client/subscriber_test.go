package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var subscriberTestUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsTestServer struct {
	server *httptest.Server
	conns  chan *websocket.Conn
	tokens chan string
}

func newWSTestServer(t *testing.T) *wsTestServer {
	t.Helper()
	ts := &wsTestServer{
		conns:  make(chan *websocket.Conn, 4),
		tokens: make(chan string, 4),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ts.tokens <- r.URL.Query().Get("token")
		conn, err := subscriberTestUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		ts.conns <- conn
	})
	ts.server = httptest.NewServer(mux)
	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *wsTestServer) waitConn(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case conn := <-ts.conns:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatalf("no websocket connection arrived")
		return nil
	}
}

func readTestFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame failed: %v", err)
	}
	var frame wsFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("unmarshal frame failed: %v", err)
	}
	return frame
}

func sendTestFrame(t *testing.T, conn *websocket.Conn, frame interface{}) {
	t.Helper()
	data, err := json.Marshal(frame)
	if err != nil {
		t.Fatalf("marshal frame failed: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("write frame failed: %v", err)
	}
}

func newSubscriberClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	store := NewMemoryTokenStore()
	if err := store.Save(&SessionState{Token: "ws-token", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("seed store failed: %v", err)
	}
	c, err := New(baseURL, WithTokenStore(store))
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	return c
}

type receivedNotification struct {
	destination  string
	notification Notification
}

func TestSubscriberReceivesNotifications(t *testing.T) {
	ts := newWSTestServer(t)
	c := newSubscriberClient(t, ts.server.URL)

	received := make(chan receivedNotification, 4)
	sub := NewSubscriber(c, SubscriberConfig{}, func(destination string, n Notification) {
		received <- receivedNotification{destination: destination, notification: n}
	})
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = sub.Run(ctx) }()

	conn := ts.waitConn(t)
	defer conn.Close()

	// 握手后首先订阅个人队列与广播主题
	subscribed := map[string]bool{}
	for i := 0; i < 2; i++ {
		frame := readTestFrame(t, conn)
		if frame.Type != frameTypeSubscribe {
			t.Fatalf("frame type want subscribe got %s", frame.Type)
		}
		subscribed[frame.Destination] = true
	}
	if !subscribed[DestinationUserQueue] || !subscribed[DestinationBroadcastTopic] {
		t.Fatalf("subscriptions mismatch: %v", subscribed)
	}

	if token := <-ts.tokens; token != "ws-token" {
		t.Fatalf("handshake token want ws-token got %q", token)
	}

	payload, _ := json.Marshal(Notification{ID: 1, Type: "SYSTEM", Title: "选课提醒", Content: "选课将于明日截止"})
	sendTestFrame(t, conn, wsFrame{Type: frameTypeMessage, Destination: DestinationUserQueue, Payload: payload})

	select {
	case got := <-received:
		if got.destination != DestinationUserQueue {
			t.Fatalf("destination want %s got %s", DestinationUserQueue, got.destination)
		}
		if got.notification.ID != 1 || got.notification.Title != "选课提醒" {
			t.Fatalf("notification mismatch: %+v", got.notification)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("notification not delivered")
	}
}

func TestSubscriberDropsMalformedPayload(t *testing.T) {
	ts := newWSTestServer(t)
	c := newSubscriberClient(t, ts.server.URL)

	received := make(chan receivedNotification, 4)
	sub := NewSubscriber(c, SubscriberConfig{}, func(destination string, n Notification) {
		received <- receivedNotification{destination: destination, notification: n}
	})
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = sub.Run(ctx) }()

	conn := ts.waitConn(t)
	defer conn.Close()
	for i := 0; i < 2; i++ {
		readTestFrame(t, conn)
	}

	// 载荷非法的帧被丢弃，连接保持存活
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"message","destination":"/topic/notifications","payload":"not-an-object"}`)); err != nil {
		t.Fatalf("write malformed frame failed: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`this is not json`)); err != nil {
		t.Fatalf("write invalid json failed: %v", err)
	}

	payload, _ := json.Marshal(Notification{ID: 2, Type: "SYSTEM", Title: "后续通知", Content: "仍然可以送达"})
	sendTestFrame(t, conn, wsFrame{Type: frameTypeMessage, Destination: DestinationBroadcastTopic, Payload: payload})

	select {
	case got := <-received:
		if got.notification.ID != 2 {
			t.Fatalf("notification want id 2 got %+v", got.notification)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("valid notification after malformed frames not delivered")
	}

	select {
	case got := <-received:
		t.Fatalf("malformed payload should not reach the handler: %+v", got)
	default:
	}
}

func TestSubscriberReconnects(t *testing.T) {
	ts := newWSTestServer(t)
	c := newSubscriberClient(t, ts.server.URL)

	sub := NewSubscriber(c, SubscriberConfig{RetryDelay: 50 * time.Millisecond}, nil)
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = sub.Run(ctx) }()

	first := ts.waitConn(t)
	first.Close()

	// 断开后按 RetryDelay 重连
	second := ts.waitConn(t)
	second.Close()
}

func TestSubscriberConfigDefaults(t *testing.T) {
	cfg := SubscriberConfig{}.normalize()
	if cfg.RetryDelay != 5000*time.Millisecond {
		t.Fatalf("retry delay want 5000ms got %v", cfg.RetryDelay)
	}
	if cfg.Heartbeat != 4000*time.Millisecond {
		t.Fatalf("heartbeat want 4000ms got %v", cfg.Heartbeat)
	}

	custom := SubscriberConfig{RetryDelay: time.Second, Heartbeat: 2 * time.Second}.normalize()
	if custom.RetryDelay != time.Second || custom.Heartbeat != 2*time.Second {
		t.Fatalf("custom config should be kept: %+v", custom)
	}
}
