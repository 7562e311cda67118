package events

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestHub_BroadcastsPhotosChanged(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub, nil))
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	waitFor(t, func() bool { return hub.Len() == 2 })

	hub.PhotosChanged(context.Background(), "created", 1001)

	for _, conn := range []*websocket.Conn{a, b} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage() error = %v", err)
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if msg.Type != TypePhotosChanged || msg.Action != "created" || msg.PhotoID != 1001 {
			t.Errorf("message = %+v", msg)
		}
		if msg.Timestamp.IsZero() {
			t.Error("message timestamp not set")
		}
	}
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub, nil))
	defer srv.Close()

	conn := dial(t, srv)
	waitFor(t, func() bool { return hub.Len() == 1 })

	_ = conn.Close()
	waitFor(t, func() bool { return hub.Len() == 0 })
}

func TestHub_PublishDoesNotBlockWithoutRun(t *testing.T) {
	hub := NewHub()
	for i := 0; i < cap(hub.broadcast); i++ {
		if !hub.Publish(Message{Type: TypePhotosChanged}) {
			t.Fatalf("Publish() #%d returned false before the queue was full", i)
		}
	}
	if hub.Publish(Message{Type: TypePhotosChanged}) {
		t.Error("Publish() on a full queue should return false")
	}
	hub.PhotosChanged(context.Background(), "deleted", 1)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://example.com/"})

	tests := []struct {
		origin string
		host   string
		want   bool
	}{
		{origin: "", host: "api.local", want: true},
		{origin: "https://example.com", host: "api.local", want: true},
		{origin: "https://evil.test", host: "api.local", want: false},
		{origin: "http://api.local", host: "api.local", want: true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/api/events", nil)
		r.Host = tt.host
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := check(r); got != tt.want {
			t.Errorf("check(origin=%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}
