package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestPumpWebSocketPostsMessages(t *testing.T) {
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		conn.WriteMessage(websocket.TextMessage, []byte("hello"))
		conn.WriteMessage(websocket.TextMessage, []byte("world"))
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	center := NewCenter()
	received := make(chan string, 4)
	center.AddObserver("feed", func(n Notification) {
		received <- string(n.Payload.([]byte))
	})

	if err := PumpWebSocket(context.Background(), conn, center, WithName("feed")); err != nil {
		t.Fatalf("pump returned error: %v", err)
	}

	want := []string{"hello", "world"}
	for _, w := range want {
		select {
		case got := <-received:
			if got != w {
				t.Errorf("got message %q, want %q", got, w)
			}
		default:
			t.Fatalf("missing message %q", w)
		}
	}
}

func TestPumpWebSocketContextCancel(t *testing.T) {
	upgrader := websocket.Upgrader{}

	blockServer := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		<-blockServer
	}))
	defer server.Close()
	defer close(blockServer)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- PumpWebSocket(ctx, conn, NewCenter())
	}()

	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pump did not stop on context cancellation")
	}
}
