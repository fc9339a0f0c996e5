package feed

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestNewListenerDerivesWebsocketURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	l := NewListener("https://abc.supabase.co", "anon-key", []string{"skills"}, logger, nil)
	want := "wss://abc.supabase.co/realtime/v1/websocket?apikey=anon-key&vsn=1.0.0"
	if l.url != want {
		t.Errorf("got %q, want %q", l.url, want)
	}

	l = NewListener("http://localhost:54321/", "anon-key", nil, logger, nil)
	if !strings.HasPrefix(l.url, "ws://localhost:54321/realtime/v1/websocket") {
		t.Errorf("local project URL not handled: %q", l.url)
	}
}

func TestListenerDeliversEventsAndStops(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// consume the channel join, then push one change notification
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.WriteJSON(map[string]interface{}{
			"topic":   "realtime:public:skills",
			"event":   "INSERT",
			"payload": map[string]interface{}{},
			"ref":     "",
		})

		// hold the connection until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	events := make(chan Event, 1)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	l := NewListener(srv.URL, "anon-key", []string{"skills"}, logger, func(ev Event) {
		select {
		case events <- ev:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(stopped)
	}()

	select {
	case ev := <-events:
		if ev.Table != "skills" || ev.Type != "INSERT" {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification delivered")
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop on context cancel")
	}
}

func TestListenerReconnectsWithoutLeakingGoroutines(t *testing.T) {
	// a server that drops every connection right after the join forces the
	// listener through its reconnect path repeatedly
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_, _, _ = conn.ReadMessage()
		conn.Close()
	}))
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	l := NewListener(srv.URL, "anon-key", []string{"skills"}, logger, func(Event) {})

	before := runtime.NumGoroutine()

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(stopped)
	}()

	// enough time for the first connection plus at least one reconnect
	time.Sleep(2500 * time.Millisecond)
	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop on context cancel")
	}

	time.Sleep(200 * time.Millisecond)
	after := runtime.NumGoroutine()
	if after > before+2 {
		t.Errorf("goroutines grew from %d to %d across reconnects", before, after)
	}
}

func TestNextRefIncrements(t *testing.T) {
	l := &Listener{}
	if got := l.nextRef(); got != "1" {
		t.Errorf("first ref = %q, want 1", got)
	}
	if got := l.nextRef(); got != "2" {
		t.Errorf("second ref = %q, want 2", got)
	}
}
