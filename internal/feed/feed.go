package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	topicPrefix       = "realtime:public:"
	heartbeatTopic    = "phoenix"
	heartbeatInterval = 25 * time.Second
	maxBackoff        = 30 * time.Second
)

// Event is one change notification from the remote store's feed.
type Event struct {
	Table string
	Type  string // INSERT, UPDATE or DELETE
}

// message is the Phoenix channel frame the realtime endpoint speaks.
type message struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

// Listener keeps one websocket connection to the Supabase realtime endpoint
// and joins one channel per watched table. Every insert/update/delete
// notification is handed to the callback; granular payloads are ignored on
// purpose since the store refetches whole tables.
type Listener struct {
	url     string
	tables  []string
	logger  *slog.Logger
	onEvent func(Event)

	writeMu sync.Mutex
	refSeq  int
}

// NewListener derives the websocket URL from the project URL and anon key.
func NewListener(supabaseURL, apiKey string, tables []string, logger *slog.Logger, onEvent func(Event)) *Listener {
	wsURL := strings.Replace(supabaseURL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL = strings.TrimSuffix(wsURL, "/") + "/realtime/v1/websocket?apikey=" + apiKey + "&vsn=1.0.0"

	return &Listener{
		url:     wsURL,
		tables:  tables,
		logger:  logger,
		onEvent: onEvent,
	}
}

// Run connects and listens until the context is cancelled, reconnecting with
// capped exponential backoff on any failure.
func (l *Listener) Run(ctx context.Context) {
	backoff := time.Second

	for {
		if ctx.Err() != nil {
			return
		}

		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		l.logger.Warn("change feed disconnected", "error", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.url, nil)
	if err != nil {
		return fmt.Errorf("failed to dial realtime endpoint: %v", err)
	}
	defer conn.Close()

	for _, table := range l.tables {
		if err := l.send(conn, message{
			Topic:   topicPrefix + table,
			Event:   "phx_join",
			Payload: json.RawMessage(`{}`),
			Ref:     l.nextRef(),
		}); err != nil {
			return fmt.Errorf("failed to join %s channel: %v", table, err)
		}
	}
	l.logger.Info("change feed connected", "tables", len(l.tables))

	hbCtx, cancelHb := context.WithCancel(ctx)
	defer cancelHb()
	go l.heartbeat(hbCtx, conn)

	// Close the socket when the context ends so ReadJSON unblocks. The done
	// channel lets the closer exit when this connection dies on its own,
	// otherwise every reconnect would strand one goroutine.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("read failed: %v", err)
		}

		switch msg.Event {
		case "INSERT", "UPDATE", "DELETE":
			l.onEvent(Event{
				Table: strings.TrimPrefix(msg.Topic, topicPrefix),
				Type:  msg.Event,
			})
		case "phx_error":
			return fmt.Errorf("channel error on %s", msg.Topic)
		default:
			// phx_reply, heartbeat acks and presence frames are noise here
		}
	}
}

func (l *Listener) heartbeat(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := l.send(conn, message{
				Topic:   heartbeatTopic,
				Event:   "heartbeat",
				Payload: json.RawMessage(`{}`),
				Ref:     l.nextRef(),
			})
			if err != nil {
				conn.Close()
				return
			}
		}
	}
}

func (l *Listener) send(conn *websocket.Conn, msg message) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

func (l *Listener) nextRef() string {
	l.writeMu.Lock()
	l.refSeq++
	ref := l.refSeq
	l.writeMu.Unlock()
	return strconv.Itoa(ref)
}
