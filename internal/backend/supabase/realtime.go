package supabase

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

const (
	messagesTopic     = "realtime:public:messages"
	heartbeatInterval = 25 * time.Second
)

// phoenixMessage is the framing used by the Realtime websocket endpoint.
type phoenixMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

type insertPayload struct {
	Record backend.Message `json:"record"`
}

func (c *client) realtimeEndpoint() string {
	if c.realtimeURL != "" {
		return c.realtimeURL
	}
	ws := strings.Replace(c.baseURL, "https://", "wss://", 1)
	ws = strings.Replace(ws, "http://", "ws://", 1)
	return ws + "/realtime/v1/websocket?apikey=" + c.anonKey + "&vsn=1.0.0"
}

// SubscribeToMessages joins the messages change channel and re-emits every
// INSERT row. Rows arrive already shaped like the domain model, so no
// normalization happens here. The returned function closes the socket and
// stops the heartbeat.
func (d *databaseAPI) SubscribeToMessages(cb backend.MessageFunc) (backend.UnsubscribeFunc, error) {
	conn, _, err := websocket.DefaultDialer.Dial(d.c.realtimeEndpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial realtime: %w", err)
	}

	join := phoenixMessage{
		Topic:   messagesTopic,
		Event:   "phx_join",
		Payload: json.RawMessage(`{}`),
		Ref:     "1",
	}
	if err := conn.WriteJSON(join); err != nil {
		conn.Close()
		return nil, fmt.Errorf("join channel: %w", err)
	}

	done := make(chan struct{})

	go d.readInserts(conn, done, cb)
	go d.heartbeat(conn, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			conn.Close()
		})
	}, nil
}

func (d *databaseAPI) readInserts(conn *websocket.Conn, done <-chan struct{}, cb backend.MessageFunc) {
	for {
		var msg phoenixMessage
		if err := conn.ReadJSON(&msg); err != nil {
			select {
			case <-done:
			default:
				d.c.log.Warn().Err(err).Msg("realtime connection lost")
			}
			return
		}
		if msg.Topic != messagesTopic || msg.Event != "INSERT" {
			continue
		}

		var payload insertPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			d.c.log.Warn().Err(err).Msg("bad realtime payload")
			continue
		}
		cb(payload.Record)
	}
}

func (d *databaseAPI) heartbeat(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ref := 2
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			beat := phoenixMessage{
				Topic:   "phoenix",
				Event:   "heartbeat",
				Payload: json.RawMessage(`{}`),
				Ref:     fmt.Sprintf("%d", ref),
			}
			ref++
			if err := conn.WriteJSON(beat); err != nil {
				return
			}
		}
	}
}
