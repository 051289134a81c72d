package appwrite

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// realtimeEvent is the envelope the realtime endpoint pushes for channel
// traffic. Non-event frames (connected, pong) decode with an empty Data and
// fall through the filter.
type realtimeEvent struct {
	Type string `json:"type"`
	Data struct {
		Events  []string       `json:"events"`
		Payload map[string]any `json:"payload"`
	} `json:"data"`
}

func (c *client) messagesChannel() string {
	return fmt.Sprintf("databases.%s.collections.messages.documents", c.databaseID)
}

func (c *client) realtimeEndpoint() string {
	if c.realtimeURL != "" {
		return c.realtimeURL
	}
	ws := strings.Replace(c.endpoint, "https://", "wss://", 1)
	ws = strings.Replace(ws, "http://", "ws://", 1)
	params := url.Values{}
	params.Set("project", c.projectID)
	params.Add("channels[]", c.messagesChannel())
	return ws + "/realtime?" + params.Encode()
}

// SubscribeToMessages listens on the messages document channel and re-emits
// each created document. Update and delete events on the channel are
// dropped.
func (d *databaseAPI) SubscribeToMessages(cb backend.MessageFunc) (backend.UnsubscribeFunc, error) {
	conn, _, err := websocket.DefaultDialer.Dial(d.c.realtimeEndpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial realtime: %w", err)
	}

	done := make(chan struct{})

	go d.readCreates(conn, done, cb)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			conn.Close()
		})
	}, nil
}

func (d *databaseAPI) readCreates(conn *websocket.Conn, done <-chan struct{}, cb backend.MessageFunc) {
	for {
		var ev realtimeEvent
		if err := conn.ReadJSON(&ev); err != nil {
			select {
			case <-done:
			default:
				d.c.log.Warn().Err(err).Msg("realtime connection lost")
			}
			return
		}
		if ev.Type != "event" || !isCreateEvent(ev.Data.Events) {
			continue
		}
		cb(messageFromDoc(ev.Data.Payload))
	}
}

func isCreateEvent(events []string) bool {
	for _, e := range events {
		if strings.HasSuffix(e, ".create") {
			return true
		}
	}
	return false
}
