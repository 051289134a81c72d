package supabase

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

func TestSubscribeToMessages(t *testing.T) {
	upgrader := websocket.Upgrader{}
	joined := make(chan phoenixMessage, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var join phoenixMessage
		require.NoError(t, conn.ReadJSON(&join))
		joined <- join

		insert := phoenixMessage{
			Topic: messagesTopic,
			Event: "INSERT",
			Payload: mustMarshal(t, insertPayload{Record: backend.Message{
				ID: "m1", UserID: "u1", Content: "hello", CreatedAt: "2026-04-01T00:00:00Z",
			}}),
		}
		require.NoError(t, conn.WriteJSON(insert))

		// Hold the socket open until the client hangs up.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	b := New("https://proj.supabase.co", "anon", 0, zerolog.Nop())
	b.c.realtimeURL = "ws" + strings.TrimPrefix(server.URL, "http")

	received := make(chan backend.Message, 1)
	unsubscribe, err := b.Database().SubscribeToMessages(func(msg backend.Message) {
		received <- msg
	})
	require.NoError(t, err)
	defer unsubscribe()

	select {
	case join := <-joined:
		assert.Equal(t, messagesTopic, join.Topic)
		assert.Equal(t, "phx_join", join.Event)
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw the join frame")
	}

	select {
	case msg := <-received:
		assert.Equal(t, "m1", msg.ID)
		assert.Equal(t, "hello", msg.Content)
	case <-time.After(2 * time.Second):
		t.Fatal("insert was not delivered")
	}
}

func TestSubscribeToMessages_IgnoresOtherEvents(t *testing.T) {
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var join phoenixMessage
		require.NoError(t, conn.ReadJSON(&join))

		reply := phoenixMessage{Topic: messagesTopic, Event: "phx_reply", Payload: json.RawMessage(`{}`)}
		require.NoError(t, conn.WriteJSON(reply))

		update := phoenixMessage{
			Topic: messagesTopic,
			Event: "UPDATE",
			Payload: mustMarshal(t, insertPayload{Record: backend.Message{
				ID: "m9", Content: "edited",
			}}),
		}
		require.NoError(t, conn.WriteJSON(update))

		insert := phoenixMessage{
			Topic:   messagesTopic,
			Event:   "INSERT",
			Payload: mustMarshal(t, insertPayload{Record: backend.Message{ID: "m2", Content: "fresh"}}),
		}
		require.NoError(t, conn.WriteJSON(insert))

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	b := New("https://proj.supabase.co", "anon", 0, zerolog.Nop())
	b.c.realtimeURL = "ws" + strings.TrimPrefix(server.URL, "http")

	received := make(chan backend.Message, 2)
	unsubscribe, err := b.Database().SubscribeToMessages(func(msg backend.Message) {
		received <- msg
	})
	require.NoError(t, err)
	defer unsubscribe()

	select {
	case msg := <-received:
		assert.Equal(t, "m2", msg.ID, "only INSERT events should pass the filter")
	case <-time.After(2 * time.Second):
		t.Fatal("insert was not delivered")
	}
	select {
	case msg := <-received:
		t.Fatalf("unexpected extra delivery: %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}
