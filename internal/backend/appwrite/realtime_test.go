package appwrite

import (
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

func TestRealtimeEndpoint(t *testing.T) {
	b := New(Config{
		Endpoint:   "https://cloud.appwrite.io/v1",
		ProjectID:  "proj1",
		DatabaseID: "db1",
	}, 0, zerolog.Nop())

	got := b.c.realtimeEndpoint()
	assert.True(t, strings.HasPrefix(got, "wss://cloud.appwrite.io/v1/realtime?"))
	assert.Contains(t, got, "project=proj1")
	assert.Contains(t, got, "databases.db1.collections.messages.documents")
}

func TestSubscribeToMessages(t *testing.T) {
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		// Connection acknowledgement, then an update and a create.
		require.NoError(t, conn.WriteJSON(map[string]any{"type": "connected"}))

		require.NoError(t, conn.WriteJSON(map[string]any{
			"type": "event",
			"data": map[string]any{
				"events":  []string{"databases.db1.collections.messages.documents.m0.update"},
				"payload": map[string]any{"$id": "m0", "content": "edited"},
			},
		}))

		require.NoError(t, conn.WriteJSON(map[string]any{
			"type": "event",
			"data": map[string]any{
				"events": []string{"databases.db1.collections.messages.documents.m1.create"},
				"payload": map[string]any{
					"$id": "m1", "user_id": "u1", "content": "hello",
					"created_at": "2026-08-15T00:00:00Z",
				},
			},
		}))

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	b := New(Config{Endpoint: "https://x/v1", ProjectID: "proj1", DatabaseID: "db1"}, 0, zerolog.Nop())
	b.c.realtimeURL = "ws" + strings.TrimPrefix(server.URL, "http")

	received := make(chan backend.Message, 2)
	unsubscribe, err := b.Database().SubscribeToMessages(func(msg backend.Message) {
		received <- msg
	})
	require.NoError(t, err)
	defer unsubscribe()

	select {
	case msg := <-received:
		assert.Equal(t, "m1", msg.ID, "only create events are delivered")
		assert.Equal(t, "hello", msg.Content)
		assert.Equal(t, "2026-08-15T00:00:00Z", msg.CreatedAt)
	case <-time.After(2 * time.Second):
		t.Fatal("create event was not delivered")
	}

	select {
	case msg := <-received:
		t.Fatalf("unexpected extra delivery: %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
